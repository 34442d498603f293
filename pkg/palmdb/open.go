package palmdb

import (
	"fmt"
	"os"
)

// Open reads path fully into memory and parses it as a PalmDB container.
func Open(path string) (*Database, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("palmdb: read %s: %w", path, err)
	}
	db, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("palmdb: parse %s: %w", path, err)
	}
	return db, nil
}
