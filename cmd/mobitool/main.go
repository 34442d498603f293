// Command mobitool is an umbrella CLI over the mobidrm/mobibook packages:
// dump a book's headers, print its EXTH metadata, validate a PID, recover
// its DRM key, or convert it to EPUB.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
