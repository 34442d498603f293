package mobibook

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/yosssi/gohtml"
)

const epubContainerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`

const epubContentOPFTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" unique-identifier="bookid" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>%s</dc:title>
    <dc:creator>%s</dc:creator>
    <dc:identifier id="bookid">%s</dc:identifier>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
    <item id="book" href="book.html" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="book"/>
  </spine>
</package>
`

// WriteEPUB decrypts and decompresses every text record, concatenates them
// into one HTML document, and packages a minimal EPUB2 container. The first
// zip entry is "mimetype", stored uncompressed with no trailing newline, as
// the EPUB OCF spec requires.
func (b *Book) WriteEPUB(w io.Writer) error {
	var body bytes.Buffer
	first, last := b.FirstContentRecord(), b.LastContentRecord()
	for i := first; i <= last; i++ {
		text, err := b.DecryptText(i)
		if err != nil {
			return fmt.Errorf("mobibook: WriteEPUB: record %d: %w", i, err)
		}
		body.Write(text)
	}

	title, _ := b.EXTH.Title()
	if title == "" {
		title = "Untitled"
	}
	author, _ := b.EXTH.Author()
	if author == "" {
		author = "Unknown"
	}
	identifier, _ := b.EXTH.ASIN()
	if identifier == "" {
		identifier = fmt.Sprintf("urn:uuid:%x", b.DB.Header.UniqueIDSeed)
	}

	html := gohtml.Format(fmt.Sprintf(
		"<html><head><title>%s</title></head><body>%s</body></html>",
		title, body.String(),
	))

	zw := zip.NewWriter(w)

	mimeWriter, err := zw.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		return fmt.Errorf("mobibook: WriteEPUB: mimetype entry: %w", err)
	}
	if _, err := mimeWriter.Write([]byte("application/epub+zip")); err != nil {
		return fmt.Errorf("mobibook: WriteEPUB: write mimetype: %w", err)
	}

	if err := writeZipFile(zw, "META-INF/container.xml", []byte(epubContainerXML)); err != nil {
		return err
	}
	opf := fmt.Sprintf(epubContentOPFTemplate, title, author, identifier)
	if err := writeZipFile(zw, "OEBPS/content.opf", []byte(opf)); err != nil {
		return err
	}
	if err := writeZipFile(zw, "OEBPS/book.html", []byte(html)); err != nil {
		return err
	}

	return zw.Close()
}

func writeZipFile(zw *zip.Writer, name string, data []byte) error {
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("mobibook: WriteEPUB: create %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("mobibook: WriteEPUB: write %s: %w", name, err)
	}
	return nil
}
