// Package format provides document format identification for the reflow
// library. Format names double as the registry keys used to select a
// format-specific reconstructor.
package format

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// EPUB indicates an EPUB publication.
	EPUB
)

// String returns the lowercase name of the format, matching the format
// strings carried by model.DocumentStructure.
func (f Format) String() string {
	switch f {
	case PDF:
		return "pdf"
	case DOCX:
		return "docx"
	case EPUB:
		return "epub"
	default:
		return "unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case DOCX:
		return ".docx"
	case EPUB:
		return ".epub"
	default:
		return ""
	}
}

// Parse converts a format name to a Format. Matching is case-insensitive;
// unrecognized names yield Unknown.
func Parse(name string) Format {
	switch strings.ToLower(name) {
	case "pdf":
		return PDF
	case "docx":
		return DOCX
	case "epub":
		return EPUB
	default:
		return Unknown
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".docx":
		return DOCX
	case ".epub":
		return EPUB
	default:
		return Unknown
	}
}

// DetectFromMagic checks magic bytes to determine format. ZIP archives
// (both DOCX and EPUB) cannot be distinguished from magic bytes alone;
// use DetectFromReader for those.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// PDF magic: %PDF
	if data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F' {
		return PDF
	}

	return Unknown
}

// isZIPMagic reports whether data starts with the ZIP local file header.
func isZIPMagic(data []byte) bool {
	return len(data) >= 4 &&
		data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// DetectFromReader inspects content to determine format. It distinguishes
// the two ZIP-based formats by their archive contents: EPUB carries a
// mimetype entry of application/epub+zip, DOCX a word/ directory.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if f := DetectFromMagic(magic); f != Unknown {
		return f, nil
	}

	if isZIPMagic(magic) {
		return detectZIPFormat(r, size)
	}

	return Unknown, nil
}

// detectZIPFormat inspects a ZIP archive to determine whether it is an
// EPUB or a DOCX package.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if f.Name == "mimetype" {
			rc, err := f.Open()
			if err != nil {
				continue
			}
			data := make([]byte, 64)
			n, _ := rc.Read(data)
			rc.Close()

			if strings.Contains(string(data[:n]), "application/epub+zip") {
				return EPUB, nil
			}
		}

		if strings.HasPrefix(f.Name, "word/") {
			return DOCX, nil
		}
	}

	return Unknown, nil
}
