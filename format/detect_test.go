package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "pdf"},
		{DOCX, "docx"},
		{EPUB, "epub"},
		{Unknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"pdf", PDF},
		{"PDF", PDF},
		{"docx", DOCX},
		{"Epub", EPUB},
		{"odt", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := Parse(tt.name); got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDetect_ByExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"report.pdf", PDF},
		{"REPORT.PDF", PDF},
		{"letter.docx", DOCX},
		{"novel.epub", EPUB},
		{"data.csv", Unknown},
		{"noextension", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	if got := PDF.Extension(); got != ".pdf" {
		t.Errorf("expected .pdf, got %q", got)
	}
	if got := Unknown.Extension(); got != "" {
		t.Errorf("expected empty extension for Unknown, got %q", got)
	}
}

func TestDetectFromMagic(t *testing.T) {
	if got := DetectFromMagic([]byte("%PDF-1.7\n")); got != PDF {
		t.Errorf("expected PDF, got %v", got)
	}
	if got := DetectFromMagic([]byte("plain text")); got != Unknown {
		t.Errorf("expected Unknown, got %v", got)
	}
	if got := DetectFromMagic([]byte("%P")); got != Unknown {
		t.Errorf("short input should be Unknown, got %v", got)
	}
}

// buildZIP assembles an in-memory ZIP archive from name/content pairs.
func buildZIP(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("creating zip entry %q: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("writing zip entry %q: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFromReader_PDF(t *testing.T) {
	data := []byte("%PDF-1.4\nsome content")

	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != PDF {
		t.Errorf("expected PDF, got %v", got)
	}
}

func TestDetectFromReader_EPUB(t *testing.T) {
	data := buildZIP(t, map[string]string{
		"mimetype":           "application/epub+zip",
		"OEBPS/content.opf":  "<package/>",
		"OEBPS/chapter1.xml": "<html/>",
	})

	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != EPUB {
		t.Errorf("expected EPUB, got %v", got)
	}
}

func TestDetectFromReader_DOCX(t *testing.T) {
	data := buildZIP(t, map[string]string{
		"[Content_Types].xml": "<Types/>",
		"word/document.xml":   "<w:document/>",
	})

	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DOCX {
		t.Errorf("expected DOCX, got %v", got)
	}
}

func TestDetectFromReader_UnknownZIP(t *testing.T) {
	data := buildZIP(t, map[string]string{
		"random.txt": "nothing document-shaped here",
	})

	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Unknown {
		t.Errorf("expected Unknown, got %v", got)
	}
}

func TestDetectFromReader_PlainText(t *testing.T) {
	data := []byte("just some plain text, nothing more")

	got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Unknown {
		t.Errorf("expected Unknown, got %v", got)
	}
}
