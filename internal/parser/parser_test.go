package parser

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeDOCX builds a minimal DOCX archive with one paragraph per line
func writeDOCX(t *testing.T, path string, lines []string) {
	t.Helper()

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create DOCX: %v", err)
	}
	defer file.Close()

	var body strings.Builder
	for _, line := range lines {
		body.WriteString(`<w:p><w:r><w:t>` + line + `</w:t></w:r></w:p>`)
	}

	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}

	zw := zip.NewWriter(file)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close archive: %v", err)
	}
}

// TestParseDOCX tests extracting paragraphs from a DOCX
func TestParseDOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.docx")
	writeDOCX(t, path, []string{"tree = baum", "car = auto &amp; wagen"})

	text, err := ParseDOCX(path)
	if err != nil {
		t.Fatalf("Failed to parse DOCX: %v", err)
	}

	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), text)
	}
	if lines[0] != "tree = baum" || lines[1] != "car = auto & wagen" {
		t.Errorf("Unexpected text: %q", text)
	}
}

// TestDocumentText tests the WordprocessingML to text conversion
func TestDocumentText(t *testing.T) {
	got := documentText(`<w:body><w:p><w:r><w:t>a</w:t></w:r><w:br/><w:r><w:t>b</w:t></w:r></w:p><w:p><w:t>c &lt;d&gt;</w:t></w:p></w:body>`)
	if got != "a\nb\nc <d>" {
		t.Errorf("Unexpected text: %q", got)
	}
}

// TestParseInvalidFile tests handling corrupted files
func TestParseInvalidFile(t *testing.T) {
	tmpDir := t.TempDir()

	corruptedPDF := filepath.Join(tmpDir, "corrupted.pdf")
	if err := os.WriteFile(corruptedPDF, []byte("This is not a valid PDF file"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if _, err := ParsePDF(corruptedPDF); err == nil {
		t.Error("Expected error when parsing corrupted PDF, got nil")
	}

	corruptedDOCX := filepath.Join(tmpDir, "corrupted.docx")
	if err := os.WriteFile(corruptedDOCX, []byte("This is not a zip archive"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if _, err := ParseDOCX(corruptedDOCX); err == nil {
		t.Error("Expected error when parsing corrupted DOCX, got nil")
	}
}

// TestParseNonexistentFile tests handling missing files
func TestParseNonexistentFile(t *testing.T) {
	for _, path := range []string{"/nonexistent/file.pdf", "/nonexistent/file.docx", "/nonexistent/file.txt"} {
		if _, err := ExtractText(path); err == nil {
			t.Errorf("Expected error when parsing nonexistent file %s, got nil", path)
		}
	}
}

// TestParseOversizedFile tests rejecting files over the size limit
func TestParseOversizedFile(t *testing.T) {
	oversizedPath := filepath.Join(t.TempDir(), "oversize.txt")
	if err := os.WriteFile(oversizedPath, make([]byte, MaxFileSize+1), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := ExtractText(oversizedPath)
	if err == nil {
		t.Fatal("Expected error when parsing oversized file, got nil")
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Errorf("Error should mention file size, got: %v", err)
	}
}

// TestDetectFileType tests file type detection
func TestDetectFileType(t *testing.T) {
	tests := []struct {
		filename string
		expected FileType
	}{
		{"words.txt", TypeText},
		{"WORDS.TXT", TypeText},
		{"document.pdf", TypePDF},
		{"notes.PDF", TypePDF},
		{"lesson.docx", TypeDOCX},
		{"file.DOCX", TypeDOCX},
		{"sheet.xlsx", TypeUnknown},
		{"no_extension", TypeUnknown},
		{"doc.pdf.bak", TypeUnknown},
	}

	for _, tc := range tests {
		result := DetectFileType(tc.filename)
		if result != tc.expected {
			t.Errorf("DetectFileType(%s) = %v, expected %v", tc.filename, result, tc.expected)
		}
	}
}

// TestExtractText tests the entry point for every supported type
func TestExtractText(t *testing.T) {
	tmpDir := t.TempDir()

	txtPath := filepath.Join(tmpDir, "words.txt")
	if err := os.WriteFile(txtPath, []byte("\n dog = hund \n"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	text, err := ExtractText(txtPath)
	if err != nil {
		t.Fatalf("Failed to parse text file: %v", err)
	}
	if text != "dog = hund" {
		t.Errorf("Unexpected text: %q", text)
	}

	emptyPath := filepath.Join(tmpDir, "empty.txt")
	if err := os.WriteFile(emptyPath, []byte("  \n"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if _, err := ExtractText(emptyPath); err == nil {
		t.Error("Expected error for empty text file")
	}

	unsupportedPath := filepath.Join(tmpDir, "words.csv")
	if err := os.WriteFile(unsupportedPath, []byte("dog,hund"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if _, err := ExtractText(unsupportedPath); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("Expected unsupported type error, got %v", err)
	}
}

// TestParseWordPairs tests line splitting with every separator
func TestParseWordPairs(t *testing.T) {
	text := strings.Join([]string{
		"# animals",
		"dog = Hund",
		"cat\tkatze",
		"bird -> vogel",
		"fish → fisch",
		"good morning - guten morgen",
		"tree: baum",
		"car; auto",
		"",
		"no separator here",
		"= missing english",
		"missing german =",
	}, "\n")

	pairs := ParseWordPairs(text)
	expected := []WordPair{
		{"dog", "Hund"},
		{"cat", "katze"},
		{"bird", "vogel"},
		{"fish", "fisch"},
		{"good morning", "guten morgen"},
		{"tree", "baum"},
		{"car", "auto"},
	}

	if len(pairs) != len(expected) {
		t.Fatalf("Expected %d pairs, got %d: %+v", len(expected), len(pairs), pairs)
	}
	for i := range expected {
		if pairs[i] != expected[i] {
			t.Errorf("Pair %d: expected %+v, got %+v", i, expected[i], pairs[i])
		}
	}
}

// TestParseWordPairsEmpty tests that text without pairs yields nothing
func TestParseWordPairsEmpty(t *testing.T) {
	if pairs := ParseWordPairs("just a sentence\n\n# comment"); len(pairs) != 0 {
		t.Errorf("Expected no pairs, got %+v", pairs)
	}
}
