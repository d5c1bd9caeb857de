package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestDocx(t *testing.T) {
	data, err := Docx("Budget & scope\nSecond line")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("result is not a zip archive: %v", err)
	}

	required := map[string]bool{
		"[Content_Types].xml": false,
		"_rels/.rels":         false,
		"word/document.xml":   false,
		"word/styles.xml":     false,
	}
	var document string
	for _, f := range zr.File {
		if _, ok := required[f.Name]; ok {
			required[f.Name] = true
		}
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				t.Fatal(err)
			}
			raw, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				t.Fatal(err)
			}
			document = string(raw)
		}
	}
	for name, found := range required {
		if !found {
			t.Errorf("missing part %s", name)
		}
	}

	if !strings.Contains(document, "Budget &amp; scope") {
		t.Errorf("document.xml does not contain escaped text:\n%s", document)
	}
	if !strings.Contains(document, "Second line") {
		t.Errorf("document.xml misses the second paragraph")
	}
	if got := strings.Count(document, "<w:p>"); got != 2 {
		t.Errorf("paragraph count = %d, want 2", got)
	}
}

func TestMarkdownHTML(t *testing.T) {
	html, err := MarkdownHTML("# Business Requirements\n\nSome *emphasis* here.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<h1") {
		t.Errorf("html misses heading: %s", html)
	}
	if !strings.Contains(html, "<em>") {
		t.Errorf("html misses emphasis: %s", html)
	}
}
