package analyses

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sibap-dev/storm/internal/ats"
	"github.com/sibap-dev/storm/internal/extract"
	local "github.com/sibap-dev/storm/internal/shared/storage/object/local"
)

const (
	sampleResume = "Jane Doe\njane@example.com | 555-123-4567\nExperience: Software Engineer 2019-2023\nSkills: Python, SQL"
	sampleJob    = "Required: Python, required: SQL. Preferred: AWS."
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type extractStub struct {
	paths []string
}

func (s *extractStub) extract(path string) extract.Result {
	s.paths = append(s.paths, path)
	return extract.Result{Text: sampleResume, FormattingScore: extract.PDFFormattingScore, Format: ".pdf"}
}

func newTestService(t *testing.T) (*Service, *extractStub) {
	t.Helper()
	analyzer := ats.NewAnalyzer(nil, ats.WithClock(func() time.Time { return testNow }))
	svc := NewService(analyzer, local.New(t.TempDir()), t.TempDir(), 1<<20)

	stub := &extractStub{}
	svc.Extract = stub.extract
	svc.Now = func() time.Time { return testNow }
	n := 0
	svc.NewID = func() string {
		n++
		return fmt.Sprintf("analysis-%d", n)
	}
	return svc, stub
}

// buildDocx returns a minimal Word document with one paragraph per line.
func buildDocx(t *testing.T, text string) []byte {
	t.Helper()
	var body strings.Builder
	for _, line := range strings.Split(text, "\n") {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">` + line + `</w:t></w:r></w:p>`)
	}
	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
