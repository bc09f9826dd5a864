package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Base formatting scores reflect how reliably each format class parses.
const (
	PDFFormattingScore  = 85
	WordFormattingScore = 90

	UnsupportedText = "Unsupported file format"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyDocument     = errors.New("empty document")
)

// Result is extracted resume text with the base formatting score of its format.
// Err is set when extraction failed; Text is then empty or the unsupported marker.
type Result struct {
	Text            string
	FormattingScore float64
	Format          string
	Err             error
}

// Diagnostic returns a user-facing description of the failure, or "".
func (r Result) Diagnostic() string {
	if r.Err == nil {
		return ""
	}
	if errors.Is(r.Err, ErrUnsupportedFormat) {
		return fmt.Sprintf("Unsupported file format %q - upload a PDF or Word document", r.Format)
	}
	return "Could not extract text from the " + strings.ToUpper(strings.TrimPrefix(r.Format, ".")) + " file - it may be corrupt, encrypted, or image-only"
}

// File extracts text from a resume on disk, choosing the reader by extension.
// It never panics and closes every handle it opens.
func File(path string) (res Result) {
	ext := strings.ToLower(filepath.Ext(path))
	defer func() {
		if r := recover(); r != nil {
			res = failed(ext, fmt.Errorf("extract %s: panic: %v", ext, r))
		}
	}()

	switch ext {
	case ".pdf":
		text, err := pdfFile(path)
		return finish(ext, text, PDFFormattingScore, err)
	case ".docx", ".doc":
		text, err := wordFile(path)
		return finish(ext, text, WordFormattingScore, err)
	default:
		return Result{Text: UnsupportedText, Format: ext, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)}
	}
}

// FromBytes extracts text from an in-memory payload. The format comes from the
// file name extension, falling back to content sniffing when it has none.
func FromBytes(data []byte, fileName string) (res Result) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = sniffExt(data)
	}
	defer func() {
		if r := recover(); r != nil {
			res = failed(ext, fmt.Errorf("extract %s: panic: %v", ext, r))
		}
	}()

	switch ext {
	case ".pdf":
		text, err := pdfBytes(data)
		return finish(ext, text, PDFFormattingScore, err)
	case ".docx", ".doc":
		text, err := wordBytes(data)
		return finish(ext, text, WordFormattingScore, err)
	default:
		return Result{Text: UnsupportedText, Format: ext, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)}
	}
}

// Supported reports whether a file name has an extension File can read.
func Supported(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf", ".docx", ".doc":
		return true
	default:
		return false
	}
}

func finish(ext, text string, score float64, err error) Result {
	if err != nil {
		return failed(ext, err)
	}
	return Result{Text: text, FormattingScore: score, Format: ext}
}

func failed(ext string, err error) Result {
	return Result{Format: ext, Err: err}
}

func pdfFile(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	return pdfPages(r)
}

func pdfBytes(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	return pdfPages(r)
}

// pdfPages joins the plain text of every page with newlines.
func pdfPages(r *pdf.Reader) (string, error) {
	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("pdf page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

func wordFile(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("open word document: %w", err)
	}
	defer doc.Close()
	return paragraphs(doc.Editable().GetContent())
}

func wordBytes(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read word document: %w", err)
	}
	defer doc.Close()
	return paragraphs(doc.Editable().GetContent())
}

// paragraphs walks document.xml and returns paragraph text joined with newlines.
func paragraphs(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var (
		out     []string
		current strings.Builder
		inText  bool
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out = append(out, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return strings.Join(out, "\n"), nil
}

// sniffExt guesses the extension of an unnamed payload.
func sniffExt(data []byte) string {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return ".pdf"
	}
	if len(data) == 0 {
		return ""
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return ".docx"
		}
	}
	return ""
}
