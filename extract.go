package quizanything

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	docx "github.com/fumiama/go-docx"
	pdf "github.com/ledongthuc/pdf"
)

// plainTextExts are formats read verbatim as UTF-8 text.
var plainTextExts = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".json": true,
	".rtf":  true,
	".odt":  true,
}

// legacyDocMinChars is the plausibility floor for text salvaged from a
// binary .doc file. Below it the decode is assumed to be garbage.
const legacyDocMinChars = 100

// ExtractFile converts an uploaded file into plain text, dispatching on
// the file extension. All failures are surfaced, never swallowed.
func ExtractFile(name string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))

	var text string
	var err error

	switch {
	case plainTextExts[ext]:
		text = string(data)
	case ext == ".pdf":
		text, err = extractPDF(data)
	case ext == ".docx":
		text, err = extractDOCX(data)
	case ext == ".doc":
		text, err = extractLegacyDoc(data)
	default:
		return "", fmt.Errorf("%w: %q (please upload a text file, PDF, or Word document)", ErrUnsupportedFormat, ext)
	}

	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", &InputError{Reason: "This file appears to be empty. Please try uploading a different file."}
	}
	return text, nil
}

// extractPDF reads the text layer of every page in page order, joining
// page texts with newlines.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from PDF page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// extractDOCX pulls raw text out of a WordprocessingML document.
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX: %w", err)
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch item.(type) {
		case *docx.Paragraph, *docx.Table:
			fmt.Fprintln(&sb, item)
		}
	}
	return sb.String(), nil
}

// extractLegacyDoc is a best-effort fallback for binary .doc files, which
// have no reliable pure-Go parser. The bytes are decoded as UTF-8 with
// control and invalid runes dropped; an implausibly short result means
// the file is really binary and the user should convert it.
func extractLegacyDoc(data []byte) (string, error) {
	var sb strings.Builder
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r == utf8.RuneError && size == 1 {
			continue
		}
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}

	text := strings.TrimSpace(sb.String())
	if utf8.RuneCountInString(text) < legacyDocMinChars {
		return "", ErrLegacyFormat
	}
	return text, nil
}
