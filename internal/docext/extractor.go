package docext

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/folioforge/ats/ats/analysis"
	"github.com/folioforge/ats/pkg/logx"
	fitz "github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	DefaultMaxBytes     = 10 * 1024 * 1024 // 10MB
	DefaultParseTimeout = 10 * time.Second
)

// Extractor implements analysis.Extractor. It converts PDF, DOCX and plain
// text uploads into a normalized ExtractedDocument, enforcing a size ceiling
// before any parsing work and an internal parse timeout.
type Extractor struct {
	maxBytes int64
	timeout  time.Duration
}

// NewExtractor creates an extractor; zero values fall back to the defaults
func NewExtractor(maxBytes int64, timeout time.Duration) *Extractor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if timeout <= 0 {
		timeout = DefaultParseTimeout
	}
	return &Extractor{
		maxBytes: maxBytes,
		timeout:  timeout,
	}
}

// Extract parses the upload and returns the normalized document. It fails
// closed: a corrupt or over-limit file yields an error, never partial output.
func (e *Extractor) Extract(ctx context.Context, fileBytes []byte, declaredMIME string) (*analysis.ExtractedDocument, error) {
	if int64(len(fileBytes)) > e.maxBytes {
		return nil, analysis.ErrFileTooLarge().
			WithDetail("size", len(fileBytes)).
			WithDetail("max_size", e.maxBytes)
	}

	kind, err := detectKind(fileBytes, declaredMIME)
	if err != nil {
		return nil, err
	}

	raw, err := e.extractRawText(ctx, fileBytes, kind)
	if err != nil {
		return nil, err
	}

	return buildDocument(raw, kind, len(fileBytes)), nil
}

// detectKind combines content sniffing with the declared MIME type
func detectKind(data []byte, declaredMIME string) (analysis.DocumentKind, error) {
	mime := strings.ToLower(strings.TrimSpace(declaredMIME))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return analysis.KindPDF, nil
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		// DOCX is a zip container; require a matching declaration so plain
		// zip archives are rejected.
		if mime == "application/vnd.openxmlformats-officedocument.wordprocessingml.document" || mime == "application/msword" {
			return analysis.KindDOCX, nil
		}
		return "", analysis.ErrUnsupportedFormat().
			WithDetail("declared_mime", declaredMIME).
			WithDetail("supported", []string{"pdf", "docx", "txt"})
	case mime == "application/pdf":
		return analysis.KindPDF, nil
	case mime == "text/plain" || strings.HasPrefix(mime, "text/"):
		return analysis.KindText, nil
	case (mime == "" || mime == "application/octet-stream") && isMostlyText(data):
		// Unknown or generic declarations fall back to content sniffing
		return analysis.KindText, nil
	}

	return "", analysis.ErrUnsupportedFormat().
		WithDetail("declared_mime", declaredMIME).
		WithDetail("supported", []string{"pdf", "docx", "txt"})
}

// extractRawText runs the format-specific parser under the parse timeout
func (e *Extractor) extractRawText(ctx context.Context, data []byte, kind analysis.DocumentKind) (string, error) {
	if kind == analysis.KindText {
		return string(data), nil
	}

	type result struct {
		text string
		err  error
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan result, 1)
	go func() {
		var r result
		switch kind {
		case analysis.KindPDF:
			r.text, r.err = extractPDFText(data)
		case analysis.KindDOCX:
			r.text, r.err = extractDOCXText(data)
		default:
			r.err = fmt.Errorf("unexpected document kind %q", kind)
		}
		done <- r
	}()

	select {
	case <-ctx.Done():
		return "", analysis.ErrExtractionTimeout().
			WithDetail("timeout", e.timeout.String())
	case r := <-done:
		if r.err != nil {
			return "", analysis.ErrExtractionFailed(r.err).
				WithDetail("kind", string(kind))
		}
		return r.text, nil
	}
}

// extractPDFText renders text with go-fitz, retrying once with the pure-Go
// parser before giving up.
func extractPDFText(data []byte) (string, error) {
	text, fitzErr := extractPDFTextFitz(data)
	if fitzErr == nil {
		return text, nil
	}

	logx.Warnf("fitz PDF extraction failed, retrying with fallback parser: %v", fitzErr)
	text, fallbackErr := extractPDFTextFallback(data)
	if fallbackErr != nil {
		return "", fmt.Errorf("pdf extraction failed: %v (fallback: %w)", fitzErr, fallbackErr)
	}
	return text, nil
}

func extractPDFTextFitz(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractPDFTextFallback(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDOCXText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return flattenDocxXML(doc.Editable().GetContent()), nil
}

// flattenDocxXML turns document.xml content into plain text: paragraph ends
// become newlines, remaining tags are dropped, entities unescaped.
func flattenDocxXML(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:br/>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", " ")

	var sb strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}

	text := sb.String()
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&quot;", `"`)
	text = strings.ReplaceAll(text, "&apos;", "'")
	return text
}

// isMostlyText reports whether data looks like plain text rather than a
// binary blob
func isMostlyText(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	sample := data
	if len(sample) > 1024 {
		sample = sample[:1024]
	}
	printable := 0
	for _, b := range sample {
		if b == '\n' || b == '\r' || b == '\t' || (b >= 0x20 && b != 0x7f) {
			printable++
		}
	}
	return float64(printable)/float64(len(sample)) > 0.9
}

func buildDocument(raw string, kind analysis.DocumentKind, byteLength int) *analysis.ExtractedDocument {
	rawLines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	var (
		lines       []string
		headings    []string
		headingSeen = make(map[string]struct{})
		bulletLines int
	)

	for _, rawLine := range rawLines {
		trimmed := strings.TrimSpace(rawLine)
		if trimmed == "" {
			continue
		}

		if isBulletLine(trimmed) {
			bulletLines++
		}

		if canonical, ok := matchHeading(trimmed); ok {
			if _, dup := headingSeen[canonical]; !dup {
				headingSeen[canonical] = struct{}{}
				headings = append(headings, canonical)
			}
		}

		normalized := normalizeLine(trimmed)
		if normalized != "" {
			lines = append(lines, normalized)
		}
	}

	return &analysis.ExtractedDocument{
		Text:        strings.Join(lines, "\n"),
		Lines:       lines,
		ByteLength:  byteLength,
		Kind:        kind,
		Headings:    headings,
		BulletLines: bulletLines,
		TotalLines:  len(lines),
	}
}

// normalizeLine lowercases, strips control characters and collapses
// whitespace
func normalizeLine(line string) string {
	var sb strings.Builder
	for _, r := range line {
		if unicode.IsControl(r) {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

var bulletPrefixes = []string{"•", "-", "*", "‣", "◦", "▪", "∙", "·", "»", "›"}

func isBulletLine(line string) bool {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// headingVariants maps observed section titles to canonical heading names.
// Matching is a heuristic: short lines only, trailing colon ignored.
var headingVariants = map[string]string{
	"summary":                 "summary",
	"professional summary":    "summary",
	"objective":               "summary",
	"profile":                 "summary",
	"about me":                "summary",
	"experience":              "experience",
	"work experience":         "experience",
	"professional experience": "experience",
	"employment history":      "experience",
	"work history":            "experience",
	"education":               "education",
	"academic background":     "education",
	"qualifications":          "education",
	"skills":                  "skills",
	"technical skills":        "skills",
	"core competencies":       "skills",
	"expertise":               "skills",
	"projects":                "projects",
	"personal projects":       "projects",
	"key projects":            "projects",
	"certifications":          "certifications",
	"certificates":            "certifications",
	"licenses":                "certifications",
	"contact":                 "contact",
	"contact information":     "contact",
	"personal information":    "contact",
}

const maxHeadingTokens = 6

func matchHeading(line string) (string, bool) {
	line = strings.TrimSuffix(strings.TrimSpace(line), ":")
	if len(strings.Fields(line)) > maxHeadingTokens {
		return "", false
	}
	canonical, ok := headingVariants[strings.ToLower(line)]
	return canonical, ok
}
