package docext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioforge/ats/ats/analysis"
	"github.com/folioforge/ats/pkg/errx"
)

const sampleResume = `Jane Doe

EXPERIENCE
• Increased revenue by 25% building Python services
• Reduced latency with Docker

Education:
BS Computer Science

Skills
Python, Docker, Kubernetes
`

func TestExtract_PlainText(t *testing.T) {
	e := NewExtractor(0, 0)

	doc, err := e.Extract(context.Background(), []byte(sampleResume), "text/plain")
	require.NoError(t, err)

	assert.Equal(t, analysis.KindText, doc.Kind)
	assert.Equal(t, len(sampleResume), doc.ByteLength)
	assert.Equal(t, 8, doc.TotalLines)
	assert.Equal(t, 2, doc.BulletLines)
	assert.Equal(t, []string{"experience", "education", "skills"}, doc.Headings)
	assert.Contains(t, doc.Text, "increased revenue by 25%")
	assert.NotContains(t, doc.Text, "EXPERIENCE")
}

func TestExtract_TextIsNormalized(t *testing.T) {
	e := NewExtractor(0, 0)

	doc, err := e.Extract(context.Background(), []byte("  MiXeD   Case\tTokens  \n\n\n"), "text/plain")
	require.NoError(t, err)

	require.Equal(t, 1, doc.TotalLines)
	assert.Equal(t, "mixed case tokens", doc.Lines[0])
}

func TestExtract_EmptyUpload(t *testing.T) {
	e := NewExtractor(0, 0)

	doc, err := e.Extract(context.Background(), nil, "text/plain")
	require.NoError(t, err)

	assert.Zero(t, doc.TotalLines)
	assert.Empty(t, doc.Text)
}

func TestExtract_FileTooLarge(t *testing.T) {
	e := NewExtractor(16, time.Second)

	_, err := e.Extract(context.Background(), make([]byte, 17), "text/plain")

	var ex *errx.Error
	require.ErrorAs(t, err, &ex)
	assert.Equal(t, analysis.CodeFileTooLarge, ex.Code)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	e := NewExtractor(0, 0)

	// PNG magic bytes with a binary payload
	data := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 64)...)
	_, err := e.Extract(context.Background(), data, "image/png")

	var ex *errx.Error
	require.ErrorAs(t, err, &ex)
	assert.Equal(t, analysis.CodeUnsupportedFormat, ex.Code)
}

func TestExtract_ZipWithoutDocxDeclarationRejected(t *testing.T) {
	e := NewExtractor(0, 0)

	data := []byte("PK\x03\x04 not really a docx")
	_, err := e.Extract(context.Background(), data, "application/zip")

	var ex *errx.Error
	require.ErrorAs(t, err, &ex)
	assert.Equal(t, analysis.CodeUnsupportedFormat, ex.Code)
}

func TestExtract_CorruptPDFFailsClosed(t *testing.T) {
	e := NewExtractor(0, time.Second)

	_, err := e.Extract(context.Background(), []byte("%PDF-1.7 garbage"), "application/pdf")

	var ex *errx.Error
	require.ErrorAs(t, err, &ex)
	assert.Equal(t, analysis.CodeExtractionFailed, ex.Code)
}

func TestDetectKind_SniffingBeatsDeclaration(t *testing.T) {
	kind, err := detectKind([]byte("%PDF-1.4 ..."), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, analysis.KindPDF, kind)
}

func TestDetectKind_MissingMIMEFallsBackToSniffing(t *testing.T) {
	kind, err := detectKind([]byte("plain resume text"), "")
	require.NoError(t, err)
	assert.Equal(t, analysis.KindText, kind)
}

func TestDetectKind_MIMEParametersIgnored(t *testing.T) {
	kind, err := detectKind([]byte("resume"), "text/plain; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, analysis.KindText, kind)
}

func TestMatchHeading(t *testing.T) {
	cases := []struct {
		line      string
		canonical string
		ok        bool
	}{
		{"Experience", "experience", true},
		{"WORK EXPERIENCE", "experience", true},
		{"Education:", "education", true},
		{"Core Competencies", "skills", true},
		{"worked on many interesting projects over several years", "", false},
		{"random line", "", false},
	}

	for _, tc := range cases {
		canonical, ok := matchHeading(tc.line)
		assert.Equal(t, tc.ok, ok, tc.line)
		assert.Equal(t, tc.canonical, canonical, tc.line)
	}
}

func TestIsBulletLine(t *testing.T) {
	assert.True(t, isBulletLine("• shipped things"))
	assert.True(t, isBulletLine("- shipped things"))
	assert.True(t, isBulletLine("* shipped things"))
	assert.False(t, isBulletLine("shipped things"))
}

func TestFlattenDocxXML(t *testing.T) {
	content := `<w:p><w:r><w:t>Experience</w:t></w:r></w:p><w:p><w:r><w:t>Python &amp; Go</w:t></w:r></w:p>`

	text := flattenDocxXML(content)

	assert.Contains(t, text, "Experience\n")
	assert.Contains(t, text, "Python & Go")
}

func TestIsMostlyText(t *testing.T) {
	assert.True(t, isMostlyText([]byte("regular resume content")))
	assert.False(t, isMostlyText(make([]byte, 100)))
}
