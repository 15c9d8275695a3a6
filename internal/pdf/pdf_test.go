package pdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesProducesValidStructure(t *testing.T) {
	doc := New("Business Permit Application")
	doc.Heading("Business Permit Application")
	doc.Subheading("Applicant")
	doc.KeyValue("Name", "Juan Dela Cruz")
	doc.KeyValue("Reference", "BP-2026-4F7KQ2")
	doc.Spacer()
	doc.Text("Submitted for review.")

	out := doc.Bytes()
	s := string(out)

	assert.True(t, strings.HasPrefix(s, "%PDF-1.4"))
	assert.True(t, strings.HasSuffix(s, "%%EOF\n"))
	assert.Contains(t, s, "/Type /Catalog")
	assert.Contains(t, s, "/BaseFont /Helvetica")
	assert.Contains(t, s, "/BaseFont /Helvetica-Bold")
	assert.Contains(t, s, "(Name: Juan Dela Cruz) Tj")
	assert.Contains(t, s, "/Title (Business Permit Application)")
	assert.Contains(t, s, "/Count 1")
}

func TestBytesPaginatesLongDocuments(t *testing.T) {
	doc := New("Blotter Report")
	for i := 0; i < 120; i++ {
		doc.Text("Line of report narrative text.")
	}

	s := string(doc.Bytes())
	assert.Contains(t, s, "/Count 3")
}

func TestEmptyDocumentStillRendersOnePage(t *testing.T) {
	s := string(New("Empty").Bytes())
	assert.Contains(t, s, "/Count 1")
	require.Contains(t, s, "startxref")
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, `\(ref\)`, escapeText("(ref)"))
	assert.Equal(t, `a\\b`, escapeText(`a\b`))
	assert.Equal(t, "Pe?a", escapeText("Peña"))
}
