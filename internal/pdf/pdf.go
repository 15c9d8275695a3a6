// Package pdf writes simple text-only PDF documents for application and
// certificate exports. It emits PDF 1.4 with the built-in Helvetica fonts,
// which every viewer ships, so no font files or external tooling are needed.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	pageWidth  = 595.28 // A4 portrait, points
	pageHeight = 841.89

	marginLeft = 56.0
	marginTop  = 56.0
)

// Style selects one of the embedded base-14 fonts
type Style int

const (
	Regular Style = iota
	Bold
)

type line struct {
	text  string
	size  float64
	style Style
	gap   float64
}

// Document accumulates text lines and renders them into PDF bytes.
// Lines flow top to bottom; a page break is inserted automatically when
// the cursor runs off the bottom margin.
type Document struct {
	title string
	lines []line
}

// New creates a document with the given metadata title
func New(title string) *Document {
	return &Document{title: title}
}

// Heading adds a bold line in a larger size
func (d *Document) Heading(text string) {
	d.lines = append(d.lines, line{text: text, size: 16, style: Bold, gap: 10})
}

// Subheading adds a bold body-size line
func (d *Document) Subheading(text string) {
	d.lines = append(d.lines, line{text: text, size: 11, style: Bold, gap: 4})
}

// Text adds a regular body line
func (d *Document) Text(text string) {
	d.lines = append(d.lines, line{text: text, size: 10, style: Regular, gap: 2})
}

// KeyValue adds a labelled field line
func (d *Document) KeyValue(key, value string) {
	d.Text(fmt.Sprintf("%s: %s", key, value))
}

// Spacer adds vertical whitespace
func (d *Document) Spacer() {
	d.lines = append(d.lines, line{text: "", size: 10, gap: 8})
}

// Bytes renders the accumulated content
func (d *Document) Bytes() []byte {
	pages := d.paginate()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := []int{0} // object 0 is the free head
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets)-1, body)
	}

	// Fixed layout: 1 catalog, 2 pages root, 3 regular font, 4 bold font,
	// then alternating page and content stream objects.
	pageCount := len(pages)
	kids := make([]string, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 5+i*2))
	}

	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), pageCount))
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>")

	for i, content := range pages {
		writeObj(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] "+
				"/Resources << /Font << /F1 3 0 R /F2 4 0 R >> >> /Contents %d 0 R >>",
			pageWidth, pageHeight, 6+i*2))
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(content), content))
	}

	writeObj(fmt.Sprintf("<< /Title (%s) /Producer (egov-api) >>", escapeText(d.title)))
	infoRef := len(offsets) - 1

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets))
	for _, off := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets), infoRef, xrefStart)
	return buf.Bytes()
}

// paginate lays the lines onto pages and returns one content stream per page
func (d *Document) paginate() []string {
	var pages []string
	var stream strings.Builder
	y := pageHeight - marginTop

	flush := func() {
		pages = append(pages, stream.String())
		stream.Reset()
		y = pageHeight - marginTop
	}

	for _, l := range d.lines {
		advance := l.size*1.2 + l.gap
		if y-advance < marginTop {
			flush()
		}
		y -= advance
		if l.text == "" {
			continue
		}
		font := "F1"
		if l.style == Bold {
			font = "F2"
		}
		fmt.Fprintf(&stream, "BT /%s %.1f Tf %.2f %.2f Td (%s) Tj ET\n",
			font, l.size, marginLeft, y, escapeText(l.text))
	}
	if stream.Len() > 0 || len(pages) == 0 {
		pages = append(pages, stream.String())
	}
	return pages
}

// escapeText escapes PDF string delimiters and drops bytes Helvetica
// cannot encode
func escapeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '(', ')', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			if r >= 32 && r < 127 {
				b.WriteRune(r)
			} else {
				b.WriteByte('?')
			}
		}
	}
	return b.String()
}
