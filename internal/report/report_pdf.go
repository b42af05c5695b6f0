package report

import (
	"bytes"
	"fmt"
	"strings"
)

// buildLetterPDF lays lines out top to bottom on one A4 page in Helvetica.
// Lines past the bottom margin are dropped.
func buildLetterPDF(title string, lines []string) []byte {
	const (
		top        = 800
		leading    = 16
		maxLines   = 46
		titleSize  = 16
		bodySize   = 11
		leftMargin = 56
	)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	var content strings.Builder
	fmt.Fprintf(&content, "BT\n/F2 %d Tf\n%d %d Td\n(%s) Tj\n", titleSize, leftMargin, top, pdfEscape(title))
	fmt.Fprintf(&content, "/F1 %d Tf\n%d TL\nT* T*\n", bodySize, leading)
	for _, line := range lines {
		fmt.Fprintf(&content, "(%s) Tj T*\n", pdfEscape(line))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R /F2 6 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
		"6 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>\nendobj\n",
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)
	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(offsets))
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart)

	return out.Bytes()
}

// pdfEscape escapes string delimiters and drops characters outside the
// WinAnsi range the base fonts can show.
func pdfEscape(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteRune('\\')
			b.WriteRune(r)
		case r < 0x20 || r > 0x7e:
			b.WriteRune('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
