package styles

import (
	"bytes"
	"encoding/xml"
)

const (
	fontHeightRatio = 0.7
	fontWidthRatio  = 0.9
	fontCharWidth   = 0.6
	fontSizeMin     = 6.0
	fontSizeMax     = 64.0
)

// FontSize returns a monospace font size that fits b.Label inside b.
func FontSize(b Box) float64 {
	n := max(1, len([]rune(b.Label)))
	byHeight := b.H * fontHeightRatio
	byWidth := (b.W * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, byHeight, byWidth))
}

// TruncateLabel shortens b.Label with ".." when it cannot fit at FontSize.
func TruncateLabel(b Box) string {
	runes := []rune(b.Label)
	charWidth := FontSize(b) * fontCharWidth
	maxChars := max(int(b.W*fontWidthRatio/charWidth), 3)
	if len(runes) <= maxChars {
		return b.Label
	}
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
