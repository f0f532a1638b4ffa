package styles

import "bytes"

// palette cycles by placement order so neighbours rarely share a color.
var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// Filled draws palette-filled boxes with white labels.
type Filled struct{}

func (Filled) Name() string             { return NameFilled }
func (Filled) RenderDefs(*bytes.Buffer) {}

func (Filled) Colors(b Box) (stroke, fill string) {
	return "#ffffff", palette[b.Index%len(palette)]
}

func (s Filled) RenderBox(buf *bytes.Buffer, b Box) {
	stroke, fill := s.Colors(b)
	writeRect(buf, b, stroke, fill)
}

func (Filled) RenderText(buf *bytes.Buffer, b Box) { writeText(buf, b, "#ffffff") }
