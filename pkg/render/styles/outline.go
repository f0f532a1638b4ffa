package styles

import "bytes"

// Outline draws black rectangle outlines with black labels.
type Outline struct{}

func (Outline) Name() string { return NameOutline }

func (Outline) RenderDefs(*bytes.Buffer) {}

func (Outline) Colors(Box) (stroke, fill string) { return "#000000", "" }

func (Outline) RenderBox(buf *bytes.Buffer, b Box) { writeRect(buf, b, "#000000", "") }

func (Outline) RenderText(buf *bytes.Buffer, b Box) { writeText(buf, b, "#000000") }
