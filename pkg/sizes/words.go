package sizes

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/cases"

	"github.com/matzehuels/tagcloud/pkg/geom"
)

// Word is a folded token and the number of times it occurred.
type Word struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Item is a labelled rectangle size.
type Item struct {
	Label string    `json:"label,omitempty"`
	Size  geom.Size `json:"size"`
}

// Items wraps unlabelled sizes.
func Items(in []geom.Size) []Item {
	out := make([]Item, len(in))
	for i, s := range in {
		out[i] = Item{Size: s}
	}
	return out
}

// SizesOf strips labels.
func SizesOf(items []Item) []geom.Size {
	out := make([]geom.Size, len(items))
	for i, it := range items {
		out[i] = it.Size
	}
	return out
}

// Words splits text on anything that is not a letter or digit, case-folds
// the tokens and counts them. Tokens shorter than minLen runes are dropped.
// The result is ordered by count, most frequent first, then alphabetically.
func Words(text string, minLen int) []Word {
	fold := cases.Fold()
	counts := make(map[string]int)
	for _, tok := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(tok)) < minLen {
			continue
		}
		counts[fold.String(tok)]++
	}

	words := make([]Word, 0, len(counts))
	for w, c := range counts {
		words = append(words, Word{Text: w, Count: c})
	}
	slices.SortFunc(words, func(a, b Word) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Text, b.Text)
	})
	return words
}

// MeasureOptions controls how words are turned into boxes.
type MeasureOptions struct {
	MinScale float64 // scale for the least frequent word
	MaxScale float64 // scale for the most frequent word
	Padding  int     // added on every side
	Limit    int     // keep only the first Limit words; 0 keeps all
}

// DefaultMeasureOptions sizes words between 1x and 4x the 7x13 base font.
var DefaultMeasureOptions = MeasureOptions{
	MinScale: 1,
	MaxScale: 4,
	Padding:  2,
}

// Measure returns one labelled box per word, in the order given.
func Measure(words []Word, opts MeasureOptions) []Item {
	if opts.MinScale <= 0 {
		opts.MinScale = DefaultMeasureOptions.MinScale
	}
	if opts.MaxScale < opts.MinScale {
		opts.MaxScale = opts.MinScale
	}
	if opts.Limit > 0 && len(words) > opts.Limit {
		words = words[:opts.Limit]
	}
	if len(words) == 0 {
		return nil
	}

	lo, hi := words[0].Count, words[0].Count
	for _, w := range words {
		lo, hi = min(lo, w.Count), max(hi, w.Count)
	}

	face := basicfont.Face7x13
	lineHeight := float64(face.Metrics().Height.Ceil())

	out := make([]Item, len(words))
	for i, w := range words {
		scale := opts.MinScale
		if hi > lo {
			scale += (opts.MaxScale - opts.MinScale) * float64(w.Count-lo) / float64(hi-lo)
		}
		advance := float64(font.MeasureString(face, w.Text).Ceil())
		out[i] = Item{
			Label: w.Text,
			Size: geom.Size{
				Width:  int(math.Ceil(advance*scale)) + 2*opts.Padding,
				Height: int(math.Ceil(lineHeight*scale)) + 2*opts.Padding,
			},
		}
	}
	return out
}
