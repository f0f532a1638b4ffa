// Package sizes produces the rectangle sizes fed to the layouter.
//
// Two sources are supported:
//
//   - [Random]: n sizes drawn uniformly from an inclusive range with a seeded
//     PCG generator, so the same seed always yields the same cloud.
//   - [Words] and [Measure]: tokenise text, count word frequencies and size a
//     box per word from fixed-width font metrics, scaling frequent words up.
//
// Both return values ready for [layouter.Layouter.PutNext].
//
// [layouter.Layouter.PutNext]: github.com/matzehuels/tagcloud/pkg/layouter#Layouter.PutNext
package sizes
