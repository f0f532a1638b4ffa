package sizes

import (
	"math/rand/v2"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
)

// Random returns n sizes with each dimension uniform in [lo, hi].
func Random(n int, lo, hi geom.Size, seed uint64) ([]geom.Size, error) {
	if err := errors.ValidateCount(n, 0); err != nil {
		return nil, err
	}
	if err := errors.ValidateSizeRange(lo.Width, lo.Height, hi.Width, hi.Height); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	out := make([]geom.Size, n)
	for i := range out {
		out[i] = geom.Size{
			Width:  lo.Width + rng.IntN(hi.Width-lo.Width+1),
			Height: lo.Height + rng.IntN(hi.Height-lo.Height+1),
		}
	}
	return out, nil
}
