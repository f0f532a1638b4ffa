package layouter

import (
	"iter"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/distribution"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/sizes"
)

const (
	width  = 800
	height = 600
)

var (
	center  = geom.Pt(width/2, height/2)
	minSize = geom.Sz(30, 30)
	maxSize = geom.Sz(50, 50)
)

// fixedPoints is a finite distribution used to exercise exhaustion.
type fixedPoints struct {
	center geom.Point
	points []geom.Point
}

func (f fixedPoints) Center() geom.Point { return f.center }

func (f fixedPoints) Points() iter.Seq[geom.Point] { return slices.Values(f.points) }

func newCloud(t *testing.T, existing int) *Layouter {
	t.Helper()
	l := NewWithDistribution(distribution.NewArchimedeanSpiral(center))
	fill(t, l, existing, 1)
	return l
}

func fill(t *testing.T, l *Layouter, n int, seed uint64) {
	t.Helper()
	in, err := sizes.Random(n, minSize, maxSize, seed)
	if err != nil {
		t.Fatalf("sizes.Random: %v", err)
	}
	for _, s := range in {
		if _, err := l.PutNext(s); err != nil {
			t.Fatalf("PutNext(%v): %v", s, err)
		}
	}
}

func assertNoIntersections(t *testing.T, rects []geom.Rectangle) {
	t.Helper()
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Intersects(rects[j]) {
				t.Fatalf("rectangles %d %v and %d %v intersect", i, rects[i], j, rects[j])
			}
		}
	}
}

func TestNew(t *testing.T) {
	l := New(center)
	if l.Center() != center {
		t.Errorf("Center() = %v, want %v", l.Center(), center)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	if _, ok := l.Distribution().(*distribution.ArchimedeanSpiral); !ok {
		t.Errorf("default distribution = %T, want *ArchimedeanSpiral", l.Distribution())
	}
	if l.Distribution().Center() != center {
		t.Errorf("distribution center = %v, want %v", l.Distribution().Center(), center)
	}
}

func TestPutNextRejectsInvalidSize(t *testing.T) {
	tests := []struct {
		name string
		size geom.Size
	}{
		{"negative size", geom.Sz(-1, -1)},
		{"negative width", geom.Sz(-1, 0)},
		{"negative height", geom.Sz(0, -1)},
		{"width above limit", geom.Sz(geom.MaxCoordinate+1, 1)},
		{"max int height", geom.Sz(1, math.MaxInt)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newCloud(t, 3)
			before := l.Rectangles()

			_, err := l.PutNext(tt.size)
			if !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Fatalf("PutNext(%v) error = %v, want %s", tt.size, err, errors.ErrCodeInvalidArgument)
			}
			if !slices.Equal(l.Rectangles(), before) {
				t.Error("cloud changed after a rejected PutNext")
			}
		})
	}
}

func TestPutNextReturnsRequestedSize(t *testing.T) {
	l := newCloud(t, 0)
	size := geom.Sz(minSize.Width, maxSize.Height)

	r, err := l.PutNext(size)
	if err != nil {
		t.Fatalf("PutNext: %v", err)
	}
	if r.Size != size {
		t.Errorf("Size = %v, want %v", r.Size, size)
	}
	if last := l.Rectangles()[l.Len()-1]; last.Size != size {
		t.Errorf("stored Size = %v, want %v", last.Size, size)
	}
}

func TestPutNextAppends(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		existing int
	}{
		{"one rectangle to empty cloud", 1, 0},
		{"one rectangle to non-empty cloud", 1, 1},
		{"some rectangles to empty cloud", 2, 0},
		{"some rectangles to non-empty cloud", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newCloud(t, tt.existing)
			if l.Len() != tt.existing {
				t.Fatalf("Len() = %d, want %d", l.Len(), tt.existing)
			}
			before := l.Rectangles()

			fill(t, l, tt.count, 2)

			if got, want := l.Len(), tt.existing+tt.count; got != want {
				t.Errorf("Len() = %d, want %d", got, want)
			}
			if !slices.Equal(l.Rectangles()[:tt.existing], before) {
				t.Error("existing rectangles changed")
			}
		})
	}
}

func TestPutNextDoesNotIntersectExisting(t *testing.T) {
	for _, existing := range []int{0, 1, 100} {
		l := newCloud(t, existing)
		r, err := l.PutNext(geom.Sz(minSize.Width, maxSize.Height))
		if err != nil {
			t.Fatalf("PutNext: %v", err)
		}
		for i, other := range l.Rectangles()[:existing] {
			if other.Intersects(r) {
				t.Errorf("existing=%d: new rectangle %v intersects #%d %v", existing, r, i, other)
			}
		}
	}
}

func TestRectanglesPairwiseDisjoint(t *testing.T) {
	for _, n := range []int{0, 2, 100} {
		l := newCloud(t, n)
		if l.Len() != n {
			t.Fatalf("Len() = %d, want %d", l.Len(), n)
		}
		assertNoIntersections(t, l.Rectangles())
	}
}

func TestFirstRectangleAtCenter(t *testing.T) {
	l := New(geom.Pt(400, 300))

	first, err := l.PutNext(geom.Sz(30, 30))
	if err != nil {
		t.Fatalf("PutNext: %v", err)
	}
	if want := geom.Rect(385, 285, 30, 30); first != want {
		t.Errorf("first = %v, want %v", first, want)
	}
	if first.Center() != l.Center() {
		t.Errorf("first center = %v, want %v", first.Center(), l.Center())
	}

	second, err := l.PutNext(geom.Sz(30, 30))
	if err != nil {
		t.Fatalf("PutNext: %v", err)
	}
	if second.Intersects(first) {
		t.Errorf("second %v intersects first %v", second, first)
	}
}

func TestDeterministic(t *testing.T) {
	in, err := sizes.Random(50, minSize, maxSize, 7)
	if err != nil {
		t.Fatal(err)
	}

	a, b := New(center), New(center)
	ra, err := a.PutAll(in)
	if err != nil {
		t.Fatal(err)
	}
	rb, err := b.PutAll(in)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(ra, rb) {
		t.Error("same center and sizes should produce identical clouds")
	}
	if !slices.Equal(a.Rectangles(), ra) {
		t.Error("PutAll result should match Rectangles()")
	}
}

func TestZeroSizeAccepted(t *testing.T) {
	l := newCloud(t, 5)
	r, err := l.PutNext(geom.Sz(0, 0))
	if err != nil {
		t.Fatalf("PutNext(0x0): %v", err)
	}
	// a degenerate rectangle intersects nothing, so the first candidate wins
	if r != geom.Rect(center.X, center.Y, 0, 0) {
		t.Errorf("PutNext(0x0) = %v, want empty rectangle at center", r)
	}
	if l.Len() != 6 {
		t.Errorf("Len() = %d, want 6", l.Len())
	}
}

func TestRectanglesIsACopy(t *testing.T) {
	l := newCloud(t, 2)
	rects := l.Rectangles()
	rects[0] = geom.Rect(0, 0, 1000, 1000)
	if l.Rectangles()[0] == rects[0] {
		t.Error("mutating the returned slice should not affect the cloud")
	}
}

func TestInjectedDistribution(t *testing.T) {
	rings := distribution.NewRings(geom.Pt(0, 0), 10)
	l := NewWithDistribution(rings)
	if l.Distribution() != rings {
		t.Error("Distribution() should return the injected distribution")
	}

	for range 9 {
		if _, err := l.PutNext(geom.Sz(10, 10)); err != nil {
			t.Fatal(err)
		}
	}
	// 10x10 boxes on a 10px grid tile the 3x3 block around the center
	if got, want := l.Bounds(), geom.Rect(-15, -15, 30, 30); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	assertNoIntersections(t, l.Rectangles())
}

func TestExhaustedDistribution(t *testing.T) {
	d := fixedPoints{center: geom.Pt(0, 0), points: []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 0}}}
	l := NewWithDistribution(d)

	if _, err := l.PutNext(geom.Sz(10, 10)); err != nil {
		t.Fatalf("first PutNext: %v", err)
	}
	_, err := l.PutNext(geom.Sz(10, 10))
	if !errors.Is(err, errors.ErrCodeSearchExhausted) {
		t.Fatalf("error = %v, want %s", err, errors.ErrCodeSearchExhausted)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
	if l.LastSteps() != 2 {
		t.Errorf("LastSteps() = %d, want 2", l.LastSteps())
	}
}

func TestPutNextStopsAtCoordinateLimit(t *testing.T) {
	l := New(geom.Pt(geom.MaxCoordinate, 0))
	first, err := l.PutNext(geom.Sz(10, 10))
	if err != nil {
		t.Fatalf("first PutNext: %v", err)
	}
	if !first.InRange() {
		t.Fatalf("first rectangle %v out of range", first)
	}

	// The spiral crosses the limit at radius 6, before any free spot.
	_, err = l.PutNext(geom.Sz(10, 10))
	if !errors.Is(err, errors.ErrCodeSearchExhausted) {
		t.Fatalf("error = %v, want %s", err, errors.ErrCodeSearchExhausted)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestMaxSteps(t *testing.T) {
	l := New(center, WithMaxSteps(1))
	if l.MaxSteps() != 1 {
		t.Fatalf("MaxSteps() = %d, want 1", l.MaxSteps())
	}
	if _, err := l.PutNext(geom.Sz(30, 30)); err != nil {
		t.Fatalf("first PutNext: %v", err)
	}
	_, err := l.PutNext(geom.Sz(30, 30))
	if !errors.Is(err, errors.ErrCodeSearchExhausted) {
		t.Fatalf("error = %v, want %s", err, errors.ErrCodeSearchExhausted)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}

	if New(center, WithMaxSteps(-5)).MaxSteps() != 0 {
		t.Error("negative max steps should mean unbounded")
	}
}

func TestPutAllStopsAtFirstError(t *testing.T) {
	l := New(center)
	placed, err := l.PutAll([]geom.Size{{Width: 10, Height: 10}, {Width: -1, Height: 5}, {Width: 10, Height: 10}})
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Fatalf("error = %v, want %s", err, errors.ErrCodeInvalidArgument)
	}
	if len(placed) != 1 || l.Len() != 1 {
		t.Errorf("placed %d (cloud %d), want 1", len(placed), l.Len())
	}
}
