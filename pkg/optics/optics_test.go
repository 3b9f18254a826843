package optics

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestComputeImageExamples(t *testing.T) {
	tests := []struct {
		name       string
		object     ObjectSpec
		lens       LensParameters
		wantDist   float64
		wantHeight float64
	}{
		{"real inverted", ObjectSpec{800, 100}, LensParameters{400, Converging}, 800, -100},
		{"virtual magnified", ObjectSpec{200, 50}, LensParameters{400, Converging}, -400, 100},
		{"diverging", ObjectSpec{500, 100}, LensParameters{400, Diverging}, -2000.0 / 9, 100 * (2000.0 / 9) / 500},
		{"clamped focal", ObjectSpec{800, 100}, LensParameters{50, Converging}, 1 / (1.0/200 - 1.0/800), -100 * (1 / (1.0/200 - 1.0/800)) / 800},
		{"clamped distance", ObjectSpec{5000, 100}, LensParameters{400, Converging}, 1 / (1.0/400 - 1.0/2000), -100 * (1 / (1.0/400 - 1.0/2000)) / 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeImage(tt.object, tt.lens)
			if !approx(got.Distance, tt.wantDist, eps) {
				t.Errorf("Distance = %v, want %v", got.Distance, tt.wantDist)
			}
			if !approx(got.Height, tt.wantHeight, eps) {
				t.Errorf("Height = %v, want %v", got.Height, tt.wantHeight)
			}
		})
	}
}

func TestThinLensIdentity(t *testing.T) {
	for f := MinFocalLength; f <= MaxFocalLength; f += 37 {
		for do := MinObjectDistance; do <= MaxObjectDistance; do += 13 {
			if do == f {
				continue
			}
			r := ComputeImage(ObjectSpec{Distance: do, Height: 10}, LensParameters{FocalLength: f})
			if got := 1/do + 1/r.Distance; !approx(got, 1/f, 1e-9) {
				t.Fatalf("f=%v do=%v: 1/do+1/di = %v, want %v", f, do, got, 1/f)
			}
		}
	}
}

func TestClampIdempotent(t *testing.T) {
	values := []float64{-1e9, -1000, -999.5, -1, 0, 0.5, 1, 150, 200, 450, 800, 1000, 1999, 2000, 2001, 1e9, math.Inf(1), math.Inf(-1)}
	clamps := map[string]func(float64) float64{
		"distance": ClampDistance,
		"height":   ClampHeight,
		"focal":    ClampFocalLength,
	}
	for name, clamp := range clamps {
		for _, v := range values {
			once := clamp(v)
			if twice := clamp(once); twice != once {
				t.Errorf("%s: clamp(clamp(%v)) = %v, want %v", name, v, twice, once)
			}
		}
	}
	if got := ClampDistance(0); got != 1 {
		t.Errorf("ClampDistance(0) = %v, want 1", got)
	}
	if got := ClampHeight(-5000); got != -1000 {
		t.Errorf("ClampHeight(-5000) = %v, want -1000", got)
	}
	if got := ClampFocalLength(900); got != 800 {
		t.Errorf("ClampFocalLength(900) = %v, want 800", got)
	}
}

func TestSignLaws(t *testing.T) {
	for f := MinFocalLength; f <= MaxFocalLength; f += 50 {
		for do := MinObjectDistance; do <= MaxObjectDistance; do += 25 {
			lens := LensParameters{FocalLength: f, Kind: Converging}
			obj := ObjectSpec{Distance: do, Height: 80}
			r := ComputeImage(obj, lens)
			switch {
			case do > f:
				if !r.Real() || r.Height >= 0 || !r.Inverted(obj) {
					t.Errorf("f=%v do=%v: got %+v, want real inverted image", f, do, r)
				}
			case do < f:
				if !r.Virtual() || r.Height <= 0 || r.Inverted(obj) {
					t.Errorf("f=%v do=%v: got %+v, want virtual upright image", f, do, r)
				}
			}

			lens.Kind = Diverging
			if r := ComputeImage(obj, lens); r.Distance >= 0 {
				t.Errorf("diverging f=%v do=%v: Distance = %v, want negative", f, do, r.Distance)
			}
		}
	}
}

func TestObjectAtFocalPoint(t *testing.T) {
	r := ComputeImage(ObjectSpec{Distance: 400, Height: 100}, LensParameters{FocalLength: 400})
	if !r.AtInfinity() {
		t.Fatalf("Distance = %v, want infinite", r.Distance)
	}
	if r.Finite() {
		t.Error("Finite() = true for image at infinity")
	}
	d, _ := r.Rounded()
	if d.String() != "∞" {
		t.Errorf("rounded distance = %q, want ∞", d.String())
	}
}

func TestNaNPropagates(t *testing.T) {
	r := ComputeImage(ObjectSpec{Distance: math.NaN(), Height: 10}, LensParameters{FocalLength: 400})
	if !math.IsNaN(r.Distance) {
		t.Errorf("Distance = %v, want NaN", r.Distance)
	}
	d, _ := r.Rounded()
	if !d.Invalid {
		t.Errorf("rounded = %+v, want invalid", d)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{-222.22, "-222"},
		{2.5, "3"},
		{-2.5, "-2"},
		{-2.6, "-3"},
		{0, "0"},
		{math.Inf(-1), "-∞"},
		{math.NaN(), "-"},
		{1e19, "∞"},
		{-3e20, "-∞"},
		{9e15, "9000000000000000"},
	}
	for _, tt := range tests {
		if got := Round(tt.in).String(); got != tt.want {
			t.Errorf("Round(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMagnification(t *testing.T) {
	obj := ObjectSpec{Distance: 800, Height: 100}
	r := ComputeImage(obj, LensParameters{FocalLength: 400})
	if m := r.Magnification(obj); !approx(m, -1, eps) {
		t.Errorf("Magnification = %v, want -1", m)
	}
	flat := ObjectSpec{Distance: 800}
	r = ComputeImage(flat, LensParameters{FocalLength: 400})
	if m := r.Magnification(flat); !approx(m, -1, eps) {
		t.Errorf("Magnification with zero height = %v, want -1", m)
	}
}

func TestLensKind(t *testing.T) {
	if Converging.Toggle() != Diverging || Diverging.Toggle() != Converging {
		t.Error("Toggle does not swap kinds")
	}
	for _, s := range []string{"converging", "convex", "c"} {
		if k, ok := ParseLensKind(s); !ok || k != Converging {
			t.Errorf("ParseLensKind(%q) = %v, %v", s, k, ok)
		}
	}
	for _, s := range []string{"diverging", "concave", "d"} {
		if k, ok := ParseLensKind(s); !ok || k != Diverging {
			t.Errorf("ParseLensKind(%q) = %v, %v", s, k, ok)
		}
	}
	if _, ok := ParseLensKind("prism"); ok {
		t.Error("ParseLensKind accepted an unknown kind")
	}
	if got := (LensParameters{FocalLength: 300, Kind: Diverging}).SignedFocalLength(); got != -300 {
		t.Errorf("SignedFocalLength = %v, want -300", got)
	}
}
