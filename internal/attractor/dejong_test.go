package attractor

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestNextStaysBounded(t *testing.T) {
	p := Default()
	x, y := 0.1, 0.1
	for i := 0; i < 10000; i++ {
		x, y = p.Next(x, y)
		if math.Abs(x) > 2 || math.Abs(y) > 2 {
			t.Fatalf("step %d left [-2,2]: (%f, %f)", i, x, y)
		}
	}
}

func TestProject(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		x, y   float64
		wx, wy float64
	}{
		{"identity", Params{Zoom: 1}, 1, 0.5, 1, 0.5},
		{"zoom", Params{Zoom: 2}, 1, 0.5, 2, 1},
		{"zoom out", Params{Zoom: 0.5}, 1, 0.5, 0.5, 0.25},
		{"offset", Params{Zoom: 1, XOffset: 0.5, YOffset: -1}, 1, 1, 1.5, 0},
		{"quarter turn", Params{Zoom: 1, Rotation: math.Pi / 2}, 1, 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.params.Project(tt.x, tt.y)
			if math.Abs(x-tt.wx) > 1e-9 || math.Abs(y-tt.wy) > 1e-9 {
				t.Errorf("Project(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestBlur(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	p := Params{BlurRadius: 0.1, BlurRatio: 0}
	if x, y := p.Blur(rng, 1, 1); x != 1 || y != 1 {
		t.Errorf("zero ratio moved point to (%v, %v)", x, y)
	}

	p = Params{BlurRadius: 0.1, BlurRatio: 1}
	moved := 0
	for i := 0; i < 100; i++ {
		x, y := p.Blur(rng, 0, 0)
		if math.Hypot(x, y) > 0.1+1e-12 {
			t.Fatalf("blurred point (%v, %v) outside radius", x, y)
		}
		if x != 0 || y != 0 {
			moved++
		}
	}
	if moved == 0 {
		t.Error("full ratio never moved a point")
	}
}

func TestSetParam(t *testing.T) {
	p := Default()
	for name := range p.GetParams() {
		if err := p.SetParam(name, 0.25); err != nil {
			t.Errorf("SetParam(%q): %v", name, err)
		}
	}
	for name, v := range p.GetParams() {
		if v != 0.25 {
			t.Errorf("%s = %v after SetParam, want 0.25", name, v)
		}
	}

	if err := p.SetParam("nope", 1); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}

	p.SetParam("blur_ratio", 3)
	if p.BlurRatio != 1 {
		t.Errorf("blur_ratio not clamped: %v", p.BlurRatio)
	}
}

func TestSetParamZoomFloor(t *testing.T) {
	for _, v := range []float64{0, -0.45, MinZoom / 2} {
		p := Default()
		p.SetParam("zoom", v)
		if p.Zoom != MinZoom {
			t.Errorf("zoom %v: expected floor %v, got %v", v, MinZoom, p.Zoom)
		}
		// the stored zoom is the one applied
		x, y := p.Project(0.5, 0.25)
		if math.Abs(x-0.5*MinZoom) > 1e-12 || math.Abs(y-0.25*MinZoom) > 1e-12 {
			t.Errorf("zoom %v: Project = (%v, %v)", v, x, y)
		}
	}
}

func TestRandomize(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := Default()
	p.Randomize(rng)
	for _, v := range []float64{p.A, p.B, p.C, p.D} {
		if v < -6 || v >= 6 {
			t.Errorf("coefficient %v out of [-6, 6)", v)
		}
	}
	if p.Zoom != 1 {
		t.Errorf("Randomize touched zoom: %v", p.Zoom)
	}
}

func TestParamNames(t *testing.T) {
	names := ParamNames()
	if len(names) != 10 {
		t.Fatalf("expected 10 names, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
