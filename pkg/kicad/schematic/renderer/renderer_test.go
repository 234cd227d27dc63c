package renderer

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/OpenTraceLab/trace/pkg/kicad/schematic"
	"github.com/OpenTraceLab/trace/pkg/kicad/sexp"
)

const dividerFile = "../../../../testdata/divider.kicad_sch"

const existingWire = schematic.UUID("0d4f6a2e-1111-4a5b-9c8d-00000000a001")

func loadDivider(t *testing.T) *schematic.Schematic {
	t.Helper()
	sch, err := schematic.ParseFile(dividerFile)
	if err != nil {
		t.Fatalf("Failed to parse schematic: %v", err)
	}
	return sch
}

func closeTo(got color.RGBA, want color.NRGBA) bool {
	diff := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return diff(got.R, want.R) < 8 && diff(got.G, want.G) < 8 && diff(got.B, want.B) < 8
}

// pixelAt returns the image pixel under a world position, using the same
// camera fit as RenderSchematic.
func pixelAt(t *testing.T, sch *schematic.Schematic, opts RenderOptions, p sexp.Position) color.RGBA {
	t.Helper()
	img, err := RenderSchematic(sch, opts)
	if err != nil {
		t.Fatalf("RenderSchematic failed: %v", err)
	}
	camera := NewCamera(opts.Width, opts.Height)
	camera.Fit(contentBounds(sch), opts.Fill)
	x, y := camera.WorldToScreen(p)
	return img.RGBAAt(int(x), int(y))
}

func TestRenderWire(t *testing.T) {
	sch := loadDivider(t)
	opts := DefaultRenderOptions()
	mid := sexp.Position{X: 120.65, Y: 54.61}

	light := GetSchematicColors(ThemeLight)
	if got := pixelAt(t, sch, opts, mid); !closeTo(got, light.Wire) {
		t.Errorf("Expected wire color %v, got %v", light.Wire, got)
	}

	opts.Routed = map[schematic.UUID]bool{existingWire: true}
	if got := pixelAt(t, sch, opts, mid); !closeTo(got, light.Routed) {
		t.Errorf("Expected routed color %v, got %v", light.Routed, got)
	}

	opts.ShowWires = false
	if got := pixelAt(t, sch, opts, mid); !closeTo(got, light.Background) {
		t.Errorf("Expected background with wires hidden, got %v", got)
	}
}

func TestRenderBackground(t *testing.T) {
	sch := loadDivider(t)
	opts := DefaultRenderOptions()
	opts.Theme = ThemeDark

	img, err := RenderSchematic(sch, opts)
	if err != nil {
		t.Fatalf("RenderSchematic failed: %v", err)
	}
	if got := img.RGBAAt(0, 0); !closeTo(got, GetSchematicColors(ThemeDark).Background) {
		t.Errorf("Expected dark background in the corner, got %v", got)
	}
}

func TestRenderJunction(t *testing.T) {
	sch := loadDivider(t)
	at := sexp.Position{X: 127, Y: 60.96}
	sch.AddJunction(at, "j1")

	opts := DefaultRenderOptions()
	if got := pixelAt(t, sch, opts, at); !closeTo(got, GetSchematicColors(ThemeLight).Junction) {
		t.Errorf("Expected junction color, got %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	sch := loadDivider(t)
	opts := DefaultRenderOptions()
	opts.Width, opts.Height = 320, 200

	var buf bytes.Buffer
	if err := WritePNG(&buf, sch, opts); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Errorf("Expected 320x200 image, got %v", b)
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := RenderSchematic(nil, DefaultRenderOptions()); err == nil {
		t.Error("Expected error for nil schematic")
	}
	opts := DefaultRenderOptions()
	opts.Width = 0
	if _, err := RenderSchematic(loadDivider(t), opts); err == nil {
		t.Error("Expected error for empty image")
	}
}

func TestCameraRoundTrip(t *testing.T) {
	camera := NewCamera(800, 600)
	bbox := sexp.NewBoundingBox()
	bbox.Expand(sexp.Position{X: 0, Y: 0})
	bbox.Expand(sexp.Position{X: 100, Y: 50})
	camera.Fit(bbox, 0.5)

	if camera.Zoom != 4 {
		t.Errorf("Expected zoom 4, got %v", camera.Zoom)
	}
	x, y := camera.WorldToScreen(sexp.Position{X: 50, Y: 25})
	if x != 400 || y != 300 {
		t.Errorf("Expected center to map to image center, got (%v, %v)", x, y)
	}
	p := camera.ScreenToWorld(200, 200)
	if p.X != 0 || p.Y != 0 {
		t.Errorf("Expected (200, 200) to map back to the origin, got %+v", p)
	}
}

func TestParseTheme(t *testing.T) {
	if th, ok := ParseTheme("dark"); !ok || th != ThemeDark {
		t.Errorf("Expected dark theme, got %v", th)
	}
	if _, ok := ParseTheme("sepia"); ok {
		t.Error("Expected unknown theme to be rejected")
	}
}
