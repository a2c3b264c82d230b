package outline

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"github.com/chazu/cookiecut/pkg/geom"
)

// testFont parses the embedded Go Regular face so tests do not depend
// on system font files.
func testFont(t *testing.T) *sfnt.Font {
	t.Helper()
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("parse embedded font: %v", err)
	}
	return f
}

func TestLoadFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go-regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFont(path); err != nil {
		t.Fatalf("LoadFont() error = %v", err)
	}

	if _, err := LoadFont(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Fatal("LoadFont() on missing file: want error, got nil")
	}
}

func TestGlyphContours(t *testing.T) {
	f := testFont(t)
	tests := []struct {
		name        string
		r           rune
		minContours int
	}{
		{"hole-free letter", 'I', 1},
		{"letter with counter", 'O', 2},
		{"letter with two counters", 'B', 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contours, err := Glyph(f, tt.r, 50)
			if err != nil {
				t.Fatalf("Glyph(%q) error = %v", tt.r, err)
			}
			if len(contours) < tt.minContours {
				t.Errorf("Glyph(%q) = %d contours, want at least %d",
					tt.r, len(contours), tt.minContours)
			}
		})
	}
}

func TestGlyphNotFound(t *testing.T) {
	f := testFont(t)
	_, err := Glyph(f, '\U0001F600', 50)
	if !errors.Is(err, ErrGlyphNotFound) {
		t.Fatalf("Glyph(emoji) error = %v, want ErrGlyphNotFound", err)
	}
}

func TestGlyphEmptyOutline(t *testing.T) {
	f := testFont(t)
	_, err := Glyph(f, ' ', 50)
	if !errors.Is(err, ErrEmptyGlyph) {
		t.Fatalf("Glyph(space) error = %v, want ErrEmptyGlyph", err)
	}
}

func TestGlyphCenteredAndScaled(t *testing.T) {
	f := testFont(t)
	contours, err := Glyph(f, 'O', 50)
	if err != nil {
		t.Fatal(err)
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range contours {
		for _, p := range c {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}

	if cx := (minX + maxX) / 2; math.Abs(cx) > 1e-9 {
		t.Errorf("bounding box x center = %g, want 0", cx)
	}
	if cy := (minY + maxY) / 2; math.Abs(cy) > 1e-9 {
		t.Errorf("bounding box y center = %g, want 0", cy)
	}

	// A capital O at 50 mm em size lands well within the em square but
	// is no tiny speck either.
	w, h := maxX-minX, maxY-minY
	if w <= 15 || w > 50 || h <= 15 || h > 50 {
		t.Errorf("glyph bounds = %.1f x %.1f mm, want within (15, 50]", w, h)
	}
}

func TestGlyphFillHasCounter(t *testing.T) {
	// The orientation convention has to put the counter of "O" on the
	// hole side, not the silhouette side.
	f := testFont(t)
	contours, err := Glyph(f, 'O', 50)
	if err != nil {
		t.Fatal(err)
	}
	fill, err := geom.Resolve(contours)
	if err != nil {
		t.Fatal(err)
	}

	if got := fill.Components(); got != 1 {
		t.Errorf("Components() = %d, want 1", got)
	}
	var holes int
	for _, ring := range fill.Rings() {
		if ring.Hole {
			holes++
		}
	}
	if holes != 1 {
		t.Errorf("holes = %d, want 1", holes)
	}
	if fill.Area() <= 0 {
		t.Errorf("Area() = %g, want positive", fill.Area())
	}
}
