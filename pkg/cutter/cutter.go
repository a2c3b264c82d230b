// Package cutter runs the end-to-end pipeline: glyph outline extraction,
// fill reconstruction, wall ring offsetting, bridge synthesis, layer
// composition and solid export. The pipeline is a pure function from a
// Config to one mesh file; nothing is cached or shared between runs.
package cutter

import (
	"errors"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/chazu/cookiecut/pkg/bridge"
	"github.com/chazu/cookiecut/pkg/geom"
	"github.com/chazu/cookiecut/pkg/kernel"
	"github.com/chazu/cookiecut/pkg/layers"
	"github.com/chazu/cookiecut/pkg/outline"
)

// DefaultFontPath is the font used when none is given.
const DefaultFontPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"

// Config holds all parameters for one cutter generation run.
// All lengths are millimeters.
type Config struct {
	Text       string // exactly one character
	FontPath   string
	Size       float64 // nominal em height
	Wall       float64 // wall offset distance
	WallHeight float64 // wall height, base excluded
	LipHeight  float64 // thin cutting lip height
	Base       float64 // base plate thickness
	Clearance  float64 // inner clearance so the cut piece releases
	Bridge     float64 // bridge strut width
	CapHeight  float64 // reinforcement cap height, 0 disables
	Scale      float64 // final uniform scale, e.g. 1.08 for shrinkage
	Lip        layers.Placement
	Output     string // output path; empty means cutter_<char>.<ext>
}

// DefaultConfig returns a Config with the standard cutter dimensions.
func DefaultConfig() Config {
	return Config{
		FontPath:   DefaultFontPath,
		Size:       50,
		Wall:       1.6,
		WallHeight: 14.0,
		LipHeight:  0.8,
		Base:       1.2,
		Clearance:  0.30,
		Bridge:     1.2,
		CapHeight:  0,
		Scale:      1.0,
		Lip:        layers.LipBottom,
	}
}

// Validate checks the parts of the config that map to user mistakes.
func (c Config) Validate() error {
	if utf8.RuneCountInString(c.Text) != 1 {
		return fmt.Errorf("need exactly one character, got %q", c.Text)
	}
	if c.Size <= 0 {
		return errors.New("size must be positive")
	}
	if c.Wall <= 0 {
		return errors.New("wall thickness must be positive")
	}
	if c.WallHeight <= 0 {
		return errors.New("wall height must be positive")
	}
	if c.Clearance < 0 {
		return errors.New("clearance must not be negative")
	}
	if c.Scale <= 0 {
		return errors.New("scale must be positive")
	}
	if !c.Lip.Valid() {
		return fmt.Errorf("lip placement must be %q or %q", layers.LipTop, layers.LipBottom)
	}
	return nil
}

// Char returns the configured character.
func (c Config) Char() rune {
	r, _ := utf8.DecodeRuneInString(c.Text)
	return r
}

// OutputPath returns the configured output path, or the default
// cutter_<char>.stl next to the working directory.
func (c Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return fmt.Sprintf("cutter_%c.stl", c.Char())
}

// Generate runs the whole pipeline and writes the combined solid using
// the given kernel. It returns the written path. Any failure aborts the
// run before a file is produced.
func Generate(cfg Config, k kernel.Kernel) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	font, err := outline.LoadFont(cfg.FontPath)
	if err != nil {
		return "", err
	}
	contours, err := outline.Glyph(font, cfg.Char(), cfg.Size)
	if err != nil {
		return "", err
	}

	fill, err := geom.Resolve(contours)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", cfg.Char(), err)
	}

	envelope := geom.Offset(fill, cfg.Wall)
	ring := geom.Difference(envelope, geom.Offset(fill, cfg.Clearance))
	wall := bridge.Connect(fill, ring, envelope, cfg.Bridge, cfg.Wall)
	log.Printf("glyph %q: %d contour(s), wall components before bridges: %d, after: %d",
		cfg.Char(), len(contours), ring.Components(), wall.Components())

	stack := layers.Compose(fill, wall, layers.Spec{
		Base:       cfg.Base,
		Wall:       cfg.Wall,
		WallHeight: cfg.WallHeight,
		LipHeight:  cfg.LipHeight,
		CapHeight:  cfg.CapHeight,
		Clearance:  cfg.Clearance,
		Lip:        cfg.Lip,
	})
	if len(stack) == 0 {
		return "", fmt.Errorf("glyph %q produced no printable layers", cfg.Char())
	}

	solids := make([]kernel.Solid, 0, len(stack))
	for _, layer := range stack {
		s, err := k.Extrude(layer.Footprint, layer.Z0, layer.Height)
		if err != nil {
			return "", fmt.Errorf("extrude layer at z=%g: %w", layer.Z0, err)
		}
		solids = append(solids, s)
	}

	combined := k.Union(solids...)
	if cfg.Scale != 1.0 {
		combined = k.Scale(combined, cfg.Scale)
	}

	out := cfg.OutputPath()
	if err := k.Export(combined, out); err != nil {
		return "", fmt.Errorf("export %s: %w", out, err)
	}
	return out, nil
}
