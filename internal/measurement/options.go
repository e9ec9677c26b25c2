package measurement

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Options is the per-record configuration captured at creation.
// It is a value: the With* methods return modified copies, and the target
// list is copied on the way in and out so records never share it.
type Options struct {
	LineColor    color.RGBA
	LabelColor   color.RGBA
	LineWidth    float64
	FontSize     float64
	FontFamily   string
	SnapMode     SnapMode
	SnapEnabled  bool
	SnapDistance float64
	Dynamic      bool

	targets []Target
}

// DefaultOptions returns the built-in style: cyan lines, white labels, vertex snapping
func DefaultOptions() Options {
	return Options{
		LineColor:    color.RGBA{R: 100, G: 200, B: 255, A: 255},
		LabelColor:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		LineWidth:    2,
		FontSize:     12,
		FontFamily:   "JetBrains Mono",
		SnapMode:     SnapVertex,
		SnapEnabled:  true,
		SnapDistance: 0.05,
	}
}

// Targets returns a copy of the objects considered for snapping and editing
func (o Options) Targets() []Target {
	return append([]Target(nil), o.targets...)
}

// TargetIDs returns the ids of the target set in order
func (o Options) TargetIDs() []string {
	if len(o.targets) == 0 {
		return nil
	}
	ids := make([]string, 0, len(o.targets))
	for _, t := range o.targets {
		ids = append(ids, t.ID())
	}
	return ids
}

// WithTargets returns a copy with the given target set
func (o Options) WithTargets(targets ...Target) Options {
	o.targets = append([]Target(nil), targets...)
	return o
}

// WithSnap returns a copy with the given snap settings
func (o Options) WithSnap(mode SnapMode, distance float64, enabled bool) Options {
	o.SnapMode = normalizeSnapMode(mode)
	o.SnapDistance = distance
	o.SnapEnabled = enabled
	return o
}

// captured returns the copy a record or controller holds: its own target
// list and an explicit snap mode
func (o Options) captured() Options {
	o.SnapMode = normalizeSnapMode(o.SnapMode)
	return o.WithTargets(o.targets...)
}

// WithDynamic returns a copy with live anchor tracking switched on or off
func (o Options) WithDynamic(dynamic bool) Options {
	o.Dynamic = dynamic
	return o
}

// FormatColor renders a color as #rrggbb, or #rrggbbaa when not opaque
func FormatColor(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor reads #rgb, #rrggbb or #rrggbbaa
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
