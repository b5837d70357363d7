// Package color parses CSS color values and formats them in the notations
// accepted by style settings (hex, rgb, hsl and their split forms).
package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor indicates a string that is not a recognised CSS color.
var ErrInvalidColor = errors.New("invalid color")

// Color is an RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Transparent is fully transparent black, the fallback for unparseable input.
var Transparent = Color{}

// Parse reads a CSS color: #rgb, #rgba, #rrggbb, #rrggbbaa, rgb()/rgba(),
// hsl()/hsla(), "transparent", or a CSS color keyword.
func Parse(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Transparent, fmt.Errorf("%w: empty", ErrInvalidColor)
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}

	if fn, args, ok := splitFunc(s); ok {
		switch fn {
		case "rgb", "rgba":
			return parseRGBFunc(s, args)
		case "hsl", "hsla":
			return parseHSLFunc(s, args)
		}
		return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	if s == "transparent" {
		return Transparent, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
			A: float64(c.A) / 255,
		}, nil
	}

	return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// ParseOr parses s and returns fallback when s is not a valid color.
func ParseOr(s string, fallback Color) Color {
	c, err := Parse(s)
	if err != nil {
		return fallback
	}
	return c
}

func parseHex(s string) (Color, error) {
	hex := s[1:]
	switch len(hex) {
	case 3, 4:
		// #rgb(a): each digit is doubled
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String()
	case 6, 8:
	default:
		return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}

	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// splitFunc splits "name(a, b, c)" into name and its arguments. Commas, spaces
// and a "/" alpha separator are all accepted.
func splitFunc(s string) (string, []string, bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	name := strings.TrimSpace(s[:open])
	inner := s[open+1 : len(s)-1]
	inner = strings.NewReplacer(",", " ", "/", " ").Replace(inner)
	return name, strings.Fields(inner), true
}

func parseRGBFunc(s string, args []string) (Color, error) {
	if len(args) != 3 && len(args) != 4 {
		return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := parseChannel(args[i], 255)
		if err != nil {
			return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		ch[i] = v
	}

	alpha := 1.0
	if len(args) == 4 {
		a, err := parseChannel(args[3], 1)
		if err != nil {
			return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = a
	}

	return Color{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

func parseHSLFunc(s string, args []string) (Color, error) {
	if len(args) != 3 && len(args) != 4 {
		return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	h, err := parseHue(args[0])
	if err != nil {
		return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	sat, err := parseChannel(args[1], 1)
	if err != nil {
		return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	light, err := parseChannel(args[2], 1)
	if err != nil {
		return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	alpha := 1.0
	if len(args) == 4 {
		if alpha, err = parseChannel(args[3], 1); err != nil {
			return Transparent, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}

	c := FromHSL(h, sat, light)
	c.A = alpha
	return c, nil
}

// parseChannel reads a number or percentage and scales it to [0, 1], where
// a bare number is relative to scale.
func parseChannel(s string, scale float64) (float64, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, err
		}
		return clamp(v / 100), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return clamp(v / scale), nil
}

func parseHue(s string) (float64, error) {
	s = strings.TrimSuffix(s, "deg")
	if turn, ok := strings.CutSuffix(s, "turn"); ok {
		v, err := strconv.ParseFloat(turn, 64)
		return v * 360, err
	}
	return strconv.ParseFloat(s, 64)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// FromHSL builds an opaque color from hue in degrees and saturation and
// lightness in [0, 1].
func FromHSL(h, s, l float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if s == 0 {
		return Color{R: l, G: l, B: l, A: 1}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hk := h / 360

	return Color{
		R: hueToRGB(p, q, hk+1.0/3),
		G: hueToRGB(p, q, hk),
		B: hueToRGB(p, q, hk-1.0/3),
		A: 1,
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// HSL returns hue in degrees [0, 360) and saturation and lightness in [0, 1].
func (c Color) HSL() (h, s, l float64) {
	maxC := math.Max(c.R, math.Max(c.G, c.B))
	minC := math.Min(c.R, math.Min(c.G, c.B))
	l = (maxC + minC) / 2

	d := maxC - minC
	if d == 0 {
		return 0, 0, l
	}

	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	switch maxC {
	case c.R:
		h = (c.G - c.B) / d
		if c.G < c.B {
			h += 6
		}
	case c.G:
		h = (c.B-c.R)/d + 2
	default:
		h = (c.R-c.G)/d + 4
	}
	return h * 60, s, l
}

// RGBA8 returns the channels scaled to 0-255 and rounded.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp(v) * 255))
}

// Hex returns #rrggbb, or #rrggbbaa when the color is not opaque.
func (c Color) Hex() string {
	r, g, b, a := c.RGBA8()
	if c.A < 1 {
		return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// RGBString returns rgb(r,g,b), or rgba(r,g,b,a) when the color is not opaque.
func (c Color) RGBString() string {
	r, g, b, _ := c.RGBA8()
	if c.A < 1 {
		return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, FormatNumber(c.A))
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
}

// RGBValues returns the 0-255 channels space-joined, e.g. "51 102 153".
func (c Color) RGBValues() string {
	r, g, b, _ := c.RGBA8()
	return fmt.Sprintf("%d %d %d", r, g, b)
}

// HSLValues returns "H S% L% A", e.g. "210 50% 40% 1".
func (c Color) HSLValues() string {
	h, s, l := c.HSL()
	return FormatNumber(h) + " " + Percent(s) + " " + Percent(l) + " " + FormatNumber(c.A)
}

// FormatNumber formats v with the shortest representation that round-trips,
// without an exponent. Values within 1e-9 of an integer print as integers.
func FormatNumber(v float64) string {
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		v = r
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Percent formats a [0, 1] fraction as a percentage such as "50%".
func Percent(v float64) string {
	return FormatNumber(v*100) + "%"
}
