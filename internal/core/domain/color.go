package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGB color with channels in the 0..1 range, matching the
// Sheets API color representation.
type Color struct {
	Red   float64
	Green float64
	Blue  float64
}

// ParseHexColor parses a "#RRGGBB" (or "RRGGBB") color string.
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		ch[i] = float64(v) / 255
	}
	return Color{Red: ch[0], Green: ch[1], Blue: ch[2]}, nil
}
