package export

import (
	"fmt"
	"image/color"

	"github.com/24dai03-saifchaus/algonexus/internal/trace"
)

var (
	Background = color.RGBA{0xf8, 0xfa, 0xfc, 0xff}
	Baseline   = color.RGBA{0xcb, 0xd5, 0xe1, 0xff}

	// RoleColors are the bar fills per role.
	RoleColors = map[trace.Role]color.RGBA{
		trace.RoleIdle:     {0xd4, 0xd4, 0xd8, 0xff},
		trace.RoleCompare:  {0x25, 0x63, 0xeb, 0xff},
		trace.RoleSwap:     {0x7c, 0x3a, 0xed, 0xff},
		trace.RoleFound:    {0x05, 0x96, 0x69, 0xff},
		trace.RoleComplete: {0x10, 0xb9, 0x81, 0xff},
	}
)

// Hex renders c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func palette() color.Palette {
	p := color.Palette{Background, Baseline}
	for r := trace.RoleIdle; r <= trace.RoleComplete; r++ {
		p = append(p, RoleColors[r])
	}
	return p
}

// paletteIndex maps a role to its index in palette().
func paletteIndex(r trace.Role) uint8 {
	return uint8(2 + int(r))
}
