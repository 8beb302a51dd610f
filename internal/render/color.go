package render

import "image/color"

// Palette used by the placeholder art.
var (
	Black     = color.RGBA{0x00, 0x00, 0x00, 0xff}
	White     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	Gray      = color.RGBA{0x80, 0x80, 0x80, 0xff}
	DarkGray  = color.RGBA{0x33, 0x33, 0x33, 0xff}
	Red       = color.RGBA{0xff, 0x00, 0x00, 0xff}
	Green     = color.RGBA{0x00, 0xff, 0x00, 0xff}
	Yellow    = color.RGBA{0xff, 0xff, 0x00, 0xff}
	Blue      = color.RGBA{0x22, 0x44, 0xaa, 0xff}
	Brown     = color.RGBA{0x8b, 0x45, 0x13, 0xff}
	Grass     = color.RGBA{0x22, 0x8b, 0x22, 0xff}
	Stone     = color.RGBA{0x55, 0x55, 0x55, 0xff}
	Panel     = color.RGBA{0x00, 0x00, 0x44, 0xff}
	Highlight = color.RGBA{0xff, 0xd7, 0x00, 0xff}
)
