package demo

import (
	"image/color"
	"strings"
)

// Material names a kind of item shown in a cell.
type Material string

const (
	BlackConcrete Material = "BLACK_CONCRETE"
	LimeConcrete  Material = "LIME_CONCRETE"
	EmeraldBlock  Material = "EMERALD_BLOCK"
	DiamondBlock  Material = "DIAMOND_BLOCK"
	IronBlock     Material = "IRON_BLOCK"

	WhiteWool     Material = "WHITE_WOOL"
	OrangeWool    Material = "ORANGE_WOOL"
	MagentaWool   Material = "MAGENTA_WOOL"
	LightBlueWool Material = "LIGHT_BLUE_WOOL"
	YellowWool    Material = "YELLOW_WOOL"
	LimeWool      Material = "LIME_WOOL"
	PinkWool      Material = "PINK_WOOL"
	GrayWool      Material = "GRAY_WOOL"
	LightGrayWool Material = "LIGHT_GRAY_WOOL"
	CyanWool      Material = "CYAN_WOOL"
	PurpleWool    Material = "PURPLE_WOOL"
	BlueWool      Material = "BLUE_WOOL"
	BrownWool     Material = "BROWN_WOOL"
	GreenWool     Material = "GREEN_WOOL"
	RedWool       Material = "RED_WOOL"
	BlackWool     Material = "BLACK_WOOL"
)

// Wools lists every wool color in dye order.
var Wools = []Material{
	WhiteWool, OrangeWool, MagentaWool, LightBlueWool,
	YellowWool, LimeWool, PinkWool, GrayWool,
	LightGrayWool, CyanWool, PurpleWool, BlueWool,
	BrownWool, GreenWool, RedWool, BlackWool,
}

var materialColors = map[Material]color.RGBA{
	BlackConcrete: {0x08, 0x0a, 0x0f, 0xff},
	LimeConcrete:  {0x5e, 0xa8, 0x18, 0xff},
	EmeraldBlock:  {0x2a, 0xcb, 0x57, 0xff},
	DiamondBlock:  {0x62, 0xdb, 0xd5, 0xff},
	IronBlock:     {0xdc, 0xdc, 0xdc, 0xff},
	WhiteWool:     {0xe9, 0xec, 0xec, 0xff},
	OrangeWool:    {0xf0, 0x76, 0x13, 0xff},
	MagentaWool:   {0xbd, 0x44, 0xb3, 0xff},
	LightBlueWool: {0x3a, 0xaf, 0xd9, 0xff},
	YellowWool:    {0xf8, 0xc6, 0x27, 0xff},
	LimeWool:      {0x70, 0xb9, 0x19, 0xff},
	PinkWool:      {0xed, 0x8d, 0xac, 0xff},
	GrayWool:      {0x3e, 0x44, 0x47, 0xff},
	LightGrayWool: {0x8e, 0x8e, 0x86, 0xff},
	CyanWool:      {0x15, 0x89, 0x91, 0xff},
	PurpleWool:    {0x79, 0x2a, 0xac, 0xff},
	BlueWool:      {0x35, 0x39, 0x9d, 0xff},
	BrownWool:     {0x72, 0x47, 0x28, 0xff},
	GreenWool:     {0x54, 0x6d, 0x1b, 0xff},
	RedWool:       {0xa1, 0x27, 0x22, 0xff},
	BlackWool:     {0x14, 0x15, 0x19, 0xff},
}

// Color returns the material's display color.
func (m Material) Color() color.Color {
	if c, ok := materialColors[m]; ok {
		return c
	}
	return color.RGBA{0xff, 0x00, 0xff, 0xff}
}

// Item is the payload of every demo cell: a material and an optional display
// name.
type Item struct {
	Material Material
	Name     string
}

// Color returns the item's display color.
func (i Item) Color() color.Color { return i.Material.Color() }

// Label returns the display name, or the material's initials when unnamed.
func (i Item) Label() string {
	if i.Name != "" {
		return i.Name
	}
	var b strings.Builder
	for _, part := range strings.Split(string(i.Material), "_") {
		if part != "" {
			b.WriteByte(part[0])
		}
	}
	return b.String()
}

// String implements fmt.Stringer.
func (i Item) String() string { return i.Label() }
