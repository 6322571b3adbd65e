package geo

// Palette is a list of CSS hex colours handed out to connections by index.
type Palette []string

// DefaultColor is used when a palette is empty.
const DefaultColor = "#ffffff"

// VectorPalette suits light and dark map backgrounds alike.
var VectorPalette = Palette{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7",
	"#DDA0DD", "#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
	"#F8C471", "#76D7C4", "#F1948A", "#85C1E9", "#D7BDE2",
	"#F9E79F", "#ABEBC6", "#EDBB99", "#A569BD", "#5DADE2",
}

// BrightPalette is tuned for contrast against dark ocean backgrounds.
var BrightPalette = Palette{
	"#FF9E6D", "#6DFF9E", "#6DAFFF", "#FF6DAF", "#FFD46D",
	"#9E6DFF", "#6DFFED", "#FFB36D", "#6DFF80", "#AF6DFF",
	"#FF6D9E", "#80FF6D", "#FF8A6D", "#6DC8FF", "#FF6DE2",
	"#D4FF6D", "#FF6D80", "#6DFFD4", "#FFAF6D", "#C86DFF",
}

// At returns the colour for index i, wrapping around the end of the palette.
// Negative indices wrap too.
func (p Palette) At(i int) string {
	if len(p) == 0 {
		return DefaultColor
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// PaletteByName returns the named palette: "vector" or "bright".
func PaletteByName(name string) (Palette, bool) {
	switch name {
	case "vector":
		return VectorPalette, true
	case "bright":
		return BrightPalette, true
	default:
		return nil, false
	}
}
