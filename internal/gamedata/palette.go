package gamedata

import "github.com/gdamore/tcell/v2"

// TileStyle is how one tile kind (or the player) is drawn.
type TileStyle struct {
	ID    string `json:"id"`    // Tile kind name (e.g., "wall") or "player"
	Glyph string `json:"glyph"` // Single character for rendering (e.g., "#")
	Color string `json:"color"` // Hex color code (e.g., "#B22222")
}

// GlyphRune returns the glyph as a rune for rendering.
func (s TileStyle) GlyphRune() rune {
	if len(s.Glyph) == 0 {
		return '?'
	}
	return rune(s.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (s TileStyle) TCellColor() tcell.Color {
	color, err := ParseHexColor(s.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// PaletteFile represents the structure of palette.json.
type PaletteFile struct {
	Tiles []TileStyle `json:"tiles"`
}

// Palette maps tile ids to their styles.
type Palette map[string]TileStyle

// Lookup returns the style for id, or a plain '?' when the palette lacks it.
func (p Palette) Lookup(id string) TileStyle {
	if s, ok := p[id]; ok {
		return s
	}
	return TileStyle{ID: id, Glyph: "?", Color: "#FFFFFF"}
}

// LoadPalette loads the embedded palette.json.
func LoadPalette() (Palette, error) {
	file, err := Load[PaletteFile]("palette.json")
	if err != nil {
		return nil, err
	}
	palette := make(Palette, len(file.Tiles))
	for _, s := range file.Tiles {
		palette[s.ID] = s
	}
	return palette, nil
}

// MustLoadPalette loads the embedded palette, panicking on error.
func MustLoadPalette() Palette {
	palette, err := LoadPalette()
	if err != nil {
		panic(err)
	}
	return palette
}
