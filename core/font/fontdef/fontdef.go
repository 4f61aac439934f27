package fontdef

import (
	"fmt"
	"strings"
)

// Descriptor mirrors the renderer's font definition record.
type Descriptor struct {
	FontCode uint8
	FontName string

	Width, Height      uint8 // display cell
	DataCols, DataRows uint8 // glyph bitmap

	HSpace uint8 // line spacing
	WSpace uint8 // character spacing

	Latin1   string // single-byte tables
	JISX0201 string
	Latin1Ex string

	Wide        string // double-byte glyph data
	WideIdx     string // Unicode index of Wide
	WideMissing string // glyph for unsupported characters
	WideCount   int

	Opt uint32
}

// Geometry is the cell and bitmap size of a font.
type Geometry struct {
	Width, Height      int
	DataCols, DataRows int
}

// Binding names the glyph tables a factory refers to.
type Binding struct {
	Latin1, JISX0201, Latin1Ex string
	Wide, WideIdx, WideMissing string
}

// Symbol names of the generated tables for a font base name.
func SingleByteName(base string) string  { return "font_" + base + "r" }
func X0201Name(base string) string       { return "font_" + base + "r_jisx201" }
func Latin1ExName(base string) string    { return "font_" + base + "r_latin1ex" }
func UnsupportedName(base string) string { return "font_" + base + "k_unsupported" }

// WideBase is the name stem of a variant's double-byte tables, e.g.
// "shinonome12k_std".
func WideBase(base, variant string) string {
	return base + "k" + Suffix(variant)
}

// Suffix turns a variant name into the suffix used for symbols, "std" → "_std".
func Suffix(variant string) string {
	if variant == "" || strings.HasPrefix(variant, "_") {
		return variant
	}
	return "_" + variant
}

// NewBinding returns the table names of a variant.
func NewBinding(base, variant string) Binding {
	wb := WideBase(base, variant)
	return Binding{
		Latin1:      SingleByteName(base),
		JISX0201:    X0201Name(base),
		Latin1Ex:    Latin1ExName(base),
		Wide:        "font_" + wb + "_data",
		WideIdx:     "font_" + wb + "_idx",
		WideMissing: UnsupportedName(base),
	}
}

// Factory creates descriptors for one character-set variant of a font.
type Factory struct {
	Base     string // font base name, e.g. "shinonome12"
	Variant  string // e.g. "std"
	Desc     string // human readable font description
	Geometry Geometry
	Count    int // number of double-byte glyphs
	Binding  Binding
}

// NewFactory creates the factory for a variant with count glyphs.
func NewFactory(base, desc, variant string, g Geometry, count int) Factory {
	if g.DataCols == 0 {
		g.DataCols = g.Width
	}
	if g.DataRows == 0 {
		g.DataRows = g.Height
	}
	return Factory{
		Base:     base,
		Variant:  variant,
		Desc:     desc,
		Geometry: g,
		Count:    count,
		Binding:  NewBinding(base, variant),
	}
}

// Name is the name of the factory function, e.g. "createFontshinonome12_std".
func (f Factory) Name() string {
	return "createFont" + f.Base + Suffix(f.Variant)
}

// FontName is the name stored in descriptors.
func (f Factory) FontName() string {
	return fmt.Sprintf("%s (%s%s, %d)", f.Desc, f.Base, Suffix(f.Variant), f.Count)
}

// Create fills the registry slot id and returns its descriptor. For ids
// without a slot, the registry's default descriptor is returned.
func (f Factory) Create(reg *Registry, id, lineSpace, charSpace uint8, opt uint32) Descriptor {
	desc := Descriptor{
		FontCode:    id,
		FontName:    f.FontName(),
		Width:       uint8(f.Geometry.Width),
		Height:      uint8(f.Geometry.Height),
		DataCols:    uint8(f.Geometry.DataCols),
		DataRows:    uint8(f.Geometry.DataRows),
		HSpace:      lineSpace,
		WSpace:      charSpace,
		Latin1:      f.Binding.Latin1,
		JISX0201:    f.Binding.JISX0201,
		Latin1Ex:    f.Binding.Latin1Ex,
		Wide:        f.Binding.Wide,
		WideIdx:     f.Binding.WideIdx,
		WideMissing: f.Binding.WideMissing,
		WideCount:   f.Count,
		Opt:         opt,
	}
	if !reg.store(id, desc) {
		tracer().Infof("%s: no font slot %d, returning default font", f.Name(), id)
		return reg.Default()
	}
	tracer().Debugf("%s: slot %d = %s", f.Name(), id, desc.FontName)
	return desc
}

// Header declares the factories of a font and a default alias.
type Header struct {
	Base      string
	Factories []Factory
	Default   string // variant the alias refers to
}

// NewHeader declares factories, with the alias bound to variant def. If no
// factory exists for def, the alias refers to the first factory.
func NewHeader(base string, factories []Factory, def string) Header {
	h := Header{Base: base, Factories: factories, Default: def}
	if _, ok := h.DefaultFactory(); !ok && len(factories) > 0 {
		tracer().Infof("no %q variant for %s, default alias uses %q",
			def, base, factories[0].Variant)
		h.Default = factories[0].Variant
	}
	return h
}

// Alias is the name of the default factory function.
func (h Header) Alias() string {
	return "createFont" + h.Base
}

// Target is the name of the factory function the alias forwards to.
func (h Header) Target() string {
	return h.Alias() + Suffix(h.Default)
}

// DefaultFactory returns the factory the alias forwards to.
func (h Header) DefaultFactory() (Factory, bool) {
	for _, f := range h.Factories {
		if f.Variant == h.Default {
			return f, true
		}
	}
	return Factory{}, false
}
