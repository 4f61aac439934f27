/*
Package fontdef models the font descriptor record of the LCD renderer and the
factory functions which bind generated glyph tables to it.

The renderer keeps a small number of font slots. A factory fills the slot with
a given id with the geometry of the font, the spacing requested by the caller
and references to the font's glyph tables:

	desc := factory.Create(registry, 1, 0, 0, 0)

If the id does not denote a slot, the factory returns the registry's default
descriptor instead; callers never see an error.

Factories, descriptors and the header declaring them are plain data. The
backend serializes them to source code for the firmware.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontdef

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'lcdfont.fontdef'
func tracer() tracing.Trace {
	return tracing.Select("lcdfont.fontdef")
}
