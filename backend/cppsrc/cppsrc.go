/*
Package cppsrc writes generated font tables as C++ source for the LCD
renderer.

A font is written to a set of files in one directory:

	lcd_font_<base>.cpp     extern declarations and factory functions
	lcd_font_<base>.h       factory declarations and the default alias
	<base>r.src             unsupported glyph and single-byte tables
	<base>k_<variant>.src   index and glyph data of one variant

The .cpp file includes the .src files, so only the .cpp file is compiled.
The layout of the output is fixed by the renderer's build and must not
change between runs: tables are written in the order they are given, which
callers keep deterministic.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cppsrc

import (
	"bufio"
	"embed"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/npillmayer/lcdfont/core"
	"github.com/npillmayer/lcdfont/core/font/fontdef"
	"github.com/npillmayer/lcdfont/core/font/glyphset"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'lcdfont.cppsrc'
func tracer() tracing.Trace {
	return tracing.Select("lcdfont.cppsrc")
}

// DefaultCopyright heads the .cpp and .h files.
const DefaultCopyright = `/* Copyright (C) 2019-2020 Mono Wireless Inc. All Rights Reserved.
 * Released under MW-OSSLA-1J,1E (MONO WIRELESS OPEN SOURCE SOFTWARE LICENSE AGREEMENT). */`

// Font is everything written for one font.
type Font struct {
	Base        string // font base name
	Copyright   string // C comment heading .cpp and .h
	License     string // text heading every .src file
	Unsupported string // C initializer list of the unsupported-character glyph
	H           int    // rows per glyph
	Singles     []*glyphset.SingleTable
	Variants    []Variant
	Header      fontdef.Header
}

// Variant is the double-byte table of one character-set variant together
// with its factory.
type Variant struct {
	Factory fontdef.Factory
	Table   *glyphset.Table
	H       int
}

// Stem is the name stem of the variant's tables.
func (v Variant) Stem() string {
	return fontdef.WideBase(v.Factory.Base, v.Factory.Variant)
}

// FileName is the name of the variant's .src file.
func (v Variant) FileName() string {
	return v.Stem() + ".src"
}

// CppName is the name of the .cpp file.
func (f *Font) CppName() string {
	return "lcd_font_" + f.Base + ".cpp"
}

// HeaderName is the name of the .h file.
func (f *Font) HeaderName() string {
	return "lcd_font_" + f.Base + ".h"
}

// SingleName is the name of the .src file with the single-byte tables.
func (f *Font) SingleName() string {
	return f.Base + "r.src"
}

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("cppsrc").Funcs(template.FuncMap{
	"unsupported": fontdef.UnsupportedName,
	"kb":          kilobytes,
	"indexLines":  indexLines,
	"glyphLines":  glyphLines,
	"singleLines": singleLines,
}).ParseFS(templateFS, "templates/*.tmpl"))

// WriteCpp writes the .cpp file.
func (f *Font) WriteCpp(w io.Writer) error {
	return f.execute(w, "cpp.tmpl", f)
}

// WriteHeader writes the .h file.
func (f *Font) WriteHeader(w io.Writer) error {
	return f.execute(w, "header.tmpl", f)
}

// WriteSingles writes the .src file with the single-byte tables.
func (f *Font) WriteSingles(w io.Writer) error {
	return f.execute(w, "single.tmpl", f)
}

// WriteVariant writes the .src file of a variant.
func (f *Font) WriteVariant(w io.Writer, v Variant) error {
	data := struct {
		Variant
		License string
	}{v, f.License}
	return f.execute(w, "variant.tmpl", data)
}

func (f *Font) execute(w io.Writer, name string, data interface{}) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write %s for font %s", name, f.Base)
	}
	return nil
}

// WriteFiles writes all files of the font to directory dir and returns
// their names.
func (f *Font) WriteFiles(dir string) ([]string, error) {
	type file struct {
		name  string
		write func(io.Writer) error
	}
	files := []file{
		{f.CppName(), f.WriteCpp},
		{f.HeaderName(), f.WriteHeader},
		{f.SingleName(), f.WriteSingles},
	}
	for _, v := range f.Variants {
		v := v
		files = append(files, file{v.FileName(), func(w io.Writer) error {
			return f.WriteVariant(w, v)
		}})
	}
	names := make([]string, 0, len(files))
	for _, fl := range files {
		if err := writeFile(filepath.Join(dir, fl.name), fl.write); err != nil {
			return names, err
		}
		tracer().Infof("wrote %s", fl.name)
		names = append(names, fl.name)
	}
	return names, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot create %s", path)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = core.WrapError(cerr, core.EINTERNAL, "cannot close %s", path)
		}
	}()
	buf := bufio.NewWriter(out)
	if err = write(buf); err != nil {
		return err
	}
	if err = buf.Flush(); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write %s", path)
	}
	return nil
}
