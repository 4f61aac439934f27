package cppsrc

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/lcdfont/core/font/fontdef"
	"github.com/npillmayer/lcdfont/core/font/glyph"
	"github.com/npillmayer/lcdfont/core/font/glyphset"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFont(t *testing.T) *Font {
	geom := fontdef.Geometry{Width: 12, Height: 12}
	table := &glyphset.Table{
		Name:   "t12k_std",
		H:      2,
		Index:  []uint16{0x3000, 0x4e9c, 0xe000},
		Source: []uint16{0x2121, 0x3021, 0},
		Data:   []byte{0, 0, 0, 0, 0x80, 0x01, 0xff, 0xff, 0x12, 0x34, 0x56, 0x78},
	}
	g0, drops := glyphset.BuildSingle(fontdef.SingleByteName("t12"), []glyph.Record{
		{Code: 0x41, Rows: []glyph.Row{0x20, 0x50}},
	}, 0x40, 0x42, 2, 0)
	require.Empty(t, drops)
	x201, _ := glyphset.BuildSingle(fontdef.X0201Name("t12"), nil, 0xa0, 0xa2, 2, glyphset.X0201Offset)
	mini := fontdef.NewFactory("t12", "Test", "mini", geom, 0)
	std := fontdef.NewFactory("t12", "Test", "std", geom, table.Count())
	return &Font{
		Base:        "t12",
		Copyright:   "/* C */",
		License:     "LIC",
		Unsupported: "0xff, 0xff, 0xff, 0xff",
		H:           2,
		Singles:     []*glyphset.SingleTable{g0, x201},
		Variants: []Variant{
			{Factory: mini, Table: &glyphset.Table{Name: "t12k_mini", H: 2}, H: 2},
			{Factory: std, Table: table, H: 2},
		},
		Header: fontdef.NewHeader("t12", []fontdef.Factory{mini, std}, "std"),
	}
}

func TestVariantSource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.cppsrc")
	defer teardown()
	//
	f := testFont(t)
	var buf bytes.Buffer
	require.NoError(t, f.WriteVariant(&buf, f.Variants[1]))
	expected := "LIC\n" +
		"namespace TWEFONT {\n" +
		"\n" +
		"\t// index table (t12k_std, 3chrs, 0KB)\n" +
		"\tconst uint16_t font_t12k_std_idx[3] = {\n" +
		"\t\t0x3000, 0x4e9c, 0xe000,\n" +
		"\t};\n" +
		"\n" +
		"\t// font data (t12k_std, 3chrs, 0KB)\n" +
		"\tconst uint8_t font_t12k_std_data[3*2*2] = {\n" +
		"\t\t0x00, 0x00, 0x00, 0x00, //〿 2121/U+3000 #0\n" +
		"\t\t0x80, 0x01, 0xff, 0xff, //亜 3021/U+4E9C #1\n" +
		"\t\t0x12, 0x34, 0x56, 0x78, //〿 0000/U+E000 #2\n" +
		"\t};\n" +
		"}\n"
	assert.Equal(t, expected, buf.String())
}

func TestIndexLineBreaks(t *testing.T) {
	index := make([]uint16, 17)
	for i := range index {
		index[i] = uint16(0x100 + i)
	}
	s := indexLines(index)
	lines := strings.Split(s, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "\t\t0x0100, 0x0101,"))
	assert.True(t, strings.HasSuffix(lines[1], " 0x010f,"))
	assert.Equal(t, "\t\t0x0110,", lines[2])
	assert.Equal(t, 1, kilobytes(1024))
	assert.Equal(t, 0, kilobytes(1023))
}

func TestSinglesSource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.cppsrc")
	defer teardown()
	//
	f := testFont(t)
	var buf bytes.Buffer
	require.NoError(t, f.WriteSingles(&buf))
	expected := "LIC\n" +
		"namespace TWEFONT {\n" +
		"\tconst uint8_t font_t12k_unsupported[2*2] = {\n" +
		"\t\t0xff, 0xff, 0xff, 0xff\n" +
		"\t};\n" +
		"\n" +
		"\tconst uint8_t font_t12r[4] = {\n" +
		"    0x00, 0x00, //@ U+40\n" +
		"    0x20, 0x50, //A U+41\n" +
		"  };\n" +
		"\tconst uint8_t font_t12r_jisx201[4] = {\n" +
		"    0x00, 0x00, //〿 U+FF60\n" +
		"    0x00, 0x00, //｡ U+FF61\n" +
		"  };\n" +
		"}\n"
	assert.Equal(t, expected, buf.String())
}

func TestHeaderSource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.cppsrc")
	defer teardown()
	//
	f := testFont(t)
	var buf bytes.Buffer
	require.NoError(t, f.WriteHeader(&buf))
	args := "(uint8_t id, uint8_t line_space = 0, uint8_t char_space = 0, uint32_t u32Opt = 0)"
	expected := "/* C */\n" +
		"#pragma once \n" +
		"\n" +
		"#include \"twe_common.hpp\"\n" +
		"#include \"twe_font.hpp\"\n" +
		"\n" +
		"namespace TWEFONT {\n" +
		"\tconst FontDef& createFontt12_mini" + args + ";\n" +
		"\tconst FontDef& createFontt12_std" + args + ";\n" +
		"\tstatic inline const FontDef& createFontt12" + args + " {\n" +
		"\t\t\treturn createFontt12_std(id, line_space, char_space, u32Opt); }\n" +
		"}\n"
	assert.Equal(t, expected, buf.String())
}

func TestCppSource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.cppsrc")
	defer teardown()
	//
	f := testFont(t)
	var buf bytes.Buffer
	require.NoError(t, f.WriteCpp(&buf))
	s := buf.String()
	assert.True(t, strings.HasPrefix(s, "/* C */\n#include \"twe_common.hpp\"\n"))
	assert.Contains(t, s, "#include \"lcd_font_t12.h\"\n\nnamespace TWEFONT {\n"+
		"\textern const uint8_t font_t12k_unsupported[2*2];\n"+
		"\textern const uint8_t font_t12r[4];\n"+
		"\textern const uint8_t font_t12r_jisx201[4];\n\n\n"+
		"\t/**********************************************************\n"+
		"\t * createFontt12_mini [chrs = 0]\n")
	assert.Contains(t, s, "\textern const uint16_t font_t12k_std_idx[3];\n"+
		"\textern const uint8_t font_t12k_std_data[3*2*2];\n\n"+
		"\tconst FontDef& createFontt12_std(uint8_t id, uint8_t line_space, uint8_t char_space, uint32_t opt) {\n")
	assert.Contains(t, s, "\t\t\tfont->font_name = \"Test (t12_std, 3)\";\n")
	assert.Contains(t, s, "\t\t\tfont->font_wide = font_t12k_std_data;\t\t// WIDE FONT DATA \n")
	assert.Contains(t, s, "\t\t\tfont->font_wide_idx = font_t12k_std_idx;\t// UNICODE index \n")
	assert.Contains(t, s, "\t\t\tfont->font_wide_missing = font_t12k_unsupported;\n")
	assert.Contains(t, s, "\t\t\tfont->font_wide_count = 3;\n")
	assert.True(t, strings.HasSuffix(s, "\t}\n\n\n}\n\n"+
		"#include \"t12r.src\"\n"+
		"#include \"t12k_mini.src\"\n"+
		"#include \"t12k_std.src\"\n"))
}

func TestWriteFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.cppsrc")
	defer teardown()
	//
	f := testFont(t)
	dir := t.TempDir()
	names, err := f.WriteFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"lcd_font_t12.cpp", "lcd_font_t12.h", "t12r.src",
		"t12k_mini.src", "t12k_std.src"}, names)
	for _, n := range names {
		info, err := os.Stat(filepath.Join(dir, n))
		require.NoError(t, err)
		assert.NotZero(t, info.Size(), n)
	}
	_, err = f.WriteFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
