package fontgen

import (
	"bytes"
	"os"
	"strings"

	"github.com/npillmayer/lcdfont/core"
	"github.com/npillmayer/lcdfont/core/font/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"gopkg.in/yaml.v3"
)

// Config describes a font: its glyph sources, tables and geometry, and where
// to put the generated code.
type Config struct {
	Common     Common     `yaml:"common"`
	KanjiTable KanjiTable `yaml:"kanjitable"`
	Encoding   Encodings  `yaml:"encoding"`

	path string
}

// Common holds the settings of section 'common'.
type Common struct {
	WorkDir     string `yaml:"work_dir"`
	OutDir      string `yaml:"out_dir"`
	FBase       string `yaml:"fbase"`
	Desc        string `yaml:"desc"`
	JISToUCS    string `yaml:"jis_to_ucs"`
	FontKanji   string `yaml:"font_kanji"`
	FontLatin   string `yaml:"font_latin"`
	FontX201    string `yaml:"font_x201"`
	FontG0      string `yaml:"font_g0"`
	FontGaiji   string `yaml:"font_gaiji"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	DWidth      int    `yaml:"dwidth"`
	DHeight     int    `yaml:"dheight"`
	License     string `yaml:"license"`
	Unsupported string `yaml:"unsupported"`
	Copyright   string `yaml:"copyright"`
}

// KanjiTable names the policy tables of the mini and std variants.
type KanjiTable struct {
	Joyo string `yaml:"joyo"`
	Mini string `yaml:"mini"`
}

// Encodings are names of text encodings, as used by HTML.
type Encodings struct {
	BDF   string `yaml:"bdf"`
	Gaiji string `yaml:"gaiji"`
}

// Default encodings of glyph sources.
const (
	DefaultBDFEncoding   = "euc-jp"
	DefaultGaijiEncoding = "utf-8"
)

// MaxWidth is the widest double-byte glyph a row can hold.
const MaxWidth = 16

// LoadConfig reads a configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.ConfigError(err, "cannot read configuration %s", path)
	}
	conf, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	conf.path = path
	tracer().Infof("configuration %s: font %s", path, conf.Common.FBase)
	return conf, nil
}

// ParseConfig decodes a YAML configuration. Unknown keys are an error.
func ParseConfig(data []byte) (*Config, error) {
	conf := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(conf); err != nil {
		return nil, core.ConfigError(err, "cannot decode configuration")
	}
	return conf, nil
}

// Path is the file the configuration has been loaded from.
func (conf *Config) Path() string {
	return conf.path
}

// Validate checks that all settings needed to generate the given variants
// are present.
func (conf *Config) Validate(variants ...string) error {
	c := conf.Common
	required := []struct{ key, val string }{
		{"common.out_dir", c.OutDir},
		{"common.fbase", c.FBase},
		{"common.jis_to_ucs", c.JISToUCS},
		{"common.font_kanji", c.FontKanji},
		{"common.font_latin", c.FontLatin},
		{"common.font_x201", c.FontX201},
		{"common.font_g0", c.FontG0},
		{"common.license", c.License},
		{"common.unsupported", c.Unsupported},
	}
	for _, v := range variants {
		switch v {
		case charset.Mini:
			required = append(required, struct{ key, val string }{"kanjitable.mini", conf.KanjiTable.Mini})
		case charset.Std:
			required = append(required, struct{ key, val string }{"kanjitable.joyo", conf.KanjiTable.Joyo})
		}
	}
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			return core.Error(core.ECONFIG, "missing configuration key %s", r.key)
		}
	}
	if c.Width <= 0 || c.Width > MaxWidth {
		return core.Error(core.ECONFIG, "common.width must be in 1…%d, is %d", MaxWidth, c.Width)
	}
	if c.Height <= 0 || c.Height > 255 {
		return core.Error(core.ECONFIG, "common.height must be in 1…255, is %d", c.Height)
	}
	if c.DWidth < 0 || c.DWidth > MaxWidth || c.DHeight < 0 || c.DHeight > 255 {
		return core.Error(core.ECONFIG, "invalid data size %d×%d", c.DWidth, c.DHeight)
	}
	for _, name := range []string{conf.Encoding.BDF, conf.Encoding.Gaiji} {
		if _, err := lookupEncoding(name, ""); err != nil {
			return err
		}
	}
	return nil
}

// BDFEncoding is the encoding of all glyph sources except gaiji.
func (conf *Config) BDFEncoding() encoding.Encoding {
	enc, _ := lookupEncoding(conf.Encoding.BDF, DefaultBDFEncoding)
	return enc
}

// GaijiEncoding is the encoding of the gaiji source.
func (conf *Config) GaijiEncoding() encoding.Encoding {
	enc, _ := lookupEncoding(conf.Encoding.Gaiji, DefaultGaijiEncoding)
	return enc
}

func lookupEncoding(name, def string) (encoding.Encoding, error) {
	if name == "" {
		name = def
	}
	switch strings.ToLower(name) {
	case "":
		return nil, nil
	case "utf-8", "utf8":
		return unicode.UTF8, nil
	case "euc-jp", "eucjp":
		return japanese.EUCJP, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, core.ConfigError(err, "unknown text encoding %q", name)
	}
	return enc, nil
}
