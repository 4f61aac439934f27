package bdf

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/lcdfont/core"
	"github.com/npillmayer/lcdfont/core/font/glyph"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Markers delimiting a glyph record.
const (
	StartChar = "STARTCHAR"
	Encoding  = "ENCODING"
	Bitmap    = "BITMAP"
	EndChar   = "ENDCHAR"
)

// SetPixel is the character denoting a set pixel in character notation.
const SetPixel = '@'

// Decoder reads glyph records from a glyph source, one at a time.
type Decoder struct {
	name    string
	scanner *bufio.Scanner
	lineno  int
}

type options struct {
	name string
	enc  encoding.Encoding
}

// Option configures a Decoder.
type Option func(*options)

// WithEncoding decodes the byte stream of the glyph source from enc to UTF-8
// before parsing.
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.enc = enc
	}
}

// WithName sets the source name used in error messages.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// NewDecoder creates a decoder for glyph records read from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	o := options{name: "bdf"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.enc != nil {
		r = transform.NewReader(r, o.enc.NewDecoder())
	}
	return &Decoder{
		name:    o.name,
		scanner: bufio.NewScanner(r),
	}
}

type pending struct {
	code     uint32
	hasCode  bool
	name     string
	named    uint32 // hex reading of the STARTCHAR name
	hasName  bool
	inBitmap bool
	rows     []glyph.Row
	start    int
}

// Next returns the next glyph record of the source. At the end of the input,
// Next returns io.EOF.
//
// A BITMAP block which is not terminated by ENDCHAR is a fatal error, as are
// bitmap rows which cannot be decoded. Glyphs are returned regardless of
// their code; it is up to the caller to discard codes it has no room for.
func (d *Decoder) Next() (glyph.Record, error) {
	var g *pending
	for d.scanner.Scan() {
		d.lineno++
		fields := strings.Fields(d.scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case StartChar:
			if g != nil && g.inBitmap {
				return glyph.Record{}, d.unterminated(g)
			}
			g = &pending{start: d.lineno}
			if len(fields) > 1 {
				g.name = fields[1]
				if c, err := strconv.ParseUint(fields[1], 16, 32); err == nil {
					g.named, g.hasName = uint32(c), true
				}
			}
			continue
		case Encoding:
			if g != nil && !g.inBitmap && len(fields) > 1 {
				if c, err := strconv.ParseInt(fields[1], 10, 32); err == nil && c >= 0 {
					g.code, g.hasCode = uint32(c), true
				}
			}
			continue
		case Bitmap:
			if g == nil {
				return glyph.Record{}, d.malformed("BITMAP outside of a glyph")
			}
			if g.inBitmap {
				return glyph.Record{}, d.unterminated(g)
			}
			if !d.settle(g) {
				return glyph.Record{}, d.malformed("BITMAP for glyph %q without code", g.name)
			}
			g.inBitmap = true
			g.rows = g.rows[:0]
			continue
		case EndChar:
			if g == nil || !g.inBitmap {
				tracer().Infof("%s:%d: ENDCHAR without bitmap, ignored", d.name, d.lineno)
				g = nil
				continue
			}
			tracer().Debugf("%s: glyph %04X with %d rows", d.name, g.code, len(g.rows))
			return glyph.Record{Code: g.code, Rows: g.rows}, nil
		}
		if g == nil || !g.inBitmap {
			continue
		}
		row, err := d.parseRow(fields[0])
		if err != nil {
			return glyph.Record{}, err
		}
		g.rows = append(g.rows, row)
	}
	if err := d.scanner.Err(); err != nil {
		return glyph.Record{}, core.WrapError(err, core.EMALFORMED,
			"%s: cannot read glyph source after line %d", d.name, d.lineno)
	}
	if g != nil && g.inBitmap {
		return glyph.Record{}, d.unterminated(g)
	}
	return glyph.Record{}, io.EOF
}

// settle decides the code of a glyph. A valid ENCODING wins over the
// STARTCHAR name, which is used only if ENCODING is missing or negative.
func (d *Decoder) settle(g *pending) bool {
	if !g.hasCode {
		g.code, g.hasCode = g.named, g.hasName
		return g.hasCode
	}
	if g.hasName && g.named != g.code {
		tracer().Debugf("%s:%d: glyph %q has ENCODING %d (%04X), name ignored",
			d.name, g.start, g.name, g.code, g.code)
	}
	return true
}

func (d *Decoder) parseRow(s string) (glyph.Row, error) {
	if s[0] == '.' || s[0] == SetPixel {
		w := utf8.RuneCountInString(s)
		bitlen := (w + 7) / 8 * 8
		if bitlen > 16 {
			return 0, d.malformed("bitmap row wider than 16 pixels: %q", s)
		}
		var val glyph.Row
		b := glyph.Row(1) << (bitlen - 1)
		for _, c := range s {
			if c == SetPixel {
				val |= b
			}
			b >>= 1
		}
		return val, nil
	}
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, d.malformed("invalid bitmap row %q", s)
	}
	return glyph.Row(v), nil
}

func (d *Decoder) malformed(format string, v ...interface{}) error {
	return core.MalformedError("%s:%d: "+format, append([]interface{}{d.name, d.lineno}, v...)...)
}

func (d *Decoder) unterminated(g *pending) error {
	return core.MalformedError("%s:%d: bitmap of glyph %04X (STARTCHAR at line %d) not terminated by ENDCHAR",
		d.name, d.lineno, g.code, g.start)
}

// ReadAll decodes every glyph record of r.
func ReadAll(r io.Reader, opts ...Option) ([]glyph.Record, error) {
	d := NewDecoder(r, opts...)
	var records []glyph.Record
	for {
		g, err := d.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		records = append(records, g)
	}
	tracer().Infof("%s: read %d glyphs", d.name, len(records))
	return records, nil
}

// ReadFile opens a glyph source file, decodes all of its glyph records and
// closes it. enc may be nil for UTF-8 or ASCII sources.
func ReadFile(path string, enc encoding.Encoding) ([]glyph.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.ConfigError(err, "cannot open glyph source %s", path)
	}
	defer f.Close()
	opts := []Option{WithName(path)}
	if enc != nil {
		opts = append(opts, WithEncoding(enc))
	}
	return ReadAll(f, opts...)
}
