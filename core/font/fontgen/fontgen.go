/*
Package fontgen generates the C++ glyph tables of an LCD font from its
configuration.

A generation reads the double-byte glyph source together with the gaiji
source once, then derives one glyph set per character-set variant. Variants
are independent of each other and are built in parallel. All files are
written to a staging directory and moved to the output directory only if
every step succeeded.

	conf, err := fontgen.LoadConfig("shinonome12/config.yaml")
	…
	gen, err := fontgen.NewGenerator(conf)
	…
	result, err := gen.Run(ctx)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontgen

import (
	"context"
	"os"

	"github.com/npillmayer/lcdfont/backend/cppsrc"
	"github.com/npillmayer/lcdfont/core"
	"github.com/npillmayer/lcdfont/core/font/charset"
	"github.com/npillmayer/lcdfont/core/font/codemap"
	"github.com/npillmayer/lcdfont/core/font/fontdef"
	"github.com/npillmayer/lcdfont/core/font/glyph"
	"github.com/npillmayer/lcdfont/core/font/glyphset"
	"github.com/npillmayer/lcdfont/core/locate/resources"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/sync/errgroup"
)

// tracer writes to trace with key 'lcdfont.fontgen'
func tracer() tracing.Trace {
	return tracing.Select("lcdfont.fontgen")
}

// DefaultVariants are generated if no variants are selected.
var DefaultVariants = []string{charset.Mini, charset.Std, charset.Full}

// Generator generates the tables of one font.
type Generator struct {
	conf     *Config
	resolver resources.Resolver
	variants []string
	outDir   string
	paths    inputs
}

// Option configures a Generator.
type Option func(*Generator)

// WithVariants selects the character-set variants to generate.
func WithVariants(names ...string) Option {
	return func(g *Generator) {
		if len(names) > 0 {
			g.variants = names
		}
	}
}

// WithOutDir overrides the output directory of the configuration.
func WithOutDir(dir string) Option {
	return func(g *Generator) {
		g.outDir = dir
	}
}

type inputs struct {
	kanji, gaiji, latin, x201, g0 string
	license, codes, joyo, mini    string
}

// NewGenerator validates a configuration and resolves all its input files.
// Any error is a configuration error, returned before output is written.
func NewGenerator(conf *Config, opts ...Option) (*Generator, error) {
	g := &Generator{conf: conf, variants: DefaultVariants}
	for _, opt := range opts {
		opt(g)
	}
	if err := conf.Validate(g.variants...); err != nil {
		return nil, err
	}
	if _, err := charset.Select(charset.StandardPolicies(nil, nil), g.variants...); err != nil {
		return nil, err
	}
	confPath := conf.Path()
	if confPath == "" {
		confPath = "config.yaml"
	}
	var err error
	if g.resolver, err = resources.NewResolver(confPath, conf.Common.WorkDir); err != nil {
		return nil, err
	}
	if g.outDir == "" {
		g.outDir = g.resolver.Output(conf.Common.OutDir)
	}
	if err = g.resolve(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Generator) resolve() (err error) {
	c, r, p := g.conf.Common, g.resolver, &g.paths
	joyo, mini := g.conf.KanjiTable.Joyo, g.conf.KanjiTable.Mini
	if !g.generates(charset.Std) {
		joyo = ""
	}
	if !g.generates(charset.Mini) {
		mini = ""
	}
	resolveAll := []struct {
		target  *string
		name    string
		resolve func(string) (string, error)
	}{
		{&p.kanji, c.FontKanji, r.Font},
		{&p.latin, c.FontLatin, r.Font},
		{&p.x201, c.FontX201, r.Font},
		{&p.g0, c.FontG0, r.Font},
		{&p.gaiji, c.FontGaiji, r.Font},
		{&p.license, c.License, r.Text},
		{&p.codes, c.JISToUCS, r.Table},
		{&p.joyo, joyo, r.Table},
		{&p.mini, mini, r.Table},
	}
	for _, res := range resolveAll {
		if res.name == "" {
			continue // optional or not needed for the selected variants
		}
		if *res.target, err = res.resolve(res.name); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generates(variant string) bool {
	for _, v := range g.variants {
		if v == variant {
			return true
		}
	}
	return false
}

// Variants are the character-set variants the generator produces.
func (g *Generator) Variants() []string {
	return g.variants
}

// OutDir is the directory the generated files go to.
func (g *Generator) OutDir() string {
	return g.outDir
}

// Result summarizes a generation.
type Result struct {
	Files    []string
	Variants []VariantResult
	Drops    []glyphset.Drop
	Skips    int // skipped lines of mapping and policy tables
}

// VariantResult summarizes the table of one variant.
type VariantResult struct {
	Name     string
	Factory  fontdef.Factory
	Count    int
	Bytes    int // index and glyph data
	Verdicts map[charset.Reason]int
	Clashes  []rune
}

// Run generates all files of the font.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	c := g.conf.Common
	result := &Result{}
	bdfEnc := g.conf.BDFEncoding()
	// glyph sources load in the background while the tables are read
	kanji := resources.LoadGlyphs(g.paths.kanji, bdfEnc)
	var gaiji resources.GlyphPromise
	if g.paths.gaiji != "" {
		gaiji = resources.LoadGlyphs(g.paths.gaiji, g.conf.GaijiEncoding())
	}
	singles := []struct {
		promise    resources.GlyphPromise
		name       string
		lo, hi     int
		dispOffset int
	}{
		{resources.LoadGlyphs(g.paths.g0, bdfEnc), fontdef.SingleByteName(c.FBase), glyphset.G0Lo, glyphset.G0Hi, 0},
		{resources.LoadGlyphs(g.paths.latin, bdfEnc), fontdef.Latin1ExName(c.FBase), glyphset.Latin1ExLo, glyphset.Latin1ExHi, 0},
		{resources.LoadGlyphs(g.paths.x201, bdfEnc), fontdef.X0201Name(c.FBase), glyphset.X0201Lo, glyphset.X0201Hi, glyphset.X0201Offset},
	}
	license, err := os.ReadFile(g.paths.license)
	if err != nil {
		return nil, core.ConfigError(err, "cannot read license %s", g.paths.license)
	}
	codes, skips, err := codemap.LoadFile(g.paths.codes, nil)
	if err != nil {
		return nil, err
	}
	result.Skips += len(skips)
	policies, n, err := g.policies()
	if err != nil {
		return nil, err
	}
	result.Skips += n
	//
	records, err := kanji.Await(ctx)
	if err != nil {
		return nil, err
	}
	var gaijiRecords []glyph.Record
	if gaiji != nil {
		if gaijiRecords, err = gaiji.Await(ctx); err != nil {
			return nil, err
		}
	}
	src, drops := glyphset.NewSource(c.Height, records, gaijiRecords)
	result.Drops = append(result.Drops, drops...)
	tracer().Infof("%s: %d double-byte glyphs, %d gaiji", c.FBase, src.Len(), src.GaijiLen())
	//
	sets := make([]*glyphset.Set, len(policies))
	tables := make([]*glyphset.Table, len(policies))
	eg, egctx := errgroup.WithContext(ctx)
	for i, p := range policies {
		i, p := i, p
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			sets[i] = glyphset.Build(src, codes, p)
			tables[i] = sets[i].Emit()
			tracer().Infof("%s %s: %d glyphs", c.FBase, p.Name, tables[i].Count())
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	//
	font := &cppsrc.Font{
		Base:        c.FBase,
		Copyright:   c.Copyright,
		License:     string(license),
		Unsupported: c.Unsupported,
		H:           c.Height,
	}
	if font.Copyright == "" {
		font.Copyright = cppsrc.DefaultCopyright
	}
	for _, s := range singles {
		records, err := s.promise.Await(ctx)
		if err != nil {
			return nil, err
		}
		st, drops := glyphset.BuildSingle(s.name, records, s.lo, s.hi, c.Height, s.dispOffset)
		result.Drops = append(result.Drops, drops...)
		font.Singles = append(font.Singles, st)
	}
	geom := fontdef.Geometry{Width: c.Width, Height: c.Height, DataCols: c.DWidth, DataRows: c.DHeight}
	factories := make([]fontdef.Factory, len(policies))
	for i, p := range policies {
		factories[i] = fontdef.NewFactory(c.FBase, c.Desc, p.Name, geom, tables[i].Count())
		font.Variants = append(font.Variants, cppsrc.Variant{Factory: factories[i], Table: tables[i], H: c.Height})
		result.Variants = append(result.Variants, VariantResult{
			Name:     p.Name,
			Factory:  factories[i],
			Count:    tables[i].Count(),
			Bytes:    tables[i].IndexBytes() + tables[i].DataBytes(),
			Verdicts: sets[i].Verdicts(),
			Clashes:  sets[i].Clashes(),
		})
	}
	font.Header = fontdef.NewHeader(c.FBase, factories, charset.Std)
	//
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if result.Files, err = g.write(font); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *Generator) policies() ([]charset.Policy, int, error) {
	var mini, std *charset.PolicyTable
	skipped := 0
	load := func(path string) (*charset.PolicyTable, error) {
		if path == "" {
			return nil, nil
		}
		t, skips, err := charset.LoadTableFile(path)
		skipped += len(skips)
		return t, err
	}
	var err error
	if mini, err = load(g.paths.mini); err != nil {
		return nil, skipped, err
	}
	if std, err = load(g.paths.joyo); err != nil {
		return nil, skipped, err
	}
	policies, err := charset.Select(charset.StandardPolicies(mini, std), g.variants...)
	return policies, skipped, err
}

func (g *Generator) write(font *cppsrc.Font) ([]string, error) {
	st, err := resources.NewStaging(g.outDir)
	if err != nil {
		return nil, err
	}
	defer st.Discard()
	if _, err = font.WriteFiles(st.Dir()); err != nil {
		return nil, err
	}
	return st.Commit()
}
