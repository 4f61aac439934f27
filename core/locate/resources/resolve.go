package resources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/lcdfont/core"
	"github.com/npillmayer/lcdfont/core/font/bdf"
	"github.com/npillmayer/lcdfont/core/font/glyph"
	"golang.org/x/text/encoding"
)

type resourceType int

// resource types
const (
	unknownResourceType resourceType = iota
	fontResourceType
	tableResourceType
	textResourceType
)

func (rt resourceType) String() string {
	switch rt {
	case fontResourceType:
		return "glyph source"
	case tableResourceType:
		return "table"
	case textResourceType:
		return "text file"
	}
	return "resource"
}

// NotFound returns a configuration error for a missing resource.
func NotFound(res string, rtype resourceType, err error) error {
	if err == nil {
		err = fmt.Errorf("resource missing: %v", res)
	}
	return core.ConfigError(err, "%s not found: %s", rtype, res)
}

// Resolver resolves input paths of a font configuration. Glyph sources and
// the license text are located relative to the configuration directory,
// tables relative to the work directory.
type Resolver struct {
	ConfigDir string
	WorkDir   string
}

// NewResolver creates a resolver for a configuration file. A relative work
// directory is taken relative to the directory of the configuration file.
func NewResolver(configFile, workDir string) (Resolver, error) {
	confdir, err := filepath.Abs(filepath.Dir(configFile))
	if err != nil {
		return Resolver{}, core.ConfigError(err, "cannot locate configuration %s", configFile)
	}
	r := Resolver{ConfigDir: confdir, WorkDir: confdir}
	if workDir != "" {
		r.WorkDir = r.join(confdir, workDir)
	}
	if fi, err := os.Stat(r.WorkDir); err != nil || !fi.IsDir() {
		return r, core.ConfigError(err, "cannot open work directory %s", r.WorkDir)
	}
	tracer().Debugf("resolving inputs in %s and %s", r.ConfigDir, r.WorkDir)
	return r, nil
}

func (r Resolver) join(dir, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(dir, name)
}

// Font resolves a glyph source.
func (r Resolver) Font(name string) (string, error) {
	return r.check(r.join(r.ConfigDir, name), fontResourceType)
}

// Text resolves a text file located next to the configuration.
func (r Resolver) Text(name string) (string, error) {
	return r.check(r.join(r.ConfigDir, name), textResourceType)
}

// Table resolves a mapping or policy table.
func (r Resolver) Table(name string) (string, error) {
	return r.check(r.join(r.WorkDir, name), tableResourceType)
}

// Output returns the path of the output directory, which need not exist.
func (r Resolver) Output(name string) string {
	return r.join(r.WorkDir, name)
}

func (r Resolver) check(path string, rtype resourceType) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return path, NotFound(path, rtype, err)
	}
	if fi.IsDir() {
		return path, NotFound(path, rtype, fmt.Errorf("%s is a directory", path))
	}
	return path, nil
}

// --- Glyph sources --------------------------------------------------------

type glyphsPlusErr struct {
	records []glyph.Record
	err     error
}

// GlyphPromise delivers the records of a glyph source.
type GlyphPromise interface {
	Glyphs() ([]glyph.Record, error)
	Await(ctx context.Context) ([]glyph.Record, error)
}

type glyphLoader struct {
	await func(ctx context.Context) ([]glyph.Record, error)
}

func (loader glyphLoader) Glyphs() ([]glyph.Record, error) {
	return loader.await(context.Background())
}

func (loader glyphLoader) Await(ctx context.Context) ([]glyph.Record, error) {
	return loader.await(ctx)
}

// LoadGlyphs starts reading a glyph source in the background. enc may be nil
// for UTF-8 sources.
func LoadGlyphs(path string, enc encoding.Encoding) GlyphPromise {
	ch := make(chan glyphsPlusErr, 1)
	go func(ch chan<- glyphsPlusErr) {
		result := glyphsPlusErr{}
		result.records, result.err = bdf.ReadFile(path, enc)
		if result.err == nil {
			tracer().Debugf("loaded %d glyphs from %s", len(result.records), filepath.Base(path))
		}
		ch <- result
		close(ch)
	}(ch)
	return glyphLoader{
		await: func(ctx context.Context) ([]glyph.Record, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.records, r.err
			}
		},
	}
}
