/*
Command usagecli reports the characters a text uses, reading the text from
standard input.

Without flags, it prints every distinct character outside Latin-1 and the
half-width katakana block, in code point order:

	usagecli < messages.txt

With -table, it copies a kanji policy table, dropping the entries of
characters used in the text (or, with -seen, keeping only those):

	usagecli -table kanjitable_full.txt -seen < messages.txt > kanjitable_app.txt

Comment lines and lines which are not entries are always copied.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/lcdfont/core"
	"github.com/npillmayer/lcdfont/core/font/usage"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// tracer traces with key 'lcdfont.usage'
func tracer() tracing.Trace {
	return tracing.Select("lcdfont.usage")
}

func main() {
	table := flag.String("table", "", "Policy table to filter")
	seen := flag.Bool("seen", false, "Keep entries of used characters instead of unused ones")
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()

	// set up logging; stdout is reserved for results
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.lcdfont.usage": *tlevel,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintf(os.Stderr, "error configuring tracing: %v\n", err)
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	//
	chars, err := usage.Scan(os.Stdin)
	if err != nil {
		fail(err)
	}
	if *table == "" {
		if err = chars.WriteOutside(os.Stdout); err != nil {
			fail(err)
		}
		return
	}
	f, err := os.Open(*table)
	if err != nil {
		fail(core.ConfigError(err, "cannot open policy table %s", *table))
	}
	defer f.Close()
	mode := usage.Absent
	if *seen {
		mode = usage.Seen
	}
	stats, err := usage.FilterTable(os.Stdout, f, chars, mode)
	if err != nil {
		fail(err)
	}
	for _, c := range stats.Unlisted {
		tracer().Infof("character %c (U+%04X) has no table entry", c, c)
	}
}

func fail(err error) {
	core.UserError(err)
	os.Exit(2)
}
