/*
Command fgcli generates the C++ glyph tables of an LCD font.

Usage:

	fgcli -config shinonome12/config.yaml [-out dir] [-variants mini,std,full] [-trace Info]

Exit codes are 1 for a broken tracing setup, 2 for configuration errors,
3 for malformed glyph sources and 4 for any other failure. No output is
written if generation fails.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/npillmayer/lcdfont/core"
	"github.com/npillmayer/lcdfont/core/font/charset"
	"github.com/npillmayer/lcdfont/core/font/fontdef"
	"github.com/npillmayer/lcdfont/core/font/fontgen"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'lcdfont.fontgen'
func tracer() tracing.Trace {
	return tracing.Select("lcdfont.fontgen")
}

var traceKeys = []string{
	"lcdfont.bdf", "lcdfont.codemap", "lcdfont.charset", "lcdfont.glyphset",
	"lcdfont.fontdef", "lcdfont.cppsrc", "lcdfont.resources", "lcdfont.fontgen",
}

func main() {
	initDisplay()

	// command line flags
	configPath := flag.String("config", "shinonome12/config.yaml", "Font configuration file")
	outDir := flag.String("out", "", "Output directory (overrides common.out_dir)")
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	variants := flag.String("variants", strings.Join(fontgen.DefaultVariants, ","),
		"Character-set variants to generate")
	flag.Parse()

	// set up logging
	if err := setupTracing(*tlevel); err != nil {
		fmt.Printf("error configuring tracing: %v\n", err)
		os.Exit(1)
	}
	pterm.Info.Println("LCD font table generator")
	tracer().Infof("Trace level is %s", *tlevel)
	//
	conf, err := fontgen.LoadConfig(*configPath)
	if err != nil {
		exit(err)
	}
	gen, err := fontgen.NewGenerator(conf,
		fontgen.WithOutDir(*outDir),
		fontgen.WithVariants(splitList(*variants)...))
	if err != nil {
		exit(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	spinner, _ := pterm.DefaultSpinner.Start("generating " + conf.Common.FBase)
	result, err := gen.Run(ctx)
	if err != nil {
		if spinner != nil {
			spinner.Fail(err.Error())
		}
		exit(err)
	}
	if spinner != nil {
		spinner.Success(fmt.Sprintf("%d files written to %s", len(result.Files), gen.OutDir()))
	}
	summary(result)
	slots(result)
}

func setupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func summary(result *fontgen.Result) {
	data := pterm.TableData{
		{"Variant", "Factory", "Glyphs", "Bytes", "Policy rejects", "Gaiji clashes"},
	}
	for _, v := range result.Variants {
		rejects := 0
		for reason, n := range v.Verdicts {
			if reason != charset.Symbol && reason != charset.Unlimited && reason != charset.Listed {
				rejects += n
			}
		}
		data = append(data, []string{
			v.Name, v.Factory.Name(),
			fmt.Sprint(v.Count), fmt.Sprint(v.Bytes),
			fmt.Sprint(rejects), fmt.Sprint(len(v.Clashes)),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
	for _, f := range result.Files {
		pterm.Info.Println(filepath.Base(f))
	}
	if len(result.Drops) > 0 {
		pterm.Warning.Printfln("%d glyphs dropped, see trace for details", len(result.Drops))
	}
	if result.Skips > 0 {
		pterm.Warning.Printfln("%d table lines skipped", result.Skips)
	}
}

// slots shows the font slots the renderer would be set up with.
func slots(result *fontgen.Result) {
	factories := make([]fontdef.Factory, len(result.Variants))
	for i, v := range result.Variants {
		factories[i] = v.Factory
	}
	reg := fontdef.GlobalRegistry()
	if err := fontdef.Install(reg, factories); err != nil {
		if core.IsFatal(err) {
			exit(err)
		}
		pterm.Warning.Println(err.Error())
	}
	reg.LogSlots()
}

func exit(err error) {
	pterm.Error.Println(core.UserMessage(err))
	tracer().Errorf(err.Error())
	switch core.Code(err) {
	case core.ECONFIG:
		os.Exit(2)
	case core.EMALFORMED:
		os.Exit(3)
	}
	os.Exit(4)
}
