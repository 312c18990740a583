// Command snirf inspects and validates SNIRF files.
//
// Usage:
//
//	snirf validate [-format text|json|yaml] [-min ok|info|warning|fatal] [-lazy] file
//	snirf info file
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/openfnirs/snirf"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	case "info":
		infoCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "snirf CLI\n\nUsage:\n  snirf validate [-format text|json|yaml] [-min ok|info|warning|fatal] [-lazy] [-v] <file>\n  snirf info <file>")
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var format string
	var min string
	var lazy bool
	var verbose bool
	fs.StringVar(&format, "format", "text", "output format: text, json or yaml")
	fs.StringVar(&min, "min", "info", "lowest severity to show: ok, info, warning or fatal")
	fs.BoolVar(&lazy, "lazy", false, "defer dataset reads to first access")
	fs.BoolVar(&verbose, "v", false, "log load/close events to stderr")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	var opts []snirf.Option
	if lazy {
		opts = append(opts, snirf.WithLazyLoading())
	}
	if verbose {
		opts = append(opts, snirf.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}

	result, err := snirf.ValidateFile(fs.Arg(0), opts...)
	if err != nil {
		fatalf("%v", err)
	}

	switch format {
	case "json":
		b, err := result.MarshalJSON()
		if err != nil {
			fatalf("encoding result: %v", err)
		}
		fmt.Println(string(b))
	case "yaml":
		b, err := result.YAML()
		if err != nil {
			fatalf("encoding result: %v", err)
		}
		fmt.Print(string(b))
	case "text":
		printText(result, parseSeverity(min))
	default:
		fatalf("unknown format %q", format)
	}

	if !result.Valid() {
		os.Exit(1)
	}
}

var severityColor = map[snirf.Severity]*color.Color{
	snirf.SeverityOK:      color.New(color.FgGreen),
	snirf.SeverityInfo:    color.New(color.FgCyan),
	snirf.SeverityWarning: color.New(color.FgYellow),
	snirf.SeverityFatal:   color.New(color.FgRed, color.Bold),
}

func printText(result *snirf.ValidationResult, min snirf.Severity) {
	for _, is := range result.IssuesAtLeast(min) {
		severityColor[is.Severity].Printf("%-7s", is.Severity)
		fmt.Printf(" %-55s %s\n", is.Location, is.Code)
	}
	if result.Valid() {
		color.Green("valid")
	} else {
		color.Red("invalid (%d fatal)", result.Count(snirf.SeverityFatal))
	}
}

func parseSeverity(s string) snirf.Severity {
	switch s {
	case "ok":
		return snirf.SeverityOK
	case "info":
		return snirf.SeverityInfo
	case "warning":
		return snirf.SeverityWarning
	case "fatal":
		return snirf.SeverityFatal
	}
	fatalf("unknown severity %q", s)
	return snirf.SeverityFatal
}

func infoCmd(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	var lazy bool
	fs.BoolVar(&lazy, "lazy", true, "defer dataset reads to first access")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	var opts []snirf.Option
	if lazy {
		opts = append(opts, snirf.WithLazyLoading())
	}
	doc, err := snirf.Load(fs.Arg(0), opts...)
	if err != nil {
		fatalf("%v", err)
	}
	defer doc.Close()

	version, _ := doc.FormatVersion()
	fmt.Printf("file:          %s\n", doc.Filename())
	fmt.Printf("formatVersion: %s\n", version)
	fmt.Printf("recordings:    %d\n", doc.Nirs().Len())
	for _, n := range doc.Nirs().Items() {
		fmt.Printf("  %s: data=%d stim=%d aux=%d\n", n.Location(), n.Data().Len(), n.Stim().Len(), n.Aux().Len())
		for _, d := range n.Data().Items() {
			fmt.Printf("    %s: channels=%d\n", d.Location(), d.MeasurementList().Len())
		}
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "snirf: "+format+"\n", args...)
	os.Exit(1)
}
