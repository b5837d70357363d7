package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds output destination and format flags.
type outputFlags struct {
	path string // File, directory, or "-" for stdout
	dir  string // Directory for every document
	pdf  bool   // Print to PDF instead of writing HTML
}

// themeFlags holds theme selection flags.
type themeFlags struct {
	variant string // "light" or "dark"
	name    string // Community theme in the vault
	cssFile string // Stylesheet used instead of the vault theme
}

// pageFlags holds typography overrides.
type pageFlags struct {
	fontSize   int
	zoomFactor float64
	monoFont   string
	h1Weight   int
	h2Weight   int
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    outputFlags
	theme     themeFlags
	page      pageFlags
	highlight string
	assetPath string
	timeout   string
	workers   int
	watch     bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and logs")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.path, "output", "o", "", "output file, directory, or - for stdout")
	fs.StringVar(&f.dir, "output-dir", "", "directory for every generated document")
	fs.BoolVar(&f.pdf, "pdf", false, "print to PDF instead of writing HTML")
}

// addThemeFlags adds theme flags to a FlagSet.
func addThemeFlags(fs *flag.FlagSet, f *themeFlags) {
	fs.StringVar(&f.variant, "theme", "", "theme variant: light or dark")
	fs.StringVar(&f.name, "theme-name", "", "community theme installed in the vault")
	fs.StringVar(&f.cssFile, "theme-css", "", "theme stylesheet used instead of the vault's")
}

// addPageFlags adds typography flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.IntVar(&f.fontSize, "font-size", 0, "base font size in px")
	fs.Float64Var(&f.zoomFactor, "zoom-factor", 0, "page zoom factor")
	fs.StringVar(&f.monoFont, "mono-font", "", "monospace font family")
	fs.IntVar(&f.h1Weight, "h1-weight", 0, "font weight of level 1 headings")
	fs.IntVar(&f.h2Weight, "h2-weight", 0, "font weight of level 2 headings")
}

// parseConvertFlags parses the convert command line. Usage goes to w on
// --help or a parse error.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { printConvertUsage(w) }

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addThemeFlags(fs, &f.theme)
	addPageFlags(fs, &f.page)
	fs.StringVar(&f.highlight, "highlight", "", "highlight code blocks with a chroma style")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding the built-in template and styles")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF printing timeout, e.g. 45s")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.watch, "watch", false, "convert again when notes or the theme change")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
