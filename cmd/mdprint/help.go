package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdprint <command> [flags] [args]")
	fmt.Fprintln(w, "       mdprint <note.md|dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Print notes to HTML or PDF")
	fmt.Fprintln(w, "  doctor     Check the browser and a vault")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdprint help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdprint convert <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print notes the way they look in their vault.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, directory, or - for stdout")
	fmt.Fprintln(w, "                            A single note without -o prints to stdout")
	fmt.Fprintln(w, "      --output-dir <dir>    Directory for every generated document")
	fmt.Fprintln(w, "      --pdf                 Print to PDF instead of writing HTML")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --watch               Convert again when notes or the theme change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Theme:")
	fmt.Fprintln(w, "      --theme <s>           Variant: light, dark (default: vault color scheme)")
	fmt.Fprintln(w, "      --theme-name <s>      Community theme installed in the vault")
	fmt.Fprintln(w, "      --theme-css <path>    Stylesheet used instead of the vault theme")
	fmt.Fprintln(w, "      --highlight <style>   Highlight code blocks (e.g. github, monokai)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --font-size <px>      Base font size (default: vault setting or 18)")
	fmt.Fprintln(w, "      --zoom-factor <f>     Page zoom factor (default: 1)")
	fmt.Fprintln(w, "      --mono-font <s>       Monospace font family")
	fmt.Fprintln(w, "      --h1-weight <n>       Level 1 heading weight (100-1000)")
	fmt.Fprintln(w, "      --h2-weight <n>       Level 2 heading weight (100-1000)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Advanced:")
	fmt.Fprintln(w, "      --asset-path <dir>    Override the built-in template and styles")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF printing timeout (default: 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing and logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDPRINT_CONFIG, MDPRINT_THEME, MDPRINT_THEME_NAME, MDPRINT_HIGHLIGHT,")
	fmt.Fprintln(w, "  MDPRINT_FORMAT, MDPRINT_OUTPUT_DIR, MDPRINT_TIMEOUT, MDPRINT_WORKERS")
	fmt.Fprintln(w, "  Flags > environment > config file > vault settings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  mdprint note.md > note.html")
	fmt.Fprintln(w, "  mdprint convert note.md --pdf -o note.pdf")
	fmt.Fprintln(w, "  mdprint convert ./vault/Projects --output-dir ./print --theme dark")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdprint doctor [path] [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that PDF printing can work, and how the vault holding path")
	fmt.Fprintln(w, "(default: current directory) will style its notes.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Machine-readable output")
}

// runHelp shows help for a command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdprint version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdprint help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		return ExitUsage
	}
	return ExitSuccess
}
