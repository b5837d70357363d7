// Package hints turns common failures into a short suggestion appended to the
// error line, formatted as "\n  hint: <text>".
package hints

import (
	"strings"
)

// ciVars are set by the CI systems we know about.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// Env is the part of the process environment hints look at.
type Env struct {
	Getenv    func(string) string
	Container bool
}

func (e Env) get(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

func (e Env) inCI() bool {
	for _, v := range ciVars {
		if e.get(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the rod variables that usually fix a browser
// that will not start.
func ForBrowserConnect(env Env) string {
	var hints []string
	if (env.inCI() || env.Container) && env.get("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 in containers and CI")
	}
	if env.get("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "run 'mdprint doctor' for details")
	return formatHints(hints)
}

// ForTimeout suggests a longer timeout.
func ForTimeout() string {
	return format("notes with many images print slowly, raise --timeout")
}

// ForConfigNotFound suggests --config, or the per-user location when it was
// among the searched paths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "go-mdprint/") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory is shown when the output cannot be written.
func ForOutputDirectory() string {
	return format("check that the output directory is writable")
}

// ForVaultNotFound explains why a note printed without its theme.
func ForVaultNotFound() string {
	return format("open the note's folder as a vault once, or pass --theme-css to use a stylesheet directly")
}

// ForNoTheme explains how to get a theme applied.
func ForNoTheme() string {
	return format("enable a community theme in Settings > Appearance, or pass --theme-css")
}

// ForHighlightStyle lists the available highlighting styles.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnsupportedReference tells how to rewrite reference-style links.
func ForUnsupportedReference() string {
	return format("rewrite reference links as inline links, e.g. [text](https://example.com)")
}

// ForUnsupportedMDX is shown for notes that embed JSX or ESM.
func ForUnsupportedMDX() string {
	return format("MDX is not supported, remove JSX elements and import/export lines")
}

// ForTerminalOutput is shown when a PDF would be written to a terminal.
func ForTerminalOutput() string {
	return format("redirect the output to a file or use -o note.pdf")
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
