// Package mdprint renders notes from a Markdown vault to print-ready HTML
// that looks like the note on screen, and optionally prints it to PDF with
// headless Chrome.
//
// # Quick Start
//
// Create a converter, convert a note, and close when done:
//
//	conv, err := mdprint.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdprint.Input{
//	    Markdown: string(data),
//	    Path:     "/notes/vault/Daily/2024-05-01.md",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("note.html", []byte(result.HTML), 0644)
//
// When Path is set, the nearest ancestor directory holding a .obsidian
// directory is the vault. Its enabled community theme, color scheme, font
// settings and the values stored by the style settings plugin shape the page.
// A note outside any vault prints with the base styles only; Result.Warnings
// says why.
//
// # Conversion Pipeline
//
//  1. Front-matter split and line ending normalization
//  2. Parsing into a document tree via Goldmark (GFM, footnotes, math,
//     ==highlight== marks)
//  3. Rendering: callouts, footnote section, front-matter properties
//  4. Relative links and images resolved against the note and the vault
//  5. Style settings: /* @settings */ blocks of the theme combined with the
//     stored values into CSS custom properties and body classes
//  6. Page assembly from the embedded template
//  7. Optional PDF printing via headless Chrome (go-rod)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := mdprint.NewConverter(
//	    mdprint.WithLogger(logger),
//	    mdprint.WithHighlighting("github"),
//	    mdprint.WithTimeout(2 * time.Minute),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, mdprint.Input{
//	    Markdown: content,
//	    Path:     path,
//	    Theme:    mdprint.ThemeDark,
//	    Page:     &mdprint.PageSettings{FontSize: 16, MonoFont: "JetBrains Mono"},
//	    PDF:      true,
//	})
//
// # Unsupported Content
//
// Reference-style links and images, link definitions and MDX nodes abort the
// conversion with ErrUnsupportedReference or ErrUnsupportedMDX. Footnotes are
// supported.
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to manage multiple browser instances:
//
//	pool := mdprint.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Browser Requirements
//
// PDF printing requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package mdprint
