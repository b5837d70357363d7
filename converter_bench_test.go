//go:build bench

package mdprint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newBenchConverter creates a Converter whose printer never starts a browser.
func newBenchConverter(b *testing.B, opts ...Option) *Converter {
	b.Helper()
	conv, err := NewConverter(append([]Option{withPrinter(&mockPrinter{})}, opts...)...)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = conv.Close() })
	return conv
}

// generateBenchmarkNote builds a note with n sections mixing the constructs
// the renderer handles specially.
func generateBenchmarkNote(n int) string {
	var sb strings.Builder
	sb.WriteString("---\ntitle: Bench\ntags:\n  - a\n  - b\n---\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "## Section %d\n\n", i)
		fmt.Fprintf(&sb, "Some ==highlighted== text with a footnote[^f%d] and `code`.\n\n", i)
		fmt.Fprintf(&sb, "> [!note]- Callout %d\n> Body with **bold** text.\n\n", i)
		sb.WriteString("```go\nfunc main() { fmt.Println(\"hi\") }\n```\n\n")
		sb.WriteString("| a | b |\n|---|---|\n| 1 | 2 |\n\n")
		fmt.Fprintf(&sb, "[^f%d]: Footnote %d.\n\n", i, i)
	}
	return sb.String()
}

// BenchmarkConvertBySize benchmarks conversion scaling with note size.
func BenchmarkConvertBySize(b *testing.B) {
	conv := newBenchConverter(b, WithHighlighting("github"))
	ctx := context.Background()

	for _, size := range []int{5, 25, 100} {
		input := Input{Markdown: generateBenchmarkNote(size)}

		b.Run(fmt.Sprintf("sections_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := conv.Convert(ctx, input); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkConvertWithVault includes vault lookup, theme loading and
// style settings synthesis.
func BenchmarkConvertWithVault(b *testing.B) {
	root := b.TempDir()
	files := map[string]string{
		".obsidian/appearance.json":                           `{"cssTheme": "Minimal", "theme": "obsidian"}`,
		".obsidian/themes/Minimal/theme.css":                  testTheme + strings.Repeat(".x { color: red; }\n", 200),
		".obsidian/plugins/obsidian-style-settings/data.json": `{"minimal-style@@accent@@dark": "#ff0000", "minimal-style@@focus-mode": true}`,
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			b.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			b.Fatal(err)
		}
	}

	conv := newBenchConverter(b)
	ctx := context.Background()
	input := Input{
		Markdown: generateBenchmarkNote(10),
		Path:     filepath.Join(root, "Note.md"),
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := conv.Convert(ctx, input); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkResolvePoolSize benchmarks pool size calculation.
func BenchmarkResolvePoolSize(b *testing.B) {
	for _, w := range []int{0, 1, 4, 8} {
		name := "auto"
		if w > 0 {
			name = fmt.Sprintf("%d", w)
		}
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = ResolvePoolSize(w)
			}
		})
	}
}

// BenchmarkConverterPoolAcquireRelease benchmarks the acquire/release cycle
// of a warm pool.
func BenchmarkConverterPoolAcquireRelease(b *testing.B) {
	for _, size := range []int{1, 4} {
		b.Run(fmt.Sprintf("pool_%d", size), func(b *testing.B) {
			pool := NewConverterPool(size, withPrinter(&mockPrinter{}))
			defer func() { _ = pool.Close() }()

			// Warm every slot so the loop measures reuse only.
			convs := make([]*Converter, size)
			for i := range convs {
				c, err := pool.Acquire()
				if err != nil {
					b.Fatal(err)
				}
				convs[i] = c
			}
			for _, c := range convs {
				pool.Release(c)
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				c, err := pool.Acquire()
				if err != nil {
					b.Fatal(err)
				}
				pool.Release(c)
			}
		})
	}
}
