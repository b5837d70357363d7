package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"

	mdprint "github.com/alnah/go-mdprint"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputTarget       = errors.New("invalid output target")
)

// Output extensions.
const (
	extHTML = ".html"
	extPDF  = ".pdf"
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string // empty writes to stdout
}

// outputTarget says where generated documents go. The zero value writes a
// single note to stdout and batches next to each note.
type outputTarget struct {
	file   string // every document to this one path
	dir    string // documents under this directory
	stdout bool
	ext    string
}

// resolveOutputTarget interprets -o: "-" is stdout, a path with a document
// extension is a file, anything else is a directory. Without -o the
// configured directory applies.
func resolveOutputTarget(flagOutput, defaultDir string, pdf bool) (outputTarget, error) {
	t := outputTarget{ext: extHTML}
	if pdf {
		t.ext = extPDF
	}

	switch ext := strings.ToLower(filepath.Ext(flagOutput)); {
	case flagOutput == "-":
		t.stdout = true
	case ext == extHTML || ext == ".htm" || ext == extPDF:
		if (ext == extPDF) != pdf {
			return outputTarget{}, fmt.Errorf("%w: %s does not match the %s output format", ErrOutputTarget, flagOutput, strings.TrimPrefix(t.ext, "."))
		}
		t.file = flagOutput
	case flagOutput != "":
		t.dir = flagOutput
	default:
		t.dir = defaultDir
	}
	return t, nil
}

// discoverFiles finds every note under inputs and decides its output path.
// Directory walks skip hidden directories such as the vault config and list
// notes in natural order, so "Day 2" comes before "Day 10".
func discoverFiles(inputs []string, target outputTarget) ([]FileToConvert, error) {
	var files []FileToConvert
	singleFile := false

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := validateMarkdownExtension(input); err != nil {
				return nil, err
			}
			files = append(files, FileToConvert{
				InputPath:  input,
				OutputPath: resolveOutputPath(input, target, ""),
			})
			singleFile = len(inputs) == 1
			continue
		}

		notes, err := walkNotes(input)
		if err != nil {
			return nil, err
		}
		for _, path := range notes {
			files = append(files, FileToConvert{
				InputPath:  path,
				OutputPath: resolveOutputPath(path, target, input),
			})
		}
	}

	if target.stdout || target.file != "" {
		if len(files) != 1 {
			return nil, fmt.Errorf("%w: %d notes cannot be written to a single output", ErrOutputTarget, len(files))
		}
	}
	if singleFile && target.dir == "" && target.file == "" {
		files[0].OutputPath = ""
	}
	return files, nil
}

// walkNotes lists the Markdown files under root in natural order.
func walkNotes(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if looksLikeMarkdown(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Sort(natural.StringSlice(paths))
	return paths, nil
}

// resolveOutputPath determines the output path for a note. Notes found in
// a directory keep their relative layout under the output directory.
func resolveOutputPath(inputPath string, target outputTarget, baseInputDir string) string {
	switch {
	case target.stdout:
		return ""
	case target.file != "":
		return target.file
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + target.ext
	if target.dir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(target.dir, filepath.Dir(rel), base)
		}
	}
	return filepath.Join(target.dir, base)
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !looksLikeMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mdprint.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mdprint.MaxPoolSize)
	}
	return nil
}
