package main

import (
	"io"
	"os"

	mdprint "github.com/alnah/go-mdprint"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, process environment and converter pool creation.
type Environment struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Getenv     func(string) string
	Environ    func() []string
	IsTerminal func(io.Writer) bool
	NewPool    func(size int, opts ...mdprint.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Getenv:     os.Getenv,
		Environ:    os.Environ,
		IsTerminal: isTerminal,
		NewPool:    newConverterPool,
	}
}
