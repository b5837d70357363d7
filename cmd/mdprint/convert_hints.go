package main

import (
	"context"
	"errors"
	"strings"

	mdprint "github.com/alnah/go-mdprint"
	"github.com/alnah/go-mdprint/internal/config"
	"github.com/alnah/go-mdprint/internal/hints"
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, env *Environment) string {
	switch {
	case errors.Is(err, mdprint.ErrBrowserConnect):
		container, _ := isContainer(env.Getenv)
		return hints.ForBrowserConnect(hints.Env{Getenv: env.Getenv, Container: container})
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(searchedPaths(err))
	case errors.Is(err, mdprint.ErrUnknownHighlightStyle):
		return hints.ForHighlightStyle(mdprint.HighlightStyles())
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, mdprint.ErrVaultNotFound):
		return hints.ForVaultNotFound()
	case errors.Is(err, mdprint.ErrNoTheme):
		return hints.ForNoTheme()
	case errors.Is(err, mdprint.ErrUnsupportedReference):
		return hints.ForUnsupportedReference()
	case errors.Is(err, mdprint.ErrUnsupportedMDX):
		return hints.ForUnsupportedMDX()
	case errors.Is(err, ErrTerminalOutput):
		return hints.ForTerminalOutput()
	}
	return ""
}

// searchedPaths extracts the locations listed by a config lookup error.
func searchedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
