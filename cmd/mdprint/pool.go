package main

import (
	"context"
	"fmt"

	mdprint "github.com/alnah/go-mdprint"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input mdprint.Input) (*mdprint.Result, error)
}

// Compile-time interface implementation checks.
var (
	_ CLIConverter = (*mdprint.Converter)(nil)
	_ Pool         = (*poolAdapter)(nil)
)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// poolAdapter exposes a mdprint.ConverterPool through Pool.
type poolAdapter struct {
	pool *mdprint.ConverterPool
}

// newConverterPool creates the production pool.
func newConverterPool(size int, opts ...mdprint.Option) Pool {
	return &poolAdapter{pool: mdprint.NewConverterPool(size, opts...)}
}

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	c, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Release panics when given a converter this pool did not hand out.
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*mdprint.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
