// Package process stops browser process trees left behind by the printer.
package process
