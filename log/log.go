// Package log provides the logging backend for the simulator, based around
// the go-logging package.  Machines obtain per-component leveled loggers
// from a shared backend; nothing is ever logged on the per-character path.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/op/go-logging.v1"
)

const format = "%{time:15:04:05.000} %{level:.4s} %{module}: %{message}"

// Backend is a log backend handing out per-module loggers.
type Backend struct {
	backend logging.LeveledBackend
}

func level(s string) (logging.Level, error) {
	switch strings.ToUpper(s) {
	case "ERROR":
		return logging.ERROR, nil
	case "WARNING":
		return logging.WARNING, nil
	case "NOTICE":
		return logging.NOTICE, nil
	case "INFO":
		return logging.INFO, nil
	case "DEBUG":
		return logging.DEBUG, nil
	}
	return logging.ERROR, fmt.Errorf("log: invalid level: %q", s)
}

// New creates a backend writing to w at the given level.  When disabled,
// everything is discarded.
func New(w io.Writer, levelStr string, disable bool) (*Backend, error) {
	lvl, err := level(levelStr)
	if err != nil {
		return nil, err
	}
	if disable {
		w = io.Discard
	}
	base := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(base, logging.MustStringFormatter(format))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, "")
	return &Backend{backend: leveled}, nil
}

// NewDefault creates a stderr backend and panics on bad input; it backs
// the package-level default used when a caller supplies no backend.
func NewDefault(levelStr string, disable bool) *Backend {
	b, err := New(os.Stderr, levelStr, disable)
	if err != nil {
		panic(err)
	}
	return b
}

// GetLogger returns a logger for the named module, attached to this
// backend.
func (b *Backend) GetLogger(module string) *logging.Logger {
	l := logging.MustGetLogger(module)
	l.SetBackend(b.backend)
	return l
}
