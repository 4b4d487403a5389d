package cliconfig

import (
	"io"
	"os"

	"github.com/pygacity/sandlersteam/pkg/log"
)

// Logger builds the process logger from the configured level and format.
func (c Config) Logger(out io.Writer) (*log.ZerologAdapter, error) {
	if out == nil {
		out = os.Stderr
	}
	return log.New(log.Options{Level: c.LogLevel, Format: c.LogFormat, Out: out})
}
