// Package logs sets up the process wide slog logger
package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/navbryce/yatube/config"
	"github.com/pkg/errors"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

func New(w io.Writer, cfg *config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, errors.Wrapf(err, "parsing LOG_LEVEL %q", cfg.Level)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cfg.Format) {
	case FormatText, "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, errors.Errorf("unknown LOG_FORMAT %q", cfg.Format)
}

// Setup makes the configured logger the default one, which also routes the log package through it
func Setup(cfg *config.LogConfig) error {
	logger, err := New(os.Stderr, cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
