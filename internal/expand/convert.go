package expand

import (
	"context"
	"fmt"

	"github.com/mgpai22/subscroll/internal/config"
	"github.com/mgpai22/subscroll/internal/logging"
	"github.com/mgpai22/subscroll/internal/subtitle"
)

// summary of a finished conversion
type Result struct {
	HeaderLines  int
	Events       int
	Stride       int
	DerivedLines int
}

// Convert loads cfg.InputPath, expands its dialogue events and writes the
// header followed by the triples to cfg.OutputPath. Nothing is written when
// loading or expanding fails.
func Convert(
	ctx context.Context,
	cfg config.Config,
	logger *logging.Logger,
) (*Result, error) {
	logger = logging.OrNop(logger)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	enc, err := cfg.TextEncoding()
	if err != nil {
		return nil, err
	}

	logger.Debugw("Loading script",
		"input", cfg.InputPath,
		"encoding", cfg.Encoding,
	)

	script, err := subtitle.LoadScript(cfg.InputPath, enc)
	if err != nil {
		return nil, err
	}

	stride := Stride(script.Events)
	logger.Debugw("Split script",
		"header_lines", len(script.Header),
		"events", len(script.Events),
		"stride", stride,
	)
	if len(script.Events) == 0 {
		logger.Warnw("No dialogue events found, writing header only",
			"input", cfg.InputPath,
		)
	}

	derived, err := Events(script.Events, cfg.MissingMarker)
	if err != nil {
		return nil, fmt.Errorf("failed to expand events: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output := make([]string, 0, len(script.Header)+len(derived))
	output = append(output, script.Header...)
	output = append(output, derived...)

	logger.Debugw("Writing script",
		"output", cfg.OutputPath,
		"lines", len(output),
		"atomic", cfg.Atomic,
	)

	if err := subtitle.Write(cfg.OutputPath, output, subtitle.WriteOptions{
		Encoding: enc,
		Atomic:   cfg.Atomic,
	}); err != nil {
		return nil, fmt.Errorf("failed to write script: %w", err)
	}

	return &Result{
		HeaderLines:  len(script.Header),
		Events:       len(script.Events),
		Stride:       stride,
		DerivedLines: len(derived),
	}, nil
}
