package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

const (
	DefaultInputPath  = "./original_subtitles.ass"
	DefaultOutputPath = "./processed_subtitles.ass"
	DefaultEncoding   = "utf-8"
)

var ErrInvalidConfig = errors.New("invalid config")

// MissingMarkerPolicy decides what happens to a dialogue line that has no
// ",Default" splice point.
type MissingMarkerPolicy string

const (
	// abort the conversion with a MalformedEventError
	MissingMarkerError MissingMarkerPolicy = "error"
	// splice at the start of the Style field instead, dropping the trailing fields
	MissingMarkerStyleField MissingMarkerPolicy = "style-field"
)

// Config holds the options of a single conversion run.
type Config struct {
	// InputPath is the ASS/SSA script to read
	InputPath string
	// OutputPath is overwritten with the expanded script
	OutputPath string
	// Encoding is a WHATWG encoding label used for both read and write
	Encoding string
	// MissingMarker selects the fallback for dialogue lines without ",Default"
	MissingMarker MissingMarkerPolicy
	// Atomic writes through a temp file and rename
	Atomic bool
}

// Default returns the fixed paths, UTF-8 and the strict marker policy.
func Default() Config {
	return Config{
		InputPath:     DefaultInputPath,
		OutputPath:    DefaultOutputPath,
		Encoding:      DefaultEncoding,
		MissingMarker: MissingMarkerError,
	}
}

// Validate reports the first problem found in c.
func (c Config) Validate() error {
	if strings.TrimSpace(c.InputPath) == "" {
		return fmt.Errorf("%w: input path is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("%w: output path is required", ErrInvalidConfig)
	}
	if _, err := LookupEncoding(c.Encoding); err != nil {
		return err
	}
	if _, err := ParseMissingMarker(string(c.MissingMarker)); err != nil {
		return err
	}
	return nil
}

// TextEncoding resolves c.Encoding.
func (c Config) TextEncoding() (encoding.Encoding, error) {
	return LookupEncoding(c.Encoding)
}

// LookupEncoding maps a label such as "utf-8", "latin1" or "shift_jis" to an
// encoding. An empty label means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported encoding %q", ErrInvalidConfig, name)
	}
	return enc, nil
}

// ParseMissingMarker accepts the policy names used on the command line.
// An empty value selects MissingMarkerError.
func ParseMissingMarker(s string) (MissingMarkerPolicy, error) {
	switch MissingMarkerPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MissingMarkerError:
		return MissingMarkerError, nil
	case MissingMarkerStyleField:
		return MissingMarkerStyleField, nil
	default:
		return "", fmt.Errorf(
			"%w: unknown missing-marker policy %q: use error or style-field",
			ErrInvalidConfig,
			s,
		)
	}
}
