package subtitle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

const (
	eventsMarker   = "[events]"
	dialoguePrefix = "Dialogue:"
)

// Script is an ASS/SSA file partitioned into its header block and its
// Dialogue events. Every line keeps its original terminator.
type Script struct {
	Header []string
	Events []string
}

// Load reads path and decodes it with enc (UTF-8 when nil). The returned
// lines keep their terminators, a line ends after each '\n'.
func Load(path string, enc encoding.Encoding) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	defer func() {
		_ = file.Close()
	}()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	text, err := decode(raw, enc)
	if err != nil {
		return nil, &IOError{Op: "decode", Path: path, Err: err}
	}

	return SplitLines(text), nil
}

func decode(raw []byte, enc encoding.Encoding) (string, error) {
	if isUTF8(enc) {
		if !utf8.Valid(raw) {
			return "", errors.New("invalid UTF-8 byte sequence")
		}
		return string(raw), nil
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func isUTF8(enc encoding.Encoding) bool {
	if enc == nil || enc == unicode.UTF8 {
		return true
	}
	name, err := htmlindex.Name(enc)
	return err == nil && name == "utf-8"
}

// SplitLines breaks text after every '\n', keeping the terminator on each
// line. A trailing fragment without a newline is returned as the last line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Split partitions lines into header and events. A line whose trimmed,
// lower-cased form starts with "[events]" opens the events section; after
// it every "Dialogue:" line is an event and everything else stays in the
// header, so non-dialogue lines between events are hoisted into it.
func Split(lines []string) *Script {
	script := &Script{
		Header: make([]string, 0, len(lines)),
		Events: make([]string, 0),
	}

	inEventsSection := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(strings.ToLower(trimmed), eventsMarker):
			inEventsSection = true
			script.Header = append(script.Header, line)
		case inEventsSection && strings.HasPrefix(trimmed, dialoguePrefix):
			script.Events = append(script.Events, line)
		default:
			script.Header = append(script.Header, line)
		}
	}

	return script
}

// LoadScript is Load followed by Split.
func LoadScript(path string, enc encoding.Encoding) (*Script, error) {
	lines, err := Load(path, enc)
	if err != nil {
		return nil, fmt.Errorf("failed to load script: %w", err)
	}
	return Split(lines), nil
}
