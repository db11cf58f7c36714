// Package expand turns every Dialogue event of a script into a
// previous / current / next triple for a scrolling context effect.
package expand

import (
	"strings"

	"github.com/mgpai22/subscroll/internal/config"
	"github.com/mgpai22/subscroll/internal/subtitle"
)

const (
	placeholder      = "..."
	previousTemplate = ",P,,0,0,0,,"
	nextTemplate     = ",F,,0,0,0,,"
)

// Stride is the number of space-separated tokens in the payload of the
// first event; an empty payload still counts as one token. It returns 0
// when there are no events.
func Stride(events []string) int {
	if len(events) == 0 {
		return 0
	}
	return len(strings.Split(subtitle.Payload(events[0]), " "))
}

// Events expands each event into three lines. The stride is fixed from the
// first event and the context for event i comes from events i-stride and
// i+stride, or "..." when that index falls outside the slice.
func Events(events []string, policy config.MissingMarkerPolicy) ([]string, error) {
	if len(events) == 0 {
		return []string{}, nil
	}

	stride := Stride(events)
	count := len(events)
	out := make([]string, 0, 3*count)

	for i, event := range events {
		prefix, err := splicePrefix(i, event, policy)
		if err != nil {
			return nil, err
		}

		previous := placeholder
		if i > stride-1 {
			previous = subtitle.Payload(events[i-stride])
		}

		next := placeholder
		if i < count-stride {
			next = subtitle.Payload(events[i+stride])
		}

		out = append(out,
			prefix+previousTemplate+subtitle.CleanPayload(previous)+"\n",
			subtitle.NormalizeNewline(event),
			prefix+nextTemplate+subtitle.CleanPayload(next)+"\n\n",
		)
	}

	return out, nil
}

func splicePrefix(
	index int,
	event string,
	policy config.MissingMarkerPolicy,
) (string, error) {
	if prefix, ok := subtitle.SplicePrefix(event); ok {
		return prefix, nil
	}
	if policy == config.MissingMarkerStyleField {
		if prefix, ok := subtitle.StyleFieldPrefix(event); ok {
			return prefix, nil
		}
	}
	return "", &subtitle.MalformedEventError{Index: index, Line: strings.TrimRight(event, "\r\n")}
}
