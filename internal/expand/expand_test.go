package expand

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgpai22/subscroll/internal/config"
	"github.com/mgpai22/subscroll/internal/subtitle"
)

func dialogue(i int, text string) string {
	return fmt.Sprintf("Dialogue: 0,0:00:%02d.00,0:00:%02d.50,Default,,0,0,0,,%s\n", i, i, text)
}

func prefixOf(i int) string {
	return fmt.Sprintf("Dialogue: 0,0:00:%02d.00,0:00:%02d.50", i, i)
}

func TestStride(t *testing.T) {
	tests := []struct {
		name   string
		events []string
		want   int
	}{
		{"no events", nil, 0},
		{"three tokens", []string{dialogue(0, "a b c")}, 3},
		{"empty payload", []string{dialogue(0, "")}, 1},
		{"single token", []string{dialogue(0, "word")}, 1},
		{"double space counts empty token", []string{dialogue(0, "a  b")}, 3},
		{"only first event counts", []string{dialogue(0, "a b"), dialogue(1, "a b c d e")}, 2},
		{"crlf trimmed", []string{"Dialogue: 0,a,b,Default,,0,0,0,,x y\r\n"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stride(tt.events))
		})
	}
}

func TestEvents_FiveEventsStrideTwo(t *testing.T) {
	texts := []string{"a0 b0", "a1 b1", "a2 b2", "a3 b3", "a4 b4"}
	events := make([]string, len(texts))
	for i, text := range texts {
		events[i] = dialogue(i, text)
	}

	out, err := Events(events, config.MissingMarkerError)
	require.NoError(t, err)
	require.Len(t, out, 15)

	prev := []string{"...", "...", "a0 b0", "a1 b1", "a2 b2"}
	next := []string{"a2 b2", "a3 b3", "a4 b4", "...", "..."}

	for i := range events {
		triple := out[3*i : 3*i+3]
		assert.Equal(t, prefixOf(i)+",P,,0,0,0,,"+prev[i]+"\n", triple[0], "previous line of event %d", i)
		assert.Equal(t, events[i], triple[1], "current line of event %d", i)
		assert.Equal(t, prefixOf(i)+",F,,0,0,0,,"+next[i]+"\n\n", triple[2], "next line of event %d", i)
	}
}

func TestEvents_PlaceholderBoundaries(t *testing.T) {
	for m := 1; m <= 7; m++ {
		for n := 1; n <= 4; n++ {
			t.Run(fmt.Sprintf("m=%d n=%d", m, n), func(t *testing.T) {
				first := strings.TrimSuffix(strings.Repeat("w ", n), " ")

				events := []string{dialogue(0, first)}
				for i := 1; i < m; i++ {
					events = append(events, dialogue(i, fmt.Sprintf("e%d", i)))
				}

				out, err := Events(events, config.MissingMarkerError)
				require.NoError(t, err)
				require.Len(t, out, 3*m)

				for i := 0; i < m; i++ {
					prevPayload := subtitle.Payload(out[3*i])
					nextPayload := subtitle.Payload(out[3*i+2])
					if i < n {
						assert.Equal(t, "...", prevPayload, "event %d previous", i)
					} else {
						assert.Equal(t, subtitle.Payload(events[i-n]), prevPayload, "event %d previous", i)
					}
					if i >= m-n {
						assert.Equal(t, "...", nextPayload, "event %d next", i)
					} else {
						assert.Equal(t, subtitle.Payload(events[i+n]), nextPayload, "event %d next", i)
					}
				}
			})
		}
	}
}

func TestEvents_FewerEventsThanStride(t *testing.T) {
	events := []string{dialogue(0, "a b c d"), dialogue(1, "x"), dialogue(2, "y")}

	out, err := Events(events, config.MissingMarkerError)
	require.NoError(t, err)
	require.Len(t, out, 9)
	for i := range events {
		assert.Equal(t, prefixOf(i)+",P,,0,0,0,,...\n", out[3*i])
		assert.Equal(t, prefixOf(i)+",F,,0,0,0,,...\n\n", out[3*i+2])
	}
}

func TestEvents_Empty(t *testing.T) {
	out, err := Events(nil, config.MissingMarkerError)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEvents_CleansOnlyDerivedPayloads(t *testing.T) {
	events := []string{
		dialogue(0, `{\rH}one{\r}`),
		dialogue(1, `{\rH}two{\r}`),
	}

	out, err := Events(events, config.MissingMarkerError)
	require.NoError(t, err)

	assert.Equal(t, prefixOf(0)+",F,,0,0,0,,two\n\n", out[2])
	assert.Equal(t, prefixOf(1)+",P,,0,0,0,,one\n", out[3])
	assert.Equal(t, events[0], out[1])
	assert.Equal(t, events[1], out[4])
}

func TestEvents_NormalizesCurrentLine(t *testing.T) {
	events := []string{
		"Dialogue: 0,a,b,Default,,0,0,0,,first\r\n",
		"Dialogue: 0,c,d,Default,,0,0,0,,last",
	}

	out, err := Events(events, config.MissingMarkerError)
	require.NoError(t, err)
	assert.Equal(t, "Dialogue: 0,a,b,Default,,0,0,0,,first\n", out[1])
	assert.Equal(t, "Dialogue: 0,c,d,Default,,0,0,0,,last\n", out[4])
	assert.Equal(t, "Dialogue: 0,a,b,F,,0,0,0,,last\n\n", out[2])
}

func TestEvents_MissingMarker(t *testing.T) {
	events := []string{
		dialogue(0, "a"),
		"Dialogue: 0,0:00:01.00,0:00:02.00,Sign,,0,0,0,,b\n",
		dialogue(2, "c"),
	}

	t.Run("error policy", func(t *testing.T) {
		_, err := Events(events, config.MissingMarkerError)
		require.Error(t, err)
		assert.ErrorIs(t, err, subtitle.ErrMalformedEvent)

		var malformed *subtitle.MalformedEventError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, 1, malformed.Index)
		assert.Equal(t, "Dialogue: 0,0:00:01.00,0:00:02.00,Sign,,0,0,0,,b", malformed.Line)
	})

	t.Run("style-field policy", func(t *testing.T) {
		out, err := Events(events, config.MissingMarkerStyleField)
		require.NoError(t, err)
		require.Len(t, out, 9)
		assert.Equal(t, "Dialogue: 0,0:00:01.00,0:00:02.00,P,,0,0,0,,a\n", out[3])
		assert.Equal(t, events[1], out[4])
		assert.Equal(t, "Dialogue: 0,0:00:01.00,0:00:02.00,F,,0,0,0,,c\n\n", out[5])
	})

	t.Run("style-field policy without enough fields", func(t *testing.T) {
		_, err := Events([]string{"Dialogue: broken\n"}, config.MissingMarkerStyleField)
		assert.ErrorIs(t, err, subtitle.ErrMalformedEvent)
	})
}
