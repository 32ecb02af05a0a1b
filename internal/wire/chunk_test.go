package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChunk_ContentDelta(t *testing.T) {
	c, ok := ParseChunk([]byte(`{"model":"llama3.2:3b","message":{"role":"assistant","content":"Hi"},"done":false}`))
	require.True(t, ok)
	assert.Equal(t, "Hi", c.Delta)
	assert.False(t, c.Done)
	assert.Zero(t, c.EvalCount)
}

func TestParseChunk_TerminalWithMetrics(t *testing.T) {
	c, ok := ParseChunk([]byte(`{"message":{"content":" there"},"done":true,"eval_count":2,"eval_duration":1000000000}`))
	require.True(t, ok)
	assert.Equal(t, " there", c.Delta)
	assert.True(t, c.Done)
	assert.Equal(t, 2, c.EvalCount)
	assert.Equal(t, int64(1000000000), c.EvalDurationNs)
}

func TestParseChunk_DoneWithSpaceAfterColon(t *testing.T) {
	c, ok := ParseChunk([]byte(`{"done": true, "eval_count": 5, "eval_duration": 250000000}`))
	require.True(t, ok)
	assert.True(t, c.Done)
	assert.Equal(t, 5, c.EvalCount)
	assert.Equal(t, int64(250000000), c.EvalDurationNs)
}

func TestParseChunk_SkipsGarbage(t *testing.T) {
	for _, line := range []string{"", "not json at all", `{"truncated":`} {
		_, ok := ParseChunk([]byte(line))
		assert.False(t, ok, "line %q should not parse", line)
	}
}

func TestParseChunk_UnknownFieldsIgnored(t *testing.T) {
	c, ok := ParseChunk([]byte(`{"model":"m","created_at":"2026-01-01T00:00:00Z","message":{"role":"assistant","content":"x","images":null},"load_duration":7}`))
	require.True(t, ok)
	assert.Equal(t, "x", c.Delta)
	assert.False(t, c.Done)
}

func TestParseChunk_MissingContentIsEmptyDelta(t *testing.T) {
	c, ok := ParseChunk([]byte(`{"model":"m","done":false}`))
	require.True(t, ok)
	assert.Empty(t, c.Delta)
}

func TestStringField_EscapeRoundTrip(t *testing.T) {
	values := []string{
		`plain`,
		`with "quotes" inside`,
		`back\slash`,
		"line\nbreak",
		"tab\there",
		"carriage\rreturn",
		"all\tof\nthem \"together\" \\ at once\r",
	}

	for _, want := range values {
		line, err := json.Marshal(map[string]any{
			"message": map[string]any{"content": want},
		})
		require.NoError(t, err)

		assert.Equal(t, want, StringField(line, "message.content"), "round-trip of %q", want)

		c, ok := ParseChunk(line)
		require.True(t, ok)
		assert.Equal(t, want, c.Delta)
	}
}

func TestFields_AbsentKeysYieldZeroValues(t *testing.T) {
	line := []byte(`{"done":true}`)
	assert.Empty(t, StringField(line, "message.content"))
	assert.Zero(t, IntField(line, "eval_count"))
	assert.Zero(t, IntField([]byte("garbage"), "eval_count"))
	assert.Empty(t, StringField([]byte("garbage"), "message.content"))
}
