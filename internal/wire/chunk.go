/*
PURPOSE:
  Decodes one newline-delimited JSON chunk from the streaming
  /api/chat response into a flat Chunk value.

REQUIREMENTS:
  User-specified:
  - Extract the content delta, the done marker, and the final
    generation metrics (eval_count, eval_duration).
  - Tolerate unknown fields and malformed lines (garbage resilience).

  Implementation-discovered:
  - gjson gives exact path addressing (message.content vs. a nested
    content at another level) and full escape handling without a
    schema, so unknown fields cost nothing.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (stream loop)
  - Dependencies: github.com/tidwall/gjson

ERROR HANDLING:
  - No errors. An unparseable line reports ok=false and is skipped
    upstream; a valid line missing fields yields zero values.

IMPLEMENTATION RULES:
  - Only the consumed fields are extracted; this is not a general
    chunk model.

USAGE:
  c, ok := wire.ParseChunk(line)

RELATED FILES:
  - internal/engine/client.go

MAINTENANCE:
  - Add paths here when the engine starts consuming new chunk fields.
*/

package wire

import "github.com/tidwall/gjson"

// gjson paths for the fields the client consumes.
const (
	pathContent      = "message.content"
	pathDone         = "done"
	pathEvalCount    = "eval_count"
	pathEvalDuration = "eval_duration"
)

// Chunk is one decoded line of the streamed response. A terminal chunk
// (Done true) may still carry a final content delta, so Delta and the
// metrics are not mutually exclusive.
type Chunk struct {
	Delta          string
	Done           bool
	EvalCount      int
	EvalDurationNs int64
}

// ParseChunk decodes a single stream line. It reports ok=false for
// blank or non-JSON lines; callers skip those without error.
func ParseChunk(line []byte) (Chunk, bool) {
	if len(line) == 0 || !gjson.ValidBytes(line) {
		return Chunk{}, false
	}

	c := Chunk{
		Delta: gjson.GetBytes(line, pathContent).String(),
		Done:  gjson.GetBytes(line, pathDone).Bool(),
	}
	if c.Done {
		c.EvalCount = int(gjson.GetBytes(line, pathEvalCount).Int())
		c.EvalDurationNs = gjson.GetBytes(line, pathEvalDuration).Int()
	}
	return c, true
}
