/*
PURPOSE:
  Defines the core data structures used throughout LLM Bridge.
  These models represent chat messages and latency measurements.

REQUIREMENTS:
  User-specified:
  - Record time-to-first-token, total wall time, tokens/second.
  - Carry chat messages in the Ollama role/content shape.

  Implementation-discovered:
  - Need JSON tags matching the /api/chat wire format.
  - time.Duration keeps client timings precise; milliseconds are a
    presentation concern.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/session, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Value semantics; nothing here is mutated after construction.

USAGE:
  msg := model.Message{Role: model.RoleUser, Content: "hello"}

RELATED FILES:
  - internal/engine/client.go
  - internal/output/report.go

MAINTENANCE:
  - Update when capturing new server-side metrics.
*/

package model

import "time"

// Message roles accepted by the chat endpoint.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message in the /api/chat wire shape.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Result is the outcome of a single streamed chat exchange.
// TTFT is measured to the first non-empty content fragment (perceived
// latency), not to the first byte on the wire.
type Result struct {
	Text            string        `json:"text"`
	TTFT            time.Duration `json:"ttft"`
	Total           time.Duration `json:"total"`
	EvalCount       int           `json:"eval_count"`
	TokensPerSecond float64       `json:"tokens_per_second"`
}

// Summary aggregates a benchmark run over its successful results.
type Summary struct {
	Completed int `json:"completed"`
	Attempted int `json:"attempted"`

	TTFTMin time.Duration `json:"ttft_min"`
	TTFTAvg time.Duration `json:"ttft_avg"`
	TTFTMax time.Duration `json:"ttft_max"`

	TotalMin time.Duration `json:"total_min"`
	TotalAvg time.Duration `json:"total_avg"`
	TotalMax time.Duration `json:"total_max"`

	// AvgTokensPerSecond averages only results with positive throughput.
	// It is 0 when no result reported server metrics.
	AvgTokensPerSecond float64 `json:"avg_tokens_per_second"`
}
