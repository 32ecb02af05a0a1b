/*
PURPOSE:
  Core engine for talking to the Ollama chat API.
  Sends one streaming /api/chat request at a time and measures
  perceived latency while reconstructing the reply.

REQUIREMENTS:
  User-specified:
  - Stream inference with timeouts and garbage resilience.
  - Time-to-first-token measured at the first visible content
    fragment, not the first byte.
  - Tokens/second derived from the terminal chunk's server metrics.

  Implementation-discovered:
  - Needs http.Client with a tuned transport: connection dial and
    response-header ceilings are independent because model cold-start
    happens between request write and first response byte.
  - Resilience against "garbage" JSON (invalid chunks are skipped).

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/{bench,interactive}.go, internal/cli
  - Uses: internal/config, internal/model, internal/wire, internal/output

ERROR HANDLING:
  - Typed errors (TransportError, ProtocolError, StreamError); every
    failure still returns a Result carrying elapsed time at failure.
  - No retries. The caller decides whether a failure is fatal.

IMPLEMENTATION RULES:
  - Strictly one in-flight request; the caller blocks for the full
    duration of Chat.
  - The response body is closed on every exit path.

USAGE:
  e := engine.New(cfg)
  res, err := e.Chat(url, messages)

RELATED FILES:
  - internal/wire/chunk.go
  - internal/engine/errors.go

MAINTENANCE:
  - Update the request shape if the chat API grows new options.
*/

package engine

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sotalab/llm-bridge/internal/config"
	"github.com/sotalab/llm-bridge/internal/model"
	"github.com/sotalab/llm-bridge/internal/output"
	"github.com/sotalab/llm-bridge/internal/wire"
)

// maxChunkLine bounds a single NDJSON line; chunks are tiny but the
// default Scanner buffer (64KiB) is too small a safety margin for
// long final chunks carrying full context echoes.
const maxChunkLine = 1024 * 1024

// Engine issues chat requests and measures latency.
type Engine struct {
	Config *config.Config
	Client *http.Client
}

// New creates a new Engine. ConnectTimeout bounds the TCP dial;
// ReadTimeout bounds the wait for response headers, which is where
// model loading happens. The overall client timeout must cover loading
// plus generation.
func New(cfg *config.Config) *Engine {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext
	transport.ResponseHeaderTimeout = cfg.ReadTimeout

	return &Engine{
		Config: cfg,
		Client: &http.Client{
			Transport: transport,
			Timeout:   cfg.ConnectTimeout + cfg.ReadTimeout*2,
		},
	}
}

// chatRequest is the outbound /api/chat body.
type chatRequest struct {
	Model    string          `json:"model"`
	Messages []model.Message `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  chatOptions     `json:"options"`
}

type chatOptions struct {
	NumPredict int `json:"num_predict"`
}

// Chat sends one streaming chat request and consumes the NDJSON reply.
// On failure the returned Result still carries elapsed wall time, so
// callers can log best-effort timing; the error reports what broke.
func (e *Engine) Chat(baseURL string, messages []model.Message) (model.Result, error) {
	start := time.Now()

	body, err := json.Marshal(chatRequest{
		Model:    e.Config.Model,
		Messages: messages,
		Stream:   true,
		Options:  chatOptions{NumPredict: e.Config.NumPredict},
	})
	if err != nil {
		return failedResult(start), &TransportError{Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/api/chat", baseURL), bytes.NewReader(body))
	if err != nil {
		return failedResult(start), &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := e.Client.Do(req)
	if err != nil {
		return failedResult(start), &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failedResult(start), &ProtocolError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var (
		text       strings.Builder
		firstToken time.Time
		evalCount  int
		evalNs     int64
	)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxChunkLine)

	for scanner.Scan() {
		chunk, ok := wire.ParseChunk(bytes.TrimSpace(scanner.Bytes()))
		if !ok {
			if len(bytes.TrimSpace(scanner.Bytes())) > 0 {
				output.Logger.Debug("Skipping invalid JSON chunk", "chunk", scanner.Text())
			}
			continue
		}

		if chunk.Delta != "" {
			if firstToken.IsZero() {
				firstToken = time.Now()
			}
			text.WriteString(chunk.Delta)
		}

		if chunk.Done {
			evalCount = chunk.EvalCount
			evalNs = chunk.EvalDurationNs
			break
		}
	}

	total := time.Since(start)
	res := model.Result{
		Text:      strings.TrimSpace(text.String()),
		TTFT:      total,
		Total:     total,
		EvalCount: evalCount,
	}
	if !firstToken.IsZero() {
		res.TTFT = firstToken.Sub(start)
	}
	if evalCount > 0 && evalNs > 0 {
		res.TokensPerSecond = float64(evalCount) / (float64(evalNs) / 1e9)
	}

	if err := scanner.Err(); err != nil {
		return res, &StreamError{Err: err}
	}
	return res, nil
}

// failedResult stamps both timing fields with elapsed time at failure;
// with no content observed, TTFT equals Total by definition.
func failedResult(start time.Time) model.Result {
	elapsed := time.Since(start)
	return model.Result{TTFT: elapsed, Total: elapsed}
}
