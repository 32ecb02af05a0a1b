/*
PURPOSE:
  High-level benchmark runner. Drives the fixed prompt corpus through
  the wire client and aggregates latency statistics.

REQUIREMENTS:
  User-specified:
  - Warm-up call before timing begins (cold-start load excluded).
  - Each prompt is an isolated single-turn exchange: shared history
    would let context length drift skew timing.
  - Log-and-continue on failure; failed prompts are excluded from the
    aggregates but recorded in the report.

  Implementation-discovered:
  - Needs to report progress to the CLI.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/engine/client.go, internal/output

ERROR HANDLING:
  - Only report-file problems abort the run; inference failures do not.

IMPLEMENTATION RULES:
  - Sequential; one request in flight at a time.

USAGE:
  sum, err := engine.RunBenchmark(cfg, url)

RELATED FILES:
  - internal/output/report.go

MAINTENANCE:
  - Update summarize when Summary gains statistics.
*/

package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sotalab/llm-bridge/internal/config"
	"github.com/sotalab/llm-bridge/internal/model"
	"github.com/sotalab/llm-bridge/internal/output"
)

// warmupPrompt is sent once before timing begins; its result is
// discarded.
const warmupPrompt = "Hello."

// SingleTurn builds a one-shot payload: system prompt plus one user
// message, no history.
func SingleTurn(systemPrompt, userMessage string) []model.Message {
	return []model.Message{
		{Role: model.RoleSystem, Content: systemPrompt},
		{Role: model.RoleUser, Content: userMessage},
	}
}

// RunBenchmark executes the benchmark suite against baseURL and
// appends a timestamped report to the configured log file.
func RunBenchmark(cfg *config.Config, baseURL string) (model.Summary, error) {
	e := New(cfg)
	start := time.Now()

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return model.Summary{}, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	logPath := filepath.Join(cfg.OutputDir, cfg.LogFile)
	report, err := output.NewReportWriter(logPath)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to open report log at %s: %w", logPath, err)
	}
	defer report.Close()

	if err := report.RunHeader(start, cfg.Model, baseURL); err != nil {
		return model.Summary{}, err
	}

	// Warm-up: pull the model into memory so the first timed prompt
	// does not pay the load cost.
	output.Logger.Info("Warm-up: loading model...", "model", cfg.Model, "url", baseURL)
	if _, err := e.Chat(baseURL, SingleTurn(cfg.SystemPrompt, warmupPrompt)); err != nil {
		output.Logger.Warn("Warm-up call failed; continuing", "error", err)
	}

	var results []model.Result
	for i, prompt := range cfg.BenchPrompts {
		output.Logger.Info("Sending", "n", i+1, "total", len(cfg.BenchPrompts), "prompt", prompt)

		res, err := e.Chat(baseURL, SingleTurn(cfg.SystemPrompt, prompt))
		if err != nil {
			output.Logger.Error("Prompt failed", "n", i+1, "error", err)
			if werr := report.Failure(i+1, prompt, err); werr != nil {
				return model.Summary{}, werr
			}
			continue
		}

		output.Logger.Info("Received",
			"n", i+1,
			"ttft_ms", res.TTFT.Milliseconds(),
			"total_ms", res.Total.Milliseconds(),
			"tok_per_s", fmt.Sprintf("%.1f", res.TokensPerSecond),
		)

		results = append(results, res)
		if werr := report.Line(i+1, prompt, res); werr != nil {
			return model.Summary{}, werr
		}
	}

	sum := summarize(results, len(cfg.BenchPrompts))
	if err := report.Summary(sum); err != nil {
		return model.Summary{}, err
	}
	output.Logger.Info("Report saved", "path", logPath)

	return sum, nil
}

// summarize computes min/avg/max of TTFT and total time over the
// successful results, and the mean throughput over results that
// reported positive tokens/second.
func summarize(results []model.Result, attempted int) model.Summary {
	s := model.Summary{Completed: len(results), Attempted: attempted}
	if len(results) == 0 {
		return s
	}

	var ttftSum, totalSum time.Duration
	var tpsSum float64
	tpsCount := 0

	s.TTFTMin, s.TTFTMax = results[0].TTFT, results[0].TTFT
	s.TotalMin, s.TotalMax = results[0].Total, results[0].Total

	for _, r := range results {
		if r.TTFT < s.TTFTMin {
			s.TTFTMin = r.TTFT
		}
		if r.TTFT > s.TTFTMax {
			s.TTFTMax = r.TTFT
		}
		ttftSum += r.TTFT

		if r.Total < s.TotalMin {
			s.TotalMin = r.Total
		}
		if r.Total > s.TotalMax {
			s.TotalMax = r.Total
		}
		totalSum += r.Total

		if r.TokensPerSecond > 0 {
			tpsSum += r.TokensPerSecond
			tpsCount++
		}
	}

	s.TTFTAvg = ttftSum / time.Duration(len(results))
	s.TotalAvg = totalSum / time.Duration(len(results))
	if tpsCount > 0 {
		s.AvgTokensPerSecond = tpsSum / float64(tpsCount)
	}
	return s
}
