/*
PURPOSE:
  Writes human-readable benchmark reports to an append-only log file.
  One run's report is appended per invocation; prior runs are never
  truncated.

REQUIREMENTS:
  User-specified:
  - Persistent plain-text latency log, one timestamped report per run.
  - Keep file handle open for flushing.

  Implementation-discovered:
  - O_APPEND|O_CREATE, never os.Create: the file accumulates history
    across invocations.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (benchmark runner)
  - Consumes: internal/model.Result, internal/model.Summary

ERROR HANDLING:
  - Returns error on file open or write failure.

IMPLEMENTATION RULES:
  - Flush after every write (crash resilience).
  - Mutex-guarded writes, matching the other output writers.

USAGE:
  w, err := output.NewReportWriter("results/latency_log.txt")
  w.RunHeader(start, model, target)
  w.Line(1, prompt, res)
  w.Summary(sum)
  w.Close()

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update line formats when Result gains metrics.
*/

package output

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sotalab/llm-bridge/internal/model"
)

const rule = "============================================================"

// ReportWriter appends benchmark reports to a plain-text log.
type ReportWriter struct {
	file *os.File
	w    *bufio.Writer
	mu   sync.Mutex
}

// NewReportWriter opens (or creates) the log file in append mode.
func NewReportWriter(path string) (*ReportWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &ReportWriter{file: f, w: bufio.NewWriter(f)}, nil
}

// RunHeader starts a new report section.
func (rw *ReportWriter) RunHeader(start time.Time, modelName, target string) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	fmt.Fprintln(rw.w, rule)
	fmt.Fprintf(rw.w, "Benchmark Run: %s\n", start.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(rw.w, "Model: %s  Target: %s\n", modelName, target)
	fmt.Fprintln(rw.w, rule)
	return rw.flush()
}

// Line records one successful prompt result.
func (rw *ReportWriter) Line(n int, prompt string, r model.Result) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	fmt.Fprintf(rw.w, "[%d] TTFT %.0fms | Total %.0fms | %.1f tok/s | Q: %s | A: %s\n",
		n,
		float64(r.TTFT.Milliseconds()),
		float64(r.Total.Milliseconds()),
		r.TokensPerSecond,
		prompt,
		strings.ReplaceAll(r.Text, "\n", " "),
	)
	return rw.flush()
}

// Failure records a prompt that did not produce a usable result.
func (rw *ReportWriter) Failure(n int, prompt string, err error) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	fmt.Fprintf(rw.w, "[%d] FAILED: %s — %v\n", n, prompt, err)
	return rw.flush()
}

// Summary closes out the report with aggregate statistics.
func (rw *ReportWriter) Summary(s model.Summary) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	fmt.Fprintln(rw.w)
	fmt.Fprintln(rw.w, "--- Summary ---")
	if s.Completed == 0 {
		fmt.Fprintln(rw.w, "No successful responses.")
		fmt.Fprintln(rw.w)
		return rw.flush()
	}
	fmt.Fprintf(rw.w, "  Completed    : %d/%d\n", s.Completed, s.Attempted)
	fmt.Fprintf(rw.w, "  TTFT  Min/Avg/Max: %.0f / %.0f / %.0f ms\n",
		float64(s.TTFTMin.Milliseconds()), float64(s.TTFTAvg.Milliseconds()), float64(s.TTFTMax.Milliseconds()))
	fmt.Fprintf(rw.w, "  Total Min/Avg/Max: %.0f / %.0f / %.0f ms\n",
		float64(s.TotalMin.Milliseconds()), float64(s.TotalAvg.Milliseconds()), float64(s.TotalMax.Milliseconds()))
	fmt.Fprintf(rw.w, "  Avg tok/sec  : %.1f\n", s.AvgTokensPerSecond)
	fmt.Fprintln(rw.w)
	return rw.flush()
}

// Close flushes and closes the underlying file.
func (rw *ReportWriter) Close() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if err := rw.w.Flush(); err != nil {
		rw.file.Close()
		return err
	}
	return rw.file.Close()
}

func (rw *ReportWriter) flush() error {
	return rw.w.Flush()
}
