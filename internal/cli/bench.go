/*
PURPOSE:
  Defines the 'bench' subcommand.
  Executes the fixed-corpus latency benchmark.

REQUIREMENTS:
  User-specified:
  - Run the benchmark against an optional positional URL.
  - Specific flags for overrides.

  Implementation-discovered:
  - Need to load config first, then apply flag overrides.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.RunBenchmark()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails or the run cannot write its
    report; individual prompt failures do not abort the run.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> RunBenchmark.

USAGE:
  llm-bridge bench http://192.168.11.5:11434

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sotalab/llm-bridge/internal/config"
	"github.com/sotalab/llm-bridge/internal/engine"
)

var (
	benchModelOverride  string
	benchOutputOverride string
	benchPromptFile     string
	benchNumPredict     int
)

var benchCmd = &cobra.Command{
	Use:   "bench [url]",
	Short: "Run the latency benchmark suite",
	Long: `Sends the configured prompt corpus against a chat endpoint, each prompt
as an isolated single-turn exchange, and appends a timestamped report to
the latency log. A throw-away warm-up call excludes model cold-start
from the measurements. Failed prompts are logged and skipped; they never
abort the run.`,
	Example: `  # Benchmark the local server with defaults
  llm-bridge bench

  # Benchmark a remote server
  llm-bridge bench http://192.168.11.5:11434

  # Override the model and write reports elsewhere
  llm-bridge bench --model llama3.2:1b -o ./runs

  # Use a custom prompt corpus (one prompt per line)
  llm-bridge bench -p ./prompts/compliance.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if benchModelOverride != "" {
			cfg.Model = benchModelOverride
		}
		if benchOutputOverride != "" {
			cfg.OutputDir = benchOutputOverride
		}
		if benchNumPredict > 0 {
			cfg.NumPredict = benchNumPredict
		}
		if benchPromptFile != "" {
			data, err := os.ReadFile(benchPromptFile)
			if err != nil {
				return fmt.Errorf("failed to read prompt file: %w", err)
			}
			var prompts []string
			for _, line := range strings.Split(string(data), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					prompts = append(prompts, line)
				}
			}
			if len(prompts) == 0 {
				return fmt.Errorf("prompt file %s contains no prompts", benchPromptFile)
			}
			cfg.BenchPrompts = prompts
		}

		url, err := targetURL(args, cfg.BaseURL)
		if err != nil {
			return err
		}

		sum, err := engine.RunBenchmark(cfg, url)
		if err != nil {
			return err
		}

		fmt.Printf("Completed %d/%d prompts\n", sum.Completed, sum.Attempted)
		if sum.Completed > 0 {
			fmt.Printf("TTFT  min/avg/max: %d / %d / %d ms\n",
				sum.TTFTMin.Milliseconds(), sum.TTFTAvg.Milliseconds(), sum.TTFTMax.Milliseconds())
			fmt.Printf("Total min/avg/max: %d / %d / %d ms\n",
				sum.TotalMin.Milliseconds(), sum.TotalAvg.Milliseconds(), sum.TotalMax.Milliseconds())
			fmt.Printf("Avg tokens/sec   : %.1f\n", sum.AvgTokensPerSecond)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringVar(&benchModelOverride, "model", "", "Model name to benchmark (overrides config)")
	benchCmd.Flags().StringVarP(&benchOutputOverride, "output-dir", "o", "", "Output directory for the latency log")
	benchCmd.Flags().StringVarP(&benchPromptFile, "prompt-file", "p", "", "Path to a text file with one benchmark prompt per line (overrides config)")
	benchCmd.Flags().IntVar(&benchNumPredict, "num-predict", 0, "Generation token cap (overrides config)")
}
