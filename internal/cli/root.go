/*
PURPOSE:
  Defines the root Cobra command for the LLM Bridge CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface with benchmark and chat modes.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - The positional target must carry a recognized URL scheme.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/llm-bridge/main.go
  - Calls: Child commands (bench, chat)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep run logic in subcommands.

USAGE:
  Called by main.go.

RELATED FILES:
  - cmd/llm-bridge/main.go

MAINTENANCE:
  - Update when adding new global configuration options.
*/

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "llm-bridge",
		Short: "Latency-instrumented streaming client for an Ollama chat endpoint",
		Long: `Measures perceived latency (time-to-first-token), total response time,
and throughput against a chat-style inference server. Use 'bench' for an
unattended benchmark run or 'chat' for an interactive session.`,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./bridge.yaml)")
}

// targetURL resolves the optional positional base URL, falling back to
// the configured default. A positional argument must start with a
// recognized URL scheme.
func targetURL(args []string, fallback string) (string, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	u := args[0]
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return "", fmt.Errorf("target %q is not an http(s) URL", u)
	}
	return strings.TrimRight(u, "/"), nil
}
