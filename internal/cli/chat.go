package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sotalab/llm-bridge/internal/config"
	"github.com/sotalab/llm-bridge/internal/engine"
)

var (
	chatModelOverride  string
	chatSystemOverride string
	chatMaxTurns       int
)

var chatCmd = &cobra.Command{
	Use:   "chat [url]",
	Short: "Interactive chat session against a chat endpoint",
	Long: `Opens a line-oriented chat loop. Each line is sent as a user turn with
the retained conversation history; the reply is printed with its
latency. 'reset' clears the history, 'quit' (or end of input) exits.
A failed exchange is rolled back so history never holds an unanswered
user turn.`,
	Example: `  # Chat with the local server
  llm-bridge chat

  # Chat with a remote server, shorter memory
  llm-bridge chat http://192.168.11.5:11434 --max-turns 4`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if chatModelOverride != "" {
			cfg.Model = chatModelOverride
		}
		if chatSystemOverride != "" {
			cfg.SystemPrompt = chatSystemOverride
		}
		if chatMaxTurns > 0 {
			cfg.MaxTurns = chatMaxTurns
		}

		url, err := targetURL(args, cfg.BaseURL)
		if err != nil {
			return err
		}

		return engine.RunInteractive(cfg, url, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatModelOverride, "model", "", "Model name to chat with (overrides config)")
	chatCmd.Flags().StringVar(&chatSystemOverride, "system", "", "System prompt (overrides config)")
	chatCmd.Flags().IntVar(&chatMaxTurns, "max-turns", 0, "Conversation history bound in turns (overrides config)")
}
