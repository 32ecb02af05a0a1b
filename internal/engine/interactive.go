/*
PURPOSE:
  Interactive chat loop. Exchanges turns with an operator over a
  bounded conversation session.

REQUIREMENTS:
  User-specified:
  - 'quit' ends the loop, 'reset' clears history, anything else is a
    user turn; end-of-input behaves like 'quit'.
  - A failed exchange must not leave an orphaned user turn in history.

  Implementation-discovered:
  - Reader/writer are injected so tests can script a session.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/engine/client.go, internal/session

ERROR HANDLING:
  - Inference failures are printed, the user turn is rolled back, and
    the loop continues ready for the next line.

IMPLEMENTATION RULES:
  - Line-oriented; blank lines are ignored.

USAGE:
  err := engine.RunInteractive(cfg, url, os.Stdin, os.Stdout)

RELATED FILES:
  - internal/session/session.go

MAINTENANCE:
  - None.
*/

package engine

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sotalab/llm-bridge/internal/config"
	"github.com/sotalab/llm-bridge/internal/session"
)

// RunInteractive reads operator lines from in and exchanges turns with
// the endpoint until 'quit' or end of input.
func RunInteractive(cfg *config.Config, baseURL string, in io.Reader, out io.Writer) error {
	e := New(cfg)
	sess := session.New(cfg.MaxTurns)

	fmt.Fprintf(out, "Model : %s\n", cfg.Model)
	fmt.Fprintf(out, "Target: %s\n", baseURL)
	fmt.Fprintln(out, "Type 'quit' to exit | 'reset' to clear history")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			// EOF behaves like quit.
			fmt.Fprintln(out)
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit":
			fmt.Fprintln(out, "[exiting chat]")
			return scanner.Err()
		case "reset":
			sess.Reset()
			fmt.Fprintln(out, "[history cleared]")
			continue
		}

		sess.AppendUser(input)

		res, err := e.Chat(baseURL, sess.Messages(cfg.SystemPrompt))
		if err != nil {
			// Drop the user turn whose request failed; history must
			// not hold a question without its reply.
			sess.Rollback()
			fmt.Fprintf(out, "[error] %v\n", err)
			continue
		}

		sess.AppendAssistant(res.Text)

		fmt.Fprintf(out, "bot> %s\n", res.Text)
		fmt.Fprintf(out, "     [TTFT %d ms | total %d ms | %d turns]\n\n",
			res.TTFT.Milliseconds(), res.Total.Milliseconds(), sess.Turns())
	}

	return scanner.Err()
}
