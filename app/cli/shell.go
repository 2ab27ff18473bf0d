package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"SpiderSQLAgent/app/explorer"
)

func newShellCommand() *cobra.Command {
	var (
		database string
		enhanced bool
	)

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive question shell over Spider databases",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newModelApp()
			if err != nil {
				return err
			}
			return runShell(cmd, app, database, enhanced)
		},
	}

	cmd.Flags().StringVarP(&database, "database", "d", "concert_singer", "database to start with")
	cmd.Flags().BoolVar(&enhanced, "enhanced", false, "post-process the final SQL and re-execute it")
	return cmd
}

func runShell(cmd *cobra.Command, app *App, database string, enhanced bool) error {
	out := cmd.OutOrStdout()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt(database),
		HistoryFile:     shellHistoryPath(),
		AutoComplete:    shellCompleter(app),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	fmt.Fprintln(out, "Spider SQL agent shell. Type a question, or 'help' for commands.")
	fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		command, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch strings.ToLower(command) {
		case "quit", "exit":
			return nil

		case "help":
			printShellHelp(out)

		case "list":
			if err := explorer.New(app.Store, out).ListDatabases(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}

		case "use":
			if rest == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "Usage: use <database>")
				continue
			}
			database = rest
			rl.SetPrompt(shellPrompt(database))
			fmt.Fprintf(out, "Switched to database %s\n", database)

		case "explore":
			target := database
			if rest != "" {
				target = rest
			}
			if err := explorer.New(app.Store, out).Quick(cmd.Context(), target, 3); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}

		case "ask":
			if rest == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "Usage: ask <question>")
				continue
			}
			askInShell(cmd, app, database, rest, enhanced)

		default:
			// Anything else is treated as a question.
			askInShell(cmd, app, database, line, enhanced)
		}
		fmt.Fprintln(out)
	}
}

func askInShell(cmd *cobra.Command, app *App, database, question string, enhanced bool) {
	out := cmd.OutOrStdout()

	run := app.Agent.Run
	if enhanced {
		run = app.Agent.RunEnhanced
	}
	result, err := run(cmd.Context(), question, database)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	fmt.Fprintf(out, "Answer: %s\n", result.Answer)
	if result.ImprovedSQL != "" {
		fmt.Fprintf(out, "Improved SQL: %s\n", result.ImprovedSQL)
	}
}

func shellPrompt(database string) string {
	return fmt.Sprintf("spider(%s)> ", database)
}

func shellHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".spidersql_history")
}

// shellCompleter completes shell commands and known database names.
func shellCompleter(app *App) *readline.PrefixCompleter {
	var dbItems []readline.PrefixCompleterInterface
	if databases, err := app.Store.ListDatabases(); err == nil {
		for _, db := range databases {
			dbItems = append(dbItems, readline.PcItem(db))
		}
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("ask"),
		readline.PcItem("use", dbItems...),
		readline.PcItem("explore", dbItems...),
		readline.PcItem("list"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
		readline.PcItem("exit"),
	)
}

func printShellHelp(w io.Writer) {
	fmt.Fprint(w, `
Commands:
  ask <question>     Run the agent against the current database
  use <database>     Switch the active database
  explore [database] Show tables and sample rows
  list               List available databases
  help               Show this help message
  quit / exit        Leave the shell

Anything that is not a command is treated as a question.
`)
}
