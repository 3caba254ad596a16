package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strrl/claude-explorer/internal/claudedir"
	"github.com/strrl/claude-explorer/internal/config"
	"github.com/strrl/claude-explorer/internal/sessions"
	"github.com/strrl/claude-explorer/internal/tui"
)

var dataDir string

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "claude-explorer",
		Short: "Browse Claude Code projects and sessions",
		Long:  `claude-explorer is a read-only browser for the local Claude Code data directory: a TUI by default, a REST API with 'serve'.`,
		RunE:  runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", config.EnvOr("CLAUDE_EXPLORER_DIR", ""), "Claude data directory (default ~/.claude)")
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewStatsCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newService builds the aggregator over the configured data directory.
func newService() (*sessions.Service, error) {
	var dir claudedir.Dir
	if dataDir != "" {
		dir = claudedir.New(dataDir)
	} else {
		var err error
		dir, err = claudedir.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to locate data directory: %w", err)
		}
	}
	home, _ := os.UserHomeDir()
	return sessions.New(dir, config.NewLoader(dir.ConfigFile()), home), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	selected, err := tui.Run(svc)
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if selected == nil {
		return nil
	}

	fmt.Printf("Session: %s\n", selected.ID)
	fmt.Printf("Project: %s\n", selected.ProjectPath)
	if selected.StartTime != nil {
		fmt.Printf("Started: %s\n", selected.StartTime.Format("2006-01-02 15:04"))
	}
	fmt.Printf("Messages: %d\n", selected.MessageCount)
	return nil
}
