package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/strrl/claude-explorer/internal/db"
	"github.com/strrl/claude-explorer/pkg/models"
)

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print usage statistics",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	stats, err := db.Stats(svc.Dir().Projects())
	if err != nil {
		// No duckdb runtime available, walk the files instead.
		stats = svc.ComputeStats()
	}

	fmt.Printf("Total sessions: %d\n", stats.TotalSessions)
	fmt.Printf("Total messages: %d\n", stats.TotalMessages)

	if len(stats.HourCounts) > 0 {
		fmt.Println("\nMessages by hour (UTC):")
		hours := make([]int, 0, len(stats.HourCounts))
		for hour := range stats.HourCounts {
			hours = append(hours, hour)
		}
		sort.Ints(hours)
		for _, hour := range hours {
			fmt.Printf("  %02d:00  %d\n", hour, stats.HourCounts[hour])
		}
	}

	usage := svc.ModelStats()
	if len(usage) > 0 {
		fmt.Println("\nToken usage by model:")
		names := make([]string, 0, len(usage))
		for name := range usage {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			printModelUsage(name, usage[name])
		}
	}
	return nil
}

func printModelUsage(name string, u models.ModelUsage) {
	fmt.Printf("  %s\n", name)
	fmt.Printf("    input: %d, output: %d, cache read: %d, cache write: %d\n",
		u.InputTokens, u.OutputTokens, u.CacheReadInputTokens, u.CacheCreationInputTokens)
}
