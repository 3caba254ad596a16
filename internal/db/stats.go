package db

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/strrl/claude-explorer/pkg/models"
)

// Stats computes the usage aggregate in one SQL pass over every
// transcript. Callers fall back to the filesystem walk on error: a
// missing duckdb runtime degrades the endpoint, never fails it.
func Stats(projectsDir string) (models.Stats, error) {
	stats := models.Stats{
		Version:          1,
		LastComputedDate: time.Now().UTC().Format("2006-01-02"),
		HourCounts:       map[int]int{},
	}

	database, err := GetDB()
	if err != nil {
		return stats, err
	}
	// Don't close the singleton connection

	globPattern := filepath.Join(projectsDir, "**", "*.jsonl")

	totalsQuery := fmt.Sprintf(`
		SELECT
			COUNT(DISTINCT filename) as total_sessions,
			COUNT(*) FILTER (WHERE type IS NULL OR type != 'file-history-snapshot') as total_messages
		FROM read_json('%s',
			format = 'newline_delimited',
			union_by_name = true,
			filename = true
		)
	`, globPattern)

	if err := database.QueryRow(totalsQuery).Scan(&stats.TotalSessions, &stats.TotalMessages); err != nil {
		return stats, fmt.Errorf("failed to execute totals query: %w", err)
	}

	hoursQuery := fmt.Sprintf(`
		SELECT
			EXTRACT(hour FROM CAST(timestamp AS TIMESTAMP)) as hour,
			COUNT(*) as message_count
		FROM read_json('%s',
			format = 'newline_delimited',
			union_by_name = true,
			filename = true
		)
		WHERE timestamp IS NOT NULL
			AND (type IS NULL OR type != 'file-history-snapshot')
		GROUP BY hour
		ORDER BY hour
	`, globPattern)

	rows, err := database.Query(hoursQuery)
	if err != nil {
		return stats, fmt.Errorf("failed to execute hours query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var hour, count int
		if err := rows.Scan(&hour, &count); err != nil {
			return stats, fmt.Errorf("failed to scan hour row: %w", err)
		}
		stats.HourCounts[hour] = count
	}
	return stats, rows.Err()
}
