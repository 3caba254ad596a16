package sessions

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/strrl/claude-explorer/internal/transcript"
	"github.com/strrl/claude-explorer/pkg/models"
)

// CachedStats returns the precomputed stats document verbatim when one
// exists and parses as JSON.
func (s *Service) CachedStats() (json.RawMessage, bool) {
	data, err := os.ReadFile(s.dir.StatsCacheFile())
	if err != nil {
		return nil, false
	}
	if !json.Valid(data) {
		return nil, false
	}
	return json.RawMessage(data), true
}

// ComputeStats walks every transcript and counts sessions, messages,
// and the hour-of-day histogram. This is the pure-Go path; the db
// package computes the same aggregate through one SQL pass.
func (s *Service) ComputeStats() models.Stats {
	stats := models.Stats{
		Version:          1,
		LastComputedDate: time.Now().UTC().Format("2006-01-02"),
		HourCounts:       map[int]int{},
	}

	projects, err := os.ReadDir(s.dir.Projects())
	if err != nil {
		return stats
	}
	for _, project := range projects {
		if !project.IsDir() {
			continue
		}
		encoded := project.Name()
		for _, file := range s.listSessionFiles(encoded) {
			stats.TotalSessions++
			summary := transcript.ReadFile(filepath.Join(s.dir.ProjectDir(encoded), file.name))
			stats.TotalMessages += summary.MessageCount
			for _, msg := range summary.Messages {
				stats.HourCounts[msg.Timestamp.UTC().Hour()]++
			}
		}
	}
	return stats
}

// DailyStatsOptions bound the daily breakdown.
type DailyStatsOptions struct {
	StartDate string
	EndDate   string
	Limit     int
}

// DailyStats buckets sessions by file modification date and counts
// messages and tool calls per day, most recent first.
func (s *Service) DailyStats(opts DailyStatsOptions) []models.DailyStat {
	limit := opts.Limit
	if limit <= 0 {
		limit = 30
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	projects, err := os.ReadDir(s.dir.Projects())
	if err != nil {
		return []models.DailyStat{}
	}

	buckets := map[string]*models.DailyStat{}
	for _, project := range projects {
		if !project.IsDir() {
			continue
		}
		encoded := project.Name()
		for _, file := range s.listSessionFiles(encoded) {
			date := file.mtime.UTC().Format("2006-01-02")
			if opts.StartDate != "" && date < opts.StartDate {
				continue
			}
			if opts.EndDate != "" && date > opts.EndDate {
				continue
			}
			bucket, ok := buckets[date]
			if !ok {
				bucket = &models.DailyStat{Date: date}
				buckets[date] = bucket
			}
			bucket.SessionCount++

			summary := transcript.ReadFile(filepath.Join(s.dir.ProjectDir(encoded), file.name))
			bucket.MessageCount += summary.MessageCount
			for _, msg := range summary.Messages {
				if msg.Type != "assistant" {
					continue
				}
				for _, block := range msg.Content.Blocks {
					if block.Type == models.BlockToolUse {
						bucket.ToolCallCount++
					}
				}
			}
		}
	}

	days := make([]models.DailyStat, 0, len(buckets))
	for _, bucket := range buckets {
		days = append(days, *bucket)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })
	if len(days) > limit {
		days = days[:limit]
	}
	return days
}

// ModelStats sums per-model token usage across every project's config
// entry.
func (s *Service) ModelStats() map[string]models.ModelUsage {
	usage := map[string]models.ModelUsage{}
	doc := s.cfg.Load()
	for _, entry := range doc.Projects {
		for model, stats := range entry.LastModelUsage {
			total := usage[model]
			total.InputTokens += stats.InputTokens
			total.OutputTokens += stats.OutputTokens
			total.CacheReadInputTokens += stats.CacheReadInputTokens
			total.CacheCreationInputTokens += stats.CacheCreationInputTokens
			usage[model] = total
		}
	}
	return usage
}
