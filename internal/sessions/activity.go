package sessions

import (
	"os"
	"sort"
	"time"

	"github.com/strrl/claude-explorer/internal/claudedir"
	"github.com/strrl/claude-explorer/pkg/models"
)

// Activity window bounds in days.
const (
	DefaultActivityDays = 14
	MaxActivityDays     = 90
)

// ActivityOptions are the knobs of the per-project timeline.
type ActivityOptions struct {
	Days int
	Type string // "regular" (default), "agent", or "all"
}

// Activity buckets a project's sessions by calendar day over a lookback
// window. Days without sessions are omitted; buckets come back most
// recent first.
func (s *Service) Activity(encodedPath string, opts ActivityOptions) (models.ActivityReport, error) {
	if !claudedir.ValidName(encodedPath) {
		return models.ActivityReport{}, ErrNotFound
	}
	if _, err := os.Stat(s.dir.ProjectDir(encodedPath)); err != nil {
		return models.ActivityReport{}, ErrNotFound
	}
	path, _ := s.resolveProjectPath(encodedPath)

	days := opts.Days
	if days <= 0 {
		days = DefaultActivityDays
	}
	if days > MaxActivityDays {
		days = MaxActivityDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	files := s.listSessionFiles(encodedPath)
	summaries := s.summarizeFiles(encodedPath, files)

	buckets := map[string]*models.DailyActivity{}
	for i, file := range files {
		session := sessionFromSummary(sessionIDFromFile(file.name), path, summaries[i])
		if !matchesType(session.IsAgent, opts.Type, TypeRegular) {
			continue
		}
		if session.StartTime == nil || session.StartTime.Before(cutoff) {
			continue
		}
		date := session.StartTime.UTC().Format("2006-01-02")
		bucket, ok := buckets[date]
		if !ok {
			bucket = &models.DailyActivity{Date: date}
			buckets[date] = bucket
		}
		bucket.Sessions = append(bucket.Sessions, session)
		bucket.TotalMessages += session.MessageCount
		bucket.SessionCount++
	}

	report := models.ActivityReport{Data: []models.DailyActivity{}}
	for _, bucket := range buckets {
		report.Data = append(report.Data, *bucket)
	}
	sort.Slice(report.Data, func(i, j int) bool { return report.Data[i].Date > report.Data[j].Date })
	for _, day := range report.Data {
		report.Summary.TotalSessions += day.SessionCount
		report.Summary.TotalMessages += day.TotalMessages
		if day.TotalMessages > report.Summary.MaxDailyMessages {
			report.Summary.MaxDailyMessages = day.TotalMessages
		}
	}
	return report, nil
}

// GlobalActivityOptions select the cross-project window. Both dates are
// inclusive YYYY-MM-DD bounds.
type GlobalActivityOptions struct {
	StartDate string
	EndDate   string
	Type      string // "regular", "agent", or "all" (default)
}

// GlobalActivity buckets sessions from every project by calendar day
// within a date range, attributing each session to its project.
func (s *Service) GlobalActivity(opts GlobalActivityOptions) (models.GlobalActivityReport, error) {
	start, err := time.ParseInLocation("2006-01-02", opts.StartDate, time.UTC)
	if err != nil {
		return models.GlobalActivityReport{}, err
	}
	end, err := time.ParseInLocation("2006-01-02", opts.EndDate, time.UTC)
	if err != nil {
		return models.GlobalActivityReport{}, err
	}
	end = end.Add(24*time.Hour - time.Nanosecond)

	report := models.GlobalActivityReport{Data: []models.GlobalDailyActivity{}}

	entries, err := os.ReadDir(s.dir.Projects())
	if err != nil {
		return report, nil
	}

	doc := s.cfg.Load()
	lookup := claudedir.BuildPathLookup(doc.RealPaths())

	buckets := map[string]*models.GlobalDailyActivity{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		encoded := entry.Name()
		path, _ := claudedir.Resolve(encoded, lookup, s.dir.ProjectDir(encoded))

		files := s.listSessionFiles(encoded)
		summaries := s.summarizeFiles(encoded, files)
		for i, file := range files {
			session := sessionFromSummary(sessionIDFromFile(file.name), path, summaries[i])
			if session.StartTime == nil {
				continue
			}
			if session.StartTime.Before(start) || session.StartTime.After(end) {
				continue
			}
			if !matchesType(session.IsAgent, opts.Type, TypeAll) {
				continue
			}

			date := session.StartTime.UTC().Format("2006-01-02")
			bucket, ok := buckets[date]
			if !ok {
				bucket = &models.GlobalDailyActivity{Date: date}
				buckets[date] = bucket
			}
			bucket.Sessions = append(bucket.Sessions, models.GlobalSession{
				Session:     session,
				ProjectID:   encoded,
				ProjectName: claudedir.ProjectName(path),
			})
			bucket.TotalMessages += session.MessageCount
			bucket.SessionCount++
		}
	}

	for _, bucket := range buckets {
		report.Data = append(report.Data, *bucket)
	}
	sort.Slice(report.Data, func(i, j int) bool { return report.Data[i].Date > report.Data[j].Date })
	for _, day := range report.Data {
		report.Summary.TotalSessions += day.SessionCount
		report.Summary.TotalMessages += day.TotalMessages
		if day.TotalMessages > report.Summary.MaxDailyMessages {
			report.Summary.MaxDailyMessages = day.TotalMessages
		}
	}
	return report, nil
}

// matchesType applies a session-type filter, substituting a default for
// the empty string.
func matchesType(isAgent bool, typ, dflt string) bool {
	if typ == "" {
		typ = dflt
	}
	switch typ {
	case TypeRegular:
		return !isAgent
	case TypeAgent:
		return isAgent
	default:
		return true
	}
}
