package sessions

import (
	"os"
	"sort"
	"strings"

	"github.com/strrl/claude-explorer/internal/claudedir"
	"github.com/strrl/claude-explorer/internal/config"
	"github.com/strrl/claude-explorer/pkg/models"
)

// Project sort keys accepted by ListProjects.
const (
	SortByLastActivity = "lastActivity"
	SortByName         = "name"
	SortBySessionCount = "sessionCount"
)

// ProjectListOptions are the caller-selectable listing knobs.
type ProjectListOptions struct {
	SortBy       string
	SortOrder    string // "asc" or "desc"
	Limit        int
	Offset       int
	PathPrefixes []string
}

// ListProjects merges two discovery sources: directories under the
// projects store (normal and orphan) and config entries without a
// directory (config-only, no session data). The result is recomputed
// from scratch on every call.
func (s *Service) ListProjects(opts ProjectListOptions) models.Paginated[models.Project] {
	doc := s.cfg.Load()
	lookup := claudedir.BuildPathLookup(doc.RealPaths())

	var projects []models.Project
	seenPaths := map[string]bool{}

	entries, err := os.ReadDir(s.dir.Projects())
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			encoded := entry.Name()
			path, exact := claudedir.Resolve(encoded, lookup, s.dir.ProjectDir(encoded))
			files := s.listSessionFiles(encoded)

			project := s.projectRecord(path, encoded, doc.Projects[path])
			project.SessionCount = len(files)
			project.HasSessionData = true
			project.IsOrphan = !exact
			if len(files) > 0 {
				last := files[0].mtime
				project.LastActivity = &last
			}
			projects = append(projects, project)
			seenPaths[path] = true
		}
	}

	// Config-only projects: listed in the config document but with no
	// directory under the projects store.
	for path, entry := range doc.Projects {
		if seenPaths[path] {
			continue
		}
		encoded := claudedir.Encode(path)
		if _, err := os.Stat(s.dir.ProjectDir(encoded)); err == nil {
			continue
		}
		project := s.projectRecord(path, encoded, entry)
		projects = append(projects, project)
	}

	if len(opts.PathPrefixes) > 0 {
		prefixes := make([]string, len(opts.PathPrefixes))
		for i, p := range opts.PathPrefixes {
			prefixes[i] = claudedir.NormalizePathPrefix(p, s.home)
		}
		filtered := projects[:0]
		for _, project := range projects {
			for _, prefix := range prefixes {
				if strings.HasPrefix(project.Path, prefix) {
					filtered = append(filtered, project)
					break
				}
			}
		}
		projects = filtered
	}

	sortProjects(projects, opts.SortBy, opts.SortOrder)
	return Paginate(projects, opts.Limit, opts.Offset)
}

// projectRecord fills the path-derived and config-derived fields shared
// by both discovery sources.
func (s *Service) projectRecord(path, encoded string, entry config.ProjectEntry) models.Project {
	return models.Project{
		Path:                  path,
		EncodedPath:           encoded,
		DisplayPath:           claudedir.DisplayPath(path, s.home),
		Name:                  claudedir.ProjectName(path),
		LastSessionID:         entry.LastSessionID,
		LastCost:              entry.LastCost,
		LastDuration:          entry.LastDuration,
		LastTotalInputTokens:  entry.LastTotalInputTokens,
		LastTotalOutputTokens: entry.LastTotalOutputTokens,
	}
}

// sortProjects orders a listing by the requested key. Entries whose key
// is undefined sort last regardless of direction.
func sortProjects(projects []models.Project, sortBy, sortOrder string) {
	desc := sortOrder != "asc"
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		switch sortBy {
		case SortByName:
			if desc {
				return a.Name > b.Name
			}
			return a.Name < b.Name
		case SortBySessionCount:
			if desc {
				return a.SessionCount > b.SessionCount
			}
			return a.SessionCount < b.SessionCount
		default: // lastActivity
			if a.LastActivity == nil {
				return false
			}
			if b.LastActivity == nil {
				return true
			}
			if desc {
				return a.LastActivity.After(*b.LastActivity)
			}
			return a.LastActivity.Before(*b.LastActivity)
		}
	})
}

// GetProject returns a project's detail view: metadata, its ten most
// recent sessions, and an all-time activity summary.
func (s *Service) GetProject(encodedPath string) (models.ProjectDetail, error) {
	if !claudedir.ValidName(encodedPath) {
		return models.ProjectDetail{}, ErrNotFound
	}
	if _, err := os.Stat(s.dir.ProjectDir(encodedPath)); err != nil {
		return models.ProjectDetail{}, ErrNotFound
	}

	doc := s.cfg.Load()
	lookup := claudedir.BuildPathLookup(doc.RealPaths())
	path, exact := claudedir.Resolve(encodedPath, lookup, s.dir.ProjectDir(encodedPath))

	files := s.listSessionFiles(encodedPath)
	summaries := s.summarizeFiles(encodedPath, files)

	detail := models.ProjectDetail{
		Project:        s.projectRecord(path, encodedPath, doc.Projects[path]),
		RecentSessions: []models.Session{},
	}
	detail.SessionCount = len(files)
	detail.HasSessionData = true
	detail.IsOrphan = !exact
	if len(files) > 0 {
		last := files[0].mtime
		detail.LastActivity = &last
		first := files[len(files)-1].mtime
		detail.ActivitySummary.DateRange = models.DateRange{Start: &first, End: &last}
	}

	for i, file := range files {
		id := sessionIDFromFile(file.name)
		if IsAgentSession(id) {
			detail.ActivitySummary.TotalAgentSessions++
		}
		detail.ActivitySummary.TotalMessages += summaries[i].MessageCount
		if i < 10 {
			detail.RecentSessions = append(detail.RecentSessions, sessionFromSummary(id, path, summaries[i]))
		}
	}
	return detail, nil
}

// GetProjectConfig returns the raw config entry for a project. Orphan
// projects have none.
func (s *Service) GetProjectConfig(encodedPath string) (string, map[string]any, error) {
	doc := s.cfg.Load()
	lookup := claudedir.BuildPathLookup(doc.RealPaths())
	path, ok := lookup[encodedPath]
	if !ok {
		return "", nil, ErrNotFound
	}
	return path, doc.Projects[path].Raw, nil
}
