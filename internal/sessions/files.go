package sessions

import (
	"os"
	"path/filepath"

	"github.com/strrl/claude-explorer/internal/claudedir"
	"github.com/strrl/claude-explorer/pkg/models"
)

// maxBrowseBytes is the content ceiling of the file-browse endpoint.
const maxBrowseBytes = 100 * 1024

// Browse resolves a relative path inside the data directory. Dedicated
// endpoints cover the structured stores; this is raw access for
// everything else.
func (s *Service) Browse(relPath string) (models.FileContent, error) {
	target := filepath.Join(s.dir.Root(), relPath)
	if !claudedir.Within(s.dir.Root(), target) {
		return models.FileContent{}, ErrInvalidName
	}

	info, err := os.Stat(target)
	if err != nil {
		return models.FileContent{}, ErrNotFound
	}

	if info.IsDir() {
		entries, err := os.ReadDir(target)
		if err != nil {
			return models.FileContent{}, ErrNotFound
		}
		listing := make([]models.FileEntry, 0, len(entries))
		for _, entry := range entries {
			listing = append(listing, models.FileEntry{
				Name:        entry.Name(),
				IsDirectory: entry.IsDir(),
			})
		}
		return models.FileContent{Type: "directory", Path: target, Entries: listing}, nil
	}

	if info.Size() > maxBrowseBytes {
		return models.FileContent{
			Type:  "file",
			Path:  target,
			Error: "file too large (max 100KB)",
		}, nil
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return models.FileContent{}, ErrNotFound
	}
	content := string(data)
	return models.FileContent{Type: "file", Path: target, Content: &content}, nil
}
