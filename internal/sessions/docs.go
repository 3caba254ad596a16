package sessions

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/strrl/claude-explorer/internal/claudedir"
	"github.com/strrl/claude-explorer/pkg/models"
)

// ErrInvalidName marks a document name that escapes its store.
var ErrInvalidName = fmt.Errorf("invalid name")

// frontmatterPattern matches a leading YAML frontmatter block.
var frontmatterPattern = regexp.MustCompile(`(?s)\A---\s*\n(.*?)\n---`)

// frontmatter is the subset of skill/command frontmatter this API
// surfaces.
type frontmatter struct {
	Description  string         `yaml:"description"`
	AllowedTools yamlStringList `yaml:"allowed-tools"`
}

// yamlStringList decodes either a YAML sequence or a single
// space-separated scalar, both of which appear in the wild.
type yamlStringList []string

func (l *yamlStringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
	case yaml.ScalarNode:
		*l = strings.Fields(node.Value)
	}
	return nil
}

// parseFrontmatter extracts the leading YAML block of a markdown
// document. Absent or malformed frontmatter yields the zero value.
func parseFrontmatter(content string) frontmatter {
	var fm frontmatter
	match := frontmatterPattern.FindStringSubmatch(content)
	if match == nil {
		return fm
	}
	_ = yaml.Unmarshal([]byte(match[1]), &fm)
	return fm
}

// ListPlans lists plan document filenames.
func (s *Service) ListPlans() []string {
	entries, err := os.ReadDir(s.dir.Plans())
	if err != nil {
		return []string{}
	}
	plans := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		plans = append(plans, entry.Name())
	}
	return plans
}

// GetPlan returns one plan document with its full markdown content.
func (s *Service) GetPlan(name string) (models.Plan, error) {
	path := filepath.Join(s.dir.Plans(), name)
	if !claudedir.Within(s.dir.Plans(), path) {
		return models.Plan{}, ErrInvalidName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Plan{}, ErrNotFound
	}
	return models.Plan{Name: name, Content: string(data)}, nil
}

// ListSkills lists skill directories with their frontmatter metadata.
// Content is omitted from listings.
func (s *Service) ListSkills() []models.Skill {
	entries, err := os.ReadDir(s.dir.Skills())
	if err != nil {
		return []models.Skill{}
	}
	skills := []models.Skill{}
	for _, entry := range entries {
		isSymlink := entry.Type()&os.ModeSymlink != 0
		if !entry.IsDir() && !isSymlink {
			continue
		}
		skill := s.skillInfo(filepath.Join(s.dir.Skills(), entry.Name()), entry.Name())
		skill.Content = ""
		skills = append(skills, skill)
	}
	return skills
}

// GetSkill returns one skill with its full SKILL.md content.
func (s *Service) GetSkill(name string) (models.Skill, error) {
	path := filepath.Join(s.dir.Skills(), name)
	if !claudedir.Within(s.dir.Skills(), path) {
		return models.Skill{}, ErrInvalidName
	}
	if _, err := os.Lstat(path); err != nil {
		return models.Skill{}, ErrNotFound
	}
	return s.skillInfo(path, name), nil
}

// skillInfo reads a skill directory's SKILL.md and symlink status.
// Skills may be symlinks to external directories; the resolved target
// is reported alongside.
func (s *Service) skillInfo(path, name string) models.Skill {
	skill := models.Skill{Name: name}

	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		skill.IsSymlink = true
		if real, err := filepath.EvalSymlinks(path); err == nil {
			skill.RealPath = real
			path = real
		}
	}

	data, err := os.ReadFile(filepath.Join(path, "SKILL.md"))
	if err != nil {
		return skill
	}
	content := string(data)
	fm := parseFrontmatter(content)
	skill.Description = fm.Description
	skill.AllowedTools = fm.AllowedTools
	skill.Content = content
	return skill
}

// ListCommands lists slash-command documents with their frontmatter
// metadata. Content is omitted from listings.
func (s *Service) ListCommands() []models.Command {
	entries, err := os.ReadDir(s.dir.Commands())
	if err != nil {
		return []models.Command{}
	}
	commands := []models.Command{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		cmd, err := s.commandInfo(entry.Name())
		if err != nil {
			continue
		}
		cmd.Content = ""
		commands = append(commands, cmd)
	}
	return commands
}

// GetCommand returns one command document with its full content.
func (s *Service) GetCommand(name string) (models.Command, error) {
	path := filepath.Join(s.dir.Commands(), name)
	if !claudedir.Within(s.dir.Commands(), path) {
		return models.Command{}, ErrInvalidName
	}
	return s.commandInfo(name)
}

func (s *Service) commandInfo(name string) (models.Command, error) {
	data, err := os.ReadFile(filepath.Join(s.dir.Commands(), name))
	if err != nil {
		return models.Command{}, ErrNotFound
	}
	content := string(data)
	fm := parseFrontmatter(content)
	return models.Command{
		Name:        strings.TrimSuffix(name, ".md"),
		Description: fm.Description,
		Content:     content,
	}, nil
}
