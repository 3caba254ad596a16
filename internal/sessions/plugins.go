package sessions

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/strrl/claude-explorer/pkg/models"
)

// readPluginRegistry loads the installed-plugin registry. A missing or
// malformed registry reads as no plugins installed.
func (s *Service) readPluginRegistry() []models.Plugin {
	data, err := os.ReadFile(s.dir.PluginRegistryFile())
	if err != nil {
		return nil
	}
	var plugins []models.Plugin
	if err := json.Unmarshal(data, &plugins); err != nil {
		return nil
	}
	return plugins
}

// pluginSkills lists the skill directories shipped under a plugin's
// install path. Plugins without an install path provide none.
func pluginSkills(installPath string) []string {
	skills := []string{}
	if installPath == "" {
		return skills
	}
	entries, err := os.ReadDir(filepath.Join(installPath, "skills"))
	if err != nil {
		return skills
	}
	for _, entry := range entries {
		if entry.IsDir() {
			skills = append(skills, entry.Name())
		}
	}
	return skills
}

// ListPlugins lists installed plugins with their provided skills.
func (s *Service) ListPlugins() []models.Plugin {
	plugins := []models.Plugin{}
	for _, plugin := range s.readPluginRegistry() {
		plugin.Skills = pluginSkills(plugin.InstallPath)
		plugins = append(plugins, plugin)
	}
	return plugins
}

// GetPlugin looks one plugin up by its registry name
// ("plugin-name@marketplace").
func (s *Service) GetPlugin(name string) (models.Plugin, error) {
	for _, plugin := range s.readPluginRegistry() {
		if plugin.Name == name {
			plugin.Skills = pluginSkills(plugin.InstallPath)
			return plugin, nil
		}
	}
	return models.Plugin{}, ErrNotFound
}
