package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/claude-explorer/internal/sessions"
	"github.com/strrl/claude-explorer/pkg/models"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [project] [session-id]",
		Short: "Show projects, sessions, or messages without TUI",
		Long: `Show projects, sessions, or messages in a non-interactive format.
Without arguments: lists all projects
With project name: lists all sessions in that project
With project name and session ID: shows messages for that session`,
		RunE: runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	switch len(args) {
	case 0:
		return showProjects(svc)
	case 1:
		return showSessions(svc, args[0])
	case 2:
		return showMessages(svc, args[0], args[1])
	default:
		return fmt.Errorf("too many arguments. Usage: claude-explorer show [project] [session-id]")
	}
}

func showProjects(svc *sessions.Service) error {
	page := svc.ListProjects(sessions.ProjectListOptions{Limit: sessions.MaxLimit})
	if len(page.Data) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	fmt.Println("Projects:")
	fmt.Println("=========")
	for i, project := range page.Data {
		fmt.Printf("%d. %s\n", i+1, project.Name)
		fmt.Printf("   Path: %s\n", project.Path)
		fmt.Printf("   Sessions: %d\n", project.SessionCount)
		if project.LastActivity != nil {
			fmt.Printf("   Last Activity: %s\n", project.LastActivity.Format("2006-01-02 15:04"))
		}
		if project.IsOrphan {
			fmt.Println("   Orphan: path recovered without config entry")
		}
		fmt.Println()
	}
	return nil
}

// findProject resolves a name, real path, or encoded path to a listed
// project.
func findProject(svc *sessions.Service, name string) (*models.Project, error) {
	page := svc.ListProjects(sessions.ProjectListOptions{Limit: sessions.MaxLimit})
	for _, project := range page.Data {
		if project.Name == name || project.Path == name || project.EncodedPath == name {
			p := project
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project '%s' not found", name)
}

func showSessions(svc *sessions.Service, projectName string) error {
	project, err := findProject(svc, projectName)
	if err != nil {
		return err
	}

	page, err := svc.ListSessions(project.EncodedPath, sessions.SessionListOptions{Limit: sessions.MaxLimit})
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(page.Data) == 0 {
		fmt.Printf("No sessions found for project '%s'\n", projectName)
		return nil
	}

	fmt.Printf("Sessions for project '%s':\n", project.Name)
	fmt.Printf("Path: %s\n", project.Path)
	fmt.Println("===================================")

	for i, session := range page.Data {
		fmt.Printf("%d. Session ID: %s\n", i+1, session.ID)
		if session.StartTime != nil {
			fmt.Printf("   Started: %s\n", session.StartTime.Format("2006-01-02 15:04"))
		}
		fmt.Printf("   Messages: %d\n", session.MessageCount)
		if session.Model != "" {
			fmt.Printf("   Model: %s\n", session.Model)
		}
		if session.IsAgent {
			fmt.Println("   Type: sub-agent")
		}
		fmt.Println()
	}
	return nil
}

func showMessages(svc *sessions.Service, projectName, sessionID string) error {
	project, err := findProject(svc, projectName)
	if err != nil {
		return err
	}

	page, err := svc.ListMessages(project.EncodedPath, sessionID, sessions.MessageListOptions{Limit: sessions.MaxLimit})
	if err != nil {
		fmt.Printf("Session '%s' not found in project '%s'\n", sessionID, projectName)
		return nil
	}
	if len(page.Data) == 0 {
		fmt.Printf("No messages found for session '%s' in project '%s'\n", sessionID, projectName)
		return nil
	}

	fmt.Printf("Messages for session '%s' in project '%s':\n", sessionID, project.Name)
	fmt.Println("================================================")

	for i, msg := range page.Data {
		fmt.Printf("\n%d. [%s] %s\n", i+1, msg.Type, msg.Timestamp.Format("2006-01-02 15:04:05"))
		if msg.Content.Text != "" {
			fmt.Printf("   %s\n", msg.Content.Text)
			continue
		}
		for _, block := range msg.Content.Blocks {
			switch block.Type {
			case models.BlockText:
				fmt.Printf("   %s\n", block.Text)
			case models.BlockToolUse:
				fmt.Printf("   [tool: %s] %s\n", block.ToolName, block.ToolInput)
			case models.BlockToolResult:
				fmt.Printf("   [result] %s\n", block.ResultContent)
			case models.BlockThinking:
				fmt.Printf("   [thinking] %s\n", block.Thinking)
			default:
				fmt.Printf("   [%s]\n", block.RawType)
			}
		}
	}
	return nil
}
