package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/strrl/claude-explorer/internal/sessions"
	"github.com/strrl/claude-explorer/pkg/models"
)

// Message types for async operations
type (
	// ProjectsLoadedMsg contains the loaded project listing
	ProjectsLoadedMsg struct {
		Projects []models.Project
		Error    error
	}

	// SessionsLoadedMsg contains a project's loaded sessions
	SessionsLoadedMsg struct {
		EncodedPath string
		Sessions    []models.Session
		Error       error
	}

	// MessagesLoadedMsg contains a session's loaded messages
	MessagesLoadedMsg struct {
		SessionID string
		Messages  []models.Message
		Error     error
	}

	// TickMsg is sent periodically for spinner animation
	TickMsg time.Time
)

// loadProjectsCmd loads the project listing asynchronously
func loadProjectsCmd(ctx context.Context, svc *sessions.Service) tea.Cmd {
	return func() tea.Msg {
		projects, err := svc.FetchProjectsAsync(ctx, sessions.ProjectListOptions{
			Limit: sessions.MaxLimit,
		})
		return ProjectsLoadedMsg{Projects: projects, Error: err}
	}
}

// loadSessionsCmd loads a project's sessions asynchronously
func loadSessionsCmd(ctx context.Context, svc *sessions.Service, encodedPath string) tea.Cmd {
	return func() tea.Msg {
		list, err := svc.FetchSessionsAsync(ctx, encodedPath, sessions.SessionListOptions{
			Limit: sessions.MaxLimit,
		})
		return SessionsLoadedMsg{EncodedPath: encodedPath, Sessions: list, Error: err}
	}
}

// loadMessagesCmd loads a session's messages asynchronously
func loadMessagesCmd(ctx context.Context, svc *sessions.Service, encodedPath, sessionID string) tea.Cmd {
	return func() tea.Msg {
		messages, err := svc.FetchMessagesAsync(ctx, encodedPath, sessionID, sessions.MessageListOptions{
			Limit: sessions.MaxLimit,
		})
		return MessagesLoadedMsg{SessionID: sessionID, Messages: messages, Error: err}
	}
}

// tickCmd creates a ticker for spinner animation
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
