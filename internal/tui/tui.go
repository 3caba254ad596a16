// Package tui is the interactive terminal browser: a project list that
// opens into a split session view with live message previews.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/strrl/claude-explorer/internal/sessions"
	"github.com/strrl/claude-explorer/pkg/models"
)

type viewMode int

const (
	projectView viewMode = iota
	sessionView
)

type model struct {
	svc *sessions.Service

	projects        []models.Project
	projectSessions []models.Session
	currentMode     viewMode
	projectCursor   int
	sessionCursor   int
	selectedProject *models.Project
	selectedSession *models.Session

	viewport      viewport.Model
	leftViewport  viewport.Model // sessions list in split view
	rightViewport viewport.Model // message preview in split view

	currentMessages []string // preview lines of the highlighted session

	loading    *LoadingIndicator
	loadCancel context.CancelFunc

	ready  bool
	err    error
	width  int
	height int
}

func initialModel(svc *sessions.Service) model {
	return model{
		svc:         svc,
		currentMode: projectView,
		loading:     NewLoadingIndicator("Loading projects..."),
	}
}

func (m model) Init() tea.Cmd {
	ctx := context.Background()
	return tea.Batch(tea.EnterAltScreen, loadProjectsCmd(ctx, m.svc), tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewports()
		m.updateViewport()

	case TickMsg:
		if m.loading != nil {
			m.loading.Tick()
			cmds = append(cmds, tickCmd())
		}

	case ProjectsLoadedMsg:
		m.loading = nil
		if msg.Error != nil {
			m.err = msg.Error
			return m, nil
		}
		m.projects = msg.Projects
		m.updateViewport()

	case SessionsLoadedMsg:
		m.loading = nil
		m.loadCancel = nil
		if msg.Error != nil {
			m.err = msg.Error
			return m, nil
		}
		m.projectSessions = msg.Sessions
		m.currentMode = sessionView
		m.sessionCursor = 0
		m.updateViewport()
		cmds = append(cmds, m.loadMessagesForCursor())

	case MessagesLoadedMsg:
		if msg.Error != nil {
			m.currentMessages = []string{fmt.Sprintf("Error loading messages: %v", msg.Error)}
		} else if len(msg.Messages) == 0 {
			m.currentMessages = []string{"No messages found for this session"}
		} else {
			m.currentMessages = previewLines(msg.Messages)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.currentMode == projectView {
				if m.projectCursor > 0 {
					m.projectCursor--
					m.updateViewport()
				}
			} else {
				if m.sessionCursor > 0 {
					m.sessionCursor--
					m.updateViewport()
					cmds = append(cmds, m.loadMessagesForCursor())
				}
			}

		case "down", "j":
			if m.currentMode == projectView {
				if m.projectCursor < len(m.projects)-1 {
					m.projectCursor++
					m.updateViewport()
				}
			} else {
				if m.sessionCursor < len(m.projectSessions)-1 {
					m.sessionCursor++
					m.updateViewport()
					cmds = append(cmds, m.loadMessagesForCursor())
				}
			}

		case "enter":
			if m.currentMode == projectView {
				if m.projectCursor < len(m.projects) {
					project := m.projects[m.projectCursor]
					m.selectedProject = &project
					m.loading = NewLoadingIndicator("Loading sessions...")
					ctx, cancel := context.WithCancel(context.Background())
					m.loadCancel = cancel
					cmds = append(cmds, loadSessionsCmd(ctx, m.svc, project.EncodedPath), tickCmd())
				}
			} else {
				if m.sessionCursor < len(m.projectSessions) {
					m.selectedSession = &m.projectSessions[m.sessionCursor]
					return m, tea.Quit
				}
			}

		case "esc", "backspace":
			if m.loadCancel != nil {
				m.loadCancel()
				m.loadCancel = nil
				m.loading = nil
				break
			}
			if m.currentMode == sessionView {
				m.currentMode = projectView
				m.selectedProject = nil
				m.projectSessions = nil
				m.currentMessages = nil
				m.sessionCursor = 0
				m.updateViewport()
			}
		}
	}

	if m.currentMode == projectView {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		var leftCmd, rightCmd tea.Cmd
		m.leftViewport, leftCmd = m.leftViewport.Update(msg)
		m.rightViewport, rightCmd = m.rightViewport.Update(msg)
		cmds = append(cmds, leftCmd, rightCmd)
	}

	return m, tea.Batch(cmds...)
}

// loadMessagesForCursor starts an async preview load for the
// highlighted session.
func (m *model) loadMessagesForCursor() tea.Cmd {
	if m.selectedProject == nil || m.sessionCursor >= len(m.projectSessions) {
		m.currentMessages = nil
		return nil
	}
	session := m.projectSessions[m.sessionCursor]
	m.currentMessages = []string{"Loading..."}
	return loadMessagesCmd(context.Background(), m.svc, m.selectedProject.EncodedPath, session.ID)
}

func (m *model) resizeViewports() {
	leftWidth := m.width/2 - 1
	rightWidth := m.width - leftWidth - 1
	viewHeight := m.height - 3

	if !m.ready {
		m.viewport = viewport.New(m.width, viewHeight)
		m.leftViewport = viewport.New(leftWidth, viewHeight)
		m.rightViewport = viewport.New(rightWidth, viewHeight)
		m.ready = true
		return
	}
	m.viewport.Width = m.width
	m.viewport.Height = viewHeight
	m.leftViewport.Width = leftWidth
	m.leftViewport.Height = viewHeight
	m.rightViewport.Width = rightWidth
	m.rightViewport.Height = viewHeight
}

func (m *model) updateViewport() {
	if !m.ready {
		return
	}
	if m.currentMode == projectView {
		m.viewport.SetContent(m.renderProjects())
	} else {
		m.leftViewport.SetContent(m.renderSessionsList())
		m.rightViewport.SetContent(m.renderMessages())
	}
}

func (m model) renderProjects() string {
	var s strings.Builder

	for i, project := range m.projects {
		cursor := "  "
		if i == m.projectCursor {
			cursor = "> "
		}

		style := lipgloss.NewStyle()
		if i == m.projectCursor {
			style = style.Foreground(lipgloss.Color("212")).Bold(true)
		}

		activity := "no activity"
		if project.LastActivity != nil {
			activity = project.LastActivity.Format("2006-01-02 15:04")
		}
		line := fmt.Sprintf("%s%s (%d sessions) - %s",
			cursor,
			project.Name,
			project.SessionCount,
			activity)
		if project.IsOrphan {
			line += " [orphan]"
		}

		s.WriteString(style.Render(line) + "\n")
	}

	return s.String()
}

func (m model) renderSessionsList() string {
	if m.selectedProject == nil {
		return "No project selected"
	}

	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	s.WriteString(headerStyle.Render("Sessions") + "\n")
	s.WriteString(strings.Repeat("─", m.leftViewport.Width-2) + "\n\n")

	for i, session := range m.projectSessions {
		cursor := "  "
		if i == m.sessionCursor {
			cursor = "> "
		}

		dateStyle := lipgloss.NewStyle()
		if i == m.sessionCursor {
			dateStyle = dateStyle.Foreground(lipgloss.Color("212")).Bold(true)
		} else {
			dateStyle = dateStyle.Foreground(lipgloss.Color("252"))
		}

		when := "unknown"
		if session.StartTime != nil {
			when = session.StartTime.Format("01-02 15:04")
		}
		line := fmt.Sprintf("%s%s (%d msgs)", cursor, when, session.MessageCount)
		if session.IsAgent {
			line += " [agent]"
		}
		s.WriteString(dateStyle.Render(line) + "\n")

		idStyle := lipgloss.NewStyle()
		if i == m.sessionCursor {
			idStyle = idStyle.Foreground(lipgloss.Color("245"))
		} else {
			idStyle = idStyle.Foreground(lipgloss.Color("238"))
		}

		truncatedID := session.ID
		if len(truncatedID) > 12 {
			truncatedID = truncatedID[:12] + "..."
		}
		s.WriteString(idStyle.Render("  "+truncatedID) + "\n")

		if i < len(m.projectSessions)-1 {
			s.WriteString("\n")
		}
	}

	return s.String()
}

func (m model) renderMessages() string {
	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	s.WriteString(headerStyle.Render("Recent Messages") + "\n")
	dividerWidth := m.rightViewport.Width - 2
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	s.WriteString(strings.Repeat("─", dividerWidth) + "\n\n")

	if len(m.currentMessages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		s.WriteString(emptyStyle.Render("No messages found"))
		return s.String()
	}

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	for i, msg := range m.currentMessages {
		numStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Bold(true)
		s.WriteString(numStyle.Render(fmt.Sprintf("%d. ", i+1)))

		wrapWidth := m.rightViewport.Width - 5
		if wrapWidth < 20 {
			wrapWidth = 20
		}
		lines := wrapText(msg, wrapWidth)
		for j, line := range lines {
			if j > 0 {
				s.WriteString("   ")
			}
			s.WriteString(messageStyle.Render(line) + "\n")
		}

		if i < len(m.currentMessages)-1 {
			s.WriteString("\n")
		}
	}

	return s.String()
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) > width {
			lines = append(lines, currentLine)
			currentLine = word
		} else {
			currentLine += " " + word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.err)
	}

	if m.loading != nil {
		return LoadingOverlay(m.width, m.height, m.loading)
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	if m.currentMode == projectView {
		return fmt.Sprintf("%s\n%s\n%s", header, m.viewport.View(), footer)
	}
	return fmt.Sprintf("%s\n%s\n%s", header, m.renderSplitView(), footer)
}

func (m model) renderSplitView() string {
	leftStyle := lipgloss.NewStyle().
		Width(m.leftViewport.Width).
		Height(m.leftViewport.Height)

	rightStyle := lipgloss.NewStyle().
		Width(m.rightViewport.Width).
		Height(m.rightViewport.Height)

	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238")).
		Height(m.leftViewport.Height)

	leftContent := leftStyle.Render(m.leftViewport.View())
	rightContent := rightStyle.Render(m.rightViewport.View())

	divider := strings.Builder{}
	for i := 0; i < m.leftViewport.Height; i++ {
		divider.WriteString("│")
		if i < m.leftViewport.Height-1 {
			divider.WriteString("\n")
		}
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftContent,
		dividerStyle.Render(divider.String()),
		rightContent,
	)
}

func (m model) renderHeader() string {
	title := "Claude Explorer - Projects"
	if m.currentMode == sessionView && m.selectedProject != nil {
		title = fmt.Sprintf("Claude Explorer - %s", m.selectedProject.Name)
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))

	return style.Render(title)
}

func (m model) renderFooter() string {
	info := "↑/↓: navigate • enter: select"
	if m.currentMode == sessionView {
		info += " • esc: back"
	}
	info += " • q: quit"

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	return style.Render(info)
}

// Run displays the browser and returns the session the user selected,
// or nil when they quit without selecting.
func Run(svc *sessions.Service) (*models.Session, error) {
	p := tea.NewProgram(
		initialModel(svc),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(model)
	return m.selectedSession, nil
}
