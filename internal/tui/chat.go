package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// interactive chat with the build agent
type ChatModel struct {
	input               textinput.Model
	viewport            viewport.Model
	spinner             spinner.Model
	glamourRenderer     *glamour.TermRenderer
	width               int
	height              int
	ready               bool
	isFetching          bool
	sessionID           string
	flow                *apiFlow
	conversationHistory []MessageModel
	agentClient         *AgentClient
}

// returns a new chat model
func NewChatModel() *ChatModel {
	ti := textinput.New()
	ti.Placeholder = "describe the app you want to build..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorIndigo)

	return &ChatModel{
		input:               ti,
		spinner:             sp,
		conversationHistory: []MessageModel{},
		agentClient:         NewAgentClient(),
	}
}

func (m *ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ChatModel) Update(msg tea.Msg) (*ChatModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m.handleSubmit()

		case "ctrl+k":
			// skip the remaining questions of the active flow
			if m.flow != nil && !m.isFetching {
				m.isFetching = true
				return m, tea.Batch(m.agentClient.SkipCmd(m.sessionID), m.spinner.Tick)
			}
			return m, nil

		case "ctrl+l":
			m.input.SetValue("")
			m.conversationHistory = []MessageModel{}
			m.flow = nil
			m.sessionID = ""
			m.isFetching = false
			m.refreshViewport()
			return m, nil

		case "up", "down", "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case AgentResponseMsg:
		return m.handleAgentResponse(msg)

	case FlowProgressMsg:
		m.flow = msg.response.Flow

		if m.flow != nil && m.flow.Completed {
			// all questions answered, ask the agent to generate
			return m, m.agentClient.CompleteCmd(m.sessionID)
		}

		m.isFetching = false
		m.input.Focus()
		return m, nil

	case AgentErrorMsg:
		m.isFetching = false
		m.appendMessage("assistant", errorStyle.Render(fmt.Sprintf("Error: %v", msg.err)))
		m.input.Focus()
		return m, nil

	case spinner.TickMsg:
		if m.isFetching {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// processes the input box content on enter
func (m *ChatModel) handleSubmit() (*ChatModel, tea.Cmd) {
	if m.isFetching {
		return m, nil
	}

	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.isFetching = true

	// an active flow routes input to the current question
	if question := m.flow.current(); question != nil {
		answer := resolveAnswer(question, value)
		m.appendMessage("user", answer)

		return m, tea.Batch(
			m.agentClient.AnswerCmd(m.sessionID, question.ID, answer),
			m.spinner.Tick,
		)
	}

	m.appendMessage("user", value)

	return m, tea.Batch(
		m.agentClient.ProcessCmd(value, m.sessionID),
		m.spinner.Tick,
	)
}

// maps a numeric choice to its option text for single choice questions
func resolveAnswer(question *apiQuestion, value string) string {
	if question.Type != "single_choice" {
		return value
	}

	index, err := strconv.Atoi(value)
	if err != nil || index < 1 || index > len(question.Options) {
		return value
	}

	return question.Options[index-1]
}

func (m *ChatModel) handleAgentResponse(msg AgentResponseMsg) (*ChatModel, tea.Cmd) {
	m.isFetching = false
	m.sessionID = msg.response.SessionID

	result := msg.response.Response
	if result == nil {
		m.appendMessage("assistant", errorStyle.Render("empty response from agent"))
		m.input.Focus()
		return m, nil
	}

	switch result.Type {
	case "questions":
		m.flow = result.Flow
		m.appendMessage("assistant", result.Message)

	case "generation":
		m.flow = nil
		m.appendMessage("assistant", formatGeneration(result))

	case "error":
		m.flow = nil
		content := result.Message
		if result.ErrorDetail != "" {
			content += "\n\n" + infoStyle.Render(result.ErrorDetail)
		}
		m.appendMessage("assistant", content)

	default:
		m.appendMessage("assistant", errorStyle.Render(fmt.Sprintf("unknown response type: %s", result.Type)))
	}

	m.input.Focus()
	return m, nil
}

// builds the markdown for a generation result
func formatGeneration(result *apiAgentResult) string {
	var b strings.Builder

	b.WriteString(result.Message)
	b.WriteString("\n\n")

	if result.Generation != nil {
		gen := result.Generation

		fmt.Fprintf(&b, "```%s\n%s\n```\n", gen.Code.Language, gen.Code.Code)
		fmt.Fprintf(&b, "\n*component: %s | model: %s*\n", gen.Code.ComponentName, gen.Model)

		if len(gen.Suggestions) > 0 {
			b.WriteString("\n**Next steps:**\n")
			for _, s := range gen.Suggestions {
				fmt.Fprintf(&b, "- %s\n", s)
			}
		}
	}

	return b.String()
}

func (m *ChatModel) appendMessage(role, content string) {
	m.conversationHistory = append(m.conversationHistory, MessageModel{
		Role:    role,
		Content: content,
	})

	m.refreshViewport()
}

func (m *ChatModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 10

	viewportHeight := height - 10
	if viewportHeight < 5 {
		viewportHeight = 5
	}

	if !m.ready {
		m.viewport = viewport.New(width-4, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = width - 4
		m.viewport.Height = viewportHeight
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-8),
	)
	if err == nil {
		m.glamourRenderer = renderer
	}

	m.refreshViewport()
}

// re-renders the conversation into the viewport
func (m *ChatModel) refreshViewport() {
	if !m.ready {
		return
	}

	var b strings.Builder

	for _, msg := range m.conversationHistory {
		if msg.Role == "user" {
			b.WriteString(promptStyle.Render("you"))
			b.WriteString("\n")
			b.WriteString(msg.Content)
		} else {
			b.WriteString(suggestionStyle.Render("vibecode"))
			b.WriteString("\n")
			b.WriteString(m.renderMarkdown(msg.Content))
		}
		b.WriteString("\n\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *ChatModel) renderMarkdown(content string) string {
	if m.glamourRenderer == nil {
		return content
	}

	rendered, err := m.glamourRenderer.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimSpace(rendered)
}

func (m *ChatModel) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorIndigo).
		Render("VIBECODE CHAT")

	help := helpStyle.Render("[Enter: Send] [Ctrl+K: Skip Questions] [Ctrl+L: Clear] [Ctrl+C: Back]")

	b.WriteString(header)
	b.WriteString("  ")
	b.WriteString(help)
	b.WriteString("\n\n")

	if m.ready {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	if panel := m.questionPanel(); panel != "" {
		b.WriteString(panel)
		b.WriteString("\n")
	}

	inputBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorGray).
		Width(max(20, m.width-4)).
		Padding(0, 1).
		Render(m.input.View())

	b.WriteString(inputBox)
	b.WriteString("\n")

	if m.isFetching {
		b.WriteString(m.spinner.View())
		b.WriteString(infoStyle.Render(" thinking..."))
	}

	return b.String()
}

// renders the active question with its options and progress
func (m *ChatModel) questionPanel() string {
	question := m.flow.current()
	if question == nil {
		return ""
	}

	var b strings.Builder

	progress := fmt.Sprintf("question %d of %d", m.flow.CurrentIndex+1, len(m.flow.Questions))
	b.WriteString(infoStyle.Render(progress))
	b.WriteString("\n\n")

	b.WriteString(questionStyle.Render(question.Text))
	b.WriteString("\n")

	switch question.Type {
	case "single_choice":
		for i, opt := range question.Options {
			b.WriteString(optionStyle.Render(fmt.Sprintf("  %d. %s", i+1, opt)))
			b.WriteString("\n")
		}
	case "boolean":
		b.WriteString(optionStyle.Render("  type true or false"))
		b.WriteString("\n")
	}

	if question.Skipable {
		hint := "optional"
		if question.Default != "" {
			hint = fmt.Sprintf("optional, default: %s", question.Default)
		}
		b.WriteString(infoStyle.Render("  " + hint))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorAmber).
		Width(max(20, m.width-4)).
		Padding(0, 1).
		Render(b.String())
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
