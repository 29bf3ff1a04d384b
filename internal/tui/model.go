package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"polybot/internal/domain"
	"polybot/internal/service"
)

// Answerer is the TUI-facing subset of the answer service.
type Answerer interface {
	Answer(ctx context.Context, rawText string) (*domain.Bundle, error)
}

type turn struct {
	speaker string // "user" or "bot"
	text    string
}

type answerMsg struct {
	bundle *domain.Bundle
	err    error
	took   time.Duration
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	svc      Answerer
	caption  string
	input    textinput.Model
	viewport viewport.Model
	history  []turn
	bundle   *domain.Bundle
	lastLang string
	status   string
	busy     bool
	ready    bool
}

// New creates a chat model. caption is shown under the header, typically a
// short summary of the loaded knowledge base.
func New(svc Answerer, caption string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type your question in any language and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		svc:      svc,
		caption:  caption,
		input:    ti,
		viewport: vp,
		lastLang: "en",
		status:   "Ready. Ask your first question.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + caption, status, input box, spacer
		vh := msg.Height - reserved - ch
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderChat())
		m.viewport.GotoBottom()
		return m, nil

	case answerMsg:
		m.busy = false
		if msg.err != nil {
			// Infrastructure failure: record an error turn, keep history.
			m.history = append(m.history, turn{speaker: "bot", text: "Sorry, something went wrong."})
			m.bundle = nil
			m.status = "Error: " + msg.err.Error()
		} else {
			m.bundle = msg.bundle
			m.lastLang = msg.bundle.Lang
			m.history = append(m.history, turn{speaker: "bot", text: service.PrimaryAnswer(msg.bundle)})
			m.status = fmt.Sprintf("Detected: %s  ·  %.2fs", m.lastLang, msg.took.Seconds())
		}
		m.viewport.SetContent(m.renderChat())
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.busy {
				m.history = append(m.history, turn{speaker: "user", text: q})
				m.input.SetValue("")
				m.busy = true
				m.status = "Processing..."
				m.viewport.SetContent(m.renderChat())
				m.viewport.GotoBottom()
				return m, ask(m.svc, q)
			}
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Polybot · multilingual Q&A")
	caption := captionStyle.Render(m.caption)
	chat := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + caption + "\n" + chat + "\n" + input + "\n" + status
}

func ask(svc Answerer, q string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		bundle, err := svc.Answer(context.Background(), q)
		return answerMsg{bundle: bundle, err: err, took: time.Since(start)}
	}
}

func (m Model) renderChat() string {
	var b strings.Builder
	if len(m.history) == 0 {
		b.WriteString("No conversation yet. Ask your first question below.")
	}
	for _, t := range m.history {
		if t.speaker == "user" {
			b.WriteString(userStyle.Render("You: ") + t.text + "\n")
		} else {
			b.WriteString(botStyle.Render("Bot: ") + t.text + "\n")
		}
	}
	if m.bundle != nil {
		b.WriteString(m.renderDetails())
	}
	return b.String()
}

// renderDetails shows the full ranked bundle below the conversation, the
// way the original UI listed per-source matches with scores.
func (m Model) renderDetails() string {
	var b strings.Builder
	wrote := false
	writeHeader := func(title string) {
		if !wrote {
			b.WriteString("\n" + sectionStyle.Render("Detailed results") + "\n")
			wrote = true
		}
		b.WriteString(sourceStyle.Render(title) + "\n")
	}
	if len(m.bundle.FAQ) > 0 {
		writeHeader("FAQ matches")
		for _, match := range m.bundle.FAQ {
			b.WriteString(fmt.Sprintf("  - %s (score: %.3f)\n", match.Text, match.Score))
		}
	}
	if len(m.bundle.Corpus) > 0 {
		writeHeader("Corpus matches")
		for _, match := range m.bundle.Corpus {
			b.WriteString(fmt.Sprintf("  - %s (score: %.3f)\n", match.Text, match.Score))
		}
	}
	if len(m.bundle.Generated) > 0 {
		// Generated answers carry no retrieval confidence; no score shown.
		writeHeader("Generated (fallback)")
		for _, match := range m.bundle.Generated {
			b.WriteString("  - " + match.Text + "\n")
		}
	}
	return b.String()
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	captionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	chatBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	sourceStyle   = lipgloss.NewStyle().Bold(true)
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
