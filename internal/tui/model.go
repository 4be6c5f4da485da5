package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docrank/internal/domain"
	"docrank/internal/ranker"
)

// SearchPort is the TUI-facing subset of the search service.
type SearchPort interface {
	Search(ctx context.Context, sessionID, query string) ([]domain.SearchResult, error)
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service   SearchPort
	session   string
	input     textinput.Model
	viewport  viewport.Model
	results   []domain.SearchResult
	summary   string
	status    string
	cursor    int
	showTrace bool
	ready     bool
}

// New creates a new TUI model instance. summary is shown under the header.
func New(service SearchPort, session, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ketik query lalu tekan Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{service: service, session: session, input: ti, viewport: vp, summary: summary, status: "Loaded. Type to search, Tab toggles preprocessing."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header+summary, status, spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			res, err := m.service.Search(context.Background(), m.session, q)
			if err != nil {
				m.status = "Error: " + err.Error()
				m.results = nil
			} else {
				m.results = ranker.Relevant(res)
				m.cursor = 0
				m.status = fmt.Sprintf("%d relevant of %d documents for %q", len(m.results), len(res), q)
			}
			m.viewport.SetContent(m.renderCurrentResult())
			return m, nil
		case "tab":
			m.showTrace = !m.showTrace
			m.viewport.SetContent(m.renderCurrentResult())
			return m, nil
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("docrank: Indonesian document search")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No relevant documents."
	}
	r := m.results[m.cursor]
	band := ranker.Band(r.Similarity)
	score := bandStyles[band].Render(fmt.Sprintf("%.2f%% (%s)", r.Similarity, band))
	title := fmt.Sprintf("#%d  %s  [%s]  %s", r.Rank, r.DocumentName, r.Source, score)
	if r.Preprocessing == nil {
		return title
	}
	if !m.showTrace {
		return title + "\n\n" + r.Preprocessing.OriginalText
	}
	return title + "\n\n" + renderTrace(r.Preprocessing)
}

func renderTrace(t *domain.PreprocessingTrace) string {
	var b strings.Builder
	section := func(name, body string) {
		b.WriteString(labelStyle.Render(name))
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n\n")
	}
	section("Case folding", t.CaseFolded)
	section(fmt.Sprintf("Tokens (%d)", len(t.Tokens)), strings.Join(t.Tokens, " | "))
	section(fmt.Sprintf("Filtered tokens (%d)", len(t.FilteredTokens)), strings.Join(t.FilteredTokens, " | "))
	section(fmt.Sprintf("Removed stopwords (%d)", len(t.RemovedStopwords)), strings.Join(t.RemovedStopwords, " | "))
	pairs := make([]string, 0, len(t.Stemming))
	for _, p := range t.Stemming {
		if p.Original == p.Stemmed {
			pairs = append(pairs, p.Original)
			continue
		}
		pairs = append(pairs, p.Original+" → "+highlightStyle.Render(p.Stemmed))
	}
	section(fmt.Sprintf("Stemming (%d)", len(pairs)), strings.Join(pairs, ", "))
	return strings.TrimRight(b.String(), "\n")
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Underline(true)
	bandStyles     = map[string]lipgloss.Style{
		"High":   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		"Medium": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"Low":    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		"None":   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
