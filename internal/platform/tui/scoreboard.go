package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dinorun/internal/games/dino"
	"github.com/vovakirdan/dinorun/internal/games/dino/engine"
	"github.com/vovakirdan/dinorun/internal/storage"
)

// leaderboardLimit caps the rows loaded per filter.
const leaderboardLimit = 100

// scoreTab is one leaderboard filter. An empty Filter lists every runner.
type scoreTab struct {
	Title  string
	Filter string
}

// scoreTabs returns the "All" filter followed by one per character.
func scoreTabs() []scoreTab {
	tabs := []scoreTab{{Title: "All"}}
	for _, c := range engine.Characters {
		tabs = append(tabs, scoreTab{Title: dino.SkinFor(c).Name, Filter: c.String()})
	}
	return tabs
}

type leaderboardKeys struct {
	Scroll key.Binding
	Filter key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k leaderboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Filter, k.Back, k.Quit}
}

func (k leaderboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var (
	scrollUpKey   = key.NewBinding(key.WithKeys("up", "k"))
	scrollDownKey = key.NewBinding(key.WithKeys("down", "j"))
	nextFilterKey = key.NewBinding(key.WithKeys("tab", "right", "l"))
	prevFilterKey = key.NewBinding(key.WithKeys("shift+tab", "left", "h"))

	boardKeys = leaderboardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
		Filter: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab/←/→", "runner")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "menu")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
)

var (
	boardTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	filterStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeFilterStyle = filterStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	summaryStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	emptyBoardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	boardStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// boardExit records how the player left the leaderboard.
type boardExit int

const (
	boardOpen boardExit = iota
	boardBack
	boardQuit
)

// ScoreboardModel lists stored runs, one runner filter at a time.
type ScoreboardModel struct {
	store   *storage.Store
	tabs    []scoreTab
	active  int
	entries []storage.ScoreEntry
	summary storage.Stats
	table   table.Model
	help    help.Model
	width   int
	height  int
	exit    boardExit
}

// NewScoreboardModel creates a leaderboard showing every runner.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		tabs:   scoreTabs(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.reload()
	return m
}

// filter returns the character name rows are restricted to, or "" for all.
func (m ScoreboardModel) filter() string {
	return m.tabs[m.active].Filter
}

// reload queries the store for the active filter and rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.entries = nil
	m.summary = storage.Stats{Character: m.filter()}
	if m.store != nil {
		if entries, err := m.store.TopScores(m.filter(), leaderboardLimit); err == nil {
			m.entries = entries
		}
		if stats, err := m.store.GetStats(m.filter()); err == nil {
			m.summary = *stats
		}
	}
	m.table = m.buildTable()
}

// buildTable lays out columns for the current width. A single-runner
// filter drops the runner column.
func (m ScoreboardModel) buildTable() table.Model {
	showRunner := m.filter() == ""
	inner := max(m.width-6, 30)

	cols := []table.Column{{Title: "#", Width: 4}}
	if showRunner {
		cols = append(cols, table.Column{Title: "Runner", Width: 8})
	}
	cols = append(cols, table.Column{Title: "Score", Width: 7})
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	cols = append(cols, table.Column{Title: "When", Width: min(max(inner-used, 12), 20)})

	rows := make([]table.Row, 0, len(m.entries))
	for i, e := range m.entries {
		row := table.Row{fmt.Sprint(i + 1)}
		if showRunner {
			row = append(row, runnerName(e.Character))
		}
		row = append(row, fmt.Sprintf("%05d", e.Score), e.CreatedAt.Format("Jan 02 15:04"))
		rows = append(rows, row)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("240"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	return table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(max(m.height-10, 3)),
		table.WithFocused(true),
		table.WithStyles(styles),
	)
}

// runnerName maps a stored character to its display name.
func runnerName(stored string) string {
	c, err := engine.ParseCharacter(stored)
	if err != nil {
		return stored
	}
	return dino.SkinFor(c).Name
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, boardKeys.Quit):
			m.exit = boardQuit
			return m, tea.Quit
		case key.Matches(msg, boardKeys.Back):
			m.exit = boardBack
			return m, tea.Quit
		case key.Matches(msg, nextFilterKey):
			m.active = (m.active + 1) % len(m.tabs)
			m.reload()
			return m, nil
		case key.Matches(msg, prevFilterKey):
			m.active = (m.active + len(m.tabs) - 1) % len(m.tabs)
			m.reload()
			return m, nil
		case key.Matches(msg, scrollUpKey), key.Matches(msg, scrollDownKey):
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.buildTable()
		m.table.SetCursor(cursor)
	}
	return m, nil
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.exit != boardOpen {
		return ""
	}

	body := emptyBoardStyle.Render("No runs yet. Set the first high score!")
	if len(m.entries) > 0 {
		body = m.table.View()
	}

	lines := []string{
		"",
		centerText(boardTitleStyle.Render("H I G H   S C O R E S"), m.width),
		"",
		centerText(m.filterBar(), m.width),
		centerText(summaryStyle.Render(m.summaryLine()), m.width),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardStyle.Render(body)),
		"",
		m.help.View(boardKeys),
	}
	return strings.Join(lines, "\n")
}

// filterBar renders every filter, or only the active one when the row is too wide.
func (m ScoreboardModel) filterBar() string {
	parts := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		style := filterStyle
		if i == m.active {
			style = activeFilterStyle
		}
		parts[i] = style.Render(t.Title)
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(bar) > m.width-2 {
		return activeFilterStyle.Render("< " + m.tabs[m.active].Title + " >")
	}
	return bar
}

// summaryLine aggregates the runs behind the active filter.
func (m ScoreboardModel) summaryLine() string {
	s := m.summary
	if s.RunsCount == 0 {
		return "no runs recorded"
	}
	line := fmt.Sprintf("runs %d  best %05d  avg %.0f", s.RunsCount, s.HighScore, s.AvgScore)
	if !s.LastPlayed.IsZero() {
		line += "  last " + s.LastPlayed.Format("Jan 02 15:04")
	}
	return line
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.exit == boardBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.exit == boardQuit
}

// RunScoreboard shows the leaderboard in its own program.
// It returns true when the player asked for the menu.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
