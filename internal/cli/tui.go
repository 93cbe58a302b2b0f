package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	pg "github.com/alexanderramin/syllabus/internal/progress"
	"github.com/alexanderramin/syllabus/internal/reminder"
	"github.com/alexanderramin/syllabus/internal/schedule"
	"github.com/alexanderramin/syllabus/internal/service"
	"github.com/alexanderramin/syllabus/internal/state"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen tracker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Interactive {
				return errors.New("the tracker UI needs an interactive terminal")
			}
			return runTUI(cmdContext(cmd), app)
		},
	}
}

// runTUI runs onboarding when no profile exists, then the full-screen model
// with the date refresher and reminder runner feeding it messages.
func runTUI(ctx context.Context, app *App) error {
	if !app.Tracker.State().HasProfile() {
		var p domain.UserProfile
		err := onboardingForm(&p).Run()
		switch {
		case errors.Is(err, huh.ErrUserAborted):
		case err != nil:
			return err
		default:
			if err := domain.ValidateUserProfile(p); err != nil {
				return err
			}
			app.Tracker.Dispatch(ctx, state.SetUserProfile{Profile: p})
		}
	}

	program := tea.NewProgram(newTUIModel(app), tea.WithAltScreen())

	var workers []service.Worker
	if app.Config.Notifications {
		workers = append(workers, newReminderRunner(app, reminder.FuncNotifier(
			func(ctx context.Context, n reminder.Notification) error {
				app.logger().InfoContext(ctx, "revision reminder", "tag", n.Tag)
				program.Send(reminderMsg{n: n})
				return nil
			})))
	}

	bgCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- service.RunBackground(bgCtx, app.Tracker, app.Config.DateRefreshInterval,
			func(s domain.AppState) { program.Send(stateMsg{s: s}) }, workers...)
	}()

	_, err := program.Run()
	cancel()
	if bgErr := <-done; err == nil {
		err = bgErr
	}
	return err
}

// stateMsg carries the state after a dispatch or a background refresh.
type stateMsg struct{ s domain.AppState }

// reminderMsg is a reminder delivered while the UI is open.
type reminderMsg struct{ n reminder.Notification }

// exportedMsg reports the outcome of a backup export.
type exportedMsg struct {
	path string
	err  error
}

type tuiKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextSubject key.Binding
	PrevSubject key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	Toggle      key.Binding
	ToggleAll   key.Binding
	Revise      key.Binding
	Undo        key.Binding
	Difficulty  key.Binding
	Sidebar     key.Binding
	Theme       key.Binding
	Export      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultTUIKeys() tuiKeyMap {
	return tuiKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextSubject: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next subject")),
		PrevSubject: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev subject")),
		NextPage:    key.NewBinding(key.WithKeys("]", "l"), key.WithHelp("]", "next page")),
		PrevPage:    key.NewBinding(key.WithKeys("[", "h"), key.WithHelp("[", "prev page")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		ToggleAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle chapter")),
		Revise:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "mark revised")),
		Undo:        key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo revision")),
		Difficulty:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter difficulty")),
		Sidebar:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Theme:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dark mode")),
		Export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export backup")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k tuiKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.NextSubject, k.NextPage, k.Sidebar, k.Help, k.Quit}
}

func (k tuiKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.ToggleAll},
		{k.Revise, k.Undo, k.Difficulty, k.Export},
		{k.NextSubject, k.PrevSubject, k.NextPage, k.PrevPage},
		{k.Sidebar, k.Theme, k.Help, k.Quit},
	}
}

// checkRow is one line of the checklist: a chapter, or one of its
// activities when activityID is set.
type checkRow struct {
	chapterID  string
	activityID string
}

var priorityCycle = []domain.Difficulty{
	domain.DifficultyHard,
	domain.DifficultyMedium,
	domain.DifficultyEasy,
	domain.DifficultyNone,
}

type tuiModel struct {
	app   *App
	state domain.AppState
	keys  tuiKeyMap
	help  help.Model
	bar   progress.Model
	vp    viewport.Model

	width, height int

	cursor   int
	offset   int
	priority domain.Difficulty
	flash    string
	quitting bool
}

func newTUIModel(app *App) tuiModel {
	s := app.Tracker.State()
	formatter.ApplyTheme(s.IsDarkMode)
	m := tuiModel{
		app:      app,
		state:    s,
		keys:     defaultTUIKeys(),
		help:     help.New(),
		bar:      newProgressBar(),
		vp:       viewport.New(0, 0),
		priority: domain.DifficultyHard,
	}
	m.syncViewport()
	return m
}

func newProgressBar() progress.Model {
	return progress.New(
		progress.WithSolidFill(string(formatter.ColorGreen)),
		progress.WithWidth(24),
		progress.WithoutPercentage(),
	)
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) dispatch(a state.Action) tea.Cmd {
	tracker := m.app.Tracker
	return func() tea.Msg {
		return stateMsg{s: tracker.Dispatch(context.Background(), a)}
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.vp.Width = msg.Width
		m.vp.Height = m.bodyHeight()
		m.syncViewport()
		return m, nil

	case stateMsg:
		if msg.s.IsDarkMode != m.state.IsDarkMode {
			formatter.ApplyTheme(msg.s.IsDarkMode)
			m.bar = newProgressBar()
		}
		m.state = msg.s
		m.clampCursor()
		m.syncViewport()
		return m, nil

	case reminderMsg:
		m.flash = formatter.StyleYellow.Render(msg.n.Title) + "  " + msg.n.Body
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.flash = formatter.StyleRed.Render("Export failed: " + msg.err.Error())
		} else {
			m.flash = formatter.StyleGreen.Render("Exported backup to " + msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.vp.Height = m.bodyHeight()
		return m, nil
	case key.Matches(msg, m.keys.Sidebar):
		return m, m.dispatch(state.ToggleSidebar{})
	case key.Matches(msg, m.keys.Theme):
		return m, m.dispatch(state.ToggleDarkMode{})
	case key.Matches(msg, m.keys.NextPage):
		return m, m.dispatch(state.SetCurrentPage{Page: m.pageAt(1)})
	case key.Matches(msg, m.keys.PrevPage):
		return m, m.dispatch(state.SetCurrentPage{Page: m.pageAt(-1)})
	case key.Matches(msg, m.keys.NextSubject):
		return m.switchSubject(1)
	case key.Matches(msg, m.keys.PrevSubject):
		return m.switchSubject(-1)
	}

	if k := msg.String(); len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		if i := int(k[0] - '1'); i < len(domain.Pages) {
			return m, m.dispatch(state.SetCurrentPage{Page: domain.Pages[i]})
		}
	}

	switch m.page() {
	case domain.PageChecklist:
		return m.handleChecklistKey(msg)
	case domain.PagePriority:
		if key.Matches(msg, m.keys.Difficulty) {
			m.priority = nextDifficulty(m.priority)
			m.syncViewport()
			return m, nil
		}
	case domain.PageDataBackup:
		if key.Matches(msg, m.keys.Export) {
			return m, m.export()
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m tuiModel) handleChecklistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollToCursor()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
		m.scrollToCursor()
		return m, nil
	}

	if len(rows) == 0 {
		return m, nil
	}
	row := rows[m.cursor]
	_, ch, ok := m.app.Tracker.Chapter(row.chapterID)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		if row.activityID != "" {
			return m, m.dispatch(state.ToggleActivity{ChapterID: ch.ID, ActivityID: row.activityID})
		}
		return m, m.dispatch(state.ToggleAllActivities{ChapterID: ch.ID, Completed: !ch.IsComplete()})
	case key.Matches(msg, m.keys.ToggleAll):
		return m, m.dispatch(state.ToggleAllActivities{ChapterID: ch.ID, Completed: !ch.IsComplete()})
	case key.Matches(msg, m.keys.Revise):
		m.flash = formatter.StyleGreen.Render(fmt.Sprintf("Revised %s (#%d)", ch.Name, ch.RevisionCount+1))
		return m, m.dispatch(state.MarkChapterRevised{ChapterID: ch.ID})
	case key.Matches(msg, m.keys.Undo):
		if ch.RevisionCount == 0 {
			m.flash = formatter.Dim(ch.Name + " has no revisions to undo")
			return m, nil
		}
		return m, m.dispatch(state.UndoChapterRevision{ChapterID: ch.ID})
	}
	return m, nil
}

func (m tuiModel) switchSubject(step int) (tea.Model, tea.Cmd) {
	subjects := m.state.Subjects
	if len(subjects) == 0 {
		return m, nil
	}
	i := 0
	for j, s := range subjects {
		if s.ID == m.state.ActiveSubject {
			i = j
			break
		}
	}
	next := subjects[(i+step+len(subjects))%len(subjects)]
	m.cursor, m.offset = 0, 0
	return m, m.dispatch(state.SetActiveSubject{SubjectID: next.ID})
}

func (m tuiModel) export() tea.Cmd {
	backup := m.app.Backup
	return func() tea.Msg {
		dir, err := os.Getwd()
		if err != nil {
			return exportedMsg{err: err}
		}
		path, err := backup.ExportToDir(context.Background(), dir)
		return exportedMsg{path: path, err: err}
	}
}

func (m tuiModel) page() domain.Page {
	if domain.ValidPage(m.state.CurrentPage) {
		return m.state.CurrentPage
	}
	return domain.PageChecklist
}

func (m tuiModel) pageAt(step int) domain.Page {
	cur := m.page()
	for i, p := range domain.Pages {
		if p == cur {
			n := len(domain.Pages)
			return domain.Pages[(i+step+n)%n]
		}
	}
	return domain.PageChecklist
}

func nextDifficulty(d domain.Difficulty) domain.Difficulty {
	for i, c := range priorityCycle {
		if c == d {
			return priorityCycle[(i+1)%len(priorityCycle)]
		}
	}
	return priorityCycle[0]
}

func (m tuiModel) activeSubject() *domain.Subject {
	return m.state.FindSubject(m.state.ActiveSubject)
}

func (m tuiModel) rows() []checkRow {
	subj := m.activeSubject()
	if subj == nil {
		return nil
	}
	var rows []checkRow
	for _, ch := range subj.Chapters {
		rows = append(rows, checkRow{chapterID: ch.ID})
		for _, a := range ch.Activities {
			rows = append(rows, checkRow{chapterID: ch.ID, activityID: a.ID})
		}
	}
	return rows
}

func (m *tuiModel) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.scrollToCursor()
}

func (m *tuiModel) scrollToCursor() {
	h := m.listHeight()
	if h <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

// bodyHeight is the space left between the header and the footer; zero
// means the terminal size is not known yet.
func (m tuiModel) bodyHeight() int {
	if m.height == 0 {
		return 0
	}
	footer := 2
	if m.help.ShowAll {
		footer = 6
	}
	return max(m.height-3-footer, 1)
}

func (m tuiModel) listHeight() int {
	if h := m.bodyHeight(); h > 0 {
		return max(h-3, 1)
	}
	return 0
}

func (m *tuiModel) syncViewport() {
	m.vp.SetContent(m.pageContent())
}

func (m tuiModel) pageContent() string {
	now := m.app.Tracker.Now()
	switch m.page() {
	case domain.PageAnalysis:
		return formatter.FormatAnalysis(m.state.Subjects)
	case domain.PagePriority:
		subj := m.activeSubject()
		if subj == nil {
			return "No subject selected."
		}
		return formatter.FormatPriority(*subj, m.priority, pg.FilterByDifficulty(*subj, m.priority))
	case domain.PageRevision:
		return formatter.FormatRevisionList(revisionRows(m.state.Subjects, "", false, now), now)
	case domain.PageTest:
		return formatter.FormatTestList(m.state.Tests)
	case domain.PageTestAnalysis:
		return formatter.FormatTestAnalysis(pg.AnalyzeTests(m.state.Tests))
	case domain.PageDataBackup:
		return strings.Join([]string{
			formatter.Header("Data backup"),
			"Press e to export everything to a dated JSON file in the current directory.",
			"Restore a file with " + formatter.Bold("syllabus backup import FILE") + ".",
			"Undo the last import with " + formatter.Bold("syllabus backup rollback") + ".",
		}, "\n")
	case domain.PageHowTo:
		return formatter.FormatHowTo()
	}
	return ""
}

func (m tuiModel) View() string {
	if m.quitting {
		return ""
	}

	body := m.renderChecklist()
	if m.page() != domain.PageChecklist {
		if m.height > 0 {
			body = m.vp.View()
		} else {
			body = m.pageContent()
		}
	}
	if m.state.SidebarOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body)
	}

	sections := []string{m.renderHeader(), body}
	if m.flash != "" {
		sections = append(sections, m.flash)
	}
	sections = append(sections, m.help.View(m.keys))
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderHeader() string {
	now := m.app.Tracker.Now()
	title := formatter.StylePurple.Render("syllabus") + " " + formatter.Dim("›") + " " + formatter.Bold(m.page().Label())
	overall := pg.OverallProgress(m.state.Subjects)
	line := fmt.Sprintf("%s  %s %3d%%", title, m.bar.ViewAs(float64(overall)/100), overall)
	return line + "\n" + formatter.Dim(formatter.FormatCountdown(m.state.TargetDeadline, now)) + "\n"
}

func (m tuiModel) renderSidebar() string {
	lines := make([]string, 0, len(domain.Pages))
	for i, p := range domain.Pages {
		label := fmt.Sprintf("%d %s", i+1, p.Label())
		if p == m.page() {
			lines = append(lines, formatter.StyleHeader.Render("▸ "+label))
			continue
		}
		lines = append(lines, "  "+label)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(formatter.ColorDim).
		PaddingRight(1).
		Render(strings.Join(lines, "\n"))
}

func (m tuiModel) renderChecklist() string {
	now := m.app.Tracker.Now()
	var b strings.Builder
	b.WriteString(formatter.FormatSubjectTabs(m.state.Subjects, m.state.ActiveSubject))
	b.WriteString("\n")

	subj := m.activeSubject()
	if subj == nil {
		b.WriteString(formatter.Dim("No subjects. Add one with `syllabus subject add`."))
		return b.String()
	}
	b.WriteString(formatter.RenderProgress(pg.SubjectProgress(subj.Chapters), 20))
	b.WriteString("\n\n")

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString(formatter.Dim(fmt.Sprintf("No chapters in %s yet. Add one with `syllabus chapter add`.", subj.Name)))
		return b.String()
	}

	end := len(rows)
	if h := m.listHeight(); h > 0 {
		end = min(m.offset+h, len(rows))
	}
	for i := m.offset; i < end; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StylePurple.Render("> ")
		}
		b.WriteString(cursor + m.renderRow(subj, rows[i], now) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m tuiModel) renderRow(subj *domain.Subject, row checkRow, now time.Time) string {
	ch := subj.FindChapter(row.chapterID)
	if ch == nil {
		return ""
	}
	if row.activityID == "" {
		return fmt.Sprintf("%s %s %s %s  %s",
			formatter.Checkbox(ch.IsComplete()),
			formatter.Bold(ch.Name),
			formatter.Dim(fmt.Sprintf("%d/%d", ch.CompletedCount(), len(ch.Activities))),
			formatter.DifficultyBadge(ch.Difficulty),
			formatter.UrgencyIndicator(schedule.RevisionUrgency(*ch, now)),
		)
	}
	for _, a := range ch.Activities {
		if a.ID == row.activityID {
			name := a.Name
			if a.Completed {
				name = formatter.Dim(name)
			}
			return "    " + formatter.Checkbox(a.Completed) + " " + name
		}
	}
	return ""
}
