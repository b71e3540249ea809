// Package exam renders an interactive quiz session in the terminal using
// Bubble Tea. The quiz service owns the countdown and all scoring; the UI
// polls a view snapshot every tick and sends key presses back as answers.
package exam

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/guidequiz/backend/internal/domain/performance"
	"github.com/guidequiz/backend/internal/domain/question"
	"github.com/guidequiz/backend/internal/domain/quiz"
	"github.com/guidequiz/backend/internal/service"
)

// Model drives the exam UI.
type Model struct {
	svc          *service.QuizService
	notices      <-chan service.Notice
	tickInterval time.Duration
	noColor      bool

	session      *service.SessionView
	result       *quiz.Result
	perf         performance.Set
	cursor       int
	notice       string
	errText      string
	exportedTo   string
	confirmReset bool
	width        int
}

// Options configures the exam UI model.
type Options struct {
	NoColor      bool
	TickInterval time.Duration
}

// NewModel constructs an exam UI model. The notices channel carries
// service-side messages such as the time-up warning.
func NewModel(svc *service.QuizService, notices <-chan service.Notice, opts Options) Model {
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = 250 * time.Millisecond
	}
	return Model{
		svc:          svc,
		notices:      notices,
		tickInterval: tickInterval,
		noColor:      opts.NoColor,
		width:        80,
	}
}

// Init starts the session, the tick loop and the notice listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(startQuiz(m.svc), tick(m.tickInterval), waitForNotice(m.notices))
}

// Update consumes key presses, ticks and service notices.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil
	case sessionMsg:
		m.session = typed.view
		m.result = nil
		m.perf = nil
		m.cursor = 0
		m.notice = ""
		m.errText = ""
		m.exportedTo = ""
		m.confirmReset = false
		return m, nil
	case errMsg:
		m.errText = typed.err.Error()
		return m, nil
	case noticeMsg:
		m.notice = typed.notice.Message
		return m, waitForNotice(m.notices)
	case tickMsg:
		return m.refresh()
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

// View renders the exam UI.
func (m Model) View() string {
	var sections []string
	switch {
	case m.result != nil:
		sections = append(sections, renderResult(m.result, m.perf, m.session, m.noColor))
		sections = append(sections, renderResultFooter(m.exportedTo, m.noColor))
	case m.session != nil:
		sections = append(sections, renderHeader(m.session, m.noColor))
		sections = append(sections, renderQuestion(m.session, m.cursor, m.noColor))
		sections = append(sections, renderFooter(m.session, m.confirmReset, m.noColor))
	default:
		sections = append(sections, "starting quiz...")
	}
	if m.notice != "" {
		sections = append(sections, renderNotice(m.notice, m.noColor))
	}
	if m.errText != "" {
		sections = append(sections, renderError(m.errText, m.noColor))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// refresh re-reads the session snapshot and, once the session is submitted,
// pulls the result and performance counters.
func (m Model) refresh() (tea.Model, tea.Cmd) {
	if view, ok := m.svc.View(); ok {
		m.session = view
		if view.State == "submitted" && m.result == nil {
			if result, ok := m.svc.LastResult(); ok {
				m.result = result
				if perf, err := m.svc.Performance(context.Background()); err == nil {
					m.perf = perf
				}
			}
		}
	}
	return m, tick(m.tickInterval)
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" || key.String() == "q" {
		return m, tea.Quit
	}

	if m.confirmReset {
		m.confirmReset = false
		if key.String() == "y" {
			return m, resetQuiz(m.svc, true)
		}
		return m, nil
	}

	if m.result != nil {
		switch key.String() {
		case "r":
			return m, resetQuiz(m.svc, false)
		case "e":
			return m.export()
		}
		return m, nil
	}

	if m.session == nil || m.session.State != "running" {
		return m, nil
	}

	switch key.String() {
	case "left", "p":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "n", "tab":
		if m.cursor < len(m.session.Questions)-1 {
			m.cursor++
		}
	case "enter", "s":
		return m, submitQuiz(m.svc)
	case "backspace", "delete":
		return m.clearAnswer()
	case "u":
		m.notice = unansweredSummary(m.session)
	case "r":
		m.confirmReset = true
	default:
		return m.recordKey(key.String())
	}
	return m, nil
}

// recordKey maps a letter key onto the current question. Single-answer
// questions replace the recorded value; multiple-choice questions toggle
// the letter in and out of the recorded set.
func (m Model) recordKey(key string) (tea.Model, tea.Cmd) {
	if len(key) != 1 {
		return m, nil
	}
	letter := strings.ToUpper(key)
	if letter < "A" || letter > "Z" {
		return m, nil
	}

	q := m.session.Questions[m.cursor]
	value := letter
	if q.Multiple {
		value = toggleLetter(q.Recorded, letter)
	}
	value = question.NormalizeAnswer(q.Category, value)

	if err := m.svc.Answer(m.cursor, value); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.session.Questions[m.cursor].Recorded = value
	m.errText = ""
	return m, nil
}

// clearAnswer wipes whatever is recorded on the current question.
func (m Model) clearAnswer() (tea.Model, tea.Cmd) {
	if err := m.svc.Answer(m.cursor, ""); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.session.Questions[m.cursor].Recorded = ""
	m.errText = ""
	return m, nil
}

func (m Model) export() (tea.Model, tea.Cmd) {
	filename, data, err := m.svc.ExportLast(context.Background())
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}
	if err := writeExport(filename, data); err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.exportedTo = filename
	m.errText = ""
	return m, nil
}

// ── Messages and commands ───────────────────────────────────────────────────

type sessionMsg struct {
	view *service.SessionView
}

type errMsg struct {
	err error
}

type noticeMsg struct {
	notice service.Notice
}

// tickMsg carries a clock tick for updates.
type tickMsg time.Time

func startQuiz(svc *service.QuizService) tea.Cmd {
	return func() tea.Msg {
		view, err := svc.Start(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return sessionMsg{view: view}
	}
}

func resetQuiz(svc *service.QuizService, confirm bool) tea.Cmd {
	return func() tea.Msg {
		view, err := svc.Reset(context.Background(), confirm)
		if err != nil {
			return errMsg{err: err}
		}
		return sessionMsg{view: view}
	}
}

func submitQuiz(svc *service.QuizService) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.Submit(context.Background()); err != nil {
			return errMsg{err: err}
		}
		// The next tick picks up the submitted state and the result.
		return nil
	}
}

// waitForNotice blocks until a service notice is available.
func waitForNotice(notices <-chan service.Notice) tea.Cmd {
	return func() tea.Msg {
		if notices == nil {
			return nil
		}
		notice, ok := <-notices
		if !ok {
			return nil
		}
		return noticeMsg{notice: notice}
	}
}

// tick emits a periodic tick message.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}
