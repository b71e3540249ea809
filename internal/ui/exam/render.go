package exam

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/guidequiz/backend/internal/domain/performance"
	"github.com/guidequiz/backend/internal/domain/question"
	"github.com/guidequiz/backend/internal/domain/quiz"
	"github.com/guidequiz/backend/internal/service"
)

// judgementOptions stands in when a true/false question carries no
// option labels of its own.
var judgementOptions = []string{"A. true", "B. false"}

// renderHeader shows the title line with the countdown and progress.
func renderHeader(session *service.SessionView, noColor bool) string {
	clock := formatClock(session.SecondsLeft)
	switch {
	case session.SecondsLeft <= 30:
		clock = stylize(clock, noColor, lipgloss.Color("196"))
	case session.SecondsLeft <= 60:
		clock = stylize(clock, noColor, lipgloss.Color("214"))
	default:
		clock = stylize(clock, noColor, lipgloss.Color("33"))
	}

	title := "Guide Exam Practice"
	if session.Degraded {
		title += " (short pool)"
	}
	answered := strconv.Itoa(session.Answered) + "/" + strconv.Itoa(session.Total) + " answered"
	return stylize(title, noColor, lipgloss.Color("33")) + "   " + clock + "   " + answered
}

// renderQuestion shows the question under the cursor with its options and
// the recorded answer.
func renderQuestion(session *service.SessionView, cursor int, noColor bool) string {
	if cursor >= len(session.Questions) {
		return ""
	}
	q := session.Questions[cursor]

	var b strings.Builder
	heading := "Q" + strconv.Itoa(q.Number) + " [" + categoryLabel(q.Category) + "]"
	b.WriteString(stylize(heading, noColor, lipgloss.Color("242")))
	b.WriteString("\n")
	b.WriteString(q.Prompt)
	b.WriteString("\n")

	options := q.Options
	if len(options) == 0 && q.Category == question.CategoryJudgement {
		options = judgementOptions
	}
	for _, option := range options {
		marker := "  "
		if letter := question.OptionLetter(option); letter != "" && strings.Contains(q.Recorded, letter) {
			marker = stylize("> ", noColor, lipgloss.Color("33"))
		}
		b.WriteString(marker)
		b.WriteString(option)
		b.WriteString("\n")
	}

	if q.Recorded != "" {
		b.WriteString(stylize("your answer: "+q.Recorded, noColor, lipgloss.Color("242")))
	} else {
		b.WriteString(stylize("not answered", noColor, lipgloss.Color("242")))
	}
	return b.String()
}

// renderFooter shows the key bindings, or the reset confirmation prompt.
func renderFooter(session *service.SessionView, confirmReset bool, noColor bool) string {
	if confirmReset {
		return stylize("discard this session and start over? y/n", noColor, lipgloss.Color("214"))
	}
	help := "←/→ move   a-f answer   backspace clear   u unanswered   s submit   r restart   q quit"
	if session.State != "running" {
		help = "scoring..."
	}
	return stylize(help, noColor, lipgloss.Color("240"))
}

// renderResult shows the final score, per-question outcomes with hints and
// the per-category accuracy bars.
func renderResult(result *quiz.Result, perf performance.Set, session *service.SessionView, noColor bool) string {
	var b strings.Builder

	score := "Score: " + strconv.Itoa(result.Score) + " / " + strconv.Itoa(result.MaxScore)
	if session != nil {
		score += "   time used " + formatClock(session.TimeLimit-session.SecondsLeft)
	}
	b.WriteString(stylize(score, noColor, lipgloss.Color("33")))
	b.WriteString("\n\n")

	for _, qr := range result.PerQuestion {
		mark := stylize("✓", noColor, lipgloss.Color("34"))
		if !qr.Correct {
			mark = stylize("✗", noColor, lipgloss.Color("196"))
		}
		b.WriteString(mark + " Q" + strconv.Itoa(qr.Number) + " " + qr.Prompt + "\n")
		if !qr.Correct {
			answered := qr.UserAnswer
			if answered == "" {
				answered = "(blank)"
			}
			b.WriteString("   yours: " + answered + "   correct: " + qr.CorrectAnswer + "\n")
			if qr.Hint != "" {
				b.WriteString(stylize("   hint: "+qr.Hint, noColor, lipgloss.Color("242")) + "\n")
			}
		}
	}

	if len(perf) > 0 {
		b.WriteString("\n")
		b.WriteString(renderAccuracy(perf, noColor))
	}
	return b.String()
}

// renderAccuracy draws one progress bar per category from the stored
// counters.
func renderAccuracy(perf performance.Set, noColor bool) string {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	if noColor {
		bar = progress.New(progress.WithSolidFill("7"), progress.WithWidth(30))
	}
	bar.ShowPercentage = false

	var b strings.Builder
	b.WriteString(stylize("accuracy so far", noColor, lipgloss.Color("242")))
	b.WriteString("\n")
	for _, category := range question.AllCategories {
		counters := perf[category]
		label := categoryLabel(category)
		line := padRight(label, 16) + bar.ViewAs(counters.Accuracy()/100) +
			"  " + strconv.Itoa(counters.Correct) + "/" + strconv.Itoa(counters.Total)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderResultFooter(exportedTo string, noColor bool) string {
	help := "r new quiz   e export   q quit"
	if exportedTo != "" {
		help += "   saved " + exportedTo
	}
	return stylize(help, noColor, lipgloss.Color("240"))
}

func renderNotice(notice string, noColor bool) string {
	return stylize(notice, noColor, lipgloss.Color("214"))
}

func renderError(text string, noColor bool) string {
	return stylize(text, noColor, lipgloss.Color("196"))
}

// stylize applies a foreground color unless colors are disabled.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func padRight(text string, width int) string {
	if len(text) >= width {
		return text + " "
	}
	return text + strings.Repeat(" ", width-len(text))
}
