package exam

import (
	"os"
	"strconv"
	"strings"

	"github.com/guidequiz/backend/internal/domain/question"
	"github.com/guidequiz/backend/internal/service"
)

// formatClock renders remaining seconds as mm:ss.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return pad2(seconds/60) + ":" + pad2(seconds%60)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return strconv.Itoa(value)
	}
	return "0" + strconv.Itoa(value)
}

// categoryLabel maps categories to display labels.
func categoryLabel(c question.Category) string {
	switch c {
	case question.CategoryJudgement:
		return "judgement"
	case question.CategorySingle:
		return "single choice"
	case question.CategoryMultiple:
		return "multiple choice"
	}
	return string(c)
}

// unansweredSummary names the questions that still have no recorded answer.
func unansweredSummary(view *service.SessionView) string {
	var numbers []string
	for i, q := range view.Questions {
		if q.Recorded == "" {
			numbers = append(numbers, strconv.Itoa(i+1))
		}
	}
	if len(numbers) == 0 {
		return "All questions answered."
	}
	return "Unanswered: " + strings.Join(numbers, ", ")
}

// toggleLetter adds the letter to the recorded set or removes it when
// already present. The service re-sorts the result.
func toggleLetter(recorded, letter string) string {
	if strings.Contains(recorded, letter) {
		return strings.ReplaceAll(recorded, letter, "")
	}
	return recorded + letter
}

// writeExport saves the export payload next to the binary.
func writeExport(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}
