package question

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Category is one of the three fixed question types.
type Category string

const (
	CategoryJudgement Category = "judgement" // true/false, answered "A" or "B"
	CategorySingle    Category = "single"    // one option letter
	CategoryMultiple  Category = "multiple"  // sorted concatenation of option letters
)

// AllCategories lists the categories in presentation order.
var AllCategories = []Category{CategoryJudgement, CategorySingle, CategoryMultiple}

func (c Category) Valid() bool {
	switch c {
	case CategoryJudgement, CategorySingle, CategoryMultiple:
		return true
	}
	return false
}

// Question is a single entry from one of the three pools. Options carry their
// letter prefix ("A. text"); judgement questions have no options and are
// answered "A" (true) or "B" (false). Answer is canonical: for multiple it is
// a sorted, duplicate-free string of option letters.
type Question struct {
	ID       string
	Category Category
	Prompt   string
	Options  []string
	Answer   string
	Hint     string
}

// NormalizeAnswer brings a raw answer value into canonical form: uppercase
// letters only, and for multiple-choice sorted ascending with duplicates
// removed. An empty or letter-free input normalizes to "".
func NormalizeAnswer(c Category, raw string) string {
	var letters []byte
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		if ch >= 'A' && ch <= 'Z' {
			letters = append(letters, ch)
		}
	}
	if len(letters) == 0 {
		return ""
	}
	if c != CategoryMultiple {
		return string(letters[:1])
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	out := letters[:1]
	for _, ch := range letters[1:] {
		if ch != out[len(out)-1] {
			out = append(out, ch)
		}
	}
	return string(out)
}

// OptionLetter returns the letter an option label is prefixed with,
// or "" if the label has no recognizable prefix.
func OptionLetter(label string) string {
	label = strings.TrimSpace(label)
	if len(label) == 0 {
		return ""
	}
	ch := label[0]
	if ch < 'A' || ch > 'Z' {
		return ""
	}
	return string(ch)
}

// Validate checks the structural invariants a pool entry must satisfy.
func (q Question) Validate() error {
	if !q.Category.Valid() {
		return fmt.Errorf("question %s: unknown category %q", q.ID, q.Category)
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return errors.New("question prompt cannot be empty")
	}
	if q.Answer == "" {
		return fmt.Errorf("question %s: answer cannot be empty", q.ID)
	}
	if q.Answer != NormalizeAnswer(q.Category, q.Answer) {
		return fmt.Errorf("question %s: answer %q is not in canonical form", q.ID, q.Answer)
	}
	switch q.Category {
	case CategoryJudgement:
		if len(q.Options) != 0 {
			return fmt.Errorf("question %s: judgement questions carry no options", q.ID)
		}
		if q.Answer != "A" && q.Answer != "B" {
			return fmt.Errorf("question %s: judgement answer must be A or B, got %q", q.ID, q.Answer)
		}
	case CategorySingle, CategoryMultiple:
		if len(q.Options) < 2 {
			return fmt.Errorf("question %s: choice questions need at least two options", q.ID)
		}
		if q.Category == CategorySingle && len(q.Answer) != 1 {
			return fmt.Errorf("question %s: single-choice answer must be one letter, got %q", q.ID, q.Answer)
		}
		last := byte('A' + len(q.Options) - 1)
		for i := 0; i < len(q.Answer); i++ {
			if q.Answer[i] > last {
				return fmt.Errorf("question %s: answer letter %q outside option range", q.ID, string(q.Answer[i]))
			}
		}
	}
	return nil
}

// IsMultiple reports whether the question accepts more than one letter.
func (q Question) IsMultiple() bool {
	return q.Category == CategoryMultiple
}

// Pools groups the available questions by category.
type Pools map[Category][]Question

// Count returns the pool size for one category.
func (p Pools) Count(c Category) int {
	return len(p[c])
}

// Total returns the number of questions across all pools.
func (p Pools) Total() int {
	n := 0
	for _, qs := range p {
		n += len(qs)
	}
	return n
}
