package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"

	"github.com/guidequiz/backend/internal/domain/question"
	"github.com/guidequiz/backend/internal/domain/quiz"
)

// QuizSettings is the single configuration object for a test run: total time
// limit, how many questions each category contributes, and the points a
// correct answer earns per category.
type QuizSettings struct {
	TimeLimitSeconds int          `mapstructure:"time_limit_seconds"`
	Counts           CategoryInts `mapstructure:"counts"`
	Points           CategoryInts `mapstructure:"points"`
}

type CategoryInts struct {
	Judgement int `mapstructure:"judgement"`
	Single    int `mapstructure:"single"`
	Multiple  int `mapstructure:"multiple"`
}

// LoadQuizSettings reads the settings file, falling back to the stock layout
// (120 s, 2/2/1 questions, 2 points each) when the file is absent. Values can
// also be overridden through QUIZ_-prefixed environment variables.
func LoadQuizSettings(path string) (*QuizSettings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("time_limit_seconds", 120)
	v.SetDefault("counts.judgement", 2)
	v.SetDefault("counts.single", 2)
	v.SetDefault("counts.multiple", 1)
	v.SetDefault("points.judgement", 2)
	v.SetDefault("points.single", 2)
	v.SetDefault("points.multiple", 2)

	v.SetEnvPrefix("QUIZ")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !isNotExist(err) {
			return nil, fmt.Errorf("quiz settings: %w", err)
		}
	}

	var s QuizSettings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("quiz settings: %w", err)
	}
	if s.TimeLimitSeconds <= 0 {
		return nil, fmt.Errorf("quiz settings: time_limit_seconds must be positive, got %d", s.TimeLimitSeconds)
	}
	if s.Counts.Judgement < 0 || s.Counts.Single < 0 || s.Counts.Multiple < 0 {
		return nil, fmt.Errorf("quiz settings: question counts cannot be negative")
	}
	return &s, nil
}

// isNotExist catches the plain path error viper returns for an explicit
// config file that is missing; a missing file means "use defaults".
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// QuizCounts converts the settings into the selector's per-category counts.
func (s *QuizSettings) QuizCounts() quiz.Counts {
	return quiz.Counts{
		question.CategoryJudgement: s.Counts.Judgement,
		question.CategorySingle:    s.Counts.Single,
		question.CategoryMultiple:  s.Counts.Multiple,
	}
}

// QuizWeights converts the settings into the scorer's point weights.
func (s *QuizSettings) QuizWeights() quiz.Weights {
	return quiz.Weights{
		question.CategoryJudgement: s.Points.Judgement,
		question.CategorySingle:    s.Points.Single,
		question.CategoryMultiple:  s.Points.Multiple,
	}
}
