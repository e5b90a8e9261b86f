package service

import (
	"fmt"
	"slices"

	"github.com/niksmo/bloomora/internal/core/domain"
)

const (
	quizPersona         = "The Minimalist"
	quizRecommendations = 3
)

var quizQuestions = []domain.QuizQuestion{
	{
		ID:       1,
		Question: "How much natural light does your space get?",
		Options: []domain.QuizOption{
			{Label: "Blindingly Bright (Direct Sun)", Value: "Bright"},
			{Label: "Nice & Sunny (Indirect)", Value: "Medium"},
			{Label: "Wait, you guys have windows?", Value: "Low"},
		},
	},
	{
		ID:       2,
		Question: "How often will you remember to water it?",
		Options: []domain.QuizOption{
			{Label: "I'm a helicopter plant parent (Often)", Value: "High"},
			{Label: "Once a week, maybe?", Value: "Medium"},
			{Label: "I usually forget until it droops", Value: "Low"},
		},
	},
	{
		ID:       3,
		Question: "Do you have furry friends running around?",
		Options: []domain.QuizOption{
			{Label: "Yes, and they eat everything!", Value: "Yes"},
			{Label: "Nope, just me.", Value: "No"},
		},
	},
	{
		ID:       4,
		Question: "What's your plant vibe?",
		Options: []domain.QuizOption{
			{Label: "Jungle Maximalist", Value: "Big"},
			{Label: "Minimalist Zen", Value: "Small"},
		},
	},
}

// A Quiz matches the visitor with plants.
//
// The answers are validated but do not influence the result yet.
type Quiz struct {
	catalog Catalog
}

func NewQuiz(catalog Catalog) Quiz {
	return Quiz{catalog}
}

// Questions returns a copy that callers may modify freely.
func (Quiz) Questions() []domain.QuizQuestion {
	qs := slices.Clone(quizQuestions)
	for i := range qs {
		qs[i].Options = slices.Clone(qs[i].Options)
	}
	return qs
}

// Result expects one answer per question, keyed by question id.
func (q Quiz) Result(answers map[int]string) (domain.QuizResult, error) {
	const op = "Quiz.Result"

	if len(answers) != len(quizQuestions) {
		return domain.QuizResult{}, fmt.Errorf(
			"%s: %w: want %d answers, got %d",
			op, ErrInvalidQuizAnswers, len(quizQuestions), len(answers),
		)
	}

	for _, question := range quizQuestions {
		answer, ok := answers[question.ID]
		if !ok {
			return domain.QuizResult{}, fmt.Errorf(
				"%s: %w: question %d is unanswered",
				op, ErrInvalidQuizAnswers, question.ID,
			)
		}
		valid := slices.ContainsFunc(question.Options, func(o domain.QuizOption) bool {
			return o.Value == answer
		})
		if !valid {
			return domain.QuizResult{}, fmt.Errorf(
				"%s: %w: question %d has no option %q",
				op, ErrInvalidQuizAnswers, question.ID, answer,
			)
		}
	}

	ps := q.catalog.Products()
	return domain.QuizResult{
		Persona:     quizPersona,
		Recommended: ps[:min(quizRecommendations, len(ps))],
	}, nil
}
