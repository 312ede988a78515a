package impl

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey/internal/domain/entity"
	"survey/internal/domain/service"
	"survey/internal/infra/generator"
	"survey/internal/usecase"
)

// stubGenerator returns a canned questionnaire or a canned error.
type stubGenerator struct {
	questionnaire *entity.Questionnaire
	err           error
	calls         int
}

func (g *stubGenerator) Generate(context.Context, service.GenerateSpec) (*entity.Questionnaire, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}

	return g.questionnaire, nil
}

func questionCount(n int) *int {
	return &n
}

func newQuestionnaireService(llm service.QuestionnaireGenerator) usecase.QuestionnaireUsecase {
	return NewQuestionnaireService(QuestionnaireServiceParams{
		LLM:      llm,
		Fallback: generator.NewTemplateGenerator(),
		Logger:   newDiscardLogger(),
	})
}

func TestQuestionnaireService_FallbackWhenNoLLM(t *testing.T) {
	svc := newQuestionnaireService(nil)

	questionnaire, err := svc.Generate(context.Background(), &usecase.GenerateInput{
		Goal:          "用户满意度",
		QuestionCount: questionCount(6),
	})

	require.NoError(t, err)
	assert.Equal(t, "用户满意度问卷", questionnaire.Title)
	assert.Len(t, questionnaire.Questions, 6)
}

func TestQuestionnaireService_FallbackOnLLMError(t *testing.T) {
	llm := &stubGenerator{err: errors.New("upstream unavailable")}
	svc := newQuestionnaireService(llm)

	questionnaire, err := svc.Generate(context.Background(), &usecase.GenerateInput{Goal: "试用反馈"})

	require.NoError(t, err)
	assert.Equal(t, 1, llm.calls)
	// Default question count applies.
	assert.Len(t, questionnaire.Questions, 8)
}

func TestQuestionnaireService_UsesLLMResult(t *testing.T) {
	llm := &stubGenerator{questionnaire: &entity.Questionnaire{
		Title: "Custom",
		Questions: []entity.Question{
			{ID: "q1", Type: entity.QuestionShortText, Text: "Anything?"},
		},
	}}
	svc := newQuestionnaireService(llm)

	questionnaire, err := svc.Generate(context.Background(), &usecase.GenerateInput{Goal: "feedback"})

	require.NoError(t, err)
	assert.Equal(t, "Custom", questionnaire.Title)
	// With no choice/rating questions the first one becomes required.
	assert.True(t, questionnaire.Questions[0].Required)
}

func TestAutoRequired(t *testing.T) {
	t.Run("keeps existing required flags", func(t *testing.T) {
		q := &entity.Questionnaire{Questions: []entity.Question{
			{Type: entity.QuestionShortText, Required: true},
			{Type: entity.QuestionSingleChoice},
		}}
		autoRequired(q)
		assert.False(t, q.Questions[1].Required)
	})

	t.Run("marks choice and rating questions", func(t *testing.T) {
		q := &entity.Questionnaire{Questions: []entity.Question{
			{Type: entity.QuestionShortText},
			{Type: entity.QuestionSingleChoice},
			{Type: entity.QuestionRating},
		}}
		autoRequired(q)
		assert.False(t, q.Questions[0].Required)
		assert.True(t, q.Questions[1].Required)
		assert.True(t, q.Questions[2].Required)
	})

	t.Run("falls back to the first question", func(t *testing.T) {
		q := &entity.Questionnaire{Questions: []entity.Question{
			{Type: entity.QuestionShortText},
			{Type: entity.QuestionMultipleChoice},
		}}
		autoRequired(q)
		assert.True(t, q.Questions[0].Required)
		assert.False(t, q.Questions[1].Required)
	})

	t.Run("empty questionnaire", func(t *testing.T) {
		q := &entity.Questionnaire{}
		assert.NotPanics(t, func() { autoRequired(q) })
	})
}
