package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey/internal/domain/entity"
	"survey/internal/domain/service"
)

func TestTemplateGenerator_Generate(t *testing.T) {
	g := NewTemplateGenerator()

	questionnaire, err := g.Generate(context.Background(), service.GenerateSpec{
		Goal:          "产品体验",
		QuestionCount: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, "产品体验问卷", questionnaire.Title)
	assert.NotEmpty(t, questionnaire.Intro)
	require.Len(t, questionnaire.Questions, 4)

	// Questions come from the template set, in order, with distinct ids.
	seen := make(map[string]bool)
	for _, q := range questionnaire.Questions {
		assert.Len(t, q.ID, 8)
		assert.False(t, seen[q.ID], "duplicate id %s", q.ID)
		seen[q.ID] = true
	}
	assert.Equal(t, entity.QuestionSingleChoice, questionnaire.Questions[0].Type)
	assert.True(t, questionnaire.Questions[0].Required)
}

func TestTemplateGenerator_PadsPastTemplates(t *testing.T) {
	g := NewTemplateGenerator()

	questionnaire, err := g.Generate(context.Background(), service.GenerateSpec{
		Goal:          "padding",
		QuestionCount: 10,
	})

	require.NoError(t, err)
	require.Len(t, questionnaire.Questions, 10)

	// Everything past the template set is a short-text filler.
	for _, q := range questionnaire.Questions[len(fallbackTemplates):] {
		assert.Equal(t, entity.QuestionShortText, q.Type)
		assert.Equal(t, fallbackFillerText, q.Text)
		assert.False(t, q.Required)
	}
}
