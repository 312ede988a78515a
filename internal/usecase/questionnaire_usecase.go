package usecase

import (
	"context"

	"survey/internal/domain/entity"
)

// GenerateInput carries the questionnaire generation request. An omitted
// question_count defaults to 8; an explicit out-of-range value (0 included)
// is a validation error, so the count is a pointer to keep the two apart.
type GenerateInput struct {
	Goal          string `json:"goal" validate:"required"`
	Audience      string `json:"audience"`
	QuestionCount *int   `json:"question_count" validate:"omitempty,min=3,max=20"`
	Tone          string `json:"tone"`
	Language      string `json:"language"`
}

// ApplyDefaults fills unset fields with the documented defaults.
func (in *GenerateInput) ApplyDefaults() {
	if in.QuestionCount == nil {
		count := 8
		in.QuestionCount = &count
	}
	if in.Tone == "" {
		in.Tone = "neutral"
	}
	if in.Language == "" {
		in.Language = "zh"
	}
}

// QuestionnaireUsecase produces questionnaires, preferring the LLM
// backend and falling back to templates when it is absent or fails.
type QuestionnaireUsecase interface {
	Generate(ctx context.Context, input *GenerateInput) (*entity.Questionnaire, error)
}
