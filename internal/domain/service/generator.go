package service

import (
	"context"

	"survey/internal/domain/entity"
)

// GenerateSpec carries the normalized parameters for one generation call.
// Defaults are applied by the usecase before the spec reaches a generator.
type GenerateSpec struct {
	Goal          string
	Audience      string
	QuestionCount int
	Tone          string
	Language      string
}

// QuestionnaireGenerator produces a questionnaire for the given spec.
// Implementations: the OpenAI-backed generator and the deterministic
// template fallback.
type QuestionnaireGenerator interface {
	Generate(ctx context.Context, spec GenerateSpec) (*entity.Questionnaire, error)
}
