package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"survey/internal/domain/entity"
	"survey/internal/domain/service"
	"survey/internal/usecase"
)

// questionnaireService implements the QuestionnaireUsecase interface. The
// LLM backend is optional; the template fallback always succeeds.
type questionnaireService struct {
	llm      service.QuestionnaireGenerator // nil when no API key is configured
	fallback service.QuestionnaireGenerator
	logger   *slog.Logger
}

// QuestionnaireServiceParams holds dependencies for questionnaireService,
// injected by Fx.
type QuestionnaireServiceParams struct {
	fx.In

	LLM      service.QuestionnaireGenerator `name:"llm" optional:"true"`
	Fallback service.QuestionnaireGenerator `name:"fallback"`
	Logger   *slog.Logger
}

// NewQuestionnaireService is the constructor for questionnaireService.
func NewQuestionnaireService(params QuestionnaireServiceParams) usecase.QuestionnaireUsecase {
	return &questionnaireService{
		llm:      params.LLM,
		fallback: params.Fallback,
		logger:   params.Logger,
	}
}

// Generate prefers the LLM backend and falls back to templates when it is
// missing or fails. The caller always gets a questionnaire.
func (srv *questionnaireService) Generate(ctx context.Context, input *usecase.GenerateInput) (*entity.Questionnaire, error) {
	input.ApplyDefaults()

	spec := service.GenerateSpec{
		Goal:          input.Goal,
		Audience:      input.Audience,
		QuestionCount: *input.QuestionCount,
		Tone:          input.Tone,
		Language:      input.Language,
	}

	if srv.llm == nil {
		srv.logger.Info("no LLM backend configured, using template generation")

		return autoRequired(mustGenerate(ctx, srv.fallback, spec)), nil
	}

	questionnaire, err := srv.llm.Generate(ctx, spec)
	if err != nil {
		srv.logger.Error("LLM generation failed, falling back to templates",
			slog.Any("error", err))

		return autoRequired(mustGenerate(ctx, srv.fallback, spec)), nil
	}

	return autoRequired(questionnaire), nil
}

// mustGenerate runs the template fallback, which cannot fail.
func mustGenerate(ctx context.Context, g service.QuestionnaireGenerator, spec service.GenerateSpec) *entity.Questionnaire {
	questionnaire, _ := g.Generate(ctx, spec)

	return questionnaire
}

// autoRequired ensures at least one question is required: if none are,
// single-choice and rating questions become required; if that still marks
// nothing and questions exist, the first one does.
func autoRequired(questionnaire *entity.Questionnaire) *entity.Questionnaire {
	for _, q := range questionnaire.Questions {
		if q.Required {
			return questionnaire
		}
	}

	marked := false
	for i := range questionnaire.Questions {
		t := questionnaire.Questions[i].Type
		if t == entity.QuestionSingleChoice || t == entity.QuestionRating {
			questionnaire.Questions[i].Required = true
			marked = true
		}
	}

	if !marked && len(questionnaire.Questions) > 0 {
		questionnaire.Questions[0].Required = true
	}

	return questionnaire
}
