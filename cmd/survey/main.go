package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"survey/config"
	"survey/internal/delivery"
	"survey/internal/delivery/http"
	"survey/internal/delivery/http/middleware"
	"survey/internal/delivery/http/router/handler"
	"survey/internal/domain/service"
	"survey/internal/infra/auth"
	"survey/internal/infra/generator"
	logs "survey/internal/infra/log"
	"survey/internal/infra/persistence/postgres"
	"survey/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewHasher,
			auth.NewJWTService,
			fx.Annotate(
				newLLMGenerator,
				fx.ResultTags(`name:"llm"`),
			),
			fx.Annotate(
				generator.NewTemplateGenerator,
				fx.ResultTags(`name:"fallback"`),
			),
		),
	)
}

// newLLMGenerator creates the OpenAI-backed generator. No API key means
// no LLM backend; generation then uses the template fallback only.
func newLLMGenerator(cfg *config.Config) service.QuestionnaireGenerator {
	if cfg.OpenAI == nil {
		return nil
	}

	return generator.NewOpenAIGenerator(generator.OpenAIConfig{
		APIKey:   cfg.OpenAI.APIKey,
		Model:    cfg.OpenAI.Model,
		Endpoint: cfg.OpenAI.Endpoint,
	})
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewQuestionnaireService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewGenerateHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, d := range params.Deliveries {
		go func() {
			if err := d.Serve(ctx); err != nil {
				slog.Error("failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
