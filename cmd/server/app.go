package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/classplay/classplay-api/internal/config"
	"github.com/classplay/classplay-api/internal/generation"
	"github.com/classplay/classplay-api/internal/generation/prompt"
	"github.com/classplay/classplay-api/internal/generation/storybook"
	"github.com/classplay/classplay-api/internal/platform/gemini"
	"github.com/classplay/classplay-api/internal/platform/openai"
	"github.com/classplay/classplay-api/internal/platform/postgres"
	"github.com/classplay/classplay-api/internal/service"
	"github.com/classplay/classplay-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService auth.JWTService

	authService       *service.AuthService
	classService      *service.ClassService
	resourceService   *service.ResourceService
	generationService *service.GenerationService
	adminService      *service.AdminService
}

// newApplication wires stores, model clients and services. A missing model
// credential does not fail startup: generation endpoints answer 503 instead.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	users := postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger)
	classes := postgres.NewPostgresClassStore(db, logger)
	resources := postgres.NewPostgresResourceStore(db, logger)
	usage := postgres.NewPostgresUsageStore(db, logger)

	engine, pipeline, err := newGenerators(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}

	app.authService = service.NewAuthService(users, app.jwtService, auth.NewBcryptVerifier(), logger)
	app.classService = service.NewClassService(classes, logger)
	app.resourceService = service.NewResourceService(resources, logger)
	app.generationService = service.NewGenerationService(engine, pipeline, app.classService, usage, logger)
	app.adminService = service.NewAdminService(db, service.AdminStores{
		Users:         users,
		Usage:         usage,
		Organizations: postgres.NewPostgresOrganizationStore(db, logger),
		Payments:      postgres.NewPostgresPaymentStore(db, logger),
		Audit:         postgres.NewPostgresAuditStore(db, logger),
	}, logger)

	if !app.generationService.Configured() {
		logger.Warn("content generation is not fully configured; affected endpoints will answer 503",
			"provider", cfg.LLM.Provider,
			"text_configured", engine.Configured(),
			"storybook_configured", pipeline.Configured())
	}

	logger.Info("application initialized")
	return app, nil
}

// newGenerators builds the single-call engine and the storybook pipeline.
// The engine talks to the configured provider; storybooks always use Gemini
// because they need image output.
func newGenerators(
	ctx context.Context,
	cfg config.LLMConfig,
	logger *slog.Logger,
) (*generation.Engine, *storybook.Pipeline, error) {
	var geminiText generation.TextGenerator
	var geminiImages generation.ImageGenerator

	geminiClient, err := gemini.NewClient(ctx, cfg, logger)
	switch {
	case err == nil:
		geminiText, geminiImages = geminiClient, geminiClient
	case errors.Is(err, generation.ErrNotConfigured):
		logger.Warn("Gemini API key is not set")
	default:
		return nil, nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	engineText := geminiText
	if cfg.Provider == "openai" {
		engineText = nil

		openaiClient, err := openai.NewClient(cfg, logger)
		switch {
		case err == nil:
			engineText = openaiClient
		case errors.Is(err, generation.ErrNotConfigured):
			logger.Warn("OpenAI API key is not set")
		default:
			return nil, nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
	}

	engine := generation.NewEngine(engineText, prompt.Builder{}, engineSettings(cfg), logger)

	pipeline := storybook.New(geminiText, geminiImages, prompt.Builder{}, storybook.Settings{
		Model:           cfg.TextModel,
		Temperature:     cfg.StoryTemperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
		ImageModels:     cfg.ImageModels,
		Concurrency:     cfg.IllustrationConcurrency,
	}, logger)

	return engine, pipeline, nil
}

// engineSettings returns the model parameters of the single-call engine
// for the configured provider.
func engineSettings(cfg config.LLMConfig) generation.Settings {
	model, maxOutputTokens := cfg.EngineModel()
	return generation.Settings{
		Model:           model,
		Temperature:     cfg.Temperature,
		MaxOutputTokens: maxOutputTokens,
	}
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
