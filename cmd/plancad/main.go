package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/plancad/internal/cli"
	"github.com/alexanderramin/plancad/internal/command"
	"github.com/alexanderramin/plancad/internal/config"
	"github.com/alexanderramin/plancad/internal/db"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/intelligence"
	"github.com/alexanderramin/plancad/internal/llm"
	"github.com/alexanderramin/plancad/internal/logger"
	"github.com/alexanderramin/plancad/internal/repository"
	"github.com/alexanderramin/plancad/internal/script"
	"github.com/alexanderramin/plancad/internal/service"
)

func main() {
	if err := run(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	if err := config.Load(); err != nil {
		return err
	}
	cfg := config.C()

	if err := logger.Init(cfg.Logger.Level(), cfg.Logger.AsJSON()); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenDB(cfg.Storage.Path())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	drawingRepo := repository.NewSQLiteDrawingRepo(database)
	runRepo := repository.NewSQLiteScriptRunRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire the script runner
	validator, err := command.NewValidator()
	if err != nil {
		return fmt.Errorf("loading command schemas: %w", err)
	}
	interp := script.NewStarlark(validator)
	interp.Timeout = cfg.Script.Timeout()
	interp.MaxSteps = cfg.Script.MaxSteps()
	runner := script.NewRunnerWith(interp, validator)

	units, ok := domain.ParseUnits(cfg.Script.DefaultUnits())
	if !ok {
		return fmt.Errorf("invalid default units %q", cfg.Script.DefaultUnits())
	}

	// Wire services
	observer := service.NewLogUseCaseObserver(logger.L())
	locks := service.NewDrawingLocks()

	app := &cli.App{
		Scripts:  service.NewScriptService(runner, drawingRepo, runRepo, uow, locks, units, observer),
		Drawings: service.NewDrawingService(drawingRepo, locks, units, observer),
		Catalog:  service.NewCatalogService(),
		Server:   cfg.Server,
	}

	// Detect interactive terminal for prompts, forms and the editor.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Wire script drafting (only when LLM is enabled)
	if cfg.LLM.Enabled {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			llmObserver = llm.NewLogObserver(logger.L())
		}
		client := llm.NewOllamaClient(cfg.LLM, llmObserver)
		logger.Debug(ctx, "script drafting enabled",
			logger.String("endpoint", cfg.LLM.Endpoint),
			logger.String("model", cfg.LLM.Model))
		drafter := intelligence.NewScriptDraftService(client, runner, cfg.LLM.RepairAttempts)
		app.Drafts = service.NewDraftService(drafter, drawingRepo, observer)
	}

	// Execute root command
	return cli.NewRootCmd(app).Execute()
}
