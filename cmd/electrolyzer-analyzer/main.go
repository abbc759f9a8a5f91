package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"electrolyzer-analyzer/internal/config"
	"electrolyzer-analyzer/internal/controllers"
	"electrolyzer-analyzer/internal/dataset"
	"electrolyzer-analyzer/internal/fs"
	"electrolyzer-analyzer/internal/logger"
	"electrolyzer-analyzer/internal/models"
	"electrolyzer-analyzer/internal/services"
	"electrolyzer-analyzer/internal/views"
)

const (
	AppName    = "Electrolyzer Data Analyzer"
	AppID      = "com.electrolysis.electrolyzer-analyzer"
	AppVersion = "1.0.0"

	WindowWidth  = 900
	WindowHeight = 700
)

// Application wires the configuration, session, services, controller, and
// view together and owns the window lifecycle.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	controller *controllers.MainController
	view       *views.MainView
	session    *models.SessionRepository

	cancel context.CancelFunc
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Configuration load failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application := NewApplication(ctx, cfg)
	setupGracefulShutdown(application, cancel)

	application.Run()
}

// NewApplication builds the application from the loaded configuration.
func NewApplication(ctx context.Context, cfg *config.Config) *Application {
	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	level := logger.ParseLevel(cfg.LogLevel)
	var appLogger logger.Logger
	if cfg.JSONLogs {
		appLogger = logger.NewJSON(level)
	} else {
		appLogger = logger.NewConsole(level)
	}

	appLogger.Info("Application", "starting application", map[string]interface{}{
		"version":          AppVersion,
		"default_data_dir": cfg.DefaultDataDir,
		"row_policy":       cfg.RowPolicy,
	})

	session := models.NewSessionRepository(cfg.DefaultDataDir)

	lister := fs.NewLister(appLogger)
	loader := dataset.NewLoader(appLogger, dataset.ParseRowPolicy(cfg.RowPolicy))
	datasetService := services.NewDatasetService(lister, loader, session, appLogger)
	analysisService := services.NewAnalysisService(session, cfg.StepThreshold, cfg.ActiveAreaCm2, appLogger)

	controller := controllers.NewMainController(datasetService, analysisService, session, appLogger)
	view := views.NewMainView(window, cfg.DefaultDataDir)
	controller.SetMainView(view)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		controller: controller,
		view:       view,
		session:    session,
	}

	window.SetCloseIntercept(func() {
		appLogger.Info("Application", "shutdown requested", nil)
		controller.Shutdown()
		window.Close()
	})

	appLogger.Info("Application", "initialization complete", nil)
	return application
}

// Run shows the main window and blocks until the application exits.
func (a *Application) Run() {
	a.view.Show()
	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()
	a.logger.Info("Application", "terminated", nil)
}

// setupGracefulShutdown closes the window cleanly on SIGINT/SIGTERM.
func setupGracefulShutdown(application *Application, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-sigChan
		application.logger.Info("Application", "system signal received", map[string]interface{}{
			"signal": sig.String(),
		})
		cancel()
		application.controller.Shutdown()
		fyne.Do(func() {
			application.window.Close()
		})
	}()
}
