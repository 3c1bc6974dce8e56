package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/staffyhq/staffy-console/internal/client"
	"github.com/staffyhq/staffy-console/internal/config"
	"github.com/staffyhq/staffy-console/internal/controller"
	"github.com/staffyhq/staffy-console/internal/gateway"
	"github.com/staffyhq/staffy-console/internal/metrics"
	"github.com/staffyhq/staffy-console/internal/server"
	"github.com/staffyhq/staffy-console/internal/tui"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	var wgr sync.WaitGroup

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env)

	// Create a separate registry for application metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	httpClient := client.CreateHTTPClient(logger, cfg.API.Timeout)
	api := gateway.NewClient(logger, httpClient, appMetrics, cfg.API.BaseURL)

	// Controllers publish view models from their own goroutines; forward
	// each publication into the TUI event loop. The program pointer is set
	// before Run, and nothing publishes until a page is opened.
	var program *tea.Program

	controllers := tui.Controllers{
		Dashboard: controller.NewDashboardController(logger, api, appMetrics, func(v controller.DashboardView) {
			if program != nil {
				program.Send(tui.DashboardViewMsg(v))
			}
		}),
		Employees: controller.NewEmployeesController(logger, api, appMetrics, func(v controller.EmployeesView) {
			if program != nil {
				program.Send(tui.EmployeesViewMsg(v))
			}
		}),
		Attendance: controller.NewAttendanceController(logger, api, appMetrics, func(v controller.AttendanceView) {
			if program != nil {
				program.Send(tui.AttendanceViewMsg(v))
			}
		}),
	}

	wgr.Add(1)
	go func() {
		defer wgr.Done()
		server.StartMonitoringServer(ctx, logger, reg, cfg.Monitor.Port, cfg.API.BaseURL)
	}()

	app := tui.NewApp(ctx, controllers, tui.NewTheme(cfg.Theme))
	program = tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	logger.InfoContext(ctx, "Application started.", "api", cfg.API.BaseURL, "theme", cfg.Theme)

	if _, err := program.Run(); err != nil {
		log.Fatalf("Failed to run console: %v", err)
	}

	stop()
	wgr.Wait()

	logger.Info("Application stopped gracefully...")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: false,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
			}),
		)

		log.Error(
			"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
				" Please specify the value of `env`: local, development, production")
	}

	return log
}
