// Command booking-kiosk is the terminal booking client. It talks to the
// booking service over HTTP.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"allweather.app/internal/adapters/client"
	"allweather.app/internal/adapters/infrastructure"
	"allweather.app/internal/adapters/preferences"
	"allweather.app/internal/adapters/tui"
	"allweather.app/internal/config"
	"allweather.app/internal/core/scheduler"
	"allweather.app/internal/i18n"
	"allweather.app/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "booking-kiosk:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.LoadKioskConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logFile, err := tea.LogToFile(cfg.LogPath, "kiosk")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log := infrastructure.NewSlogLoggerAdapter(logger.NewWithWriter(logFile, logger.ParseLevel(os.Getenv("LOG_LEVEL"))))

	store := preferences.NewStore(cfg.PreferencesPath)
	if err := store.Load(); err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	api, err := client.NewBookingAPIClient(client.BookingAPIClientParams{
		BaseURL: cfg.APIURL,
		Client:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		Logger:  log,
	})
	if err != nil {
		return fmt.Errorf("create API client: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	location := cfg.Location()
	model, err := tui.NewModel(tui.Config{
		Context: ctx,
		NewViewModel: func(locale i18n.Locale, onChange func()) (*scheduler.ViewModel, error) {
			return scheduler.New(ctx, scheduler.Dependencies{
				Source:    api,
				Submitter: api,
				Logger:    log,
				Locale:    locale,
				Location:  location,
				OnChange:  onChange,
			})
		},
		Preferences: store,
		Current:     api,
	})
	if err != nil {
		return fmt.Errorf("create kiosk: %w", err)
	}

	log.Info("Kiosk starting")
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run kiosk: %w", err)
	}
	return nil
}
