package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sweetshop/internal/api"
	"sweetshop/internal/config"
	"sweetshop/internal/logger"
	"sweetshop/internal/session"
	"sweetshop/internal/ui"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	apiURL     = flag.String("api-url", "", "API base URL (overrides config and environment)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}

	log := logger.New(logger.Config{File: cfg.LogFile, Level: cfg.LogLevel})
	defer log.Close()

	store, err := session.Open(cfg.SessionPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	sessions := session.NewManager(store)
	client := api.NewClient(cfg.APIURL, store, log)
	auth := api.NewAuthService(client, sessions)
	sweets := api.NewSweetService(client)

	log.Info().Str("api_url", cfg.APIURL).Msg("starting client")

	p := tea.NewProgram(ui.NewApp(sessions, auth, sweets))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
