package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mail-assistant/internal/app"
	"github.com/nhle/mail-assistant/internal/model"
	"github.com/nhle/mail-assistant/internal/store"
)

func main() {
	cfgPath := model.DefaultConfigPath()
	if env := os.Getenv("MAILASSISTANT_CONFIG"); env != "" {
		cfgPath = env
	}

	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening profile store: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	p := tea.NewProgram(app.New(cfg, cfgPath, s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
