package main

import (
	"context"
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"polybot/internal/config"
	"polybot/internal/logger"
	"polybot/internal/service"
	"polybot/internal/tui"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to YAML config file")
	flag.Parse()

	if _, err := logger.Init(""); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "embedding references")
		}
		_ = bar.Add(1)
	}

	bot, err := service.Shared(context.Background(), cfg, progress)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}

	m := tui.New(bot.Service, bot.Summary)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
