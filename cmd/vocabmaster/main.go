package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/vocabmaster/vocabmaster/internal/ai"
	"github.com/vocabmaster/vocabmaster/internal/config"
	"github.com/vocabmaster/vocabmaster/internal/core"
	"github.com/vocabmaster/vocabmaster/internal/db"
	"github.com/vocabmaster/vocabmaster/internal/vocab"
)

var (
	configFile string
	debugMode  bool
)

func main() {
	rootCommand := newRootCommand()
	if err := rootCommand.Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "vocabmaster",
		Short:         "English to German vocabulary trainer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(true, func(a *app) error {
				p := tea.NewProgram(newModel(a.trainer, a.warning, a.cfg.AI.Enabled()), tea.WithAltScreen())
				_, err := p.Run()
				return err
			})
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCommand.AddCommand(
		newQuizCommand(),
		newChartCommand(),
		newListCommand(),
		newAddCommand(),
		newResetCommand(),
		newImportCommand(),
		newHistoryCommand(),
		newExportHistoryCommand(),
	)
	return rootCommand
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool, w io.Writer) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: debugMode,
		})),
	)
}

// app holds everything a command needs, wired from the configuration
type app struct {
	cfg      *config.Config
	trainer  *core.Trainer
	database *db.Database
	logFile  *os.File
	warning  string
}

// withApp loads the configuration, builds the app, runs fn and releases everything afterwards.
// The interactive shell owns the terminal, so its logs only go to the log file.
func withApp(interactive bool, fn func(a *app) error) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	a, err := newApp(cfg, interactive)
	if err != nil {
		return err
	}
	defer a.Close()

	if !interactive && a.warning != "" {
		fmt.Fprintln(os.Stderr, a.warning)
	}
	return fn(a)
}

func newApp(cfg *config.Config, interactive bool) (*app, error) {
	a := &app{cfg: cfg}

	var logOutput io.Writer = os.Stderr
	if interactive {
		logOutput = io.Discard
	}
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = logFile
		logOutput = logFile
	}
	setupLogger(debugMode, logOutput)

	database, err := db.NewDatabase(cfg.HistoryFile)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize history database: %w", err)
	}
	a.database = database

	var translator ai.Translator
	if cfg.AI.Enabled() {
		client, err := ai.NewClaudeClient(cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize AI client: %w", err)
		}
		translator = client
	}

	a.trainer = core.NewTrainer(db.NewFileStore(cfg.DataFile), database, translator, vocab.NewSelector(nil), cfg.Quiz.Size)
	a.warning, err = a.trainer.Load()
	if err != nil {
		a.Close()
		return nil, err
	}

	slog.Debug("app started", "data_file", cfg.DataFile, "history_file", cfg.HistoryFile, "ai", cfg.AI.Enabled())
	return a, nil
}

// Close flushes the vocabulary and releases the database and the log file
func (a *app) Close() error {
	var firstErr error
	if a.trainer != nil {
		if err := a.trainer.Flush(); err != nil {
			firstErr = err
		}
	}
	if a.database != nil {
		if err := a.database.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
