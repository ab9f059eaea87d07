package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabmaster/vocabmaster/internal/core"
	"github.com/vocabmaster/vocabmaster/internal/db"
	"github.com/vocabmaster/vocabmaster/internal/vocab"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			setupLogger(tt.debugMode, &buf)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(context.Background(), slog.LevelDebug))

			slog.Info("hello")
			assert.Contains(t, buf.String(), "msg=hello")
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "vocabmaster", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"quiz", "chart", "list", "add", "reset", "import", "history", "export-history"} {
		assert.Contains(t, names, want)
	}
}

func TestSubcommandFlags(t *testing.T) {
	assert.NotNil(t, newResetCommand().Flags().Lookup("yes"))
	assert.NotNil(t, newAddCommand().Flags().Lookup("suggest"))
	assert.NotNil(t, newHistoryCommand().Flags().Lookup("limit"))
	assert.NotNil(t, newChartCommand().Flags().Lookup("width"))
}

// testEnv points the CLI at a config file whose data lives in a temp dir
type testEnv struct {
	dir        string
	configPath string
	dataFile   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("ANTHROPIC_API_KEY", "")
	color.NoColor = true

	dir := t.TempDir()
	env := &testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.yaml"),
		dataFile:   filepath.Join(dir, "vocab_data.json"),
	}
	content := strings.Join([]string{
		"data_file: " + env.dataFile,
		"history_file: " + filepath.Join(dir, "vocab_history.db"),
		"log_file: " + filepath.Join(dir, "vocabmaster.log"),
		"quiz:",
		"  size: 5",
	}, "\n")
	require.NoError(t, os.WriteFile(env.configPath, []byte(content), 0600))
	return env
}

func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e *testEnv) writeVocabulary(t *testing.T, v vocab.Vocabulary) {
	t.Helper()
	require.NoError(t, db.NewFileStore(e.dataFile).Save(v))
}

func (e *testEnv) readVocabulary(t *testing.T) vocab.Vocabulary {
	t.Helper()
	v, err := db.NewFileStore(e.dataFile).Load()
	require.NoError(t, err)
	return v
}

func TestAddAndListCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "add", "  Tree ", "BAUM")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 'Tree' → 'BAUM'")

	v := env.readVocabulary(t)
	assert.Equal(t, vocab.Entry{Translation: "baum", Score: 0}, v["tree"])
	assert.Len(t, v, 11)

	out, err = env.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "tree")
	assert.Contains(t, out, "baum")
	assert.Contains(t, out, "Words: 11")
}

func TestAddCommandRequiresTranslation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "add", "tree")
	require.Error(t, err)
	assert.ErrorIs(t, err, vocab.ErrEmptyField)

	_, err = env.run(t, "", "add", "tree", "--suggest")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNoTranslator)
}

func TestResetCommand(t *testing.T) {
	env := newTestEnv(t)
	env.writeVocabulary(t, vocab.Vocabulary{"tree": {Translation: "baum", Score: 3}})

	out, err := env.run(t, "n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset all vocabulary data? [y/N]")
	assert.NotContains(t, out, "All data has been reset!")
	assert.Contains(t, env.readVocabulary(t), "tree")

	out, err = env.run(t, "", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "All data has been reset!")
	assert.Equal(t, vocab.Initial(), env.readVocabulary(t))
}

func TestChartCommand(t *testing.T) {
	env := newTestEnv(t)
	env.writeVocabulary(t, vocab.Vocabulary{"tree": {Translation: "baum", Score: 5}})

	out, err := env.run(t, "", "chart", "--width", "40")
	require.NoError(t, err)
	assert.Contains(t, out, "Vocabulary Mastery Progress (German)")
	assert.Contains(t, out, "tree")

	env.writeVocabulary(t, vocab.Vocabulary{})
	out, err = env.run(t, "", "chart")
	require.NoError(t, err)
	assert.Contains(t, out, "No data to display.")
}

func TestImportCommand(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("tree = baum\ndog = köter\n"), 0600))

	out, err := env.run(t, "", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "New words added: 1")
	assert.Contains(t, out, "Existing words skipped: 1")
	assert.Contains(t, out, "Total processed: 2")

	v := env.readVocabulary(t)
	assert.Equal(t, "baum", v["tree"].Translation)
	assert.Equal(t, "hund", v["dog"].Translation)

	_, err = env.run(t, "", "import", filepath.Join(env.dir, "missing.txt"))
	assert.Error(t, err)
}

func TestQuizHistoryAndExportCommands(t *testing.T) {
	env := newTestEnv(t)
	env.writeVocabulary(t, vocab.Vocabulary{"dog": {Translation: "hund", Score: 2}})

	out, err := env.run(t, "y\nHund\n", "quiz")
	require.NoError(t, err)
	assert.Contains(t, out, "Today's quiz will include these words:")
	assert.Contains(t, out, "• dog → hund")
	assert.Contains(t, out, "What is the German word for 'dog'?")
	assert.Contains(t, out, "✅ Correct! 'dog' → 'hund'")
	assert.Contains(t, out, "You got 1/1 correct!")
	assert.Equal(t, 3, env.readVocabulary(t)["dog"].Score)

	out, err = env.run(t, "", "history", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "dog → Hund (score 3)")
	assert.Contains(t, out, "dog: 1/1 (100%)")

	exportPath := filepath.Join(env.dir, "history.json")
	out, err = env.run(t, "", "export-history", exportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "History exported to")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	var attempts []db.Attempt
	require.NoError(t, json.Unmarshal(data, &attempts))
	require.Len(t, attempts, 1)
	assert.Equal(t, "dog", attempts[0].Word)
	assert.True(t, attempts[0].Correct)
}

func TestHistoryCommandEmpty(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No answers recorded yet.")
}

func newQuizTrainer(t *testing.T, v vocab.Vocabulary) (*core.Trainer, *db.FileStore) {
	t.Helper()
	store := db.NewFileStore(filepath.Join(t.TempDir(), "vocab_data.json"))
	require.NoError(t, store.Save(v))
	database, err := db.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	trainer := core.NewTrainer(store, database, nil, vocab.NewSelector(rand.NewPCG(1, 2)), vocab.DefaultQuizSize)
	_, err = trainer.Load()
	require.NoError(t, err)
	return trainer, store
}

func TestRunQuiz(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name      string
		input     string
		preview   bool
		wantOut   []string
		wantScore int
	}{
		{
			name:      "wrong answer lowers the score",
			input:     "katze\n",
			wantOut:   []string{"❌ Wrong! Correct: 'hund'", "You got 0/1 correct!"},
			wantScore: 1,
		},
		{
			name:      "declined preview",
			input:     "n\n",
			preview:   true,
			wantOut:   []string{"Start quiz? [y/N]"},
			wantScore: 2,
		},
		{
			name:      "end of input stops the quiz",
			input:     "",
			wantOut:   []string{"You got 0/1 correct!"},
			wantScore: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trainer, store := newQuizTrainer(t, vocab.Vocabulary{"dog": {Translation: "hund", Score: 2}})

			var out bytes.Buffer
			require.NoError(t, runQuiz(trainer, strings.NewReader(tt.input), &out, tt.preview))
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}

			v, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, v["dog"].Score)
		})
	}
}

func TestRunQuizEmptyVocabulary(t *testing.T) {
	trainer, _ := newQuizTrainer(t, vocab.Vocabulary{})

	var out bytes.Buffer
	require.NoError(t, runQuiz(trainer, strings.NewReader(""), &out, true))
	assert.Equal(t, "No vocabulary available. Add words first.\n", out.String())
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" y ", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			got, err := confirm(bufio.NewReader(strings.NewReader(tt.input)), &out, "Continue?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Continue? [y/N] ", out.String())
		})
	}
}
