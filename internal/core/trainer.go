package core

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vocabmaster/vocabmaster/internal/ai"
	"github.com/vocabmaster/vocabmaster/internal/db"
	"github.com/vocabmaster/vocabmaster/internal/parser"
	"github.com/vocabmaster/vocabmaster/internal/vocab"
)

var (
	// ErrNoVocabulary is returned when a quiz is requested for an empty vocabulary
	ErrNoVocabulary = errors.New("no vocabulary available, add words first")
	// ErrNoTranslator is returned when a suggestion is requested without an AI client
	ErrNoTranslator = errors.New("translation suggestions are not configured (set ANTHROPIC_API_KEY)")
	// ErrNoWordPairs is returned when an imported document contains no usable line
	ErrNoWordPairs = errors.New("no word pairs found")
)

// CorruptedDataWarning is shown when the data file could not be decoded
const CorruptedDataWarning = "Corrupted data file, starting fresh."

// Store loads and saves the whole vocabulary
type Store interface {
	Load() (vocab.Vocabulary, error)
	Save(v vocab.Vocabulary) error
}

// History records quiz answers
type History interface {
	InsertAttempt(attempt *db.Attempt) (int, error)
	ListAttempts(limit int) ([]*db.Attempt, error)
	WordStats() ([]db.WordStats, error)
	Clear() error
	ExportToJSON(filePath string) error
}

// Trainer owns the in-memory vocabulary and mirrors every mutation to the Store
type Trainer struct {
	Store    Store
	History  History
	AI       ai.Translator
	Selector *vocab.Selector
	QuizSize int

	vocabulary vocab.Vocabulary
}

// ImportResult contains the results of importing a word list
type ImportResult struct {
	NewWords        int
	SkippedExisting int
	TotalProcessed  int
	FilePath        string
}

// NewTrainer creates a Trainer. History and translator may be nil.
func NewTrainer(store Store, history History, translator ai.Translator, selector *vocab.Selector, quizSize int) *Trainer {
	if selector == nil {
		selector = vocab.NewSelector(nil)
	}
	if quizSize <= 0 {
		quizSize = vocab.DefaultQuizSize
	}
	return &Trainer{
		Store:      store,
		History:    history,
		AI:         translator,
		Selector:   selector,
		QuizSize:   quizSize,
		vocabulary: vocab.Vocabulary{},
	}
}

// Load reads the vocabulary from the store. A corrupted file is not an error: the default set is
// used and a warning for the user is returned instead.
func (t *Trainer) Load() (warning string, err error) {
	v, err := t.Store.Load()
	if errors.Is(err, db.ErrCorrupted) {
		slog.Warn("data file is corrupted, using the default vocabulary", "error", err)
		t.vocabulary = v
		return CorruptedDataWarning, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load vocabulary: %w", err)
	}

	t.vocabulary = v
	slog.Debug("vocabulary loaded", "words", len(v))
	return "", nil
}

// Vocabulary returns a copy of the current vocabulary
func (t *Trainer) Vocabulary() vocab.Vocabulary {
	return t.vocabulary.Clone()
}

// Flush writes the current vocabulary to the store
func (t *Trainer) Flush() error {
	if err := t.Store.Save(t.vocabulary); err != nil {
		slog.Error("failed to save vocabulary", "error", err)
		return err
	}
	return nil
}

// AddWord adds or replaces a word with a zero score and flushes
func (t *Trainer) AddWord(english, german string) error {
	if err := t.vocabulary.Add(english, german); err != nil {
		return err
	}
	slog.Info("word added", "word", strings.ToLower(strings.TrimSpace(english)))
	return t.Flush()
}

// SuggestTranslation asks the configured translator for a German translation
func (t *Trainer) SuggestTranslation(english string) (string, error) {
	if t.AI == nil {
		return "", ErrNoTranslator
	}
	if strings.TrimSpace(english) == "" {
		return "", vocab.ErrEmptyField
	}

	translation, err := t.AI.SuggestTranslation(english)
	if err != nil {
		return "", fmt.Errorf("failed to suggest translation: %w", err)
	}
	return translation, nil
}

// Reset replaces the vocabulary with the default set, clears the history and flushes
func (t *Trainer) Reset() error {
	t.vocabulary = vocab.Initial()
	if t.History != nil {
		if err := t.History.Clear(); err != nil {
			slog.Error("failed to clear history", "error", err)
		}
	}
	slog.Info("vocabulary reset")
	return t.Flush()
}

// Import adds the word pairs found in a .txt, .pdf or .docx file. Words already present are kept
// with their score.
func (t *Trainer) Import(filePath string) (*ImportResult, error) {
	if err := validateFilePath(filePath); err != nil {
		return nil, fmt.Errorf("invalid file path: %w", err)
	}

	if !isValidFileType(filePath) {
		return nil, fmt.Errorf("unsupported file type: %s (only .txt, .pdf and .docx are supported)", filepath.Ext(filePath))
	}

	text, err := parser.ExtractText(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	pairs := parser.ParseWordPairs(text)
	if len(pairs) == 0 {
		return nil, ErrNoWordPairs
	}

	newCount, skipCount := t.processPairs(pairs)
	slog.Info("word list imported", "file", filePath, "new", newCount, "skipped", skipCount)

	result := &ImportResult{
		NewWords:        newCount,
		SkippedExisting: skipCount,
		TotalProcessed:  newCount + skipCount,
		FilePath:        filePath,
	}
	if newCount == 0 {
		return result, nil
	}
	return result, t.Flush()
}

// processPairs inserts new words and counts the ones already known
func (t *Trainer) processPairs(pairs []parser.WordPair) (newCount, skipCount int) {
	for _, pair := range pairs {
		if _, exists := t.vocabulary.Lookup(pair.English); exists {
			skipCount++
			continue
		}
		if err := t.vocabulary.Add(pair.English, pair.German); err != nil {
			skipCount++
			continue
		}
		newCount++
	}
	return newCount, skipCount
}

// WordStats returns the per-word answer statistics, nil without a history
func (t *Trainer) WordStats() ([]db.WordStats, error) {
	if t.History == nil {
		return nil, nil
	}
	return t.History.WordStats()
}

// RecentAttempts returns the latest answers, newest first
func (t *Trainer) RecentAttempts(limit int) ([]*db.Attempt, error) {
	if t.History == nil {
		return nil, nil
	}
	return t.History.ListAttempts(limit)
}

// ExportHistory writes the answer history to a JSON file
func (t *Trainer) ExportHistory(filePath string) error {
	if t.History == nil {
		return fmt.Errorf("history is not available")
	}
	return t.History.ExportToJSON(filePath)
}

func (t *Trainer) recordAttempt(attempt *db.Attempt) {
	if t.History == nil {
		return
	}
	if _, err := t.History.InsertAttempt(attempt); err != nil {
		slog.Error("failed to record attempt", "word", attempt.Word, "error", err)
	}
}

// validateFilePath checks if a file path is valid, exists, and is a regular file
func validateFilePath(filePath string) error {
	if strings.TrimSpace(filePath) == "" {
		return fmt.Errorf("file path cannot be empty")
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("file does not exist: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file")
	}

	return nil
}

// isValidFileType checks if the file has a supported extension
func isValidFileType(filePath string) bool {
	return parser.DetectFileType(filePath) != parser.TypeUnknown
}
