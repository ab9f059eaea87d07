package vocab

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// MinScore is the lowest mastery score a word can have
	MinScore = 0
	// MaxScore is the highest mastery score a word can have
	MaxScore = 5
	// DefaultQuizSize is the number of draws made when building a quiz
	DefaultQuizSize = 5
)

// ErrEmptyField is returned when a word or its translation is blank
var ErrEmptyField = errors.New("both fields required")

// Entry is the translation of a word together with its mastery score.
// It is stored on disk as a two element array: ["translation", score].
type Entry struct {
	Translation string
	Score       int
}

// MarshalJSON encodes the entry as [translation, score]
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Translation, e.Score})
}

// UnmarshalJSON decodes an entry from [translation, score]
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("entry must be an array: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("entry must have 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Translation); err != nil {
		return fmt.Errorf("invalid translation: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.Score); err != nil {
		return fmt.Errorf("invalid score: %w", err)
	}
	return nil
}

// Vocabulary maps a lowercase English word to its German entry
type Vocabulary map[string]Entry

// Initial returns a fresh copy of the default word set
func Initial() Vocabulary {
	return Vocabulary{
		"hello":     {Translation: "hallo"},
		"goodbye":   {Translation: "auf wiedersehen"},
		"thank you": {Translation: "danke"},
		"please":    {Translation: "bitte"},
		"water":     {Translation: "wasser"},
		"house":     {Translation: "haus"},
		"dog":       {Translation: "hund"},
		"cat":       {Translation: "katze"},
		"book":      {Translation: "buch"},
		"pen":       {Translation: "stift"},
	}
}

// Clone returns an independent copy of the vocabulary
func (v Vocabulary) Clone() Vocabulary {
	out := make(Vocabulary, len(v))
	for word, entry := range v {
		out[word] = entry
	}
	return out
}

// Words returns all words in alphabetical order
func (v Vocabulary) Words() []string {
	words := make([]string, 0, len(v))
	for word := range v {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// Lookup returns the entry for a word
func (v Vocabulary) Lookup(word string) (Entry, bool) {
	entry, ok := v[normalize(word)]
	return entry, ok
}

// Add inserts or replaces a word with a zero score
func (v Vocabulary) Add(english, german string) error {
	english = normalize(english)
	german = normalize(german)
	if english == "" || german == "" {
		return ErrEmptyField
	}
	v[english] = Entry{Translation: german, Score: MinScore}
	return nil
}

// UpdateMastery moves the score of word one step up or down within [MinScore, MaxScore].
// It reports false when the word is unknown.
func (v Vocabulary) UpdateMastery(word string, correct bool) bool {
	entry, ok := v[word]
	if !ok {
		return false
	}
	if correct {
		entry.Score = min(entry.Score+1, MaxScore)
	} else {
		entry.Score = max(entry.Score-1, MinScore)
	}
	v[word] = entry
	return true
}

// Clamp lowercases keys and translations and forces scores into range.
// Loaded files may have been edited by hand.
func (v Vocabulary) Clamp() {
	for word, entry := range v {
		entry.Score = max(MinScore, min(entry.Score, MaxScore))
		entry.Translation = normalize(entry.Translation)
		key := normalize(word)
		if key != word {
			delete(v, word)
		}
		if key == "" {
			continue
		}
		v[key] = entry
	}
}

// MaxCurrentScore returns the highest score present, or MinScore when empty
func (v Vocabulary) MaxCurrentScore() int {
	highest := MinScore
	for _, entry := range v {
		highest = max(highest, entry.Score)
	}
	return highest
}

// Summary describes the overall progress of a vocabulary
type Summary struct {
	Total    int
	Mastered int
	Average  float64
	PerScore [MaxScore + 1]int
}

// Summary counts words per score level
func (v Vocabulary) Summary() Summary {
	var s Summary
	sum := 0
	for _, entry := range v {
		score := max(MinScore, min(entry.Score, MaxScore))
		s.Total++
		s.PerScore[score]++
		sum += score
		if score == MaxScore {
			s.Mastered++
		}
	}
	if s.Total > 0 {
		s.Average = float64(sum) / float64(s.Total)
	}
	return s
}

// CheckAnswer compares an answer with the expected translation, ignoring case and surrounding space
func CheckAnswer(answer, expected string) bool {
	return normalize(answer) == normalize(expected)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
