package core

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/vocabmaster/vocabmaster/internal/db"
	"github.com/vocabmaster/vocabmaster/internal/vocab"
)

// ErrQuizFinished is returned when answering a quiz with no question left
var ErrQuizFinished = errors.New("quiz is finished")

// Quiz is one round of questions drawn from the vocabulary
type Quiz struct {
	trainer *Trainer
	words   []string
	pos     int
	correct int
	aborted bool
}

// PreviewItem is a word shown before the quiz starts
type PreviewItem struct {
	Word        string
	Translation string
}

// AnswerResult describes the outcome of one answer
type AnswerResult struct {
	Word     string
	Expected string
	Given    string
	Correct  bool
	Score    int
}

// QuizResult summarises a finished quiz
type QuizResult struct {
	Correct  int
	Total    int
	Answered int
	Aborted  bool
}

// String formats the result the way it is shown to the user
func (r QuizResult) String() string {
	return fmt.Sprintf("You got %d/%d correct!", r.Correct, r.Total)
}

// StartQuiz draws the words of a new quiz
func (t *Trainer) StartQuiz() (*Quiz, error) {
	if len(t.vocabulary) == 0 {
		return nil, ErrNoVocabulary
	}

	words := t.Selector.QuizWords(t.vocabulary, t.QuizSize)
	slog.Debug("quiz started", "words", words)
	return &Quiz{trainer: t, words: words}, nil
}

// Words returns the words of the quiz in question order
func (q *Quiz) Words() []string {
	return append([]string(nil), q.words...)
}

// Preview lists the quiz words with their translations
func (q *Quiz) Preview() []PreviewItem {
	items := make([]PreviewItem, 0, len(q.words))
	for _, word := range q.words {
		entry, _ := q.trainer.vocabulary.Lookup(word)
		items = append(items, PreviewItem{Word: word, Translation: entry.Translation})
	}
	return items
}

// Current returns the word being asked. Words removed from the vocabulary since the quiz started
// are skipped.
func (q *Quiz) Current() (string, bool) {
	for !q.Done() {
		word := q.words[q.pos]
		if _, ok := q.trainer.vocabulary.Lookup(word); ok {
			return word, true
		}
		q.pos++
	}
	return "", false
}

// Number returns the 1-based position of the current question
func (q *Quiz) Number() int {
	return q.pos + 1
}

// Len returns the number of questions
func (q *Quiz) Len() int {
	return len(q.words)
}

// Answer checks the answer to the current question, updates the mastery score and flushes.
// The returned result is valid even when the flush fails.
func (q *Quiz) Answer(answer string) (AnswerResult, error) {
	word, ok := q.Current()
	if !ok {
		return AnswerResult{}, ErrQuizFinished
	}
	q.pos++

	entry, _ := q.trainer.vocabulary.Lookup(word)
	correct := vocab.CheckAnswer(answer, entry.Translation)
	if correct {
		q.correct++
	}
	q.trainer.vocabulary.UpdateMastery(word, correct)
	updated, _ := q.trainer.vocabulary.Lookup(word)

	result := AnswerResult{
		Word:     word,
		Expected: entry.Translation,
		Given:    answer,
		Correct:  correct,
		Score:    updated.Score,
	}

	q.trainer.recordAttempt(&db.Attempt{
		Word:       word,
		Answer:     answer,
		Correct:    correct,
		ScoreAfter: updated.Score,
	})

	return result, q.trainer.Flush()
}

// Abort ends the quiz before all questions are answered
func (q *Quiz) Abort() {
	q.aborted = true
}

// Done reports whether no question is left
func (q *Quiz) Done() bool {
	return q.aborted || q.pos >= len(q.words)
}

// Result returns the score so far. Total is always the number of drawn words.
func (q *Quiz) Result() QuizResult {
	return QuizResult{
		Correct:  q.correct,
		Total:    len(q.words),
		Answered: min(q.pos, len(q.words)),
		Aborted:  q.aborted,
	}
}

// Finish flushes the vocabulary once more and returns the result
func (q *Quiz) Finish() (QuizResult, error) {
	result := q.Result()
	slog.Info("quiz finished", "correct", result.Correct, "total", result.Total, "aborted", result.Aborted)
	return result, q.trainer.Flush()
}
