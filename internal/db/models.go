package db

import "time"

// Attempt is one answered quiz question
type Attempt struct {
	ID         int       `json:"id"`
	Word       string    `json:"word"`
	Answer     string    `json:"answer"`
	Correct    bool      `json:"correct"`
	ScoreAfter int       `json:"score_after"`
	CreatedAt  time.Time `json:"created_at"`
}

// WordStats aggregates the attempts made on a single word
type WordStats struct {
	Word     string `json:"word"`
	Attempts int    `json:"attempts"`
	Correct  int    `json:"correct"`
}

// Accuracy returns the share of correct answers, 0 when never attempted
func (s WordStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}
