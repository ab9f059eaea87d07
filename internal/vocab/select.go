package vocab

import (
	"math/rand/v2"
)

// Selector picks quiz words, favouring words with low mastery
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a Selector backed by the given random source.
// A nil source falls back to a randomly seeded one.
func NewSelector(src rand.Source) *Selector {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Selector{rng: rand.New(src)}
}

// Select draws one word. Each word weighs (highest score in the vocabulary - its score + 1),
// so a word always has a chance of being drawn and weaker words are drawn more often.
func (s *Selector) Select(v Vocabulary) (word, translation string, ok bool) {
	if len(v) == 0 {
		return "", "", false
	}

	words := v.Words()
	highest := v.MaxCurrentScore()

	total := 0
	for _, w := range words {
		total += weight(highest, v[w].Score)
	}

	pick := s.rng.IntN(total)
	for _, w := range words {
		pick -= weight(highest, v[w].Score)
		if pick < 0 {
			return w, v[w].Translation, true
		}
	}

	// unreachable while weights are positive
	last := words[len(words)-1]
	return last, v[last].Translation, true
}

// QuizWords draws n times and keeps every distinct word once, in the order first drawn
func (s *Selector) QuizWords(v Vocabulary, n int) []string {
	seen := make(map[string]bool, n)
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		word, _, ok := s.Select(v)
		if !ok {
			break
		}
		if seen[word] {
			continue
		}
		seen[word] = true
		words = append(words, word)
	}
	return words
}

func weight(highest, score int) int {
	return max(highest-score+1, 1)
}
