package session

import (
	"math/rand/v2"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// GenerateQueue turns a question pool plus progress into an ordered list
// of question IDs to present. Questions whose progress is mastered are
// dropped unless includeMastered is set; an empty filtered pool yields an
// empty queue ("all caught up").
//
// ModeRandom applies an unbiased Fisher-Yates shuffle using rng.
// ModeTopicOrder preserves the input order exactly; the caller supplies
// questions pre-ordered by topic and position.
func GenerateQueue(
	questions []quiz.Question,
	progress map[string]*quiz.QuestionProgress,
	mode Mode,
	includeMastered bool,
	rng *rand.Rand,
) []string {
	pool := make([]string, 0, len(questions))
	for _, q := range questions {
		if !includeMastered {
			if qp := progress[q.ID]; qp != nil && qp.Mastered {
				continue
			}
		}
		pool = append(pool, q.ID)
	}

	if len(pool) == 0 {
		return nil
	}

	if mode == ModeRandom {
		shuffle(pool, rng)
	}

	return pool
}

// shuffle performs an in-place Fisher-Yates shuffle.
func shuffle(ids []string, rng *rand.Rand) {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(ids) - 1; i > 0; i-- {
		j := intN(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}
