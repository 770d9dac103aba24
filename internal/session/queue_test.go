package session

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/abhisek/quizdeck/internal/quiz"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func pool(ids ...string) []quiz.Question {
	qs := make([]quiz.Question, len(ids))
	for i, id := range ids {
		qs[i] = quiz.Question{ID: id, Type: quiz.TypeTrueFalse}
	}
	return qs
}

func TestGenerateQueue_TopicOrderPreservesInput(t *testing.T) {
	qs := pool("a", "b", "c", "d")

	got := GenerateQueue(qs, nil, ModeTopicOrder, false, testRand(1))

	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("queue length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("queue[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGenerateQueue_FiltersMastered(t *testing.T) {
	qs := pool("a", "b", "c")
	progress := map[string]*quiz.QuestionProgress{
		"b": {ID: "b", Mastered: true},
	}

	got := GenerateQueue(qs, progress, ModeTopicOrder, false, testRand(1))

	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("queue = %v, want [a c]", got)
	}
}

func TestGenerateQueue_IncludeMasteredKeepsAll(t *testing.T) {
	qs := pool("a", "b")
	progress := map[string]*quiz.QuestionProgress{
		"a": {ID: "a", Mastered: true},
		"b": {ID: "b", Mastered: true},
	}

	got := GenerateQueue(qs, progress, ModeTopicOrder, true, testRand(1))
	if len(got) != 2 {
		t.Errorf("queue length = %d, want 2", len(got))
	}
}

func TestGenerateQueue_AllMasteredYieldsEmpty(t *testing.T) {
	qs := pool("a", "b")
	progress := map[string]*quiz.QuestionProgress{
		"a": {ID: "a", Mastered: true},
		"b": {ID: "b", Mastered: true},
	}

	if got := GenerateQueue(qs, progress, ModeRandom, false, testRand(1)); len(got) != 0 {
		t.Errorf("queue = %v, want empty", got)
	}
}

func TestGenerateQueue_RandomIsPermutation(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	qs := pool(ids...)

	got := GenerateQueue(qs, nil, ModeRandom, false, testRand(42))

	if len(got) != len(ids) {
		t.Fatalf("queue length = %d, want %d", len(got), len(ids))
	}
	sorted := append([]string(nil), got...)
	sort.Strings(sorted)
	for i, id := range ids {
		if sorted[i] != id {
			t.Fatalf("queue is not a permutation of the pool: %v", got)
		}
	}
}

func TestGenerateQueue_NoForeignIDs(t *testing.T) {
	qs := pool("a", "b", "c")
	members := map[string]bool{"a": true, "b": true, "c": true}

	for seed := uint64(0); seed < 20; seed++ {
		for _, id := range GenerateQueue(qs, nil, ModeRandom, false, testRand(seed)) {
			if !members[id] {
				t.Fatalf("queue contains ID %q not in the pool", id)
			}
		}
	}
}

func TestGenerateQueue_EmptyPool(t *testing.T) {
	if got := GenerateQueue(nil, nil, ModeRandom, false, testRand(1)); got != nil {
		t.Errorf("queue = %v, want nil", got)
	}
}
