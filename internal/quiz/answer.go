package quiz

import "strings"

// CheckAnswer compares a raw answer value against the question's stored
// answer. It is a total function: unrecognized question types, nil input,
// or a value of the wrong shape simply return false. It never panics and
// has no side effects.
//
// Expected raw answer shapes per type:
//   - multiple_choice: an int choice index
//   - multiple_answer: a collection of int indices, compared as a set
//   - true_false: a bool
//   - keywords: a string, trimmed; case folded unless CaseSensitive
//   - matching: a map of left item to chosen right item
//   - word_bank: an ordered list of filled words, one per blank
//
// Values decoded from JSON are accepted too: float64 for indices and
// []any / map[string]any for collections.
func CheckAnswer(q Question, raw any) bool {
	switch q.Type {
	case TypeMultipleChoice:
		idx, ok := asInt(raw)
		return ok && idx == q.AnswerIndex

	case TypeMultipleAnswer:
		given, ok := asIntSlice(raw)
		if !ok {
			return false
		}
		return sameIndexSet(given, q.AnswerIndices)

	case TypeTrueFalse:
		b, ok := raw.(bool)
		return ok && b == q.BoolAnswer

	case TypeKeywords:
		s, ok := raw.(string)
		if !ok {
			return false
		}
		return matchKeyword(s, q.Answers, q.CaseSensitive)

	case TypeMatching:
		given, ok := asStringMap(raw)
		if !ok {
			return false
		}
		// Correctness is judged over the declared pairs only; extra
		// keys in the submission are ignored.
		for _, p := range q.Pairs {
			if given[p.Left] != p.Right {
				return false
			}
		}
		return true

	case TypeWordBank:
		given, ok := asStringSlice(raw)
		if !ok || len(given) != len(q.Answers) {
			return false
		}
		for i, w := range given {
			if w != q.Answers[i] {
				return false
			}
		}
		return true
	}

	return false
}

// matchKeyword checks a trimmed input against any acceptable answer.
func matchKeyword(input string, answers []string, caseSensitive bool) bool {
	input = strings.TrimSpace(input)
	for _, a := range answers {
		if caseSensitive {
			if input == a {
				return true
			}
		} else if strings.EqualFold(input, a) {
			return true
		}
	}
	return false
}

// sameIndexSet compares two index collections as sets: equal size after
// dedup and identical membership, order independent.
func sameIndexSet(given, want []int) bool {
	gset := make(map[int]bool, len(given))
	for _, i := range given {
		gset[i] = true
	}
	wset := make(map[int]bool, len(want))
	for _, i := range want {
		wset[i] = true
	}
	if len(gset) != len(wset) {
		return false
	}
	for i := range wset {
		if !gset[i] {
			return false
		}
	}
	return true
}

// asInt accepts int and integral float64 (JSON numbers decode as float64).
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func asIntSlice(v any) ([]int, bool) {
	switch vs := v.(type) {
	case []int:
		return vs, true
	case []any:
		out := make([]int, 0, len(vs))
		for _, e := range vs {
			n, ok := asInt(e)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	}
	return nil, false
}

func asStringSlice(v any) ([]string, bool) {
	switch vs := v.(type) {
	case []string:
		return vs, true
	case []any:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func asStringMap(v any) (map[string]string, bool) {
	switch vm := v.(type) {
	case map[string]string:
		return vm, true
	case map[string]any:
		out := make(map[string]string, len(vm))
		for k, e := range vm {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	}
	return nil, false
}
