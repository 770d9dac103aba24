package importer

import (
	_ "embed"
	"fmt"

	"github.com/abhisek/quizdeck/internal/quiz"
)

//go:embed seed.json
var seedJSON []byte

// Seed returns the built-in starter subject installed on first run, when
// the store holds no document yet. It goes through the regular import
// path so the seed stays valid against the same rules as user data.
func Seed() ([]quiz.Subject, error) {
	subjects, err := Parse(seedJSON)
	if err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return subjects, nil
}
