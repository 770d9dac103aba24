package study

import "github.com/abhisek/quizdeck/internal/media"

// mediaReadyMsg carries a fetched attachment for the current question.
type mediaReadyMsg struct {
	QuestionID string
	Blob       media.Blob
}

// mediaFailedMsg reports that an attachment could not be fetched after
// the loader gave up retrying.
type mediaFailedMsg struct {
	QuestionID string
	Err        error
}
