package domain

import (
	"fmt"
	"time"
)

// Rejection records a response entry that could not become a post.
type Rejection struct {
	// Index is the entry's position in the decoded array.
	Index int `json:"index"`

	// Raw is the entry re-encoded as JSON.
	Raw string `json:"raw"`

	// Reason explains why the entry was rejected.
	Reason string `json:"reason"`
}

// Err returns the rejection as an ErrInvalidPostEntry error.
func (r Rejection) Err() error {
	return fmt.Errorf("%w: entry %d: %s", ErrInvalidPostEntry, r.Index, r.Reason)
}

// Submission records one model round trip and what was ingested from it.
type Submission struct {
	// ID is the unique identifier for the submission.
	ID string

	// PromptName is the catalogue prompt used, empty for imports.
	PromptName string

	// Prompt is the full text sent to the model.
	Prompt string

	// Response is the raw model output.
	Response string

	// Accepted is the number of posts appended to the unpublished collection.
	Accepted int

	// Rejections lists entries skipped by the parser.
	Rejections []Rejection

	// Error is the terminal failure, if any.
	Error string

	// CreatedAt is when the submission was made.
	CreatedAt time.Time
}

// Failed returns true if the submission ended in a terminal failure.
func (s Submission) Failed() bool {
	return s.Error != ""
}
