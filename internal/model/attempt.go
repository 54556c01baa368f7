package model

// SnapshotEntry records one question id together with the version the
// question had when the attempt started. The snapshot is immutable after
// attempt creation.
type SnapshotEntry struct {
	QuestionID string `json:"question_id"`
	Version    int    `json:"version"`
}

// Attempt is one student's run through a test. Answers is parallel to
// Snapshot; -1 marks an unanswered question. Score is a percentage and is
// meaningful only once Finished is true.
type Attempt struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id"`
	TestID   string          `json:"test_id"`
	Snapshot []SnapshotEntry `json:"snapshot"`
	Answers  []int           `json:"answers"`
	Finished bool            `json:"finished"`
	Score    float64         `json:"score"`
}

// Key returns the entity store key.
func (a Attempt) Key() string { return a.ID }

// SubmitAnswerRequest is the payload for recording an answer on an attempt.
// Choice is stored as-is; an out-of-range choice simply never matches the
// correct index at scoring time.
type SubmitAnswerRequest struct {
	QIndex *int `json:"qIndex" binding:"required"`
	Choice *int `json:"choice" binding:"required"`
}
