package model

// Question is a single multiple-choice question owned by its author.
// Version increases monotonically on content edits; attempts record the
// version they saw at snapshot time.
type Question struct {
	ID           string   `json:"id"`
	AuthorID     string   `json:"author_id"`
	Title        string   `json:"title"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Version      int      `json:"version"`
	Deleted      bool     `json:"deleted"`
}

// Key returns the entity store key.
func (q Question) Key() string { return q.ID }

// CreateQuestionRequest is the payload for authoring a question.
type CreateQuestionRequest struct {
	Title        string   `json:"title" binding:"required,min=1,max=200"`
	Text         string   `json:"text" binding:"max=2000"`
	Options      []string `json:"options" binding:"required,min=1,dive,max=500"`
	CorrectIndex int      `json:"correct_index" binding:"min=0"`
}
