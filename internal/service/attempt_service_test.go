package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/masstest/masstest-backend/internal/model"
	"github.com/masstest/masstest-backend/internal/store/memory"
	"github.com/rs/zerolog"
)

// fixture wires an attempt service against fresh in-memory stores with
// deterministic ids (att1, att2, ...).
type fixture struct {
	attempts  *memory.Store[model.Attempt]
	tests     *memory.Store[model.Test]
	questions *memory.Store[model.Question]
	svc       *AttemptService
}

func newFixture() *fixture {
	attempts := memory.NewStore[model.Attempt]()
	tests := memory.NewStore[model.Test]()
	questions := memory.NewStore[model.Question]()

	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("att%d", n)
	}

	return &fixture{
		attempts:  attempts,
		tests:     tests,
		questions: questions,
		svc:       NewAttemptService(attempts, tests, questions, newID, zerolog.Nop()),
	}
}

func (f *fixture) seedQuestion(t *testing.T, id string, correctIndex, version int) {
	t.Helper()
	_, err := f.questions.Create(context.Background(), model.Question{
		ID:           id,
		AuthorID:     "teacher",
		Title:        id,
		Options:      []string{"a", "b", "c"},
		CorrectIndex: correctIndex,
		Version:      version,
	})
	if err != nil {
		t.Fatalf("seed question: %v", err)
	}
}

func (f *fixture) seedTest(t *testing.T, id string, active bool, questionIDs ...string) {
	t.Helper()
	_, err := f.tests.Create(context.Background(), model.Test{
		ID:          id,
		CourseID:    "c1",
		Title:       "test " + id,
		QuestionIDs: questionIDs,
		Active:      active,
	})
	if err != nil {
		t.Fatalf("seed test: %v", err)
	}
}

func TestStartUnknownTest(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Start(context.Background(), "nope", "u1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Start() error = %v, want ErrNotFound", err)
	}
}

func TestStartDeletedTest(t *testing.T) {
	f := newFixture()
	f.tests.Create(context.Background(), model.Test{ID: "t1", Active: true, Deleted: true})

	_, err := f.svc.Start(context.Background(), "t1", "u1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Start() error = %v, want ErrNotFound", err)
	}
}

func TestStartInactiveTest(t *testing.T) {
	f := newFixture()
	f.seedQuestion(t, "q1", 0, 1)
	f.seedTest(t, "t1", false, "q1")

	_, err := f.svc.Start(context.Background(), "t1", "u1")
	if !errors.Is(err, ErrTestNotActive) {
		t.Fatalf("Start() error = %v, want ErrTestNotActive", err)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Start() error = %v, want it to wrap ErrInvalidState", err)
	}

	// The failed start must not leave an attempt behind.
	attempts, _ := f.attempts.List(context.Background())
	if len(attempts) != 0 {
		t.Errorf("attempt store has %d records after failed start, want 0", len(attempts))
	}
}

func TestStartSnapshotsQuestionsInOrder(t *testing.T) {
	f := newFixture()
	f.seedQuestion(t, "q1", 0, 1)
	f.seedQuestion(t, "q2", 1, 3)
	f.seedQuestion(t, "q3", 2, 2)
	f.seedTest(t, "t1", true, "q1", "q2", "q3")

	attempt, err := f.svc.Start(context.Background(), "t1", "u1")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if attempt.UserID != "u1" || attempt.TestID != "t1" {
		t.Errorf("attempt owner/test = %q/%q, want u1/t1", attempt.UserID, attempt.TestID)
	}
	if len(attempt.Snapshot) != 3 || len(attempt.Answers) != 3 {
		t.Fatalf("snapshot/answers lengths = %d/%d, want 3/3", len(attempt.Snapshot), len(attempt.Answers))
	}
	for i, want := range []model.SnapshotEntry{
		{QuestionID: "q1", Version: 1},
		{QuestionID: "q2", Version: 3},
		{QuestionID: "q3", Version: 2},
	} {
		if attempt.Snapshot[i] != want {
			t.Errorf("snapshot[%d] = %+v, want %+v", i, attempt.Snapshot[i], want)
		}
	}
	for i, a := range attempt.Answers {
		if a != -1 {
			t.Errorf("answers[%d] = %d, want -1", i, a)
		}
	}
}

func TestStartDropsMissingQuestions(t *testing.T) {
	f := newFixture()
	f.seedQuestion(t, "q1", 0, 1)
	f.seedQuestion(t, "q3", 1, 1)
	f.seedTest(t, "t1", true, "q1", "gone", "q3")

	attempt, err := f.svc.Start(context.Background(), "t1", "u1")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if len(attempt.Snapshot) != 2 {
		t.Fatalf("snapshot length = %d, want 2 (missing question dropped)", len(attempt.Snapshot))
	}
	if attempt.Snapshot[0].QuestionID != "q1" || attempt.Snapshot[1].QuestionID != "q3" {
		t.Errorf("snapshot order = %+v, want q1 then q3", attempt.Snapshot)
	}
	if len(attempt.Answers) != len(attempt.Snapshot) {
		t.Errorf("answers length %d != snapshot length %d", len(attempt.Answers), len(attempt.Snapshot))
	}
}

func TestSubmitAnswer(t *testing.T) {
	f := newFixture()
	f.seedQuestion(t, "q1", 0, 1)
	f.seedQuestion(t, "q2", 1, 1)
	f.seedTest(t, "t1", true, "q1", "q2")

	attempt, err := f.svc.Start(context.Background(), "t1", "u1")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := f.svc.SubmitAnswer(context.Background(), attempt.ID, "u1", 1, 2); err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}

	stored, _, _ := f.attempts.Get(context.Background(), attempt.ID)
	if stored.Answers[0] != -1 || stored.Answers[1] != 2 {
		t.Errorf("answers = %v, want [-1 2]", stored.Answers)
	}
}

func TestSubmitAnswerErrors(t *testing.T) {
	f := newFixture()
	f.seedQuestion(t, "q1", 0, 1)
	f.seedTest(t, "t1", true, "q1")

	attempt, err := f.svc.Start(context.Background(), "t1", "u1")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	tests := []struct {
		name      string
		attemptID string
		requester string
		qIndex    int
		wantErr   error
	}{
		{"unknown attempt", "nope", "u1", 0, ErrNotFound},
		{"wrong owner", attempt.ID, "u2", 0, ErrForbidden},
		{"negative index", attempt.ID, "u1", -1, ErrInvalidArgument},
		{"index past end", attempt.ID, "u1", 1, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.svc.SubmitAnswer(context.Background(), tt.attemptID, tt.requester, tt.qIndex, 0)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SubmitAnswer() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Failed submissions must leave answers untouched.
	stored, _, _ := f.attempts.Get(context.Background(), attempt.ID)
	if stored.Answers[0] != -1 {
		t.Errorf("answers = %v, want [-1]", stored.Answers)
	}
}

func TestSubmitAnswerOnFinishedAttempt(t *testing.T) {
	f := newFixture()
	f.seedQuestion(t, "q1", 0, 1)
	f.seedTest(t, "t1", true, "q1")

	attempt, _ := f.svc.Start(context.Background(), "t1", "u1")
	f.svc.SubmitAnswer(context.Background(), attempt.ID, "u1", 0, 0)
	if _, err := f.svc.Finish(context.Background(), attempt.ID, "u1"); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	err := f.svc.SubmitAnswer(context.Background(), attempt.ID, "u1", 0, 1)
	if !errors.Is(err, ErrAttemptFinished) {
		t.Fatalf("SubmitAnswer() after finish error = %v, want ErrAttemptFinished", err)
	}

	stored, _, _ := f.attempts.Get(context.Background(), attempt.ID)
	if stored.Answers[0] != 0 {
		t.Errorf("answers changed after rejected submit: %v", stored.Answers)
	}
}

func TestSubmitAnswerStoresOutOfRangeChoice(t *testing.T) {
	f := newFixture()
	f.seedQuestion(t, "q1", 0, 1) // 3 options
	f.seedTest(t, "t1", true, "q1")

	attempt, _ := f.svc.Start(context.Background(), "t1", "u1")

	// choice 99 is past the option count but is recorded verbatim.
	if err := f.svc.SubmitAnswer(context.Background(), attempt.ID, "u1", 0, 99); err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}
	stored, _, _ := f.attempts.Get(context.Background(), attempt.ID)
	if stored.Answers[0] != 99 {
		t.Errorf("answers[0] = %d, want 99", stored.Answers[0])
	}

	finished, err := f.svc.Finish(context.Background(), attempt.ID, "u1")
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if finished.Score != 0 {
		t.Errorf("score = %v, want 0 (out-of-range choice never matches)", finished.Score)
	}
}

func TestFinishScoring(t *testing.T) {
	tests := []struct {
		name      string
		answers   []int
		wantScore float64
	}{
		{"all correct", []int{0, 1}, 100.0},
		{"half correct", []int{1, 1}, 50.0},
		{"none correct", []int{1, 0}, 0.0},
		{"unanswered scores zero", []int{-1, -1}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.seedQuestion(t, "q1", 0, 1)
			f.seedQuestion(t, "q2", 1, 1)
			f.seedTest(t, "t1", true, "q1", "q2")

			attempt, _ := f.svc.Start(context.Background(), "t1", "u1")
			for i, choice := range tt.answers {
				if choice >= 0 {
					if err := f.svc.SubmitAnswer(context.Background(), attempt.ID, "u1", i, choice); err != nil {
						t.Fatalf("SubmitAnswer(%d) error = %v", i, err)
					}
				}
			}

			finished, err := f.svc.Finish(context.Background(), attempt.ID, "u1")
			if err != nil {
				t.Fatalf("Finish() error = %v", err)
			}
			if finished.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", finished.Score, tt.wantScore)
			}
			if !finished.Finished {
				t.Error("attempt not marked finished")
			}
		})
	}
}

func TestFinishEmptySnapshotScoresZero(t *testing.T) {
	f := newFixture()
	f.seedTest(t, "t1", true) // no questions

	attempt, err := f.svc.Start(context.Background(), "t1", "u1")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	finished, err := f.svc.Finish(context.Background(), attempt.ID, "u1")
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if finished.Score != 0 {
		t.Errorf("score = %v, want 0 for empty snapshot", finished.Score)
	}
}

func TestFinishTwice(t *testing.T) {
	f := newFixture()
	f.seedQuestion(t, "q1", 0, 1)
	f.seedTest(t, "t1", true, "q1")

	attempt, _ := f.svc.Start(context.Background(), "t1", "u1")
	f.svc.SubmitAnswer(context.Background(), attempt.ID, "u1", 0, 0)

	first, err := f.svc.Finish(context.Background(), attempt.ID, "u1")
	if err != nil {
		t.Fatalf("first Finish() error = %v", err)
	}

	if _, err := f.svc.Finish(context.Background(), attempt.ID, "u1"); !errors.Is(err, ErrAttemptFinished) {
		t.Fatalf("second Finish() error = %v, want ErrAttemptFinished", err)
	}

	stored, _, _ := f.attempts.Get(context.Background(), attempt.ID)
	if stored.Score != first.Score {
		t.Errorf("score changed by rejected second finish: %v != %v", stored.Score, first.Score)
	}
}

func TestFinishByNonOwner(t *testing.T) {
	f := newFixture()
	f.seedQuestion(t, "q1", 0, 1)
	f.seedTest(t, "t1", true, "q1")

	attempt, _ := f.svc.Start(context.Background(), "t1", "u1")

	if _, err := f.svc.Finish(context.Background(), attempt.ID, "intruder"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Finish() by non-owner error = %v, want ErrForbidden", err)
	}
}

// Scoring reads the live question content: editing the answer key after the
// attempt started changes how the attempt scores, even though the snapshot
// recorded the old version number.
func TestFinishScoresAgainstCurrentAnswerKey(t *testing.T) {
	f := newFixture()
	f.seedQuestion(t, "q1", 0, 1)
	f.seedTest(t, "t1", true, "q1")

	attempt, _ := f.svc.Start(context.Background(), "t1", "u1")
	f.svc.SubmitAnswer(context.Background(), attempt.ID, "u1", 0, 0)

	// The answer key moves from option 0 to option 2 mid-attempt.
	q, _, _ := f.questions.Get(context.Background(), "q1")
	q.CorrectIndex = 2
	q.Version = 2
	f.questions.Update(context.Background(), "q1", q)

	finished, err := f.svc.Finish(context.Background(), attempt.ID, "u1")
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if finished.Score != 0 {
		t.Errorf("score = %v, want 0 (scored against the new key)", finished.Score)
	}
	if finished.Snapshot[0].Version != 1 {
		t.Errorf("snapshot version = %d, want the version captured at start", finished.Snapshot[0].Version)
	}
}

func TestGetAttempt(t *testing.T) {
	f := newFixture()
	f.seedQuestion(t, "q1", 0, 1)
	f.seedTest(t, "t1", true, "q1")

	attempt, _ := f.svc.Start(context.Background(), "t1", "u1")

	got, err := f.svc.Get(context.Background(), attempt.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != attempt.ID {
		t.Errorf("Get() id = %q, want %q", got.ID, attempt.ID)
	}

	if _, err := f.svc.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}
}
