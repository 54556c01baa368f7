package service

import (
	"context"
	"fmt"

	"github.com/masstest/masstest-backend/internal/model"
	"github.com/masstest/masstest-backend/internal/store"
	"github.com/rs/zerolog"
)

// IDGenerator mints entity ids. Injected so tests can use deterministic ids
// and so no process-global counter hides inside the service.
type IDGenerator func() string

// AttemptService owns the attempt lifecycle: snapshot at start, per-question
// answers, and the one-way transition to finished with a computed score.
type AttemptService struct {
	attempts  store.Store[model.Attempt]
	tests     store.Store[model.Test]
	questions store.Store[model.Question]
	newID     IDGenerator
	log       zerolog.Logger
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	attempts store.Store[model.Attempt],
	tests store.Store[model.Test],
	questions store.Store[model.Question],
	newID IDGenerator,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		attempts:  attempts,
		tests:     tests,
		questions: questions,
		newID:     newID,
		log:       log,
	}
}

// Start creates an attempt for userID on the given test. The test must
// exist, not be deleted, and be active. The snapshot walks the test's
// question ids in order; ids that no longer resolve are silently dropped
// rather than failing the whole operation. Answers start at -1 for every
// retained entry.
//
// No uniqueness check against prior attempts by the same user is made;
// callers wanting single-attempt semantics must add it themselves.
func (s *AttemptService) Start(ctx context.Context, testID, userID string) (*model.Attempt, error) {
	test, ok, err := s.tests.Get(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("get test: %w", err)
	}
	if !ok || test.Deleted {
		return nil, fmt.Errorf("%w: test %q", ErrNotFound, testID)
	}
	if !test.Active {
		return nil, fmt.Errorf("%w: test %q", ErrTestNotActive, testID)
	}

	attempt := model.Attempt{
		ID:     s.newID(),
		UserID: userID,
		TestID: testID,
	}

	for _, qid := range test.QuestionIDs {
		question, ok, err := s.questions.Get(ctx, qid)
		if err != nil {
			return nil, fmt.Errorf("get question: %w", err)
		}
		if !ok {
			s.log.Debug().Str("question_id", qid).Str("test_id", testID).
				Msg("Question missing, dropped from snapshot")
			continue
		}
		attempt.Snapshot = append(attempt.Snapshot, model.SnapshotEntry{
			QuestionID: qid,
			Version:    question.Version,
		})
		attempt.Answers = append(attempt.Answers, -1)
	}

	created, err := s.attempts.Create(ctx, attempt)
	if err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}

	s.log.Info().
		Str("attempt_id", created.ID).
		Str("test_id", testID).
		Str("user_id", userID).
		Int("questions", len(created.Snapshot)).
		Msg("Attempt started")

	return &created, nil
}

// SubmitAnswer records choice at qIndex on the attempt. Only the attempt's
// owner may call it, and only while the attempt is unfinished. qIndex must
// index into Answers; choice is stored as-is, and an out-of-range choice
// just never matches the correct index when scored.
func (s *AttemptService) SubmitAnswer(ctx context.Context, attemptID, requesterID string, qIndex, choice int) error {
	attempt, ok, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return fmt.Errorf("get attempt: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: attempt %q", ErrNotFound, attemptID)
	}
	if attempt.UserID != requesterID {
		return fmt.Errorf("%w: not the attempt owner", ErrForbidden)
	}
	if attempt.Finished {
		return fmt.Errorf("%w: attempt %q", ErrAttemptFinished, attemptID)
	}
	if qIndex < 0 || qIndex >= len(attempt.Answers) {
		return fmt.Errorf("%w: question index %d out of range", ErrInvalidArgument, qIndex)
	}

	attempt.Answers[qIndex] = choice

	if _, err := s.attempts.Update(ctx, attemptID, attempt); err != nil {
		return fmt.Errorf("update attempt: %w", err)
	}
	return nil
}

// Finish marks the attempt finished and computes its score. The transition
// is one-way; a second call fails with ErrInvalidState. Score is the share
// of answers matching each question's correct index, as a percentage, with
// 0 for an empty snapshot.
//
// Scoring reads the question's *current* correct index, not a frozen copy:
// the snapshotted version number is informational only. If an answer key
// changes after attempts start, in-flight attempts are scored against the
// new key.
func (s *AttemptService) Finish(ctx context.Context, attemptID, requesterID string) (*model.Attempt, error) {
	attempt, ok, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: attempt %q", ErrNotFound, attemptID)
	}
	if attempt.UserID != requesterID {
		return nil, fmt.Errorf("%w: not the attempt owner", ErrForbidden)
	}
	if attempt.Finished {
		return nil, fmt.Errorf("%w: attempt %q", ErrAttemptFinished, attemptID)
	}

	correct := 0
	for i, entry := range attempt.Snapshot {
		question, ok, err := s.questions.Get(ctx, entry.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("get question: %w", err)
		}
		if !ok {
			continue
		}
		if attempt.Answers[i] == question.CorrectIndex {
			correct++
		}
	}

	attempt.Finished = true
	if len(attempt.Snapshot) > 0 {
		attempt.Score = float64(correct) / float64(len(attempt.Snapshot)) * 100.0
	} else {
		attempt.Score = 0
	}

	if _, err := s.attempts.Update(ctx, attemptID, attempt); err != nil {
		return nil, fmt.Errorf("update attempt: %w", err)
	}

	s.log.Info().
		Str("attempt_id", attemptID).
		Str("user_id", requesterID).
		Float64("score", attempt.Score).
		Msg("Attempt finished")

	return &attempt, nil
}

// Get returns the attempt by id. Authorization is the caller's concern; the
// handler combines ownership with the attempt:read permission.
func (s *AttemptService) Get(ctx context.Context, attemptID string) (*model.Attempt, error) {
	attempt, ok, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: attempt %q", ErrNotFound, attemptID)
	}
	return &attempt, nil
}
