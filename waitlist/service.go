package waitlist

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ResultKind discriminates the outcome of a signup attempt.
type ResultKind int

const (
	// ResultJoined means the signup landed (or, in demo mode, the attempt
	// failed at the transport level and was reported as landed anyway).
	ResultJoined ResultKind = iota
	// ResultDuplicateEmail means the email already holds a spot.
	ResultDuplicateEmail
	// ResultStoreUnavailable means the waitlist table is not provisioned;
	// retries are pointless until an operator intervenes.
	ResultStoreUnavailable
	// ResultFailed covers every other store-reported error; retrying may help.
	ResultFailed
)

// Result is what a signup attempt resolves to. Message is the user-facing
// text for the outcome; Record is only populated on a real insert.
type Result struct {
	Kind    ResultKind
	Message string
	Record  Record
}

// Joined reports whether the attempt should present as a success.
func (r Result) Joined() bool { return r.Kind == ResultJoined }

const (
	msgJoined           = "Successfully joined the waitlist!"
	msgJoinedDemo       = "Successfully joined the waitlist! (Demo mode)"
	msgDuplicateEmail   = "This email is already on our waitlist"
	msgStoreUnavailable = "Waitlist database not set up. Please contact support."
	msgFailed           = "Failed to join waitlist. Please try again."
)

// Service is the submission client: it performs the single insert for a
// completed signup and interprets the store's answer.
type Service struct {
	repo        Repository
	idGenerator func() string
	now         func() time.Time
	strict      bool
}

// NewService creates a waitlist service over the given repository.
func NewService(repo Repository) *Service {
	return &Service{
		repo:        repo,
		idGenerator: func() string { return uuid.NewString() },
		now:         time.Now,
	}
}

// WithIDGenerator overrides row id generation, mainly for tests.
func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.idGenerator = gen
	return s
}

// WithClock overrides the submission timestamp source, mainly for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithStrictFailures turns off demo mode: transport-level errors surface as
// ResultFailed instead of being reported as a join. The masking default
// mirrors the launch-page behavior, where a store hiccup was deliberately
// hidden from the signup.
func (s *Service) WithStrictFailures() *Service {
	s.strict = true
	return s
}

// Join attempts exactly one insert for the submission. It is not idempotent:
// a repeat attempt for the same email performs another insert and relies on
// the store's unique constraint to come back as ResultDuplicateEmail.
// Every failure is absorbed here; callers only ever see a Result.
func (s *Service) Join(ctx context.Context, sub Submission) Result {
	rec, err := s.repo.Insert(ctx, InsertParams{
		ID:        s.idGenerator(),
		FullName:  sub.FullName,
		Email:     sub.Email,
		Username:  sub.Username,
		Status:    StatusPending,
		CreatedAt: s.now().UTC(),
	})

	switch {
	case err == nil:
		return Result{Kind: ResultJoined, Message: msgJoined, Record: rec}
	case errors.Is(err, ErrTableMissing):
		return Result{Kind: ResultStoreUnavailable, Message: msgStoreUnavailable}
	case errors.Is(err, ErrDuplicateEmail):
		return Result{Kind: ResultDuplicateEmail, Message: msgDuplicateEmail}
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return Result{Kind: ResultFailed, Message: msgFailed}
	}

	// Transport-level failure: the store never answered. Demo mode reports
	// these as a join so an infrastructure hiccup does not block the signup.
	if s.strict {
		return Result{Kind: ResultFailed, Message: msgFailed}
	}
	return Result{Kind: ResultJoined, Message: msgJoinedDemo}
}
