package app

import (
	"context"
	"log"
	"math"
	"time"

	"phishguard-service/internal/domain"
)

// ScenarioStore provides the training content (backed by memory, Redis
// cache, or Postgres).
type ScenarioStore interface {
	// Sample returns n distinct scenarios drawn uniformly without
	// replacement, or domain.ErrInsufficientPool when the pool is smaller.
	Sample(ctx context.Context, n int) ([]domain.Scenario, error)
	// Random returns one scenario uniformly at random.
	Random(ctx context.Context) (domain.Scenario, error)
	// Get returns the scenario with the given ID.
	Get(ctx context.Context, id string) (domain.Scenario, error)
}

// ProfileStore owns the cumulative per-user aggregates. Increments and
// set-adds must be atomic and idempotent respectively so the service can
// apply them blindly without read-modify-write cycles.
type ProfileStore interface {
	Increment(ctx context.Context, userID, field string, delta int) error
	AddToSet(ctx context.Context, userID, field, value string) error
	Read(ctx context.Context, userID string) (domain.ProfileAggregates, error)
}

// SessionRepository abstracts how per-user quiz sessions are held.
type SessionRepository interface {
	GetOrCreate(userID string) *Session
	Get(userID string) (*Session, bool)
}

// PracticeResult is the graded outcome of a single-scenario practice round.
type PracticeResult struct {
	ScenarioID  string        `json:"scenarioId"`
	Choice      domain.Answer `json:"choice"`
	GroundTruth domain.Answer `json:"groundTruth"`
	Correct     bool          `json:"correct"`
	Rationale   string        `json:"rationale"`
	Indicators  []string      `json:"indicators"`
}

// ProfileSnapshot is the aggregate view plus the derived display stats.
type ProfileSnapshot struct {
	domain.ProfileAggregates
	Accuracy     int `json:"accuracy"`
	AvgQuizScore int `json:"avgQuizScore"`
}

// TrainingService wires quiz sessions and practice rounds to the scenario
// pool and the profile aggregates. Persistence is best-effort: the locally
// computed result is the source of truth for the user-visible outcome, and
// write failures are logged and swallowed.
type TrainingService struct {
	sessions  SessionRepository
	scenarios ScenarioStore
	profiles  ProfileStore
	duration  time.Duration
	tickEvery time.Duration
}

// Option tweaks service timing, mainly for tests.
type Option func(*TrainingService)

// WithQuizDuration overrides the 300-second quiz deadline.
func WithQuizDuration(d time.Duration) Option {
	return func(s *TrainingService) { s.duration = d }
}

// WithTickInterval overrides the one-second countdown tick.
func WithTickInterval(d time.Duration) Option {
	return func(s *TrainingService) { s.tickEvery = d }
}

func NewTrainingService(sessions SessionRepository, scenarios ScenarioStore, profiles ProfileStore, opts ...Option) *TrainingService {
	s := &TrainingService{
		sessions:  sessions,
		scenarios: scenarios,
		profiles:  profiles,
		duration:  DefaultQuizDuration,
		tickEvery: time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartQuiz samples a fresh question set and (re)starts the user's session.
// Starting over a still-running quiz cancels its countdown first.
func (s *TrainingService) StartQuiz(ctx context.Context, userID string) (*Session, error) {
	questions, err := s.scenarios.Sample(ctx, QuestionsPerQuiz)
	if err != nil {
		return nil, err
	}
	session := s.sessions.GetOrCreate(userID)
	session.Start(questions, s.duration, s.tickEvery, func(result domain.QuizResult) {
		s.persistQuizResult(context.Background(), userID, result)
	})
	return session, nil
}

// SubmitAnswer records the choice for the user's current question.
func (s *TrainingService) SubmitAnswer(userID string, choice domain.Answer) (domain.Response, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return domain.Response{}, domain.ErrSessionNotFound
	}
	return session.Submit(choice)
}

// Advance moves the user's session to the next question. When the session
// completes the final result is returned and the profile update runs
// synchronously, best effort.
func (s *TrainingService) Advance(ctx context.Context, userID string) (*domain.QuizResult, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	result, err := session.Advance()
	if err != nil {
		return nil, err
	}
	if result != nil {
		s.persistQuizResult(ctx, userID, *result)
	}
	return result, nil
}

// Session exposes the user's session for transports that subscribe to ticks.
func (s *TrainingService) Session(userID string) (*Session, bool) {
	return s.sessions.Get(userID)
}

// PracticeScenario returns one random scenario for untimed practice.
func (s *TrainingService) PracticeScenario(ctx context.Context) (domain.Scenario, error) {
	return s.scenarios.Random(ctx)
}

// SubmitPractice grades a practice answer and applies the per-attempt
// aggregate updates and milestone badges.
func (s *TrainingService) SubmitPractice(ctx context.Context, userID, scenarioID string, choice domain.Answer) (PracticeResult, error) {
	scenario, err := s.scenarios.Get(ctx, scenarioID)
	if err != nil {
		return PracticeResult{}, err
	}
	result := PracticeResult{
		ScenarioID:  scenario.ID,
		Choice:      choice,
		GroundTruth: scenario.GroundTruth,
		Correct:     choice == scenario.GroundTruth,
		Rationale:   scenario.Rationale,
		Indicators:  scenario.Indicators,
	}

	s.bestEffort(s.profiles.Increment(ctx, userID, domain.FieldTotalAttempts, 1))
	if result.Correct {
		s.bestEffort(s.profiles.Increment(ctx, userID, domain.FieldCorrectAnswers, 1))
		s.bestEffort(s.profiles.Increment(ctx, userID, domain.FieldScore, 10))
	}
	s.bestEffort(s.profiles.AddToSet(ctx, userID, domain.FieldCompletedScenarios, scenario.ID))

	// Milestone badges use the post-update counters.
	aggregates, err := s.profiles.Read(ctx, userID)
	if err != nil {
		log.Printf("read profile for badges: %v", err)
		return result, nil
	}
	if aggregates.CorrectAnswers == 5 {
		s.award(ctx, userID, domain.BadgeNoviceDetector)
	}
	if aggregates.CorrectAnswers == 20 {
		s.award(ctx, userID, domain.BadgePhishingExpert)
	}
	return result, nil
}

// Profile returns the aggregate snapshot with derived display stats.
func (s *TrainingService) Profile(ctx context.Context, userID string) (ProfileSnapshot, error) {
	aggregates, err := s.profiles.Read(ctx, userID)
	if err != nil {
		return ProfileSnapshot{}, err
	}
	snapshot := ProfileSnapshot{ProfileAggregates: aggregates}
	if aggregates.TotalAttempts > 0 {
		snapshot.Accuracy = int(math.Round(100 * float64(aggregates.CorrectAnswers) / float64(aggregates.TotalAttempts)))
	}
	if aggregates.QuizzesCompleted > 0 {
		snapshot.AvgQuizScore = int(math.Round(float64(aggregates.TotalQuizScore) / float64(aggregates.QuizzesCompleted)))
	}
	return snapshot, nil
}

// persistQuizResult applies the completion aggregates and the badge pass.
// The percent-based quiz score and the per-correct point score accumulate in
// different units and stay separate.
func (s *TrainingService) persistQuizResult(ctx context.Context, userID string, result domain.QuizResult) {
	s.bestEffort(s.profiles.Increment(ctx, userID, domain.FieldQuizzesCompleted, 1))
	s.bestEffort(s.profiles.Increment(ctx, userID, domain.FieldTotalQuizScore, result.PercentScore))
	s.bestEffort(s.profiles.Increment(ctx, userID, domain.FieldScore, 10*result.CorrectCount))

	if result.PercentScore == 100 {
		s.award(ctx, userID, domain.BadgePerfectScore)
	}
	aggregates, err := s.profiles.Read(ctx, userID)
	if err != nil {
		log.Printf("read profile for badges: %v", err)
		return
	}
	if aggregates.QuizzesCompleted == 10 {
		s.award(ctx, userID, domain.BadgeQuizMaster)
	}
}

// award adds a badge; AddToSet is idempotent so re-awarding is a no-op.
func (s *TrainingService) award(ctx context.Context, userID, badge string) {
	s.bestEffort(s.profiles.AddToSet(ctx, userID, domain.FieldBadges, badge))
}

func (s *TrainingService) bestEffort(err error) {
	if err != nil {
		log.Printf("profile update failed (keeping local result): %v", err)
	}
}
