package app

import (
	"math"
	"sync"
	"time"

	"phishguard-service/internal/domain"
)

// QuestionsPerQuiz is the fixed sample size drawn for every quiz.
const QuestionsPerQuiz = 5

// DefaultQuizDuration is the wall-clock deadline for a quiz attempt.
const DefaultQuizDuration = 300 * time.Second

// Event is pushed to session subscribers while a quiz runs.
type Event struct {
	Type      EventType          `json:"type"`
	Remaining int                `json:"remaining,omitempty"`
	Result    *domain.QuizResult `json:"result,omitempty"`
}

type EventType string

const (
	EventTick      EventType = "tick"
	EventCompleted EventType = "completed"
)

// Session is one user's quiz attempt: a timed walk through a fixed sample of
// scenarios. All mutation happens under the mutex; the countdown goroutine is
// cancelled on every transition out of in-progress so a stray tick can never
// touch a completed session.
type Session struct {
	userID string
	now    func() time.Time

	mu          sync.Mutex
	status      domain.QuizStatus
	questions   []domain.Scenario
	responses   []domain.Response
	current     int
	answered    bool
	deadline    time.Time
	generation  int
	stopTimer   chan struct{}
	onExpire    func(domain.QuizResult)
	subscribers map[chan Event]struct{}
}

// NewSession returns an idle session for the given user slot.
func NewSession(userID string) *Session {
	return NewSessionWithClock(userID, time.Now)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(userID string, now func() time.Time) *Session {
	return &Session{
		userID:      userID,
		now:         now,
		status:      domain.QuizNotStarted,
		subscribers: make(map[chan Event]struct{}),
	}
}

// Start resets the session onto a fresh sample of questions and arms the
// countdown. Restarting is allowed from any state; a previously armed
// countdown is cancelled first. onExpire runs exactly once if the deadline
// forces completion.
func (s *Session) Start(questions []domain.Scenario, duration, tickEvery time.Duration, onExpire func(domain.QuizResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimerLocked()
	s.generation++
	s.status = domain.QuizInProgress
	s.questions = questions
	s.responses = s.responses[:0]
	s.current = 0
	s.answered = false
	s.deadline = s.now().Add(duration)
	s.onExpire = onExpire

	stop := make(chan struct{})
	s.stopTimer = stop
	go s.countdown(s.generation, duration, tickEvery, stop)
}

// Submit records the choice for the current question. A second submit before
// Advance is an invalid transition.
func (s *Session) Submit(choice domain.Answer) (domain.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.QuizInProgress || s.answered {
		return domain.Response{}, domain.ErrInvalidTransition
	}
	question := s.questions[s.current]
	response := domain.Response{
		ScenarioID:  question.ID,
		Choice:      choice,
		GroundTruth: question.GroundTruth,
		Correct:     choice == question.GroundTruth,
	}
	s.responses = append(s.responses, response)
	s.answered = true
	return response, nil
}

// Advance moves to the next question, or completes the session after the
// last one. Valid only immediately after Submit. The returned result is
// non-nil exactly when the session completed.
func (s *Session) Advance() (*domain.QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.QuizInProgress || !s.answered {
		return nil, domain.ErrInvalidTransition
	}
	if s.current == len(s.questions)-1 {
		result := s.completeLocked(false)
		return &result, nil
	}
	s.current++
	s.answered = false
	return nil, nil
}

// Status returns the current lifecycle state.
func (s *Session) Status() domain.QuizStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// CurrentQuestion returns the scenario awaiting an answer.
func (s *Session) CurrentQuestion() (domain.Scenario, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != domain.QuizInProgress {
		return domain.Scenario{}, 0, domain.ErrInvalidTransition
	}
	return s.questions[s.current], s.current, nil
}

// Remaining reports the seconds left before the deadline, floored at zero.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remainingLocked()
}

func (s *Session) remainingLocked() int {
	left := int(math.Ceil(s.deadline.Sub(s.now()).Seconds()))
	if left < 0 {
		left = 0
	}
	return left
}

// Subscribe returns a channel of tick/completed events. The caller must
// invoke the returned cancel function to avoid leaks.
func (s *Session) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// countdown drives the one-second tick until the deadline passes or the
// session leaves in-progress. The generation guard discards a stale timer
// that lost a race with Start.
func (s *Session) countdown(generation int, duration, tickEvery time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.generation != generation || s.status != domain.QuizInProgress {
				s.mu.Unlock()
				return
			}
			remaining := s.remainingLocked()
			if remaining > 0 {
				s.broadcastLocked(Event{Type: EventTick, Remaining: remaining})
				s.mu.Unlock()
				continue
			}
			result := s.completeLocked(true)
			hook := s.onExpire
			s.mu.Unlock()
			if hook != nil {
				hook(result)
			}
			return
		}
	}
}

// completeLocked finalizes the session and disarms the countdown. Unanswered
// questions count as incorrect: the percent score divides by the full sample
// size, not by the answered count.
func (s *Session) completeLocked(expired bool) domain.QuizResult {
	s.cancelTimerLocked()
	s.status = domain.QuizComplete
	s.answered = false

	correct := 0
	for _, r := range s.responses {
		if r.Correct {
			correct++
		}
	}
	total := len(s.questions)
	result := domain.QuizResult{
		Responses:      append([]domain.Response(nil), s.responses...),
		CorrectCount:   correct,
		TotalQuestions: total,
		PercentScore:   int(math.Round(100 * float64(correct) / float64(total))),
		Expired:        expired,
	}
	s.broadcastLocked(Event{Type: EventCompleted, Result: &result})
	return result
}

func (s *Session) cancelTimerLocked() {
	if s.stopTimer != nil {
		close(s.stopTimer)
		s.stopTimer = nil
	}
}

func (s *Session) broadcastLocked(event Event) {
	for ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			// Drop the oldest buffered event so slow readers never block the timer.
			select {
			case <-ch:
			default:
			}
			ch <- event
		}
	}
}
