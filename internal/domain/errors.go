package domain

import "errors"

var (
	// ErrInsufficientPool is returned when the scenario pool is smaller than
	// the sample a quiz needs; the session cannot begin.
	ErrInsufficientPool = errors.New("scenario pool too small for quiz")
	// ErrInvalidTransition is returned when a session operation is called
	// outside its valid state (double submit, advance with no pending answer).
	ErrInvalidTransition = errors.New("invalid quiz session transition")
	// ErrSessionNotFound is returned when a user acts on a quiz that was
	// never started.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrScenarioNotFound indicates an unknown scenario ID.
	ErrScenarioNotFound = errors.New("scenario not found")
)
