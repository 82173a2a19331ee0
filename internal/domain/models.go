package domain

// Category classifies what kind of artifact a scenario presents.
type Category string

const (
	CategoryEmail   Category = "email"
	CategoryLink    Category = "link"
	CategoryWebsite Category = "website"
)

// Difficulty grades how hard a scenario is to call correctly.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Answer is a trainee's classification of a scenario, and also the
// authored ground truth.
type Answer string

const (
	AnswerSafe       Answer = "safe"
	AnswerSuspicious Answer = "suspicious"
	AnswerPhishing   Answer = "phishing"
)

// Valid reports whether the answer is one of the three known classifications.
func (a Answer) Valid() bool {
	switch a {
	case AnswerSafe, AnswerSuspicious, AnswerPhishing:
		return true
	}
	return false
}

// Scenario is a single authored training item. Scenarios are immutable once
// loaded; the service only ever reads them.
type Scenario struct {
	ID          string     `json:"id"`
	Category    Category   `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	Sender      string     `json:"sender,omitempty"`
	Subject     string     `json:"subject,omitempty"`
	Body        string     `json:"body,omitempty"`
	GroundTruth Answer     `json:"groundTruth"`
	Rationale   string     `json:"rationale"`
	Indicators  []string   `json:"indicators"`
}

// Severity labels how strongly a risk finding counts against a URL.
type Severity string

const (
	SeverityHigh    Severity = "high"
	SeverityMedium  Severity = "medium"
	SeverityWarning Severity = "warning"
)

// RiskFinding is one heuristic rule that fired against a URL.
type RiskFinding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Weight   int      `json:"weight"` // negative penalty applied to the base score
}

// Verdict is the categorical outcome of a URL risk analysis.
type Verdict string

const (
	VerdictSafe       Verdict = "safe"
	VerdictSuspicious Verdict = "suspicious"
	VerdictDangerous  Verdict = "dangerous"
)

// RiskVerdict is the scorer's full output for one URL. It is created fresh
// per analysis call and never persisted.
type RiskVerdict struct {
	InputURL string        `json:"inputUrl"`
	Findings []RiskFinding `json:"findings"`
	Score    int           `json:"score"`
	Verdict  Verdict       `json:"verdict"`
}

// QuizStatus tracks where a quiz session is in its lifecycle.
type QuizStatus string

const (
	QuizNotStarted QuizStatus = "not-started"
	QuizInProgress QuizStatus = "in-progress"
	QuizComplete   QuizStatus = "complete"
)

// Response records one graded answer inside a quiz session.
type Response struct {
	ScenarioID  string `json:"scenarioId"`
	Choice      Answer `json:"choice"`
	GroundTruth Answer `json:"groundTruth"`
	Correct     bool   `json:"correct"`
}

// QuizResult is the outcome of one completed quiz session. The locally
// computed result stays authoritative for display regardless of whether the
// profile write succeeded.
type QuizResult struct {
	Responses      []Response `json:"responses"`
	CorrectCount   int        `json:"correctCount"`
	TotalQuestions int        `json:"totalQuestions"`
	PercentScore   int        `json:"percentScore"`
	Expired        bool       `json:"expired"`
}

// Badge names awarded by the training service.
const (
	BadgePerfectScore   = "Perfect Score"
	BadgeQuizMaster     = "Quiz Master"
	BadgeNoviceDetector = "Novice Detector"
	BadgePhishingExpert = "Phishing Expert"
)

// Profile aggregate field names as stored by the ProfileStore.
const (
	FieldScore              = "score"
	FieldTotalAttempts      = "totalAttempts"
	FieldCorrectAnswers     = "correctAnswers"
	FieldQuizzesCompleted   = "quizzesCompleted"
	FieldTotalQuizScore     = "totalQuizScore"
	FieldBadges             = "badges"
	FieldCompletedScenarios = "completedScenarios"
)

// ProfileAggregates is a snapshot of the cumulative per-user counters. The
// service treats it as an opaque accumulator: it increments fields and adds
// to sets but never recomputes totals from scratch.
type ProfileAggregates struct {
	UserID             string   `json:"userId"`
	Score              int      `json:"score"`
	TotalAttempts      int      `json:"totalAttempts"`
	CorrectAnswers     int      `json:"correctAnswers"`
	QuizzesCompleted   int      `json:"quizzesCompleted"`
	TotalQuizScore     int      `json:"totalQuizScore"`
	Badges             []string `json:"badges"`
	CompletedScenarios []string `json:"completedScenarios"`
}

// HasBadge reports whether the snapshot already holds the named badge.
func (p ProfileAggregates) HasBadge(name string) bool {
	for _, b := range p.Badges {
		if b == name {
			return true
		}
	}
	return false
}
