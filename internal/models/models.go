package models

// EventType distinguishes the two supported competition formats
type EventType string

const (
	EventPageant EventType = "Pageant"
	EventQuizBee EventType = "QuizBee"
)

// RoundKind classifies how a segment participates in scoring.
// An explicit kind replaces detection by segment-name substring.
type RoundKind string

const (
	// RoundNormal is a regular scored round; its points accumulate.
	RoundNormal RoundKind = "normal"
	// RoundFinal resets scoring to zero and determines final standings
	// among a qualifying subset.
	RoundFinal RoundKind = "final"
	// RoundClincher is a tie-breaking sub-round scored in isolation,
	// restricted to the tied contestants.
	RoundClincher RoundKind = "clincher"
)

// ContestantStatus tracks elimination state
type ContestantStatus string

const (
	StatusActive     ContestantStatus = "Active"
	StatusEliminated ContestantStatus = "Eliminated"
)

// Event represents a pageant or quiz-bee competition
type Event struct {
	ID     int64     `json:"id"`
	Name   string    `json:"name"`
	Type   EventType `json:"type"`
	Status string    `json:"status"`
}

// Segment is a scored phase of an event: a pageant segment or a quiz round
type Segment struct {
	ID                int64     `json:"id"`
	EventID           int64     `json:"event_id"`
	Name              string    `json:"name"`
	OrderIndex        int       `json:"order_index"`
	PercentageWeight  float64   `json:"percentage_weight"`
	IsActive          bool      `json:"is_active"`
	Kind              RoundKind `json:"kind"`
	QualifierLimit    int       `json:"qualifier_limit"`
	PointsPerQuestion float64   `json:"points_per_question,omitempty"`
	TotalQuestions    int       `json:"total_questions,omitempty"`
	// ParticipantIDs, when non-empty, restricts scoring in this segment
	// to the listed contestants (clinchers and final rounds).
	ParticipantIDs   []int64 `json:"participant_ids,omitempty"`
	RelatedSegmentID *int64  `json:"related_segment_id,omitempty"`
}

// IsFinal reports whether the segment is a reset-to-zero final round
func (s *Segment) IsFinal() bool { return s.Kind == RoundFinal }

// IsClincher reports whether the segment is an isolated tie-breaker
func (s *Segment) IsClincher() bool { return s.Kind == RoundClincher }

// Permits reports whether a contestant may be scored in this segment.
// An empty participant list permits everyone.
func (s *Segment) Permits(contestantID int64) bool {
	if len(s.ParticipantIDs) == 0 {
		return true
	}
	for _, id := range s.ParticipantIDs {
		if id == contestantID {
			return true
		}
	}
	return false
}

// Criteria is a weighted judged dimension within a pageant segment
type Criteria struct {
	ID        int64   `json:"id"`
	SegmentID int64   `json:"segment_id"`
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`
	MaxScore  float64 `json:"max_score"`
}

// Contestant represents a candidate in an event
type Contestant struct {
	ID              int64            `json:"id"`
	EventID         int64            `json:"event_id"`
	CandidateNumber int              `json:"candidate_number"`
	Name            string           `json:"name"`
	Gender          string           `json:"gender"`
	Status          ContestantStatus `json:"status"`
	ImagePath       string           `json:"image_path,omitempty"`
	TabulatorID     *int64           `json:"tabulator_id,omitempty"`
}

// Score is one recorded score entry. For pageants CriteriaID is set;
// for quiz rounds QuestionNumber and IsCorrect are set. JudgeID holds
// the scorer regardless of role (judge or tabulator).
type Score struct {
	ID             int64   `json:"id"`
	ContestantID   int64   `json:"contestant_id"`
	SegmentID      int64   `json:"segment_id"`
	JudgeID        int64   `json:"judge_id"`
	CriteriaID     *int64  `json:"criteria_id,omitempty"`
	QuestionNumber *int    `json:"question_number,omitempty"`
	IsCorrect      *bool   `json:"is_correct,omitempty"`
	Value          float64 `json:"score_value"`
}

// AuditEntry is one append-only audit log record
type AuditEntry struct {
	ID        int64  `json:"id"`
	ActorID   int64  `json:"actor_id"`
	Action    string `json:"action"`
	Detail    string `json:"detail"`
	CreatedAt string `json:"created_at"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
