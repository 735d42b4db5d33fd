package handlers

// EventCreateRequest represents a request to create an event
type EventCreateRequest struct {
	ActorID   int64  `json:"actor_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	EventType string `json:"event_type" validate:"required,oneof=pageant quiz_bee"`
}

// ContestantCreateRequest represents a request to register a contestant
type ContestantCreateRequest struct {
	ActorID         int64  `json:"actor_id" validate:"required"`
	CandidateNumber int    `json:"candidate_number" validate:"required,min=1"`
	Name            string `json:"name" validate:"required"`
	Gender          string `json:"gender" validate:"required,oneof=Male Female"`
	ImagePath       string `json:"image_path"`
	TabulatorID     *int64 `json:"tabulator_id"`
}

// ContestantStatusRequest represents a request to override a contestant's status
type ContestantStatusRequest struct {
	ActorID int64  `json:"actor_id" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=Active Eliminated"`
}

// SegmentCreateRequest represents a request to create or update a pageant segment
type SegmentCreateRequest struct {
	ActorID          int64   `json:"actor_id" validate:"required"`
	Name             string  `json:"name" validate:"required"`
	Weight           float64 `json:"weight" validate:"min=0"`
	OrderIndex       int     `json:"order_index" validate:"min=0"`
	Kind             string  `json:"kind" validate:"omitempty,oneof=normal final clincher"`
	QualifierLimit   int     `json:"qualifier_limit" validate:"min=0"`
	RelatedSegmentID *int64  `json:"related_segment_id"`
}

// QuizRoundCreateRequest represents a request to create or update a quiz round
type QuizRoundCreateRequest struct {
	ActorID           int64   `json:"actor_id" validate:"required"`
	Name              string  `json:"name" validate:"required"`
	PointsPerQuestion float64 `json:"points_per_question" validate:"required,gt=0"`
	TotalQuestions    int     `json:"total_questions" validate:"required,gt=0"`
	OrderIndex        int     `json:"order_index" validate:"min=0"`
	Kind              string  `json:"kind" validate:"omitempty,oneof=normal final clincher"`
	RelatedSegmentID  *int64  `json:"related_segment_id"`
}

// CriteriaCreateRequest represents a request to create or update a judging criterion
type CriteriaCreateRequest struct {
	ActorID  int64   `json:"actor_id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Weight   float64 `json:"weight" validate:"min=0"`
	MaxScore float64 `json:"max_score" validate:"required,gt=0"`
}

// DeleteRequest carries the acting user for delete endpoints
type DeleteRequest struct {
	ActorID int64 `json:"actor_id" validate:"required"`
}

// ScoreSubmitRequest represents a judge submitting a criterion score
type ScoreSubmitRequest struct {
	JudgeID      int64   `json:"judge_id" validate:"required"`
	ContestantID int64   `json:"contestant_id" validate:"required"`
	CriteriaID   int64   `json:"criteria_id" validate:"required"`
	Value        float64 `json:"value" validate:"min=0"`
}

// AnswerSubmitRequest represents a tabulator recording a quiz answer
type AnswerSubmitRequest struct {
	TabulatorID    int64 `json:"tabulator_id" validate:"required"`
	ContestantID   int64 `json:"contestant_id" validate:"required"`
	RoundID        int64 `json:"round_id" validate:"required"`
	QuestionNumber int   `json:"question_number" validate:"required,min=1"`
	IsCorrect      bool  `json:"is_correct"`
}

// ActivateRequest represents a request to activate a segment
type ActivateRequest struct {
	ActorID int64 `json:"actor_id" validate:"required"`
}

// FinalRoundRequest represents a request to cut over to a final round
type FinalRoundRequest struct {
	ActorID        int64 `json:"actor_id" validate:"required"`
	SegmentID      int64 `json:"segment_id" validate:"required"`
	QualifierLimit int   `json:"qualifier_limit" validate:"required,gt=0"`
}

// AdvanceRoundRequest represents a request to advance past a quiz round
type AdvanceRoundRequest struct {
	ActorID        int64   `json:"actor_id" validate:"required"`
	CurrentRoundID int64   `json:"current_round_id" validate:"required"`
	QualifiedIDs   []int64 `json:"qualified_ids"`
}

// EliminateRequest represents a request to keep only the listed contestants
type EliminateRequest struct {
	ActorID    int64   `json:"actor_id" validate:"required"`
	KeepingIDs []int64 `json:"keeping_ids" validate:"required,min=1"`
}
