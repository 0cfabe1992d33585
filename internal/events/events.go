package events

import (
	"time"

	"github.com/google/uuid"

	"minerva/internal/domain/rating"
)

// RunCompletedEvent announces that a full rating batch run finished.
type RunCompletedEvent struct {
	RunID         uuid.UUID `json:"run_id"`
	RatingDate    time.Time `json:"rating_date"`
	TickersScored int       `json:"tickers_scored"`
	NilComposites int       `json:"nil_composites"`
	ConfigVersion string    `json:"config_version"`
	DurationMS    int64     `json:"duration_ms"`
}

// RunFailedEvent announces that a batch run aborted.
type RunFailedEvent struct {
	RunID uuid.UUID `json:"run_id"`
	Error string    `json:"error"`
}

// GradeChangedEvent announces that a ticker's grade moved between runs.
type GradeChangedEvent struct {
	Ticker         string        `json:"ticker"`
	RunID          uuid.UUID     `json:"run_id"`
	RatingDate     time.Time     `json:"rating_date"`
	PreviousGrade  rating.Grade  `json:"previous_grade"`
	Grade          rating.Grade  `json:"grade"`
	Action         rating.Action `json:"action"`
	CompositeScore *float64      `json:"composite_score"`
	Rank           int           `json:"rank"`
}
