package kafka

// Topic definitions for Kafka event streaming
const (
	// Rating run lifecycle
	TopicRunCompleted = "ratings.run.completed"
	TopicRunFailed    = "ratings.run.failed"

	// Per-ticker rating events
	TopicGradeChanged = "ratings.grade_changed"
)
