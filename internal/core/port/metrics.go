package port

// AuthMetrics records the outcome of signup, login and logout attempts.
type AuthMetrics interface {
	ObserveOutcome(operation, outcome string)
}
