package usecase

import (
	"errors"

	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/domain"
	"github.com/legalmonkey/MIC-GitHub-Submission/internal/core/port"
)

// outcomeOf collapses an error into the label used for metrics and span status.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrAuthentication):
		return "authentication"
	default:
		return "error"
	}
}

func observe(metrics port.AuthMetrics, operation string, err error) {
	if metrics == nil {
		return
	}
	metrics.ObserveOutcome(operation, outcomeOf(err))
}
