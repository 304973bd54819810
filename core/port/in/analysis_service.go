package in

import (
	"context"

	"quotable_server/core/domain"
)

// AnalysisService runs the classify-then-extract sequence over one message.
type AnalysisService interface {
	// Analyze fetches the message, classifies intent, and extracts
	// products when the classification is positive. Classification
	// failures never propagate; they yield a negative result.
	Analyze(ctx context.Context, sessionID, messageID string) (*domain.EmailAnalysis, error)
}
