package llm

import (
	"context"

	"quotable_server/core/domain"
	"quotable_server/pkg/apperr"
)

// Unconfigured is the analyzer used when no API key is present. Every call
// fails with an upstream error, which the analysis service folds into a
// negative result.
type Unconfigured struct{}

func (Unconfigured) ClassifyIntent(context.Context, string, string) (*domain.IntentResult, error) {
	return nil, apperr.Upstream("llm", "analysis is not configured")
}

func (Unconfigured) ExtractProducts(context.Context, string, string) (*domain.ProductExtraction, error) {
	return nil, apperr.Upstream("llm", "analysis is not configured")
}
