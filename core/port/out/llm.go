package out

import (
	"context"

	"quotable_server/core/domain"
)

// IntentAnalyzer is the language-model-backed classification capability.
// Both calls are best-effort: the analysis service defaults to a negative or
// empty result when they fail.
type IntentAnalyzer interface {
	// ClassifyIntent decides whether the email is a customer request.
	ClassifyIntent(ctx context.Context, subject, body string) (*domain.IntentResult, error)

	// ExtractProducts pulls structured line items out of the email.
	ExtractProducts(ctx context.Context, subject, body string) (*domain.ProductExtraction, error)
}
