// Package analysis runs the classify-then-extract sequence over messages.
package analysis

import (
	"context"

	"quotable_server/core/domain"
	"quotable_server/core/port/in"
	"quotable_server/core/port/out"
	"quotable_server/pkg/logger"
)

// Service sequences the classification capability: classify first, extract
// only on a positive verdict. Classification is best-effort and must never
// block the email-read path, so every capability failure is absorbed into a
// negative or empty result.
type Service struct {
	emails   in.EmailService
	analyzer out.IntentAnalyzer
}

// NewService creates the analysis service.
func NewService(emails in.EmailService, analyzer out.IntentAnalyzer) *Service {
	return &Service{
		emails:   emails,
		analyzer: analyzer,
	}
}

// Analyze fetches the message and runs the sequence. Only the fetch itself
// can fail; analysis errors are folded into the result.
func (s *Service) Analyze(ctx context.Context, sessionID, messageID string) (*domain.EmailAnalysis, error) {
	msg, err := s.emails.Get(ctx, sessionID, messageID)
	if err != nil {
		return nil, err
	}

	subject := msg.Subject
	body := msg.BodyText()

	intent, err := s.analyzer.ClassifyIntent(ctx, subject, body)
	if err != nil {
		logger.WithError(err).Error("intent classification failed for message %s", messageID)
		return &domain.EmailAnalysis{
			IsCustomerRequest: false,
			Confidence:        0.0,
			Reasoning:         "Error during analysis: " + err.Error(),
			Products:          []domain.Product{},
		}, nil
	}

	result := &domain.EmailAnalysis{
		IsCustomerRequest: intent.IsCustomerRequest,
		Confidence:        intent.Confidence,
		Reasoning:         intent.Reasoning,
		Products:          []domain.Product{},
	}

	if !intent.IsCustomerRequest {
		return result, nil
	}

	extraction, err := s.analyzer.ExtractProducts(ctx, subject, body)
	if err != nil {
		logger.WithError(err).Error("product extraction failed for message %s", messageID)
		return result, nil
	}

	result.OpportunityName = extraction.OpportunityName
	if extraction.Products != nil {
		result.Products = extraction.Products
	}

	return result, nil
}

var _ in.AnalysisService = (*Service)(nil)
