package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotable_server/core/domain"
	"quotable_server/core/port/in"
	"quotable_server/pkg/apperr"
)

// stubEmails implements only Get; the embedded interface covers the rest.
type stubEmails struct {
	in.EmailService
	msg *domain.Message
	err error
}

func (s *stubEmails) Get(context.Context, string, string) (*domain.Message, error) {
	return s.msg, s.err
}

type stubAnalyzer struct {
	intent     *domain.IntentResult
	intentErr  error
	extraction *domain.ProductExtraction
	extractErr error

	extractCalled bool
}

func (s *stubAnalyzer) ClassifyIntent(context.Context, string, string) (*domain.IntentResult, error) {
	return s.intent, s.intentErr
}

func (s *stubAnalyzer) ExtractProducts(context.Context, string, string) (*domain.ProductExtraction, error) {
	s.extractCalled = true
	return s.extraction, s.extractErr
}

func testMessage() *domain.Message {
	return &domain.Message{
		ID:      "msg-1",
		Subject: "Quote request",
		Body:    &domain.Body{ContentType: "text", Content: "Need 5 units of X-100"},
	}
}

func strPtr(s string) *string { return &s }

func TestAnalyzePositiveIntentExtractsProducts(t *testing.T) {
	analyzer := &stubAnalyzer{
		intent: &domain.IntentResult{IsCustomerRequest: true, Confidence: 0.92, Reasoning: "explicit quote request"},
		extraction: &domain.ProductExtraction{
			OpportunityName: "Contoso - X-100",
			Products:        []domain.Product{{Name: strPtr("X-100")}},
		},
	}
	svc := NewService(&stubEmails{msg: testMessage()}, analyzer)

	result, err := svc.Analyze(context.Background(), "sess", "msg-1")
	require.NoError(t, err)
	assert.True(t, result.IsCustomerRequest)
	assert.Equal(t, 0.92, result.Confidence)
	assert.Equal(t, "Contoso - X-100", result.OpportunityName)
	require.Len(t, result.Products, 1)
	assert.True(t, analyzer.extractCalled)
}

func TestAnalyzeNegativeIntentSkipsExtraction(t *testing.T) {
	analyzer := &stubAnalyzer{
		intent: &domain.IntentResult{IsCustomerRequest: false, Confidence: 0.85, Reasoning: "newsletter"},
	}
	svc := NewService(&stubEmails{msg: testMessage()}, analyzer)

	result, err := svc.Analyze(context.Background(), "sess", "msg-1")
	require.NoError(t, err)
	assert.False(t, result.IsCustomerRequest)
	assert.NotNil(t, result.Products)
	assert.Empty(t, result.Products)
	assert.False(t, analyzer.extractCalled, "extraction must not run on a negative verdict")
}

func TestAnalyzeClassifierFailureYieldsNegativeResult(t *testing.T) {
	analyzer := &stubAnalyzer{intentErr: errors.New("connection refused")}
	svc := NewService(&stubEmails{msg: testMessage()}, analyzer)

	result, err := svc.Analyze(context.Background(), "sess", "msg-1")
	require.NoError(t, err, "classifier failure must not propagate")
	assert.False(t, result.IsCustomerRequest)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Contains(t, result.Reasoning, "Error during analysis")
	assert.NotNil(t, result.Products)
	assert.Empty(t, result.Products)
	assert.False(t, analyzer.extractCalled)
}

func TestAnalyzeExtractionFailureKeepsIntent(t *testing.T) {
	analyzer := &stubAnalyzer{
		intent:     &domain.IntentResult{IsCustomerRequest: true, Confidence: 0.9, Reasoning: "quote"},
		extractErr: errors.New("bad JSON"),
	}
	svc := NewService(&stubEmails{msg: testMessage()}, analyzer)

	result, err := svc.Analyze(context.Background(), "sess", "msg-1")
	require.NoError(t, err)
	assert.True(t, result.IsCustomerRequest, "intent verdict survives an extraction failure")
	assert.Empty(t, result.OpportunityName)
	assert.Empty(t, result.Products)
}

func TestAnalyzeFetchFailurePropagates(t *testing.T) {
	svc := NewService(&stubEmails{err: apperr.SessionNotFound("sess")}, &stubAnalyzer{})

	_, err := svc.Analyze(context.Background(), "sess", "msg-1")
	require.Error(t, err, "only the message fetch may fail the call")
	assert.True(t, apperr.IsCode(err, apperr.CodeSessionNotFound))
}
