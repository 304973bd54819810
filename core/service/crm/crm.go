// Package crm derives opportunity records from analyzed emails.
package crm

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"quotable_server/core/domain"
	"quotable_server/pkg/apperr"
)

// Service holds opportunities in memory and deduces account info from
// senders. Opportunities are demo-grade records handed to the quoting
// wizard, not a CRM integration.
type Service struct {
	mu            sync.RWMutex
	opportunities map[string]*domain.Opportunity
}

// NewService creates the CRM service.
func NewService() *Service {
	return &Service{
		opportunities: make(map[string]*domain.Opportunity),
	}
}

// DeduceAccountInfo derives an account name and key contact from the sender.
// The account name comes from the sender's mail domain with the TLD dropped;
// the key contact falls back to a titled local part when no display name is
// present.
func DeduceAccountInfo(from *domain.Recipient) (accountName, keyContact string) {
	if from == nil {
		return "", ""
	}

	email := from.EmailAddress.Address
	keyContact = from.EmailAddress.Name
	if keyContact == "" && email != "" {
		local, _, _ := strings.Cut(email, "@")
		keyContact = titleWords(strings.ReplaceAll(local, ".", " "))
	}

	if email != "" {
		if _, dom, ok := strings.Cut(email, "@"); ok {
			parts := strings.Split(dom, ".")
			company := parts[0]
			if len(parts) >= 2 {
				company = parts[len(parts)-2]
			}
			accountName = titleWords(strings.ReplaceAll(company, "-", " "))
		}
	}

	return accountName, keyContact
}

// CreateOpportunity stores a new opportunity, assigning it an identifier.
func (s *Service) CreateOpportunity(_ context.Context, opp *domain.Opportunity) (*domain.Opportunity, error) {
	stored := *opp
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.opportunities[stored.ID] = &stored
	s.mu.Unlock()

	return &stored, nil
}

// GetOpportunity returns a stored opportunity.
func (s *Service) GetOpportunity(_ context.Context, id string) (*domain.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	opp, ok := s.opportunities[id]
	if !ok {
		return nil, apperr.NotFound("opportunity")
	}
	return opp, nil
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
