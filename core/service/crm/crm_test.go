package crm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotable_server/core/domain"
	"quotable_server/pkg/apperr"
)

func TestDeduceAccountInfo(t *testing.T) {
	tests := []struct {
		name        string
		from        *domain.Recipient
		wantAccount string
		wantContact string
	}{
		{
			name: "display name and plain domain",
			from: &domain.Recipient{EmailAddress: domain.EmailAddress{
				Address: "jane.doe@contoso.com", Name: "Jane Doe",
			}},
			wantAccount: "Contoso",
			wantContact: "Jane Doe",
		},
		{
			name: "no display name titles the local part",
			from: &domain.Recipient{EmailAddress: domain.EmailAddress{
				Address: "jane.doe@contoso.com",
			}},
			wantAccount: "Contoso",
			wantContact: "Jane Doe",
		},
		{
			name: "multi-label domain uses the registrable label",
			from: &domain.Recipient{EmailAddress: domain.EmailAddress{
				Address: "ops@mail.fabrikam.co.uk",
			}},
			wantAccount: "Co",
			wantContact: "Ops",
		},
		{
			name: "dashed domain becomes spaced words",
			from: &domain.Recipient{EmailAddress: domain.EmailAddress{
				Address: "info@blue-yonder.com",
			}},
			wantAccount: "Blue Yonder",
			wantContact: "Info",
		},
		{
			name:        "nil sender yields empty info",
			from:        nil,
			wantAccount: "",
			wantContact: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, contact := DeduceAccountInfo(tt.from)
			assert.Equal(t, tt.wantAccount, account)
			assert.Equal(t, tt.wantContact, contact)
		})
	}
}

func TestOpportunityLifecycle(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	created, err := svc.CreateOpportunity(ctx, &domain.Opportunity{
		OpportunityName: "Contoso - X-100",
		AccountName:     "Contoso",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.GetOpportunity(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Contoso - X-100", got.OpportunityName)
}

func TestGetOpportunityUnknownID(t *testing.T) {
	svc := NewService()

	_, err := svc.GetOpportunity(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
