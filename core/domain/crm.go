package domain

import "time"

// Opportunity is a quoting opportunity derived from an analyzed email.
type Opportunity struct {
	ID              string    `json:"id"`
	OpportunityName string    `json:"opportunityName,omitempty"`
	AccountName     string    `json:"accountName,omitempty"`
	KeyContact      string    `json:"keyContact,omitempty"`
	Products        []Product `json:"products,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
