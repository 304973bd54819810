package domain

// IntentResult is the classification verdict for one message.
type IntentResult struct {
	IsCustomerRequest bool    `json:"is_customer_request"`
	Confidence        float64 `json:"confidence"`
	Reasoning         string  `json:"reasoning"`
}

// Product is one extracted line item. All fields are optional; extraction is
// best-effort and may be incomplete.
type Product struct {
	Name           *string `json:"name"`
	Quantity       *int    `json:"quantity"`
	PartNumber     *string `json:"partNumber"`
	PartNumberType *string `json:"partNumberType"`
	Description    *string `json:"description"`
}

// ProductExtraction is the structured output of the extraction step.
type ProductExtraction struct {
	OpportunityName string    `json:"opportunity_name"`
	Products        []Product `json:"products"`
}

// EmailAnalysis is the combined classify-then-extract result for a message.
type EmailAnalysis struct {
	IsCustomerRequest bool      `json:"is_customer_request"`
	Confidence        float64   `json:"confidence"`
	Reasoning         string    `json:"reasoning"`
	OpportunityName   string    `json:"opportunity_name,omitempty"`
	Products          []Product `json:"products"`
}
