package domain

import "quotable_server/pkg/apperr"

// DateFilter selects a relative received-time window, resolved against the
// wall clock when the provider query is compiled.
type DateFilter string

const (
	DateToday     DateFilter = "today"
	DateYesterday DateFilter = "yesterday"
	DateThisWeek  DateFilter = "this_week"
	DateLastWeek  DateFilter = "last_week"
	DateThisMonth DateFilter = "this_month"
	DateLastMonth DateFilter = "last_month"
	DateLast7Days DateFilter = "last_7_days"
	DateLast30    DateFilter = "last_30_days"
)

// Valid reports whether the filter value is in the accepted set.
func (d DateFilter) Valid() bool {
	switch d {
	case DateToday, DateYesterday, DateThisWeek, DateLastWeek,
		DateThisMonth, DateLastMonth, DateLast7Days, DateLast30:
		return true
	}
	return false
}

// ListOptions is an immutable description of a mailbox list query.
// Constructed once per request; never mutated after validation.
type ListOptions struct {
	Folder         string
	Limit          int
	Skip           int
	Search         string
	DateFilter     DateFilter
	UnreadOnly     bool
	HasAttachments *bool
	FromAddress    string
	OrderBy        string
	IncludeBody    bool
}

// Validate rejects malformed options before any outbound call is attempted.
func (o ListOptions) Validate() error {
	if o.Limit < 0 {
		return apperr.ValidationFailed("limit", "must be non-negative")
	}
	if o.Skip < 0 {
		return apperr.ValidationFailed("skip", "must be non-negative")
	}
	if o.DateFilter != "" && !o.DateFilter.Valid() {
		return apperr.InvalidFilterOption("date_filter", string(o.DateFilter))
	}
	return nil
}
