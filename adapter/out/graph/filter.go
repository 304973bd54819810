package graph

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"quotable_server/core/domain"
)

const (
	defaultPageSize = 25
	defaultOrderBy  = "receivedDateTime desc"

	// Minimal field list fetched when the caller does not want bodies.
	// Skipping bodies keeps list responses small.
	listSelectFields = "subject,receivedDateTime,from,isRead,hasAttachments,importance"

	// Attachment metadata is always expanded, independent of body inclusion.
	attachmentExpand = "attachments($select=id,name,contentType,size,isInline)"
)

// QueryBuilder compiles domain.ListOptions into the OData query parameters
// understood by the Graph messages list endpoint.
//
// Emitted parameters:
//   - $top / $skip (pagination; $top clamped to MaxPageSize)
//   - $orderby
//   - $select (only when bodies are excluded)
//   - $expand (attachment metadata, always)
//   - $filter (AND-joined predicate clauses, fixed order)
//   - $search (free text, quoted, separate from $filter)
//
// The builder is pure: output depends only on the options and Now. Note that
// Graph constrains how $filter and $search combine; keeping them compatible
// is the caller's responsibility.
type QueryBuilder struct {
	// MaxPageSize is the ceiling for $top. Zero means 100.
	MaxPageSize int

	// Now supplies the wall clock for date-filter resolution. Nil means
	// time.Now.
	Now func() time.Time
}

// Build validates the options and compiles the query parameters.
func (b *QueryBuilder) Build(opts domain.ListOptions) (url.Values, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	maxPageSize := b.MaxPageSize
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	limit := opts.Limit
	if limit == 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = defaultOrderBy
	}

	params := url.Values{}
	params.Set("$top", fmt.Sprintf("%d", limit))
	params.Set("$skip", fmt.Sprintf("%d", opts.Skip))
	params.Set("$orderby", orderBy)
	params.Set("$expand", attachmentExpand)

	if !opts.IncludeBody {
		params.Set("$select", listSelectFields)
	}

	filter := b.buildFilter(opts)
	if filter != "" {
		params.Set("$filter", filter)
	}

	if opts.Search != "" {
		params.Set("$search", fmt.Sprintf("%q", opts.Search))
	}

	return params, nil
}

// buildFilter assembles the AND-joined predicate string. Clause order is
// fixed: unread, attachments, sender, date. No OR support.
func (b *QueryBuilder) buildFilter(opts domain.ListOptions) string {
	var clauses []string

	if opts.UnreadOnly {
		clauses = append(clauses, "isRead eq false")
	}

	if opts.HasAttachments != nil {
		clauses = append(clauses, fmt.Sprintf("hasAttachments eq %t", *opts.HasAttachments))
	}

	if opts.FromAddress != "" {
		clauses = append(clauses,
			fmt.Sprintf("from/emailAddress/address eq '%s'", escapeODataString(opts.FromAddress)))
	}

	if opts.DateFilter != "" {
		if clause := b.dateClause(opts.DateFilter); clause != "" {
			clauses = append(clauses, clause)
		}
	}

	return strings.Join(clauses, " and ")
}

// dateClause resolves a relative date filter against the current wall clock.
// Lower bounds are inclusive, upper bounds exclusive.
func (b *QueryBuilder) dateClause(filter domain.DateFilter) string {
	now := time.Now()
	if b.Now != nil {
		now = b.Now()
	}
	today := startOfDay(now)

	switch filter {
	case domain.DateToday:
		return received("ge", today)
	case domain.DateYesterday:
		return received("ge", today.AddDate(0, 0, -1)) + " and " + received("lt", today)
	case domain.DateThisWeek:
		return received("ge", startOfWeek(today))
	case domain.DateLastWeek:
		monday := startOfWeek(today)
		return received("ge", monday.AddDate(0, 0, -7)) + " and " + received("lt", monday)
	case domain.DateThisMonth:
		return received("ge", startOfMonth(today))
	case domain.DateLastMonth:
		first := startOfMonth(today)
		return received("ge", first.AddDate(0, -1, 0)) + " and " + received("lt", first)
	case domain.DateLast7Days:
		return received("ge", today.AddDate(0, 0, -7))
	case domain.DateLast30:
		return received("ge", today.AddDate(0, 0, -30))
	}
	return ""
}

func received(op string, t time.Time) string {
	return fmt.Sprintf("receivedDateTime %s %s", op, t.Format("2006-01-02"))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the most recent Monday (ISO weekday 1).
func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func startOfMonth(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
}

// escapeODataString escapes a literal for embedding in an OData string:
// single quotes are doubled.
func escapeODataString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
