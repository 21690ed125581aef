// Package shared holds helpers common to the domain modules.
package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	"avenstudio/internal/contract"
	"avenstudio/internal/pkg/apperr"
	"avenstudio/internal/store"
)

// Records is the part of the record store the modules depend on.
type Records interface {
	Get(ctx context.Context, table, id string) (store.Record, error)
	Query(ctx context.Context, table string, filters store.Record) ([]store.Record, error)
	Insert(ctx context.Context, table string, rec store.Record) (string, error)
	Update(ctx context.Context, table, id string, rec store.Record) (bool, error)
	Delete(ctx context.Context, table, id string) (bool, error)
	UpdateWhere(ctx context.Context, table string, filters, rec store.Record) (int64, error)
}

// Clock returns the current time. Modules take one so tests can pin "now".
type Clock func() time.Time

// Deleted is the data returned by delete actions. ProjectID names the
// project the removed record belonged to and is used to route change events.
type Deleted struct {
	Deleted   bool   `json:"deleted"`
	ID        string `json:"id"`
	ProjectID string `json:"-"`
}

func (d Deleted) ProjectRef() string { return d.ProjectID }

// Bind decodes the data payload of a raw request into dst. An absent payload
// leaves dst untouched.
func Bind(raw contract.RawRequest, dst any) error {
	data := bytes.TrimSpace(raw.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return apperr.Validation("invalid data: %v", err)
	}
	return nil
}

// BindFilters decodes the filters of a raw request into dst.
func BindFilters(raw contract.RawRequest, dst any) error {
	if len(raw.Filters) == 0 {
		return nil
	}
	b, err := json.Marshal(raw.Filters)
	if err != nil {
		return apperr.Validation("invalid filters: %v", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return apperr.Validation("invalid filters: %v", err)
	}
	return nil
}

// UnknownAction is returned by Decode for an action the module does not have.
func UnknownAction(action string) error {
	return apperr.Validation("Unknown action: %s", action)
}

// Unsupported is returned by Handle for a request type it does not own.
func Unsupported(req contract.Request) error {
	return apperr.Validation("Unknown action: %s", req.Route().Action)
}

// Set copies *v into rec[field] when v is non-nil.
func Set[T any](rec store.Record, field string, v *T) {
	if v != nil {
		rec[field] = *v
	}
}

// Filter builds a store filter from optional values; nil entries are ignored
// by the store.
func Filter(pairs map[string]*string) store.Record {
	out := make(store.Record, len(pairs))
	for k, v := range pairs {
		if v != nil && *v != "" {
			out[k] = *v
		}
	}
	return out
}

// Stamp sets created_at and updated_at to now.
func Stamp(rec store.Record, now time.Time) store.Record {
	ts := store.FormatTime(now)
	rec["created_at"] = ts
	rec["updated_at"] = ts
	return rec
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts RFC 3339 timestamps, timestamps without a zone and plain
// dates. Values without a zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateOf parses rec[field] as a date.
func DateOf(rec store.Record, field string) (time.Time, bool) {
	return ParseDate(rec.String(field))
}

// SortByDate orders records by a date field; records without a parseable
// date always go last.
func SortByDate(recs []store.Record, field string, desc bool) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, aok := DateOf(recs[i], field)
		b, bok := DateOf(recs[j], field)
		switch {
		case aok && bok:
			if desc {
				return a.After(b)
			}
			return a.Before(b)
		case aok:
			return true
		default:
			return false
		}
	})
}

// SortByText orders records by a text field, ignoring case.
func SortByText(recs []store.Record, field string) {
	sort.SliceStable(recs, func(i, j int) bool {
		return strings.ToLower(recs[i].String(field)) < strings.ToLower(recs[j].String(field))
	})
}

// Round1 rounds to one decimal place.
func Round1(x float64) float64 { return math.Round(x*10) / 10 }

// Percent returns part/whole*100, or 0 when whole is 0.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// Require fetches a record and turns a missing one into a not-found error
// with the given message.
func Require(ctx context.Context, records Records, table, id, notFound string) (store.Record, error) {
	rec, err := records.Get(ctx, table, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NotFound("%s", notFound)
	}
	return rec, nil
}

// Result turns a (value, error) pair into an envelope.
func Result[T any](v T, err error) contract.Response {
	if err != nil {
		return contract.Fail(err)
	}
	return contract.OK(v)
}

// Count returns the number of records per value of field, using fallback
// for records where the field is empty.
func Count(recs []store.Record, field, fallback string) map[string]int {
	out := make(map[string]int)
	for _, r := range recs {
		v := r.String(field)
		if v == "" {
			v = fallback
		}
		out[v]++
	}
	return out
}
