package store

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"avenstudio/internal/pkg/apperr"
)

// Record is a flat row keyed by column name. List and mapping columns hold
// decoded values ([]any, map[string]any) rather than their stored text.
type Record map[string]any

// RawText is what a list or mapping column decodes to when its stored text is
// not valid JSON. It marshals as a plain string.
type RawText string

// TimeLayout is the textual form of every timestamp written by the store.
const TimeLayout = time.RFC3339

// FormatTime renders t the way the store persists timestamps.
func FormatTime(t time.Time) string { return t.UTC().Format(TimeLayout) }

// encode converts a record into engine values using the table declaration.
func encode(t *Table, rec Record) (map[string]any, error) {
	out := make(map[string]any, len(rec))
	for name, v := range rec {
		col, ok := t.Column(name)
		if !ok {
			return nil, apperr.Validation("unknown field %q for %s", name, t.Name)
		}
		ev, err := encodeValue(col, v)
		if err != nil {
			return nil, err
		}
		out[name] = ev
	}
	return out, nil
}

func encodeValue(col Column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		v = rv.Elem().Interface()
	}
	if raw, ok := v.(RawText); ok {
		return string(raw), nil
	}
	if col.Kind.Structured() {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, apperr.Validation("field %q: %v", col.Name, err)
		}
		return datatypes.JSON(b), nil
	}
	switch x := v.(type) {
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case time.Time:
		return FormatTime(x), nil
	case json.Number:
		if col.Kind == KindInt {
			return x.Int64()
		}
		return x.Float64()
	}
	return v, nil
}

// decode converts an engine row into a Record. Columns missing from the
// declaration are passed through unchanged.
func decode(t *Table, row map[string]any) Record {
	rec := make(Record, len(row))
	for name, v := range row {
		col, ok := t.Column(name)
		if !ok {
			rec[name] = v
			continue
		}
		rec[name] = decodeValue(col, v)
	}
	return rec
}

func decodeValue(col Column, v any) any {
	if v == nil {
		return nil
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	switch col.Kind {
	case KindList, KindMap:
		s, ok := v.(string)
		if !ok {
			return v
		}
		var j datatypes.JSON
		if err := j.Scan(s); err != nil {
			return RawText(s)
		}
		var out any
		if err := json.Unmarshal(j, &out); err != nil {
			return RawText(s)
		}
		return out
	case KindBool:
		return toBool(v)
	case KindInt:
		if n, ok := toInt(v); ok {
			return n
		}
		return v
	case KindReal:
		if f, ok := toFloat(v); ok {
			return f
		}
		return v
	case KindText, KindTime:
		if tm, ok := v.(time.Time); ok {
			return FormatTime(tm)
		}
		return v
	}
	return v
}

func toBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int64:
		return x != 0
	case int:
		return x != 0
	case int32:
		return x != 0
	case float64:
		return x != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "1", "true", "t", "yes":
			return true
		}
		return false
	}
	return false
}

func toInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case float64:
		return int64(math.Round(x)), true
	case float32:
		return int64(math.Round(float64(x))), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

// String returns the text value of field, or "" when absent or not text.
func (r Record) String(field string) string {
	switch x := r[field].(type) {
	case string:
		return x
	case RawText:
		return string(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// Float returns the numeric value of field, or 0.
func (r Record) Float(field string) float64 {
	f, _ := toFloat(r[field])
	return f
}

// Int returns the integer value of field and whether one was present.
func (r Record) Int(field string) (int64, bool) {
	return toInt(r[field])
}

func (r Record) Bool(field string) bool { return toBool(r[field]) }

// List returns the decoded list value of field. Raw text and absent values
// yield nil.
func (r Record) List(field string) []any {
	l, _ := r[field].([]any)
	return l
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
