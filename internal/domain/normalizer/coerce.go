package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"ceylon_travel/internal/domain/models"
)

// pick returns the first alias that carries a usable value. Aliases are
// listed in precedence order: the current column name first, legacy names after.
func pick(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v
	}
	return nil
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case models.ID:
		return string(t)
	default:
		return ""
	}
}

func float(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		f, _ = t.Float64()
	case string:
		f, _ = strconv.ParseFloat(strings.TrimSpace(t), 64)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func boolean(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	case float64:
		return t != 0
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		f, _ := t.Float64()
		return f != 0
	default:
		return false
	}
}

// list accepts real arrays and JSON-encoded arrays kept in text columns.
// Anything else is treated as an empty list.
func list(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out
	case string:
		s := strings.TrimSpace(t)
		if !strings.HasPrefix(s, "[") {
			return nil
		}
		var out []any
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil
		}
		return out
	case []byte:
		return list(string(t))
	default:
		return nil
	}
}

func strList(v any) []string {
	items := list(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(str(item))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func object(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case models.SiteContent:
		return map[string]any(t)
	case string:
		s := strings.TrimSpace(t)
		if !strings.HasPrefix(s, "{") {
			return nil
		}
		var out map[string]any
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil
		}
		return out
	case []byte:
		return object(string(t))
	default:
		return nil
	}
}

func timestamp(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return &t
	case *time.Time:
		if t == nil || t.IsZero() {
			return nil
		}
		tt := *t
		return &tt
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999-07", "2006-01-02T15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, s); err == nil {
				return &parsed
			}
		}
	}
	return nil
}

func oneOf(v string, allowed []string, fallback string) string {
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(v), a) {
			return a
		}
	}
	return fallback
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func putTimes(row map[string]any, created, updated *time.Time) {
	if created != nil {
		row["created_at"] = *created
	}
	if updated != nil {
		row["updated_at"] = *updated
	}
}
