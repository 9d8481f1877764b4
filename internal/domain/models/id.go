package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a record identity that travels as a JSON number when it is numeric
// (file-backed blog posts) and as a string otherwise (remote row ids, uuids).
type ID string

// Valid reports whether the id can address a record. Empty and literal zero
// ids come from stale clients and never address anything.
func (id ID) Valid() bool {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && n == 0 {
		return false
	}
	return true
}

// Int returns the numeric form of the id.
func (id ID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != string(id) {
		return 0, false
	}
	return n, true
}

func (id ID) String() string {
	return string(id)
}

func (id ID) MarshalJSON() ([]byte, error) {
	if n, ok := id.Int(); ok {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number or a string: %w", err)
	}
	*id = IDFromAny(n)
	return nil
}

// IDFromAny converts whatever a backend returned for an id column.
func IDFromAny(v any) ID {
	switch t := v.(type) {
	case nil:
		return ""
	case ID:
		return t
	case string:
		return ID(strings.TrimSpace(t))
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return ID(strconv.FormatInt(n, 10))
		}
		if f, err := t.Float64(); err == nil && f == float64(int64(f)) {
			return ID(strconv.FormatInt(int64(f), 10))
		}
		return ID(t.String())
	case float64:
		if t == float64(int64(t)) {
			return ID(strconv.FormatInt(int64(t), 10))
		}
		return ID(strconv.FormatFloat(t, 'f', -1, 64))
	case float32:
		return IDFromAny(float64(t))
	case int:
		return ID(strconv.Itoa(t))
	case int32:
		return ID(strconv.FormatInt(int64(t), 10))
	case int64:
		return ID(strconv.FormatInt(t, 10))
	case fmt.Stringer:
		return ID(t.String())
	default:
		return ID(fmt.Sprint(t))
	}
}
