package sqlstore

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// timestamp scans whatever a driver returns for a datetime column. Values it
// cannot read leave Time zero and set Invalid; Scan never fails the row.
type timestamp struct {
	Time    time.Time
	Invalid bool
}

func (ts *timestamp) Scan(src any) error {
	ts.Time, ts.Invalid = time.Time{}, false
	switch v := src.(type) {
	case nil:
		ts.Invalid = true
	case time.Time:
		ts.Time = v.UTC()
		ts.Invalid = v.IsZero()
	case string:
		ts.parse(v)
	case []byte:
		ts.parse(string(v))
	case int64:
		ts.Time = time.Unix(v, 0).UTC()
	default:
		ts.Invalid = true
	}
	return nil
}

func (ts *timestamp) parse(s string) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t.UTC()
			return
		}
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		ts.Time = time.Unix(secs, 0).UTC()
		return
	}
	ts.Invalid = true
}

// decodeJSONList decodes a JSON array column. Empty or malformed input gives
// an empty list and ok=false for malformed input only.
func decodeJSONList[T any](raw []byte) (out []T, ok bool) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return []T{}, true
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return []T{}, false
	}
	if out == nil {
		out = []T{}
	}
	return out, true
}

func encodeJSONList[T any](list []T) (string, error) {
	if list == nil {
		list = []T{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
