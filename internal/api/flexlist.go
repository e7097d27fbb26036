package api

import (
	"encoding/json"
	"strings"
)

// StringList normalises the upstream API's array-like fields. Older records
// carry them as JSON-encoded strings or comma-separated text, newer ones as
// native arrays; downstream code always sees []string. Decoding order:
// native array, JSON array inside a string, comma-split, single-element wrap.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*s = trimAll(items)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*s = nil
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			*s = trimAll(items)
			return nil
		}
	}
	if strings.Contains(raw, ",") {
		*s = trimAll(strings.Split(raw, ","))
		return nil
	}
	*s = StringList{raw}
	return nil
}

func (s StringList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(s))
}

func trimAll(items []string) StringList {
	out := make(StringList, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
