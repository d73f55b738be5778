package parser

import (
	"encoding/json"
	"strings"
)

func JsonParse(json_format_str ...string) (m map[string]any, err error) {
	m = map[string]any{}
	for _, json_str := range json_format_str {
		if strings.TrimSpace(json_str) == "" {
			continue
		}
		doc := map[string]any{}
		if err = json.Unmarshal([]byte(json_str), &doc); err != nil {
			return nil, err
		}
		Flatten(m, "", doc)
	}
	return m, nil
}

// Flatten copies nested maps from src into dst under dotted keys.
func Flatten(dst map[string]any, prefix string, src map[string]any) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			Flatten(dst, key, sub)
			continue
		}
		dst[key] = v
	}
}
