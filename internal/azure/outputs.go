package azure

import (
	"encoding/json"
	"fmt"
	"strings"
)

// outputValue mirrors one entry of the engine's properties.outputs payload.
type outputValue struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// decodeOutputs converts the engine's outputs JSON into a flat string map.
// A null or empty payload yields a nil map and no error.
func decodeOutputs(data []byte) (map[string]string, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	var raw map[string]outputValue
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, fmt.Errorf("decode deployment outputs: %w", err)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if v.Value == nil {
			continue
		}
		if s, ok := v.Value.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprint(v.Value)
	}
	return out, nil
}
