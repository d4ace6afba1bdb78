package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeBody accepts both bare payloads and {"data": ...} envelopes.
func decodeBody(body []byte, out any) error {
	payload := bytes.TrimSpace(body)
	if len(payload) == 0 {
		return nil
	}
	if payload[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(payload, &env); err == nil {
			if d := bytes.TrimSpace(env.Data); len(d) > 0 && !bytes.Equal(d, []byte("null")) {
				payload = d
			}
		}
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}
