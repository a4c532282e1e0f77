package lightroom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

// guardPrefix matches the anti-hijacking preface the service prepends to
// every JSON body. Whitespace inside the construct varies between
// deployments, so the pattern tolerates it.
var guardPrefix = regexp.MustCompile(`^while\s*\(\s*1\s*\)\s*\{\s*\}`)

// decodeGuarded strips one leading guard preface and unmarshals the
// remainder into out. An empty body leaves out untouched. A body without
// the preface, or one whose remainder is not valid JSON, is a malformed
// response.
func decodeGuarded(body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	loc := guardPrefix.FindIndex(trimmed)
	if loc == nil {
		return fmt.Errorf("%w: missing security preface", ErrMalformedResponse)
	}
	rest := bytes.TrimSpace(trimmed[loc[1]:])
	if len(rest) == 0 {
		return nil
	}
	if out == nil {
		if !json.Valid(rest) {
			return fmt.Errorf("%w: invalid JSON after preface", ErrMalformedResponse)
		}
		return nil
	}
	if err := json.Unmarshal(rest, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
