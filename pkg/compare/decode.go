package compare

import (
	"encoding/json"
	"unicode/utf8"
)

// decodePayload applies the permissive inbound decoding: valid JSON yields
// the decoded value (including JSON null), non-JSON UTF-8 yields the text,
// anything else stays raw bytes. The boolean reports whether structured
// decoding succeeded.
func decodePayload(raw []byte) (any, bool) {
	if !utf8.Valid(raw) {
		return raw, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw), false
	}
	return v, true
}
