package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"slices"
)

// classify turns a received response into a Result.
func classify(status int, raw []byte) Result {
	body := bytes.TrimSpace(raw)

	if status == http.StatusUnauthorized {
		f := AuthExpiredFailure()
		if msg, _ := errorMessage(body); msg != "" {
			f.Message = msg
		}
		return Fail(f)
	}

	if status < 200 || status >= 300 {
		msg, details := errorMessage(body)
		if msg == "" {
			msg = http.StatusText(status)
		}
		if msg == "" {
			msg = MsgRequest
		}
		return Fail(&Failure{Kind: KindHTTP, Message: msg, Status: status, Details: details})
	}

	if len(body) == 0 {
		return OK(status, nil)
	}
	if !json.Valid(body) {
		return Fail(&Failure{Kind: KindProtocol, Message: MsgProtocol, Status: status})
	}

	env, ok := parseEnvelope(body)
	if !ok {
		return OK(status, json.RawMessage(body))
	}
	if !env.Success {
		msg, details := errorMessage(body)
		if msg == "" {
			msg = MsgRequest
		}
		return Fail(&Failure{Kind: KindHTTP, Message: msg, Status: status, Details: details})
	}
	return OK(status, env.Data)
}

type envelope struct {
	Success bool
	Data    json.RawMessage
}

// parseEnvelope recognises the backend wrapper {success, message, data, error}.
// Only an object whose "success" member is a boolean counts.
func parseEnvelope(body []byte) (envelope, bool) {
	if body[0] != '{' {
		return envelope{}, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return envelope{}, false
	}
	var success bool
	if err := json.Unmarshal(fields["success"], &success); err != nil {
		return envelope{}, false
	}
	return envelope{Success: success, Data: fields["data"]}, true
}

// errorMessage digs a human message out of an error body. It tries
// error.message, error (as a string), detail, message, then the first
// field error of a validation response.
func errorMessage(body []byte) (string, json.RawMessage) {
	if len(body) == 0 || body[0] != '{' {
		return "", nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", nil
	}

	if raw, ok := fields["error"]; ok {
		var obj struct {
			Message string          `json:"message"`
			Details json.RawMessage `json:"details"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
			return obj.Message, obj.Details
		}
		if s := asString(raw); s != "" {
			return s, nil
		}
	}
	for _, k := range []string{"detail", "message"} {
		if s := asString(fields[k]); s != "" {
			return s, nil
		}
	}

	for _, k := range slices.Sorted(maps.Keys(fields)) {
		var msgs []string
		if err := json.Unmarshal(fields[k], &msgs); err == nil && len(msgs) > 0 {
			if k == "non_field_errors" {
				return msgs[0], body
			}
			return fmt.Sprintf("%s: %s", k, msgs[0]), body
		}
	}
	return "", nil
}

func asString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
