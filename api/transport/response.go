package transport

import "encoding/json"

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Data   any    `json:"data,omitempty"`
	Error  any    `json:"error,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data any) Envelope {
	return Envelope{Status: "success", Data: data}
}

// NewError returns an error envelope.
func NewError(code string, err any) Envelope {
	return Envelope{Status: "error", Code: code, Error: err}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
