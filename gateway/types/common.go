// Package types defines the wire records of the ProjectX Gateway API.
// Every response embeds the gateway status envelope so failures are
// classified at the boundary instead of surfacing as missing fields.
package types

// Envelope is the status block every gateway response carries.
type Envelope struct {
	Success      bool   `json:"success"`
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// Status lets the client inspect the envelope of any decoded response.
func (e Envelope) Status() Envelope { return e }

// Enveloped is implemented by every response type via the embedded Envelope.
type Enveloped interface {
	Status() Envelope
}

// StatusResponse is the envelope-only body returned by mutations that
// carry no payload (modify, cancel, close).
type StatusResponse struct {
	Envelope
}
