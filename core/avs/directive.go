package avs

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingToken      = errors.New("speak payload is missing the token property")
	ErrMissingAttachment = errors.New("speak payload is missing the audio attachment reference")
)

// NamespaceAndName identifies a directive or event type within a namespace.
type NamespaceAndName struct {
	Namespace string
	Name      string
}

func (n NamespaceAndName) String() string {
	return n.Namespace + "." + n.Name
}

// Header carries the identifying fields of a directive or event envelope.
type Header struct {
	Namespace       string `json:"namespace"`
	Name            string `json:"name"`
	MessageID       string `json:"messageId"`
	DialogRequestID string `json:"dialogRequestId,omitempty"`
}

// NamespaceAndName returns the header's type identity, used as a routing key.
func (h Header) NamespaceAndName() NamespaceAndName {
	return NamespaceAndName{Namespace: h.Namespace, Name: h.Name}
}

// Directive is one command delivered by the cloud voice service. Payload is
// kept raw; each capability agent parses the payloads it declares handling
// for.
type Directive struct {
	Header  Header          `json:"header"`
	Payload json.RawMessage `json:"payload"`
}

// SpeakPayload is the payload of a SpeechSynthesizer.Speak directive.
type SpeakPayload struct {
	Token  string `json:"token"`
	URL    string `json:"url"`
	Format string `json:"format,omitempty"`
}

// AttachmentID resolves the payload's audio reference to an attachment store
// identifier. Attachment references use the cid scheme.
func (p SpeakPayload) AttachmentID() string {
	return strings.TrimPrefix(p.URL, "cid:")
}

// ParseSpeakPayload unmarshals and validates a Speak payload.
//
// A missing token yields ErrMissingToken and a missing audio reference yields
// ErrMissingAttachment so callers can report the precise missing property.
func ParseSpeakPayload(raw json.RawMessage) (SpeakPayload, error) {
	var payload SpeakPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return SpeakPayload{}, fmt.Errorf("unmarshalling speak payload failed: %w", err)
	}

	if payload.Token == "" {
		return SpeakPayload{}, ErrMissingToken
	}
	if payload.AttachmentID() == "" {
		return SpeakPayload{}, ErrMissingAttachment
	}

	return payload, nil
}
