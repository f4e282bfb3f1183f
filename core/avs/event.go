package avs

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// NamespaceSpeechSynthesizer is the namespace shared by the speech
// synthesizer's directives and events.
const NamespaceSpeechSynthesizer = "SpeechSynthesizer"

const (
	// NameSpeak identifies the inbound directive that carries speech audio.
	NameSpeak = "Speak"
	// NameSpeechStarted identifies the event reporting playback start.
	NameSpeechStarted = "SpeechStarted"
	// NameSpeechFinished identifies the event reporting playback completion.
	NameSpeechFinished = "SpeechFinished"
)

// Event is one outbound message to the cloud voice service.
type Event struct {
	Header  Header          `json:"header"`
	Payload json.RawMessage `json:"payload"`
}

// NewEvent builds an event envelope with a fresh messageId.
func NewEvent(namespace, name string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshalling %s.%s payload failed: %w", namespace, name, err)
	}

	return Event{
		Header: Header{
			Namespace: namespace,
			Name:      name,
			MessageID: uuid.NewString(),
		},
		Payload: raw,
	}, nil
}

// JSON renders the full wire form, {"event":{"header":...,"payload":...}}.
func (e Event) JSON() ([]byte, error) {
	return json.Marshal(struct {
		Event Event `json:"event"`
	}{Event: e})
}

type tokenPayload struct {
	Token string `json:"token"`
}

// NewSpeechStartedEvent builds the event reporting that playback of the
// utterance identified by token has started.
func NewSpeechStartedEvent(token string) (Event, error) {
	return NewEvent(NamespaceSpeechSynthesizer, NameSpeechStarted, tokenPayload{Token: token})
}

// NewSpeechFinishedEvent builds the event reporting that playback of the
// utterance identified by token has finished.
func NewSpeechFinishedEvent(token string) (Event, error) {
	return NewEvent(NamespaceSpeechSynthesizer, NameSpeechFinished, tokenPayload{Token: token})
}
