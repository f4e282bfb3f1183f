package avs

import "github.com/invopop/jsonschema"

// PlayerActivity is the externally visible playback activity. The richer
// internal agent states collapse onto these two values when published.
type PlayerActivity string

const (
	// ActivityPlaying means speech audio is audibly playing.
	ActivityPlaying PlayerActivity = "PLAYING"
	// ActivityFinished means no speech audio is playing.
	ActivityFinished PlayerActivity = "FINISHED"
)

// ContextState is the snapshot a speech synthesizer publishes to the context
// aggregator for inclusion in outbound requests.
type ContextState struct {
	Token                string         `json:"token"`
	OffsetInMilliseconds int64          `json:"offsetInMilliseconds"`
	PlayerActivity       PlayerActivity `json:"playerActivity" jsonschema:"enum=PLAYING,enum=FINISHED"`
}

// Capability describes one interface a device declares to the cloud during
// discovery.
type Capability struct {
	Type      string `json:"type"`
	Interface string `json:"interface"`
	Version   string `json:"version"`
}

// SpeechSynthesizerCapability returns the discovery declaration for the
// speech synthesizer interface.
func SpeechSynthesizerCapability() Capability {
	return Capability{
		Type:      "AlexaInterface",
		Interface: NamespaceSpeechSynthesizer,
		Version:   "1.0",
	}
}

// ContextStateSchema reflects the JSON schema of the context payload this
// interface publishes, for discovery diagnostics and contract checks.
func (c Capability) ContextStateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	return reflector.Reflect(&ContextState{})
}
