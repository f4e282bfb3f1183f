package speechsynthesizer

import (
	"io"
	"time"

	"github.com/skaggar/avs-device-sdk/core/attachments"
	"github.com/skaggar/avs-device-sdk/core/avs"
)

type Option func(*SpeechSynthesizer)

// MediaPlayer plays one attachment stream at a time. Calls are fire-and-
// forget; outcomes arrive through the registered MediaPlayerObserver and may
// be delivered on any goroutine.
type MediaPlayer interface {
	SetSource(reader io.ReadCloser) error
	Play() error
	Stop() error
	Offset() time.Duration
	SetObserver(observer MediaPlayerObserver)
}

// MediaPlayerObserver receives playback milestones from a MediaPlayer.
type MediaPlayerObserver interface {
	OnPlaybackStarted()
	OnPlaybackFinished()
	OnPlaybackError(errorType string, message string)
}

func WithMediaPlayer(player MediaPlayer) Option {
	return func(s *SpeechSynthesizer) { s.player = player }
}

// FocusManager arbitrates exclusive use of named audio channels. Focus
// outcomes arrive asynchronously through the observer's OnFocusChanged.
// After ReleaseChannel no further focus callbacks are delivered for that
// acquisition.
type FocusManager interface {
	// AcquireChannel requests channel at foreground activity for observer
	// and reports whether the request could be submitted.
	AcquireChannel(channel string, observer FocusObserver, interfaceName string) bool
	ReleaseChannel(channel string, observer FocusObserver)
}

// FocusObserver receives focus grants and revocations for a channel.
type FocusObserver interface {
	OnFocusChanged(focus avs.FocusState)
}

func WithFocusManager(focusManager FocusManager) Option {
	return func(s *SpeechSynthesizer) { s.focusManager = focusManager }
}

// MessageSender delivers events to the cloud voice service.
type MessageSender interface {
	SendEvent(event avs.Event) error
}

func WithMessageSender(sender MessageSender) Option {
	return func(s *SpeechSynthesizer) { s.messageSender = sender }
}

// ExceptionSender reports directives that could not be processed.
type ExceptionSender interface {
	SendException(directive *avs.Directive, exceptionType avs.ExceptionType, message string) error
}

func WithExceptionSender(sender ExceptionSender) Option {
	return func(s *SpeechSynthesizer) { s.exceptionSender = sender }
}

// StateProvider computes a fresh context snapshot when the context aggregator
// asks for one.
type StateProvider interface {
	ProvideState(stateRequestToken uint64)
}

// ContextReporter aggregates per-interface context state for outbound
// requests.
type ContextReporter interface {
	AddStateProvider(name avs.NamespaceAndName, provider StateProvider)
	RemoveStateProvider(name avs.NamespaceAndName)
	SetState(name avs.NamespaceAndName, payload []byte, stateRequestToken uint64) error
}

func WithContextReporter(reporter ContextReporter) Option {
	return func(s *SpeechSynthesizer) { s.contextReporter = reporter }
}

func WithAttachmentStore(store attachments.Store) Option {
	return func(s *SpeechSynthesizer) { s.attachments = store }
}

// DirectiveResult reports the outcome of handling one directive back to the
// upstream sequencer. At most one of the two methods is called per directive;
// neither is called for a directive cancelled while it is the active speaker.
type DirectiveResult interface {
	SetCompleted()
	SetFailed(description string)
}
