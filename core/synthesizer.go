// Package speechsynthesizer implements the capability agent that sequences
// Speak directives from the cloud voice service: it arbitrates channel focus,
// drives the media player, reports handling outcomes upstream, and publishes
// playback state to the context aggregator.
package speechsynthesizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/skaggar/avs-device-sdk/core/attachments"
	"github.com/skaggar/avs-device-sdk/core/avs"
)

// State is the playback state of the speech synthesizer.
type State string

const (
	// StateFinished means no utterance is active. Initial state.
	StateFinished State = "FINISHED"
	// StatePlaying means speech audio is audibly playing.
	StatePlaying State = "PLAYING"
	// StateGainingFocus means an utterance is waiting for the dialog channel.
	StateGainingFocus State = "GAINING_FOCUS"
	// StateLosingFocus means playback is being stopped after a focus
	// revocation.
	StateLosingFocus State = "LOSING_FOCUS"
)

func (s State) String() string {
	return string(s)
}

// playerActivity collapses the internal state onto the externally published
// activity values.
func (s State) playerActivity() avs.PlayerActivity {
	if s == StatePlaying {
		return avs.ActivityPlaying
	}
	return avs.ActivityFinished
}

// SpeechStateName identifies the context entry this agent publishes.
var SpeechStateName = avs.NamespaceAndName{Namespace: avs.NamespaceSpeechSynthesizer, Name: "SpeechState"}

var (
	ErrMissingCollaborator = errors.New("missing required collaborator")
	ErrShuttingDown        = errors.New("speech synthesizer is shutting down")
)

const (
	descriptionChannelAcquisitionFailed = "CHANNEL_ACQUISITION_FAILED"
	descriptionCancelled                = "Speak directive cancelled"
	descriptionShutdown                 = "SpeechSynthesizer is shutting down"
	descriptionDeregistered             = "SpeechSynthesizer was deregistered"
	descriptionFocusLost                = "focus lost before playback started"
)

// SpeechSynthesizer is the capability agent handling SpeechSynthesizer.Speak
// directives.
//
// Public entry points may be called from any goroutine: they validate cheaply
// and hand the actual work to a serial executor that owns all mutable state.
// The one exception is OnFocusChanged, which blocks its caller until the
// agent has reached the state the focus change demands, so the focus manager
// always observes a quiesced agent.
type SpeechSynthesizer struct {
	player          MediaPlayer
	focusManager    FocusManager
	messageSender   MessageSender
	contextReporter ContextReporter
	exceptionSender ExceptionSender
	attachments     attachments.Store

	executor  *executor
	store     *directiveStore
	observers observerRegistry

	// stateMu guards currentState, desiredState, currentFocus and
	// quiesceWaiters. Each blocked OnFocusChanged caller holds a one-shot
	// handle in quiesceWaiters that is claimed the moment currentState
	// reaches desiredState and closed once that transition has been
	// published, so a momentary match cannot be missed even when the
	// executor immediately moves on to the next directive.
	stateMu        sync.Mutex
	currentState   State
	desiredState   State
	currentFocus   avs.FocusState
	quiesceWaiters []chan struct{}

	// current and focusAcquired are only touched on the executor goroutine.
	current       *speakDirective
	focusAcquired bool

	shuttingDown atomic.Bool

	baseCtx context.Context
}

// New creates a SpeechSynthesizer. The media player, focus manager, message
// sender, context reporter, exception sender and attachment store options are
// all required.
//
// The agent registers itself as the media player's observer and as the
// provider of the SpeechSynthesizer context entry. Call Shutdown to undo
// both.
func New(opts ...Option) (*SpeechSynthesizer, error) {
	s := &SpeechSynthesizer{
		currentState: StateFinished,
		desiredState: StateFinished,
		currentFocus: avs.FocusNone,
		store:        newDirectiveStore(),
		baseCtx:      context.Background(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.validateCollaborators(); err != nil {
		return nil, err
	}

	s.player.SetObserver(s)
	s.contextReporter.AddStateProvider(SpeechStateName, s)

	// The executor is created last so no task can observe a half-built agent.
	s.executor = newExecutor()
	return s, nil
}

func (s *SpeechSynthesizer) validateCollaborators() error {
	required := []struct {
		name string
		ok   bool
	}{
		{"media player", s.player != nil},
		{"focus manager", s.focusManager != nil},
		{"message sender", s.messageSender != nil},
		{"context reporter", s.contextReporter != nil},
		{"exception sender", s.exceptionSender != nil},
		{"attachment store", s.attachments != nil},
	}

	for _, requirement := range required {
		if !requirement.ok {
			return fmt.Errorf("%w: %s", ErrMissingCollaborator, requirement.name)
		}
	}
	return nil
}

// Configuration declares the directives this agent handles and at which
// policy.
func (s *SpeechSynthesizer) Configuration() map[avs.NamespaceAndName]avs.BlockingPolicy {
	return map[avs.NamespaceAndName]avs.BlockingPolicy{
		{Namespace: avs.NamespaceSpeechSynthesizer, Name: avs.NameSpeak}: avs.PolicyBlocking,
	}
}

// AddObserver subscribes observer to playback state changes.
func (s *SpeechSynthesizer) AddObserver(observer Observer) {
	if observer == nil || s.shuttingDown.Load() {
		return
	}
	s.executor.submit(func() { s.observers.add(observer) })
}

// RemoveObserver unsubscribes observer.
//
// This call is synchronous: it returns once the removal has taken effect.
// It must not be made from within Observer.OnStateChanged; the callback runs
// on the goroutine the removal waits for, so doing so deadlocks.
func (s *SpeechSynthesizer) RemoveObserver(observer Observer) {
	if observer == nil || s.shuttingDown.Load() {
		return
	}

	done := make(chan struct{})
	if !s.executor.submit(func() {
		s.observers.remove(observer)
		close(done)
	}) {
		return
	}
	<-done
}

// PreHandleDirective caches directive ahead of handling. The outcome of the
// eventual handling is reported through result.
func (s *SpeechSynthesizer) PreHandleDirective(directive *avs.Directive, result DirectiveResult) error {
	if directive == nil {
		return errors.New("directive must not be nil")
	}
	if s.shuttingDown.Load() || !s.executor.submit(func() { s.executePreHandle(directive, result) }) {
		return ErrShuttingDown
	}
	return nil
}

// HandleDirective begins handling of a previously pre-handled directive.
// The lookup happens on the executor, behind any pre-handle still in flight.
func (s *SpeechSynthesizer) HandleDirective(messageID string) error {
	if messageID == "" {
		return errors.New("messageID must not be empty")
	}
	if s.shuttingDown.Load() || !s.executor.submit(func() { s.executeHandle(messageID) }) {
		return ErrShuttingDown
	}
	return nil
}

// HandleDirectiveImmediately runs a directive without a prior pre-handle and
// without an upstream result handle.
func (s *SpeechSynthesizer) HandleDirectiveImmediately(directive *avs.Directive) error {
	if directive == nil {
		return errors.New("directive must not be nil")
	}
	if s.shuttingDown.Load() || !s.executor.submit(func() { s.executeHandleImmediately(directive) }) {
		return ErrShuttingDown
	}
	return nil
}

// CancelDirective discards a pre-handled directive. If the directive is the
// active speaker its audio is stopped and no further events or completion
// reports are produced for it; if it is still queued it is removed and a
// cancellation failure is reported upstream.
func (s *SpeechSynthesizer) CancelDirective(messageID string) error {
	if messageID == "" {
		return errors.New("messageID must not be empty")
	}
	if s.shuttingDown.Load() || !s.executor.submit(func() { s.executeCancel(messageID) }) {
		return ErrShuttingDown
	}
	return nil
}

// OnDeregistered stops the active directive and discards every queued one,
// failing them upstream, after the directive router has dropped this agent.
// Directives that were pre-handled but not yet handled stay cached. The agent
// stays usable for re-registration.
func (s *SpeechSynthesizer) OnDeregistered() {
	if s.shuttingDown.Load() {
		return
	}
	s.executor.submit(func() { s.executeReset(descriptionDeregistered) })
}

// OnFocusChanged records the new focus of the dialog channel and blocks until
// the agent has transitioned to the state that focus demands.
//
// The wait is a one-shot handle claimed the moment the machine reaches the
// desired state and released once observers have been notified of it, so the
// caller is unblocked by the quiescence itself even if the executor moves on
// to a queued successor directive right afterwards.
func (s *SpeechSynthesizer) OnFocusChanged(focus avs.FocusState) {
	s.stateMu.Lock()
	s.currentFocus = focus
	s.setDesiredStateLocked(focus)
	if s.currentState == s.desiredState {
		s.stateMu.Unlock()
		return
	}
	quiesced := make(chan struct{})
	s.quiesceWaiters = append(s.quiesceWaiters, quiesced)
	s.stateMu.Unlock()

	if !s.executor.submit(s.executeStateChange) {
		return
	}

	<-quiesced
}

// setDesiredStateLocked derives the state the machine must drive toward from
// the new focus. stateMu must be held.
func (s *SpeechSynthesizer) setDesiredStateLocked(focus avs.FocusState) {
	switch focus {
	case avs.FocusForeground:
		s.desiredState = StatePlaying
	case avs.FocusBackground, avs.FocusNone:
		s.desiredState = StateFinished
	}
}

// ProvideState asks the agent to publish a fresh context snapshot tagged with
// stateRequestToken.
func (s *SpeechSynthesizer) ProvideState(stateRequestToken uint64) {
	if s.shuttingDown.Load() {
		return
	}
	s.executor.submit(func() { s.executeProvideState(stateRequestToken) })
}

// OnPlaybackStarted implements MediaPlayerObserver.
func (s *SpeechSynthesizer) OnPlaybackStarted() {
	if s.shuttingDown.Load() {
		return
	}
	s.executor.submit(s.executePlaybackStarted)
}

// OnPlaybackFinished implements MediaPlayerObserver.
func (s *SpeechSynthesizer) OnPlaybackFinished() {
	if s.shuttingDown.Load() {
		return
	}
	s.executor.submit(s.executePlaybackFinished)
}

// OnPlaybackError implements MediaPlayerObserver.
func (s *SpeechSynthesizer) OnPlaybackError(errorType string, message string) {
	if s.shuttingDown.Load() {
		return
	}
	s.executor.submit(func() { s.executePlaybackError(errorType, message) })
}

// Shutdown cancels any active playback, fails all pending directives
// upstream, releases focus and unsubscribes from its collaborators. The
// executor drains before Shutdown returns; entry points called afterwards are
// dropped.
func (s *SpeechSynthesizer) Shutdown() {
	if !s.shuttingDown.CompareAndSwap(false, true) {
		return
	}

	s.executor.submit(func() {
		s.executeReset(descriptionShutdown)
		s.contextReporter.RemoveStateProvider(SpeechStateName)
		s.player.SetObserver(nil)
	})
	s.executor.close()
}

// ---- executor-side operations ----

func (s *SpeechSynthesizer) executePreHandle(directive *avs.Directive, result DirectiveResult) {
	_, span := tracer.Start(s.baseCtx, "pre-handle speak directive",
		trace.WithAttributes(attribute.String("message_id", directive.Header.MessageID)))
	defer span.End()

	payload, err := avs.ParseSpeakPayload(directive.Payload)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.reportMalformed(directive, result, err)
		return
	}

	record := &speakDirective{
		directive:     directive,
		result:        result,
		token:         payload.Token,
		attachmentID:  payload.AttachmentID(),
		sendFinished:  true,
		sendCompleted: result != nil,
	}

	if !s.store.register(directive.Header.MessageID, record) {
		// The existing entry stays authoritative.
		logger.Debug("dropping duplicate speak directive",
			"messageId", directive.Header.MessageID)
		return
	}
}

// reportMalformed sends the exception matching a payload validation failure
// and fails the directive upstream without enqueueing it.
func (s *SpeechSynthesizer) reportMalformed(directive *avs.Directive, result DirectiveResult, err error) {
	exceptionType := avs.ExceptionInternalError
	if errors.Is(err, avs.ErrMissingToken) {
		exceptionType = avs.ExceptionUnexpectedInformation
	}

	logger.Error("rejecting malformed speak directive",
		"messageId", directive.Header.MessageID, "error", err)
	s.sendException(directive, exceptionType, err.Error())
	if result != nil {
		result.SetFailed(err.Error())
	}
}

func (s *SpeechSynthesizer) executeHandle(messageID string) {
	record := s.store.lookup(messageID)
	if record == nil {
		logger.Error("cannot handle unknown or already cancelled directive",
			"messageId", messageID)
		return
	}
	s.addToDirectiveQueue(record)
}

func (s *SpeechSynthesizer) executeHandleImmediately(directive *avs.Directive) {
	payload, err := avs.ParseSpeakPayload(directive.Payload)
	if err != nil {
		s.reportMalformed(directive, nil, err)
		return
	}

	record := &speakDirective{
		directive:    directive,
		token:        payload.Token,
		attachmentID: payload.AttachmentID(),
		sendFinished: true,
	}

	if !s.store.register(directive.Header.MessageID, record) {
		logger.Debug("dropping duplicate speak directive",
			"messageId", directive.Header.MessageID)
		return
	}
	s.addToDirectiveQueue(record)
}

// addToDirectiveQueue appends record to the pending queue and activates it
// when it becomes the head, i.e. when nothing else is being spoken. A record
// is only ever queued once, so a repeated handle call is a no-op.
func (s *SpeechSynthesizer) addToDirectiveQueue(record *speakDirective) {
	if record.queued {
		logger.Warn("ignoring repeated handle for directive",
			"messageId", record.messageID())
		return
	}
	record.queued = true

	if s.store.enqueue(record) {
		s.executeActivate(record)
	}
}

// executeActivate makes record the current speaker and requests foreground
// focus on the dialog channel for it.
func (s *SpeechSynthesizer) executeActivate(record *speakDirective) {
	ctx, span := tracer.Start(s.baseCtx, "activate speak directive",
		trace.WithAttributes(attribute.String("token", record.token)))
	defer span.End()

	s.current = record
	directivesHandledCounter.Add(ctx, 1)

	// A new utterance starts a new focus cycle: drop any transition target
	// left over from the previous one so a stale state-change task cannot
	// act on this record.
	s.stateMu.Lock()
	s.desiredState = StateGainingFocus
	s.stateMu.Unlock()

	if !s.focusManager.AcquireChannel(avs.ChannelDialog, s, avs.NamespaceSpeechSynthesizer) {
		span.SetStatus(codes.Error, descriptionChannelAcquisitionFailed)
		logger.Error("could not acquire dialog channel", "token", record.token)
		s.stateMu.Lock()
		s.desiredState = s.currentState
		s.signalQuiescedLocked()
		s.stateMu.Unlock()
		s.failCurrent(descriptionChannelAcquisitionFailed)
		return
	}
	s.focusAcquired = true
	s.setCurrentState(StateGainingFocus)
}

// executeStateChange drives the machine toward the desired state recorded by
// the latest focus change.
func (s *SpeechSynthesizer) executeStateChange() {
	s.stateMu.Lock()
	desired := s.desiredState
	s.stateMu.Unlock()

	switch desired {
	case StatePlaying:
		if s.current == nil {
			// Foreground was granted but the directive is already gone.
			s.releaseForegroundFocus()
			s.stateMu.Lock()
			s.desiredState = s.currentState
			s.signalQuiescedLocked()
			s.stateMu.Unlock()
			return
		}
		if s.current.playStarted {
			return
		}
		s.startPlaying()
	case StateFinished:
		current := s.current
		if current == nil {
			return
		}
		if current.playStarted {
			s.setCurrentState(StateLosingFocus)
			s.stopPlaying()
			return
		}
		// Focus fell away before playback ever began; the utterance cannot
		// be spoken anymore.
		s.setCurrentState(StateFinished)
		s.failCurrent(descriptionFocusLost)
	}
}

// startPlaying opens the current directive's attachment and hands it to the
// media player. Runs with no locks held.
func (s *SpeechSynthesizer) startPlaying() {
	current := s.current

	reader, err := s.attachments.Open(current.attachmentID)
	if err != nil {
		s.failCurrentWithException(fmt.Sprintf("cannot open speech attachment: %v", err))
		return
	}
	current.reader = reader

	if err := s.player.SetSource(reader); err != nil {
		s.failCurrentWithException(fmt.Sprintf("cannot set media source: %v", err))
		return
	}
	if err := s.player.Play(); err != nil {
		s.failCurrentWithException(fmt.Sprintf("cannot start media playback: %v", err))
		return
	}
	current.playStarted = true
}

func (s *SpeechSynthesizer) stopPlaying() {
	if err := s.player.Stop(); err != nil {
		// The player will not confirm the stop; retire the utterance here so
		// the machine cannot stall.
		logger.Error("stopping media playback failed", "error", err)
		s.executePlaybackFinished()
	}
}

func (s *SpeechSynthesizer) executePlaybackStarted() {
	current := s.current
	if current == nil {
		logger.Warn("playback started with no active speak directive")
		return
	}

	event, err := avs.NewSpeechStartedEvent(current.token)
	if err != nil {
		logger.Error("building SpeechStarted event failed", "error", err)
	} else {
		s.sendEvent(event)
	}

	s.setCurrentState(StatePlaying)
}

func (s *SpeechSynthesizer) executePlaybackFinished() {
	current := s.current
	if current == nil {
		logger.Warn("playback finished with no active speak directive")
		return
	}

	current.clear()

	if current.sendFinished {
		current.sendFinished = false
		event, err := avs.NewSpeechFinishedEvent(current.token)
		if err != nil {
			logger.Error("building SpeechFinished event failed", "error", err)
		} else {
			s.sendEvent(event)
		}
	}
	if current.sendCompleted && current.result != nil {
		current.sendCompleted = false
		current.result.SetCompleted()
	}

	s.setCurrentState(StateFinished)
	s.releaseForegroundFocus()
	s.retireCurrent()
	s.advanceQueue()
}

func (s *SpeechSynthesizer) executePlaybackError(errorType string, message string) {
	current := s.current
	if current == nil {
		logger.Warn("playback error with no active speak directive",
			"errorType", errorType, "error", message)
		return
	}

	ctx, span := tracer.Start(s.baseCtx, "playback error",
		trace.WithAttributes(
			attribute.String("token", current.token),
			attribute.String("error_type", errorType)))
	span.SetStatus(codes.Error, message)
	defer span.End()

	playbackErrorCounter.Add(ctx, 1)
	current.clear()
	current.sendFinished = false

	s.sendException(current.directive, avs.ExceptionInternalError, message)
	if current.sendCompleted && current.result != nil {
		current.sendCompleted = false
		current.result.SetFailed(message)
	}

	s.setCurrentState(StateFinished)
	s.releaseForegroundFocus()
	s.retireCurrent()
	s.advanceQueue()
}

func (s *SpeechSynthesizer) executeCancel(messageID string) {
	record := s.store.lookup(messageID)
	if record == nil {
		logger.Debug("cancel for unknown directive", "messageId", messageID)
		return
	}

	if record == s.current {
		// The upstream sequencer is the authority for a cancellation, so
		// neither the cloud event nor the completion report is owed anymore.
		record.sendFinished = false
		record.sendCompleted = false

		if record.playStarted {
			// Retirement continues when the player confirms the stop.
			s.stopPlaying()
			return
		}

		s.setCurrentState(StateFinished)
		s.releaseForegroundFocus()
		s.retireCurrent()
		s.advanceQueue()
		return
	}

	// Queued but not yet active: no media was involved.
	s.store.removeQueued(record)
	s.store.remove(record.messageID())
	record.clear()
	if record.sendCompleted && record.result != nil {
		record.sendCompleted = false
		record.result.SetFailed(descriptionCancelled)
	}
}

func (s *SpeechSynthesizer) executeProvideState(stateRequestToken uint64) {
	s.stateMu.Lock()
	state := s.currentState
	s.stateMu.Unlock()

	snapshot := avs.ContextState{PlayerActivity: state.playerActivity()}
	if s.current != nil {
		snapshot.Token = s.current.token
	}
	if state == StatePlaying {
		snapshot.OffsetInMilliseconds = s.player.Offset().Milliseconds()
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("marshalling context state failed", "error", err)
		return
	}
	if err := s.contextReporter.SetState(SpeechStateName, payload, stateRequestToken); err != nil {
		logger.Error("publishing context state failed", "error", err)
	}
}

// executeReset cancels the active utterance and fails every pending directive
// upstream with description. Used by shutdown and deregistration.
func (s *SpeechSynthesizer) executeReset(description string) {
	if current := s.current; current != nil {
		if current.playStarted {
			if err := s.player.Stop(); err != nil {
				logger.Error("stopping media playback failed", "error", err)
			}
		}
		current.sendFinished = false
		if current.sendCompleted && current.result != nil {
			current.sendCompleted = false
			current.result.SetFailed(description)
		}
		current.clear()

		s.setCurrentState(StateFinished)
		s.releaseForegroundFocus()
		s.retireCurrent()
	}

	for _, queued := range s.store.drainQueue() {
		s.store.remove(queued.messageID())
		queued.clear()
		if queued.sendCompleted && queued.result != nil {
			queued.sendCompleted = false
			queued.result.SetFailed(description)
		}
	}
}

// ---- helpers (executor goroutine only) ----

// failCurrent reports description upstream for the current directive, retires
// it and advances the queue. It does not set the playback state itself; only
// activating a queued successor moves it on to GAINING_FOCUS.
func (s *SpeechSynthesizer) failCurrent(description string) {
	current := s.current
	if current == nil {
		return
	}

	current.clear()
	current.sendFinished = false
	if current.sendCompleted && current.result != nil {
		current.sendCompleted = false
		current.result.SetFailed(description)
	}

	s.releaseForegroundFocus()
	s.retireCurrent()
	s.advanceQueue()
}

// failCurrentWithException additionally reports an INTERNAL_ERROR exception
// to the cloud and moves the machine back to FINISHED. Used for failures on
// the playback start path.
func (s *SpeechSynthesizer) failCurrentWithException(description string) {
	current := s.current
	if current == nil {
		return
	}

	logger.Error("speak directive failed", "token", current.token, "description", description)
	s.sendException(current.directive, avs.ExceptionInternalError, description)
	s.setCurrentState(StateFinished)
	s.failCurrent(description)
}

// retireCurrent removes the current directive from the map and the queue head
// and clears the current pointer.
func (s *SpeechSynthesizer) retireCurrent() {
	current := s.current
	if current == nil {
		return
	}

	current.clear()
	s.store.remove(current.messageID())
	if s.store.head() == current {
		s.store.dequeueHead()
	}
	s.current = nil
}

// advanceQueue activates the next pending directive, if any.
func (s *SpeechSynthesizer) advanceQueue() {
	if next := s.store.head(); next != nil {
		s.executeActivate(next)
	}
}

// setCurrentState records the new playback state, on the externally visible
// transitions publishes context and notifies observers, and then wakes the
// focus-change waiters the transition releases.
func (s *SpeechSynthesizer) setCurrentState(newState State) {
	s.stateMu.Lock()
	previous := s.currentState
	if previous == newState {
		s.stateMu.Unlock()
		return
	}
	s.currentState = newState
	if newState == StateFinished {
		// FINISHED is terminal between utterances; nothing is driving
		// anywhere else once it is reached.
		s.desiredState = StateFinished
	}
	// Waiters released by this transition are claimed now and woken only
	// after it has been published, so a returning focus caller finds the
	// new state already seen by context and observers.
	var quiesced []chan struct{}
	if s.currentState == s.desiredState {
		quiesced = s.quiesceWaiters
		s.quiesceWaiters = nil
	}
	s.stateMu.Unlock()

	logger.Debug("playback state changed", "from", previous.String(), "to", newState.String())

	switch newState {
	case StatePlaying:
		s.executeProvideState(0)
		s.observers.notify(newState)
	case StateFinished:
		if previous == StatePlaying || previous == StateLosingFocus {
			s.executeProvideState(0)
			s.observers.notify(newState)
		}
	}

	for _, waiter := range quiesced {
		close(waiter)
	}
}

// signalQuiescedLocked releases every blocked focus caller once currentState
// has reached desiredState. stateMu must be held. The handles are one-shot,
// so a waiter released here stays released regardless of the transitions the
// executor performs next.
func (s *SpeechSynthesizer) signalQuiescedLocked() {
	if s.currentState != s.desiredState {
		return
	}
	for _, quiesced := range s.quiesceWaiters {
		close(quiesced)
	}
	s.quiesceWaiters = nil
}

// releaseForegroundFocus gives the dialog channel back, once per acquisition.
func (s *SpeechSynthesizer) releaseForegroundFocus() {
	if !s.focusAcquired {
		return
	}
	s.focusAcquired = false
	s.focusManager.ReleaseChannel(avs.ChannelDialog, s)
}

func (s *SpeechSynthesizer) sendEvent(event avs.Event) {
	if err := s.messageSender.SendEvent(event); err != nil {
		logger.Error("sending event failed",
			"name", event.Header.NamespaceAndName().String(), "error", err)
		return
	}
	eventsSentCounter.Add(s.baseCtx, 1)
}

func (s *SpeechSynthesizer) sendException(directive *avs.Directive, exceptionType avs.ExceptionType, message string) {
	if err := s.exceptionSender.SendException(directive, exceptionType, message); err != nil {
		logger.Error("sending exception report failed", "error", err)
	}
}
