package speechsynthesizer

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/skaggar/avs-device-sdk/core/attachments"
	"github.com/skaggar/avs-device-sdk/core/avs"
)

const stubTimeout = 2 * time.Second

func await[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()

	select {
	case value := <-ch:
		return value
	case <-time.After(stubTimeout):
		t.Fatalf("timed out waiting for %s", what)
		panic("unreachable")
	}
}

func signal[T any](ch chan T, value T) {
	select {
	case ch <- value:
	default:
	}
}

// stubMediaPlayer records media calls and lets tests deliver the observer
// callbacks themselves, so every scenario step is deterministic.
type stubMediaPlayer struct {
	mu       sync.Mutex
	observer MediaPlayerObserver

	sources      []io.ReadCloser
	playCalls    int
	stopCalls    int
	offset       time.Duration
	setSourceErr error
	playErr      error
	stopErr      error

	playCh chan struct{}
	stopCh chan struct{}
}

func newStubMediaPlayer() *stubMediaPlayer {
	return &stubMediaPlayer{
		playCh: make(chan struct{}, 8),
		stopCh: make(chan struct{}, 8),
	}
}

func (p *stubMediaPlayer) SetSource(reader io.ReadCloser) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.setSourceErr != nil {
		return p.setSourceErr
	}
	p.sources = append(p.sources, reader)
	return nil
}

func (p *stubMediaPlayer) Play() error {
	p.mu.Lock()
	err := p.playErr
	if err == nil {
		p.playCalls++
	}
	p.mu.Unlock()

	if err != nil {
		return err
	}
	signal(p.playCh, struct{}{})
	return nil
}

func (p *stubMediaPlayer) Stop() error {
	p.mu.Lock()
	err := p.stopErr
	if err == nil {
		p.stopCalls++
	}
	p.mu.Unlock()

	if err != nil {
		return err
	}
	signal(p.stopCh, struct{}{})
	return nil
}

func (p *stubMediaPlayer) Offset() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offset
}

func (p *stubMediaPlayer) SetObserver(observer MediaPlayerObserver) {
	p.mu.Lock()
	p.observer = observer
	p.mu.Unlock()
}

func (p *stubMediaPlayer) currentObserver() MediaPlayerObserver {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.observer
}

func (p *stubMediaPlayer) playedCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playCalls
}

func (p *stubMediaPlayer) stoppedCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopCalls
}

// stubFocusManager grants foreground focus from its own goroutine, the way a
// real focus manager delivers grants asynchronously. Released acquisitions
// get no further callbacks.
type stubFocusManager struct {
	mu            sync.Mutex
	acquires      int
	releases      int
	rejectAcquire bool
	manualGrants  bool
	lastObserver  FocusObserver

	acquireCh chan struct{}
	releaseCh chan struct{}
}

func newStubFocusManager() *stubFocusManager {
	return &stubFocusManager{
		acquireCh: make(chan struct{}, 8),
		releaseCh: make(chan struct{}, 8),
	}
}

func (f *stubFocusManager) AcquireChannel(channel string, observer FocusObserver, interfaceName string) bool {
	f.mu.Lock()
	if f.rejectAcquire {
		f.mu.Unlock()
		return false
	}
	f.acquires++
	f.lastObserver = observer
	manual := f.manualGrants
	f.mu.Unlock()

	signal(f.acquireCh, struct{}{})
	if !manual {
		go observer.OnFocusChanged(avs.FocusForeground)
	}
	return true
}

func (f *stubFocusManager) ReleaseChannel(channel string, observer FocusObserver) {
	f.mu.Lock()
	f.releases++
	f.mu.Unlock()
	signal(f.releaseCh, struct{}{})
}

func (f *stubFocusManager) acquiredCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.acquires
}

func (f *stubFocusManager) releasedCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.releases
}

type stubMessageSender struct {
	mu     sync.Mutex
	events []avs.Event

	eventCh chan avs.Event
}

func newStubMessageSender() *stubMessageSender {
	return &stubMessageSender{eventCh: make(chan avs.Event, 8)}
}

func (s *stubMessageSender) SendEvent(event avs.Event) error {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()

	signal(s.eventCh, event)
	return nil
}

func (s *stubMessageSender) sentEvents() []avs.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]avs.Event, len(s.events))
	copy(events, s.events)
	return events
}

type exceptionReport struct {
	exceptionType avs.ExceptionType
	message       string
}

type stubExceptionSender struct {
	mu      sync.Mutex
	reports []exceptionReport

	reportCh chan exceptionReport
}

func newStubExceptionSender() *stubExceptionSender {
	return &stubExceptionSender{reportCh: make(chan exceptionReport, 8)}
}

func (s *stubExceptionSender) SendException(directive *avs.Directive, exceptionType avs.ExceptionType, message string) error {
	report := exceptionReport{exceptionType: exceptionType, message: message}

	s.mu.Lock()
	s.reports = append(s.reports, report)
	s.mu.Unlock()

	signal(s.reportCh, report)
	return nil
}

type contextUpdate struct {
	state        avs.ContextState
	requestToken uint64
}

type stubContextReporter struct {
	mu        sync.Mutex
	providers map[avs.NamespaceAndName]StateProvider
	updates   []contextUpdate

	updateCh chan contextUpdate
}

func newStubContextReporter() *stubContextReporter {
	return &stubContextReporter{
		providers: make(map[avs.NamespaceAndName]StateProvider),
		updateCh:  make(chan contextUpdate, 8),
	}
}

func (r *stubContextReporter) AddStateProvider(name avs.NamespaceAndName, provider StateProvider) {
	r.mu.Lock()
	r.providers[name] = provider
	r.mu.Unlock()
}

func (r *stubContextReporter) RemoveStateProvider(name avs.NamespaceAndName) {
	r.mu.Lock()
	delete(r.providers, name)
	r.mu.Unlock()
}

func (r *stubContextReporter) SetState(name avs.NamespaceAndName, payload []byte, stateRequestToken uint64) error {
	var state avs.ContextState
	if err := json.Unmarshal(payload, &state); err != nil {
		return err
	}
	update := contextUpdate{state: state, requestToken: stateRequestToken}

	r.mu.Lock()
	r.updates = append(r.updates, update)
	r.mu.Unlock()

	signal(r.updateCh, update)
	return nil
}

func (r *stubContextReporter) hasProvider(name avs.NamespaceAndName) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.providers[name]
	return ok
}

type stubResult struct {
	mu        sync.Mutex
	completed int
	failures  []string

	completedCh chan struct{}
	failedCh    chan string
}

func newStubResult() *stubResult {
	return &stubResult{
		completedCh: make(chan struct{}, 1),
		failedCh:    make(chan string, 1),
	}
}

func (r *stubResult) SetCompleted() {
	r.mu.Lock()
	r.completed++
	r.mu.Unlock()
	signal(r.completedCh, struct{}{})
}

func (r *stubResult) SetFailed(description string) {
	r.mu.Lock()
	r.failures = append(r.failures, description)
	r.mu.Unlock()
	signal(r.failedCh, description)
}

func (r *stubResult) completedCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}

func (r *stubResult) failedDescriptions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	failures := make([]string, len(r.failures))
	copy(failures, r.failures)
	return failures
}

type recordingObserver struct {
	mu     sync.Mutex
	states []State

	stateCh chan State
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{stateCh: make(chan State, 8)}
}

func (o *recordingObserver) OnStateChanged(state State) {
	o.mu.Lock()
	o.states = append(o.states, state)
	o.mu.Unlock()
	signal(o.stateCh, state)
}

func (o *recordingObserver) seenStates() []State {
	o.mu.Lock()
	defer o.mu.Unlock()

	states := make([]State, len(o.states))
	copy(states, o.states)
	return states
}

// fixture wires an agent to a full set of stub collaborators.
type fixture struct {
	agent       *SpeechSynthesizer
	player      *stubMediaPlayer
	focus       *stubFocusManager
	sender      *stubMessageSender
	exceptions  *stubExceptionSender
	reporter    *stubContextReporter
	attachments *attachments.InMemoryStore
	observer    *recordingObserver
}

func newFixture(t *testing.T, mutators ...func(*fixture)) *fixture {
	t.Helper()

	f := &fixture{
		player:      newStubMediaPlayer(),
		focus:       newStubFocusManager(),
		sender:      newStubMessageSender(),
		exceptions:  newStubExceptionSender(),
		reporter:    newStubContextReporter(),
		attachments: attachments.NewInMemoryStore(),
		observer:    newRecordingObserver(),
	}
	for _, mutate := range mutators {
		mutate(f)
	}

	agent, err := New(
		WithMediaPlayer(f.player),
		WithFocusManager(f.focus),
		WithMessageSender(f.sender),
		WithExceptionSender(f.exceptions),
		WithContextReporter(f.reporter),
		WithAttachmentStore(f.attachments),
	)
	if err != nil {
		t.Fatalf("expected agent construction to succeed, got %v", err)
	}
	f.agent = agent
	f.agent.AddObserver(f.observer)
	return f
}

func newSpeakDirective(messageID, token, attachmentID string) *avs.Directive {
	payload := fmt.Sprintf(`{"token":%q,"url":"cid:%s","format":"AUDIO_MPEG"}`, token, attachmentID)
	return &avs.Directive{
		Header: avs.Header{
			Namespace: avs.NamespaceSpeechSynthesizer,
			Name:      avs.NameSpeak,
			MessageID: messageID,
		},
		Payload: json.RawMessage(payload),
	}
}

// speakUntilPlaying walks one directive through pre-handle, handle, focus
// grant and playback start.
func (f *fixture) speakUntilPlaying(t *testing.T, messageID, token string, result DirectiveResult) {
	t.Helper()

	f.attachments.Put("audio-"+messageID, []byte("speech audio"))
	if err := f.agent.PreHandleDirective(newSpeakDirective(messageID, token, "audio-"+messageID), result); err != nil {
		t.Fatalf("expected pre-handle to succeed, got %v", err)
	}
	if err := f.agent.HandleDirective(messageID); err != nil {
		t.Fatalf("expected handle to succeed, got %v", err)
	}

	await(t, f.player.playCh, "media playback to be requested")
	f.agent.OnPlaybackStarted()
	awaitObservedState(t, f.observer, StatePlaying)
}

func awaitObservedState(t *testing.T, observer *recordingObserver, expected State) {
	t.Helper()

	for {
		if state := await(t, observer.stateCh, fmt.Sprintf("observer state %s", expected)); state == expected {
			return
		}
	}
}

func awaitEventNamed(t *testing.T, sender *stubMessageSender, name string) avs.Event {
	t.Helper()

	for {
		event := await(t, sender.eventCh, fmt.Sprintf("event %s", name))
		if event.Header.Name == name {
			return event
		}
	}
}

func eventToken(t *testing.T, event avs.Event) string {
	t.Helper()

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatalf("expected event payload to parse, got %v", err)
	}
	return payload.Token
}
