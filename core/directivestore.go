package speechsynthesizer

import (
	"io"
	"sync"

	"github.com/skaggar/avs-device-sdk/core/avs"
)

// speakDirective carries everything needed to process one Speak directive
// from pre-handle to retirement.
type speakDirective struct {
	directive *avs.Directive
	result    DirectiveResult

	token        string
	attachmentID string

	// reader is the open attachment reader while playback is active.
	reader io.ReadCloser

	// sendFinished tracks whether a SpeechFinished event is still owed to the
	// cloud for this utterance.
	sendFinished bool
	// sendCompleted tracks whether a completion report is still owed to the
	// upstream sequencer.
	sendCompleted bool

	// playStarted is set once the media player has been asked to play.
	playStarted bool
	// queued is set when the record enters the pending queue.
	queued bool
}

func (d *speakDirective) messageID() string {
	return d.directive.Header.MessageID
}

// clear releases per-utterance resources.
func (d *speakDirective) clear() {
	if d.reader != nil {
		d.reader.Close()
		d.reader = nil
	}
}

// directiveStore keeps every pre-handled but not-yet-retired speak directive,
// both as a messageId lookup map and as the FIFO queue of directives awaiting
// or holding activation. The queue head is the directive currently being
// handled.
//
// The map and the queue are guarded by separate mutexes. When both are
// needed the queue mutex is taken first.
type directiveStore struct {
	recordsMu sync.Mutex
	records   map[string]*speakDirective

	queueMu sync.Mutex
	queue   []*speakDirective
}

func newDirectiveStore() *directiveStore {
	return &directiveStore{records: make(map[string]*speakDirective)}
}

// register maps messageID to record. It reports false without replacing the
// existing entry when the id is already mapped.
func (s *directiveStore) register(messageID string, record *speakDirective) bool {
	s.recordsMu.Lock()
	defer s.recordsMu.Unlock()

	if _, exists := s.records[messageID]; exists {
		return false
	}
	s.records[messageID] = record
	return true
}

func (s *directiveStore) lookup(messageID string) *speakDirective {
	s.recordsMu.Lock()
	defer s.recordsMu.Unlock()

	return s.records[messageID]
}

func (s *directiveStore) remove(messageID string) {
	s.recordsMu.Lock()
	delete(s.records, messageID)
	s.recordsMu.Unlock()
}

// enqueue appends record to the pending queue and reports whether it became
// the head, in which case the caller activates it.
func (s *directiveStore) enqueue(record *speakDirective) bool {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	s.queue = append(s.queue, record)
	return len(s.queue) == 1
}

// head returns the directive currently at the front of the queue.
func (s *directiveStore) head() *speakDirective {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	if len(s.queue) == 0 {
		return nil
	}
	return s.queue[0]
}

// dequeueHead removes and returns the queue head, or nil if the queue is
// empty.
func (s *directiveStore) dequeueHead() *speakDirective {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	if len(s.queue) == 0 {
		return nil
	}
	record := s.queue[0]
	s.queue = s.queue[1:]
	return record
}

// removeQueued drops record from the pending queue wherever it sits. It
// reports false if the record was not queued.
func (s *directiveStore) removeQueued(record *speakDirective) bool {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	for i, queued := range s.queue {
		if queued == record {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return true
		}
	}
	return false
}

// drainQueue empties the pending queue and returns the removed directives in
// FIFO order.
func (s *directiveStore) drainQueue() []*speakDirective {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	drained := s.queue
	s.queue = nil
	return drained
}
