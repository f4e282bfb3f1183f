package speechsynthesizer

import "sync"

// Observer receives playback state changes. Callbacks run on the agent's
// executor goroutine; they may call back into the agent's asynchronous entry
// points but must not block.
type Observer interface {
	OnStateChanged(state State)
}

// observerRegistry fans state changes out to subscribers. Mutation is
// serialized through the executor; the mutex only protects the snapshot taken
// for dispatch, which happens with no lock held so observers can re-enter the
// agent.
type observerRegistry struct {
	mu        sync.Mutex
	observers []Observer
}

func (r *observerRegistry) add(observer Observer) {
	if observer == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.observers {
		if existing == observer {
			return
		}
	}
	r.observers = append(r.observers, observer)
}

func (r *observerRegistry) remove(observer Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.observers {
		if existing == observer {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

func (r *observerRegistry) notify(state State) {
	r.mu.Lock()
	snapshot := make([]Observer, len(r.observers))
	copy(snapshot, r.observers)
	r.mu.Unlock()

	for _, observer := range snapshot {
		observer.OnStateChanged(state)
	}
}
