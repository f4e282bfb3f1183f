package speechsynthesizer

import "sync"

const taskQueueCapacity = 64 // TODO: Figure out good values for this.

// executor runs submitted tasks one at a time on a single goroutine. All
// mutation of agent state happens through it, so tasks never race with each
// other.
type executor struct {
	queue   chan func()
	closeCh chan struct{}
	done    chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
}

func newExecutor() *executor {
	e := &executor{
		queue:   make(chan func(), taskQueueCapacity),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	e.start()
	return e
}

func (e *executor) start() {
	e.startOnce.Do(func() {
		go func() {
			defer close(e.done)

			for {
				select {
				case <-e.closeCh:
					e.drain()
					return
				case task := <-e.queue:
					task()
				}
			}
		}()
	})
}

// drain runs tasks that were already queued when close was requested.
func (e *executor) drain() {
	for {
		select {
		case task := <-e.queue:
			task()
		default:
			return
		}
	}
}

// submit enqueues task for serialized execution. It reports false once the
// executor is closing; such tasks are dropped.
func (e *executor) submit(task func()) bool {
	select {
	case <-e.closeCh:
		return false
	default:
	}

	select {
	case e.queue <- task:
		return true
	case <-e.closeCh:
		return false
	}
}

// close stops the executor and waits until queued tasks have run.
func (e *executor) close() {
	e.closeOnce.Do(func() {
		close(e.closeCh)
	})
	<-e.done
}
