package queue

import (
	"context"
	"sort"
	"sync"
)

// Registry keeps at most one active repeating poll task per queue id
type Registry struct {
	mu    sync.Mutex
	tasks map[string]*task
}

type task struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewRegistry makes an empty Registry
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]*task)}
}

// Start runs fn in a goroutine under a cancellable context registered for id.
// An existing task for the same id is cancelled first.
func (r *Registry) Start(ctx context.Context, id string, fn func(ctx context.Context)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, found := r.tasks[id]; found {
		old.stop()
	}
	taskCtx, cancel := context.WithCancel(ctx)
	t := &task{cancel: cancel, done: make(chan struct{})}
	r.tasks[id] = t
	go fn(taskCtx)
}

// Cancel stops and removes the task for id, returns false if there was none. Safe to call multiple times.
func (r *Registry) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, found := r.tasks[id]
	if !found {
		return false
	}
	t.stop()
	delete(r.tasks, id)
	return true
}

// CancelAll stops and removes all tasks
func (r *Registry) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tasks {
		t.stop()
		delete(r.tasks, id)
	}
}

// Has reports whether id has an active task
func (r *Registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, found := r.tasks[id]
	return found
}

// IDs returns sorted ids of active tasks
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]string, 0, len(r.tasks))
	for id := range r.tasks {
		res = append(res, id)
	}
	sort.Strings(res)
	return res
}

// anyDone returns the done channel of some active task, nil if none is active
func (r *Registry) anyDone() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tasks {
		return t.done
	}
	return nil
}

func (t *task) stop() {
	t.once.Do(func() {
		t.cancel()
		close(t.done)
	})
}
