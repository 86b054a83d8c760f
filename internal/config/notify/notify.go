// Package notify delivers settings change notifications.
//
// Sources of change (the settings file watcher, the language client's
// configuration push, a Lua script) publish on a Notifier; consumers such as
// a suggestion session subscribe to a path and rebuild their state when it
// fires.
package notify

import (
	"sync"
)

// Well-known paths.
const (
	// PathCallouts is the callout-manager section of the host settings.
	PathCallouts = "settings.callouts"
)

// ChangeType represents the type of settings change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota

	// ChangeDelete indicates a value was deleted.
	ChangeDelete

	// ChangeReload indicates the entire settings document was reloaded.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change is one settings change event.
type Change struct {
	// Path is the dot-separated path of the changed section.
	// Empty for reload events.
	Path string

	Type ChangeType

	// Value is the new value, when the source has one in hand.
	Value any

	// Source identifies where the change came from ("watcher", "client", ...).
	Source string
}

// Observer is called when a change is delivered.
type Observer func(change Change)

// Subscription is an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier fans changes out to observers.
type Notifier struct {
	mu sync.RWMutex

	global map[uint64]Observer
	byPath map[string]map[uint64]Observer
	nextID uint64

	async  bool
	buffer chan Change
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync delivers notifications from a background goroutine through a
// buffer of the given size. Observers then run one at a time, in order.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Change, bufferSize)
		}
	}
}

// New creates a Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		global: make(map[uint64]Observer),
		byPath: make(map[string]map[uint64]Observer),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}

	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}
	return n
}

// Subscribe registers an observer for every change.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.global[id] = observer
	return &Subscription{id: id, notifier: n}
}

// SubscribePath registers an observer for path, its children and reloads.
// Subscribing to "settings" receives changes to "settings.callouts".
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	if n.byPath[path] == nil {
		n.byPath[path] = make(map[uint64]Observer)
	}
	n.byPath[path][id] = observer
	return &Subscription{id: id, notifier: n}
}

// Notify publishes a change. After Close it is a no-op.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	closed := n.closed
	n.mu.RUnlock()
	if closed {
		return
	}

	if n.async {
		select {
		case n.buffer <- change:
		case <-n.done:
		}
		return
	}
	n.deliver(change)
}

// NotifySet publishes a set change for path.
func (n *Notifier) NotifySet(path string, value any, source string) {
	n.Notify(Change{Path: path, Type: ChangeSet, Value: value, Source: source})
}

// NotifyReload publishes a reload of everything.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Close stops delivery, draining buffered changes first. It is safe to call
// Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.global, id)
	for path, observers := range n.byPath {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.byPath, path)
		}
	}
}

func (n *Notifier) deliver(change Change) {
	n.mu.RLock()
	var observers []Observer
	for _, obs := range n.global {
		observers = append(observers, obs)
	}
	for path, pathObs := range n.byPath {
		if change.Path != "" && path != change.Path && !isParentPath(path, change.Path) {
			continue
		}
		for _, obs := range pathObs {
			observers = append(observers, obs)
		}
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case change := <-n.buffer:
			n.deliver(change)
		case <-n.done:
			for {
				select {
				case change := <-n.buffer:
					n.deliver(change)
				default:
					return
				}
			}
		}
	}
}

// isParentPath reports whether parent is a proper ancestor of child.
func isParentPath(parent, child string) bool {
	if parent == "" {
		return true
	}
	return len(child) > len(parent) && child[:len(parent)] == parent && child[len(parent)] == '.'
}
