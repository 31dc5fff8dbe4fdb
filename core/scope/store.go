package scope

import (
	"fmt"
	"sync"
)

// Namespace identifies one cache domain of the per-request store.
type Namespace int

const (
	NamespaceBody Namespace = iota
	NamespaceCookies
	NamespaceSetCookies
	NamespaceSetHeaders
	NamespaceStatus
	NamespaceResponse
	NamespaceSearchParams
	NamespaceAccept
	NamespaceAuthorization

	namespaceCount
)

var namespaceNames = [namespaceCount]string{
	"body",
	"cookies",
	"set-cookies",
	"set-headers",
	"status",
	"response",
	"search-params",
	"accept",
	"authorization",
}

// String returns the namespace name.
func (n Namespace) String() string {
	if n < 0 || n >= namespaceCount {
		return fmt.Sprintf("namespace(%d)", int(n))
	}
	return namespaceNames[n]
}

// Resetter is implemented by namespace state. Reset must empty the state in
// place: callers may hold a pointer to it.
type Resetter interface {
	Reset()
}

// state constrains namespace state to pointer types with a Reset method.
type state[T any] interface {
	*T
	Resetter
}

// Store is the per-request scratch area. It is owned by one Request and never
// shared between requests.
type Store struct {
	mu    sync.Mutex
	slots [namespaceCount]any
}

func newStore() *Store {
	return &Store{}
}

// Get returns the state of namespace ns, allocating an empty T on first access.
// Reading one namespace with two different types panics with ErrNamespaceType.
func Get[T any, P state[T]](s *Store, ns Namespace) P {
	if ns < 0 || ns >= namespaceCount {
		panic(fmt.Errorf("%w: unknown namespace %d", ErrContractViolation, int(ns)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v := s.slots[ns]; v != nil {
		p, ok := v.(P)
		if !ok {
			panic(fmt.Errorf("%w: %s holds %T", ErrNamespaceType, ns, v))
		}
		return p
	}

	p := P(new(T))
	s.slots[ns] = p
	return p
}

// Clear empties namespace ns in place. A namespace that was never touched is
// left unallocated.
func (s *Store) Clear(ns Namespace) {
	if ns < 0 || ns >= namespaceCount {
		return
	}

	s.mu.Lock()
	v := s.slots[ns]
	s.mu.Unlock()

	if r, ok := v.(Resetter); ok {
		r.Reset()
	}
}

// Lazy is a compute-once value. The first Get runs compute and caches both the
// value and the error; later calls return the cached pair until Reset.
type Lazy[T any] struct {
	mu   sync.Mutex
	done bool
	val  T
	err  error
}

// Get returns the cached value or computes it.
func (l *Lazy[T]) Get(compute func() (T, error)) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.done {
		l.val, l.err = compute()
		l.done = true
	}
	return l.val, l.err
}

// Value returns the cached value, if any.
func (l *Lazy[T]) Value() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.val, l.done
}

// Set stores v as the computed value.
func (l *Lazy[T]) Set(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.val, l.err, l.done = v, nil, true
}

// Reset drops the cached value.
func (l *Lazy[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero T
	l.val, l.err, l.done = zero, nil, false
}

// Memo is a compute-once map: each key is computed on first lookup.
type Memo[K comparable, V any] struct {
	mu     sync.Mutex
	values map[K]V
}

// Get returns the cached value for key or computes it.
func (m *Memo[K, V]) Get(key K, compute func() V) V {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.values[key]; ok {
		return v
	}
	if m.values == nil {
		m.values = make(map[K]V)
	}
	v := compute()
	m.values[key] = v
	return v
}

// Reset drops all keys, keeping the map itself.
func (m *Memo[K, V]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.values)
}
