package link

import (
	"errors"
	"fmt"
)

// ErrAlreadyResolved is returned when resolving a reference
// that does not hold a proxy.
var ErrAlreadyResolved = errors.New("reference already resolved")

// A Target is the value of a Ref: a *Proxy or a *Feature.
type Target interface {
	isTarget()
}

// A Proxy is an unresolved reference to a feature by name.
type Proxy struct {
	Name string
}

func (*Proxy) isTarget() {}

func (p *Proxy) String() string { return "proxy(" + p.Name + ")" }

// NotificationKind is the kind of a change to a Ref.
type NotificationKind int

const (
	// Set is an ordinary change of the target.
	Set NotificationKind = iota
	// Resolved is the replacement of a proxy by a feature.
	Resolved
)

func (k NotificationKind) String() string {
	if k == Resolved {
		return "resolved"
	}
	return "set"
}

// A Notification describes a change to a Ref.
type Notification struct {
	Kind NotificationKind
	Ref  *Ref
	Old  Target
	New  Target
}

// An Observer is notified of changes to a Ref.
type Observer func(Notification)

// A Ref is a mutable reference cell from a call site to its feature.
type Ref struct {
	target    Target
	deliver   bool
	observers []Observer
}

// NewRef returns a new Ref holding a proxy with the given name.
// Notifications are delivered by default.
func NewRef(name string) *Ref {
	return &Ref{target: &Proxy{Name: name}, deliver: true}
}

// Get returns the current target.
func (r *Ref) Get() Target { return r.target }

// Feature returns the resolved feature, or nil if r holds a proxy.
func (r *Ref) Feature() *Feature {
	f, _ := r.target.(*Feature)
	return f
}

// IsProxy returns whether the target is still a proxy.
func (r *Ref) IsProxy() bool {
	_, ok := r.target.(*Proxy)
	return ok
}

// Observe registers an observer.
func (r *Ref) Observe(o Observer) { r.observers = append(r.observers, o) }

// Deliver returns whether notifications are delivered.
func (r *Ref) Deliver() bool { return r.deliver }

// SetDeliver sets whether notifications are delivered.
func (r *Ref) SetDeliver(b bool) { r.deliver = b }

func (r *Ref) notificationRequired() bool { return r.deliver && len(r.observers) > 0 }

// Set changes the target, notifying observers with a Set notification.
func (r *Ref) Set(t Target) {
	old := r.target
	r.target = t
	if r.notificationRequired() {
		r.notify(Notification{Kind: Set, Ref: r, Old: old, New: t})
	}
}

// Resolve replaces the proxy target with a feature.
// If the target is not a proxy, ErrAlreadyResolved is returned.
// Observers receive exactly one Resolved notification;
// the Set notification of the replacement itself is suppressed.
func (r *Ref) Resolve(f *Feature) error {
	old := r.target
	if _, ok := old.(*Proxy); !ok || old == nil {
		return fmt.Errorf("%w to %s", ErrAlreadyResolved, targetString(old))
	}
	if !r.notificationRequired() {
		r.Set(f)
		return nil
	}
	wasDeliver := r.deliver
	r.deliver = false
	r.Set(f)
	r.deliver = wasDeliver
	if Target(f) != old {
		r.notify(Notification{Kind: Resolved, Ref: r, Old: old, New: f})
	}
	return nil
}

func (r *Ref) notify(n Notification) {
	for _, o := range r.observers {
		o(n)
	}
}

func targetString(t Target) string {
	switch t := t.(type) {
	case nil:
		return "nil"
	case *Feature:
		return t.String()
	case *Proxy:
		return t.String()
	default:
		panic("impossible")
	}
}
