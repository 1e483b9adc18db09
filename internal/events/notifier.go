package events

import "sync"

// AuthEvent describes a change to the session identity: login, logout or a
// profile update. Consumers treat the stream as eventually consistent.
type AuthEvent struct {
	Type   string `json:"type"`
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

const (
	AuthLogin          = "login"
	AuthLogout         = "logout"
	AuthProfileUpdated = "profile_updated"
)

// Notifier fans auth events out to in-process subscribers. Subscribe returns
// the channel together with an unsubscribe func so lifecycle stays explicit.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]chan AuthEvent
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan AuthEvent)}
}

func (n *Notifier) Subscribe() (<-chan AuthEvent, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan AuthEvent, 8)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish never blocks; a subscriber that stopped draining loses events
// instead of stalling the login path.
func (n *Notifier) Publish(e AuthEvent) {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
