package session

import "errors"

var (
	ErrAlreadySubscribed = errors.New("session: already subscribed")
	ErrNotSubscribed     = errors.New("session: not subscribed")
)

// SubscriptionTable is the bidirectional channel-name <-> subscription-id
// mapping. Ids come from a monotonic counter that never resets for the
// lifetime of one session. The table does no locking of its own; the
// engine's mutex guards every access.
type SubscriptionTable struct {
	byChannel map[string]int
	byID      map[int]string
	nextID    int
}

func NewSubscriptionTable() *SubscriptionTable {
	return &SubscriptionTable{
		byChannel: make(map[string]int),
		byID:      make(map[int]string),
	}
}

// Join registers the channel under a fresh subscription id. A channel
// that is already present allocates nothing.
func (t *SubscriptionTable) Join(channel string) (int, error) {
	if _, ok := t.byChannel[channel]; ok {
		return 0, ErrAlreadySubscribed
	}
	id := t.nextID
	t.nextID++
	t.byChannel[channel] = id
	t.byID[id] = channel
	return id, nil
}

// Leave removes the channel from both directions and returns the id
// that was bound to it.
func (t *SubscriptionTable) Leave(channel string) (int, error) {
	id, ok := t.byChannel[channel]
	if !ok {
		return 0, ErrNotSubscribed
	}
	delete(t.byChannel, channel)
	delete(t.byID, id)
	return id, nil
}

// Resolve maps an inbound subscription id back to its channel. Unknown
// ids are the caller's problem to ignore; servers may reference stale
// or foreign ids.
func (t *SubscriptionTable) Resolve(id int) (string, bool) {
	channel, ok := t.byID[id]
	return channel, ok
}

// Subscribed reports whether the channel has an active subscription.
func (t *SubscriptionTable) Subscribed(channel string) bool {
	_, ok := t.byChannel[channel]
	return ok
}

// Active returns the number of live subscriptions.
func (t *SubscriptionTable) Active() int {
	return len(t.byChannel)
}
