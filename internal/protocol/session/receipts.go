package session

// ReceiptKind tags the client action a pending receipt belongs to.
type ReceiptKind int

const (
	ReceiptJoined ReceiptKind = iota
	ReceiptExited
	ReceiptLoggedOut
)

// ReceiptAction describes what a RECEIPT frame confirms when it arrives.
type ReceiptAction struct {
	Kind    ReceiptKind
	Channel string
}

// String renders the confirmation text shown to the user.
func (a ReceiptAction) String() string {
	switch a.Kind {
	case ReceiptJoined:
		return "Joined channel " + a.Channel
	case ReceiptExited:
		return "Exited channel " + a.Channel
	case ReceiptLoggedOut:
		return "Logged out"
	}
	return "Unknown action"
}

// ReceiptTable maps receipt ids to their pending actions. The id counter
// advances only when an entry is actually registered, so a rejected
// command never burns an id. No internal locking; the engine's mutex
// guards every access.
type ReceiptTable struct {
	pending map[int]ReceiptAction
	nextID  int
}

func NewReceiptTable() *ReceiptTable {
	return &ReceiptTable{pending: make(map[int]ReceiptAction)}
}

// Register stores the action under a fresh receipt id and returns the id.
func (t *ReceiptTable) Register(action ReceiptAction) int {
	id := t.nextID
	t.nextID++
	t.pending[id] = action
	return id
}

// Resolve removes and returns the action for id. Consumption is
// single-shot: a second resolve of the same id misses.
func (t *ReceiptTable) Resolve(id int) (ReceiptAction, bool) {
	action, ok := t.pending[id]
	if ok {
		delete(t.pending, id)
	}
	return action, ok
}

// Pending returns the number of outstanding receipts.
func (t *ReceiptTable) Pending() int {
	return len(t.pending)
}
