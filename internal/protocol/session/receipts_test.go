package session

import (
	"testing"

	"github.com/stompctl/stompctl/internal/testutil/testlog"
)

func TestReceiptRegisterResolve(t *testing.T) {
	testlog.Start(t)
	tbl := NewReceiptTable()

	id := tbl.Register(ReceiptAction{Kind: ReceiptJoined, Channel: "chess"})
	if id != 0 {
		t.Fatalf("expected first id 0, got %d", id)
	}
	if tbl.Pending() != 1 {
		t.Fatalf("unexpected pending count: %d", tbl.Pending())
	}

	action, ok := tbl.Resolve(id)
	if !ok {
		t.Fatal("resolve missed registered receipt")
	}
	if action.Kind != ReceiptJoined || action.Channel != "chess" {
		t.Fatalf("unexpected action: %+v", action)
	}
	if action.String() != "Joined channel chess" {
		t.Fatalf("unexpected label: %q", action.String())
	}
}

func TestReceiptSingleConsumption(t *testing.T) {
	testlog.Start(t)
	tbl := NewReceiptTable()

	id := tbl.Register(ReceiptAction{Kind: ReceiptExited, Channel: "go"})
	if _, ok := tbl.Resolve(id); !ok {
		t.Fatal("first resolve should hit")
	}
	if _, ok := tbl.Resolve(id); ok {
		t.Fatal("second resolve of same id should miss")
	}
	if tbl.Pending() != 0 {
		t.Fatalf("unexpected pending count: %d", tbl.Pending())
	}
}

func TestReceiptIdsStrictlyIncreasing(t *testing.T) {
	testlog.Start(t)
	tbl := NewReceiptTable()

	prev := -1
	for i := 0; i < 5; i++ {
		id := tbl.Register(ReceiptAction{Kind: ReceiptLoggedOut})
		if id <= prev {
			t.Fatalf("ids not strictly increasing: %d after %d", id, prev)
		}
		prev = id
	}
}

func TestReceiptResolveUnknown(t *testing.T) {
	testlog.Start(t)
	tbl := NewReceiptTable()
	if _, ok := tbl.Resolve(42); ok {
		t.Fatal("unknown receipt id should miss")
	}
}

func TestReceiptActionLabels(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		action ReceiptAction
		want   string
	}{
		{ReceiptAction{Kind: ReceiptJoined, Channel: "x"}, "Joined channel x"},
		{ReceiptAction{Kind: ReceiptExited, Channel: "y"}, "Exited channel y"},
		{ReceiptAction{Kind: ReceiptLoggedOut}, "Logged out"},
	}
	for _, tc := range cases {
		if got := tc.action.String(); got != tc.want {
			t.Fatalf("label mismatch: got %q want %q", got, tc.want)
		}
	}
}
