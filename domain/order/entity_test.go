package order

import "testing"

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status Status
		label  string
		known  bool
	}{
		{StatusPending, "pending", true},
		{StatusShipped, "shipped", true},
		{StatusDelivered, "delivered", true},
		{StatusCancelled, "cancelled", true},
		{Status("on-hold"), "on-hold", false},
	}

	for _, tt := range tests {
		if got := tt.status.Label(); got != tt.label {
			t.Errorf("Status(%q).Label() = %q, want %q", tt.status, got, tt.label)
		}
		if got := tt.status.Known(); got != tt.known {
			t.Errorf("Status(%q).Known() = %v, want %v", tt.status, got, tt.known)
		}
	}
}

func TestOrderItemIDs(t *testing.T) {
	o := &Order{OrderItems: []OrderItem{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	got := o.ItemIDs()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("len(ItemIDs()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ItemIDs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
