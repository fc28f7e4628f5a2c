package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/example/ecommerce-api/events"
	"github.com/example/ecommerce-api/modules/order"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/shopspring/decimal"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)         {}
func (m *mockLogger) Info(msg string, args ...any)          {}
func (m *mockLogger) Warn(msg string, args ...any)          {}
func (m *mockLogger) Error(msg string, args ...any)         {}
func (m *mockLogger) With(args ...any) types.Logger         { return m }
func (m *mockLogger) WithError(err error) types.Logger      { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

func TestModule_RecordsOrderLifecycle(t *testing.T) {
	m := NewModule(0, &mockLogger{})
	ctx := context.Background()

	if err := m.handleOrderCreated(ctx, events.OrderCreatedEvent{
		OrderID:    "o1",
		UserID:     "u1",
		TotalPrice: decimal.NewFromInt(250),
		ItemCount:  2,
	}, nil); err != nil {
		t.Fatalf("handleOrderCreated() error = %v", err)
	}
	if err := m.handleStatusChanged(ctx, events.OrderStatusChangedEvent{
		OrderID: "o1", UserID: "u1", From: "0", To: "1", ChangedAt: time.Now(),
	}, nil); err != nil {
		t.Fatalf("handleStatusChanged() error = %v", err)
	}
	if err := m.handleOrderDeleted(ctx, events.OrderDeletedEvent{OrderID: "o2", UserID: "u2"}, nil); err != nil {
		t.Fatalf("handleOrderDeleted() error = %v", err)
	}

	all := m.Notices("")
	if len(all) != 3 {
		t.Fatalf("len(Notices) = %d, want 3", len(all))
	}

	wantTypes := []string{"order_created", "order_status_changed", "order_deleted"}
	for i, want := range wantTypes {
		if all[i].Type != want {
			t.Errorf("Notices()[%d].Type = %q, want %q", i, all[i].Type, want)
		}
	}
	if !strings.Contains(all[0].Message, "250.00") {
		t.Errorf("created message = %q, want total 250.00", all[0].Message)
	}
	if !strings.Contains(all[1].Message, "shipped") {
		t.Errorf("status message = %q, want label shipped", all[1].Message)
	}

	mine := m.Notices("u1")
	if len(mine) != 2 {
		t.Errorf("len(Notices(u1)) = %d, want 2", len(mine))
	}
}

func TestModule_UnknownStatusUsesRawValue(t *testing.T) {
	m := NewModule(10, &mockLogger{})

	_ = m.handleStatusChanged(context.Background(), events.OrderStatusChangedEvent{OrderID: "o1", To: "on hold"}, nil)

	got := m.Notices("")
	if len(got) != 1 || !strings.HasSuffix(got[0].Message, "on hold") {
		t.Errorf("Notices() = %+v, want message ending in raw status", got)
	}
}

func TestModule_CapacityDropsOldest(t *testing.T) {
	m := NewModule(2, &mockLogger{})
	ctx := context.Background()

	for _, id := range []string{"o1", "o2", "o3"} {
		_ = m.handleOrderDeleted(ctx, events.OrderDeletedEvent{OrderID: id}, nil)
	}

	got := m.Notices("")
	if len(got) != 2 {
		t.Fatalf("len(Notices) = %d, want 2", len(got))
	}
	if got[0].OrderID != "o2" || got[1].OrderID != "o3" {
		t.Errorf("Notices() kept %s, %s; want o2, o3", got[0].OrderID, got[1].OrderID)
	}

	health := m.Health(ctx)
	if !health.Healthy || health.Details["notices"] != 2 {
		t.Errorf("Health() = %+v", health)
	}
}

func TestModule_RingWrapsAroundManyTimes(t *testing.T) {
	m := NewModule(3, &mockLogger{})
	ctx := context.Background()

	for i := 1; i <= 8; i++ {
		_ = m.handleOrderDeleted(ctx, events.OrderDeletedEvent{OrderID: fmt.Sprintf("o%d", i)}, nil)
	}

	got := m.Notices("")
	if len(got) != 3 {
		t.Fatalf("len(Notices) = %d, want 3", len(got))
	}
	for i, want := range []string{"o6", "o7", "o8"} {
		if got[i].OrderID != want {
			t.Errorf("Notices()[%d].OrderID = %s, want %s", i, got[i].OrderID, want)
		}
	}
}

// stubOrders implements order.OrderPort for testing
type stubOrders struct {
	summary *order.GetOrderResponse
	err     error
}

func (s *stubOrders) GetOrder(_ context.Context, _ string) (*order.GetOrderResponse, error) {
	return s.summary, s.err
}

func TestModule_StatusNoticeIncludesOrderSummary(t *testing.T) {
	tests := []struct {
		name    string
		orders  *stubOrders
		wantEnd string
	}{
		{
			name: "summary available",
			orders: &stubOrders{summary: &order.GetOrderResponse{
				ID: "o1", ItemCount: 2, TotalPrice: decimal.NewFromInt(250),
			}},
			wantEnd: "is now delivered (2 item(s), total 250.00)",
		},
		{
			name:    "summary lookup fails",
			orders:  &stubOrders{err: errors.New("timeout")},
			wantEnd: "is now delivered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModule(10, &mockLogger{})
			m.orders = tt.orders

			if err := m.handleStatusChanged(context.Background(), events.OrderStatusChangedEvent{
				OrderID: "o1", UserID: "u1", From: "1", To: "2",
			}, nil); err != nil {
				t.Fatalf("handleStatusChanged() error = %v", err)
			}

			got := m.Notices("u1")
			if len(got) != 1 || !strings.HasSuffix(got[0].Message, tt.wantEnd) {
				t.Errorf("Notices() = %+v, want message ending in %q", got, tt.wantEnd)
			}
		})
	}
}
