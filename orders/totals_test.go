package orders

import (
	"regexp"
	"testing"
	"time"

	"naturesbasket/models"
)

func TestComputeTotals(t *testing.T) {
	o := &models.Order{
		Items: []models.OrderItem{
			{Quantity: 2, UnitPrice: 40, Total: 80},
			{Quantity: 1, UnitPrice: 120, Total: 120},
		},
	}
	ComputeTotals(o)

	if o.Subtotal != 200 {
		t.Errorf("subtotal = %v, want 200", o.Subtotal)
	}
	if o.ShippingCost != ShippingCost {
		t.Errorf("shipping = %v, want %v", o.ShippingCost, ShippingCost)
	}
	if o.PlatformFee != 20 {
		t.Errorf("platform fee = %v, want 20", o.PlatformFee)
	}
	want := o.Subtotal + o.ShippingCost + o.PlatformFee + o.Tax
	if o.Total != want {
		t.Errorf("total = %v, want %v", o.Total, want)
	}
}

func TestComputeTotalsEmptyOrder(t *testing.T) {
	o := &models.Order{}
	ComputeTotals(o)
	if o.Subtotal != 0 {
		t.Errorf("subtotal = %v, want 0", o.Subtotal)
	}
	// shipping still applies even to an empty item list
	if o.Total != ShippingCost {
		t.Errorf("total = %v, want %v", o.Total, ShippingCost)
	}
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^NB-20250314-\d{6}$`)
	for i := 0; i < 10; i++ {
		n := NewOrderNumber(now)
		if !pattern.MatchString(n) {
			t.Fatalf("order number %q does not match %s", n, pattern)
		}
	}
}

func TestSnapshotItemUsesLivePrice(t *testing.T) {
	line := models.CartLine{ProductID: "p1", Quantity: 3, Price: 25} // stale cart price
	p := models.Product{ProductID: "p1", FarmerID: "f1", Name: "Tomatoes", Unit: "kg", Price: 30}

	it := SnapshotItem(line, p)

	if it.UnitPrice != 30 {
		t.Errorf("unit price = %v, want live price 30", it.UnitPrice)
	}
	if it.Total != 90 {
		t.Errorf("line total = %v, want 90", it.Total)
	}
	if it.ProductID != "p1" || it.FarmerID != "f1" || it.Quantity != 3 {
		t.Errorf("snapshot lost identity fields: %+v", it)
	}
}

func TestFarmerShare(t *testing.T) {
	o := &models.Order{
		Items: []models.OrderItem{
			{FarmerID: "f1", Total: 100},
			{FarmerID: "f2", Total: 50},
			{FarmerID: "f1", Total: 25},
		},
	}
	share := FarmerShare(o)
	if len(share) != 2 {
		t.Fatalf("got %d farmers, want 2", len(share))
	}
	if share["f1"] != 125 {
		t.Errorf("f1 share = %v, want 125", share["f1"])
	}
	if share["f2"] != 50 {
		t.Errorf("f2 share = %v, want 50", share["f2"])
	}
}
