package cart

import (
	"testing"
	"time"

	"naturesbasket/models"
)

func TestMergeLineNewProduct(t *testing.T) {
	items := []models.CartLine{
		{ProductID: "p1", Quantity: 2, Price: 10},
	}
	line := models.CartLine{ProductID: "p2", Quantity: 1, Price: 5, AddedAt: time.Now()}

	got := MergeLine(items, line)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2", len(got))
	}
	if got[1].ProductID != "p2" || got[1].Quantity != 1 {
		t.Errorf("appended line = %+v", got[1])
	}
}

func TestMergeLineExistingProductSumsQuantity(t *testing.T) {
	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []models.CartLine{
		{ProductID: "p1", Quantity: 2, Price: 10, AddedAt: old},
	}
	fresh := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	line := models.CartLine{ProductID: "p1", Quantity: 3, Price: 12, AddedAt: fresh}

	got := MergeLine(items, line)
	if len(got) != 1 {
		t.Fatalf("got %d lines, want 1", len(got))
	}
	if got[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", got[0].Quantity)
	}
	// price and timestamp follow the latest touch
	if got[0].Price != 12 {
		t.Errorf("price = %v, want refreshed 12", got[0].Price)
	}
	if !got[0].AddedAt.Equal(fresh) {
		t.Errorf("addedAt = %v, want %v", got[0].AddedAt, fresh)
	}
}

func TestMergeLineEmptyCart(t *testing.T) {
	line := models.CartLine{ProductID: "p1", Quantity: 1, Price: 10}
	got := MergeLine(nil, line)
	if len(got) != 1 || got[0].ProductID != "p1" {
		t.Fatalf("merge into empty cart = %+v", got)
	}
}
