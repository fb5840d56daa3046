package orders

import (
	"context"
	"errors"
	"testing"
)

func TestClaimAndReleaseDeltasCancel(t *testing.T) {
	for _, qty := range []int{1, 3, 10} {
		c, r := claimDelta(qty), releaseDelta(qty)
		for _, field := range []string{"stock", "sales"} {
			if c[field].(int)+r[field].(int) != 0 {
				t.Errorf("qty %d: %s movements do not cancel: %v then %v", qty, field, c[field], r[field])
			}
		}
	}

	c := claimDelta(4)
	if c["stock"].(int) != -4 || c["sales"].(int) != 4 {
		t.Errorf("claim delta = %v, want stock -4 and sales +4", c)
	}
}

func TestClaimLedgerReleasesExactQuantities(t *testing.T) {
	// two lines claimed, third line fails: only the first two are handed back
	var ledger claimLedger
	ledger.record("p1", 2)
	ledger.record("p2", 5)

	restored := map[string]int{}
	ledger.releaseAll(context.Background(), func(_ context.Context, id string, qty int) error {
		restored[id] += qty
		return nil
	})

	if len(restored) != 2 || restored["p1"] != 2 || restored["p2"] != 5 {
		t.Errorf("restored = %v, want exactly the claimed quantities", restored)
	}
}

func TestClaimLedgerReleaseContinuesPastFailure(t *testing.T) {
	var ledger claimLedger
	ledger.record("p1", 1)
	ledger.record("p2", 3)

	restored := map[string]int{}
	ledger.releaseAll(context.Background(), func(_ context.Context, id string, qty int) error {
		if id == "p1" {
			return errors.New("connection reset")
		}
		restored[id] += qty
		return nil
	})

	if restored["p2"] != 3 {
		t.Errorf("later claim not restored after an earlier failure: %v", restored)
	}
}

func TestEmptyLedgerReleasesNothing(t *testing.T) {
	var ledger claimLedger
	calls := 0
	ledger.releaseAll(context.Background(), func(_ context.Context, _ string, _ int) error {
		calls++
		return nil
	})
	if calls != 0 {
		t.Errorf("empty ledger made %d restore calls", calls)
	}
}
