package orders

import (
	"context"
	"log"

	"naturesbasket/db"

	"go.mongodb.org/mongo-driver/bson"
)

// claimDelta is the counter movement applied when qty units are claimed;
// releaseDelta is its exact inverse. Stock and sales always move together.
func claimDelta(qty int) bson.M   { return bson.M{"stock": -qty, "sales": qty} }
func releaseDelta(qty int) bson.M { return bson.M{"stock": qty, "sales": -qty} }

// DecrementStock takes qty units from the product if, and only if, enough
// stock remains. The filter and the $inc run as one conditional update, so
// two borderline orders cannot both drain the same units.
func DecrementStock(ctx context.Context, productID string, qty int) (bool, error) {
	res, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": productID, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": claimDelta(qty)},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// RestoreStock is the exact inverse of DecrementStock, used on cancellation
// and when order creation aborts partway.
func RestoreStock(ctx context.Context, productID string, qty int) error {
	_, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{"$inc": releaseDelta(qty)},
	)
	return err
}

type claim struct {
	productID string
	qty       int
}

// claimLedger records the conditional decrements that succeeded so an
// aborted order can hand every claimed unit back.
type claimLedger struct {
	claims []claim
}

func (l *claimLedger) record(productID string, qty int) {
	l.claims = append(l.claims, claim{productID, qty})
}

// releaseAll hands back everything recorded. A failed restore is logged and
// does not stop the remaining claims from being released.
func (l *claimLedger) releaseAll(ctx context.Context, restore func(context.Context, string, int) error) {
	for _, c := range l.claims {
		if err := restore(ctx, c.productID, c.qty); err != nil {
			log.Printf("Failed to restore stock for %s: %v", c.productID, err)
		}
	}
}
