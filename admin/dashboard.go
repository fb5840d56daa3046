package admin

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"naturesbasket/db"
	"naturesbasket/models"
	"naturesbasket/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func countBy(ctx context.Context, coll *mongo.Collection, field string) (map[string]int64, error) {
	cursor, err := coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make(map[string]int64)
	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Count
	}
	return out, nil
}

// Revenue counts only orders that actually went out the door. Zero bounds
// leave that side of the window open.
func revenueBetween(ctx context.Context, start, end time.Time) (float64, error) {
	match := bson.M{"status": bson.M{"$in": []models.OrderStatus{models.OrderShipped, models.OrderDelivered}}}
	created := bson.M{}
	if !start.IsZero() {
		created["$gte"] = start
	}
	if !end.IsZero() {
		created["$lt"] = end
	}
	if len(created) > 0 {
		match["createdAt"] = created
	}

	cursor, err := db.OrdersCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "revenue": bson.M{"$sum": "$total"}}}},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Revenue, nil
}

// GetDashboard aggregates counts by role, moderation state and order status,
// plus all-time revenue. Read-only; no invariants live here.
func GetDashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	usersByRole, err := countBy(ctx, db.UserCollection, "role")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to aggregate users")
		return
	}
	usersByStatus, err := countBy(ctx, db.UserCollection, "status")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to aggregate users")
		return
	}
	landsByStatus, err := countBy(ctx, db.LandsCollection, "status")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to aggregate lands")
		return
	}
	productsByStatus, err := countBy(ctx, db.ProductCollection, "status")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to aggregate products")
		return
	}
	ordersByStatus, err := countBy(ctx, db.OrdersCollection, "status")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to aggregate orders")
		return
	}
	revenue, err := revenueBetween(ctx, time.Time{}, time.Time{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute revenue")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"users":    utils.M{"byRole": usersByRole, "byStatus": usersByStatus},
		"lands":    utils.M{"byStatus": landsByStatus},
		"products": utils.M{"byStatus": productsByStatus},
		"orders":   utils.M{"byStatus": ordersByStatus},
		"revenue":  revenue,
	})
}

// GetAnalytics compares the trailing ?days= window against the window before
// it: new users, new orders, revenue.
func GetAnalytics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days < 1 {
		days = 30
	}

	now := time.Now()
	windowStart := now.AddDate(0, 0, -days)
	prevStart := now.AddDate(0, 0, -2*days)

	currentUsers, err := db.UserCollection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": windowStart}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count users")
		return
	}
	previousUsers, err := db.UserCollection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": prevStart, "$lt": windowStart}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count users")
		return
	}

	currentOrders, err := db.OrdersCollection.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": windowStart}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count orders")
		return
	}
	previousOrders, err := db.OrdersCollection.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": prevStart, "$lt": windowStart}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count orders")
		return
	}

	currentRevenue, err := revenueBetween(ctx, windowStart, time.Time{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute revenue")
		return
	}
	previousRevenue, err := revenueBetween(ctx, prevStart, windowStart)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute revenue")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"windowDays": days,
		"users":      utils.M{"current": currentUsers, "previous": previousUsers, "growth": Growth(currentUsers, previousUsers)},
		"orders":     utils.M{"current": currentOrders, "previous": previousOrders, "growth": Growth(currentOrders, previousOrders)},
		"revenue":    utils.M{"current": currentRevenue, "previous": previousRevenue, "growth": growthRate(currentRevenue, previousRevenue)},
	})
}

// Growth is the percentage change between windows; a previous window of zero
// reads as 100% when anything happened at all.
func Growth(current, previous int64) float64 {
	return growthRate(float64(current), float64(previous))
}

// growthRate handles fractional quantities like revenue.
func growthRate(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}
