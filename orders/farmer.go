package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"naturesbasket/db"
	"naturesbasket/models"
	"naturesbasket/mq"
	"naturesbasket/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetFarmerOrders lists orders containing at least one of the farmer's
// products. The farmer sees the whole order, not just their lines.
func GetFarmerOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	farmerID := utils.GetUserIDFromRequest(r)

	filter := bson.M{"items.farmerId": farmerID}
	if s := r.URL.Query().Get("status"); s != "" {
		filter["status"] = s
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	list, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orders": list})
}

// UpdateOrderStatus moves an order forward along the lifecycle. A farmer
// with any line in the order may drive the whole order's status; admins may
// drive any order. Cancellation goes through the cancel endpoint because it
// also restocks.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	orderID := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Invalid input", "INVALID_DATA")
		return
	}
	if input.Status == models.OrderCancelled {
		utils.RespondWithError(w, http.StatusBadRequest, "Use the cancel endpoint to cancel an order")
		return
	}

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if role != models.RoleAdmin && !order.HasFarmer(userID) {
		utils.RespondWithErrorCode(w, http.StatusForbidden, "No items of yours in this order", "FORBIDDEN")
		return
	}

	if !CanTransition(order.Status, input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Cannot move order from "+string(order.Status)+" to "+string(input.Status))
		return
	}

	now := time.Now()
	set := bson.M{"status": input.Status}
	if field := TimestampField(input.Status); field != "" {
		set[field] = now
	}

	// Conditioned on the status we read, so two racing updates cannot both
	// apply.
	res, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID, "status": order.Status},
		bson.M{"$set": set},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Order status changed concurrently, retry")
		return
	}

	if input.Status == models.OrderDelivered {
		creditFarmerEarnings(ctx, &order)
	}

	order.Status = input.Status
	switch input.Status {
	case models.OrderConfirmed:
		order.ConfirmedAt = &now
	case models.OrderShipped:
		order.ShippedAt = &now
	case models.OrderDelivered:
		order.DeliveredAt = &now
	}

	go mq.Emit(context.Background(), "order-status-changed", models.Index{EntityType: "order", EntityId: orderID, Method: "PUT", ItemType: string(input.Status)})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"order": order})
}

// FarmerShare sums each farmer's line totals in the order.
func FarmerShare(o *models.Order) map[string]float64 {
	share := make(map[string]float64)
	for _, it := range o.Items {
		share[it.FarmerID] += it.Total
	}
	return share
}

func creditFarmerEarnings(ctx context.Context, order *models.Order) {
	for farmerID, amount := range FarmerShare(order) {
		sales := 0
		for _, it := range order.Items {
			if it.FarmerID == farmerID {
				sales += it.Quantity
			}
		}
		_, err := db.UserCollection.UpdateOne(ctx,
			bson.M{"userid": farmerID},
			bson.M{"$inc": bson.M{"farmer.totalEarnings": amount, "farmer.totalSales": sales}},
		)
		if err != nil {
			log.Printf("Failed to credit earnings for farmer %s on order %s: %v", farmerID, order.OrderID, err)
		}
	}
}
