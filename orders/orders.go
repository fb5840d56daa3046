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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateOrder converts the customer's cart into an order. Each line re-reads
// the live product and claims stock through a conditional decrement; if any
// line cannot be satisfied, everything already claimed is handed back and no
// order is written.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var c models.Cart
	if err := db.CartCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&c); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}
	if len(c.Items) == 0 {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Cart is empty", "INVALID_DATA")
		return
	}

	var ledger claimLedger
	releaseAll := func() { ledger.releaseAll(context.Background(), RestoreStock) }

	items := make([]models.OrderItem, 0, len(c.Items))
	for _, line := range c.Items {
		var product models.Product
		err := db.ProductCollection.FindOne(ctx, bson.M{"productid": line.ProductID, "status": models.ProductActive}).Decode(&product)
		if err != nil {
			releaseAll()
			utils.RespondWithError(w, http.StatusNotFound, "Product no longer available: "+line.Name)
			return
		}

		ok, err := DecrementStock(ctx, product.ProductID, line.Quantity)
		if err != nil {
			releaseAll()
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reserve stock")
			return
		}
		if !ok {
			releaseAll()
			utils.RespondWithErrorCode(w, http.StatusBadRequest, "Not enough stock for "+product.Name, "OUT_OF_STOCK")
			return
		}

		ledger.record(product.ProductID, line.Quantity)
		items = append(items, SnapshotItem(line, product))
	}

	now := time.Now()
	order := models.Order{
		OrderID:     utils.GetUUID(),
		OrderNumber: NewOrderNumber(now),
		UserID:      userID,
		Items:       items,
		Status:      models.OrderPending,
		CreatedAt:   now,
	}
	ComputeTotals(&order)

	var input struct {
		Address       string `json:"address"`
		PaymentMethod string `json:"paymentMethod"`
	}
	// body is optional; a missing address falls back to the profile address
	_ = decodeOptionalBody(r, &input)
	order.Address = input.Address
	order.PaymentMethod = input.PaymentMethod
	if order.Address == "" {
		var user models.User
		if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err == nil {
			order.Address = user.Address
		}
	}

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		// a random order number can collide; regenerate once
		if mongo.IsDuplicateKeyError(err) {
			order.OrderNumber = NewOrderNumber(now)
			_, err = db.OrdersCollection.InsertOne(ctx, order)
		}
		if err != nil {
			releaseAll()
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
			return
		}
	}

	// Cart is emptied, not deleted.
	if _, err := db.CartCollection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": []models.CartLine{}, "updatedAt": now}},
	); err != nil {
		log.Printf("Failed to clear cart for %s: %v", userID, err)
	}

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$push": bson.M{"customer.orders": order.OrderID}},
	); err != nil {
		log.Printf("Failed to append order to history for %s: %v", userID, err)
	}

	go mq.Emit(context.Background(), "order-created", models.Index{EntityType: "order", EntityId: order.OrderID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"order": order})
}

// GetMyOrders lists the customer's own orders, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	list, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, bson.M{"userId": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orders": list})
}

func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	var order models.Order
	if err := db.OrdersCollection.FindOne(r.Context(), bson.M{"orderid": ps.ByName("id")}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if !canViewOrder(&order, userID, role) {
		utils.RespondWithErrorCode(w, http.StatusForbidden, "Not your order", "FORBIDDEN")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"order": order})
}

// CancelOrder cancels a pending order and hands the stock back. The status
// flip is a conditional update keyed on status=pending, so a concurrent
// confirm or a double cancel cannot restock twice.
func CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	orderID := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.UserID != userID && role != models.RoleAdmin {
		utils.RespondWithErrorCode(w, http.StatusForbidden, "Not your order", "FORBIDDEN")
		return
	}
	if order.Status != models.OrderPending {
		utils.RespondWithError(w, http.StatusBadRequest, "Only pending orders can be cancelled")
		return
	}

	now := time.Now()
	res, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID, "status": models.OrderPending},
		bson.M{"$set": bson.M{"status": models.OrderCancelled, "cancelledAt": now}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Order is no longer pending")
		return
	}

	// Exact inverse of creation-time accounting.
	for _, it := range order.Items {
		if err := RestoreStock(ctx, it.ProductID, it.Quantity); err != nil {
			log.Printf("Failed to restore stock for %s on cancel of %s: %v", it.ProductID, orderID, err)
		}
	}

	order.Status = models.OrderCancelled
	order.CancelledAt = &now

	go mq.Emit(context.Background(), "order-cancelled", models.Index{EntityType: "order", EntityId: orderID, Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"order": order})
}

// CreatePaymentSession returns a simulated payment session. No real payment
// provider is involved.
func CreatePaymentSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var order models.Order
	if err := db.OrdersCollection.FindOne(r.Context(), bson.M{"orderid": ps.ByName("id")}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.UserID != userID {
		utils.RespondWithErrorCode(w, http.StatusForbidden, "Not your order", "FORBIDDEN")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"sessionId": "sess_" + utils.GenerateRandomString(16),
		"orderid":   order.OrderID,
		"amount":    order.Total,
		"status":    "created",
		"createdAt": time.Now(),
	})
}

func decodeOptionalBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(v)
}

func canViewOrder(o *models.Order, userID string, role models.Role) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleFarmer:
		return o.HasFarmer(userID)
	default:
		return o.UserID == userID
	}
}
