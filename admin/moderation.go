package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"naturesbasket/db"
	"naturesbasket/models"
	"naturesbasket/mq"
	"naturesbasket/rdx"
	"naturesbasket/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		filter["role"] = role
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetSkip(skip).SetLimit(limit)

	users, err := utils.FindAndDecode[models.User](ctx, db.UserCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	total, err := db.UserCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count users")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"users":       users,
		"totalPages":  utils.TotalPages(total, limit),
		"currentPage": utils.PageOf(skip, limit),
		"total":       total,
	})
}

func UpdateUserStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Status models.UserStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Invalid input", "INVALID_DATA")
		return
	}
	switch input.Status {
	case models.UserActive, models.UserPending, models.UserSuspended, models.UserRejected:
	default:
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Unknown status", "INVALID_DATA")
		return
	}

	res, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": ps.ByName("id")},
		bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	// Blocked accounts drop out of the username cache.
	if input.Status == models.UserSuspended || input.Status == models.UserRejected {
		if err := rdx.RdxDel("users:" + ps.ByName("id")); err != nil {
			log.Printf("Failed to drop cached username for %s: %v", ps.ByName("id"), err)
		}
	}

	go mq.Emit(context.Background(), "user-status-changed", models.Index{EntityType: "user", EntityId: ps.ByName("id"), Method: "PUT", ItemType: string(input.Status)})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User status updated"})
}

// VerifyFarmer flags the farmer verified and activates the account so they
// can start selling.
func VerifyFarmer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": ps.ByName("id"), "role": models.RoleFarmer},
		bson.M{"$set": bson.M{
			"farmer.verified": true,
			"status":          models.UserActive,
			"updated_at":      time.Now(),
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify farmer")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Farmer not found")
		return
	}

	go mq.Emit(context.Background(), "farmer-verified", models.Index{EntityType: "user", EntityId: ps.ByName("id"), Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Farmer verified"})
}

func GetPendingLands(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	lands, err := utils.FindAndDecode[models.Land](ctx, db.LandsCollection,
		bson.M{"status": models.LandPending},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch lands")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"lands": lands})
}

func GetPendingProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	products, err := utils.FindAndDecode[models.Product](ctx, db.ProductCollection,
		bson.M{"status": models.ProductPending},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": products})
}

// LandStateForAction maps a moderation action to the resulting land state.
func LandStateForAction(action string) (models.LandState, bool) {
	switch action {
	case "approve":
		return models.LandApproved, true
	case "reject":
		return models.LandRejected, true
	case "reset":
		return models.LandPending, true
	}
	return "", false
}

// ProductStateForAction maps a moderation action to the resulting product
// state; approval makes a product "active", the catalog-visible state.
func ProductStateForAction(action string) (models.ProductState, bool) {
	switch action {
	case "approve":
		return models.ProductActive, true
	case "reject":
		return models.ProductRejected, true
	case "reset":
		return models.ProductPending, true
	}
	return "", false
}

func ModerateLand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	state, ok := LandStateForAction(ps.ByName("action"))
	if !ok {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Unknown moderation action", "INVALID_DATA")
		return
	}

	res, err := db.LandsCollection.UpdateOne(r.Context(),
		bson.M{"landid": ps.ByName("id")},
		bson.M{"$set": bson.M{"status": state, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update land")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Land not found")
		return
	}

	go mq.Emit(context.Background(), "land-moderated", models.Index{EntityType: "land", EntityId: ps.ByName("id"), Method: "PUT", ItemType: string(state)})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Land " + string(state)})
}

func ModerateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	state, ok := ProductStateForAction(ps.ByName("action"))
	if !ok {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Unknown moderation action", "INVALID_DATA")
		return
	}

	res, err := db.ProductCollection.UpdateOne(r.Context(),
		bson.M{"productid": ps.ByName("id")},
		bson.M{"$set": bson.M{"status": state, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	go mq.Emit(context.Background(), "product-moderated", models.Index{EntityType: "product", EntityId: ps.ByName("id"), Method: "PUT", ItemType: string(state)})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Product " + string(state)})
}

func GetAllOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if s := r.URL.Query().Get("status"); s != "" {
		filter["status"] = s
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetSkip(skip).SetLimit(limit)

	list, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	total, err := db.OrdersCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"orders":      list,
		"totalPages":  utils.TotalPages(total, limit),
		"currentPage": utils.PageOf(skip, limit),
		"total":       total,
	})
}
