package products

import (
	"context"
	"net/http"
	"time"

	"naturesbasket/db"
	"naturesbasket/models"
	"naturesbasket/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PublicFilter returns the base query for customer-visible products.
func PublicFilter() bson.M {
	return bson.M{"status": models.ProductActive}
}

// GetProducts lists approved products with search, category filter, price
// sort and pagination.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := PublicFilter()
	if c := r.URL.Query().Get("category"); c != "" {
		filter["category"] = c
	}
	if s := r.URL.Query().Get("search"); s != "" {
		filter["name"] = utils.RegexFilter("name", s)["name"]
	}
	if f := r.URL.Query().Get("farmer"); f != "" {
		filter["farmerId"] = f
	}

	skip, limit := utils.ParsePagination(r, 10, 100)
	sort := utils.ParseSort(r.URL.Query().Get("sort"), bson.D{{Key: "createdAt", Value: -1}}, map[string]bson.D{
		"price_asc":  {{Key: "price", Value: 1}},
		"price_desc": {{Key: "price", Value: -1}},
		"name_asc":   {{Key: "name", Value: 1}},
		"name_desc":  {{Key: "name", Value: -1}},
		"rating":     {{Key: "avgRating", Value: -1}},
	})

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)
	items, err := utils.FindAndDecode[models.Product](ctx, db.ProductCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	total, err := db.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count products")
		return
	}

	resp := utils.M{
		"products":    items,
		"totalPages":  utils.TotalPages(total, limit),
		"currentPage": utils.PageOf(skip, limit),
		"total":       total,
	}

	// Signed-in customers get their wishlist ids so the client can mark
	// listed products without a second call.
	if userID := utils.GetUserIDFromRequest(r); userID != "" {
		var user models.User
		if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err == nil && user.Customer != nil {
			resp["wishlist"] = user.Customer.Wishlist
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var product models.Product
	if err := db.ProductCollection.FindOne(r.Context(), bson.M{"productid": ps.ByName("id")}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"product": product})
}

// GetMyProducts returns the farmer's products in every moderation state.
func GetMyProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	farmerID := utils.GetUserIDFromRequest(r)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	items, err := utils.FindAndDecode[models.Product](ctx, db.ProductCollection, bson.M{"farmerId": farmerID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": items})
}
