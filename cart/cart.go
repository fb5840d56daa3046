package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"naturesbasket/db"
	"naturesbasket/models"
	"naturesbasket/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MergeLine folds a new line into the item list. If the product is already
// present, quantities are summed and the price snapshot is refreshed to the
// product's current price. The snapshot reflects last-touched time, not
// first-added time.
func MergeLine(items []models.CartLine, line models.CartLine) []models.CartLine {
	for i, it := range items {
		if it.ProductID == line.ProductID {
			items[i].Quantity += line.Quantity
			items[i].Price = line.Price
			items[i].AddedAt = line.AddedAt
			return items
		}
	}
	return append(items, line)
}

func getOrCreateCart(ctx context.Context, userID string) (models.Cart, error) {
	var c models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		c = models.Cart{
			UserID:    userID,
			Items:     []models.CartLine{},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		_, err = db.CartCollection.InsertOne(ctx, c)
	}
	return c, err
}

func saveItems(ctx context.Context, userID string, items []models.CartLine) error {
	_, err := db.CartCollection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": items, "updatedAt": time.Now()}},
	)
	return err
}

func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	c, err := getOrCreateCart(ctx, userID)
	if err != nil {
		log.Println("GetCart error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"cart": c})
}

func AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ProductID == "" || input.Quantity < 1 {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Missing or invalid fields", "INVALID_DATA")
		return
	}

	// Only catalog-visible products may enter a cart.
	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": input.ProductID, "status": models.ProductActive}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if product.Stock < input.Quantity {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Not enough stock for "+product.Name, "OUT_OF_STOCK")
		return
	}

	c, err := getOrCreateCart(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	line := models.CartLine{
		ProductID: product.ProductID,
		FarmerID:  product.FarmerID,
		Name:      product.Name,
		Unit:      product.Unit,
		Quantity:  input.Quantity,
		Price:     product.Price,
		AddedAt:   time.Now(),
	}
	items := MergeLine(c.Items, line)

	if err := saveItems(ctx, userID, items); err != nil {
		log.Println("AddItem save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Added to cart", "items": items})
}

func UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("productid")

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Quantity < 1 {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Quantity must be at least 1", "INVALID_DATA")
		return
	}

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if product.Stock < input.Quantity {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Not enough stock for "+product.Name, "OUT_OF_STOCK")
		return
	}

	var c models.Cart
	if err := db.CartCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&c); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}

	found := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = input.Quantity
			c.Items[i].Price = product.Price
			found = true
			break
		}
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Item not in cart")
		return
	}

	if err := saveItems(ctx, userID, c.Items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Cart updated", "items": c.Items})
}

func RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("productid")

	var c models.Cart
	if err := db.CartCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&c); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}

	items := make([]models.CartLine, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	if len(items) == len(c.Items) {
		utils.RespondWithError(w, http.StatusNotFound, "Item not in cart")
		return
	}

	if err := saveItems(ctx, userID, items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Item removed", "items": items})
}

// ClearCart empties the item list; the cart document itself is kept.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if err := saveItems(ctx, userID, []models.CartLine{}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Cart cleared"})
}
