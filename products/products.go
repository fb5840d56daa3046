package products

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"naturesbasket/db"
	"naturesbasket/models"
	"naturesbasket/mq"
	"naturesbasket/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	farmerID := utils.GetUserIDFromRequest(r)

	product := models.Product{
		ProductID: utils.GetUUID(),
		FarmerID:  farmerID,
		Status:    models.ProductPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			utils.RespondWithErrorCode(w, http.StatusBadRequest, "Failed to parse form", "INVALID_DATA")
			return
		}
		product.LandID = r.FormValue("landid")
		product.Name = r.FormValue("name")
		product.Description = r.FormValue("description")
		product.Category = r.FormValue("category")
		product.Unit = r.FormValue("unit")
		product.Price, _ = strconv.ParseFloat(r.FormValue("price"), 64)
		product.Stock, _ = strconv.Atoi(r.FormValue("stock"))

		if photo, thumb, err := utils.SaveUploadedImage(r, "photo", "products", product.ProductID); err == nil {
			product.Photo = photo
			product.Thumbnail = thumb
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			utils.RespondWithErrorCode(w, http.StatusBadRequest, "Invalid JSON body", "INVALID_DATA")
			return
		}
		product.ProductID = utils.GetUUID()
		product.FarmerID = farmerID
		product.Status = models.ProductPending
		product.Reviews = nil
		product.AvgRating = 0
		product.RatingCount = 0
		product.Sales = 0
		product.CreatedAt = time.Now()
		product.UpdatedAt = time.Now()
	}

	if product.Name == "" || product.LandID == "" || product.Price <= 0 || product.Stock < 0 {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Missing or invalid fields", "INVALID_DATA")
		return
	}

	// Products hang off an approved land owned by the requesting farmer.
	var land models.Land
	if err := db.LandsCollection.FindOne(r.Context(), bson.M{"landid": product.LandID}).Decode(&land); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Land not found")
		return
	}
	if land.FarmerID != farmerID {
		utils.RespondWithErrorCode(w, http.StatusForbidden, "Land belongs to another farmer", "FORBIDDEN")
		return
	}
	if !land.Status.IsApproved() {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Land is not approved yet", "LAND_NOT_APPROVED")
		return
	}

	if _, err := db.ProductCollection.InsertOne(r.Context(), product); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert product")
		return
	}

	go mq.Emit(context.Background(), "product-created", models.Index{EntityType: "product", EntityId: product.ProductID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"product": product})
}

func EditProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	productID := ps.ByName("id")
	farmerID := utils.GetUserIDFromRequest(r)

	var product models.Product
	if err := db.ProductCollection.FindOne(r.Context(), bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if product.FarmerID != farmerID {
		utils.RespondWithErrorCode(w, http.StatusForbidden, "Not your product", "FORBIDDEN")
		return
	}

	var input struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Unit        string  `json:"unit"`
		Price       float64 `json:"price"`
		Stock       *int    `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Invalid JSON body", "INVALID_DATA")
		return
	}

	updateFields := bson.M{}
	if input.Name != "" {
		updateFields["name"] = input.Name
	}
	if input.Description != "" {
		updateFields["description"] = input.Description
	}
	if input.Category != "" {
		updateFields["category"] = input.Category
	}
	if input.Unit != "" {
		updateFields["unit"] = input.Unit
	}
	if input.Price > 0 {
		updateFields["price"] = input.Price
	}
	if input.Stock != nil && *input.Stock >= 0 {
		updateFields["stock"] = *input.Stock
	}

	if len(updateFields) == 0 {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "No fields to update", "INVALID_DATA")
		return
	}

	// An edit to a live product pulls it out of the catalog for re-review.
	if product.Status == models.ProductActive {
		updateFields["status"] = models.ProductPending
	}
	updateFields["updatedAt"] = time.Now()

	if _, err := db.ProductCollection.UpdateOne(r.Context(), bson.M{"productid": productID}, bson.M{"$set": updateFields}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	go mq.Emit(context.Background(), "product-updated", models.Index{EntityType: "product", EntityId: productID, Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Product updated"})
}

func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	productID := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	var product models.Product
	if err := db.ProductCollection.FindOne(r.Context(), bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if product.FarmerID != userID && role != models.RoleAdmin {
		utils.RespondWithErrorCode(w, http.StatusForbidden, "Not your product", "FORBIDDEN")
		return
	}

	if _, err := db.ProductCollection.DeleteOne(r.Context(), bson.M{"productid": productID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	go mq.Emit(context.Background(), "product-deleted", models.Index{EntityType: "product", EntityId: productID, Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Product deleted"})
}
