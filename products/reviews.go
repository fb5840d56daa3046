package products

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"naturesbasket/db"
	"naturesbasket/models"
	"naturesbasket/mq"
	"naturesbasket/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// RecomputeRating derives the average rating from the review list.
func RecomputeRating(reviews []models.Review) (avg float64, count int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, rv := range reviews {
		sum += rv.Rating
	}
	return float64(sum) / float64(len(reviews)), len(reviews)
}

func hasReviewFrom(reviews []models.Review, userID string) bool {
	for _, rv := range reviews {
		if rv.UserID == userID {
			return true
		}
	}
	return false
}

// AddReview appends a review sub-document, one per user per product, and
// recomputes the derived rating fields.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	productID := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
		Name    string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Rating < 1 || input.Rating > 5 || input.Comment == "" {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Invalid review data", "INVALID_DATA")
		return
	}

	var product models.Product
	if err := db.ProductCollection.FindOne(r.Context(), bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	if hasReviewFrom(product.Reviews, userID) {
		utils.RespondWithError(w, http.StatusConflict, "You have already reviewed this product")
		return
	}

	review := models.Review{
		ReviewID:  utils.GenerateRandomString(16),
		UserID:    userID,
		Name:      input.Name,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}

	reviews := append(product.Reviews, review)
	avg, count := RecomputeRating(reviews)

	_, err := db.ProductCollection.UpdateOne(r.Context(),
		bson.M{"productid": productID},
		bson.M{
			"$push": bson.M{"reviews": review},
			"$set":  bson.M{"avgRating": avg, "ratingCount": count, "updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add review")
		return
	}

	go mq.Emit(context.Background(), "review-added", models.Index{EntityType: "review", EntityId: review.ReviewID, Method: "POST", ItemId: productID, ItemType: "product"})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"review": review, "avgRating": avg})
}

func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var product models.Product
	if err := db.ProductCollection.FindOne(r.Context(), bson.M{"productid": ps.ByName("id")}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	reviews := product.Reviews
	if reviews == nil {
		reviews = []models.Review{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"reviews":     reviews,
		"avgRating":   product.AvgRating,
		"ratingCount": product.RatingCount,
	})
}
