package wishlist

import (
	"context"
	"net/http"
	"time"

	"naturesbasket/db"
	"naturesbasket/models"
	"naturesbasket/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func GetWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	ids := []string{}
	if user.Customer != nil {
		ids = user.Customer.Wishlist
	}
	if len(ids) == 0 {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": []models.Product{}})
		return
	}

	products, err := utils.FindAndDecode[models.Product](ctx, db.ProductCollection, bson.M{"productid": bson.M{"$in": ids}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch wishlist")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": products})
}

func AddToWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("productid")

	var product models.Product
	if err := db.ProductCollection.FindOne(r.Context(), bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	_, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$addToSet": bson.M{"customer.wishlist": productID}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Added to wishlist"})
}

func RemoveFromWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	_, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$pull": bson.M{"customer.wishlist": ps.ByName("productid")}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Removed from wishlist"})
}
