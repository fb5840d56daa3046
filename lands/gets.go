package lands

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

// GetLands lists approved lands for the public catalog.
func GetLands(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"status": models.LandApproved}
	if loc := r.URL.Query().Get("location"); loc != "" {
		filter["location"] = utils.RegexFilter("location", loc)["location"]
	}
	if s := r.URL.Query().Get("search"); s != "" {
		filter["name"] = utils.RegexFilter("name", s)["name"]
	}

	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetSkip(skip).SetLimit(limit)

	lands, err := utils.FindAndDecode[models.Land](ctx, db.LandsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch lands")
		return
	}

	total, err := db.LandsCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count lands")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"lands":       lands,
		"totalPages":  utils.TotalPages(total, limit),
		"currentPage": utils.PageOf(skip, limit),
		"total":       total,
	})
}

func GetLand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var land models.Land
	if err := db.LandsCollection.FindOne(r.Context(), bson.M{"landid": ps.ByName("id")}).Decode(&land); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Land not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"land": land})
}

// GetMyLands returns the farmer's own lands in every moderation state.
func GetMyLands(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	farmerID := utils.GetUserIDFromRequest(r)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	lands, err := utils.FindAndDecode[models.Land](ctx, db.LandsCollection, bson.M{"farmerId": farmerID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch lands")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"lands": lands})
}
