package admin

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"naturesbasket/db"
	"naturesbasket/models"
	"naturesbasket/rdx"
	"naturesbasket/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MergeActivities interleaves independently fetched feeds into one list,
// newest first, truncated to limit.
func MergeActivities(limit int, feeds ...[]models.ActivityItem) []models.ActivityItem {
	var merged []models.ActivityItem
	for _, f := range feeds {
		merged = append(merged, f...)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	if merged == nil {
		merged = []models.ActivityItem{}
	}
	return merged
}

// actorNames resolves each distinct id once; ids the lookup cannot resolve
// are left out and render as blank.
func actorNames(ids []string, lookup func(string) (string, error)) map[string]string {
	names := make(map[string]string)
	seen := make(map[string]bool)
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if name, err := lookup(id); err == nil {
			names[id] = name
		}
	}
	return names
}

// GetActivity assembles the recent-activity feed at read time by querying
// the land, product and order collections independently and merge-sorting
// by timestamp. There is no stored event log to read from.
func GetActivity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))

	lands, err := utils.FindAndDecode[models.Land](ctx, db.LandsCollection, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch lands")
		return
	}
	products, err := utils.FindAndDecode[models.Product](ctx, db.ProductCollection, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	landFeed := make([]models.ActivityItem, 0, len(lands))
	for _, l := range lands {
		landFeed = append(landFeed, models.ActivityItem{
			Type: "land", ID: l.LandID, Title: l.Name, ActorID: l.FarmerID,
			Status: string(l.Status), Timestamp: l.CreatedAt,
		})
	}
	productFeed := make([]models.ActivityItem, 0, len(products))
	for _, p := range products {
		productFeed = append(productFeed, models.ActivityItem{
			Type: "product", ID: p.ProductID, Title: p.Name, ActorID: p.FarmerID,
			Status: string(p.Status), Timestamp: p.CreatedAt,
		})
	}
	orderFeed := make([]models.ActivityItem, 0, len(orders))
	for _, o := range orders {
		orderFeed = append(orderFeed, models.ActivityItem{
			Type: "order", ID: o.OrderID, Title: o.OrderNumber, ActorID: o.UserID,
			Status: string(o.Status), Timestamp: o.CreatedAt,
		})
	}

	feed := MergeActivities(limit, landFeed, productFeed, orderFeed)

	// Actor names come from the registration-time cache, best effort.
	ids := make([]string, 0, len(feed))
	for _, item := range feed {
		ids = append(ids, item.ActorID)
	}
	names := actorNames(ids, func(id string) (string, error) {
		return rdx.RdxGet("users:" + id)
	})
	for i := range feed {
		feed[i].ActorName = names[feed[i].ActorID]
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"activity":    feed,
		"generatedAt": time.Now(),
	})
}
