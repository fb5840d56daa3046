package lands

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

func CreateLand(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	farmerID := utils.GetUserIDFromRequest(r)

	land := models.Land{
		LandID:    utils.GetUUID(),
		FarmerID:  farmerID,
		Status:    models.LandPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			utils.RespondWithErrorCode(w, http.StatusBadRequest, "Failed to parse form", "INVALID_DATA")
			return
		}
		land.Name = r.FormValue("name")
		land.Location = r.FormValue("location")
		land.Description = r.FormValue("description")
		land.SoilType = r.FormValue("soilType")
		land.AreaUnit = r.FormValue("areaUnit")
		land.Area, _ = strconv.ParseFloat(r.FormValue("area"), 64)

		if photo, thumb, err := utils.SaveUploadedImage(r, "photo", "lands", land.LandID); err == nil {
			land.Photo = photo
			land.Thumbnail = thumb
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&land); err != nil {
			utils.RespondWithErrorCode(w, http.StatusBadRequest, "Invalid JSON body", "INVALID_DATA")
			return
		}
		land.LandID = utils.GetUUID()
		land.FarmerID = farmerID
		land.Status = models.LandPending
		land.CreatedAt = time.Now()
		land.UpdatedAt = time.Now()
	}

	if land.Name == "" || land.Location == "" || land.Area <= 0 {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "Missing required fields", "INVALID_DATA")
		return
	}

	if _, err := db.LandsCollection.InsertOne(r.Context(), land); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert land")
		return
	}

	go mq.Emit(context.Background(), "land-created", models.Index{EntityType: "land", EntityId: land.LandID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"land": land})
}

// landUpdateFields collects the set fields of a partial edit. Empty strings
// and a non-positive area mean "leave unchanged".
func landUpdateFields(input models.Land) bson.M {
	fields := bson.M{}
	if input.Name != "" {
		fields["name"] = input.Name
	}
	if input.Location != "" {
		fields["location"] = input.Location
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if input.SoilType != "" {
		fields["soilType"] = input.SoilType
	}
	if input.AreaUnit != "" {
		fields["areaUnit"] = input.AreaUnit
	}
	if input.Area > 0 {
		fields["area"] = input.Area
	}
	return fields
}

func EditLand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	landID := ps.ByName("id")
	farmerID := utils.GetUserIDFromRequest(r)

	var land models.Land
	if err := db.LandsCollection.FindOne(r.Context(), bson.M{"landid": landID}).Decode(&land); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Land not found")
		return
	}
	if land.FarmerID != farmerID {
		utils.RespondWithErrorCode(w, http.StatusForbidden, "Not your land", "FORBIDDEN")
		return
	}

	var input models.Land
	updateFields := bson.M{}
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			utils.RespondWithErrorCode(w, http.StatusBadRequest, "Malformed multipart data", "INVALID_DATA")
			return
		}
		input.Name = r.FormValue("name")
		input.Location = r.FormValue("location")
		input.Description = r.FormValue("description")
		input.SoilType = r.FormValue("soilType")
		input.AreaUnit = r.FormValue("areaUnit")
		input.Area, _ = strconv.ParseFloat(r.FormValue("area"), 64)

		if photo, thumb, err := utils.SaveUploadedImage(r, "photo", "lands", landID); err == nil {
			updateFields["photo"] = photo
			updateFields["thumbnail"] = thumb
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			utils.RespondWithErrorCode(w, http.StatusBadRequest, "Invalid JSON body", "INVALID_DATA")
			return
		}
	}

	for k, v := range landUpdateFields(input) {
		updateFields[k] = v
	}

	if len(updateFields) == 0 {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "No fields to update", "INVALID_DATA")
		return
	}

	// Editing an approved land sends it back through review.
	if land.Status == models.LandApproved {
		updateFields["status"] = models.LandPending
	}
	updateFields["updatedAt"] = time.Now()

	if _, err := db.LandsCollection.UpdateOne(r.Context(), bson.M{"landid": landID}, bson.M{"$set": updateFields}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	go mq.Emit(context.Background(), "land-updated", models.Index{EntityType: "land", EntityId: landID, Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Land updated"})
}

func DeleteLand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	landID := ps.ByName("id")
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	var land models.Land
	if err := db.LandsCollection.FindOne(r.Context(), bson.M{"landid": landID}).Decode(&land); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Land not found")
		return
	}
	if land.FarmerID != userID && role != models.RoleAdmin {
		utils.RespondWithErrorCode(w, http.StatusForbidden, "Not your land", "FORBIDDEN")
		return
	}

	if _, err := db.LandsCollection.DeleteOne(r.Context(), bson.M{"landid": landID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete land")
		return
	}

	go mq.Emit(context.Background(), "land-deleted", models.Index{EntityType: "land", EntityId: landID, Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Land deleted"})
}
