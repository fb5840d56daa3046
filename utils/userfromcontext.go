package utils

import (
	"net/http"

	"naturesbasket/globals"
	"naturesbasket/models"
)

func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetRoleFromRequest(r *http.Request) models.Role {
	role, ok := r.Context().Value(globals.RoleKey).(models.Role)
	if !ok {
		return ""
	}
	return role
}
