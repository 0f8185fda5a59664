package utils

import (
	"net/http"

	"tavolo/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	ctx := r.Context()
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

// GetRestaurantIDFromRequest returns the restaurant the authenticated
// principal is scoped to, or "" when unauthenticated.
func GetRestaurantIDFromRequest(r *http.Request) string {
	ctx := r.Context()
	restaurantID, ok := ctx.Value(globals.RestaurantIDKey).(string)
	if !ok || restaurantID == "" {
		return ""
	}
	return restaurantID
}
