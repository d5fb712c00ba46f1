package controllers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"krist-backend/apperr"
	"krist-backend/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// authedUserID resolves the user id placed in the context by the auth
// middleware. Handlers behind the middleware can rely on it being present;
// a missing or unparsable id is still surfaced as Unauthenticated.
func authedUserID(r *http.Request) (primitive.ObjectID, error) {
	idHex, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return primitive.NilObjectID, apperr.New(apperr.Unauthenticated, http.StatusUnauthorized, "No token provided")
	}
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, apperr.Wrap(apperr.Unauthenticated, http.StatusUnauthorized, "Invalid user id in token", err)
	}
	return id, nil
}
