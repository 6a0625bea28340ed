package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/integration-ia/ceus-crm-backend/internal/middleware"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

var validate = validator.New()

// authContext pulls the authenticated agent and organization out of
// request context, responding 401 itself when either is missing.
func authContext(w http.ResponseWriter, r *http.Request) (userID, orgID uuid.UUID, ok bool) {
	userID, okUser := middleware.UserID(r.Context())
	orgID, okOrg := middleware.OrganizationID(r.Context())
	if !okUser || !okOrg {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing auth context", nil,
		)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, orgID, true
}

// pathID parses the {id} route variable, responding 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid id in path", nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}
