package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/integration-ia/ceus-crm-backend/internal/dtos"
	"github.com/integration-ia/ceus-crm-backend/internal/services"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

type NoteController struct {
	noteService *services.NoteService
}

func NewNoteController(ns *services.NoteService) *NoteController {
	return &NoteController{noteService: ns}
}

// ----------------------------------------------------------------
// POST /api/v1/notes
// ----------------------------------------------------------------
func (c *NoteController) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	userID, orgID, ok := authContext(w, r)
	if !ok {
		return
	}

	var payload dtos.NotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}

	note, err := c.noteService.CreateNote(r.Context(), orgID, userID, &payload)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, note)
}

// ----------------------------------------------------------------
// GET /api/v1/properties/{id}/notes
// ----------------------------------------------------------------
func (c *NoteController) ListPropertyNotesHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathID(w, r)
	if !ok {
		return
	}

	notes, err := c.noteService.ListNotesByProperty(r.Context(), orgID, propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, notes)
}

// ----------------------------------------------------------------
// GET /api/v1/clients/{id}/notes
// ----------------------------------------------------------------
func (c *NoteController) ListClientNotesHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	clientID, ok := pathID(w, r)
	if !ok {
		return
	}

	notes, err := c.noteService.ListNotesByClient(r.Context(), orgID, clientID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, notes)
}

// ----------------------------------------------------------------
// PUT /api/v1/notes/{id}
// ----------------------------------------------------------------
func (c *NoteController) UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	noteID, ok := pathID(w, r)
	if !ok {
		return
	}

	var payload dtos.NoteUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}
	if err := validate.Struct(payload); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "body is required", nil, err,
		)
		return
	}

	note, err := c.noteService.UpdateNote(r.Context(), orgID, noteID, payload.Body)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, note)
}

// ----------------------------------------------------------------
// DELETE /api/v1/notes/{id}
// ----------------------------------------------------------------
func (c *NoteController) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	noteID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.noteService.DeleteNote(r.Context(), orgID, noteID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
