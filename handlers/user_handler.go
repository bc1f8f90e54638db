package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"silentsos-server/middleware"
	"silentsos-server/models"
	"silentsos-server/services"
	"silentsos-server/utils/errors"
)

type UserHandler struct {
	userService *services.UserService
}

type LocationResponse struct {
	OK           bool            `json:"ok"`
	LastLocation models.Location `json:"lastLocation"`
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var input services.ProfileUpdate
	if err := decodeBody(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	profile, err := h.userService.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	contacts, err := h.userService.ListContacts(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *UserHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var input services.ContactInput
	if err := decodeBody(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	contact, err := h.userService.CreateContact(r.Context(), userID, input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

func (h *UserHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var input services.ContactInput
	if err := decodeBody(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	contact, err := h.userService.UpdateContact(r.Context(), userID, mux.Vars(r)["id"], input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *UserHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.userService.DeleteContact(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		middleware.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) ListSafeWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	words, err := h.userService.ListSafeWords(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, words)
}

func (h *UserHandler) CreateSafeWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var input services.SafeWordInput
	if err := decodeBody(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	word, err := h.userService.CreateSafeWord(r.Context(), userID, input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, word)
}

func (h *UserHandler) UpdateSafeWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var input services.SafeWordInput
	if err := decodeBody(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	word, err := h.userService.UpdateSafeWord(r.Context(), userID, mux.Vars(r)["id"], input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, word)
}

func (h *UserHandler) DeleteSafeWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.userService.DeleteSafeWord(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		middleware.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	settings, err := h.userService.GetSettings(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings replaces each provided namespace. ?merge=leaf only
// overwrites the flags present in the body.
func (h *UserHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var input services.SettingsUpdate
	if err := decodeBody(r, &input); err != nil {
		middleware.WriteError(w, err)
		return
	}
	mode := services.MergeNamespace
	switch r.URL.Query().Get("merge") {
	case "", "namespace":
	case "leaf":
		mode = services.MergeLeaf
	default:
		middleware.WriteError(w, errors.Validation("merge must be \"namespace\" or \"leaf\""))
		return
	}
	settings, err := h.userService.UpdateSettings(r.Context(), userID, input, mode)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *UserHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	input, err := decodeCoordinates(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	loc, err := h.userService.UpdateLocation(r.Context(), userID, *input.Lat, *input.Lng)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LocationResponse{OK: true, LastLocation: loc})
}
