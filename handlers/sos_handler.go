package handlers

import (
	"net/http"

	"silentsos-server/middleware"
	"silentsos-server/models"
	"silentsos-server/services"
	"silentsos-server/utils/errors"
)

type SOSHandler struct {
	sosService   *services.SOSService
	alertService *services.AlertService
}

type SOSResponse struct {
	OK       bool            `json:"ok"`
	SosEvent models.SosEvent `json:"sosEvent"`
}

type coordinateInput struct {
	Lat          *float64           `json:"lat"`
	Lng          *float64           `json:"lng"`
	Type         models.TriggerType `json:"type"`
	LocationText string             `json:"locationText"`
}

var errCoordinates = errors.Validation("lat and lng must be numbers")

// decodeCoordinates requires lat and lng to be present JSON numbers.
func decodeCoordinates(r *http.Request) (coordinateInput, error) {
	var input coordinateInput
	if err := decodeBody(r, &input); err != nil {
		return input, errCoordinates
	}
	if input.Lat == nil || input.Lng == nil {
		return input, errCoordinates
	}
	return input, nil
}

func NewSOSHandler(sosService *services.SOSService, alertService *services.AlertService) *SOSHandler {
	return &SOSHandler{sosService: sosService, alertService: alertService}
}

func (h *SOSHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	input, err := decodeCoordinates(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	event, err := h.sosService.Dispatch(r.Context(), userID, services.DispatchInput{
		Lat:          *input.Lat,
		Lng:          *input.Lng,
		Type:         input.Type,
		LocationText: input.LocationText,
	})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SOSResponse{OK: true, SosEvent: event})
}

func (h *SOSHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	alerts, err := h.alertService.Fetch(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (h *SOSHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	events, err := h.alertService.History(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
