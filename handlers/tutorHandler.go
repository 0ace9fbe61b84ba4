package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tutor/models"
	"tutor/services"

	"github.com/gorilla/mux"
)

type TutorHandler struct {
	service *services.TutorService
}

func NewTutorHandler(service *services.TutorService) *TutorHandler {
	return &TutorHandler{service: service}
}

func (h *TutorHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/tutor/message", h.SendMessage).Methods("POST")
}

func (h *TutorHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received tutor message request")

	var req models.TutorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode tutor request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	response, err := h.service.ProcessMessage(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRequest):
			h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrContentFiltered):
			h.writeErrorResponse(w, http.StatusUnprocessableEntity, services.RedirectMessage)
		case errors.Is(err, services.ErrGenerationFailed):
			h.writeErrorResponse(w, http.StatusBadGateway, "The tutor could not generate a response. Please try again.")
		default:
			h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	log.Printf("[INFO] Tutor message processed successfully")
	h.writeJSONResponse(w, http.StatusOK, response)
}

func (h *TutorHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *TutorHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
