package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"tutor/models"
	"tutor/services"

	"github.com/gorilla/mux"
)

const defaultHistoryLimit = 10

type MemoryHandler struct {
	memory   *services.MemoryService
	insights *services.InsightService
}

func NewMemoryHandler(memory *services.MemoryService, insights *services.InsightService) *MemoryHandler {
	return &MemoryHandler{memory: memory, insights: insights}
}

func (h *MemoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/memory/history/{sessionID}", h.GetSessionHistory).Methods("GET")
	router.HandleFunc("/memory/subject/{subject}", h.GetSubjectHistory).Methods("GET")
	router.HandleFunc("/memory/search", h.SearchHistory).Methods("GET")
	router.HandleFunc("/memory/progress/{subject}", h.GetProgress).Methods("GET")
	router.HandleFunc("/memory/insights", h.GetInsights).Methods("GET")
	router.HandleFunc("/memory/cleanup", h.Cleanup).Methods("POST")
}

func (h *MemoryHandler) GetSessionHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]
	limit := parseLimit(r, defaultHistoryLimit)

	entries := h.memory.RecentBySession(sessionID, limit)
	h.writeJSONResponse(w, http.StatusOK, entries)
}

func (h *MemoryHandler) GetSubjectHistory(w http.ResponseWriter, r *http.Request) {
	subject := mux.Vars(r)["subject"]
	limit := parseLimit(r, defaultHistoryLimit)

	entries := h.memory.RecentBySubject(subject, limit)
	h.writeJSONResponse(w, http.StatusOK, entries)
}

func (h *MemoryHandler) SearchHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	subject := r.URL.Query().Get("subject")

	entries := h.memory.SearchConversations(strings.Fields(query), subject)
	h.writeJSONResponse(w, http.StatusOK, entries)
}

func (h *MemoryHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	subject := mux.Vars(r)["subject"]

	progress := h.memory.Progress(subject)
	if progress == nil {
		h.writeErrorResponse(w, http.StatusNotFound, "no progress recorded for subject")
		return
	}
	h.writeJSONResponse(w, http.StatusOK, progress)
}

func (h *MemoryHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sessionID := query.Get("session_id")
	subject := query.Get("subject")
	question := query.Get("q")

	if sessionID == "" || subject == "" || question == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "session_id, subject and q parameters are required")
		return
	}

	insights := h.insights.ComputeInsights(sessionID, question, subject)
	h.writeJSONResponse(w, http.StatusOK, insights)
}

func (h *MemoryHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	var req models.CleanupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode cleanup request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if req.DaysToKeep <= 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "days_to_keep must be positive")
		return
	}

	removedEntries, removedSessions, err := h.memory.Cleanup(req.DaysToKeep)
	if err != nil {
		log.Printf("[ERROR] Cleanup failed: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.CleanupResponse{
		RemovedEntries:  removedEntries,
		RemovedSessions: removedSessions,
	})
}

func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

func (h *MemoryHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *MemoryHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
