package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"phishguard-service/internal/app"
	"phishguard-service/internal/domain"
	"phishguard-service/internal/risk"
)

// APIHandler serves the stateless JSON endpoints: URL analysis, single
// scenario practice, and the profile snapshot.
type APIHandler struct {
	service *app.TrainingService
}

func NewAPIHandler(service *app.TrainingService) *APIHandler {
	return &APIHandler{service: service}
}

// Register mounts the API routes on the mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/analyze", h.handleAnalyze)
	mux.HandleFunc("/api/practice", h.handlePractice)
	mux.HandleFunc("/api/practice/answer", h.handlePracticeAnswer)
	mux.HandleFunc("/api/profile", h.handleProfile)
}

type analyzeRequest struct {
	URL string `json:"url"`
}

func (h *APIHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, risk.Evaluate(req.URL))
}

func (h *APIHandler) handlePractice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	scenario, err := h.service.PracticeScenario(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	// The answer key stays server-side until the answer is submitted.
	writeJSON(w, http.StatusOK, publicScenario{
		ID:         scenario.ID,
		Category:   scenario.Category,
		Difficulty: scenario.Difficulty,
		Sender:     scenario.Sender,
		Subject:    scenario.Subject,
		Body:       scenario.Body,
	})
}

type practiceAnswerRequest struct {
	UserID     string        `json:"userId"`
	ScenarioID string        `json:"scenarioId"`
	Answer     domain.Answer `json:"answer"`
}

func (h *APIHandler) handlePracticeAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req practiceAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.ScenarioID == "" || !req.Answer.Valid() {
		http.Error(w, "missing userId, scenarioId, or answer", http.StatusBadRequest)
		return
	}
	result, err := h.service.SubmitPractice(r.Context(), req.UserID, req.ScenarioID, req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *APIHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}
	snapshot, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrScenarioNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInsufficientPool):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("api error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
