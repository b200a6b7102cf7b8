package history

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	auth "github.com/jcooper21/Well-Injection-Calculation/internal/auth"
	hydraulics "github.com/jcooper21/Well-Injection-Calculation/internal/calc/hydraulics"
	repo "github.com/jcooper21/Well-Injection-Calculation/internal/repo"
)

type Handler struct {
	Repo repo.Repository
}

type SaveRequest struct {
	Name   string           `json:"name"`
	Params hydraulics.Input `json:"params"`
}

type SaveResponse struct {
	ID     string            `json:"id"`
	Result hydraulics.Result `json:"result"`
}

// Save re-evaluates the submitted parameters so only engine-validated results
// are stored, then persists the input with its summary figures.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		req.Name = "untitled well"
	}
	if err := hydraulics.Validate(req.Params); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := hydraulics.Calculate(req.Params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := json.Marshal(req.Params)
	if err != nil {
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	run := repo.Run{
		ID:            uuid.NewString(),
		UserID:        userID,
		Name:          req.Name,
		ParamsJSON:    string(params),
		BottomholeKPa: res.BottomholePressureKPa,
		TotalDropKPa:  res.TotalPressureDropKPa,
		MaxVelocityMS: res.MaxVelocityMS,
		Warnings:      len(res.Warnings),
	}
	if err := h.Repo.SaveRun(r.Context(), run); err != nil {
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SaveResponse{ID: run.ID, Result: res})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	runs, err := h.Repo.ListRuns(r.Context(), userID, limit)
	if err != nil {
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []repo.Run{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "Invalid run id", http.StatusBadRequest)
		return
	}
	run, err := h.Repo.GetRun(r.Context(), userID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Run not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}
