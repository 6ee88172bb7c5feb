package planning

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type Handler struct {
	service      Service
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewHandler(
	service Service,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *Handler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &Handler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Nome      string      `json:"nome"`
		ValorAlvo json.Number `json:"valor_alvo"`
		Prazo     string      `json:"prazo"`
		Icone     string      `json:"icone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	target, err := decimal.NewFromString(req.ValorAlvo.String())
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Target amount must be a number")
		return
	}

	goal := Goal{
		UserID:       userID,
		Name:         req.Nome,
		TargetAmount: target,
		Icon:         req.Icone,
	}
	if req.Prazo != "" {
		deadline, err := time.Parse("2006-01-02", req.Prazo)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid deadline format, expected YYYY-MM-DD")
			return
		}
		goal.Deadline = &deadline
	}

	if err := h.service.CreateGoal(r.Context(), &goal); err != nil {
		if errors.Is(err, ErrInvalidGoal) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error creating goal for user %s: %v", userID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Goal successfully created.",
		"data":    goal,
	})
}

func (h *Handler) GetUserGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	goals, err := h.service.GetUserGoals(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing goals for user %s: %v", userID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve goals")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Goals retrieved successfully.",
		"data":    goals,
	})
}

func (h *Handler) CreateRatioSimulation(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		RendimentoMensal json.Number `json:"rendimento_mensal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	income, err := decimal.NewFromString(req.RendimentoMensal.String())
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Monthly income must be a number")
		return
	}

	simulation, err := h.service.SimulateRatios(r.Context(), userID, income)
	if err != nil {
		if errors.Is(err, ErrInvalidIncome) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error creating ratio simulation for user %s: %v", userID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create simulation")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Simulation successfully created.",
		"data":    simulation,
	})
}
