package user

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// TokenIssuer mints the token pair handed out right after registration, so a
// new user is signed in without a second round trip.
type TokenIssuer interface {
	IssuePair(userID, hashToken string) (accessToken, refreshToken string, err error)
}

type Handler struct {
	service Service
	tokens  TokenIssuer
}

func NewHandler(service Service, tokens TokenIssuer) *Handler {
	return &Handler{
		service: service,
		tokens:  tokens,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type registerRequest struct {
	NomeCompleto string `json:"nome_completo"`
	NomeUsuario  string `json:"nome_usuario"`
	Email        string `json:"email"`
	Contacto     string `json:"contacto"`
	Sexo         string `json:"sexo"`
	EstadoCivil  string `json:"estado_civil"`
	BI           string `json:"BI"`
	Endereco     string `json:"endereco"`
	PalavraPasse string `json:"palavra_passe"`
	FotoPerfil   string `json:"foto_perfil"`
}

func (req *registerRequest) profile() Profile {
	return Profile{
		FullName:      req.NomeCompleto,
		Username:      req.NomeUsuario,
		Email:         req.Email,
		Contact:       req.Contacto,
		Gender:        req.Sexo,
		MaritalStatus: req.EstadoCivil,
		IDNumber:      req.BI,
		Address:       req.Endereco,
		Photo:         req.FotoPerfil,
	}
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.NomeUsuario == "" || req.Email == "" || req.PalavraPasse == "" {
		respondError(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	newUser, err := h.service.Register(r.Context(), req.profile(), req.PalavraPasse)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserAlreadyExists):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrEmailLength),
			errors.Is(err, ErrUsernameLength), errors.Is(err, ErrPasswordTooShort):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	accessToken, refreshToken, err := h.tokens.IssuePair(newUser.ID, newUser.HashToken)
	if err != nil {
		log.Printf("Error issuing tokens after registration: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HttpOnly: true,
		Path:     "/api/refresh/token",
		SameSite: http.SameSiteNoneMode,
	})
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"user":         newUser,
			"access_token": accessToken,
		},
	})
}

func (h *Handler) HandleGetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	existingUser, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   existingUser,
	})
}

func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updatedUser, err := h.service.UpdateProfile(r.Context(), userID, req.profile())
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrEmailLength):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Profile updated successfully",
		"data":    updatedUser,
	})
}

func (h *Handler) HandleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Currency string `json:"currency"`
		Language string `json:"language"`
		Theme    string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updatedUser, err := h.service.UpdatePreferences(r.Context(), userID, req.Currency, req.Language, req.Theme)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Preferences updated successfully",
		"data":    updatedUser,
	})
}

func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.service.ChangePasswordWithOldPassword(r.Context(), userID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidOldPassword):
			respondError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, ErrPasswordTooShort):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Password changed successfully",
	})
}
