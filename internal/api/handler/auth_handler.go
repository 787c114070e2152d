package handler

import (
	"crypto/subtle"
	"fmt"
	"loan-schedule/internal/api/handler/dto"
	"loan-schedule/internal/config"
	"loan-schedule/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

type AuthHandler struct {
	cfg    config.AuthConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewAuthHandler(cfg config.AuthConfig, l *slog.Logger) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		logger: l.With("component", "AuthHandler"),
		now:    time.Now,
	}
}

// GenerateBearerToken issues an HS256 bearer token for the calculator API.
// When a username and password are configured the request must match them.
//
// @Summary Generate a JWT bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse "Token successfully generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (h *AuthHandler) GenerateBearerToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode token request", "error", err)
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if req.Username == "" {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, "username is required"))
		return
	}
	if !h.credentialsMatch(req) {
		h.logger.WarnContext(r.Context(), "Rejected token request", "username", req.Username)
		respondError(w, apperrors.ErrUnauthorized)
		return
	}

	ttl := h.cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	expiresAt := h.now().Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": req.Username,
		"exp":      expiresAt.Unix(),
	})

	tokenString, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sign token", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: failed to sign token", apperrors.ErrInternalServer))
		return
	}

	h.logger.InfoContext(r.Context(), "Issued bearer token", "username", req.Username)
	respondJSON(w, http.StatusOK, dto.TokenResponse{
		Token:     "Bearer " + tokenString,
		ExpiresAt: expiresAt.Unix(),
	})
}

func (h *AuthHandler) credentialsMatch(req dto.TokenRequest) bool {
	if h.cfg.Username == "" {
		return true
	}
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.Password)) == 1
	return userOK && passOK
}
