package handler

import (
	"bytes"
	"encoding/json"
	"loan-schedule/internal/api/handler/dto"
	"loan-schedule/internal/config"
	"loan-schedule/internal/pkg/apperrors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-key"

func newTokenRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(raw))
}

func TestGenerateBearerToken(t *testing.T) {
	t.Run("successfully generates token", func(t *testing.T) {
		handler := NewAuthHandler(config.AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour}, logger)
		w := httptest.NewRecorder()

		handler.GenerateBearerToken(w, newTokenRequest(t, dto.TokenRequest{Username: "testuser"}))

		resp := w.Result()
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body dto.TokenResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.True(t, strings.HasPrefix(body.Token, "Bearer "))

		parsed, err := jwt.Parse(strings.TrimPrefix(body.Token, "Bearer "), func(token *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, "testuser", claims["username"])
		assert.InDelta(t, float64(body.ExpiresAt), claims["exp"], 0)
	})

	t.Run("fails with invalid request body", func(t *testing.T) {
		handler := NewAuthHandler(config.AuthConfig{JWTSecret: testSecret}, logger)
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader([]byte("invalid json")))
		w := httptest.NewRecorder()

		handler.GenerateBearerToken(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w.Body).Message, apperrors.ErrInvalidArgument.Error())
	})

	t.Run("fails with missing username", func(t *testing.T) {
		handler := NewAuthHandler(config.AuthConfig{JWTSecret: testSecret}, logger)
		w := httptest.NewRecorder()

		handler.GenerateBearerToken(w, newTokenRequest(t, dto.TokenRequest{}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w.Body).Message, "username is required")
	})

	t.Run("checks configured credentials", func(t *testing.T) {
		cfg := config.AuthConfig{JWTSecret: testSecret, Username: "admin", Password: "s3cret"}
		handler := NewAuthHandler(cfg, logger)

		w := httptest.NewRecorder()
		handler.GenerateBearerToken(w, newTokenRequest(t, dto.TokenRequest{Username: "admin", Password: "wrong"}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = httptest.NewRecorder()
		handler.GenerateBearerToken(w, newTokenRequest(t, dto.TokenRequest{Username: "admin", Password: "s3cret"}))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
