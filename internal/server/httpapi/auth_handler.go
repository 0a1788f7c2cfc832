package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zorgkaart/internal/logging"
	"zorgkaart/internal/server/auth"
)

// AuthHandler exchanges the shared access password for a session token.
type AuthHandler struct {
	log        logging.Logger
	gate       *auth.Gate
	secret     []byte
	sessionTTL time.Duration
}

func NewAuthHandler(log logging.Logger, gate *auth.Gate, secret []byte, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "auth"), gate: gate, secret: secret, sessionTTL: sessionTTL}
}

type loginRequest struct {
	Wachtwoord string `json:"wachtwoord"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("ongeldige aanvraag"))
		return
	}

	if err := h.gate.Check(req.Wachtwoord); err != nil {
		h.log.Warn(c.Request.Context(), "login rejected")
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("wachtwoord onjuist"))
		return
	}

	token, err := auth.GenerateToken(h.secret, h.sessionTTL)
	if err != nil {
		h.log.Error(c.Request.Context(), "token generation failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("interne fout"))
		return
	}
	RespondOK(c, loginResponse{Token: token})
}
