package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nthumods/mods-backend/internal/response"
	"github.com/nthumods/mods-backend/internal/service"
	"github.com/rs/zerolog"
)

type SessionHandler struct {
	authService *service.AuthService
	log         zerolog.Logger
}

func NewSessionHandler(authService *service.AuthService, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		authService: authService,
		log:         log.With().Str("component", "session_handler").Logger(),
	}
}

// Create godoc
// POST /api/v1/session
// Issues a token for a new anonymous client. The client id owns every
// timetable and preference written with the token.
func (h *SessionHandler) Create(c *gin.Context) {
	token, clientID, expiresAt, err := h.authService.IssueClientToken()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to issue client token")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"token":      token,
		"client_id":  clientID,
		"expires_at": expiresAt.UTC(),
	})
}
