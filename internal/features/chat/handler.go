package chat

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/pkg/logger"
	"github.com/tunespace/tunespace-api/internal/pkg/pagination"
	"github.com/tunespace/tunespace-api/internal/pkg/response"
)

type Handler struct {
	service  *Service
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(service *Service, hub *Hub, allowedOrigin string) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" || allowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

// Send godoc
// @Summary Send a message
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendMessageRequest true "Message"
// @Success 201 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /chat/messages [post]
func (h *Handler) Send(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", "VALIDATION_FAILED")
		return
	}

	msg, err := h.service.Send(c.Request.Context(), user, &req, h.hub.IsOnline(req.RecipientID))
	if err != nil {
		response.FromError(c, err)
		return
	}

	// Push to the recipient's live connection if they have one.
	if payload, err := json.Marshal(msg); err == nil {
		h.hub.Deliver(msg.RecipientID, payload)
	}

	response.Created(c, msg)
}

// Thread godoc
// @Summary Get the message thread with a user
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Partner user ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.PaginatedResponse
// @Router /chat/messages/{userId} [get]
func (h *Handler) Thread(c *gin.Context) {
	partnerID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid user id", "VALIDATION_FAILED")
		return
	}
	page, limit := pagination.FromQuery(c.Query("page"), c.Query("limit"))

	messages, total, err := h.service.Thread(c.Request.Context(), auth.CurrentUserID(c), uint(partnerID), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, messages, total, limit, page)
}

// Conversations godoc
// @Summary List conversations
// @Description One entry per chat partner with the last message and unread count
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Router /chat/conversations [get]
func (h *Handler) Conversations(c *gin.Context) {
	conversations, err := h.service.Conversations(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, conversations)
}

// Connect upgrades the request to a websocket and attaches the client to the
// relay. Auth comes from a token query parameter because browsers cannot set
// headers on upgrade requests.
func (h *Handler) Connect(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade for user %d: %v", user.ID, err)
		return
	}

	NewClient(h.hub, conn, h.service, user).Start()
}
