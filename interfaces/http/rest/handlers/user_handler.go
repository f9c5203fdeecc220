package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"memehub-backend/application/services"
	"memehub-backend/pkg/common"
)

// UserHandler serves the device profile routes
type UserHandler struct {
	users        *services.UserService
	lastSeen     *services.LastSeenService
	interactions *services.InteractionService
	logger       *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	users *services.UserService,
	lastSeen *services.LastSeenService,
	interactions *services.InteractionService,
	logger *zap.Logger,
) *UserHandler {
	return &UserHandler{
		users:        users,
		lastSeen:     lastSeen,
		interactions: interactions,
		logger:       logger,
	}
}

// Register handles POST /users. Registration is idempotent: the device's
// record is created on first sight and its profile returned either way.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	deviceID, err := deviceFromContext(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	profile, err := h.users.GetOrCreateUser(r.Context(), deviceID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, profile)
}

// Me handles GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	h.Register(w, r)
}

// LastSeen handles GET /users/me/last-seen
func (h *UserHandler) LastSeen(w http.ResponseWriter, r *http.Request) {
	deviceID, err := deviceFromContext(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	memes, err := h.lastSeen.GetLastSeen(r.Context(), deviceID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, memesToSummaries(memes))
}

// SavedMemes handles GET /users/me/saves
func (h *UserHandler) SavedMemes(w http.ResponseWriter, r *http.Request) {
	deviceID, err := deviceFromContext(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	memes, err := h.interactions.ListSavedMemes(r.Context(), deviceID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, memesToSummaries(memes))
}
