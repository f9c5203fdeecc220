package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"memehub-backend/application/services"
	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	"memehub-backend/pkg/common"
	pkgerrors "memehub-backend/pkg/errors"
	"memehub-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20

// MemeHandler serves the meme browsing and interaction routes
type MemeHandler struct {
	listing      *services.ListingService
	interactions *services.InteractionService
	lastSeen     *services.LastSeenService
	recommend    *services.RecommendService
	logger       *zap.Logger
}

// NewMemeHandler creates a new meme handler
func NewMemeHandler(
	listing *services.ListingService,
	interactions *services.InteractionService,
	lastSeen *services.LastSeenService,
	recommend *services.RecommendService,
	logger *zap.Logger,
) *MemeHandler {
	return &MemeHandler{
		listing:      listing,
		interactions: interactions,
		lastSeen:     lastSeen,
		recommend:    recommend,
		logger:       logger,
	}
}

// List handles GET /memes
func (h *MemeHandler) List(w http.ResponseWriter, r *http.Request) {
	params := common.ExtractPaginationParams(r)

	page, err := h.listing.ListMemes(r.Context(), params.Page, params.Size)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, page)
}

// ListToday handles GET /memes/today
func (h *MemeHandler) ListToday(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			common.RespondAppError(w, pkgerrors.NewValidationError("limit must be a number"))
			return
		}
		limit = parsed
	}

	views, err := h.listing.ListTodayMemes(r.Context(), limit)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, views)
}

// Search handles GET /memes/search
func (h *MemeHandler) Search(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		common.RespondAppError(w, pkgerrors.NewValidationError("keyword query parameter is required"))
		return
	}
	params := common.ExtractPaginationParams(r)

	page, err := h.listing.SearchByKeyword(r.Context(), params.Page, params.Size, keyword)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, page)
}

// Get handles GET /memes/{memeID}
func (h *MemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	memeID, err := memeIDParam(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	view, err := h.listing.GetMemeWithKeywords(r.Context(), memeID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, view)
}

type watchRequest struct {
	IsRecommended bool `json:"isRecommended"`
}

type watchResponse struct {
	LastSeen             []string `json:"lastSeen"`
	WeeklyRecommendCount *int     `json:"weeklyRecommendCount,omitempty"`
}

// Watch handles POST /memes/{memeID}/watch. It logs the WATCH event,
// updates the viewing history, and when the client flags the watch as a
// recommendation watch, returns the device's weekly count.
func (h *MemeHandler) Watch(w http.ResponseWriter, r *http.Request) {
	deviceID, memeID, err := deviceAndMeme(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var req watchRequest
	if r.ContentLength > 0 {
		if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
			common.RespondAppError(w, pkgerrors.NewValidationError("invalid request body"))
			return
		}
	}

	if _, err := h.interactions.RecordInteraction(r.Context(), deviceID, memeID, entities.InteractionWatch); err != nil {
		common.RespondAppError(w, err)
		return
	}

	lastSeen, err := h.lastSeen.RecordView(r.Context(), deviceID, memeID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	resp := watchResponse{LastSeen: valueobjects.MemeIDStrings(lastSeen)}
	if req.IsRecommended {
		count, err := h.recommend.RecordRecommendedWatch(r.Context(), deviceID, memeID)
		if err != nil {
			common.RespondAppError(w, err)
			return
		}
		resp.WeeklyRecommendCount = &count
	}

	common.RespondJSON(w, http.StatusOK, resp)
}

// React handles POST /memes/{memeID}/reaction
func (h *MemeHandler) React(w http.ResponseWriter, r *http.Request) {
	deviceID, memeID, err := deviceAndMeme(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	reaction, err := h.interactions.RecordInteraction(r.Context(), deviceID, memeID, entities.InteractionReaction)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]int{"reaction": reaction})
}

// Share handles POST /memes/{memeID}/share
func (h *MemeHandler) Share(w http.ResponseWriter, r *http.Request) {
	deviceID, memeID, err := deviceAndMeme(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	if _, err := h.interactions.RecordInteraction(r.Context(), deviceID, memeID, entities.InteractionShare); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusNoContent, nil)
}

// Save handles POST /memes/{memeID}/save
func (h *MemeHandler) Save(w http.ResponseWriter, r *http.Request) {
	deviceID, memeID, err := deviceAndMeme(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	if _, err := h.interactions.RecordInteraction(r.Context(), deviceID, memeID, entities.InteractionSave); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusNoContent, nil)
}

// Unsave handles DELETE /memes/{memeID}/save
func (h *MemeHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	deviceID, memeID, err := deviceAndMeme(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	if err := h.interactions.DeleteSave(r.Context(), deviceID, memeID); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusNoContent, nil)
}

// AdminMemeHandler serves the admin content-management routes
type AdminMemeHandler struct {
	memes  *services.MemeService
	logger *zap.Logger
}

// NewAdminMemeHandler creates a new admin meme handler
func NewAdminMemeHandler(memes *services.MemeService, logger *zap.Logger) *AdminMemeHandler {
	return &AdminMemeHandler{memes: memes, logger: logger}
}

type createMemeRequest struct {
	Title      string   `json:"title" validate:"required"`
	Image      string   `json:"image" validate:"required"`
	Source     string   `json:"source"`
	KeywordIDs []string `json:"keywordIds" validate:"max=20,dive,uuid"`
}

type updateMemeRequest struct {
	Title      *string  `json:"title"`
	Image      *string  `json:"image"`
	Source     *string  `json:"source"`
	KeywordIDs []string `json:"keywordIds" validate:"omitempty,max=20,dive,uuid"`
}

type setTodayRequest struct {
	IsTodayMeme bool `json:"isTodayMeme"`
}

// Create handles POST /memes (admin)
func (h *AdminMemeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMemeRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError(err.Error()))
		return
	}

	meme, err := h.memes.CreateMeme(r.Context(), req.Title, req.Image, req.Source, req.KeywordIDs)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": meme.ID().String()})
}

// Update handles PUT /memes/{memeID} (admin)
func (h *AdminMemeHandler) Update(w http.ResponseWriter, r *http.Request) {
	memeID, err := memeIDParam(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var req updateMemeRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError(err.Error()))
		return
	}

	if _, err := h.memes.UpdateMeme(r.Context(), memeID, req.Title, req.Image, req.Source, req.KeywordIDs); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusNoContent, nil)
}

// Delete handles DELETE /memes/{memeID} (admin)
func (h *AdminMemeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	memeID, err := memeIDParam(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	if err := h.memes.DeleteMeme(r.Context(), memeID); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusNoContent, nil)
}

// SetToday handles PUT /memes/{memeID}/today (admin)
func (h *AdminMemeHandler) SetToday(w http.ResponseWriter, r *http.Request) {
	memeID, err := memeIDParam(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var req setTodayRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError("invalid request body"))
		return
	}

	if err := h.memes.SetTodayMeme(r.Context(), memeID, req.IsTodayMeme); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusNoContent, nil)
}

func memeIDParam(r *http.Request) (valueobjects.MemeID, error) {
	memeID, err := valueobjects.ParseMemeID(chi.URLParam(r, "memeID"))
	if err != nil {
		return valueobjects.MemeID{}, pkgerrors.NewValidationError("invalid meme id")
	}
	return memeID, nil
}

func deviceFromContext(r *http.Request) (valueobjects.DeviceID, error) {
	raw, ok := common.GetDeviceID(r.Context())
	if !ok {
		return valueobjects.DeviceID{}, pkgerrors.NewUnauthorizedError("")
	}
	deviceID, err := valueobjects.ParseDeviceID(raw)
	if err != nil {
		return valueobjects.DeviceID{}, pkgerrors.NewUnauthorizedError("")
	}
	return deviceID, nil
}

func deviceAndMeme(r *http.Request) (valueobjects.DeviceID, valueobjects.MemeID, error) {
	deviceID, err := deviceFromContext(r)
	if err != nil {
		return valueobjects.DeviceID{}, valueobjects.MemeID{}, err
	}
	memeID, err := memeIDParam(r)
	if err != nil {
		return valueobjects.DeviceID{}, valueobjects.MemeID{}, err
	}
	return deviceID, memeID, nil
}
