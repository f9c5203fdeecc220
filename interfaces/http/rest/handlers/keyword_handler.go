package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"memehub-backend/application/services"
	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	"memehub-backend/pkg/common"
	pkgerrors "memehub-backend/pkg/errors"
	"memehub-backend/pkg/utils"
)

// KeywordHandler serves keyword and category routes, both the public
// recommended rail and the admin management surface
type KeywordHandler struct {
	keywords *services.KeywordService
	logger   *zap.Logger
}

// NewKeywordHandler creates a new keyword handler
func NewKeywordHandler(keywords *services.KeywordService, logger *zap.Logger) *KeywordHandler {
	return &KeywordHandler{keywords: keywords, logger: logger}
}

type keywordResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	SearchCount int    `json:"searchCount"`
}

type categoryResponse struct {
	Name        string    `json:"name"`
	IsRecommend bool      `json:"isRecommend"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Recommended handles GET /keywords/recommended
func (h *KeywordHandler) Recommended(w http.ResponseWriter, r *http.Request) {
	keywords, err := h.keywords.ListRecommendedKeywords(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	out := make([]keywordResponse, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, keywordToResponse(k))
	}
	common.RespondJSON(w, http.StatusOK, out)
}

type createKeywordRequest struct {
	Name     string `json:"name" validate:"required,max=64"`
	Category string `json:"category" validate:"max=64"`
}

// Create handles POST /keywords (admin)
func (h *KeywordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createKeywordRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError(err.Error()))
		return
	}

	keyword, err := h.keywords.CreateKeyword(r.Context(), req.Name, req.Category)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, keywordToResponse(keyword))
}

// Delete handles DELETE /keywords/{keywordID} (admin)
func (h *KeywordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	keywordID, err := valueobjects.ParseKeywordID(chi.URLParam(r, "keywordID"))
	if err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError("invalid keyword id"))
		return
	}

	if err := h.keywords.DeleteKeyword(r.Context(), keywordID); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusNoContent, nil)
}

// ListCategories handles GET /categories (admin)
func (h *KeywordHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.keywords.ListCategories(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{
			Name:        c.Name(),
			IsRecommend: c.IsRecommend(),
			CreatedAt:   c.CreatedAt(),
		})
	}
	common.RespondJSON(w, http.StatusOK, out)
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	IsRecommend bool   `json:"isRecommend"`
}

// CreateCategory handles POST /categories (admin)
func (h *KeywordHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, pkgerrors.NewValidationError(err.Error()))
		return
	}

	category, err := h.keywords.CreateCategory(r.Context(), req.Name, req.IsRecommend)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, categoryResponse{
		Name:        category.Name(),
		IsRecommend: category.IsRecommend(),
		CreatedAt:   category.CreatedAt(),
	})
}

func keywordToResponse(k *entities.Keyword) keywordResponse {
	return keywordResponse{
		ID:          k.ID().String(),
		Name:        k.Name(),
		Category:    k.Category(),
		SearchCount: k.SearchCount(),
	}
}
