package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/service"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/response"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, created)
}

// ════════════════════════════════════════════════════════════════
// BULK CREATE: POST /v1/authors/bulk
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) CreateMany(c *gin.Context) {
	var req model.CreateManyAuthorsRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	for _, item := range req.Authors {
		if err := item.Validate(); err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
			return
		}
	}

	created, err := h.service.CreateMany(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, created)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/authors?page&limit
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetAll(c *gin.Context) {
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	authors, total, err := h.service.GetAll(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if authors == nil {
		authors = []model.Author{}
	}
	response.List(c, authors, pagination.NewMeta(p, total))
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/authors/search?q=&page&limit
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "missing search query")
		return
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	authors, total, err := h.service.Search(c.Request.Context(), query, p)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if authors == nil {
		authors = []model.Author{}
	}
	response.List(c, authors, pagination.NewMeta(p, total))
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/authors/:id | GET /v1/authors/slug/:slug
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, a)
}

func (h *AuthorHandler) GetBySlug(c *gin.Context) {
	a, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, a)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PATCH /v1/authors/:id | PATCH /v1/authors/slug/:slug
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

func (h *AuthorHandler) UpdateBySlug(c *gin.Context) {
	var req model.UpdateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}

	updated, err := h.service.UpdateBySlug(c.Request.Context(), c.Param("slug"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /v1/authors/:id | DELETE /v1/authors/slug/:slug → 204
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *AuthorHandler) DeleteBySlug(c *gin.Context) {
	if err := h.service.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}
