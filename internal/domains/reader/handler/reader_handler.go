package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/reader/model"
	"library-backend/internal/domains/reader/service"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/response"
)

type ReaderHandler struct {
	service service.ServiceInterface
}

func NewReaderHandler(svc service.ServiceInterface) *ReaderHandler {
	return &ReaderHandler{service: svc}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/readers
// ════════════════════════════════════════════════════════════════

func (h *ReaderHandler) Create(c *gin.Context) {
	var req model.CreateReaderRequest
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
// BULK CREATE: POST /v1/readers/bulk
// ════════════════════════════════════════════════════════════════

func (h *ReaderHandler) CreateMany(c *gin.Context) {
	var req model.CreateManyReadersRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	for _, item := range req.Readers {
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
// READ: GET /v1/readers?page&limit&reader_type_id
// ════════════════════════════════════════════════════════════════

func (h *ReaderHandler) GetAll(c *gin.Context) {
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	// Cho phép lọc theo reader_type_id qua query param.
	if raw := c.Query("reader_type_id"); raw != "" {
		readerTypeID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid UUID format")
			return
		}
		readers, total, err := h.service.GetByReaderType(c.Request.Context(), readerTypeID, p)
		if err != nil {
			response.FromError(c, err)
			return
		}
		if readers == nil {
			readers = []model.Reader{}
		}
		response.List(c, readers, pagination.NewMeta(p, total))
		return
	}

	readers, total, err := h.service.GetAll(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if readers == nil {
		readers = []model.Reader{}
	}
	response.List(c, readers, pagination.NewMeta(p, total))
}

// ════════════════════════════════════════════════════════════════
// SEARCH: GET /v1/readers/search?q&page&limit
// ════════════════════════════════════════════════════════════════

func (h *ReaderHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "missing search query")
		return
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	readers, total, err := h.service.Search(c.Request.Context(), query, p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if readers == nil {
		readers = []model.Reader{}
	}
	response.List(c, readers, pagination.NewMeta(p, total))
}

// ════════════════════════════════════════════════════════════════
// READ ONE: GET /v1/readers/:id | /v1/readers/slug/:slug | /v1/readers/card/:cardNumber
// ════════════════════════════════════════════════════════════════

func (h *ReaderHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	rd, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rd)
}

func (h *ReaderHandler) GetBySlug(c *gin.Context) {
	rd, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rd)
}

func (h *ReaderHandler) GetByCardNumber(c *gin.Context) {
	rd, err := h.service.GetByCardNumber(c.Request.Context(), c.Param("cardNumber"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rd)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PATCH /v1/readers/:id | /v1/readers/slug/:slug
// ════════════════════════════════════════════════════════════════

func (h *ReaderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req model.UpdateReaderRequest
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

func (h *ReaderHandler) UpdateBySlug(c *gin.Context) {
	var req model.UpdateReaderRequest
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
// DELETE: DELETE /v1/readers/:id | /v1/readers/slug/:slug
// ════════════════════════════════════════════════════════════════

func (h *ReaderHandler) Delete(c *gin.Context) {
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

func (h *ReaderHandler) DeleteBySlug(c *gin.Context) {
	if err := h.service.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}
