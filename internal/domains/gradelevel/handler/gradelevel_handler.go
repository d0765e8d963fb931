package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/gradelevel/model"
	"library-backend/internal/domains/gradelevel/service"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/response"
)

type GradeLevelHandler struct {
	service service.ServiceInterface
}

func NewGradeLevelHandler(svc service.ServiceInterface) *GradeLevelHandler {
	return &GradeLevelHandler{service: svc}
}

func (h *GradeLevelHandler) Create(c *gin.Context) {
	var req model.CreateGradeLevelRequest
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

func (h *GradeLevelHandler) CreateMany(c *gin.Context) {
	var req model.CreateManyGradeLevelsRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	for _, item := range req.GradeLevels {
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

func (h *GradeLevelHandler) GetAll(c *gin.Context) {
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	levels, total, err := h.service.GetAll(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if levels == nil {
		levels = []model.GradeLevel{}
	}
	response.List(c, levels, pagination.NewMeta(p, total))
}

func (h *GradeLevelHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "missing search query")
		return
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	levels, total, err := h.service.Search(c.Request.Context(), query, p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if levels == nil {
		levels = []model.GradeLevel{}
	}
	response.List(c, levels, pagination.NewMeta(p, total))
}

func (h *GradeLevelHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	g, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, g)
}

func (h *GradeLevelHandler) GetBySlug(c *gin.Context) {
	g, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, g)
}

func (h *GradeLevelHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req model.UpdateGradeLevelRequest
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

func (h *GradeLevelHandler) UpdateBySlug(c *gin.Context) {
	var req model.UpdateGradeLevelRequest
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

func (h *GradeLevelHandler) Delete(c *gin.Context) {
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

func (h *GradeLevelHandler) DeleteBySlug(c *gin.Context) {
	if err := h.service.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
