package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/location/model"
	"library-backend/internal/domains/location/service"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/response"
)

type LocationHandler struct {
	service service.ServiceInterface
}

func NewLocationHandler(svc service.ServiceInterface) *LocationHandler {
	return &LocationHandler{service: svc}
}

func (h *LocationHandler) Create(c *gin.Context) {
	var req model.CreateLocationRequest
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

func (h *LocationHandler) CreateMany(c *gin.Context) {
	var req model.CreateManyLocationsRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	for _, item := range req.Locations {
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

func (h *LocationHandler) GetAll(c *gin.Context) {
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	locations, total, err := h.service.GetAll(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if locations == nil {
		locations = []model.Location{}
	}
	response.List(c, locations, pagination.NewMeta(p, total))
}

func (h *LocationHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "missing search query")
		return
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	locations, total, err := h.service.Search(c.Request.Context(), query, p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if locations == nil {
		locations = []model.Location{}
	}
	response.List(c, locations, pagination.NewMeta(p, total))
}

func (h *LocationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	l, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

func (h *LocationHandler) GetBySlug(c *gin.Context) {
	l, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

func (h *LocationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req model.UpdateLocationRequest
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

func (h *LocationHandler) UpdateBySlug(c *gin.Context) {
	var req model.UpdateLocationRequest
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

func (h *LocationHandler) Delete(c *gin.Context) {
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

func (h *LocationHandler) DeleteBySlug(c *gin.Context) {
	if err := h.service.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
