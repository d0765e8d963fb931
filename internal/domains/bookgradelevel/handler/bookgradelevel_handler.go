package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/bookgradelevel/model"
	"library-backend/internal/domains/bookgradelevel/service"
	gradelevelmodel "library-backend/internal/domains/gradelevel/model"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/response"
)

type BookGradeLevelHandler struct {
	service service.ServiceInterface
}

func NewBookGradeLevelHandler(svc service.ServiceInterface) *BookGradeLevelHandler {
	return &BookGradeLevelHandler{service: svc}
}

func (h *BookGradeLevelHandler) Add(c *gin.Context) {
	var req model.LinkRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}

	link, err := h.service.Add(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, link)
}

func (h *BookGradeLevelHandler) Remove(c *gin.Context) {
	var req model.LinkRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}

	if err := h.service.Remove(c.Request.Context(), &req); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *BookGradeLevelHandler) SetForBook(c *gin.Context) {
	var req model.SetForBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}

	if err := h.service.SetForBook(c.Request.Context(), &req); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *BookGradeLevelHandler) ListGradeLevelsOfBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	levels, total, err := h.service.ListGradeLevelsOfBook(c.Request.Context(), bookID, p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if levels == nil {
		levels = []gradelevelmodel.GradeLevel{}
	}
	response.List(c, levels, pagination.NewMeta(p, total))
}

func (h *BookGradeLevelHandler) ListBooksOfGradeLevel(c *gin.Context) {
	gradeLevelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	books, total, err := h.service.ListBooksOfGradeLevel(c.Request.Context(), gradeLevelID, p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if books == nil {
		books = []bookmodel.Book{}
	}
	response.List(c, books, pagination.NewMeta(p, total))
}
