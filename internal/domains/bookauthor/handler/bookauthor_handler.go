package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authormodel "library-backend/internal/domains/author/model"
	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/bookauthor/model"
	"library-backend/internal/domains/bookauthor/service"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/response"
)

type BookAuthorHandler struct {
	service service.ServiceInterface
}

func NewBookAuthorHandler(svc service.ServiceInterface) *BookAuthorHandler {
	return &BookAuthorHandler{service: svc}
}

// Add xử lý POST /v1/book-authors.
func (h *BookAuthorHandler) Add(c *gin.Context) {
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

// Remove xử lý DELETE /v1/book-authors, pair trong body.
func (h *BookAuthorHandler) Remove(c *gin.Context) {
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

// SetForBook xử lý POST /v1/book-authors/set-for-book.
func (h *BookAuthorHandler) SetForBook(c *gin.Context) {
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

// ListAuthorsOfBook xử lý GET /v1/books/:id/authors.
func (h *BookAuthorHandler) ListAuthorsOfBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	authors, total, err := h.service.ListAuthorsOfBook(c.Request.Context(), bookID, p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if authors == nil {
		authors = []authormodel.Author{}
	}
	response.List(c, authors, pagination.NewMeta(p, total))
}

// ListBooksOfAuthor xử lý GET /v1/authors/:id/books.
func (h *BookAuthorHandler) ListBooksOfAuthor(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	books, total, err := h.service.ListBooksOfAuthor(c.Request.Context(), authorID, p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if books == nil {
		books = []bookmodel.Book{}
	}
	response.List(c, books, pagination.NewMeta(p, total))
}
