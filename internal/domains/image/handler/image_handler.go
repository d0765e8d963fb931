package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/image/model"
	"library-backend/internal/domains/image/service"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/response"
)

type ImageHandler struct {
	service service.ServiceInterface
}

func NewImageHandler(svc service.ServiceInterface) *ImageHandler {
	return &ImageHandler{service: svc}
}

// Upload xử lý POST /v1/images, multipart field "file".
func (h *ImageHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing multipart file field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot open uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	created, err := h.service.Upload(c.Request.Context(), fileHeader.Filename, contentType, data)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, created)
}

func (h *ImageHandler) GetAll(c *gin.Context) {
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	images, total, err := h.service.GetAll(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if images == nil {
		images = []model.Image{}
	}
	response.List(c, images, pagination.NewMeta(p, total))
}

func (h *ImageHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "missing search query")
		return
	}
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	images, total, err := h.service.Search(c.Request.Context(), query, p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if images == nil {
		images = []model.Image{}
	}
	response.List(c, images, pagination.NewMeta(p, total))
}

func (h *ImageHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	img, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, img)
}

func (h *ImageHandler) GetBySlug(c *gin.Context) {
	img, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, img)
}

func (h *ImageHandler) Delete(c *gin.Context) {
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

func (h *ImageHandler) DeleteBySlug(c *gin.Context) {
	if err := h.service.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
