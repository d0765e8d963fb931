package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/service"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/response"
)

type UserHandler struct {
	service service.ServiceInterface
}

func NewUserHandler(svc service.ServiceInterface) *UserHandler {
	return &UserHandler{service: svc}
}

// ════════════════════════════════════════════════════════════════
// AUTH: POST /v1/auth/login
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/users
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
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
// BULK CREATE: POST /v1/users/bulk
// Nhận JSON body {"users": [...]} hoặc multipart XLSX field "file".
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) CreateMany(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")

	var rows []model.BulkUserRow

	if strings.HasPrefix(contentType, "multipart/form-data") {
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

		rows, err = h.service.ParseXLSX(file)
		if err != nil {
			response.FromError(c, err)
			return
		}
	} else {
		var req model.CreateManyUsersRequest
		if err := c.BindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := req.Validate(); err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
			return
		}
		rows = req.Users
	}

	results, err := h.service.CreateMany(c.Request.Context(), rows)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, results)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/users | GET /v1/users/:id
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) GetAll(c *gin.Context) {
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	users, total, err := h.service.GetAll(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}

	response.List(c, users, pagination.NewMeta(p, total))
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, u)
}

// ════════════════════════════════════════════════════════════════
// STATUS: PATCH /v1/users/:id/status
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) SetActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if req.IsActive == nil {
		response.BadRequest(c, "is_active is required")
		return
	}

	if err := h.service.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
		response.FromError(c, err)
		return
	}

	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /v1/users/:id
// ════════════════════════════════════════════════════════════════

func (h *UserHandler) Delete(c *gin.Context) {
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
