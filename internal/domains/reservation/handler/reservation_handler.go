package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/reservation/model"
	"library-backend/internal/domains/reservation/service"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/response"
)

type ReservationHandler struct {
	service service.ServiceInterface
}

func NewReservationHandler(svc service.ServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: svc}
}

func (h *ReservationHandler) Create(c *gin.Context) {
	var req model.CreateReservationRequest
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

func (h *ReservationHandler) GetAll(c *gin.Context) {
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	// Lọc theo reader qua query param.
	if raw := c.Query("reader_id"); raw != "" {
		readerID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid UUID format")
			return
		}
		reservations, total, err := h.service.GetByReader(c.Request.Context(), readerID, p)
		if err != nil {
			response.FromError(c, err)
			return
		}
		if reservations == nil {
			reservations = []model.Reservation{}
		}
		response.List(c, reservations, pagination.NewMeta(p, total))
		return
	}

	reservations, total, err := h.service.GetAll(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if reservations == nil {
		reservations = []model.Reservation{}
	}
	response.List(c, reservations, pagination.NewMeta(p, total))
}

func (h *ReservationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	rv, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

// Fulfill xử lý POST /v1/reservations/:id/fulfill.
func (h *ReservationHandler) Fulfill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	rv, err := h.service.Fulfill(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

// Cancel xử lý POST /v1/reservations/:id/cancel.
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	rv, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func (h *ReservationHandler) Delete(c *gin.Context) {
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
