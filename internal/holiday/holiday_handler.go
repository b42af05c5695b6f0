package holiday

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cdbl-lms/internal/domain"
	holidayerrors "cdbl-lms/internal/holiday/errors"
	"cdbl-lms/internal/shared/apperror"
	"cdbl-lms/internal/shared/response"
)

const maxCalendarSize = 2 << 20

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func actorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{ID: c.GetString("user_id"), Role: domain.Role(c.GetString("role"))}
}

func (h *Handler) GetAll(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	resp, err := h.service.List(c.Request.Context(), year)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// Import accepts a multipart "file" field holding an .ics calendar.
func (h *Handler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, holidayerrors.ErrCalendarRequired)
		return
	}
	if fh.Size > maxCalendarSize {
		writeError(c, apperror.InvalidField("file"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, holidayerrors.ErrInvalidCalendar)
		return
	}
	defer f.Close()

	result, err := h.service.ImportICS(c.Request.Context(), actorFrom(c), f)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}
