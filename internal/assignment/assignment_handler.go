package assignment

import (
	"net/http"
	"strconv"

	"go-assethub/internal/shared/apperror"
	"go-assethub/internal/shared/response"
	"go-assethub/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("assignment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("assignment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func listFilterFromQuery(c *gin.Context) (ListFilter, int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	return ListFilter{
		Search: c.Query("search"),
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Limit:  pageSize,
		Skip:   (page - 1) * pageSize,
	}, page, pageSize
}

// GetMine lists the calling employee's own assignments
func (h *Handler) GetMine(c *gin.Context) {
	filter, page, pageSize := listFilterFromQuery(c)

	resp, total, err := h.service.ListForEmployee(c.Request.Context(), c.GetString("email"), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

// GetAll lists every assignment under the calling HR account. Employees are
// routed to their own rows so the owner scope never widens.
func (h *Handler) GetAll(c *gin.Context) {
	filter, page, pageSize := listFilterFromQuery(c)

	var (
		resp  []AssignmentResponse
		total int64
		err   error
	)
	if c.GetString("role") == user.RoleHR {
		resp, total, err = h.service.ListForOwner(c.Request.Context(), c.GetString("email"), filter)
	} else {
		resp, total, err = h.service.ListForEmployee(c.Request.Context(), c.GetString("email"), filter)
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) Return(c *gin.Context) {
	resp, err := h.service.Return(c.Request.Context(), c.GetString("email"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
