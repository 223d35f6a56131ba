package asset

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
	l := zap.L().Named("asset.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("asset.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("asset request failed",
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
		Limit:  pageSize,
		Skip:   (page - 1) * pageSize,
	}, page, pageSize
}

func (h *Handler) Create(c *gin.Context) {
	hrEmail := c.GetString("email")
	companyName := c.GetString("company_name")

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create asset validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), hrEmail, companyName, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// GetAll serves both roles: HR sees their own inventory, employees see their
// company's catalog. The scope comes from the caller's identity, never from
// the query.
func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	filter, page, pageSize := listFilterFromQuery(c)

	var (
		resp  []AssetResponse
		total int64
		err   error
	)
	if c.GetString("role") == user.RoleHR {
		resp, total, err = h.service.ListForOwner(ctx, c.GetString("email"), filter)
	} else {
		resp, total, err = h.service.ListForEmployee(ctx, c.GetString("email"), filter)
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.GetString("email"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update asset validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.GetString("email"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.GetString("email"), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
