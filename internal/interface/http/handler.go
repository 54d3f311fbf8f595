package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/style-ai/internal/domain/auth"
	"github.com/yanqian/style-ai/internal/domain/outfit"
	"github.com/yanqian/style-ai/internal/domain/wardrobe"
	apperrors "github.com/yanqian/style-ai/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	outfitSvc   outfit.Service
	authSvc     auth.Service
	wardrobeSvc wardrobe.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(outfitSvc outfit.Service, authSvc auth.Service, wardrobeSvc wardrobe.Service, logger *slog.Logger) *Handler {
	return &Handler{
		outfitSvc:   outfitSvc,
		authSvc:     authSvc,
		wardrobeSvc: wardrobeSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PreviewWeather resolves location and weather without creating a request.
func (h *Handler) PreviewWeather(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}
	var req outfit.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	view, err := h.outfitSvc.PreviewWeather(c.Request.Context(), claims.UserID, req)
	if err != nil {
		abortWithError(c, outfitError(err))
		return
	}
	c.JSON(http.StatusOK, view)
}

// GenerateOutfit runs the full generation pipeline.
func (h *Handler) GenerateOutfit(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}
	var req outfit.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	view, err := h.outfitSvc.Generate(c.Request.Context(), claims.UserID, req)
	if err != nil {
		abortWithError(c, outfitError(err))
		return
	}
	c.JSON(http.StatusCreated, view)
}

// OutfitHistory lists the caller's requests, most recent first.
func (h *Handler) OutfitHistory(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}
	views, err := h.outfitSvc.History(c.Request.Context(), claims.UserID)
	if err != nil {
		abortWithError(c, outfitError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": views})
}

func outfitError(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := "outfit_failed"
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "location_not_found"):
		status = http.StatusNotFound
		code = "location_not_found"
	case apperrors.IsCode(err, "geocode_error"):
		status = http.StatusBadGateway
		code = "geocode_error"
	case apperrors.IsCode(err, "generation_unavailable"):
		status = http.StatusServiceUnavailable
		code = "generation_unavailable"
	case apperrors.IsCode(err, "generation_failed"):
		status = http.StatusBadGateway
		code = "generation_failed"
	case apperrors.IsCode(err, "storage_error"):
		status = http.StatusInternalServerError
		code = "storage_error"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
