package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/style-ai/internal/domain/wardrobe"
	apperrors "github.com/yanqian/style-ai/pkg/errors"
)

// UploadWardrobeItem accepts a multipart photo upload with a category field.
func (h *Handler) UploadWardrobeItem(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "file field is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read uploaded file", err))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read uploaded file", err))
		return
	}

	item, err := h.wardrobeSvc.Upload(c.Request.Context(), claims.UserID, wardrobe.UploadRequest{
		Category: c.PostForm("category"),
		Filename: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		abortWithError(c, wardrobeError(err))
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListWardrobeItems returns the caller's wardrobe, most recent first.
func (h *Handler) ListWardrobeItems(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}
	items, err := h.wardrobeSvc.List(c.Request.Context(), claims.UserID)
	if err != nil {
		abortWithError(c, wardrobeError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// DeleteWardrobeItem removes the stored photo and its record.
func (h *Handler) DeleteWardrobeItem(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "item id must be numeric", err))
		return
	}
	if err := h.wardrobeSvc.Delete(c.Request.Context(), claims.UserID, itemID); err != nil {
		abortWithError(c, wardrobeError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func wardrobeError(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := "wardrobe_failed"
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "item_not_found"):
		status = http.StatusNotFound
		code = "item_not_found"
	case apperrors.IsCode(err, "storage_error"):
		status = http.StatusInternalServerError
		code = "storage_error"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}
