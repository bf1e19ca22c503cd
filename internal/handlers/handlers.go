// Package handlers exposes the store as a JSON API.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/store"
	"ats-backend/internal/uploader"
)

// Handler holds shared dependencies for all routes.
type Handler struct {
	Store    *store.Store
	Uploader *uploader.Client
}

func New(st *store.Store, up *uploader.Client) *Handler {
	return &Handler{Store: st, Uploader: up}
}

// writeError maps store errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var ve *store.ValidationError

	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrInvalidTransition):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrDuplicate):
		status = http.StatusConflict
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

// pageParams reads the shared ?page= and ?limit= query parameters.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return page, limit
}
