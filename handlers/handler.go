package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"homechef-api/apperr"
	"homechef-api/middleware"
	"homechef-api/services"

	"github.com/gin-gonic/gin"
)

// Handler serves every HTTP endpoint over the shared services
type Handler struct {
	svc      *services.Services
	sessions *middleware.SessionManager
	logger   *slog.Logger
}

func New(svc *services.Services, sessions *middleware.SessionManager, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, sessions: sessions, logger: logger}
}

// respondError writes {success:false, message} with the status of err's kind
func (h *Handler) respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
	c.JSON(status, gin.H{"success": false, "message": apperr.Message(err)})
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	h.respondError(c, apperr.InvalidInput(msg))
}

// flexFloat accepts a JSON number or a numeric string. NaN and infinities are rejected.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number %q", b)
	}
	*f = flexFloat(v)
	return nil
}

func (f *flexFloat) ptr() *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

// flexInt is flexFloat truncated to an int
type flexInt int

func (i *flexInt) UnmarshalJSON(b []byte) error {
	var f flexFloat
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	*i = flexInt(f)
	return nil
}

func (i *flexInt) ptr() *int {
	if i == nil {
		return nil
	}
	v := int(*i)
	return &v
}
