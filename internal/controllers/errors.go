package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// respondWithError maps a service error onto an HTTP status and APIError body.
// notFoundCode is the resource-specific code used for models.ErrNotFound.
func respondWithError(ctx *gin.Context, err error, notFoundCode string) {
	var fieldErr *models.FieldError
	switch {
	case errors.As(err, &fieldErr):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error(), map[string]interface{}{
			"field":  fieldErr.Field,
			"reason": fieldErr.Reason,
		}))
	case errors.Is(err, models.ErrValidation):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
	case errors.Is(err, models.ErrUniquenessViolation):
		ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrConflict, err.Error()))
	case errors.Is(err, models.ErrReference):
		ctx.JSON(http.StatusUnprocessableEntity, models.NewAPIError(models.ErrReferenceInvalid, err.Error()))
	case errors.Is(err, models.ErrNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(notFoundCode, err.Error()))
	default:
		log.WithError(err).WithField("path", ctx.FullPath()).Error("Request failed")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Internal server error"))
	}
}

// parseID reads a positive integer path parameter, writing a 400 response when it is invalid.
func parseID(ctx *gin.Context, param, label string) (uint, bool) {
	raw := ctx.Param(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid "+label+" ID format", map[string]interface{}{
			"id": raw,
		}))
		return 0, false
	}
	return uint(id), true
}

func respondInvalidBody(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body", map[string]interface{}{
		"error": err.Error(),
	}))
}
