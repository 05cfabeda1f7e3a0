package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailhub/retailhub-backend/internal/app/model"
	"github.com/retailhub/retailhub-backend/internal/app/service"
	apperrors "github.com/retailhub/retailhub-backend/internal/errors"
	"github.com/retailhub/retailhub-backend/internal/middleware"
)

type RetailerController struct {
	retailerService service.RetailerService
}

func NewRetailerController(retailerService service.RetailerService) *RetailerController {
	return &RetailerController{retailerService: retailerService}
}

// ListRetailers handles GET /retailers?query=<text>.
func (ctrl *RetailerController) ListRetailers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	query := c.Query("query")
	retailers, err := ctrl.retailerService.ListRetailers(c.Request.Context(), query)
	if err != nil {
		log.Error("Failed to list retailers", err, nil)
		apperrors.ParseAndRespond(c, err, "list")
		return
	}

	log.Debug("Retailers listed", map[string]interface{}{
		"query": query,
		"count": len(retailers),
	})

	c.JSON(http.StatusOK, retailers)
}

// CreateRetailer handles POST /retailers.
func (ctrl *RetailerController) CreateRetailer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input model.RetailerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid retailer request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Request body must be a JSON object")
		return
	}

	retailer, err := ctrl.retailerService.CreateRetailer(c.Request.Context(), input)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			apperrors.RespondWithValidationError(c, verr.Fields)
			return
		}
		log.Error("Failed to create retailer", err, nil)
		apperrors.ParseAndRespond(c, err, "create")
		return
	}

	log.Info("Retailer created", map[string]interface{}{
		"retailer_id": retailer.ID,
	})

	c.JSON(http.StatusCreated, retailer)
}

// DeleteRetailer handles DELETE /retailers?id=<id>.
func (ctrl *RetailerController) DeleteRetailer(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Query("id")
	if err := ctrl.retailerService.DeleteRetailer(c.Request.Context(), id); err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			apperrors.RespondWithValidationError(c, verr.Fields)
		case errors.Is(err, service.ErrRetailerNotFound):
			log.Warn("Retailer not found", map[string]interface{}{
				"retailer_id": id,
			})
			apperrors.NotFound(c, apperrors.RetailerNotFound, "Retailer not found")
		default:
			log.Error("Failed to delete retailer", err, map[string]interface{}{
				"retailer_id": id,
			})
			apperrors.ParseAndRespond(c, err, "delete")
		}
		return
	}

	log.Info("Retailer deleted", map[string]interface{}{
		"retailer_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// ListCategories handles GET /categories.
func (ctrl *RetailerController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.retailerService.ListCategories(c.Request.Context())
	if err != nil {
		log.Error("Failed to list categories", err, nil)
		apperrors.ParseAndRespond(c, err, "list")
		return
	}

	c.JSON(http.StatusOK, categories)
}
