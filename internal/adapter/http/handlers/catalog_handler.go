package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	request "agency_configurator/internal/adapter/http/dto/request"
	response "agency_configurator/internal/adapter/http/dto/response"
	"agency_configurator/internal/domain/entities"
	"agency_configurator/internal/usecase"
	"agency_configurator/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidServicePayload = pkg.NewDomainErrorSimple("INVALID_SERVICE_INPUT", "Invalid service payload", http.StatusBadRequest)
)

// CatalogHandler serves the service catalog to the configurator and the
// back-office.

type CatalogHandler struct {
	usecase      usecase.ICatalogUseCase
	baseCurrency string
}

func NewCatalogHandler(uc usecase.ICatalogUseCase, baseCurrency string) *CatalogHandler {
	return &CatalogHandler{usecase: uc, baseCurrency: baseCurrency}
}

// ListServices godoc
// @Summary     List services
// @Description Active services by default; all=true includes inactive ones.
// @Tags        catalog
// @Produce     json
// @Param       all query bool false "include inactive services"
// @Success     200 {array} response.ServiceResponse
// @Router      /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	all, _ := strconv.ParseBool(c.DefaultQuery("all", "false"))

	items, err := h.usecase.ListServices(c.Request.Context(), !all)
	if err != nil {
		log.Printf("[catalog][handler] list failed err=%v", err)
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromServices(items, h.baseCurrency))
}

// GetService godoc
// @Summary  Get a service definition
// @Tags     catalog
// @Produce  json
// @Param    service_id path string true "service id"
// @Success  200 {object} response.ServiceResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /services/{service_id} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
	s, err := h.usecase.GetService(c.Request.Context(), c.Param("service_id"))
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromService(s, h.baseCurrency))
}

// SaveService godoc
// @Summary  Create or replace a service definition
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    service_id path string true "service id"
// @Param    payload body request.ServiceRequest true "definition"
// @Success  200 {object} response.ServiceResponse
// @Failure  400 {object} pkg.HTTPError
// @Router   /admin/services/{service_id} [put]
func (h *CatalogHandler) SaveService(c *gin.Context) {
	var payload request.ServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[catalog][handler] invalid payload service_id=%s err=%v", c.Param("service_id"), err)
		c.JSON(errInvalidServicePayload.HTTPStatus, errInvalidServicePayload.ToHTTPError())
		return
	}

	saved, err := h.usecase.SaveService(c.Request.Context(), payload.ToEntity(c.Param("service_id")))
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromService(saved, h.baseCurrency))
}

// UpdateServiceStatus godoc
// @Summary  Activate or deactivate a service
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    service_id path string true "service id"
// @Param    payload body request.UpdateServiceStatusRequest true "status"
// @Success  200 {object} response.ServiceResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /admin/services/{service_id}/status [patch]
func (h *CatalogHandler) UpdateServiceStatus(c *gin.Context) {
	var payload request.UpdateServiceStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidServicePayload.HTTPStatus, errInvalidServicePayload.ToHTTPError())
		return
	}

	updated, err := h.usecase.SetServiceStatus(c.Request.Context(), c.Param("service_id"), entities.ServiceStatus(payload.Status))
	if err != nil {
		appErr := mapCatalogError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromService(updated, h.baseCurrency))
}

func mapCatalogError(err error) *pkg.AppError {
	var def *usecase.ServiceDefinitionError
	switch {
	case errors.As(err, &def):
		return pkg.NewDomainErrorSimple("INVALID_SERVICE_DEFINITION", "Service definition is invalid", http.StatusBadRequest).WithDetails(def.Problems)
	case errors.Is(err, usecase.ErrInvalidServiceID), errors.Is(err, usecase.ErrInvalidServiceStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Service not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
