package handlers

import (
	"net/http"

	"designmatch_backend/internal/services"
	"designmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type DiscoveryHandler struct {
	*BaseHandler
	discoveryService services.DiscoveryService
}

func NewDiscoveryHandler(base *BaseHandler, discoveryService services.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{
		BaseHandler:      base,
		discoveryService: discoveryService,
	}
}

// RegisterRoutes registers the public designer directory.
func (h *DiscoveryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/designers", h.DiscoverDesigners)
}

func (h *DiscoveryHandler) DiscoverDesigners(c *gin.Context) {
	var req dto.DiscoverDesignersRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	response, err := h.discoveryService.DiscoverDesigners(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
