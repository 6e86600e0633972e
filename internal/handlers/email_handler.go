package handlers

import (
	"net/http"

	"designmatch_backend/internal/middleware"
	"designmatch_backend/internal/models"
	"designmatch_backend/internal/services"
	"designmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	*BaseHandler
	emailService services.EmailService
}

func NewEmailHandler(base *BaseHandler, emailService services.EmailService) *EmailHandler {
	return &EmailHandler{
		BaseHandler:  base,
		emailService: emailService,
	}
}

// RegisterRoutes registers the admin email delivery check.
func (h *EmailHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireUserTypes(models.UserTypeAdmin))
	{
		admin.POST("/test-email", h.SendTestEmail)
	}
}

func (h *EmailHandler) SendTestEmail(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.SendTestEmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	messageID, err := h.emailService.SendTestEmail(c.Request.Context(), req.To, req.Template)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SendTestEmailResponse{
		MessageID: messageID,
		Provider:  h.emailService.ProviderName(),
	})
}
