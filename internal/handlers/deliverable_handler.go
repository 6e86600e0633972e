package handlers

import (
	"net/http"

	"designmatch_backend/internal/middleware"
	"designmatch_backend/internal/services"
	"designmatch_backend/internal/services/dto"
	"designmatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type DeliverableHandler struct {
	*BaseHandler
	deliverableService services.DeliverableService
}

func NewDeliverableHandler(base *BaseHandler, deliverableService services.DeliverableService) *DeliverableHandler {
	return &DeliverableHandler{
		BaseHandler:        base,
		deliverableService: deliverableService,
	}
}

func (h *DeliverableHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	{
		projects.POST("/:id/deliverables", h.Submit)
		projects.GET("/:id/deliverables", h.List)
	}

	deliverables := rg.Group("/deliverables")
	deliverables.Use(middleware.AuthMiddleware())
	{
		deliverables.POST("/:id/review", h.Review)
	}
}

// Submit accepts a multipart form: metadata fields plus a "file" part.
func (h *DeliverableHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitDeliverableRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("A file upload is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	upload := &services.DeliverableUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	}

	deliverable, err := h.deliverableService.Submit(c.Request.Context(), userID, c.Param("id"), &req, upload)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, deliverable)
}

func (h *DeliverableHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	deliverables, err := h.deliverableService.ListByProject(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deliverables": deliverables})
}

func (h *DeliverableHandler) Review(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewDeliverableRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	deliverable, err := h.deliverableService.Review(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, deliverable)
}
