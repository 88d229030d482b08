package handlers

import (
	"net/http"

	"bookmyspot/models"
	"bookmyspot/services/workflow"
	"bookmyspot/utils"

	"github.com/gin-gonic/gin"
)

// RequestHandler exposes the owner side of the request workflow.
type RequestHandler struct {
	Workflow workflow.WorkflowService
}

func NewRequestHandler(wf workflow.WorkflowService) *RequestHandler {
	return &RequestHandler{Workflow: wf}
}

// SubmitNewSpot files a new_spot request for admin review.
func (h *RequestHandler) SubmitNewSpot(c *gin.Context) {
	var fields models.SpotFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	id, err := h.Workflow.SubmitNewSpotRequest(c.Request.Context(), c.GetString("userID"), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"requestId": id, "status": models.RequestPending})
}

// SubmitEdit files an edit_spot request for one of the caller's spots.
func (h *RequestHandler) SubmitEdit(c *gin.Context) {
	var fields models.SpotFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	id, err := h.Workflow.SubmitEditRequest(c.Request.Context(), c.GetString("userID"), c.Param("spotID"), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"requestId": id, "status": models.RequestPending})
}

// SubmitAvailability files an availability_update request.
func (h *RequestHandler) SubmitAvailability(c *gin.Context) {
	var input struct {
		Availability models.Availability `json:"availability" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	id, err := h.Workflow.SubmitAvailabilityUpdate(c.Request.Context(), c.GetString("userID"), c.Param("spotID"), input.Availability)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"requestId": id, "status": models.RequestPending})
}

// ListMine returns the caller's submitted requests.
func (h *RequestHandler) ListMine(c *gin.Context) {
	requests, err := h.Workflow.ListOwnerRequests(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
