package handlers

import (
	"net/http"

	spotRepo "bookmyspot/database/repository/spot"
	"bookmyspot/services/workflow"
	"bookmyspot/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the review queue and spot moderation to admins.
// The workflow engine re-checks the admin role against the user store on
// every call; the route middleware is only the first gate.
type AdminHandler struct {
	Workflow workflow.WorkflowService
	Spots    spotRepo.SpotRepository
}

func NewAdminHandler(wf workflow.WorkflowService, spots spotRepo.SpotRepository) *AdminHandler {
	return &AdminHandler{Workflow: wf, Spots: spots}
}

// ListPending returns the pending request queue, oldest first.
func (h *AdminHandler) ListPending(c *gin.Context) {
	requests, err := h.Workflow.ListPendingRequests(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// Approve applies a pending request.
func (h *AdminHandler) Approve(c *gin.Context) {
	if err := h.Workflow.Approve(c.Request.Context(), c.GetString("userID"), c.Param("requestID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

// Reject declines a pending request with a mandatory reason.
func (h *AdminHandler) Reject(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Workflow.Reject(c.Request.Context(), c.GetString("userID"), c.Param("requestID"), input.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// DeleteSpot removes a listing. Bookings and requests referencing it are
// left in place.
func (h *AdminHandler) DeleteSpot(c *gin.Context) {
	if err := h.Spots.Delete(c.Param("spotID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
