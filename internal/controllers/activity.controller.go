package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bora/internal/services"
)

type ActivityController struct {
	participation *services.ParticipationService
	queries       *services.ActivityQueryService
}

func NewActivityController(participation *services.ParticipationService, queries *services.ActivityQueryService) *ActivityController {
	return &ActivityController{participation: participation, queries: queries}
}

// GetTypes godoc
// @Summary List activity types
// @Tags activity
// @Produce json
// @Success 200 {object} map[string]interface{} "Types retrieved successfully"
// @Router /activities/types [get]
func (ac *ActivityController) GetTypes(c *gin.Context) {
	types, err := ac.queries.Types()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve activity types",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Activity types retrieved successfully",
		"data":    types,
	})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return value
}

// GetActivities godoc
// @Summary List open activities, paginated
// @Description Filters by the caller's preferred types unless typeId is given
// @Tags activity
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param typeId query string false "Activity type filter"
// @Param orderBy query string false "createdAt, scheduledDate or title"
// @Param order query string false "asc or desc"
// @Success 200 {object} map[string]interface{} "Activities retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid ordering parameters"
// @Router /activities [get]
func (ac *ActivityController) GetActivities(c *gin.Context) {
	page, err := ac.queries.List(currentUserID(c), services.ListParams{
		TypeID:   c.Query("typeId"),
		OrderBy:  c.Query("orderBy"),
		Order:    c.Query("order"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "pageSize", 10),
	})
	if err != nil {
		respondServiceError(c, "Failed to retrieve activities", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Activities retrieved successfully",
		"data":    page,
	})
}

// GetAllActivities godoc
// @Summary List open activities without pagination
// @Tags activity
// @Produce json
// @Param typeId query string false "Activity type filter"
// @Param orderBy query string false "createdAt, scheduledDate or title"
// @Param order query string false "asc or desc"
// @Success 200 {object} map[string]interface{} "Activities retrieved successfully"
// @Router /activities/all [get]
func (ac *ActivityController) GetAllActivities(c *gin.Context) {
	activities, err := ac.queries.ListAll(currentUserID(c), c.Query("typeId"), c.Query("orderBy"), c.Query("order"))
	if err != nil {
		respondServiceError(c, "Failed to retrieve activities", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Activities retrieved successfully",
		"data":    activities,
	})
}

func (ac *ActivityController) GetCreatedByUser(c *gin.Context) {
	page, err := ac.queries.ListCreatedBy(currentUserID(c), intQuery(c, "page", 1), intQuery(c, "pageSize", 10))
	if err != nil {
		respondServiceError(c, "Failed to retrieve activities", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Activities retrieved successfully",
		"data":    page,
	})
}

func (ac *ActivityController) GetAllCreatedByUser(c *gin.Context) {
	activities, err := ac.queries.ListAllCreatedBy(currentUserID(c))
	if err != nil {
		respondServiceError(c, "Failed to retrieve activities", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Activities retrieved successfully",
		"data":    activities,
	})
}

func (ac *ActivityController) GetParticipating(c *gin.Context) {
	page, err := ac.queries.ListParticipating(currentUserID(c), intQuery(c, "page", 1), intQuery(c, "pageSize", 10))
	if err != nil {
		respondServiceError(c, "Failed to retrieve activities", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Activities retrieved successfully",
		"data":    page,
	})
}

func (ac *ActivityController) GetAllParticipating(c *gin.Context) {
	activities, err := ac.queries.ListAllParticipating(currentUserID(c))
	if err != nil {
		respondServiceError(c, "Failed to retrieve activities", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Activities retrieved successfully",
		"data":    activities,
	})
}

// GetParticipants godoc
// @Summary List an activity's participants
// @Tags activity
// @Produce json
// @Param activityId path string true "Activity ID"
// @Success 200 {object} map[string]interface{} "Participants retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Activity not found"
// @Router /activities/{activityId}/participants [get]
func (ac *ActivityController) GetParticipants(c *gin.Context) {
	roster, err := ac.queries.Roster(c.Param("activityId"))
	if err != nil {
		respondServiceError(c, "Failed to retrieve participants", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Participants retrieved successfully",
		"data":    roster,
	})
}

type createActivityRequest struct {
	Title         string    `form:"title" binding:"required"`
	Description   string    `form:"description" binding:"required"`
	TypeID        string    `form:"typeId" binding:"required,uuid"`
	Latitude      float64   `form:"latitude" binding:"required"`
	Longitude     float64   `form:"longitude" binding:"required"`
	ScheduledDate time.Time `form:"scheduledDate" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Private       bool      `form:"private"`
}

// CreateActivity godoc
// @Summary Create a new activity
// @Description Multipart form with activity fields and an optional image file
// @Tags activity
// @Accept mpfd
// @Produce json
// @Success 201 {object} map[string]interface{} "Activity created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /activities/new [post]
func (ac *ActivityController) CreateActivity(c *gin.Context) {
	var req createActivityRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	image, err := formUpload(c, "image")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to read uploaded file",
			"error":   err.Error(),
		})
		return
	}

	activity, err := ac.participation.CreateActivity(currentUserID(c), services.CreateActivityInput{
		Title:         req.Title,
		Description:   req.Description,
		TypeID:        req.TypeID,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ScheduledDate: req.ScheduledDate,
		Private:       req.Private,
	}, image)
	if err != nil {
		respondServiceError(c, "Failed to create activity", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Activity created successfully",
		"data":    activity,
	})
}

type updateActivityRequest struct {
	Title         *string    `form:"title"`
	Description   *string    `form:"description"`
	TypeID        *string    `form:"typeId" binding:"omitempty,uuid"`
	Latitude      *float64   `form:"latitude"`
	Longitude     *float64   `form:"longitude"`
	ScheduledDate *time.Time `form:"scheduledDate" time_format:"2006-01-02T15:04:05Z07:00"`
	Private       *bool      `form:"private"`
}

// UpdateActivity godoc
// @Summary Update an activity
// @Tags activity
// @Accept mpfd
// @Produce json
// @Param activityId path string true "Activity ID"
// @Success 200 {object} map[string]interface{} "Activity updated successfully"
// @Failure 403 {object} map[string]interface{} "Only the creator can edit"
// @Failure 404 {object} map[string]interface{} "Activity not found"
// @Router /activities/{activityId}/update [put]
func (ac *ActivityController) UpdateActivity(c *gin.Context) {
	var req updateActivityRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	image, err := formUpload(c, "image")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to read uploaded file",
			"error":   err.Error(),
		})
		return
	}

	activity, err := ac.participation.UpdateActivity(c.Param("activityId"), currentUserID(c), services.UpdateActivityInput{
		Title:         req.Title,
		Description:   req.Description,
		TypeID:        req.TypeID,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		ScheduledDate: req.ScheduledDate,
		Private:       req.Private,
	}, image)
	if err != nil {
		respondServiceError(c, "Failed to update activity", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Activity updated successfully",
		"data":    activity,
	})
}

// Subscribe godoc
// @Summary Subscribe to an activity
// @Tags activity
// @Produce json
// @Param activityId path string true "Activity ID"
// @Success 200 {object} map[string]interface{} "Subscribed successfully"
// @Failure 403 {object} map[string]interface{} "Creator or concluded activity"
// @Failure 404 {object} map[string]interface{} "Activity not found"
// @Failure 409 {object} map[string]interface{} "Already subscribed"
// @Router /activities/{activityId}/subscribe [post]
func (ac *ActivityController) Subscribe(c *gin.Context) {
	participant, status, err := ac.participation.Subscribe(c.Param("activityId"), currentUserID(c))
	if err != nil {
		respondServiceError(c, "Failed to subscribe to activity", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Subscribed to activity successfully",
		"data": gin.H{
			"id":                     participant.ID,
			"activityId":             participant.ActivityID,
			"userId":                 participant.UserID,
			"approved":               participant.Approved,
			"confirmedAt":            participant.ConfirmedAt,
			"userSubscriptionStatus": status,
		},
	})
}

type approveParticipantRequest struct {
	ParticipantID string `json:"participantId" binding:"required,uuid"`
	Approved      *bool  `json:"approved" binding:"required"`
}

// ApproveParticipant godoc
// @Summary Approve or deny a participant
// @Tags activity
// @Accept json
// @Produce json
// @Param activityId path string true "Activity ID"
// @Param approval body approveParticipantRequest true "Participant user id and decision"
// @Success 200 {object} map[string]interface{} "Participant updated successfully"
// @Failure 400 {object} map[string]interface{} "Already approved"
// @Failure 403 {object} map[string]interface{} "Only the creator can approve"
// @Failure 404 {object} map[string]interface{} "Activity or participant not found"
// @Router /activities/{activityId}/approve [put]
func (ac *ActivityController) ApproveParticipant(c *gin.Context) {
	var req approveParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	err := ac.participation.ApproveParticipant(c.Param("activityId"), currentUserID(c), req.ParticipantID, *req.Approved)
	if err != nil {
		respondServiceError(c, "Failed to update participant", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Participant updated successfully",
		"data":    nil,
	})
}

type checkInRequest struct {
	ConfirmationCode string `json:"confirmationCode" binding:"required"`
}

// CheckIn godoc
// @Summary Confirm attendance with the activity's confirmation code
// @Tags activity
// @Accept json
// @Produce json
// @Param activityId path string true "Activity ID"
// @Param checkin body checkInRequest true "Confirmation code"
// @Success 200 {object} map[string]interface{} "Attendance confirmed"
// @Failure 400 {object} map[string]interface{} "Wrong confirmation code"
// @Failure 403 {object} map[string]interface{} "Not approved or activity concluded"
// @Failure 404 {object} map[string]interface{} "Activity or participant not found"
// @Failure 409 {object} map[string]interface{} "Already confirmed"
// @Router /activities/{activityId}/check-in [put]
func (ac *ActivityController) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	err := ac.participation.CheckIn(c.Param("activityId"), currentUserID(c), req.ConfirmationCode)
	if err != nil {
		respondServiceError(c, "Failed to confirm attendance", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Attendance confirmed successfully",
		"data":    nil,
	})
}

// Unsubscribe godoc
// @Summary Leave an activity before confirming attendance
// @Tags activity
// @Produce json
// @Param activityId path string true "Activity ID"
// @Success 200 {object} map[string]interface{} "Unsubscribed successfully"
// @Failure 400 {object} map[string]interface{} "Not subscribed or already confirmed"
// @Failure 404 {object} map[string]interface{} "Activity not found"
// @Router /activities/{activityId}/unsubscribe [delete]
func (ac *ActivityController) Unsubscribe(c *gin.Context) {
	if err := ac.participation.Unsubscribe(c.Param("activityId"), currentUserID(c)); err != nil {
		respondServiceError(c, "Failed to unsubscribe from activity", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Unsubscribed from activity successfully",
		"data":    nil,
	})
}

// Conclude godoc
// @Summary Mark an activity as concluded
// @Tags activity
// @Produce json
// @Param activityId path string true "Activity ID"
// @Success 200 {object} map[string]interface{} "Activity concluded successfully"
// @Failure 403 {object} map[string]interface{} "Only the creator can conclude"
// @Failure 404 {object} map[string]interface{} "Activity not found"
// @Router /activities/{activityId}/conclude [put]
func (ac *ActivityController) Conclude(c *gin.Context) {
	if err := ac.participation.Conclude(c.Param("activityId"), currentUserID(c)); err != nil {
		respondServiceError(c, "Failed to conclude activity", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Activity concluded successfully",
		"data":    nil,
	})
}

// DeleteActivity godoc
// @Summary Soft-delete an activity
// @Tags activity
// @Produce json
// @Param activityId path string true "Activity ID"
// @Success 200 {object} map[string]interface{} "Activity deleted successfully"
// @Failure 403 {object} map[string]interface{} "Only the creator can delete"
// @Failure 404 {object} map[string]interface{} "Activity not found"
// @Router /activities/{activityId}/delete [delete]
func (ac *ActivityController) DeleteActivity(c *gin.Context) {
	if err := ac.participation.Delete(c.Param("activityId"), currentUserID(c)); err != nil {
		respondServiceError(c, "Failed to delete activity", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Activity deleted successfully",
		"data":    nil,
	})
}
