package api

import (
	"net/http"

	"waterbilling/internal/service"

	"github.com/gin-gonic/gin"
)

// listComplaints returns all complaints, newest first
func (h *Handler) listComplaints(c *gin.Context) {
	complaints, err := h.complaints.ListComplaints(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to fetch complaints."})
		return
	}
	if len(complaints) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No complaints found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": complaints})
}

// getComplaint returns a single complaint
func (h *Handler) getComplaint(c *gin.Context) {
	complaint, err := h.complaints.GetComplaint(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found."})
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// createComplaint files a new complaint
func (h *Handler) createComplaint(c *gin.Context) {
	var req service.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to create complaint. Data is incomplete."})
		return
	}

	if _, err := h.complaints.CreateComplaint(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to create complaint."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Complaint was created."})
}

// updateComplaint updates an existing complaint
func (h *Handler) updateComplaint(c *gin.Context) {
	var req service.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to update complaint. Data is incomplete."})
		return
	}

	if _, err := h.complaints.UpdateComplaint(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to update complaint."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Complaint was updated."})
}

// deleteComplaint deletes a complaint
func (h *Handler) deleteComplaint(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to delete complaint. Data is incomplete."})
		return
	}

	if err := h.complaints.DeleteComplaint(c.Request.Context(), req.ID); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to delete complaint."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Complaint was deleted."})
}

// listUsers returns all user records
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to fetch users."})
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No users found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": users})
}

// getUser returns a single user record
func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}
	c.JSON(http.StatusOK, user)
}

// createUser creates a new user record
func (h *Handler) createUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to create user. Data is incomplete."})
		return
	}

	if _, err := h.users.CreateUser(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to create user."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User was created."})
}

// updateUser updates an existing user record
func (h *Handler) updateUser(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to update user. Data is incomplete."})
		return
	}

	if _, err := h.users.UpdateUser(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to update user."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User was updated."})
}

// deleteUser deletes a user record
func (h *Handler) deleteUser(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to delete user. Data is incomplete."})
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), req.ID); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to delete user."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User was deleted."})
}
