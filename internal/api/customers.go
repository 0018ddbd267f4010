package api

import (
	"net/http"

	"waterbilling/internal/service"

	"github.com/gin-gonic/gin"
)

// listCustomers returns all customers ordered by name
func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.customers.ListCustomers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to fetch customers."})
		return
	}
	if len(customers) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No customers found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": customers})
}

// searchCustomers searches customers by name, phone or ID
func (h *Handler) searchCustomers(c *gin.Context) {
	customers, err := h.customers.SearchCustomers(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to fetch customers."})
		return
	}
	if len(customers) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No customers found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": customers})
}

// getCustomer returns a single customer
func (h *Handler) getCustomer(c *gin.Context) {
	customer, err := h.customers.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found."})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// getCustomerSummary returns a customer with their bills, payments and readings
func (h *Handler) getCustomerSummary(c *gin.Context) {
	summary, err := h.customers.GetCustomerSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found."})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getCustomerBills returns bills for a customer
func (h *Handler) getCustomerBills(c *gin.Context) {
	bills, err := h.billing.GetCustomerBills(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to fetch bills."})
		return
	}
	if len(bills) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No bills found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": bills})
}

// getCustomerPayments returns payments for a customer
func (h *Handler) getCustomerPayments(c *gin.Context) {
	payments, err := h.payments.GetCustomerPayments(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to fetch payments."})
		return
	}
	if len(payments) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No payments found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": payments})
}

// getCustomerReadings returns meter readings for a customer
func (h *Handler) getCustomerReadings(c *gin.Context) {
	readings, err := h.readings.GetCustomerReadings(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to fetch meter readings."})
		return
	}
	if len(readings) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No meter readings found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": readings})
}

// createCustomer creates a new customer
func (h *Handler) createCustomer(c *gin.Context) {
	var req service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to create customer. Data is incomplete."})
		return
	}

	if _, err := h.customers.CreateCustomer(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to create customer."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Customer was created."})
}

// updateCustomer updates an existing customer
func (h *Handler) updateCustomer(c *gin.Context) {
	var req service.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to update customer. Data is incomplete."})
		return
	}

	if _, err := h.customers.UpdateCustomer(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to update customer."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer was updated."})
}

// deleteCustomer deletes a customer
func (h *Handler) deleteCustomer(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to delete customer. Data is incomplete."})
		return
	}

	if err := h.customers.DeleteCustomer(c.Request.Context(), req.ID); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to delete customer."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer was deleted."})
}
