package api

import (
	"errors"
	"net/http"

	"waterbilling/internal/service"

	"github.com/gin-gonic/gin"
)

// listBills returns all bills, newest issue date first
func (h *Handler) listBills(c *gin.Context) {
	bills, err := h.billing.ListBills(c.Request.Context())
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

// getBill returns a single bill
func (h *Handler) getBill(c *gin.Context) {
	bill, err := h.billing.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Bill not found."})
		return
	}
	c.JSON(http.StatusOK, bill)
}

// createBill generates a new bill
func (h *Handler) createBill(c *gin.Context) {
	var req service.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to create bill. Data is incomplete."})
		return
	}

	if _, err := h.billing.CreateBill(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to create bill."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Bill was created."})
}

// updateBill updates an existing bill
func (h *Handler) updateBill(c *gin.Context) {
	var req service.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to update bill. Data is incomplete."})
		return
	}

	if _, err := h.billing.UpdateBill(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to update bill."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bill was updated."})
}

// deleteBill deletes a bill
func (h *Handler) deleteBill(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to delete bill. Data is incomplete."})
		return
	}

	if err := h.billing.DeleteBill(c.Request.Context(), req.ID); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to delete bill."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bill was deleted."})
}

// listPayments returns all payments, newest first
func (h *Handler) listPayments(c *gin.Context) {
	payments, err := h.payments.ListPayments(c.Request.Context())
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

// getPayment returns a single payment
func (h *Handler) getPayment(c *gin.Context) {
	payment, err := h.payments.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found."})
		return
	}
	c.JSON(http.StatusOK, payment)
}

// createPayment records a new payment and runs settlement when completed
func (h *Handler) createPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to create payment. Data is incomplete."})
		return
	}

	if _, err := h.payments.RecordPayment(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrDuplicateTransactionRef) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to create payment. Duplicate transaction reference."})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to create payment."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Payment was created."})
}

// updatePayment updates an existing payment
func (h *Handler) updatePayment(c *gin.Context) {
	var req service.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to update payment. Data is incomplete."})
		return
	}

	if _, err := h.payments.UpdatePayment(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to update payment."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment was updated."})
}

// deletePayment deletes a payment
func (h *Handler) deletePayment(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to delete payment. Data is incomplete."})
		return
	}

	if err := h.payments.DeletePayment(c.Request.Context(), req.ID); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Unable to delete payment."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment was deleted."})
}
