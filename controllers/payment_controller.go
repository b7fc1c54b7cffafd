package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhanvanth-dev/sparkle-shop-manager/models"
	"github.com/dhanvanth-dev/sparkle-shop-manager/services"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// @Summary Create payment order
// @Description Create a pending order and a gateway order handle for checkout
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param order body models.CreateOrderRequest true "Order"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /payments/orders [post]
func (ctrl *PaymentController) CreateOrder(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request",
			Error:   err.Error(),
		})
		return
	}

	resp, err := ctrl.payments.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to create order",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order created",
		Data:    resp,
	})
}

// @Summary Verify payment
// @Description Verify the gateway callback signature and mark the order paid
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payment body models.VerifyPaymentRequest true "Gateway callback payload"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /payments/verify [post]
func (ctrl *PaymentController) VerifyPayment(c *gin.Context) {
	userID := c.GetInt("user_id")
	userEmail := c.GetString("user_email")

	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request",
			Error:   err.Error(),
		})
		return
	}

	order, err := ctrl.payments.VerifyPayment(c.Request.Context(), userID, userEmail, req)
	if err != nil {
		ctrl.writePaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Payment verified",
		Data: gin.H{
			"order_id":   order.ID,
			"payment_id": order.PaymentID,
			"status":     order.Status,
		},
	})
}

// @Summary Mark payment failed
// @Description Record a declined or cancelled gateway payment against the order
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /payments/orders/{id}/fail [post]
func (ctrl *PaymentController) MarkOrderFailed(c *gin.Context) {
	userID := c.GetInt("user_id")

	if err := ctrl.payments.MarkOrderFailed(c.Request.Context(), userID, c.Param("id")); err != nil {
		ctrl.writePaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order marked as failed",
	})
}

func (ctrl *PaymentController) writePaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid signature",
		})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Order not found",
		})
	case errors.Is(err, services.ErrNotOrderOwner):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Success: false,
			Message: "Unauthorized access to this order",
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Payment processing failed",
			Error:   err.Error(),
		})
	}
}
