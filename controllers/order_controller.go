package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dhanvanth-dev/sparkle-shop-manager/models"
	"github.com/dhanvanth-dev/sparkle-shop-manager/repositories"
	"github.com/dhanvanth-dev/sparkle-shop-manager/services"
)

type OrderController struct {
	payments  *services.PaymentService
	orderRepo *repositories.OrderRepository
}

func NewOrderController(payments *services.PaymentService, orderRepo *repositories.OrderRepository) *OrderController {
	return &OrderController{payments: payments, orderRepo: orderRepo}
}

// @Summary List my orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /orders [get]
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	userID := c.GetInt("user_id")
	orders := ctrl.payments.ListOrders(c.Request.Context(), userID)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Orders retrieved",
		Data:    orders,
	})
}

// @Summary Get one of my orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetMyOrder(c *gin.Context) {
	userID := c.GetInt("user_id")

	order, err := ctrl.payments.GetOrder(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		// Ownership mismatches read as not-found to the caller.
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order retrieved",
		Data:    order,
	})
}

// @Summary List all orders
// @Description Paginated order listing with status filter (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param status query string false "Filter by status"
// @Success 200 {object} models.PaginationResponse
// @Router /admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	status := c.Query("status")

	orders, total, err := ctrl.orderRepo.ListAll(c.Request.Context(), status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to list orders",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved",
		Data:    orders,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}
