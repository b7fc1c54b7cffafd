package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dhanvanth-dev/sparkle-shop-manager/models"
	"github.com/dhanvanth-dev/sparkle-shop-manager/repositories"
	"github.com/dhanvanth-dev/sparkle-shop-manager/services"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// @Summary Get cart
// @Description List the caller's cart items with product data
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.GetInt("user_id")
	items := ctrl.cart.GetCartItems(c.Request.Context(), userID)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved",
		Data:    items,
	})
}

// @Summary Add to cart
// @Description Add a product to the cart; adding it again increments the quantity
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param item body models.AddToCartRequest true "Product"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request",
			Error:   err.Error(),
		})
		return
	}

	item, err := ctrl.cart.AddToCart(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to add to cart",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Added to cart",
		Data:    item,
	})
}

// @Summary Update cart item quantity
// @Description Set the quantity of a cart item; below 1 removes it
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Cart item ID"
// @Param item body models.UpdateCartItemRequest true "Quantity"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{id} [patch]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	userID := c.GetInt("user_id")
	itemID, _ := strconv.Atoi(c.Param("id"))

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request",
			Error:   err.Error(),
		})
		return
	}

	err := ctrl.cart.UpdateQuantity(c.Request.Context(), userID, itemID, req.Quantity)
	if err != nil {
		ctrl.writeCartError(c, err, "Failed to update quantity")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart updated",
	})
}

// @Summary Remove cart item
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{id} [delete]
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	userID := c.GetInt("user_id")
	itemID, _ := strconv.Atoi(c.Param("id"))

	if err := ctrl.cart.RemoveFromCart(c.Request.Context(), userID, itemID); err != nil {
		ctrl.writeCartError(c, err, "Failed to remove cart item")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Removed from cart",
	})
}

// @Summary Clear cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	if err := ctrl.cart.ClearCart(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to clear cart",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart cleared",
	})
}

// @Summary Move cart item to saved items
// @Description Move a cart item onto the saved-for-later shelf in one step
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{id}/save [post]
func (ctrl *CartController) MoveToSaved(c *gin.Context) {
	userID := c.GetInt("user_id")
	itemID, _ := strconv.Atoi(c.Param("id"))

	if err := ctrl.cart.MoveToSaved(c.Request.Context(), userID, itemID); err != nil {
		ctrl.writeCartError(c, err, "Failed to move item")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item saved for later",
	})
}

// @Summary Get saved items
// @Tags Saved Items
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /saved [get]
func (ctrl *CartController) GetSavedItems(c *gin.Context) {
	userID := c.GetInt("user_id")
	items := ctrl.cart.GetSavedItems(c.Request.Context(), userID)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Saved items retrieved",
		Data:    items,
	})
}

// @Summary Save item for later
// @Description Save a product; saving it again is a no-op
// @Tags Saved Items
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param item body models.SaveItemRequest true "Product"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /saved [post]
func (ctrl *CartController) SaveItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.SaveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request",
			Error:   err.Error(),
		})
		return
	}

	alreadySaved, err := ctrl.cart.SaveItem(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to save item",
			Error:   err.Error(),
		})
		return
	}

	message := "Item saved for later"
	if alreadySaved {
		message = "Item already saved"
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
	})
}

// @Summary Remove saved item
// @Tags Saved Items
// @Security BearerAuth
// @Produce json
// @Param id path int true "Saved item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /saved/{id} [delete]
func (ctrl *CartController) RemoveSavedItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	itemID, _ := strconv.Atoi(c.Param("id"))

	if err := ctrl.cart.RemoveSavedItem(c.Request.Context(), userID, itemID); err != nil {
		ctrl.writeCartError(c, err, "Failed to remove saved item")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Saved item removed",
	})
}

// @Summary Move saved item to cart
// @Description Move a saved item into the cart in one step
// @Tags Saved Items
// @Security BearerAuth
// @Produce json
// @Param id path int true "Saved item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /saved/{id}/move-to-cart [post]
func (ctrl *CartController) MoveToCart(c *gin.Context) {
	userID := c.GetInt("user_id")
	itemID, _ := strconv.Atoi(c.Param("id"))

	if err := ctrl.cart.MoveToCart(c.Request.Context(), userID, itemID); err != nil {
		ctrl.writeCartError(c, err, "Failed to move item")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item moved to cart",
	})
}

func (ctrl *CartController) writeCartError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Item not found",
		})
	case errors.Is(err, services.ErrQuantityLimit):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Quantity limit reached",
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: fallback,
			Error:   err.Error(),
		})
	}
}
