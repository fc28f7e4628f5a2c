package api

import (
	"errors"
	"fmt"

	"github.com/example/ecommerce-api/modules/order"
	"github.com/example/ecommerce-api/modules/users"
	"github.com/gofiber/fiber/v2"
)

// ListOrders handles GET /orders[?users=<id>].
func (h *Handlers) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListOrders(c.UserContext(), c.Query("users"))
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// GetOrder handles GET /orders/:id.
func (h *Handlers) GetOrder(c *fiber.Ctx) error {
	o, err := h.orders.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(o)
}

// CreateOrder handles POST /orders. The owning user must exist and every
// referenced product must resolve, otherwise nothing is stored.
func (h *Handlers) CreateOrder(c *fiber.Ctx) error {
	var in order.CreateOrderInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest("Invalid request body")
	}

	if in.UserID != "" {
		if _, err := h.auth.GetUser(c.UserContext(), in.UserID); err != nil {
			if errors.Is(err, users.ErrUserNotFound) {
				return badRequest(fmt.Sprintf("Invalid User: %s", in.UserID))
			}
			return err
		}
	}

	o, err := h.orders.CreateOrder(c.UserContext(), in)
	if err != nil {
		return invalidProduct(err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// UpdateOrderStatus handles PUT /orders/:id. Only the status changes.
func (h *Handlers) UpdateOrderStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("Invalid request body")
	}

	o, err := h.orders.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(o)
}

// DeleteOrder handles DELETE /orders/:id.
func (h *Handlers) DeleteOrder(c *fiber.Ctx) error {
	if err := h.orders.DeleteOrder(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(DeleteResponse{Success: true, Message: "The order is deleted successfully"})
}

// TotalSales handles GET /orders/get/sales.
func (h *Handlers) TotalSales(c *fiber.Ctx) error {
	sales, err := h.orders.TotalSales(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(SalesResponse{Sales: sales})
}

// CountOrders handles GET /orders/get/count.
func (h *Handlers) CountOrders(c *fiber.Ctx) error {
	n, err := h.orders.CountOrders(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(OrderCountResponse{Count: n})
}

// UserOrders handles GET /orders/get/user/:userid.
func (h *Handlers) UserOrders(c *fiber.Ctx) error {
	orders, err := h.orders.OrdersByUser(c.UserContext(), c.Params("userid"))
	if err != nil {
		return err
	}
	return c.JSON(orders)
}
