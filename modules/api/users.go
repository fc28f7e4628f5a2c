package api

import (
	"github.com/example/ecommerce-api/modules/users"
	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /users. Password hashes never leave the service.
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	list, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetUser handles GET /users/:id.
func (h *Handlers) GetUser(c *fiber.Ctx) error {
	u, err := h.users.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// CreateUser handles POST /users, the administrator path that may grant
// admin rights.
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	var in users.UserInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest("Invalid request body")
	}
	u, err := h.users.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

// Register handles POST /users/register.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var in users.UserInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest("Invalid request body")
	}
	u, err := h.users.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

// UpdateUser handles PUT /users/:id.
func (h *Handlers) UpdateUser(c *fiber.Ctx) error {
	var in users.UserInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest("Invalid request body")
	}
	u, err := h.users.UpdateUser(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// DeleteUser handles DELETE /users/:id.
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(DeleteResponse{Success: true, Message: "The user is deleted successfully"})
}

// CountUsers handles GET /users/get/count.
func (h *Handlers) CountUsers(c *fiber.Ctx) error {
	n, err := h.users.CountUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(UserCountResponse{Count: n})
}

// Login handles POST /users/login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest("Email and password are required")
	}

	u, tokens, err := h.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(LoginResponse{
		Email:        u.Email,
		Token:        tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	})
}

// Refresh handles POST /users/refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if req.RefreshToken == "" {
		return badRequest("Refresh token is required")
	}

	tokens, err := h.users.RefreshTokens(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		TokenType:    tokens.TokenType,
	})
}
