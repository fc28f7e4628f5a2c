package api

import (
	"slices"
	"strings"

	"github.com/example/ecommerce-api/modules/users"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store user claims in the Fiber context.
	UserContextKey = "user"
)

// PublicRoute lets requests under Prefix through without a token. An empty
// Methods list allows every method.
type PublicRoute struct {
	Prefix  string
	Methods []string
}

func (r PublicRoute) matches(method, path string) bool {
	if path != r.Prefix && !strings.HasPrefix(path, strings.TrimRight(r.Prefix, "/")+"/") {
		return false
	}
	return len(r.Methods) == 0 || slices.Contains(r.Methods, method)
}

// PublicRoutes is the storefront allow-list: catalog and image reads, order
// placement, and the account entry points.
func PublicRoutes(apiPrefix string) []PublicRoute {
	read := []string{fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions}
	return []PublicRoute{
		{Prefix: "/health"},
		{Prefix: "/public/uploads", Methods: read},
		{Prefix: apiPrefix + "/products", Methods: read},
		{Prefix: apiPrefix + "/categories", Methods: read},
		{Prefix: apiPrefix + "/orders", Methods: []string{fiber.MethodPost, fiber.MethodOptions}},
		{Prefix: apiPrefix + "/users/login"},
		{Prefix: apiPrefix + "/users/register"},
		{Prefix: apiPrefix + "/users/refresh"},
	}
}

// AuthMiddleware validates the Bearer token on every request outside the
// public routes. Only administrator tokens are accepted there.
func AuthMiddleware(authAdapter users.AuthPort, public []PublicRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		method, path := c.Method(), c.Path()
		for _, r := range public {
			if r.matches(method, path) {
				return c.Next()
			}
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Token is required",
			})
		}

		claims, err := authAdapter.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
		}

		if !claims.IsAdmin {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Administrator access is required",
			})
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}
