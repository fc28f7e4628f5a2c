package api

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/example/ecommerce-api/modules/catalog"
	"github.com/example/ecommerce-api/modules/media"
	"github.com/example/ecommerce-api/modules/notification"
	"github.com/example/ecommerce-api/modules/order"
	"github.com/example/ecommerce-api/modules/users"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
)

// HealthSource is anything that can report its health.
type HealthSource interface {
	Name() string
	Health(ctx context.Context) mono.HealthStatus
}

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	catalog *catalog.Service
	orders  *order.Service
	users   *users.UserService
	media   *media.Service
	notices *notification.Module
	auth    users.AuthPort
	health  []HealthSource
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	catalogSvc *catalog.Service,
	orderSvc *order.Service,
	userSvc *users.UserService,
	mediaSvc *media.Service,
	notices *notification.Module,
	auth users.AuthPort,
	health ...HealthSource,
) *Handlers {
	return &Handlers{
		catalog: catalogSvc,
		orders:  orderSvc,
		users:   userSvc,
		media:   mediaSvc,
		notices: notices,
		auth:    auth,
		health:  health,
	}
}

// Health reports the status of every registered component.
func (h *Handlers) Health(c *fiber.Ctx) error {
	status := "healthy"
	components := make(map[string]mono.HealthStatus, len(h.health))
	for _, s := range h.health {
		hs := s.Health(c.UserContext())
		if !hs.Healthy {
			status = "degraded"
		}
		components[s.Name()] = hs
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":     status,
		"module":     "api",
		"components": components,
	})
}

// ServeUpload streams a stored image (GET /public/uploads/*).
func (h *Handlers) ServeUpload(c *fiber.Ctx) error {
	data, contentType, err := h.media.Open(c.UserContext(), c.Params("*"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(data)
}

// Notifications lists recorded order notices (GET /notifications?user=).
func (h *Handlers) Notifications(c *fiber.Ctx) error {
	return c.JSON(h.notices.Notices(c.Query("user")))
}

// readUpload loads one multipart file into a media.Upload.
func readUpload(fh *multipart.FileHeader) (media.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return media.Upload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return media.Upload{}, err
	}
	return media.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}

// formFile returns the named upload or nil when the request carries none.
func formFile(c *fiber.Ctx, field string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}
