package api

import (
	"log"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/example/ecommerce-api/domain/errs"
	"github.com/example/ecommerce-api/modules/catalog"
	"github.com/example/ecommerce-api/modules/media"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ListProducts handles GET /products[?categories=a,b].
func (h *Handlers) ListProducts(c *fiber.Ctx) error {
	var categoryIDs []string
	if raw := c.Query("categories"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				categoryIDs = append(categoryIDs, id)
			}
		}
	}

	products, err := h.catalog.ListProducts(c.UserContext(), categoryIDs)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// GetProduct handles GET /products/:id.
func (h *Handlers) GetProduct(c *fiber.Ctx) error {
	p, err := h.catalog.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// CreateProduct handles POST /products (multipart, image in field "image").
func (h *Handlers) CreateProduct(c *fiber.Ctx) error {
	in, err := productForm(c)
	if err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}

	fh := formFile(c, "image")
	if fh == nil {
		return catalog.ErrImageRequired
	}
	img, err := h.saveImage(c, fh)
	if err != nil {
		return err
	}
	in.Image = img.URL

	p, err := h.catalog.CreateProduct(c.UserContext(), in)
	if err != nil {
		_ = h.media.Delete(c.UserContext(), img.Key)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// UpdateProduct handles PUT /products/:id. Without a new image the current
// one is kept; a replaced image is removed from storage once the update is
// saved.
func (h *Handlers) UpdateProduct(c *fiber.Ctx) error {
	in, err := productForm(c)
	if err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}

	var (
		img      *media.StoredImage
		previous string
	)
	if fh := formFile(c, "image"); fh != nil {
		current, err := h.catalog.GetProduct(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		previous = current.Image
		if img, err = h.saveImage(c, fh); err != nil {
			return err
		}
		in.Image = img.URL
	}

	p, err := h.catalog.UpdateProduct(c.UserContext(), c.Params("id"), in)
	if err != nil {
		if img != nil {
			_ = h.media.Delete(c.UserContext(), img.Key)
		}
		return err
	}
	if img != nil && previous != img.URL {
		h.discardImages(c, previous)
	}
	return c.JSON(p)
}

// UpdateGallery handles PUT /products/gallery/:id (files in field "gallery").
func (h *Handlers) UpdateGallery(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.catalog.GetProduct(c.UserContext(), id); err != nil {
		return err
	}

	var uploads []media.Upload
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["gallery"] {
			up, err := readUpload(fh)
			if err != nil {
				return err
			}
			uploads = append(uploads, up)
		}
	}

	stored, err := h.media.SaveGallery(c.UserContext(), uploads)
	if err != nil {
		return err
	}
	urls := make([]string, len(stored))
	for i, img := range stored {
		urls[i] = img.URL
	}

	p, err := h.catalog.SetGallery(c.UserContext(), id, urls)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// DeleteProduct handles DELETE /products/:id. The product's stored images go
// with it.
func (h *Handlers) DeleteProduct(c *fiber.Ctx) error {
	p, err := h.catalog.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteProduct(c.UserContext(), p.ID); err != nil {
		return err
	}
	h.discardImages(c, append([]string{p.Image}, p.Gallery...)...)
	return c.JSON(DeleteResponse{Success: true, Message: "The product is deleted successfully"})
}

// CountProducts handles GET /products/get/count.
func (h *Handlers) CountProducts(c *fiber.Ctx) error {
	n, err := h.catalog.CountProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(ProductCountResponse{Count: n})
}

// FeaturedProducts handles GET /products/get/featured[/:count]. Without a
// count the list is wrapped in an object.
func (h *Handlers) FeaturedProducts(c *fiber.Ctx) error {
	limit, err := countParam(c)
	if err != nil {
		return err
	}
	products, err := h.catalog.FeaturedProducts(c.UserContext(), limit)
	if err != nil {
		return err
	}
	if c.Params("count") == "" {
		return c.JSON(fiber.Map{"Featured products": products})
	}
	return c.JSON(products)
}

// HotDealProducts handles GET /products/get/hotdeal[/:count].
func (h *Handlers) HotDealProducts(c *fiber.Ctx) error {
	limit, err := countParam(c)
	if err != nil {
		return err
	}
	products, err := h.catalog.HotDealProducts(c.UserContext(), limit)
	if err != nil {
		return err
	}
	if c.Params("count") == "" {
		return c.JSON(fiber.Map{"Hot deal products": products})
	}
	return c.JSON(products)
}

// discardImages removes stored images by public URL. URLs that do not point
// into the media bucket are skipped; failures only cost storage space.
func (h *Handlers) discardImages(c *fiber.Ctx, urls ...string) {
	if h.media == nil {
		return
	}
	for _, u := range urls {
		key, ok := h.media.KeyFromURL(u)
		if !ok {
			continue
		}
		if err := h.media.Delete(c.UserContext(), key); err != nil {
			log.Printf("[api] Failed to remove image %s: %v", key, err)
		}
	}
}

func (h *Handlers) saveImage(c *fiber.Ctx, fh *multipart.FileHeader) (*media.StoredImage, error) {
	up, err := readUpload(fh)
	if err != nil {
		return nil, err
	}
	return h.media.SaveImage(c.UserContext(), up)
}

func countParam(c *fiber.Ctx) (int, error) {
	raw := c.Params("count")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errs.NewValidationError("count", "must be a non-negative integer")
	}
	return n, nil
}

// productForm reads the product fields from a multipart or urlencoded body.
func productForm(c *fiber.Ctx) (catalog.ProductInput, error) {
	in := catalog.ProductInput{
		Name:             c.FormValue("name"),
		ShortDescription: c.FormValue("short_description"),
		LongDescription:  c.FormValue("long_description"),
		Brand:            c.FormValue("brand"),
		CategoryID:       c.FormValue("category"),
	}

	var err error
	if in.Price, err = formDecimal(c, "price"); err != nil {
		return in, err
	}
	if in.CountInStock, err = formInt(c, "countInStock"); err != nil {
		return in, err
	}
	if in.NumberOfReviews, err = formInt(c, "numberOfReviews"); err != nil {
		return in, err
	}
	if in.Rating, err = formFloat(c, "rating"); err != nil {
		return in, err
	}
	if in.Discounts, err = formFloat(c, "discounts"); err != nil {
		return in, err
	}
	if in.IsFeatured, err = formBool(c, "isFeatured"); err != nil {
		return in, err
	}
	if in.IsHotDeals, err = formBool(c, "isHotDeals"); err != nil {
		return in, err
	}
	if raw := c.FormValue("dateCreated"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return in, errs.NewValidationError("dateCreated", "must be an RFC 3339 timestamp")
		}
		in.DateCreated = &t
	}
	return in, nil
}

func formDecimal(c *fiber.Ctx, field string) (decimal.Decimal, error) {
	raw := c.FormValue(field)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errs.NewValidationError(field, "must be a number")
	}
	return d, nil
}

func formInt(c *fiber.Ctx, field string) (int, error) {
	raw := c.FormValue(field)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValidationError(field, "must be an integer")
	}
	return n, nil
}

func formFloat(c *fiber.Ctx, field string) (float64, error) {
	raw := c.FormValue(field)
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.NewValidationError(field, "must be a number")
	}
	return f, nil
}

func formBool(c *fiber.Ctx, field string) (bool, error) {
	raw := c.FormValue(field)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errs.NewValidationError(field, "must be true or false")
	}
	return b, nil
}
