package handlers

import (
	"bytes"
	"errors"
	"io"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/dto"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/identity"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/services"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BuyerHandler struct {
	buyers *services.BuyerService
	csv    *services.CSVService
}

func NewBuyerHandler(buyers *services.BuyerService, csv *services.CSVService) *BuyerHandler {
	return &BuyerHandler{buyers: buyers, csv: csv}
}

func (h *BuyerHandler) List(c *fiber.Ctx) error {
	caller, ok := identity.FromCtx(c)
	if !ok {
		return unauthorized(c)
	}

	resp, err := h.buyers.List(caller.ID, parseFilter(c))
	if err != nil {
		return internalError(c, "buyers.list", err)
	}
	return c.JSON(resp)
}

func (h *BuyerHandler) Get(c *fiber.Ctx) error {
	caller, ok := identity.FromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	buyerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c)
	}

	buyer, err := h.buyers.Get(caller.ID, buyerID)
	if err != nil {
		if errors.Is(err, services.ErrBuyerNotFound) {
			return notFound(c)
		}
		return internalError(c, "buyers.get", err)
	}
	return c.JSON(buyer)
}

func (h *BuyerHandler) Create(c *fiber.Ctx) error {
	caller, ok := identity.FromCtx(c)
	if !ok {
		return unauthorized(c)
	}

	var in validation.BuyerInput
	if err := c.BodyParser(&in); err != nil {
		return bodyError(c, err)
	}
	in, err := validation.ValidateCreate(in)
	if err != nil {
		if handled, resp := validationFailed(c, err); handled {
			return resp
		}
		return internalError(c, "buyers.create", err)
	}

	buyer, err := h.buyers.Create(caller.ID, in)
	if err != nil {
		return internalError(c, "buyers.create", err)
	}
	metrics.RecordMutation("create")
	return c.Status(fiber.StatusCreated).JSON(buyer)
}

func (h *BuyerHandler) Update(c *fiber.Ctx) error {
	caller, ok := identity.FromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	buyerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c)
	}

	var in validation.BuyerUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return bodyError(c, err)
	}
	if err := validation.ValidateUpdate(in); err != nil {
		if handled, resp := validationFailed(c, err); handled {
			return resp
		}
		return internalError(c, "buyers.update", err)
	}

	// Nothing to write; answer with the current record.
	if in.Empty() {
		return h.Get(c)
	}

	buyer, err := h.buyers.Update(caller.ID, buyerID, in)
	if err != nil {
		if errors.Is(err, services.ErrBuyerNotFound) {
			return notFound(c)
		}
		return internalError(c, "buyers.update", err)
	}
	metrics.RecordMutation("update")
	return c.JSON(buyer)
}

func (h *BuyerHandler) Delete(c *fiber.Ctx) error {
	caller, ok := identity.FromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	buyerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c)
	}

	if err := h.buyers.Delete(caller.ID, buyerID); err != nil {
		if errors.Is(err, services.ErrBuyerNotFound) {
			return notFound(c)
		}
		return internalError(c, "buyers.delete", err)
	}
	metrics.RecordMutation("delete")
	return c.JSON(dto.MessageResponse{Message: "Buyer deleted successfully"})
}

func (h *BuyerHandler) History(c *fiber.Ctx) error {
	caller, ok := identity.FromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	buyerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c)
	}

	entries, err := h.buyers.History(caller.ID, buyerID)
	if err != nil {
		if errors.Is(err, services.ErrBuyerNotFound) {
			return notFound(c)
		}
		return internalError(c, "buyers.history", err)
	}
	return c.JSON(dto.BuyerHistoryResponse{History: entries})
}

// Import accepts a multipart upload in the "file" field or a raw CSV body.
func (h *BuyerHandler) Import(c *fiber.Ctx) error {
	caller, ok := identity.FromCtx(c)
	if !ok {
		return unauthorized(c)
	}

	var src io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return badRequest(c, "Could not read uploaded file")
		}
		defer f.Close()
		src = f
	} else {
		src = bytes.NewReader(c.Body())
	}

	result, err := h.csv.Import(caller.ID, src)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCSV),
			errors.Is(err, services.ErrTooManyRows),
			errors.Is(err, services.ErrMalformedCSV):
			return badRequest(c, err.Error())
		}
		if handled, resp := validationFailed(c, err); handled {
			return resp
		}
		return internalError(c, "buyers.import", err)
	}

	metrics.RecordImport(result.Imported, len(result.Errors))
	return c.JSON(result)
}

func (h *BuyerHandler) Export(c *fiber.Ctx) error {
	caller, ok := identity.FromCtx(c)
	if !ok {
		return unauthorized(c)
	}

	var buf bytes.Buffer
	if err := h.csv.Export(caller.ID, parseFilter(c), &buf); err != nil {
		return internalError(c, "buyers.export", err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="buyers.csv"`)
	return c.Send(buf.Bytes())
}

func parseFilter(c *fiber.Ctx) dto.BuyerFilter {
	return dto.BuyerFilter{
		Page:         c.QueryInt("page", 1),
		Limit:        c.QueryInt("limit", 0),
		Search:       c.Query("search"),
		Status:       c.Query("status"),
		City:         c.Query("city"),
		PropertyType: c.Query("propertyType"),
	}
}

// bodyError maps a decode failure to a field error when the JSON was well
// formed but carried the wrong type.
func bodyError(c *fiber.Ctx, err error) error {
	if verr, ok := validation.FromDecodeError(err); ok {
		_, resp := validationFailed(c, verr)
		return resp
	}
	return badRequest(c, "Invalid request body")
}
