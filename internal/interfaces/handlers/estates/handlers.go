package estates

import (
	"errors"

	estatessvc "estates-backend/internal/application/estates"
	"estates-backend/internal/application/filters"
	"estates-backend/internal/application/pagination"
	"estates-backend/internal/domain"
	"estates-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves the public catalog.
type Handlers struct {
	Service        *estatessvc.Service
	WhatsAppNumber string
}

// PaginationView is the page control sent with every listing page.
type PaginationView struct {
	Page        int               `json:"page"`
	PageSize    int               `json:"pageSize"`
	TotalItems  int               `json:"totalItems"`
	TotalPages  int               `json:"totalPages"`
	HasPrevious bool              `json:"hasPrevious"`
	HasNext     bool              `json:"hasNext"`
	Links       []pagination.Link `json:"links"`
}

func NewPaginationView(p pagination.Page[domain.PropertyListing], links []pagination.Link) PaginationView {
	if links == nil {
		links = []pagination.Link{}
	}
	return PaginationView{
		Page:        p.Page,
		PageSize:    p.PageSize,
		TotalItems:  p.TotalItems,
		TotalPages:  p.TotalPages,
		HasPrevious: p.HasPrevious(),
		HasNext:     p.HasNext(),
		Links:       links,
	}
}

// List GET /api/v1/estates?transactionType=&city=&...&page=&pageSize=
func (h *Handlers) List(c *fiber.Ctx) error {
	var spec filters.Spec
	if err := c.QueryParser(&spec); err != nil {
		return response.Error(c, "Invalid query", fiber.StatusBadRequest, nil)
	}
	res := h.Service.Search(c.UserContext(), spec, c.QueryInt("page", 1), c.QueryInt("pageSize", 0))

	return response.Success(c, "Estates fetched successfully", fiber.Map{
		"estates":    estatessvc.NewViews(res.Page.Items),
		"stats":      res.Stats,
		"pagination": NewPaginationView(res.Page, res.Links),
	}, response.Meta{
		"source":   res.Source,
		"filtered": res.Filtered,
		"filter":   res.Filter,
	}.WithWarning(res.Warning))
}

// Get GET /api/v1/estates/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	l, source, err := h.Service.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, estatessvc.ErrListingNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return err
	}
	return response.Success(c, "Estate fetched successfully", estatessvc.NewView(l), response.Meta{"source": source})
}

// WhatsApp GET /api/v1/estates/:id/whatsapp
func (h *Handlers) WhatsApp(c *fiber.Ctx) error {
	l, _, err := h.Service.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, estatessvc.ErrListingNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return err
	}
	return response.Success(c, "WhatsApp link generated", fiber.Map{
		"url":          estatessvc.WhatsAppLink(l, h.WhatsAppNumber),
		"propertyCode": l.PropertyCode,
	}, nil)
}
