package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/item-service/internal/model"
	"github.com/shinyyama/item-service/internal/service"
	"go.uber.org/zap"
)

type ItemHandler struct {
	svc service.ItemService
	log *zap.Logger
}

func NewItemHandler(svc service.ItemService, log *zap.Logger) *ItemHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ItemHandler{svc: svc, log: log}
}

type ItemResponse struct {
	ID          string  `json:"id"`
	Item        string  `json:"item"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type CreateItemRequest struct {
	Item        string  `json:"item"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// UpdateItemRequest is a partial update: absent fields keep their value.
type UpdateItemRequest struct {
	Item        *string  `json:"item"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

func (h *ItemHandler) List(c echo.Context) error {
	return respond(c, h.list(c))
}

func (h *ItemHandler) list(c echo.Context) result {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return failure(c, h.log, err, msgItemNotFound, "Error fetching items")
	}
	resp := make([]ItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toItemResponse(&items[i]))
	}
	return success(http.StatusOK, resp)
}

func (h *ItemHandler) Create(c echo.Context) error {
	return respond(c, h.create(c))
}

func (h *ItemHandler) create(c echo.Context) result {
	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return bindFailure(err)
	}
	return h.store(c, req)
}

func (h *ItemHandler) store(c echo.Context, req CreateItemRequest) result {
	item, err := h.svc.Create(c.Request().Context(), req.Item, req.Description, req.Price)
	if err != nil {
		return failure(c, h.log, err, msgItemNotFound, "Error creating item")
	}
	return success(http.StatusCreated, toItemResponse(item))
}

func (h *ItemHandler) Get(c echo.Context) error {
	return respond(c, h.get(c, c.Param("id")))
}

func (h *ItemHandler) get(c echo.Context, id string) result {
	item, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return failure(c, h.log, err, msgItemNotFound, "error occurred on server")
	}
	return success(http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) Update(c echo.Context) error {
	return respond(c, h.update(c))
}

func (h *ItemHandler) update(c echo.Context) result {
	var req UpdateItemRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return bindFailure(err)
	}
	patch := model.ItemPatch{Item: req.Item, Description: req.Description, Price: req.Price}
	item, err := h.svc.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return failure(c, h.log, err, msgUpdateNotFound, "failed to update item")
	}
	return success(http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) Delete(c echo.Context) error {
	return respond(c, h.delete(c))
}

func (h *ItemHandler) delete(c echo.Context) result {
	item, err := h.svc.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failure(c, h.log, err, msgDeleteNotFound, "failed to delete item")
	}
	return success(http.StatusOK, toItemResponse(item))
}

func toItemResponse(item *model.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Item:        item.Item,
		Description: item.Description,
		Price:       item.Price,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.Format(time.RFC3339),
	}
}
