package handler

import "github.com/labstack/echo/v4"

// DemoItem is the fixture inserted by GET /new-items.
var DemoItem = CreateItemRequest{
	Item:        "pants",
	Description: "new cargo pants in stock",
	Price:       36,
}

// DemoHandler serves the fixture routes: a fixed payload to create and a
// fixed id to fetch.
type DemoHandler struct {
	items  *ItemHandler
	itemID string
}

func NewDemoHandler(items *ItemHandler, itemID string) *DemoHandler {
	return &DemoHandler{items: items, itemID: itemID}
}

func (h *DemoHandler) CreateItem(c echo.Context) error {
	return respond(c, h.items.store(c, DemoItem))
}

func (h *DemoHandler) GetItem(c echo.Context) error {
	return respond(c, h.items.get(c, h.itemID))
}
