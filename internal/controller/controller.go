package controller

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/storehub/commerce-service/internal/dto"
	"github.com/storehub/commerce-service/internal/infrastructure/push"
	"github.com/storehub/commerce-service/internal/realtime"
	"github.com/storehub/commerce-service/internal/service"
	pkgdto "github.com/storehub/commerce-service/pkg/dto"
	"github.com/storehub/commerce-service/pkg/errs"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Controller struct {
	productService service.ProductService
	cartService    service.CartService
	hub            *realtime.Hub
}

func CreateController(e *echo.Group, productService service.ProductService, cartService service.CartService, hub *realtime.Hub) {
	c := Controller{
		productService: productService,
		cartService:    cartService,
		hub:            hub,
	}

	e.GET("/products", c.GetProducts)
	e.GET("/products/:pid", c.GetProductByID)
	e.POST("/products", c.AddProduct)
	e.PUT("/products/:pid", c.UpdateProduct)
	e.DELETE("/products/:pid", c.DeleteProduct)

	e.POST("/carts", c.CreateCart)
	e.GET("/carts/:cid", c.GetCartByID)
	e.POST("/carts/:cid/products/:pid", c.AddProductToCart)
	e.DELETE("/carts/:cid/products/:pid", c.RemoveProductFromCart)
	e.PUT("/carts/:cid", c.ReplaceCartItems)
	e.PUT("/carts/:cid/products/:pid", c.SetCartItemQuantity)
	e.DELETE("/carts/:cid", c.ClearCart)

	e.GET("/ws", c.RealtimeProducts)
}

func (c *Controller) GetProducts(e echo.Context) error {
	param := pkgdto.ProductFilter{}
	if err := e.Bind(&param); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetProducts").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrValidation, nil)
	}

	page, err := c.productService.GetProducts(e.Request().Context(), param)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", page)
}

func (c *Controller) GetProductByID(e echo.Context) error {
	product, err := c.productService.GetProductByID(e.Request().Context(), e.Param("pid"))
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", product)
}

func (c *Controller) AddProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddProduct").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrValidation, nil)
	}

	product, err := c.productService.AddProduct(e.Request().Context(), payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteCreatedResponse(e, "", product)
}

func (c *Controller) UpdateProduct(e echo.Context) error {
	payload := dto.ProductUpdateRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateProduct").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrValidation, nil)
	}

	product, err := c.productService.UpdateProduct(e.Request().Context(), e.Param("pid"), payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", product)
}

func (c *Controller) DeleteProduct(e echo.Context) error {
	err := c.productService.DeleteProduct(e.Request().Context(), e.Param("pid"))
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "product deleted", nil)
}

func (c *Controller) CreateCart(e echo.Context) error {
	cart, err := c.cartService.CreateCart(e.Request().Context())
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteCreatedResponse(e, "", cart)
}

// GetCartByID returns the canonical plain line list. Expansion into product
// summaries is opt-in through ?expand=true.
func (c *Controller) GetCartByID(e echo.Context) error {
	if e.QueryParam("expand") == "true" {
		detail, err := c.cartService.GetCartDetail(e.Request().Context(), e.Param("cid"))
		if err != nil {
			return pkgdto.WriteErrorResponse(e, err, nil)
		}

		return pkgdto.WriteSuccessResponse(e, "", detail)
	}

	cart, err := c.cartService.GetCartByID(e.Request().Context(), e.Param("cid"))
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", cart)
}

func (c *Controller) AddProductToCart(e echo.Context) error {
	payload := dto.AddCartItemRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddProductToCart").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrValidation, nil)
	}

	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	cart, err := c.cartService.AddProductToCart(e.Request().Context(), e.Param("cid"), e.Param("pid"), payload.Quantity)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", cart)
}

func (c *Controller) RemoveProductFromCart(e echo.Context) error {
	cart, err := c.cartService.RemoveProductFromCart(e.Request().Context(), e.Param("cid"), e.Param("pid"))
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", cart)
}

func (c *Controller) ReplaceCartItems(e echo.Context) error {
	payload := []dto.CartItemRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "ReplaceCartItems").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrValidation, nil)
	}

	cart, err := c.cartService.ReplaceCartItems(e.Request().Context(), e.Param("cid"), payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", cart)
}

func (c *Controller) SetCartItemQuantity(e echo.Context) error {
	payload := dto.CartQuantityRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "SetCartItemQuantity").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrValidation, nil)
	}

	cart, err := c.cartService.SetCartItemQuantity(e.Request().Context(), e.Param("cid"), e.Param("pid"), payload.Quantity)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", cart)
}

func (c *Controller) ClearCart(e echo.Context) error {
	cart, err := c.cartService.ClearCart(e.Request().Context(), e.Param("cid"))
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "cart cleared", cart)
}

// RealtimeProducts upgrades the connection and keeps the viewer registered
// until the peer goes away. The hub pushes the initial snapshot during
// Register.
func (c *Controller) RealtimeProducts(e echo.Context) error {
	conn, err := upgrader.Upgrade(e.Response(), e.Request(), nil)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "RealtimeProducts").Msg("")
		return err
	}

	viewer := push.CreateNewWebsocketViewer(conn)
	c.hub.Register(e.Request().Context(), viewer)

	defer func() {
		c.hub.Unregister(viewer)
		viewer.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
