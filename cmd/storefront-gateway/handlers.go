package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-storefront/internal/journal"
	"github.com/MikeMC777/ordenes-storefront/internal/order"
	"github.com/MikeMC777/ordenes-storefront/internal/product"
	"github.com/MikeMC777/ordenes-storefront/internal/session"
	"github.com/MikeMC777/ordenes-storefront/internal/storeapi"
)

type meFunc func(ctx context.Context) (*storeapi.Me, error)

type orderGetter interface {
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
}

const userKey = "user"

func httpError(c *gin.Context, code int, msg, reason string) {
	c.AbortWithStatusJSON(code, product.HTTPError{Error: msg, Code: reason})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httpError(c, http.StatusBadRequest, "invalid id", "")
		return 0, false
	}
	return id, true
}

// forwardToken passes the caller's bearer token on to backend calls, if any.
func forwardToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if t := session.BearerToken(c.GetHeader("Authorization")); t != "" {
			c.Request = c.Request.WithContext(storeapi.WithToken(c.Request.Context(), t))
		}
		c.Next()
	}
}

// requireUser resolves the caller with /auth/me and rejects anonymous calls.
func requireUser(me meFunc, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := session.BearerToken(c.GetHeader("Authorization"))
		u, err := session.Resolve(c.Request.Context(), me, token)
		switch {
		case errors.Is(err, session.ErrNotLoggedIn), errors.Is(err, session.ErrTokenInvalid):
			httpError(c, http.StatusUnauthorized, "login required", "unauthorized")
			return
		case err != nil:
			logger.Warn("resolve user", zap.Error(err))
			httpError(c, http.StatusBadGateway, "store backend unavailable", "backend")
			return
		}
		c.Set(userKey, u)
		c.Request = c.Request.WithContext(storeapi.WithToken(c.Request.Context(), token))
		c.Next()
	}
}

func currentUser(c *gin.Context) *session.User {
	u, _ := c.MustGet(userKey).(*session.User)
	return u
}

// listProductsHandler godoc
// @Summary      List available products
// @Description  Products with a known stock of zero are left out; unknown stock is listed.
// @Tags         products
// @Produce      json
// @Param        category  query  string  false  "category, or all"
// @Param        q         query  string  false  "keyword in name or description"
// @Success      200  {object}  product.ListResponse
// @Failure      502  {object}  product.HTTPError
// @Router       /products [get]
func listProductsHandler(cat *product.Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := product.Filter{Category: c.Query("category"), Q: c.Query("q")}
		items, err := cat.Available(c.Request.Context(), f)
		if err != nil {
			logger.Error("list products", zap.Error(err))
			httpError(c, http.StatusBadGateway, "failed to load products", "backend")
			return
		}
		if items == nil {
			items = []product.Listed{}
		}
		c.JSON(http.StatusOK, product.ListResponse{Category: f.Category, Q: f.Q, Items: items})
	}
}

// categoriesHandler godoc
// @Summary  List product categories
// @Tags     products
// @Produce  json
// @Success  200  {array}   string
// @Failure  502  {object}  product.HTTPError
// @Router   /products/categories [get]
func categoriesHandler(cat *product.Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := cat.Categories(c.Request.Context())
		if err != nil {
			logger.Error("list categories", zap.Error(err))
			httpError(c, http.StatusBadGateway, "failed to load categories", "backend")
			return
		}
		if cats == nil {
			cats = []string{}
		}
		c.JSON(http.StatusOK, cats)
	}
}

// productDetailHandler godoc
// @Summary  Product with a fresh stock snapshot
// @Tags     products
// @Produce  json
// @Param    id   path      int  true  "product id"
// @Success  200  {object}  product.DetailResponse
// @Failure  400  {object}  product.HTTPError
// @Failure  404  {object}  product.HTTPError
// @Failure  502  {object}  product.HTTPError
// @Router   /products/{id} [get]
func productDetailHandler(cat *product.Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		d, err := cat.Detail(c.Request.Context(), id)
		switch {
		case errors.Is(err, product.ErrNotFound):
			httpError(c, http.StatusNotFound, "product not found", "")
			return
		case err != nil:
			logger.Error("product detail", zap.Int64("product_id", id), zap.Error(err))
			httpError(c, http.StatusBadGateway, "failed to load product", "backend")
			return
		}
		resp := product.DetailResponse{
			Product:   d.Product,
			Stock:     d.Stock,
			Available: product.IsAvailable(d.Stock),
		}
		if n, bounded := product.MaxQuantity(d.Stock); bounded {
			resp.MaxQuantity = &n
		}
		c.JSON(http.StatusOK, resp)
	}
}

// placeOrderHandler godoc
// @Summary      Place an order for one product
// @Description  Validated against a fresh stock read, then sent once. Never retried.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      order.PlaceOrderRequest  true  "order"
// @Success      201   {object}  order.Order
// @Failure      400   {object}  product.HTTPError
// @Failure      401   {object}  product.HTTPError
// @Failure      404   {object}  product.HTTPError
// @Failure      502   {object}  product.HTTPError
// @Security     BearerAuth
// @Router       /orders [post]
func placeOrderHandler(cat *product.Catalog, sub *order.Submitter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpError(c, http.StatusBadRequest, "invalid json", "")
			return
		}
		if err := order.ValidateForm(req.DeliveryAddress, req.Quantity); err != nil {
			httpError(c, http.StatusBadRequest, order.UserMessage(err), order.Code(err))
			return
		}
		ctx := c.Request.Context()
		d, err := cat.Detail(ctx, req.ProductID)
		switch {
		case errors.Is(err, product.ErrNotFound):
			httpError(c, http.StatusNotFound, "product not found", "")
			return
		case err != nil:
			logger.Error("place order: product", zap.Int64("product_id", req.ProductID), zap.Error(err))
			httpError(c, http.StatusBadGateway, "failed to load product", "backend")
			return
		}

		o, err := sub.Submit(ctx, order.SubmitInput{
			UserID:          currentUser(c).ID,
			ProductID:       req.ProductID,
			Quantity:        req.Quantity,
			DeliveryAddress: req.DeliveryAddress,
			Stock:           d.Stock,
		})
		switch {
		case order.IsValidation(err):
			httpError(c, http.StatusBadRequest, order.UserMessage(err), order.Code(err))
			return
		case err != nil:
			httpError(c, http.StatusBadGateway, order.UserMessage(err), order.Code(err))
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// listOrdersHandler godoc
// @Summary  The caller's orders
// @Tags     orders
// @Produce  json
// @Success  200  {array}   order.View
// @Failure  401  {object}  product.HTTPError
// @Failure  502  {object}  product.HTTPError
// @Security BearerAuth
// @Router   /orders [get]
func listOrdersHandler(l order.Lister, coord *order.Coordinator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		orders, err := l.UserOrders(c.Request.Context(), u.ID)
		if err != nil {
			logger.Error("list orders", zap.Int64("user_id", u.ID), zap.Error(err))
			httpError(c, http.StatusBadGateway, "failed to load orders", "backend")
			return
		}
		views := make([]order.View, 0, len(orders))
		for _, o := range orders {
			views = append(views, order.NewView(o, coord.InFlight(o.ID)))
		}
		c.JSON(http.StatusOK, views)
	}
}

// loadOwnOrder fetches an order and hides orders of other users as not found.
func loadOwnOrder(c *gin.Context, g orderGetter, logger *zap.Logger) (*order.Order, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	o, err := g.GetOrder(c.Request.Context(), id)
	switch {
	case errors.Is(err, order.ErrNotFound):
		httpError(c, http.StatusNotFound, "order not found", "")
		return nil, false
	case err != nil:
		logger.Error("get order", zap.Int64("order_id", id), zap.Error(err))
		httpError(c, http.StatusBadGateway, "failed to load order", "backend")
		return nil, false
	}
	if u := currentUser(c); o.UserID != 0 && o.UserID != u.ID {
		httpError(c, http.StatusNotFound, "order not found", "")
		return nil, false
	}
	return o, true
}

// getOrderHandler godoc
// @Summary  One of the caller's orders
// @Tags     orders
// @Produce  json
// @Param    id   path      int  true  "order id"
// @Success  200  {object}  order.View
// @Failure  404  {object}  product.HTTPError
// @Security BearerAuth
// @Router   /orders/{id} [get]
func getOrderHandler(g orderGetter, coord *order.Coordinator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := loadOwnOrder(c, g, logger)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, order.NewView(*o, coord.InFlight(o.ID)))
	}
}

// cancelOrderHandler godoc
// @Summary      Cancel one of the caller's orders
// @Description  Retried up to three times. Returns 204 when nothing was done: the order is not cancellable, confirm was not true, or a cancel is already running.
// @Tags         orders
// @Produce      json
// @Param        id       path      int   true   "order id"
// @Param        confirm  query     bool  false  "must be true to proceed"
// @Success      200      {object}  order.View
// @Success      204
// @Failure      404      {object}  product.HTTPError
// @Failure      502      {object}  product.HTTPError
// @Security     BearerAuth
// @Router       /orders/{id}/cancel [put]
func cancelOrderHandler(g orderGetter, coord *order.Coordinator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := loadOwnOrder(c, g, logger)
		if !ok {
			return
		}
		confirmed, _ := strconv.ParseBool(c.Query("confirm"))

		done, err := coord.Cancel(c.Request.Context(), o.ID, o.Status, order.Answer(confirmed))
		switch {
		case order.IsSilent(err):
			c.Header("X-Cancel-Outcome", order.Code(err))
			c.Status(http.StatusNoContent)
			return
		case err != nil:
			httpError(c, http.StatusBadGateway, order.UserMessage(err), order.Code(err))
			return
		}
		c.JSON(http.StatusOK, order.NewView(*done, false))
	}
}

// orderEventsHandler godoc
// @Summary  Client-side activity recorded for an order
// @Tags     orders
// @Produce  json
// @Param    id     path   int  true   "order id"
// @Param    limit  query  int  false  "max events, newest first"
// @Success  200    {array}  journal.Event
// @Security BearerAuth
// @Router   /orders/{id}/events [get]
func orderEventsHandler(g orderGetter, h journal.History, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok := loadOwnOrder(c, g, logger)
		if !ok {
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		evs, err := h.ListByOrder(c.Request.Context(), o.ID, limit)
		if err != nil {
			logger.Error("order events", zap.Int64("order_id", o.ID), zap.Error(err))
			httpError(c, http.StatusInternalServerError, "failed to load events", "")
			return
		}
		if evs == nil {
			evs = []journal.Event{}
		}
		c.JSON(http.StatusOK, evs)
	}
}
