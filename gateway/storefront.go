package gateway

import (
	"net/http"

	"github.com/example/adoreshop/pkg/currency"
	"github.com/example/adoreshop/pkg/design"
	"github.com/example/adoreshop/pkg/order"
	"github.com/example/adoreshop/pkg/studio"
	"github.com/gin-gonic/gin"
)

type selectProductRequest struct {
	Product string `json:"product" validate:"required,oneof=Shirt Tie Keychain"`
}

type selectColorRequest struct {
	Color string `json:"color" validate:"required,hexcolor"`
}

type addElementRequest struct {
	Type    string `json:"type" validate:"required,oneof=sticker text"`
	Content string `json:"content" validate:"notblank,max=200"`
}

type beginDragRequest struct {
	ID string `json:"id" validate:"required"`
}

type updateDragRequest struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

type productView struct {
	Kind         design.ProductKind `json:"type"`
	Price        int64              `json:"price"`
	PriceDisplay string             `json:"price_display"`
}

type catalogEntryView struct {
	design.CatalogEntry
	PriceDisplay string `json:"price_display"`
}

func (g *Gateway) catalog(c *gin.Context) {
	products := make([]productView, len(design.ProductKinds))
	for i, k := range design.ProductKinds {
		p := design.PriceFor(k)
		products[i] = productView{Kind: k, Price: p, PriceDisplay: currency.FormatIDR(p)}
	}
	entries := make([]catalogEntryView, len(design.Catalog))
	for i, e := range design.Catalog {
		entries[i] = catalogEntryView{CatalogEntry: e, PriceDisplay: currency.FormatIDR(e.Price)}
	}
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"catalog":  entries,
		"colors":   design.Colors,
		"stickers": design.Stickers,
	})
}

// sendStudio sends msg to the client's storefront and writes the studio view.
func (g *Gateway) sendStudio(c *gin.Context, msg interface{}, status int) {
	reply, err := g.storefronts.Request(clientID(c), msg)
	if err != nil {
		var view interface{}
		if reply != nil && reply.Studio != nil {
			view = reply.Studio
		}
		g.writeError(c, err, view)
		return
	}
	c.JSON(status, reply.Studio)
}

// sendOrder sends msg to the client's storefront and writes the order view.
func (g *Gateway) sendOrder(c *gin.Context, msg interface{}) {
	reply, err := g.storefronts.Request(clientID(c), msg)
	if err != nil {
		var view interface{}
		if reply != nil && reply.Order != nil {
			view = reply.Order
		}
		g.writeError(c, err, view)
		return
	}
	c.JSON(http.StatusOK, reply.Order)
}

func (g *Gateway) openStudio(c *gin.Context) {
	g.sendStudio(c, &studio.OpenStudio{}, http.StatusOK)
}

func (g *Gateway) getStudio(c *gin.Context) {
	g.sendStudio(c, &studio.GetStudio{}, http.StatusOK)
}

func (g *Gateway) closeStudio(c *gin.Context) {
	g.sendStudio(c, &studio.CloseStudio{}, http.StatusOK)
}

func (g *Gateway) selectProduct(c *gin.Context) {
	var req selectProductRequest
	if err := BindAndValidate(c, &req, g.validate); err != nil {
		return
	}
	g.sendStudio(c, &studio.SelectProduct{Kind: design.ProductKind(req.Product)}, http.StatusOK)
}

func (g *Gateway) selectColor(c *gin.Context) {
	var req selectColorRequest
	if err := BindAndValidate(c, &req, g.validate); err != nil {
		return
	}
	g.sendStudio(c, &studio.SelectColor{Hex: req.Color}, http.StatusOK)
}

func (g *Gateway) addElement(c *gin.Context) {
	var req addElementRequest
	if err := BindAndValidate(c, &req, g.validate); err != nil {
		return
	}
	g.sendStudio(c, &studio.AddElement{Kind: design.ElementKind(req.Type), Content: req.Content}, http.StatusCreated)
}

func (g *Gateway) removeElement(c *gin.Context) {
	g.sendStudio(c, &studio.RemoveElement{ID: c.Param("id")}, http.StatusOK)
}

func (g *Gateway) clearDesign(c *gin.Context) {
	g.sendStudio(c, &studio.ClearDesign{}, http.StatusOK)
}

func (g *Gateway) beginDrag(c *gin.Context) {
	var req beginDragRequest
	if err := BindAndValidate(c, &req, g.validate); err != nil {
		return
	}
	g.sendStudio(c, &studio.BeginDrag{ID: req.ID}, http.StatusOK)
}

func (g *Gateway) updateDrag(c *gin.Context) {
	var req updateDragRequest
	if err := BindAndValidate(c, &req, g.validate); err != nil {
		return
	}
	g.sendStudio(c, &studio.UpdateDrag{X: *req.X, Y: *req.Y}, http.StatusOK)
}

func (g *Gateway) endDrag(c *gin.Context) {
	g.sendStudio(c, &studio.EndDrag{}, http.StatusOK)
}

func (g *Gateway) requestAdvice(c *gin.Context) {
	g.sendStudio(c, &studio.RequestAdvice{Username: currentUser(c).Username}, http.StatusAccepted)
}

func (g *Gateway) addDesignToCart(c *gin.Context) {
	reply, err := g.storefronts.Request(clientID(c), &studio.AddDesignToCart{})
	if err != nil {
		var view interface{}
		if reply != nil {
			view = gin.H{"studio": reply.Studio, "order": reply.Order}
		}
		g.writeError(c, err, view)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"studio": reply.Studio, "order": reply.Order})
}

func (g *Gateway) getOrder(c *gin.Context) {
	g.sendOrder(c, &studio.GetOrder{})
}

func (g *Gateway) openCart(c *gin.Context) {
	g.sendOrder(c, &studio.OpenCart{})
}

func (g *Gateway) closeCart(c *gin.Context) {
	g.sendOrder(c, &studio.CloseCart{})
}

func (g *Gateway) quickAdd(c *gin.Context) {
	g.sendOrder(c, &studio.QuickAdd{EntryID: c.Param("entry")})
}

func (g *Gateway) removeCartItem(c *gin.Context) {
	g.sendOrder(c, &studio.RemoveCartItem{ID: c.Param("id")})
}

func (g *Gateway) submitCart(c *gin.Context) {
	g.sendOrder(c, &studio.SubmitCart{})
}

func (g *Gateway) submitDetails(c *gin.Context) {
	var details order.CheckoutDetails
	if err := BindAndValidate(c, &details, g.validate); err != nil {
		return
	}
	g.sendOrder(c, &studio.SubmitDetails{Details: details})
}

func (g *Gateway) confirmPayment(c *gin.Context) {
	g.sendOrder(c, &studio.ConfirmPayment{})
}

func (g *Gateway) cancelCheckout(c *gin.Context) {
	g.sendOrder(c, &studio.CancelCheckout{})
}

func (g *Gateway) acknowledge(c *gin.Context) {
	g.sendOrder(c, &studio.Acknowledge{})
}
