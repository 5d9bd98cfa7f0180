// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
)

var (
	ErrUnknownProduct  = errors.New("product is not in the catalog")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

type CartService struct {
	store   store.CartStore
	catalog *CatalogService
	images  *ImageService
	locks   *sessionLocks
	now     func() time.Time
}

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required,product_id"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=999"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"max=999"`
}

// NewCartService panics when cartStore is nil: a cart without persistence is a wiring bug.
func NewCartService(cartStore store.CartStore, catalog *CatalogService, images *ImageService) *CartService {
	if cartStore == nil {
		panic("services: NewCartService called without a cart store")
	}
	return &CartService{
		store:   cartStore,
		catalog: catalog,
		images:  images,
		locks:   newSessionLocks(),
		now:     time.Now,
	}
}

func (s *CartService) Cart(ctx context.Context, sessionID string) (models.Cart, error) {
	return s.store.LoadCart(ctx, sessionID)
}

// AddItem adds quantity to the product's line, creating it when missing.
func (s *CartService) AddItem(ctx context.Context, sessionID, productID string, quantity int) (models.Cart, error) {
	if quantity < 1 {
		return models.Cart{}, ErrInvalidQuantity
	}
	if _, err := s.catalog.ProductByID(productID); err != nil {
		return models.Cart{}, fmt.Errorf("%q: %w", productID, ErrUnknownProduct)
	}

	return s.mutate(ctx, sessionID, func(c *models.Cart) {
		c.Add(productID, quantity, s.now())
	})
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (models.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *models.Cart) {
		c.Remove(productID)
	})
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (models.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *models.Cart) {
		c.SetQuantity(productID, quantity, s.now())
	})
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	_, err := s.mutate(ctx, sessionID, func(c *models.Cart) {
		c.Clear()
	})
	return err
}

// Summary joins the cart with catalog data. Lines whose product left the
// catalog are omitted from the lines and the subtotal.
func (s *CartService) Summary(ctx context.Context, sessionID string) (*models.CartSummary, error) {
	cart, err := s.store.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.summarize(cart), nil
}

func (s *CartService) summarize(cart models.Cart) *models.CartSummary {
	snap := s.catalog.Snapshot()

	summary := &models.CartSummary{
		Items:      make([]models.CartLine, 0, len(cart.Items)),
		TotalItems: cart.TotalItems(),
	}
	for _, item := range cart.Items {
		product, ok := snap.ProductByID(item.ProductID)
		if !ok {
			continue
		}

		price := snap.EffectivePrice(item.ProductID)
		line := models.CartLine{
			CartItem:   item,
			Product:    product,
			Price:      price,
			TotalPrice: price * float64(item.Quantity),
		}
		if s.images != nil {
			if thumbs := s.images.Thumbnails(product, ""); len(thumbs) > 0 {
				line.Image = thumbs[0]
			}
		}

		summary.Items = append(summary.Items, line)
		summary.Subtotal += line.TotalPrice
	}
	return summary
}

func (s *CartService) mutate(ctx context.Context, sessionID string, fn func(*models.Cart)) (models.Cart, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	cart, err := s.store.LoadCart(ctx, sessionID)
	if err != nil {
		return models.Cart{}, err
	}

	fn(&cart)

	if err := s.store.SaveCart(ctx, sessionID, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}
