package services

import (
	"context"
	"log"

	"flowerStore/entities"
	"flowerStore/models"
	"flowerStore/repository"

	"github.com/google/uuid"
)

// CartService applies one cart or wishlist mutation per call: rehydrate the
// slot, reduce, write the whole collection back.
type CartService struct {
	pr repository.ProductRepository
	cr repository.CartRepository
}

func NewCartService(productRepo repository.ProductRepository, cartRepo repository.CartRepository) CartService {
	return CartService{
		pr: productRepo,
		cr: cartRepo,
	}
}

func (cs *CartService) CreateCartSession() (cartSessionId string) {
	return uuid.NewString()
}

func (cs *CartService) GetCart(ctx context.Context, cartSessionId string) (resp entities.CartResponse, err error) {
	cart, err := cs.cr.GetCart(ctx, cartSessionId)
	if err != nil {
		return
	}
	resp = cartResponse(cart)
	return
}

func (cs *CartService) AddCartItem(ctx context.Context, cartSessionId string, productId string) (resp entities.CartResponse, err error) {
	p, ex := cs.pr.GetProductById(productId)
	if !ex {
		log.Printf("AddCartItem: product %q does not exist", productId)
		err = models.ErrNotFoundError
		return
	}
	return cs.AddCartItemProduct(ctx, cartSessionId, p)
}

func (cs *CartService) UpdateQuantity(ctx context.Context, cartSessionId string, productId string, delta int) (resp entities.CartResponse, err error) {
	cart, err := cs.cr.GetCart(ctx, cartSessionId)
	if err != nil {
		return
	}
	cart = cart.UpdateQuantity(productId, delta)
	err = cs.cr.SetCart(ctx, cartSessionId, cart)
	if err != nil {
		return
	}
	resp = cartResponse(cart)
	return
}

func (cs *CartService) ClearCart(ctx context.Context, cartSessionId string) (err error) {
	err = cs.cr.SetCart(ctx, cartSessionId, entities.Cart{}.Clear())
	return
}

func (cs *CartService) CheckoutSummary(ctx context.Context, cartSessionId string, deliveryFee int) (summary entities.CheckoutSummary, err error) {
	cart, err := cs.cr.GetCart(ctx, cartSessionId)
	if err != nil {
		return
	}
	summary = entities.CheckoutSummary{
		Items:       cart,
		Subtotal:    cart.Subtotal(),
		DeliveryFee: deliveryFee,
		Total:       cart.Subtotal() + deliveryFee,
	}
	return
}

// wishlist

func (cs *CartService) GetWishlist(ctx context.Context, cartSessionId string) (resp entities.WishlistResponse, err error) {
	wl, err := cs.cr.GetWishlist(ctx, cartSessionId)
	if err != nil {
		return
	}
	resp.Items = wl
	return
}

func (cs *CartService) ToggleWishlist(ctx context.Context, cartSessionId string, productId string) (resp entities.WishlistResponse, err error) {
	p, ex := cs.pr.GetProductById(productId)
	if !ex {
		log.Printf("ToggleWishlist: product %q does not exist", productId)
		err = models.ErrNotFoundError
		return
	}
	wl, err := cs.cr.GetWishlist(ctx, cartSessionId)
	if err != nil {
		return
	}
	wl = wl.Toggle(p)
	err = cs.cr.SetWishlist(ctx, cartSessionId, wl)
	if err != nil {
		return
	}
	resp.Items = wl
	return
}

func (cs *CartService) RemoveFromWishlist(ctx context.Context, cartSessionId string, productId string) (resp entities.WishlistResponse, err error) {
	wl, err := cs.cr.GetWishlist(ctx, cartSessionId)
	if err != nil {
		return
	}
	wl = wl.Remove(productId)
	err = cs.cr.SetWishlist(ctx, cartSessionId, wl)
	if err != nil {
		return
	}
	resp.Items = wl
	return
}

// MoveToCart adds the product to the cart and drops it from the wishlist.
// The cart slot is written first.
func (cs *CartService) MoveToCart(ctx context.Context, cartSessionId string, productId string) (cartResp entities.CartResponse, wlResp entities.WishlistResponse, err error) {
	wl, err := cs.cr.GetWishlist(ctx, cartSessionId)
	if err != nil {
		return
	}
	p, ex := cs.pr.GetProductById(productId)
	if !ex {
		found := false
		for _, w := range wl {
			if w.Id == productId {
				p, found = w, true
				break
			}
		}
		if !found {
			log.Printf("MoveToCart: product %q does not exist", productId)
			err = models.ErrNotFoundError
			return
		}
	}
	cartResp, err = cs.AddCartItemProduct(ctx, cartSessionId, p)
	if err != nil {
		return
	}
	wl = wl.Remove(productId)
	err = cs.cr.SetWishlist(ctx, cartSessionId, wl)
	if err != nil {
		return
	}
	wlResp.Items = wl
	return
}

func (cs *CartService) AddCartItemProduct(ctx context.Context, cartSessionId string, p entities.Product) (resp entities.CartResponse, err error) {
	cart, err := cs.cr.GetCart(ctx, cartSessionId)
	if err != nil {
		return
	}
	cart = cart.Add(p)
	err = cs.cr.SetCart(ctx, cartSessionId, cart)
	if err != nil {
		return
	}
	resp = cartResponse(cart)
	resp.OpenCart = true
	return
}

func cartResponse(cart entities.Cart) entities.CartResponse {
	return entities.CartResponse{
		Items:    cart,
		Subtotal: cart.Subtotal(),
		Count:    cart.Count(),
	}
}
