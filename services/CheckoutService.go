package services

import (
	"context"
	"errors"
	"log"

	"flowerStore/entities"
	"flowerStore/models"
	"flowerStore/repository"
)

type CheckoutService struct {
	cat   CatalogService
	cr    repository.CartRepository
	or    repository.OrderRepository
	guard *FormGuard
	wa    WhatsApp
}

func NewCheckoutService(catalog CatalogService, cartRepo repository.CartRepository, orderRepo repository.OrderRepository, guard *FormGuard, wa WhatsApp) CheckoutService {
	return CheckoutService{
		cat:   catalog,
		cr:    cartRepo,
		or:    orderRepo,
		guard: guard,
		wa:    wa,
	}
}

// Submit places an order for the session's cart. The cart is snapshotted
// and repriced before saving and is cleared only after the store accepted
// the order.
func (ors *CheckoutService) Submit(ctx context.Context, cartSessionId string, form entities.CheckoutForm) (res entities.SubmitResult, err error) {
	release, ok := ors.guard.Begin("checkout:" + cartSessionId)
	if !ok {
		err = models.ErrSubmitInProgress
		return
	}
	defer release()

	cart, err := ors.cr.GetCart(ctx, cartSessionId)
	if err != nil {
		return
	}
	if len(cart) == 0 {
		log.Printf("CheckoutService.Submit[1]: empty cart")
		err = models.ErrBadRequest
		return
	}
	items, total, err := ors.cat.Reprice(cart.Snapshot())
	if err != nil {
		return
	}

	saved, e := ors.or.Save(ctx, entities.Order{
		CustomerName: form.CustomerName,
		PhoneNumber:  form.PhoneNumber,
		Address:      form.Address,
		Items:        items,
		Total:        total,
	})
	switch {
	case e == nil:
	case errors.Is(e, models.ErrUnavailable):
		log.Printf("CheckoutService.Submit[2]: %v", e)
		res = entities.SubmitResult{Status: entities.SubmitErrored, Notice: NoticeOrderErrored}
		return
	default:
		log.Printf("CheckoutService.Submit[3]: %v", e)
		res = entities.SubmitResult{Status: entities.SubmitFailed, Notice: NoticeOrderFailed}
		return
	}

	if e := ors.cr.SetCart(ctx, cartSessionId, cart.Clear()); e != nil {
		// the order is already stored, so the result stays a success
		log.Printf("CheckoutService.Submit[4]: clearing cart: %v", e)
	}
	res = entities.SubmitResult{
		Status:          entities.SubmitSucceeded,
		Order:           &saved,
		Notice:          NoticeOrderSucceeded,
		ConfirmationURL: ors.wa.OrderLink(saved.Id, saved.Total),
	}
	return
}
