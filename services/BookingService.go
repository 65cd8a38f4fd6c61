package services

import (
	"context"
	"errors"
	"log"

	"flowerStore/entities"
	"flowerStore/models"
	"flowerStore/repository"
)

type BookingService struct {
	br    repository.BookingRepository
	guard *FormGuard
	wa    WhatsApp
}

func NewBookingService(bookingRepo repository.BookingRepository, guard *FormGuard, wa WhatsApp) BookingService {
	return BookingService{
		br:    bookingRepo,
		guard: guard,
		wa:    wa,
	}
}

// Submit stores a validated booking form. A non-nil error means the
// submission was refused before reaching the store; store outcomes are
// reported through the result status.
func (bs *BookingService) Submit(ctx context.Context, sessionId string, form entities.BookingForm) (res entities.SubmitResult, err error) {
	release, ok := bs.guard.Begin("booking:" + sessionId)
	if !ok {
		err = models.ErrSubmitInProgress
		return
	}
	defer release()

	saved, e := bs.br.Save(ctx, entities.Booking{
		CustomerName:        form.CustomerName,
		PhoneNumber:         form.PhoneNumber,
		ServiceType:         form.ServiceType,
		Date:                form.Date,
		Location:            form.Location,
		SpecialInstructions: form.SpecialInstructions,
	})
	switch {
	case e == nil:
		res = entities.SubmitResult{
			Status:          entities.SubmitSucceeded,
			Booking:         &saved,
			Notice:          NoticeBookingSucceeded,
			ConfirmationURL: bs.wa.BookingLink(saved.Id, saved.ServiceType, saved.Date),
		}
	case errors.Is(e, models.ErrUnavailable):
		log.Printf("BookingService.Submit[1]: %v", e)
		res = entities.SubmitResult{Status: entities.SubmitErrored, Notice: NoticeBookingErrored}
	default:
		log.Printf("BookingService.Submit[2]: %v", e)
		res = entities.SubmitResult{Status: entities.SubmitFailed, Notice: NoticeBookingFailed}
	}
	return
}
