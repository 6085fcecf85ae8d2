package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
	"github.com/AzizovM-doder/Rent-A-Room/internal/platform/logger"
)

// Finder looks a listing up in the current cache snapshot.
type Finder interface {
	Find(id domain.ListingID) (*domain.Listing, error)
}

// Messenger sends booking enquiries to the backend.
type Messenger interface {
	SendMessage(ctx context.Context, msg domain.Message) (*domain.Message, error)
}

// BookingForm is what the enquiry form collects.
type BookingForm struct {
	Name  string
	Phone string
	Days  int
	Text  string
}

func (f BookingForm) validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if f.Phone == "" {
		return fmt.Errorf("%w: phone is required", domain.ErrValidation)
	}
	return nil
}

// BookingUsecase implements the "message the owner" flow: the enquiry goes to
// the backend messages resource and is mirrored to the operators' side channel.
type BookingUsecase struct {
	finder    Finder
	messenger Messenger
	sink      EventSink
	log       logger.Logger
}

func NewBookingUsecase(finder Finder, messenger Messenger, sink EventSink, log logger.Logger) *BookingUsecase {
	if sink == nil {
		sink = NopSink{}
	}
	return &BookingUsecase{finder: finder, messenger: messenger, sink: sink, log: log}
}

// Request validates the form, resolves the listing from the cache (a missing
// id is a not-found view state, not a crash) and sends the enquiry. A failing
// side-channel mirror is logged but does not fail the booking.
func (uc *BookingUsecase) Request(ctx context.Context, id domain.ListingID, form BookingForm) error {
	if err := form.validate(); err != nil {
		return err
	}

	item, err := uc.finder.Find(id)
	if err != nil {
		return err
	}

	msg := domain.Message{
		ListingID: item.ID,
		Name:      form.Name,
		Phone:     form.Phone,
		Days:      form.Days,
		Text:      form.Text,
	}
	if _, err := uc.messenger.SendMessage(ctx, msg); err != nil {
		return err
	}

	fields := []Field{
		{Key: "Name", Value: form.Name},
		{Key: "Number", Value: form.Phone},
		{Key: "House id", Value: item.ID.String()},
		{Key: "Requested house", Value: item.Name.Resolve(domain.LangEN)},
		{Key: "Per night", Value: "$" + strconv.FormatFloat(item.Price, 'f', -1, 64)},
		{Key: "Requested days", Value: strconv.Itoa(form.Days)},
		{Key: "Message", Value: form.Text},
	}
	if err := uc.sink.Notify(ctx, "booking_request", fields); err != nil {
		uc.log.Warnf("booking side channel failed for listing %s: %v", id, err)
	}
	return nil
}
