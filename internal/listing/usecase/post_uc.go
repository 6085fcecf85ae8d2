package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/AzizovM-doder/Rent-A-Room/internal/adapter/api"
	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
	"github.com/AzizovM-doder/Rent-A-Room/internal/platform/logger"
)

// Creator is the store-side create operation.
type Creator interface {
	Create(ctx context.Context, in domain.ListingInput, image *api.ImageFile) (*domain.Listing, error)
}

// Session is the slice of the persisted session the post flow needs.
type Session interface {
	IsAdmin(ctx context.Context) bool
}

// PostUsecase implements the "post a listing" flow. Admin sessions create the
// listing through the store; everyone else's submission goes to the operators
// as a post request event and never touches the cache.
type PostUsecase struct {
	creator Creator
	session Session
	sink    EventSink
	log     logger.Logger
}

func NewPostUsecase(creator Creator, session Session, sink EventSink, log logger.Logger) *PostUsecase {
	if sink == nil {
		sink = NopSink{}
	}
	return &PostUsecase{creator: creator, session: session, sink: sink, log: log}
}

// Submit validates the input before anything goes over the wire; a validation
// failure is immediate and changes no state.
func (uc *PostUsecase) Submit(ctx context.Context, in domain.ListingInput, image *api.ImageFile) (*domain.Listing, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if uc.session.IsAdmin(ctx) {
		uc.log.Infof("admin post: creating listing %q", in.Name.Resolve(domain.LangEN))
		return uc.creator.Create(ctx, in, image)
	}

	uc.log.Infof("non-admin post: forwarding request for %q", in.Name.Resolve(domain.LangEN))
	if err := uc.sink.Notify(ctx, "post_request", postFields(in)); err != nil {
		return nil, fmt.Errorf("failed to forward post request: %w", err)
	}
	return nil, nil
}

func postFields(in domain.ListingInput) []Field {
	image := in.Image
	if len(image) > 150 {
		image = image[:150] + "..."
	}
	return []Field{
		{Key: "Name EN", Value: orDash(in.Name.Resolve(domain.LangEN))},
		{Key: "Name RU", Value: orDash(in.Name.Resolve(domain.LangRU))},
		{Key: "Name TJ", Value: orDash(in.Name.Resolve(domain.LangTJ))},
		{Key: "Location", Value: orDash(in.Location.Resolve(domain.LangEN))},
		{Key: "Type", Value: orDash(in.Type.Resolve(domain.LangEN))},
		{Key: "Rooms", Value: strconv.Itoa(in.Rooms)},
		{Key: "Price", Value: fmt.Sprintf("$%g / night", in.Price)},
		{Key: "About", Value: orDash(in.About)},
		{Key: "Image(Base64)", Value: orDash(image)},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
