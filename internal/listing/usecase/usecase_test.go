package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AzizovM-doder/Rent-A-Room/internal/adapter/api"
	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
	"github.com/AzizovM-doder/Rent-A-Room/internal/platform/logger"
)

type MockCreator struct {
	mock.Mock
}

func (m *MockCreator) Create(ctx context.Context, in domain.ListingInput, image *api.ImageFile) (*domain.Listing, error) {
	args := m.Called(ctx, in, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type stubSession struct {
	admin bool
}

func (s stubSession) IsAdmin(ctx context.Context) bool { return s.admin }

type capturedEvent struct {
	event   string
	payload []Field
}

// recordingSink collects every event for assertions.
type recordingSink struct {
	events []capturedEvent
	err    error
}

func (r *recordingSink) Notify(ctx context.Context, event string, payload []Field) error {
	r.events = append(r.events, capturedEvent{event: event, payload: payload})
	return r.err
}

func payloadValue(t *testing.T, payload []Field, key string) string {
	t.Helper()
	for _, f := range payload {
		if f.Key == key {
			return f.Value
		}
	}
	t.Fatalf("payload has no field %q", key)
	return ""
}

func validListingInput() domain.ListingInput {
	return domain.ListingInput{
		Name:     domain.NewLocalized("Cottage", "Коттедж", "Хонача"),
		Location: domain.NewText("Varzob"),
		Type:     domain.NewText("cottage"),
		Rooms:    3,
		Price:    60,
	}
}

func TestPost_ValidationFailsBeforeAnySideEffect(t *testing.T) {
	creator := new(MockCreator)
	sink := &recordingSink{}
	uc := NewPostUsecase(creator, stubSession{admin: true}, sink, logger.NewNoOp())

	_, err := uc.Submit(context.Background(), domain.ListingInput{}, nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, sink.events)
	creator.AssertNotCalled(t, "Create")
}

func TestPost_AdminCreatesDirectly(t *testing.T) {
	creator := new(MockCreator)
	sink := &recordingSink{}
	uc := NewPostUsecase(creator, stubSession{admin: true}, sink, logger.NewNoOp())

	in := validListingInput()
	created := domain.Listing{ID: "9", Name: in.Name, Price: in.Price}
	creator.On("Create", mock.Anything, in, (*api.ImageFile)(nil)).Return(&created, nil).Once()

	got, err := uc.Submit(context.Background(), in, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingID("9"), got.ID)
	assert.Empty(t, sink.events, "admin posts skip the side channel")
	creator.AssertExpectations(t)
}

func TestPost_NonAdminGoesToSideChannel(t *testing.T) {
	creator := new(MockCreator)
	sink := &recordingSink{}
	uc := NewPostUsecase(creator, stubSession{admin: false}, sink, logger.NewNoOp())

	in := validListingInput()
	in.About = "Quiet place"

	got, err := uc.Submit(context.Background(), in, nil)
	require.NoError(t, err)
	assert.Nil(t, got, "nothing enters the cache for a non-admin post")
	creator.AssertNotCalled(t, "Create")

	require.Len(t, sink.events, 1)
	assert.Equal(t, "post_request", sink.events[0].event)

	payload := sink.events[0].payload
	assert.Equal(t, "Cottage", payloadValue(t, payload, "Name EN"))
	assert.Equal(t, "Коттедж", payloadValue(t, payload, "Name RU"))
	assert.Equal(t, "Varzob", payloadValue(t, payload, "Location"))
	assert.Equal(t, "3", payloadValue(t, payload, "Rooms"))
	assert.Equal(t, "$60 / night", payloadValue(t, payload, "Price"))
	assert.Equal(t, "Quiet place", payloadValue(t, payload, "About"))
	assert.Equal(t, "-", payloadValue(t, payload, "Image(Base64)"), "empty fields render as a dash")
}

func TestPost_LongImageIsTruncated(t *testing.T) {
	sink := &recordingSink{}
	uc := NewPostUsecase(new(MockCreator), stubSession{}, sink, logger.NewNoOp())

	in := validListingInput()
	for len(in.Image) <= 150 {
		in.Image += "AAAAAAAAAA"
	}

	_, err := uc.Submit(context.Background(), in, nil)
	require.NoError(t, err)

	rendered := payloadValue(t, sink.events[0].payload, "Image(Base64)")
	assert.Len(t, rendered, 153)
	assert.True(t, rendered[len(rendered)-3:] == "...")
}

func TestPost_SinkFailureSurfacesToCaller(t *testing.T) {
	sink := &recordingSink{err: errors.New("bot unreachable")}
	uc := NewPostUsecase(new(MockCreator), stubSession{}, sink, logger.NewNoOp())

	_, err := uc.Submit(context.Background(), validListingInput(), nil)
	assert.ErrorContains(t, err, "bot unreachable")
}

type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendMessage(ctx context.Context, msg domain.Message) (*domain.Message, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

type staticFinder struct {
	items map[domain.ListingID]domain.Listing
}

func (s staticFinder) Find(id domain.ListingID) (*domain.Listing, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return &item, nil
}

func cachedListings() staticFinder {
	return staticFinder{items: map[domain.ListingID]domain.Listing{
		"5": {ID: "5", Name: domain.NewText("Dacha"), Price: 75.5},
	}}
}

func TestBooking_SendsEnquiryAndMirrors(t *testing.T) {
	messenger := new(MockMessenger)
	sink := &recordingSink{}
	uc := NewBookingUsecase(cachedListings(), messenger, sink, logger.NewNoOp())

	form := BookingForm{Name: "Aziz", Phone: "+992900000000", Days: 4, Text: "Is it free in June?"}
	sent := domain.Message{ID: "m1", ListingID: "5", Status: domain.MessageStatusNew}
	messenger.On("SendMessage", mock.Anything, mock.MatchedBy(func(msg domain.Message) bool {
		return msg.ListingID == "5" && msg.Name == "Aziz" && msg.Days == 4
	})).Return(&sent, nil).Once()

	require.NoError(t, uc.Request(context.Background(), "5", form))

	require.Len(t, sink.events, 1)
	assert.Equal(t, "booking_request", sink.events[0].event)

	payload := sink.events[0].payload
	assert.Equal(t, "Aziz", payloadValue(t, payload, "Name"))
	assert.Equal(t, "5", payloadValue(t, payload, "House id"))
	assert.Equal(t, "Dacha", payloadValue(t, payload, "Requested house"))
	assert.Equal(t, "$75.5", payloadValue(t, payload, "Per night"))
	assert.Equal(t, "4", payloadValue(t, payload, "Requested days"))
	messenger.AssertExpectations(t)
}

func TestBooking_ValidatesForm(t *testing.T) {
	messenger := new(MockMessenger)
	uc := NewBookingUsecase(cachedListings(), messenger, &recordingSink{}, logger.NewNoOp())

	err := uc.Request(context.Background(), "5", BookingForm{Phone: "+992900000000"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = uc.Request(context.Background(), "5", BookingForm{Name: "Aziz"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	messenger.AssertNotCalled(t, "SendMessage")
}

func TestBooking_UnknownListing(t *testing.T) {
	messenger := new(MockMessenger)
	uc := NewBookingUsecase(cachedListings(), messenger, &recordingSink{}, logger.NewNoOp())

	err := uc.Request(context.Background(), "404", BookingForm{Name: "Aziz", Phone: "+992900000000"})
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	messenger.AssertNotCalled(t, "SendMessage")
}

func TestBooking_SinkFailureDoesNotFailBooking(t *testing.T) {
	messenger := new(MockMessenger)
	sink := &recordingSink{err: errors.New("bot unreachable")}
	uc := NewBookingUsecase(cachedListings(), messenger, sink, logger.NewNoOp())

	sent := domain.Message{ID: "m1"}
	messenger.On("SendMessage", mock.Anything, mock.Anything).Return(&sent, nil).Once()

	err := uc.Request(context.Background(), "5", BookingForm{Name: "Aziz", Phone: "+992900000000"})
	assert.NoError(t, err, "the enquiry already reached the backend")
}

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Register(ctx context.Context, in api.RegisterInput) (*api.AuthResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AuthResponse), args.Error(1)
}

func (m *MockAuthAPI) Login(ctx context.Context, in api.LoginInput) (*api.AuthResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AuthResponse), args.Error(1)
}

func (m *MockAuthAPI) Me(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// fakeSessionWriter remembers the last persisted snapshot.
type fakeSessionWriter struct {
	user    *domain.User
	token   string
	cleared bool
}

func (f *fakeSessionWriter) Save(ctx context.Context, user domain.User, token string) error {
	f.user = &user
	f.token = token
	f.cleared = false
	return nil
}

func (f *fakeSessionWriter) Clear(ctx context.Context) error {
	f.user = nil
	f.token = ""
	f.cleared = true
	return nil
}

func TestAuth_LoginPersistsSession(t *testing.T) {
	authAPI := new(MockAuthAPI)
	session := &fakeSessionWriter{}
	uc := NewAuthUsecase(authAPI, session, logger.NewNoOp())

	resp := &api.AuthResponse{
		User:  domain.User{ID: "u1", Name: "Aziz", Email: "aziz@example.com"},
		Token: "jwt-here",
	}
	authAPI.On("Login", mock.Anything, api.LoginInput{Email: "aziz@example.com", Password: "secret"}).
		Return(resp, nil).Once()

	user, err := uc.Login(context.Background(), "aziz@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "jwt-here", session.token)
	require.NotNil(t, session.user)
	assert.Equal(t, "Aziz", session.user.Name)
}

func TestAuth_LoginValidatesInput(t *testing.T) {
	authAPI := new(MockAuthAPI)
	uc := NewAuthUsecase(authAPI, &fakeSessionWriter{}, logger.NewNoOp())

	_, err := uc.Login(context.Background(), "", "secret")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Login(context.Background(), "aziz@example.com", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	authAPI.AssertNotCalled(t, "Login")
}

func TestAuth_LoginFailureLeavesSessionUntouched(t *testing.T) {
	authAPI := new(MockAuthAPI)
	session := &fakeSessionWriter{}
	uc := NewAuthUsecase(authAPI, session, logger.NewNoOp())

	authAPI.On("Login", mock.Anything, mock.Anything).Return(nil, errors.New("invalid credentials")).Once()

	_, err := uc.Login(context.Background(), "aziz@example.com", "wrong")
	assert.Error(t, err)
	assert.Nil(t, session.user)
}

func TestAuth_RegisterValidatesInput(t *testing.T) {
	authAPI := new(MockAuthAPI)
	uc := NewAuthUsecase(authAPI, &fakeSessionWriter{}, logger.NewNoOp())

	_, err := uc.Register(context.Background(), api.RegisterInput{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	authAPI.AssertNotCalled(t, "Register")
}

func TestAuth_RefreshReSavesSnapshot(t *testing.T) {
	authAPI := new(MockAuthAPI)
	session := &fakeSessionWriter{}
	uc := NewAuthUsecase(authAPI, session, logger.NewNoOp())

	fresh := &domain.User{ID: "u1", Name: "Aziz Renamed"}
	authAPI.On("Me", mock.Anything).Return(fresh, nil).Once()

	user, err := uc.Refresh(context.Background(), "jwt-here")
	require.NoError(t, err)
	assert.Equal(t, "Aziz Renamed", user.Name)
	assert.Equal(t, "Aziz Renamed", session.user.Name)
	assert.Equal(t, "jwt-here", session.token)
}

func TestAuth_Logout(t *testing.T) {
	session := &fakeSessionWriter{user: &domain.User{ID: "u1"}, token: "jwt"}
	uc := NewAuthUsecase(new(MockAuthAPI), session, logger.NewNoOp())

	require.NoError(t, uc.Logout(context.Background()))
	assert.True(t, session.cleared)
	assert.Nil(t, session.user)
}

func TestMultiSink_FansOutAndKeepsFirstError(t *testing.T) {
	first := &recordingSink{err: errors.New("first failed")}
	second := &recordingSink{}

	sink := MultiSink{first, second}
	err := sink.Notify(context.Background(), "post_request", []Field{{Key: "Name", Value: "x"}})

	assert.ErrorContains(t, err, "first failed")
	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 1, "a failing sink does not stop the fan-out")
}
