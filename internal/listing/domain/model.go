package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Listing is a rental property record. Listings are value objects: the store
// replaces them wholesale, nothing edits a cached listing in place.
type Listing struct {
	ID       ListingID     `json:"id"`
	Name     LocalizedText `json:"name"`
	Location LocalizedText `json:"location"`
	Type     LocalizedText `json:"type"`
	Rooms    int           `json:"rooms"`
	Price    float64       `json:"price"`
	About    string        `json:"about,omitempty"`
	Image    string        `json:"image,omitempty"`
}

// ListingID is what the backend uses as a listing identifier. Старый бэкенд
// отдает числовые id, новый — строки, поэтому принимаем оба варианта.
type ListingID string

func (id ListingID) String() string { return string(id) }

func (id *ListingID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ListingID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("listing id must be a string or a number: %w", err)
	}
	*id = ListingID(n.String())
	return nil
}

func (id ListingID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// ListingInput is the payload for creating or updating a listing.
type ListingInput struct {
	Name     LocalizedText `json:"name"`
	Location LocalizedText `json:"location"`
	Type     LocalizedText `json:"type"`
	Rooms    int           `json:"rooms"`
	Price    float64       `json:"price"`
	About    string        `json:"about,omitempty"`
	Image    string        `json:"image,omitempty"`
}

// Validate checks required fields before anything goes over the wire.
func (in ListingInput) Validate() error {
	if in.Name.IsZero() {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Location.IsZero() {
		return fmt.Errorf("%w: location is required", ErrValidation)
	}
	if in.Type.IsZero() {
		return fmt.Errorf("%w: type is required", ErrValidation)
	}
	if in.Rooms <= 0 {
		return fmt.Errorf("%w: rooms must be positive", ErrValidation)
	}
	if in.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	return nil
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type MessageStatus string

const (
	MessageStatusNew  MessageStatus = "NEW"
	MessageStatusRead MessageStatus = "READ"
)

// Message is a booking enquiry sent to a listing owner.
type Message struct {
	ID        string        `json:"id,omitempty"`
	ListingID ListingID     `json:"listingId,omitempty"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Days      int           `json:"days,omitempty"`
	Text      string        `json:"message"`
	Status    MessageStatus `json:"status,omitempty"`
}

// Stats is the aggregate shape of GET /listings/stats.
type Stats struct {
	Total    int      `json:"total"`
	Cities   []string `json:"cities"`
	Types    []string `json:"types"`
	MinPrice float64  `json:"minPrice"`
	MaxPrice float64  `json:"maxPrice"`
}
