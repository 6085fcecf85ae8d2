package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/domain"
)

// ImageFile is an image accompanying a create/update request. When present the
// payload goes out as multipart form data instead of JSON.
type ImageFile struct {
	Name string
	Data []byte
}

func (c *Client) Listings(ctx context.Context) ([]domain.Listing, error) {
	var items []domain.Listing
	if err := c.doJSON(ctx, http.MethodGet, "/listings", nil, &items, nil); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := c.doJSON(ctx, http.MethodGet, "/listings/stats", nil, &stats, nil); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) CreateListing(ctx context.Context, in domain.ListingInput, image *ImageFile) (*domain.Listing, error) {
	return c.sendListing(ctx, http.MethodPost, "/listings", in, image, &progress{
		loading: "Posting...",
		success: "Listing posted!",
	})
}

func (c *Client) UpdateListing(ctx context.Context, id domain.ListingID, in domain.ListingInput, image *ImageFile) (*domain.Listing, error) {
	return c.sendListing(ctx, http.MethodPut, "/listings/"+id.String(), in, image, &progress{
		loading: "Updating...",
		success: "Updated!",
	})
}

func (c *Client) DeleteListing(ctx context.Context, id domain.ListingID) error {
	return c.doJSON(ctx, http.MethodDelete, "/listings/"+id.String(), nil, nil, &progress{
		loading: "Deleting...",
		success: "Deleted!",
	})
}

func (c *Client) sendListing(ctx context.Context, method, path string, in domain.ListingInput, image *ImageFile, prog *progress) (*domain.Listing, error) {
	var created domain.Listing

	if image == nil {
		if err := c.doJSON(ctx, method, path, in, &created, prog); err != nil {
			return nil, err
		}
		return &created, nil
	}

	body, contentType, err := listingForm(in, image)
	if err != nil {
		return nil, err
	}
	if err := c.do(ctx, method, path, body, contentType, &created, prog); err != nil {
		return nil, err
	}
	return &created, nil
}

// listingForm builds the multipart body. The Content-Type comes from the
// writer so the boundary parameter is correct.
func listingForm(in domain.ListingInput, image *ImageFile) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := map[string]string{
		"rooms": strconv.Itoa(in.Rooms),
		"price": strconv.FormatFloat(in.Price, 'f', -1, 64),
		"about": in.About,
	}
	for name, text := range map[string]domain.LocalizedText{
		"name":     in.Name,
		"location": in.Location,
		"type":     in.Type,
	} {
		data, err := text.MarshalJSON()
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode %s field: %w", name, err)
		}
		fields[name] = string(data)
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	part, err := w.CreateFormFile("image", image.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image form part: %w", err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write image data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
