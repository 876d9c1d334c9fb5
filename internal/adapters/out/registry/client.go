// Package registry resolves restaurants and driver profiles through the
// REST APIs of the restaurant and auth services.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 4 << 10

var ErrUnexpectedResponse = errors.New("unexpected registry response")

type restaurantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	IsDeleted bool      `json:"isDeleted"`
	Location  *location `json:"location"`
}

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type userResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// Client implements ports.PartyRegistry.
type Client struct {
	restaurantsURL string
	authURL        string
	http           *http.Client
}

var _ ports.PartyRegistry = (*Client)(nil)

// NewClient builds a registry client. timeout bounds every request; the
// caller's context may shorten it further.
func NewClient(restaurantsURL, authURL string, timeout time.Duration) (*Client, error) {
	var problems []error
	for name, raw := range map[string]string{"restaurant service url": restaurantsURL, "auth service url": authURL} {
		if _, err := url.ParseRequestURI(raw); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(name, err))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Client{
		restaurantsURL: strings.TrimRight(restaurantsURL, "/"),
		authURL:        strings.TrimRight(authURL, "/"),
		http:           &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) GetRestaurant(ctx context.Context, id kernel.UUID) (ports.Restaurant, error) {
	var body restaurantResponse
	endpoint := c.restaurantsURL + "/api/restaurants/" + url.PathEscape(id.String())
	if err := c.get(ctx, endpoint, "", "restaurant", id, &body); err != nil {
		return ports.Restaurant{}, err
	}

	restaurant := ports.Restaurant{
		ID:        id,
		Name:      body.Name,
		IsActive:  body.IsActive,
		IsDeleted: body.IsDeleted,
	}
	if body.Location != nil {
		coords, err := kernel.NewCoordinates(body.Location.Lat, body.Location.Lng)
		if err != nil {
			return ports.Restaurant{}, fmt.Errorf("%w: restaurant location: %w", ErrUnexpectedResponse, err)
		}
		restaurant.Location = &coords
	}
	return restaurant, nil
}

func (c *Client) GetDriverProfile(ctx context.Context, driverID kernel.UUID, authToken string) (ports.DriverProfile, error) {
	var body userResponse
	endpoint := c.authURL + "/api/users/" + url.PathEscape(driverID.String())
	if err := c.get(ctx, endpoint, authToken, "driver", driverID, &body); err != nil {
		return ports.DriverProfile{}, err
	}

	return ports.DriverProfile{
		ID:       driverID,
		FullName: body.FullName,
		Phone:    body.Phone,
		Email:    body.Email,
	}, nil
}

func (c *Client) get(ctx context.Context, endpoint, token, object string, id kernel.UUID, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s %s: %w", object, id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.NewObjectNotFoundError(object, id.String())
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: get %s %s: status %d: %s",
			ErrUnexpectedResponse, object, id, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %w", ErrUnexpectedResponse, object, id, err)
	}
	return nil
}
