// Package drone requests delivery missions from the drone service.
package drone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

const maxErrorBody = 4 << 10

type point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type assignRequest struct {
	OrderID string `json:"orderId"`
	From    point  `json:"from"`
	To      point  `json:"to"`
}

type assignResponse struct {
	MissionID  string  `json:"missionId"`
	DistanceKm float64 `json:"distanceKm"`
	ETASeconds int     `json:"etaSeconds"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Client implements ports.DroneAssigner. Every failure, timeouts included,
// is reported as a ports.AssignmentFailedError.
type Client struct {
	endpoint string
	http     *http.Client
}

var _ ports.DroneAssigner = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("drone service url", err)
	}
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/api/drone/assign",
		http:     &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) Assign(ctx context.Context, req ports.DroneAssignmentRequest) (order.DroneMission, error) {
	payload, err := json.Marshal(assignRequest{
		OrderID: req.OrderID.String(),
		From:    point{Lat: req.From.Lat(), Lng: req.From.Lng()},
		To:      point{Lat: req.To.Lat(), Lng: req.To.Lng()},
	})
	if err != nil {
		return order.DroneMission{}, ports.NewAssignmentFailedError("", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return order.DroneMission{}, ports.NewAssignmentFailedError("", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return order.DroneMission{}, ports.NewAssignmentFailedError("drone service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return order.DroneMission{}, ports.NewAssignmentFailedError(failureDetail(resp), nil)
	}

	var body assignResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return order.DroneMission{}, ports.NewAssignmentFailedError("malformed drone service response", err)
	}

	mission := order.DroneMission{
		MissionID:  body.MissionID,
		DistanceKm: body.DistanceKm,
		ETASeconds: body.ETASeconds,
	}
	if err = mission.Validate(); err != nil {
		return order.DroneMission{}, ports.NewAssignmentFailedError("invalid mission", err)
	}
	return mission, nil
}

// failureDetail prefers the service's {"detail": ...} explanation and falls
// back to the raw body.
func failureDetail(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, text)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
