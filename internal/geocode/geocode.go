package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"antigravity-pm/internal/logging"
)

const nominatimURL = "https://nominatim.openstreetmap.org/reverse"

// Client resolves coordinates to a human-readable location through the OSM
// Nominatim API. Calls go through a circuit breaker so a flapping upstream
// does not pile up requests.
type Client struct {
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	baseURL string
}

func NewClient() *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "NominatimCB",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("circuit breaker %q changed from %s to %s", name, from, to)
		},
	})

	return &Client{
		http:    &http.Client{Timeout: 6 * time.Second},
		breaker: breaker,
		baseURL: nominatimURL,
	}
}

type address struct {
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	Residential   string `json:"residential"`
	Quarter       string `json:"quarter"`
	CityDistrict  string `json:"city_district"`
	County        string `json:"county"`
	Village       string `json:"village"`
	Road          string `json:"road"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Municipality  string `json:"municipality"`
	State         string `json:"state"`
}

// Reverse returns "area, city, state" for the coordinates, falling back to
// the raw "lat, lon" pair when the lookup fails or resolves to nothing.
func (c *Client) Reverse(ctx context.Context, lat, lon string) string {
	fallback := fmt.Sprintf("%s, %s", lat, lon)

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.lookup(ctx, lat, lon)
	})
	if err != nil {
		logging.Logger.Warnf("reverse geocode: %v", err)
		return fallback
	}

	location := result.(string)
	if location == "" {
		return fallback
	}
	return location
}

func (c *Client) lookup(ctx context.Context, lat, lon string) (string, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", lat)
	params.Set("lon", lon)
	params.Set("zoom", "19")
	params.Set("addressdetails", "1")
	params.Set("extratags", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Antigravity-Attendance/1.0 (contact@antigravity.dev)")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	var payload struct {
		Address address `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}

	addr := payload.Address
	area := firstNonEmpty(addr.Suburb, addr.Neighbourhood, addr.Residential, addr.Quarter,
		addr.CityDistrict, addr.County, addr.Village, addr.Road)
	city := firstNonEmpty(addr.City, addr.Town, addr.Municipality, addr.County)

	if area == city {
		area = ""
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{area, city, addr.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", "), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
