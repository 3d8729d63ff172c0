package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReverse_FormatsAddress(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "json", r.URL.Query().Get("format"))
		w.Write([]byte(`{"address":{"suburb":"Indiranagar","city":"Bengaluru","state":"Karnataka"}}`))
	}))
	defer upstream.Close()

	client := NewClient()
	client.baseURL = upstream.URL

	location := client.Reverse(context.Background(), "12.97", "77.64")
	require.Equal(t, "Indiranagar, Bengaluru, Karnataka", location)
}

func TestReverse_AreaEqualToCityIsDropped(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"county":"Pune","city":"Pune","state":"Maharashtra"}}`))
	}))
	defer upstream.Close()

	client := NewClient()
	client.baseURL = upstream.URL

	location := client.Reverse(context.Background(), "18.52", "73.85")
	require.Equal(t, "Pune, Maharashtra", location)
}

func TestReverse_FallsBackToCoordinates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	client := NewClient()
	client.baseURL = upstream.URL

	location := client.Reverse(context.Background(), "10.0", "20.0")
	require.Equal(t, "10.0, 20.0", location)
}

func TestReverse_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	client := NewClient()
	client.baseURL = upstream.URL

	for i := 0; i < 10; i++ {
		require.Equal(t, "1.0, 2.0", client.Reverse(context.Background(), "1.0", "2.0"))
	}
	// The breaker trips after four consecutive failures and stops hitting
	// the upstream.
	require.Less(t, hits, 10)
}
