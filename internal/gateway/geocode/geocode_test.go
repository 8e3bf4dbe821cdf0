package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGateway_Search_DecodesResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "12 marina rd", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"label":"12 Marina Rd, Lagos","city":"Lagos","state":"Lagos","country":"Nigeria","lat":6.45,"lng":3.39}]}`))
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.Client(), srv.URL)
	got, err := g.Search(context.Background(), "12 marina rd")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Lagos", got[0].City)
	assert.Equal(t, "Nigeria", got[0].Country)
	assert.InDelta(t, 6.45, got[0].Lat, 1e-9)
}

func TestHTTPGateway_Search_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.Client(), srv.URL)
	_, err := g.Search(context.Background(), "marina")
	require.Error(t, err)

	var se *httpStatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.code)
	assert.True(t, isRetryable(err))
}

func TestHTTPGateway_Search_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":`))
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.Client(), srv.URL)
	_, err := g.Search(context.Background(), "marina")
	require.Error(t, err)
	assert.False(t, isRetryable(err))
}
