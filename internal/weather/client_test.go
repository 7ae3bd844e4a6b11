package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/agrilearn-network/internal/service"
)

// fakeOpenWeather — минимальный двойник OpenWeather: знает только город "pune".
func fakeOpenWeather(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/geo/1.0/direct", func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		require.Equal(t, "test-key", r.URL.Query().Get("appid"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("q") {
		case "pune", "delhi":
			_, _ = w.Write([]byte(`[{"name":"Pune","lat":18.52,"lon":73.85}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	})
	mux.HandleFunc("/data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "metric", r.URL.Query().Get("units"))
		require.Equal(t, "18.5200", r.URL.Query().Get("lat"))
		_, _ = w.Write([]byte(`{"dt":1717236000,"main":{"temp":31.5,"feels_like":33.1,"humidity":40},
			"wind":{"speed":3.6},"weather":[{"description":"clear sky"}]}`))
	})
	mux.HandleFunc("/data/2.5/forecast", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"list":[
			{"dt":1717246800,"main":{"temp":30,"humidity":45},"weather":[{"description":"few clouds"}],"pop":0.1},
			{"dt":1717257600,"main":{"temp":27,"humidity":60},"weather":[],"pop":0.6}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestReport_OK(t *testing.T) {
	t.Parallel()

	srv := fakeOpenWeather(t, nil)
	c := New(srv.Client(), srv.URL+"/", "test-key", 2)
	fixed := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	r, err := c.Report(context.Background(), "pune")
	require.NoError(t, err)

	require.Equal(t, "pune", r.City)
	require.InDelta(t, 18.52, r.Coordinates.Lat, 1e-9)
	require.InDelta(t, 31.5, r.Current.TempC, 1e-9)
	require.Equal(t, 40, r.Current.Humidity)
	require.Equal(t, "clear sky", r.Current.Description)
	require.Equal(t, time.Unix(1717236000, 0).UTC(), r.Current.ObservedAt)
	require.Len(t, r.Forecast, 2)
	require.Equal(t, "few clouds", r.Forecast[0].Description)
	require.Equal(t, "", r.Forecast[1].Description)
	require.InDelta(t, 0.6, r.Forecast[1].PrecipitationProbability, 1e-9)
	require.Equal(t, fixed, r.FetchedAt)
}

func TestReport_CityNotFound(t *testing.T) {
	t.Parallel()

	srv := fakeOpenWeather(t, nil)
	c := New(srv.Client(), srv.URL, "test-key", 1)

	_, err := c.Report(context.Background(), "atlantis")
	require.ErrorIs(t, err, service.ErrCityNotFound)
}

func TestReport_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.Client(), srv.URL, "bad", 1)

	_, err := c.Report(context.Background(), "pune")
	require.Error(t, err)
	require.NotErrorIs(t, err, service.ErrCityNotFound)
	require.Contains(t, err.Error(), "status=401")
}

func TestReportMany_CollectsAll(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := fakeOpenWeather(t, &calls)
	c := New(srv.Client(), srv.URL, "test-key", 2)

	var ok, failed []string
	for res := range c.ReportMany(context.Background(), []string{"pune", "delhi", "atlantis"}) {
		if res.Err != nil {
			failed = append(failed, res.City)
			continue
		}
		require.NotNil(t, res.Report)
		ok = append(ok, res.City)
	}

	sort.Strings(ok)
	require.Equal(t, []string{"delhi", "pune"}, ok)
	require.Equal(t, []string{"atlantis"}, failed)
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestReportMany_CanceledContextClosesChannel(t *testing.T) {
	t.Parallel()

	srv := fakeOpenWeather(t, nil)
	c := New(srv.Client(), srv.URL, "test-key", 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range c.ReportMany(ctx, []string{"pune", "delhi"}) {
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("channel was not closed")
	}
}
