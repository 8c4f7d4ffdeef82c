package prommetrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHooks_OnResponse(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg)
	ctx := context.Background()

	h.OnRequest(ctx, "GET", "example.com", "/years")
	h.OnResponse(ctx, "GET", "example.com", "/years", 200, 10*time.Millisecond)
	h.OnResponse(ctx, "GET", "example.com", "/years", 200, 20*time.Millisecond)
	h.OnResponse(ctx, "GET", "example.com", "/makes", 500, time.Millisecond)

	if got := testutil.ToFloat64(h.requests.WithLabelValues("GET", "/years", "200")); got != 2 {
		t.Errorf("requests{/years,200} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(h.requests.WithLabelValues("GET", "/makes", "500")); got != 1 {
		t.Errorf("requests{/makes,500} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(h.requestLatency); got != 2 {
		t.Errorf("latency series = %d, want 2", got)
	}
}

func TestHooks_OnError(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg)

	h.OnError(context.Background(), "GET", "example.com", "/models", errors.New("dial tcp: refused"))

	if got := testutil.ToFloat64(h.httpErrors.WithLabelValues("GET", "/models")); got != 1 {
		t.Errorf("http_errors_total = %v, want 1", got)
	}
}

func TestHooks_OnLookupComplete(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg)
	ctx := context.Background()

	h.OnLookupComplete(ctx, "years", 30, time.Millisecond, nil)
	h.OnLookupComplete(ctx, "years", 0, time.Millisecond, errors.New("Failed to fetch years"))
	h.OnLookupComplete(ctx, "makes", 12, time.Millisecond, nil)

	tests := []struct {
		resource, result string
		want             float64
	}{
		{"years", "ok", 1},
		{"years", "error", 1},
		{"makes", "ok", 1},
		{"models", "ok", 0},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(h.lookups.WithLabelValues(tt.resource, tt.result)); got != tt.want {
			t.Errorf("lookups{%s,%s} = %v, want %v", tt.resource, tt.result, got, tt.want)
		}
	}
}

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg)
	h.OnLookupComplete(context.Background(), "models", 3, time.Millisecond, nil)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "vehiclelookup_lookups_total" {
			found = true
		}
	}
	if !found {
		t.Error("vehiclelookup_lookups_total not registered")
	}
}
