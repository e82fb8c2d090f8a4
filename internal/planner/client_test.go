package planner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResponse() PlanResponse {
	return PlanResponse{
		Date:    "2025-06-01",
		Summary: "Light day, battery is low.",
		Items: []PlanItem{
			{ScheduledTime: "08:00", Category: "meal", Title: "Protein breakfast", Priority: "medium"},
			{ScheduledTime: "12:30", Category: "meal", Title: "Lunch", Priority: "medium"},
			{ScheduledTime: "21:45", Category: "sleep", Title: "Wind down", Priority: "high"},
		},
	}
}

func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.Model = "test-model"
	cfg.MaxRetries = 0
	return srv, NewHTTPClient(cfg, NoopObserver{})
}

func TestGeneratePlan_Success(t *testing.T) {
	payload, err := json.Marshal(validResponse())
	require.NoError(t, err)

	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/plan", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req wireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, "2025-06-01", req.Input.Date)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(wireResponse{Model: "test-model", Output: string(payload)})
	})

	plan, err := client.GeneratePlan(context.Background(), PlanRequest{Date: "2025-06-01"})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", plan.Date)
	require.Len(t, plan.Items, 3)
	assert.Equal(t, "Protein breakfast", plan.Items[0].Title)
}

func TestGeneratePlan_FencedOutput(t *testing.T) {
	payload, err := json.Marshal(validResponse())
	require.NoError(t, err)
	fenced := "Here is your plan:\n```json\n" + string(payload) + "\n```\nSleep well!"

	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(wireResponse{Output: fenced})
	})

	plan, err := client.GeneratePlan(context.Background(), PlanRequest{Date: "2025-06-01"})
	require.NoError(t, err)
	assert.Len(t, plan.Items, 3)
}

func TestGeneratePlan_InvalidOutput(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(wireResponse{Output: "sorry, I cannot help with that"})
	})

	_, err := client.GeneratePlan(context.Background(), PlanRequest{Date: "2025-06-01"})
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestGeneratePlan_ValidationRejectsBadItems(t *testing.T) {
	bad := validResponse()
	bad.Items[0].Category = "nap"
	payload, err := json.Marshal(bad)
	require.NoError(t, err)

	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(wireResponse{Output: string(payload)})
	})

	_, err = client.GeneratePlan(context.Background(), PlanRequest{Date: "2025-06-01"})
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestGeneratePlan_ServerErrorExhaustsRetries(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.MaxRetries = 2
	client := NewHTTPClient(cfg, NoopObserver{})

	_, err := client.GeneratePlan(context.Background(), PlanRequest{Date: "2025-06-01"})
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, 3, calls)
}

func TestGeneratePlan_ContextCancelledDoesNotRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(wireResponse{})
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.MaxRetries = 5
	client := NewHTTPClient(cfg, NoopObserver{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.GeneratePlan(ctx, PlanRequest{Date: "2025-06-01"})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 1, calls)
}

func TestGeneratePlan_ObserverSeesFailure(t *testing.T) {
	var events []CallEvent
	obs := observerFunc(func(e CallEvent) { events = append(events, e) })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(wireResponse{Output: "not json"})
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.MaxRetries = 0
	client := NewHTTPClient(cfg, obs)

	_, err := client.GeneratePlan(context.Background(), PlanRequest{Date: "2025-06-01"})
	require.Error(t, err)

	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
	assert.Equal(t, "INVALID_OUTPUT", events[0].ErrorCode)
	assert.Equal(t, "2025-06-01", events[0].Date)
}

func TestAvailable(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	})

	assert.True(t, client.Available(context.Background()))
}

type observerFunc func(CallEvent)

func (f observerFunc) OnCallComplete(e CallEvent) { f(e) }
