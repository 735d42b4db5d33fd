package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kjdelacruz/stagetally/internal/handlers"
	"github.com/kjdelacruz/stagetally/internal/logger"
	"github.com/kjdelacruz/stagetally/internal/services"
	"github.com/kjdelacruz/stagetally/internal/testutil"
)

// newTestServer wires real services over an in-memory database behind the
// full router.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := testutil.NewTestRepository(t)
	log := logger.New()

	audit := services.NewAuditService(log, repo)
	standings := services.NewStandingsService(log, repo)
	h := handlers.NewForTesting(
		services.NewEventService(log, repo, "http://test.local"),
		services.NewContestantService(log, repo),
		services.NewRegistryService(log, repo),
		services.NewLedgerService(log, repo),
		standings,
		services.NewLifecycleService(log, repo, standings, audit),
		audit,
	)

	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body failed: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
}

func createEvent(t *testing.T, srv *httptest.Server, name, eventType string) int64 {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/events", map[string]interface{}{
		"actor_id": 1, "name": name, "event_type": eventType,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var out map[string]int64
	decodeBody(t, resp, &out)
	return out["id"]
}

func TestCreateEvent_Endpoint(t *testing.T) {
	srv := newTestServer(t)

	id := createEvent(t, srv, "Miss Test", "pageant")
	if id == 0 {
		t.Fatal("expected non-zero event id")
	}

	resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/events/%d", srv.URL, id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var event map[string]interface{}
	decodeBody(t, resp, &event)
	if event["name"] != "Miss Test" {
		t.Errorf("expected name Miss Test, got %v", event["name"])
	}
}

func TestCreateEvent_ValidationError(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/events", map[string]interface{}{
		"actor_id": 1, "name": "Mystery", "event_type": "raffle",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad event type, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/events", map[string]interface{}{
		"name": "No Actor", "event_type": "pageant",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing actor_id, got %d", resp.StatusCode)
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/events/9999", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSegmentLifecycle_Endpoints(t *testing.T) {
	srv := newTestServer(t)
	eventID := createEvent(t, srv, "Miss Test", "pageant")

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/events/%d/segments", srv.URL, eventID), map[string]interface{}{
		"actor_id": 1, "name": "Talent", "weight": 30, "order_index": 1,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var out map[string]int64
	decodeBody(t, resp, &out)
	segID := out["id"]

	// Duplicate order index conflicts
	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/events/%d/segments", srv.URL, eventID), map[string]interface{}{
		"actor_id": 1, "name": "Gown", "weight": 30, "order_index": 1,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for order conflict, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/segments/%d/activate", srv.URL, segID), map[string]interface{}{
		"actor_id": 1,
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 activating segment, got %d", resp.StatusCode)
	}
}

func TestScoreAndLiveScores_Endpoints(t *testing.T) {
	srv := newTestServer(t)
	eventID := createEvent(t, srv, "Quiz Night", "quiz_bee")

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/events/%d/rounds", srv.URL, eventID), map[string]interface{}{
		"actor_id": 1, "name": "Easy", "points_per_question": 10, "total_questions": 10, "order_index": 1,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var round map[string]int64
	decodeBody(t, resp, &round)

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/events/%d/contestants", srv.URL, eventID), map[string]interface{}{
		"actor_id": 1, "candidate_number": 1, "name": "Team Red", "gender": "Male",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var team map[string]int64
	decodeBody(t, resp, &team)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/answers", map[string]interface{}{
		"tabulator_id": 1, "contestant_id": team["id"], "round_id": round["id"],
		"question_number": 1, "is_correct": true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 recording answer, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/events/%d/live-scores", srv.URL, eventID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var scores []map[string]interface{}
	decodeBody(t, resp, &scores)
	if len(scores) != 1 {
		t.Fatalf("expected 1 row, got %d", len(scores))
	}
	if scores[0]["total_score"].(float64) != 10 {
		t.Errorf("expected total 10, got %v", scores[0]["total_score"])
	}
}

func TestLeaderboardQR_Endpoint(t *testing.T) {
	srv := newTestServer(t)
	eventID := createEvent(t, srv, "Quiz Night", "quiz_bee")

	resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/events/%d/qr", srv.URL, eventID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected image/png, got %s", ct)
	}
}

func TestAuditTrail_Endpoint(t *testing.T) {
	srv := newTestServer(t)
	createEvent(t, srv, "Miss Test", "pageant")

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/audit", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var entries []map[string]interface{}
	decodeBody(t, resp, &entries)
	if len(entries) == 0 {
		t.Error("expected at least one audit entry after event creation")
	}
}
