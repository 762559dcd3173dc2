package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/nexxia-ai/leadgen"
	"github.com/nexxia-ai/leadgen/ai"
	"github.com/nexxia-ai/leadgen/search"
	"github.com/nexxia-ai/leadgen/store"
)

// testModel answers every pipeline prompt with plausible content, keyed off
// the system prompt, so jobs run to completion.
func testModel() *ai.Model {
	return ai.NewDummyModel(func(ctx context.Context, messages []ai.Message) (ai.AIMessage, error) {
		_, system := messages[0].Value()
		var content string
		switch {
		case strings.Contains(system, "researching leads"):
			content = "bakery suppliers lisbon\nbakery directories lisbon"
		case strings.Contains(system, "extracts contact information"):
			content = "Name: Example Co\nEmail: hello@example.com"
		case strings.Contains(system, "actionable briefings"):
			content = "## Overview\n\n- Example Co"
		default:
			content = "## Executive Summary\n\nStrong leads were identified."
		}
		return ai.AIMessage{Role: ai.AssistantRole, Content: content}, nil
	})
}

func testSearch() search.Client {
	return search.NewDummyClient(func(ctx context.Context, query string) ([]search.Result, error) {
		return []search.Result{
			{Title: "Lead", URL: "https://example.com/" + strings.ReplaceAll(query, " ", "-"), Content: "content", Score: 0.8},
		}, nil
	})
}

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(testModel(), testSearch(), opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func submitJob(t *testing.T, ts *httptest.Server, body string) map[string]string {
	t.Helper()
	resp, err := http.Post(ts.URL+"/generate-leads", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var accepted map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&accepted))
	return accepted
}

func waitForStatus(t *testing.T, ts *httptest.Server, jobID, want string) store.Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(ts.URL + "/leads/" + jobID)
		require.NoError(t, err)
		var job store.Job
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&job))
		resp.Body.Close()
		if job.Status == want {
			return job
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("job %s never reached status %q", jobID, want)
	return store.Job{}
}

func TestPing(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["message"], "running")
}

func TestGenerateLeadsLifecycle(t *testing.T) {
	_, ts := newTestServer(t)

	accepted := submitJob(t, ts, `{
		"target_customers": "independent bakeries",
		"outreach_channels": "email",
		"business_type": "Bakery",
		"location": "Lisbon"
	}`)
	jobID := accepted["job_id"]
	require.NotEmpty(t, jobID)
	assert.Equal(t, "accepted", accepted["status"])
	assert.Equal(t, "/leads/ws/"+jobID, accepted["websocket_url"])

	job := waitForStatus(t, ts, jobID, "completed")
	assert.Equal(t, "Bakery in Lisbon", job.TargetDescription)
	assert.Empty(t, job.Error)

	resp, err := http.Get(ts.URL + "/leads/" + jobID + "/report")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Contains(t, report["report"], "# Lead Generation Report: Bakery in Lisbon")
}

func TestGenerateLeadsValidation(t *testing.T) {
	_, ts := newTestServer(t)

	tests := map[string]string{
		"empty body":       `{}`,
		"missing channels": `{"target_customers": "bakeries"}`,
		"invalid json":     `{`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/generate-leads", "application/json", bytes.NewBufferString(body))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestFailedJobRecordsError(t *testing.T) {
	failing := ai.NewDummyModel(func(ctx context.Context, messages []ai.Message) (ai.AIMessage, error) {
		return ai.AIMessage{}, errors.New("model unavailable")
	})
	srv := New(failing, testSearch())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	accepted := submitJob(t, ts, `{"target_customers": "bakeries", "outreach_channels": "email"}`)
	job := waitForStatus(t, ts, accepted["job_id"], "failed")
	assert.NotEmpty(t, job.Error)

	resp, err := http.Get(ts.URL + "/leads/" + accepted["job_id"] + "/report")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownJob(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/leads/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/leads/nope/report")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConfiguredStoreReceivesJob(t *testing.T) {
	st := store.NewMemoryStore()
	_, ts := newTestServer(t, WithStore(st))

	accepted := submitJob(t, ts, `{"target_customers": "bakeries", "outreach_channels": "email"}`)
	waitForStatus(t, ts, accepted["job_id"], "completed")

	report, err := st.GetReport(context.Background(), accepted["job_id"])
	require.NoError(t, err)
	assert.NotEmpty(t, report)
}

func TestWebSocketStreamsUpdates(t *testing.T) {
	_, ts := newTestServer(t)

	accepted := submitJob(t, ts, `{
		"target_customers": "independent bakeries",
		"outreach_channels": "email",
		"business_type": "Bakery",
		"location": "Lisbon"
	}`)
	jobID := accepted["job_id"]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1) + "/leads/ws/" + jobID
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	var statuses []string
	for {
		var update leadgen.StatusUpdate
		if err := wsjson.Read(ctx, conn, &update); err != nil {
			break
		}
		assert.Equal(t, jobID, update.JobID)
		statuses = append(statuses, update.Status)
		if update.Status == "completed" || update.Status == "failed" {
			break
		}
	}

	require.NotEmpty(t, statuses)
	last := statuses[len(statuses)-1]
	assert.Equal(t, "completed", last)
}

func TestWebSocketReplaysLastUpdateToLateSubscriber(t *testing.T) {
	srv, ts := newTestServer(t)

	accepted := submitJob(t, ts, `{"target_customers": "bakeries", "outreach_channels": "email"}`)
	jobID := accepted["job_id"]
	waitForStatus(t, ts, jobID, "completed")

	// Subscribe after the job finished; the hub replays the terminal update.
	updates, cancel := srv.hub.subscribe(jobID)
	defer cancel()

	select {
	case update := <-updates:
		assert.Equal(t, "completed", update.Status)
		assert.Contains(t, update.Result, "report")
	case <-time.After(time.Second):
		t.Fatal("no replayed update")
	}
}

func TestHubDropsUpdatesForSlowSubscriber(t *testing.T) {
	h := newHub()
	updates, cancel := h.subscribe("job-x")
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		h.Notify(context.Background(), leadgen.StatusUpdate{JobID: "job-x", Status: "enricher_progress"})
	}

	// The buffer bounds delivery; Notify never blocked to get here.
	assert.Len(t, updates, subscriberBuffer)
}
