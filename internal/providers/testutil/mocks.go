package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// MockCostService is a mock implementation of the cost service for testing
type MockCostService struct {
	CalculateCostFunc func(provider, model string, inputTokens, outputTokens int, websearch bool) float64
}

func (m *MockCostService) CalculateCost(provider, model string, inputTokens, outputTokens int, websearch bool) float64 {
	if m.CalculateCostFunc != nil {
		return m.CalculateCostFunc(provider, model, inputTokens, outputTokens, websearch)
	}
	return 0.0015 // Default mock cost
}

// NewMockCostService creates a new mock cost service
func NewMockCostService() *MockCostService {
	return &MockCostService{}
}

// MockDeepResearchServer is a mock HTTP server for the deep research job
// API. Statuses is consumed one entry per retrieve call; the last entry
// repeats once exhausted.
type MockDeepResearchServer struct {
	Server   *httptest.Server
	JobID    string
	Statuses []string
	Result   string

	mu            sync.Mutex
	RetrieveCalls int
}

// NewMockDeepResearchServer creates a mock deep research API server
func NewMockDeepResearchServer() *MockDeepResearchServer {
	mock := &MockDeepResearchServer{
		JobID:    "job-test-123",
		Statuses: []string{"completed"},
		Result:   `{"executive_snapshot":{"summary":"test"}}`,
	}

	mux := http.NewServeMux()

	// POST /research/jobs - Submit job
	mux.HandleFunc("/research/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"job_id": mock.JobID})
	})

	// GET /research/jobs/:job_id - Retrieve job
	mux.HandleFunc("/research/jobs/", func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		call := mock.RetrieveCalls
		mock.RetrieveCalls++
		mock.mu.Unlock()

		if call >= len(mock.Statuses) {
			call = len(mock.Statuses) - 1
		}
		status := mock.Statuses[call]

		response := map[string]interface{}{
			"job_id": strings.TrimPrefix(r.URL.Path, "/research/jobs/"),
			"status": status,
		}
		if status == "completed" {
			response["result"] = map[string]string{"text": mock.Result}
		}
		if status == "failed" {
			response["error"] = "provider reported failure"
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})

	mock.Server = httptest.NewServer(mux)
	return mock
}

// Close shuts down the mock server
func (m *MockDeepResearchServer) Close() {
	m.Server.Close()
}
