package httpserver_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	governanceregistry "agora/contexts/ledger-runtime/governance-registry"
	stakingledger "agora/contexts/ledger-runtime/staking-ledger"
	"agora/internal/platform/httpserver"
)

func newTestServer() *httptest.Server {
	server := httpserver.New(
		stakingledger.NewInMemoryRuntimeModule(nil),
		governanceregistry.NewInMemoryRuntimeModule(nil),
		nil,
		"",
	)
	return httptest.NewServer(server.Handler())
}

func TestStakingRoutes(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	status, body := doJSON(t, ts, http.MethodPost, "/api/staking/v1/accounts/alice/balance", "", `{"amount":1000}`)
	if status != http.StatusOK {
		t.Fatalf("set balance status = %d, body %s", status, body)
	}

	status, body = doJSON(t, ts, http.MethodPost, "/api/staking/v1/accounts/alice/stake", "", `{"amount":400}`)
	if status != http.StatusOK {
		t.Fatalf("stake status = %d, body %s", status, body)
	}

	var balances struct {
		AccountID string `json:"account_id"`
		Free      uint64 `json:"free"`
		Staked    uint64 `json:"staked"`
	}
	status, body = doJSON(t, ts, http.MethodGet, "/api/staking/v1/accounts/alice/balances", "", "")
	if status != http.StatusOK {
		t.Fatalf("balances status = %d, body %s", status, body)
	}
	if err := json.Unmarshal([]byte(body), &balances); err != nil {
		t.Fatalf("decode balances: %v", err)
	}
	if balances.Free != 600 || balances.Staked != 400 {
		t.Fatalf("balances = %d/%d, want 600/400", balances.Free, balances.Staked)
	}

	status, body = doJSON(t, ts, http.MethodPost, "/api/staking/v1/accounts/alice/stake", "", `{"amount":5000}`)
	if status != http.StatusConflict {
		t.Fatalf("overdrawn stake status = %d, body %s", status, body)
	}
	if !strings.Contains(body, "insufficient_balance") {
		t.Fatalf("expected insufficient_balance code, body %s", body)
	}
}

func TestGovernanceRoutes(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	status, body := doJSON(t, ts, http.MethodPost, "/api/governance/v1/proposals", "alice", `{"description":"Increase validator rewards"}`)
	if status != http.StatusCreated {
		t.Fatalf("create proposal status = %d, body %s", status, body)
	}
	var proposal struct {
		ProposalID uint64 `json:"proposal_id"`
		Status     string `json:"status"`
	}
	if err := json.Unmarshal([]byte(body), &proposal); err != nil {
		t.Fatalf("decode proposal: %v", err)
	}
	if proposal.ProposalID != 0 || proposal.Status != "active" {
		t.Fatalf("proposal = id %d status %s, want id 0 active", proposal.ProposalID, proposal.Status)
	}

	status, body = doJSON(t, ts, http.MethodPost, "/api/governance/v1/proposals/0/votes", "bob", `{"approve":true}`)
	if status != http.StatusOK {
		t.Fatalf("vote status = %d, body %s", status, body)
	}
	status, body = doJSON(t, ts, http.MethodPost, "/api/governance/v1/proposals/0/votes", "bob", `{"approve":false}`)
	if status != http.StatusConflict || !strings.Contains(body, "already_voted") {
		t.Fatalf("duplicate vote status = %d, body %s", status, body)
	}

	status, body = doJSON(t, ts, http.MethodGet, "/api/governance/v1/proposals/0/votes/bob", "", "")
	if status != http.StatusOK || !strings.Contains(body, `"approve":true`) {
		t.Fatalf("ballot status = %d, body %s", status, body)
	}

	status, body = doJSON(t, ts, http.MethodPost, "/api/governance/v1/proposals/0/finalize", "", "")
	if status != http.StatusOK || !strings.Contains(body, `"status":"approved"`) {
		t.Fatalf("finalize status = %d, body %s", status, body)
	}
	status, body = doJSON(t, ts, http.MethodPost, "/api/governance/v1/proposals/0/finalize", "", "")
	if status != http.StatusConflict || !strings.Contains(body, "proposal_finalized") {
		t.Fatalf("re-finalize status = %d, body %s", status, body)
	}

	status, body = doJSON(t, ts, http.MethodGet, "/api/governance/v1/proposals/99", "", "")
	if status != http.StatusNotFound || !strings.Contains(body, "proposal_not_found") {
		t.Fatalf("unknown proposal status = %d, body %s", status, body)
	}

	status, body = doJSON(t, ts, http.MethodPost, "/api/governance/v1/proposals", "", `{"description":"x"}`)
	if status != http.StatusUnauthorized {
		t.Fatalf("missing user status = %d, body %s", status, body)
	}
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, userID, payload string) (int, string) {
	t.Helper()
	var reader *strings.Reader
	if payload == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(payload)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp.StatusCode, string(raw)
}
