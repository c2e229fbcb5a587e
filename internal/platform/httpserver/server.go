package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	governanceregistry "agora/contexts/ledger-runtime/governance-registry"
	stakingledger "agora/contexts/ledger-runtime/staking-ledger"

	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "agora/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	staking    stakingledger.RuntimeModule
	governance governanceregistry.RuntimeModule
}

func New(
	staking stakingledger.RuntimeModule,
	governance governanceregistry.RuntimeModule,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		staking:    staking,
		governance: governance,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.Handler())
}

// Handler wraps the mux with request-id logging so every access line can be
// correlated with module logs.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		s.logger.Info("http request",
			"event", "http_request",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
		)
		w.Header().Set("X-Request-Id", requestID)
		s.mux.ServeHTTP(w, r)
	})
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/staking/v1/accounts/{account_id}/balance", s.handleSetBalance)
	s.mux.HandleFunc("POST /api/staking/v1/accounts/{account_id}/stake", s.handleStake)
	s.mux.HandleFunc("POST /api/staking/v1/accounts/{account_id}/unstake", s.handleUnstake)
	s.mux.HandleFunc("GET /api/staking/v1/accounts/{account_id}/balances", s.handleGetBalances)

	s.mux.HandleFunc("POST /api/governance/v1/proposals", s.handleCreateProposal)
	s.mux.HandleFunc("GET /api/governance/v1/proposals/{proposal_id}", s.handleGetProposal)
	s.mux.HandleFunc("POST /api/governance/v1/proposals/{proposal_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("GET /api/governance/v1/proposals/{proposal_id}/votes/{voter}", s.handleVoterBallot)
	s.mux.HandleFunc("POST /api/governance/v1/proposals/{proposal_id}/finalize", s.handleFinalizeProposal)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
