package governanceregistry

import (
	"log/slog"

	httpadapter "agora/contexts/ledger-runtime/governance-registry/adapters/http"
	"agora/contexts/ledger-runtime/governance-registry/adapters/memory"
	"agora/contexts/ledger-runtime/governance-registry/application/commands"
	"agora/contexts/ledger-runtime/governance-registry/application/queries"
	"agora/contexts/ledger-runtime/governance-registry/ports"
)

// Module is the generic core, instantiated once per deployment with the
// account-identifier type shared with the staking ledger.
type Module[ID comparable] struct {
	Proposals commands.ProposalUseCase[ID]
	Queries   queries.ProposalQueries[ID]
	Store     *memory.Store[ID]
}

type Dependencies[ID comparable] struct {
	Proposals ports.ProposalRepository[ID]
	Votes     ports.VoteLedger[ID]
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule[ID comparable](deps Dependencies[ID]) Module[ID] {
	return Module[ID]{
		Proposals: commands.ProposalUseCase[ID]{
			Proposals: deps.Proposals,
			Votes:     deps.Votes,
			Outbox:    deps.Outbox,
			Clock:     deps.Clock,
			IDGen:     deps.IDGen,
			Logger:    deps.Logger,
		},
		Queries: queries.ProposalQueries[ID]{
			Proposals: deps.Proposals,
			Votes:     deps.Votes,
		},
	}
}

func NewInMemoryModule[ID comparable](logger *slog.Logger) Module[ID] {
	store := memory.NewStore[ID]()
	module := NewModule(Dependencies[ID]{
		Proposals: store,
		Votes:     store,
		Outbox:    store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}

// RuntimeModule is the API-process instantiation: string account ids plus
// the HTTP adapter over them.
type RuntimeModule struct {
	Module[string]
	Handler httpadapter.Handler
}

func NewRuntimeModule(deps Dependencies[string]) RuntimeModule {
	module := NewModule(deps)
	return RuntimeModule{
		Module: module,
		Handler: httpadapter.Handler{
			Proposals: module.Proposals,
			Queries:   module.Queries,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryRuntimeModule(logger *slog.Logger) RuntimeModule {
	store := memory.NewStore[string]()
	module := NewRuntimeModule(Dependencies[string]{
		Proposals: store,
		Votes:     store,
		Outbox:    store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
