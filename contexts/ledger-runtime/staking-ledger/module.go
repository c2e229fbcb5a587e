package stakingledger

import (
	"log/slog"

	httpadapter "agora/contexts/ledger-runtime/staking-ledger/adapters/http"
	"agora/contexts/ledger-runtime/staking-ledger/adapters/memory"
	"agora/contexts/ledger-runtime/staking-ledger/application/commands"
	"agora/contexts/ledger-runtime/staking-ledger/application/queries"
	"agora/contexts/ledger-runtime/staking-ledger/ports"
	"agora/internal/shared/runtimecfg"
)

// Module is the generic core, instantiated once per deployment with the
// account-identifier and balance types from runtimecfg.
type Module[ID comparable, B runtimecfg.Balance] struct {
	Staking  commands.StakeUseCase[ID, B]
	Balances queries.BalanceUseCase[ID, B]
	Store    *memory.Store[ID, B]
}

type Dependencies[ID comparable, B runtimecfg.Balance] struct {
	Balances ports.BalanceStore[ID, B]
	Logger   *slog.Logger
}

func NewModule[ID comparable, B runtimecfg.Balance](deps Dependencies[ID, B]) Module[ID, B] {
	return Module[ID, B]{
		Staking: commands.StakeUseCase[ID, B]{
			Balances: deps.Balances,
			Logger:   deps.Logger,
		},
		Balances: queries.BalanceUseCase[ID, B]{
			Balances: deps.Balances,
		},
	}
}

func NewInMemoryModule[ID comparable, B runtimecfg.Balance](logger *slog.Logger) Module[ID, B] {
	store := memory.NewStore[ID, B]()
	module := NewModule(Dependencies[ID, B]{
		Balances: store,
		Logger:   logger,
	})
	module.Store = store
	return module
}

// RuntimeModule is the API-process instantiation: string account ids and
// uint64 balances, plus the HTTP adapter over them.
type RuntimeModule struct {
	Module[string, uint64]
	Handler httpadapter.Handler
}

func NewRuntimeModule(deps Dependencies[string, uint64]) RuntimeModule {
	module := NewModule(deps)
	return RuntimeModule{
		Module: module,
		Handler: httpadapter.Handler{
			Staking:  module.Staking,
			Balances: module.Balances,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryRuntimeModule(logger *slog.Logger) RuntimeModule {
	store := memory.NewStore[string, uint64]()
	module := NewRuntimeModule(Dependencies[string, uint64]{
		Balances: store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
