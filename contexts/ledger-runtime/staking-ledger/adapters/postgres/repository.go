package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"agora/contexts/ledger-runtime/staking-ledger/domain/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the durable balance store. Both pools live in one row per
// account so UpdateBalances stays a single atomic write.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

type balanceModel struct {
	AccountID string `gorm:"column:account_id;primaryKey"`
	Free      uint64 `gorm:"column:free"`
	Staked    uint64 `gorm:"column:staked"`
	UpdatedAt time.Time
}

func (balanceModel) TableName() string {
	return "staking_balances"
}

func (r *Repository) GetBalances(ctx context.Context, account string) (entities.BalancePair[uint64], error) {
	var row balanceModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", account).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.BalancePair[uint64]{}, nil
		}
		return entities.BalancePair[uint64]{}, r.logError("staking_repo_get_balances_failed", err,
			"account", account,
		)
	}
	return entities.BalancePair[uint64]{Free: row.Free, Staked: row.Staked}, nil
}

func (r *Repository) SetFreeBalance(ctx context.Context, account string, amount uint64) error {
	row := balanceModel{
		AccountID: account,
		Free:      amount,
		UpdatedAt: time.Now().UTC(),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"free":       row.Free,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("staking_repo_set_free_balance_failed", create.Error,
			"account", account,
		)
	}
	return nil
}

func (r *Repository) UpdateBalances(ctx context.Context, account string, pair entities.BalancePair[uint64]) error {
	row := balanceModel{
		AccountID: account,
		Free:      pair.Free,
		Staked:    pair.Staked,
		UpdatedAt: time.Now().UTC(),
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"free":       row.Free,
			"staked":     row.Staked,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("staking_repo_update_balances_failed", create.Error,
			"account", account,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	attrs := append([]any{
		"event", event,
		"module", "ledger-runtime/staking-ledger",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("staking repository operation failed", attrs...)
	return err
}
