package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"agora/contexts/ledger-runtime/governance-registry/domain/entities"
	domainerrors "agora/contexts/ledger-runtime/governance-registry/domain/errors"
	"agora/contexts/ledger-runtime/governance-registry/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Repository is the durable registry state for string account ids.
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

type proposalModel struct {
	ProposalID  uint64 `gorm:"column:proposal_id;primaryKey"`
	Description string `gorm:"column:description"`
	Creator     string `gorm:"column:creator"`
	YesVotes    uint64 `gorm:"column:yes_votes"`
	NoVotes     uint64 `gorm:"column:no_votes"`
	Status      string `gorm:"column:status"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (proposalModel) TableName() string {
	return "governance_proposals"
}

type voteModel struct {
	Voter      string    `gorm:"column:voter;primaryKey"`
	ProposalID uint64    `gorm:"column:proposal_id;primaryKey"`
	Approve    bool      `gorm:"column:approve"`
	CastAt     time.Time `gorm:"column:cast_at"`
}

func (voteModel) TableName() string {
	return "governance_votes"
}

type outboxModel struct {
	OutboxID    string `gorm:"column:outbox_id;primaryKey"`
	EventType   string `gorm:"column:event_type"`
	Payload     []byte `gorm:"column:payload"`
	Status      string `gorm:"column:status"`
	CreatedAt   time.Time
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "governance_outbox"
}

// CreateProposal assigns the next sequential id inside one transaction so
// ids stay gapless and are never reused.
func (r *Repository) CreateProposal(ctx context.Context, proposal entities.Proposal[string]) (uint64, error) {
	row := proposalModelFromEntity(proposal)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next uint64
		if err := tx.Model(&proposalModel{}).
			Select("COALESCE(MAX(proposal_id) + 1, 0)").
			Scan(&next).Error; err != nil {
			return err
		}
		row.ProposalID = next
		return tx.Create(&row).Error
	})
	if err != nil {
		return 0, r.logError("governance_repo_create_proposal_failed", err,
			"creator", proposal.Creator,
		)
	}
	return row.ProposalID, nil
}

func (r *Repository) GetProposal(ctx context.Context, proposalID uint64) (entities.Proposal[string], bool, error) {
	var row proposalModel
	err := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Proposal[string]{}, false, nil
		}
		return entities.Proposal[string]{}, false, r.logError("governance_repo_get_proposal_failed", err,
			"proposal_id", proposalID,
		)
	}
	return proposalEntityFromModel(row), true, nil
}

func (r *Repository) SaveProposal(ctx context.Context, proposal entities.Proposal[string]) error {
	row := proposalModelFromEntity(proposal)
	update := r.db.WithContext(ctx).
		Model(&proposalModel{}).
		Where("proposal_id = ?", row.ProposalID).
		Updates(map[string]any{
			"yes_votes":  row.YesVotes,
			"no_votes":   row.NoVotes,
			"status":     row.Status,
			"updated_at": row.UpdatedAt,
		})
	if update.Error != nil {
		return r.logError("governance_repo_save_proposal_failed", update.Error,
			"proposal_id", proposal.ProposalID,
		)
	}
	return nil
}

// InsertVote relies on the composite primary key: a duplicate (voter,
// proposal) insert surfaces as a unique violation and maps to
// ErrAlreadyVoted, leaving the original row untouched.
func (r *Repository) InsertVote(ctx context.Context, vote entities.VoteRecord[string]) error {
	row := voteModel{
		Voter:      vote.Key.Voter,
		ProposalID: vote.Key.ProposalID,
		Approve:    vote.Approve,
		CastAt:     vote.CastAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyVoted
		}
		return r.logError("governance_repo_insert_vote_failed", err,
			"proposal_id", vote.Key.ProposalID,
			"voter", vote.Key.Voter,
		)
	}
	return nil
}

func (r *Repository) GetVote(ctx context.Context, key entities.VoteKey[string]) (entities.VoteRecord[string], bool, error) {
	var row voteModel
	err := r.db.WithContext(ctx).
		Where("voter = ? AND proposal_id = ?", key.Voter, key.ProposalID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VoteRecord[string]{}, false, nil
		}
		return entities.VoteRecord[string]{}, false, r.logError("governance_repo_get_vote_failed", err,
			"proposal_id", key.ProposalID,
			"voter", key.Voter,
		)
	}
	return entities.VoteRecord[string]{
		Key:     entities.VoteKey[string]{Voter: row.Voter, ProposalID: row.ProposalID},
		Approve: row.Approve,
		CastAt:  row.CastAt,
	}, true, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, message ports.OutboxMessage) error {
	row := outboxModel{
		OutboxID:    message.OutboxID,
		EventType:   message.EventType,
		Payload:     message.Payload,
		Status:      outboxStatusPending,
		CreatedAt:   message.CreatedAt.UTC(),
		PublishedAt: nil,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("governance_repo_append_outbox_failed", err,
			"outbox_id", message.OutboxID,
			"event_type", message.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("governance_repo_list_pending_outbox_failed", err)
	}
	messages := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, ports.OutboxMessage{
			OutboxID:    row.OutboxID,
			EventType:   row.EventType,
			Payload:     row.Payload,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt,
			PublishedAt: row.PublishedAt,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	published := publishedAt.UTC()
	update := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": &published,
		})
	if update.Error != nil {
		return r.logError("governance_repo_mark_outbox_published_failed", update.Error,
			"outbox_id", outboxID,
		)
	}
	return nil
}

// SystemClock satisfies the Clock port with wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator satisfies the IDGenerator port with random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func proposalModelFromEntity(proposal entities.Proposal[string]) proposalModel {
	return proposalModel{
		ProposalID:  proposal.ProposalID,
		Description: proposal.Description,
		Creator:     proposal.Creator,
		YesVotes:    proposal.YesVotes,
		NoVotes:     proposal.NoVotes,
		Status:      string(proposal.Status),
		CreatedAt:   proposal.CreatedAt.UTC(),
		UpdatedAt:   proposal.UpdatedAt.UTC(),
	}
}

func proposalEntityFromModel(row proposalModel) entities.Proposal[string] {
	return entities.Proposal[string]{
		ProposalID:  row.ProposalID,
		Description: row.Description,
		Creator:     row.Creator,
		YesVotes:    row.YesVotes,
		NoVotes:     row.NoVotes,
		Status:      entities.ProposalStatus(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func (r *Repository) logError(event string, err error, args ...any) error {
	attrs := append([]any{
		"event", event,
		"module", "ledger-runtime/governance-registry",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("governance repository operation failed", attrs...)
	return err
}
