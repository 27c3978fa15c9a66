package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/situs-protocol/situs-indexer/internal/domain"
	"github.com/situs-protocol/situs-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// UpsertOG inserts or updates an OG row keyed by og_name
func (s *pgStore) UpsertOG(ctx context.Context, og *schema.OG) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "og_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"contract_address", "total_supply", "last_updated"}),
	}).Create(og).Error
	if err != nil {
		return fmt.Errorf("failed to upsert og: %w", err)
	}
	return nil
}

// GetOG retrieves an OG by name
func (s *pgStore) GetOG(ctx context.Context, ogName string) (*schema.OG, error) {
	var og schema.OG
	err := s.db.WithContext(ctx).Where("og_name = ?", ogName).First(&og).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOGNotFound
		}
		return nil, fmt.Errorf("failed to get og: %w", err)
	}
	return &og, nil
}

// GetOGByContract retrieves an OG by its collection contract address
func (s *pgStore) GetOGByContract(ctx context.Context, contractAddress string) (*schema.OG, error) {
	var og schema.OG
	err := s.db.WithContext(ctx).
		Where("LOWER(contract_address) = LOWER(?)", contractAddress).
		First(&og).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOGNotFound
		}
		return nil, fmt.Errorf("failed to get og by contract: %w", err)
	}
	return &og, nil
}

// ListOGs returns all known OGs ordered by name
func (s *pgStore) ListOGs(ctx context.Context) ([]schema.OG, error) {
	var ogs []schema.OG
	err := s.db.WithContext(ctx).Order("og_name ASC").Find(&ogs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ogs: %w", err)
	}
	return ogs, nil
}

// CountAccounts returns the number of stored accounts for an OG
func (s *pgStore) CountAccounts(ctx context.Context, ogName string) (uint64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Account{}).
		Where("og_name = ?", ogName).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return uint64(count), nil
}

// UpsertAccount inserts or updates an account row keyed by (og_name, token_id).
// It reports whether the stored row actually changed so callers can skip
// downstream work (image regeneration, cursor bumps) for no-op writes.
func (s *pgStore) UpsertAccount(ctx context.Context, account *schema.Account) (bool, error) {
	var existing schema.Account
	err := s.db.WithContext(ctx).
		Where("og_name = ? AND token_id = ?", account.OGName, account.TokenID).
		First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("failed to check existing account: %w", err)
		}
		account.CreatedAt = time.Now()
		account.UpdatedAt = account.CreatedAt
		if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
			return false, fmt.Errorf("failed to create account: %w", err)
		}
		return true, nil
	}

	if accountUnchanged(&existing, account) {
		return false, nil
	}

	account.CreatedAt = existing.CreatedAt
	account.UpdatedAt = time.Now()
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "og_name"}, {Name: "token_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"account_name", "full_account_name", "tba_address",
			"owner_address", "description", "updated_at",
		}),
	}).Create(account).Error
	if err != nil {
		return false, fmt.Errorf("failed to update account: %w", err)
	}
	return true, nil
}

// accountUnchanged compares the mutable chain-derived fields.
// image_hash is deliberately excluded: it tracks generated artifacts,
// not mirrored chain state.
func accountUnchanged(existing, incoming *schema.Account) bool {
	return existing.AccountName == incoming.AccountName &&
		existing.FullAccountName == incoming.FullAccountName &&
		existing.TBAAddress == incoming.TBAAddress &&
		existing.OwnerAddress == incoming.OwnerAddress &&
		existing.Description == incoming.Description
}

// GetAccount retrieves an account by its (og_name, token_id) key
func (s *pgStore) GetAccount(ctx context.Context, ogName string, tokenID uint64) (*schema.Account, error) {
	var account schema.Account
	err := s.db.WithContext(ctx).
		Where("og_name = ? AND token_id = ?", ogName, tokenID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetAccountByContract retrieves an account by its OG contract address and token ID.
// Used by the public metadata endpoints which address tokens by contract.
func (s *pgStore) GetAccountByContract(ctx context.Context, contractAddress string, tokenID uint64) (*schema.Account, error) {
	var account schema.Account
	err := s.db.WithContext(ctx).
		Joins("JOIN situs_ogs ON situs_ogs.og_name = situs_accounts.og_name").
		Where("LOWER(situs_ogs.contract_address) = LOWER(?) AND situs_accounts.token_id = ?", contractAddress, tokenID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get account by contract: %w", err)
	}
	return &account, nil
}

// ListAccounts returns all accounts for an OG ordered by token ID
func (s *pgStore) ListAccounts(ctx context.Context, ogName string) ([]schema.Account, error) {
	var accounts []schema.Account
	err := s.db.WithContext(ctx).
		Where("og_name = ?", ogName).
		Order("token_id ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccountImageHash records the content hash of the last generated image
func (s *pgStore) UpdateAccountImageHash(ctx context.Context, ogName string, tokenID uint64, imageHash string) error {
	result := s.db.WithContext(ctx).Model(&schema.Account{}).
		Where("og_name = ? AND token_id = ?", ogName, tokenID).
		Updates(map[string]interface{}{
			"image_hash": imageHash,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update image hash: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}

// UpsertEnsuranceToken inserts or updates an ensurance token keyed by (chain, token_id)
func (s *pgStore) UpsertEnsuranceToken(ctx context.Context, token *schema.EnsuranceToken) (bool, error) {
	var existing schema.EnsuranceToken
	err := s.db.WithContext(ctx).
		Where("chain = ? AND token_id = ?", token.Chain, token.TokenID).
		First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("failed to check existing ensurance token: %w", err)
		}
		token.UpdatedAt = time.Now()
		if err := s.db.WithContext(ctx).Create(token).Error; err != nil {
			return false, fmt.Errorf("failed to create ensurance token: %w", err)
		}
		return true, nil
	}

	if ensuranceUnchanged(&existing, token) {
		return false, nil
	}

	token.UpdatedAt = time.Now()
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chain"}, {Name: "token_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "image_ipfs", "animation_url_ipfs",
			"creator_reward_recipient", "creator_reward_recipient_split",
			"mime_type", "updated_at",
		}),
	}).Create(token).Error
	if err != nil {
		return false, fmt.Errorf("failed to update ensurance token: %w", err)
	}
	return true, nil
}

func ensuranceUnchanged(existing, incoming *schema.EnsuranceToken) bool {
	return existing.Name == incoming.Name &&
		existing.Description == incoming.Description &&
		existing.ImageIPFS == incoming.ImageIPFS &&
		existing.AnimationURLIPFS == incoming.AnimationURLIPFS &&
		existing.CreatorRewardRecipient == incoming.CreatorRewardRecipient &&
		string(existing.CreatorRewardRecipientSplit) == string(incoming.CreatorRewardRecipientSplit) &&
		existing.MimeType == incoming.MimeType
}

// ListEnsuranceTokens returns all ensurance tokens for a chain ordered by token ID
func (s *pgStore) ListEnsuranceTokens(ctx context.Context, chain string) ([]schema.EnsuranceToken, error) {
	var tokens []schema.EnsuranceToken
	err := s.db.WithContext(ctx).
		Where("chain = ?", chain).
		Order("token_id ASC").
		Find(&tokens).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ensurance tokens: %w", err)
	}
	return tokens, nil
}

func syncCursorKey(ogName string) string {
	return "sync_cursor:" + ogName
}

// GetSyncCursor returns the highest token ID already mirrored for an OG.
// A missing cursor means no tokens have been mirrored yet and returns 0.
func (s *pgStore) GetSyncCursor(ctx context.Context, ogName string) (uint64, error) {
	var kv schema.KeyValue
	err := s.db.WithContext(ctx).Where("key = ?", syncCursorKey(ogName)).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get sync cursor: %w", err)
	}

	cursor, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse sync cursor %q: %w", kv.Value, err)
	}
	return cursor, nil
}

// SetSyncCursor records the highest token ID mirrored for an OG
func (s *pgStore) SetSyncCursor(ctx context.Context, ogName string, tokenID uint64) error {
	kv := schema.KeyValue{
		Key:       syncCursorKey(ogName),
		Value:     strconv.FormatUint(tokenID, 10),
		UpdatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set sync cursor: %w", err)
	}
	return nil
}
