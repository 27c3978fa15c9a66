package store

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks

import (
	"context"

	"github.com/situs-protocol/situs-indexer/internal/store/schema"
)

// Store defines the persistence interface for mirrored chain state
type Store interface {
	// OG operations
	UpsertOG(ctx context.Context, og *schema.OG) error
	GetOG(ctx context.Context, ogName string) (*schema.OG, error)
	GetOGByContract(ctx context.Context, contractAddress string) (*schema.OG, error)
	ListOGs(ctx context.Context) ([]schema.OG, error)
	CountAccounts(ctx context.Context, ogName string) (uint64, error)

	// Account operations
	UpsertAccount(ctx context.Context, account *schema.Account) (changed bool, err error)
	GetAccount(ctx context.Context, ogName string, tokenID uint64) (*schema.Account, error)
	GetAccountByContract(ctx context.Context, contractAddress string, tokenID uint64) (*schema.Account, error)
	ListAccounts(ctx context.Context, ogName string) ([]schema.Account, error)
	UpdateAccountImageHash(ctx context.Context, ogName string, tokenID uint64, imageHash string) error

	// Ensurance operations
	UpsertEnsuranceToken(ctx context.Context, token *schema.EnsuranceToken) (changed bool, err error)
	ListEnsuranceTokens(ctx context.Context, chain string) ([]schema.EnsuranceToken, error)

	// Operational state
	GetSyncCursor(ctx context.Context, ogName string) (uint64, error)
	SetSyncCursor(ctx context.Context, ogName string, tokenID uint64) error
}
