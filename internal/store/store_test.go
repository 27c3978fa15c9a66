package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/situs-protocol/situs-indexer/internal/domain"
	"github.com/situs-protocol/situs-indexer/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func buildTestOG(ogName, contract string, supply uint64) *schema.OG {
	return &schema.OG{
		OGName:          ogName,
		ContractAddress: contract,
		TotalSupply:     supply,
		LastUpdated:     time.Now().UTC(),
	}
}

func buildTestAccount(ogName string, tokenID uint64, accountName string) *schema.Account {
	return &schema.Account{
		OGName:          ogName,
		TokenID:         tokenID,
		AccountName:     accountName,
		FullAccountName: accountName + ogName,
		TBAAddress:      "0x1111111111111111111111111111111111111111",
	}
}

func buildTestEnsuranceToken(chain string, tokenID uint64, name string) *schema.EnsuranceToken {
	split, _ := json.Marshal([]domain.SplitRecipient{
		{Address: "0x2222222222222222222222222222222222222222", PercentAllocation: 100},
	})
	return &schema.EnsuranceToken{
		Chain:                       chain,
		TokenID:                     tokenID,
		Name:                        name,
		Description:                 "certificate",
		ImageIPFS:                   "ipfs://QmImage",
		AnimationURLIPFS:            "ipfs://QmAnim",
		CreatorRewardRecipient:      "0x3333333333333333333333333333333333333333",
		CreatorRewardRecipientSplit: datatypes.JSON(split),
		MimeType:                    "image/png",
	}
}

// =============================================================================
// Shared test suite, run against each Store implementation
// =============================================================================

// RunStoreTests runs the full store contract against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store Store)
	}{
		{"OGUpsertAndGet", testOGUpsertAndGet},
		{"OGGetByContract", testOGGetByContract},
		{"OGList", testOGList},
		{"AccountUpsertChangeDetection", testAccountUpsertChangeDetection},
		{"AccountGet", testAccountGet},
		{"AccountGetByContract", testAccountGetByContract},
		{"AccountList", testAccountList},
		{"AccountCount", testAccountCount},
		{"AccountImageHash", testAccountImageHash},
		{"EnsuranceUpsertChangeDetection", testEnsuranceUpsertChangeDetection},
		{"EnsuranceList", testEnsuranceList},
		{"SyncCursor", testSyncCursor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}

func testOGUpsertAndGet(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertOG(ctx, buildTestOG(".basin", "0xAbC0000000000000000000000000000000000001", 3)))

	og, err := store.GetOG(ctx, ".basin")
	require.NoError(t, err)
	assert.Equal(t, ".basin", og.OGName)
	assert.Equal(t, "0xAbC0000000000000000000000000000000000001", og.ContractAddress)
	assert.Equal(t, uint64(3), og.TotalSupply)

	// Second upsert with a new supply updates in place
	require.NoError(t, store.UpsertOG(ctx, buildTestOG(".basin", "0xAbC0000000000000000000000000000000000001", 5)))

	og, err = store.GetOG(ctx, ".basin")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), og.TotalSupply)

	_, err = store.GetOG(ctx, ".missing")
	assert.ErrorIs(t, err, domain.ErrOGNotFound)
}

func testOGGetByContract(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertOG(ctx, buildTestOG(".basin", "0xAbC0000000000000000000000000000000000001", 1)))

	// Lookup is case-insensitive: callers pass whatever casing arrived on the wire
	og, err := store.GetOGByContract(ctx, "0xabc0000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, ".basin", og.OGName)

	_, err = store.GetOGByContract(ctx, "0x9999999999999999999999999999999999999999")
	assert.ErrorIs(t, err, domain.ErrOGNotFound)
}

func testOGList(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertOG(ctx, buildTestOG(".zeta", "0x0000000000000000000000000000000000000002", 1)))
	require.NoError(t, store.UpsertOG(ctx, buildTestOG(".alpha", "0x0000000000000000000000000000000000000001", 1)))

	ogs, err := store.ListOGs(ctx)
	require.NoError(t, err)
	require.Len(t, ogs, 2)
	assert.Equal(t, ".alpha", ogs[0].OGName)
	assert.Equal(t, ".zeta", ogs[1].OGName)
}

func testAccountUpsertChangeDetection(t *testing.T, store Store) {
	ctx := context.Background()

	account := buildTestAccount(".basin", 1, "alice")
	changed, err := store.UpsertAccount(ctx, account)
	require.NoError(t, err)
	assert.True(t, changed, "first insert is a change")

	// Identical upsert is a no-op
	changed, err = store.UpsertAccount(ctx, buildTestAccount(".basin", 1, "alice"))
	require.NoError(t, err)
	assert.False(t, changed, "identical upsert must report unchanged")

	// Changing a mirrored field reports changed
	renamed := buildTestAccount(".basin", 1, "alicia")
	changed, err = store.UpsertAccount(ctx, renamed)
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := store.GetAccount(ctx, ".basin", 1)
	require.NoError(t, err)
	assert.Equal(t, "alicia", got.AccountName)
	assert.Equal(t, "alicia.basin", got.FullAccountName)
}

func testAccountGet(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.UpsertAccount(ctx, buildTestAccount(".basin", 1, "alice"))
	require.NoError(t, err)

	got, err := store.GetAccount(ctx, ".basin", 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.AccountName)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", got.TBAAddress)

	_, err = store.GetAccount(ctx, ".basin", 99)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)

	_, err = store.GetAccount(ctx, ".other", 1)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func testAccountGetByContract(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertOG(ctx, buildTestOG(".basin", "0xAbC0000000000000000000000000000000000001", 1)))
	_, err := store.UpsertAccount(ctx, buildTestAccount(".basin", 1, "alice"))
	require.NoError(t, err)

	got, err := store.GetAccountByContract(ctx, "0xABC0000000000000000000000000000000000001", 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.AccountName)
	assert.Equal(t, ".basin", got.OGName)

	_, err = store.GetAccountByContract(ctx, "0xABC0000000000000000000000000000000000001", 2)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)

	_, err = store.GetAccountByContract(ctx, "0x9999999999999999999999999999999999999999", 1)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func testAccountList(t *testing.T, store Store) {
	ctx := context.Background()

	for _, tokenID := range []uint64{3, 1, 2} {
		_, err := store.UpsertAccount(ctx, buildTestAccount(".basin", tokenID, "acct"))
		require.NoError(t, err)
	}
	_, err := store.UpsertAccount(ctx, buildTestAccount(".other", 1, "elsewhere"))
	require.NoError(t, err)

	accounts, err := store.ListAccounts(ctx, ".basin")
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, uint64(1), accounts[0].TokenID)
	assert.Equal(t, uint64(2), accounts[1].TokenID)
	assert.Equal(t, uint64(3), accounts[2].TokenID)

	empty, err := store.ListAccounts(ctx, ".nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testAccountCount(t *testing.T, store Store) {
	ctx := context.Background()

	count, err := store.CountAccounts(ctx, ".basin")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)

	for tokenID := uint64(1); tokenID <= 4; tokenID++ {
		_, err := store.UpsertAccount(ctx, buildTestAccount(".basin", tokenID, "acct"))
		require.NoError(t, err)
	}

	count, err = store.CountAccounts(ctx, ".basin")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), count)
}

func testAccountImageHash(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.UpsertAccount(ctx, buildTestAccount(".basin", 1, "alice"))
	require.NoError(t, err)

	require.NoError(t, store.UpdateAccountImageHash(ctx, ".basin", 1, "deadbeef"))

	got, err := store.GetAccount(ctx, ".basin", 1)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", got.ImageHash)

	// An unchanged re-upsert must not clobber the stored hash
	changed, err := store.UpsertAccount(ctx, buildTestAccount(".basin", 1, "alice"))
	require.NoError(t, err)
	assert.False(t, changed)

	got, err = store.GetAccount(ctx, ".basin", 1)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", got.ImageHash)

	err = store.UpdateAccountImageHash(ctx, ".basin", 99, "deadbeef")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func testEnsuranceUpsertChangeDetection(t *testing.T, store Store) {
	ctx := context.Background()

	changed, err := store.UpsertEnsuranceToken(ctx, buildTestEnsuranceToken("base", 1, "Cert 1"))
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = store.UpsertEnsuranceToken(ctx, buildTestEnsuranceToken("base", 1, "Cert 1"))
	require.NoError(t, err)
	assert.False(t, changed, "identical upsert must report unchanged")

	changed, err = store.UpsertEnsuranceToken(ctx, buildTestEnsuranceToken("base", 1, "Cert 1 v2"))
	require.NoError(t, err)
	assert.True(t, changed)

	tokens, err := store.ListEnsuranceTokens(ctx, "base")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "Cert 1 v2", tokens[0].Name)
}

func testEnsuranceList(t *testing.T, store Store) {
	ctx := context.Background()

	for _, tokenID := range []uint64{2, 1} {
		_, err := store.UpsertEnsuranceToken(ctx, buildTestEnsuranceToken("base", tokenID, "Cert"))
		require.NoError(t, err)
	}
	_, err := store.UpsertEnsuranceToken(ctx, buildTestEnsuranceToken("arbitrum", 1, "Cert"))
	require.NoError(t, err)

	tokens, err := store.ListEnsuranceTokens(ctx, "base")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, uint64(1), tokens[0].TokenID)
	assert.Equal(t, uint64(2), tokens[1].TokenID)

	other, err := store.ListEnsuranceTokens(ctx, "optimism")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func testSyncCursor(t *testing.T, store Store) {
	ctx := context.Background()

	// A missing cursor reads as zero
	cursor, err := store.GetSyncCursor(ctx, ".basin")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cursor)

	require.NoError(t, store.SetSyncCursor(ctx, ".basin", 7))

	cursor, err = store.GetSyncCursor(ctx, ".basin")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cursor)

	// Overwrite advances in place
	require.NoError(t, store.SetSyncCursor(ctx, ".basin", 8))

	cursor, err = store.GetSyncCursor(ctx, ".basin")
	require.NoError(t, err)
	assert.Equal(t, uint64(8), cursor)

	// Cursors are per OG
	cursor, err = store.GetSyncCursor(ctx, ".other")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cursor)
}
