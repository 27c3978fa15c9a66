package reconciler_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/situs-protocol/situs-indexer/internal/domain"
	"github.com/situs-protocol/situs-indexer/internal/reconciler"
	"github.com/situs-protocol/situs-indexer/internal/store/schema"
)

func storedAccount(tm *testReconcilerMocks, t *testing.T, tokenID uint64, name string) *schema.Account {
	return &schema.Account{
		OGName:          testOG,
		TokenID:         tokenID,
		AccountName:     name,
		FullAccountName: name + testOG,
		TBAAddress:      expectedTBA(t, tm.calculator, testContract, tokenID),
	}
}

func TestVerify_Clean(t *testing.T) {
	tm := setupTestReconciler(t, &reconciler.Config{FactoryAddress: testFactory})
	defer tearDownTestReconciler(tm)

	ctx := context.Background()

	tm.chain.EXPECT().OGNames(ctx, testFactory).Return([]string{testOG}, nil)
	tm.chain.EXPECT().OGAddress(ctx, testFactory, testOG).Return(testContract, nil)
	tm.chain.EXPECT().TotalSupply(ctx, testContract).Return(uint64(1), nil)

	tm.store.EXPECT().GetOG(ctx, testOG).Return(&schema.OG{OGName: testOG}, nil)
	tm.store.EXPECT().CountAccounts(ctx, testOG).Return(uint64(1), nil)

	tm.chain.EXPECT().DomainName(ctx, testContract, uint64(1)).Return("alice", nil)
	tm.store.EXPECT().GetAccount(ctx, testOG, uint64(1)).
		Return(storedAccount(tm, t, 1, "alice"), nil)

	report, err := tm.reconciler.Verify(ctx)

	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestVerify_MissingOG(t *testing.T) {
	tm := setupTestReconciler(t, &reconciler.Config{FactoryAddress: testFactory})
	defer tearDownTestReconciler(tm)

	ctx := context.Background()

	tm.chain.EXPECT().OGNames(ctx, testFactory).Return([]string{testOG}, nil)
	tm.chain.EXPECT().OGAddress(ctx, testFactory, testOG).Return(testContract, nil)
	tm.chain.EXPECT().TotalSupply(ctx, testContract).Return(uint64(3), nil)

	// OG is not mirrored at all: per-token checks are skipped
	tm.store.EXPECT().GetOG(ctx, testOG).Return(nil, domain.ErrOGNotFound)

	report, err := tm.reconciler.Verify(ctx)

	require.NoError(t, err)
	assert.False(t, report.Clean())
	require.Len(t, report.MissingOGs, 1)
	assert.Equal(t, testOG, report.MissingOGs[0].OGName)
	assert.Equal(t, testContract, report.MissingOGs[0].ContractAddress)
	assert.Empty(t, report.MissingAccounts)
}

func TestVerify_Discrepancies(t *testing.T) {
	tm := setupTestReconciler(t, &reconciler.Config{FactoryAddress: testFactory})
	defer tearDownTestReconciler(tm)

	ctx := context.Background()

	tm.chain.EXPECT().OGNames(ctx, testFactory).Return([]string{testOG}, nil)
	tm.chain.EXPECT().OGAddress(ctx, testFactory, testOG).Return(testContract, nil)
	tm.chain.EXPECT().TotalSupply(ctx, testContract).Return(uint64(3), nil)

	tm.store.EXPECT().GetOG(ctx, testOG).Return(&schema.OG{OGName: testOG}, nil)
	// Only 2 of 3 tokens are mirrored
	tm.store.EXPECT().CountAccounts(ctx, testOG).Return(uint64(2), nil)

	// Token 1: stored name diverges from chain
	tm.chain.EXPECT().DomainName(ctx, testContract, uint64(1)).Return("alicia", nil)
	tm.store.EXPECT().GetAccount(ctx, testOG, uint64(1)).
		Return(storedAccount(tm, t, 1, "alice"), nil)

	// Token 2: mirrored but missing its TBA
	tm.chain.EXPECT().DomainName(ctx, testContract, uint64(2)).Return("bob", nil)
	bob := storedAccount(tm, t, 2, "bob")
	bob.TBAAddress = ""
	tm.store.EXPECT().GetAccount(ctx, testOG, uint64(2)).Return(bob, nil)

	// Token 3: not mirrored
	tm.chain.EXPECT().DomainName(ctx, testContract, uint64(3)).Return("carol", nil)
	tm.store.EXPECT().GetAccount(ctx, testOG, uint64(3)).
		Return(nil, domain.ErrTokenNotFound)

	report, err := tm.reconciler.Verify(ctx)

	require.NoError(t, err)
	assert.False(t, report.Clean())

	require.Len(t, report.SupplyMismatches, 1)
	assert.Equal(t, uint64(2), report.SupplyMismatches[0].StoredCount)
	assert.Equal(t, uint64(3), report.SupplyMismatches[0].ChainSupply)

	// Name divergence produces both an account_name and a full_account_name entry
	require.Len(t, report.InvalidAccounts, 2)
	assert.Equal(t, "account_name", report.InvalidAccounts[0].Field)
	assert.Equal(t, "alice", report.InvalidAccounts[0].Stored)
	assert.Equal(t, "alicia", report.InvalidAccounts[0].OnChain)
	assert.Equal(t, "full_account_name", report.InvalidAccounts[1].Field)

	require.Len(t, report.MissingTBAs, 1)
	assert.Equal(t, uint64(2), report.MissingTBAs[0].TokenID)

	require.Len(t, report.MissingAccounts, 1)
	assert.Equal(t, uint64(3), report.MissingAccounts[0].TokenID)
}

func TestFix_MissingAccount(t *testing.T) {
	tm := setupTestReconciler(t, &reconciler.Config{FactoryAddress: testFactory})
	defer tearDownTestReconciler(tm)

	ctx := context.Background()
	report := &domain.ValidationReport{
		RunID: "report-run",
		MissingAccounts: []domain.AccountRef{
			{OGName: testOG, ContractAddress: testContract, TokenID: 3, AccountName: "carol"},
		},
	}

	// Still missing at fix time, so the account is synced in
	tm.store.EXPECT().GetAccount(ctx, testOG, uint64(3)).
		Return(nil, domain.ErrTokenNotFound)
	tm.chain.EXPECT().DomainName(ctx, testContract, uint64(3)).Return("carol", nil)
	tm.chain.EXPECT().OwnerOf(ctx, testContract, uint64(3)).
		Return("0x7D1AfA7B718fb893dB30A3aBc0Cfc608AaCfeBB0", nil)
	tm.store.EXPECT().
		UpsertAccount(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, account *schema.Account) (bool, error) {
			assert.Equal(t, "carol", account.AccountName)
			assert.Equal(t, expectedTBA(t, tm.calculator, testContract, 3), account.TBAAddress)
			assert.Equal(t, "0x7D1AfA7B718fb893dB30A3aBc0Cfc608AaCfeBB0", account.OwnerAddress)
			return true, nil
		})

	result, err := tm.reconciler.Fix(ctx, report)

	require.NoError(t, err)
	assert.Equal(t, 1, result.AccountsCreated)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)
}

func TestFix_SkipsResolvedEntries(t *testing.T) {
	tm := setupTestReconciler(t, &reconciler.Config{FactoryAddress: testFactory})
	defer tearDownTestReconciler(tm)

	ctx := context.Background()
	report := &domain.ValidationReport{
		MissingOGs: []domain.MissingOG{
			{OGName: testOG, ContractAddress: testContract},
		},
		MissingAccounts: []domain.AccountRef{
			{OGName: testOG, ContractAddress: testContract, TokenID: 1},
		},
		MissingTBAs: []domain.AccountRef{
			{OGName: testOG, ContractAddress: testContract, TokenID: 2},
		},
	}

	// Everything was repaired between verify and fix
	tm.store.EXPECT().GetOG(ctx, testOG).Return(&schema.OG{OGName: testOG}, nil)
	tm.store.EXPECT().GetAccount(ctx, testOG, uint64(1)).
		Return(storedAccount(tm, t, 1, "alice"), nil)
	tm.store.EXPECT().GetAccount(ctx, testOG, uint64(2)).
		Return(storedAccount(tm, t, 2, "bob"), nil)

	result, err := tm.reconciler.Fix(ctx, report)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, 0, result.OGsFixed)
	assert.Equal(t, 0, result.AccountsCreated)
	assert.Equal(t, 0, result.TBAsFilled)
}

func TestFix_MissingTBA(t *testing.T) {
	tm := setupTestReconciler(t, &reconciler.Config{FactoryAddress: testFactory})
	defer tearDownTestReconciler(tm)

	ctx := context.Background()
	report := &domain.ValidationReport{
		MissingTBAs: []domain.AccountRef{
			{OGName: testOG, ContractAddress: testContract, TokenID: 2},
		},
	}

	bob := storedAccount(tm, t, 2, "bob")
	bob.TBAAddress = ""
	tm.store.EXPECT().GetAccount(ctx, testOG, uint64(2)).Return(bob, nil)
	tm.store.EXPECT().
		UpsertAccount(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, account *schema.Account) (bool, error) {
			assert.Equal(t, expectedTBA(t, tm.calculator, testContract, 2), account.TBAAddress)
			return true, nil
		})

	result, err := tm.reconciler.Fix(ctx, report)

	require.NoError(t, err)
	assert.Equal(t, 1, result.TBAsFilled)
}

func TestFix_InvalidAccountReVerifiesAgainstChain(t *testing.T) {
	tm := setupTestReconciler(t, &reconciler.Config{FactoryAddress: testFactory})
	defer tearDownTestReconciler(tm)

	ctx := context.Background()
	ref := domain.AccountRef{OGName: testOG, ContractAddress: testContract, TokenID: 1}
	report := &domain.ValidationReport{
		InvalidAccounts: []domain.InvalidAccount{
			{Ref: ref, Field: "account_name", Stored: "alice", OnChain: "alicia"},
		},
	}

	t.Run("divergence still present gets corrected", func(t *testing.T) {
		tm.store.EXPECT().GetAccount(ctx, testOG, uint64(1)).
			Return(storedAccount(tm, t, 1, "alice"), nil)
		// Chain is re-read at fix time, not trusted from the report
		tm.chain.EXPECT().DomainName(ctx, testContract, uint64(1)).Return("alicia", nil)
		tm.store.EXPECT().
			UpsertAccount(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, account *schema.Account) (bool, error) {
				assert.Equal(t, "alicia", account.AccountName)
				assert.Equal(t, "alicia"+testOG, account.FullAccountName)
				return true, nil
			})

		result, err := tm.reconciler.Fix(ctx, report)
		require.NoError(t, err)
		assert.Equal(t, 1, result.AccountsCorrected)
	})

	t.Run("already-converged entry is skipped", func(t *testing.T) {
		tm.store.EXPECT().GetAccount(ctx, testOG, uint64(1)).
			Return(storedAccount(tm, t, 1, "alicia"), nil)
		tm.chain.EXPECT().DomainName(ctx, testContract, uint64(1)).Return("alicia", nil)

		result, err := tm.reconciler.Fix(ctx, report)
		require.NoError(t, err)
		assert.Equal(t, 0, result.AccountsCorrected)
		assert.Equal(t, 1, result.Skipped)
	})
}

func TestFix_CollectsErrors(t *testing.T) {
	tm := setupTestReconciler(t, &reconciler.Config{FactoryAddress: testFactory})
	defer tearDownTestReconciler(tm)

	ctx := context.Background()
	report := &domain.ValidationReport{
		MissingAccounts: []domain.AccountRef{
			{OGName: testOG, ContractAddress: testContract, TokenID: 1},
			{OGName: testOG, ContractAddress: testContract, TokenID: 2},
		},
	}

	// Token 1 fails at the chain read; token 2 still gets fixed
	tm.store.EXPECT().GetAccount(ctx, testOG, uint64(1)).
		Return(nil, domain.ErrTokenNotFound)
	tm.chain.EXPECT().DomainName(ctx, testContract, uint64(1)).Return("", assert.AnError)

	tm.store.EXPECT().GetAccount(ctx, testOG, uint64(2)).
		Return(nil, domain.ErrTokenNotFound)
	tm.chain.EXPECT().DomainName(ctx, testContract, uint64(2)).Return("bob", nil)
	tm.chain.EXPECT().OwnerOf(ctx, testContract, uint64(2)).
		Return("0x457ee5f723C7606c12a7264b52e285906F91eEA6", nil)
	tm.store.EXPECT().UpsertAccount(ctx, gomock.Any()).Return(true, nil)

	result, err := tm.reconciler.Fix(ctx, report)

	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "token 1")
	assert.Equal(t, 1, result.AccountsCreated)
}
