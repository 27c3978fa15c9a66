package reconciler_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/situs-protocol/situs-indexer/internal/adapter"
	"github.com/situs-protocol/situs-indexer/internal/domain"
	"github.com/situs-protocol/situs-indexer/internal/mocks"
	"github.com/situs-protocol/situs-indexer/internal/reconciler"
	"github.com/situs-protocol/situs-indexer/internal/store/schema"
)

const (
	testEnsuranceContract = "0x99fc8AD516FBCC9bA3123D56e63A35d05AA9EFB8"
	testRecipient         = "0x457ee5f723C7606c12a7264b52e285906F91eEA6"
)

// setupTestEnsurance wires the base ensurance contract through the shared
// mock chain client
func setupTestEnsurance(t *testing.T) *testReconcilerMocks {
	tm := setupTestReconciler(t, &reconciler.Config{FactoryAddress: testFactory})
	tm.reconciler = reconciler.New(
		tm.chain,
		tm.store,
		tm.calculator,
		tm.httpClient,
		adapter.NewBase64(),
		tm.clock,
		&reconciler.Config{
			FactoryAddress: testFactory,
			Ensurance: map[string]reconciler.EnsuranceChain{
				"base": {Contract: testEnsuranceContract, Client: tm.chain},
			},
		},
	)
	return tm
}

func dataURI(t *testing.T, meta map[string]interface{}) string {
	t.Helper()
	raw, err := json.Marshal(meta)
	require.NoError(t, err)
	return "data:application/json;base64," + base64.StdEncoding.EncodeToString(raw)
}

func TestSyncEnsurance_DataURI(t *testing.T) {
	tm := setupTestEnsurance(t)
	defer tearDownTestReconciler(tm)

	ctx := context.Background()

	uri := dataURI(t, map[string]interface{}{
		"name":          "Ensurance 1",
		"description":   "A certificate",
		"image":         "ipfs://QmImage",
		"animation_url": "ipfs://QmAnim",
		"mime_type":     "video/mp4",
		"creator_reward_recipient_split": []map[string]interface{}{
			{"address": testRecipient, "percentAllocation": 100},
		},
	})

	tm.chain.EXPECT().TotalSupply(ctx, testEnsuranceContract).Return(uint64(1), nil)
	tm.chain.EXPECT().TokenURI(ctx, testEnsuranceContract, uint64(1)).Return(uri, nil)
	tm.chain.EXPECT().CreatorRewardRecipient(ctx, testEnsuranceContract, uint64(1)).
		Return(testRecipient, nil)

	tm.store.EXPECT().
		UpsertEnsuranceToken(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, token *schema.EnsuranceToken) (bool, error) {
			assert.Equal(t, "base", token.Chain)
			assert.Equal(t, uint64(1), token.TokenID)
			assert.Equal(t, "Ensurance 1", token.Name)
			assert.Equal(t, "A certificate", token.Description)
			assert.Equal(t, "ipfs://QmImage", token.ImageIPFS)
			assert.Equal(t, "ipfs://QmAnim", token.AnimationURLIPFS)
			assert.Equal(t, "video/mp4", token.MimeType)
			assert.Equal(t, testRecipient, token.CreatorRewardRecipient)

			var split []domain.SplitRecipient
			require.NoError(t, json.Unmarshal(token.CreatorRewardRecipientSplit, &split))
			require.Len(t, split, 1)
			assert.Equal(t, testRecipient, split[0].Address)
			assert.Equal(t, float64(100), split[0].PercentAllocation)

			return true, nil
		})

	results, err := tm.reconciler.SyncEnsurance(ctx)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.Chain("base"), results[0].Chain)
	assert.Equal(t, 1, results[0].TokensSynced)
	assert.Equal(t, 1, results[0].TokensChanged)
	assert.Empty(t, results[0].Errors)
}

func TestSyncEnsurance_IPFSGateway(t *testing.T) {
	tm := setupTestEnsurance(t)
	defer tearDownTestReconciler(tm)

	ctx := context.Background()

	tm.chain.EXPECT().TotalSupply(ctx, testEnsuranceContract).Return(uint64(1), nil)
	tm.chain.EXPECT().TokenURI(ctx, testEnsuranceContract, uint64(1)).
		Return("ipfs://QmMetaHash", nil)

	// ipfs:// URIs are fetched through the public gateway
	tm.httpClient.EXPECT().
		Get(gomock.Any(), "https://ipfs.io/ipfs/QmMetaHash", gomock.Any()).
		DoAndReturn(func(ctx context.Context, url string, result interface{}) error {
			raw := []byte(`{"name":"Gateway Cert","image":"ipfs://QmImg"}`)
			return json.Unmarshal(raw, result)
		})

	tm.chain.EXPECT().CreatorRewardRecipient(ctx, testEnsuranceContract, uint64(1)).
		Return(testRecipient, nil)
	tm.store.EXPECT().
		UpsertEnsuranceToken(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, token *schema.EnsuranceToken) (bool, error) {
			assert.Equal(t, "Gateway Cert", token.Name)
			assert.Empty(t, token.CreatorRewardRecipientSplit, "absent split stays null")
			return false, nil
		})

	results, err := tm.reconciler.SyncEnsurance(ctx)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].TokensSynced)
	assert.Equal(t, 0, results[0].TokensChanged)
}

func TestSyncEnsurance_UnsupportedScheme(t *testing.T) {
	tm := setupTestEnsurance(t)
	defer tearDownTestReconciler(tm)

	ctx := context.Background()

	tm.chain.EXPECT().TotalSupply(ctx, testEnsuranceContract).Return(uint64(1), nil)
	tm.chain.EXPECT().TokenURI(ctx, testEnsuranceContract, uint64(1)).
		Return("ar://arweave-id", nil)

	results, err := tm.reconciler.SyncEnsurance(ctx)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].TokensSynced)
	require.Len(t, results[0].Errors, 1)
	assert.Contains(t, results[0].Errors[0], "unsupported token uri scheme")
}

func TestSyncEnsurance_SupplyFailureIsScopedToChain(t *testing.T) {
	tm := setupTestEnsurance(t)
	defer tearDownTestReconciler(tm)

	ctx := context.Background()

	tm.chain.EXPECT().TotalSupply(ctx, testEnsuranceContract).
		Return(uint64(0), assert.AnError)

	results, err := tm.reconciler.SyncEnsurance(ctx)

	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Errors, 1)
	assert.Contains(t, results[0].Errors[0], "failed to read total supply")
}

func TestSyncEnsurance_TokenFailureContinues(t *testing.T) {
	tm := setupTestEnsurance(t)
	defer tearDownTestReconciler(tm)

	ctx := context.Background()

	tm.chain.EXPECT().TotalSupply(ctx, testEnsuranceContract).Return(uint64(2), nil)

	// Token 1 fails at the URI read
	tm.chain.EXPECT().TokenURI(ctx, testEnsuranceContract, uint64(1)).
		Return("", assert.AnError)

	// Token 2 syncs
	tm.chain.EXPECT().TokenURI(ctx, testEnsuranceContract, uint64(2)).
		Return(dataURI(t, map[string]interface{}{"name": "Cert 2"}), nil)
	tm.chain.EXPECT().CreatorRewardRecipient(ctx, testEnsuranceContract, uint64(2)).
		Return(testRecipient, nil)
	tm.store.EXPECT().UpsertEnsuranceToken(ctx, gomock.Any()).Return(true, nil)

	results, err := tm.reconciler.SyncEnsurance(ctx)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].TokensSynced)
	require.Len(t, results[0].Errors, 1)
	assert.Contains(t, results[0].Errors[0], "token 1")
}

func TestSyncEnsurance_ReadsEachChainThroughItsOwnClient(t *testing.T) {
	tm := setupTestReconciler(t, &reconciler.Config{FactoryAddress: testFactory})
	defer tearDownTestReconciler(tm)

	baseClient := mocks.NewMockClient(tm.ctrl)
	arbitrumClient := mocks.NewMockClient(tm.ctrl)
	arbitrumContract := "0x61fC35E0a9aF1b97E16f83e0bE66cC387740256e"

	tm.reconciler = reconciler.New(
		tm.chain,
		tm.store,
		tm.calculator,
		tm.httpClient,
		adapter.NewBase64(),
		tm.clock,
		&reconciler.Config{
			FactoryAddress: testFactory,
			Ensurance: map[string]reconciler.EnsuranceChain{
				"base":     {Contract: testEnsuranceContract, Client: baseClient},
				"arbitrum": {Contract: arbitrumContract, Client: arbitrumClient},
			},
		},
	)

	ctx := context.Background()

	// Each contract must be read through the client dialed for its chain
	baseClient.EXPECT().TotalSupply(ctx, testEnsuranceContract).Return(uint64(0), nil)
	arbitrumClient.EXPECT().TotalSupply(ctx, arbitrumContract).Return(uint64(0), nil)

	results, err := tm.reconciler.SyncEnsurance(ctx)

	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, result := range results {
		assert.Empty(t, result.Errors)
	}
}

func TestSyncEnsurance_MissingClientIsScopedToChain(t *testing.T) {
	tm := setupTestReconciler(t, &reconciler.Config{
		FactoryAddress: testFactory,
		Ensurance: map[string]reconciler.EnsuranceChain{
			"optimism": {Contract: testEnsuranceContract},
		},
	})
	defer tearDownTestReconciler(tm)

	results, err := tm.reconciler.SyncEnsurance(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.ChainOptimism, results[0].Chain)
	require.Len(t, results[0].Errors, 1)
	assert.Contains(t, results[0].Errors[0], "no rpc client configured")
}
