package reconciler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/situs-protocol/situs-indexer/internal/domain"
	"github.com/situs-protocol/situs-indexer/internal/logger"
	"github.com/situs-protocol/situs-indexer/internal/store/schema"
)

const ipfsGatewayBase = "https://ipfs.io/ipfs/"

// ensuranceTokenMeta is the token URI JSON shape published by the ensurance
// contracts. Media pointers stay content-addressed (ipfs://...); they are
// mirrored as-is, not resolved.
type ensuranceTokenMeta struct {
	Name         string                  `json:"name"`
	Description  string                  `json:"description"`
	Image        string                  `json:"image"`
	AnimationURL string                  `json:"animation_url"`
	MimeType     string                  `json:"mime_type"`
	Split        []domain.SplitRecipient `json:"creator_reward_recipient_split"`
}

// SyncEnsurance mirrors ensurance tokens from the configured chain map.
// Each chain is read through its own client and processed independently; a
// failing chain produces an error entry in its own summary and never blocks
// the others.
func (r *reconciler) SyncEnsurance(ctx context.Context) ([]domain.EnsuranceSyncResult, error) {
	results := make([]domain.EnsuranceSyncResult, 0, len(r.config.Ensurance))

	for chainName, chain := range r.config.Ensurance {
		result := domain.EnsuranceSyncResult{Chain: domain.Chain(chainName)}
		if chain.Client == nil {
			result.Errors = append(result.Errors, "no rpc client configured")
			results = append(results, result)
			continue
		}
		r.syncEnsuranceChain(ctx, chainName, chain, &result)
		results = append(results, result)
	}

	return results, nil
}

func (r *reconciler) syncEnsuranceChain(ctx context.Context, chainName string, chain EnsuranceChain, result *domain.EnsuranceSyncResult) {
	logger.InfoCtx(ctx, "Starting ensurance sync",
		zap.String("chain", chainName),
		zap.String("contract", chain.Contract))

	supply, err := chain.Client.TotalSupply(ctx, chain.Contract)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read total supply: %v", err))
		return
	}

	for tokenID := uint64(1); tokenID <= supply; tokenID++ {
		changed, err := r.syncEnsuranceToken(ctx, chainName, chain, tokenID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("token %d: %v", tokenID, err))
			logger.WarnCtx(ctx, "Ensurance token sync failed, continuing",
				zap.String("chain", chainName),
				zap.Uint64("tokenID", tokenID),
				zap.Error(err))
			continue
		}

		result.TokensSynced++
		if changed {
			result.TokensChanged++
		}
	}

	logger.InfoCtx(ctx, "Ensurance sync complete",
		zap.String("chain", chainName),
		zap.Int("tokensSynced", result.TokensSynced),
		zap.Int("tokensChanged", result.TokensChanged),
		zap.Int("errors", len(result.Errors)))
}

func (r *reconciler) syncEnsuranceToken(ctx context.Context, chainName string, chain EnsuranceChain, tokenID uint64) (bool, error) {
	uri, err := chain.Client.TokenURI(ctx, chain.Contract, tokenID)
	if err != nil {
		return false, fmt.Errorf("failed to read token uri: %w", err)
	}

	meta, err := r.fetchEnsuranceMeta(ctx, uri)
	if err != nil {
		return false, fmt.Errorf("failed to fetch token metadata: %w", err)
	}

	recipient, err := chain.Client.CreatorRewardRecipient(ctx, chain.Contract, tokenID)
	if err != nil {
		return false, fmt.Errorf("failed to read creator reward recipient: %w", err)
	}

	var splitJSON datatypes.JSON
	if len(meta.Split) > 0 {
		raw, err := json.Marshal(meta.Split)
		if err != nil {
			return false, fmt.Errorf("failed to marshal split recipients: %w", err)
		}
		splitJSON = datatypes.JSON(raw)
	}

	return r.store.UpsertEnsuranceToken(ctx, &schema.EnsuranceToken{
		Chain:                       chainName,
		TokenID:                     tokenID,
		Name:                        meta.Name,
		Description:                 meta.Description,
		ImageIPFS:                   meta.Image,
		AnimationURLIPFS:            meta.AnimationURL,
		CreatorRewardRecipient:      recipient,
		CreatorRewardRecipientSplit: splitJSON,
		MimeType:                    meta.MimeType,
	})
}

// fetchEnsuranceMeta resolves a token URI into metadata. The contracts emit
// either inline base64 data URIs or fetchable ipfs/https pointers.
func (r *reconciler) fetchEnsuranceMeta(ctx context.Context, uri string) (*ensuranceTokenMeta, error) {
	var meta ensuranceTokenMeta

	switch {
	case strings.HasPrefix(uri, "data:application/json;base64,"):
		encoded := strings.TrimPrefix(uri, "data:application/json;base64,")
		raw, err := r.base64.Decode(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode data uri: %w", err)
		}
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, fmt.Errorf("failed to parse data uri json: %w", err)
		}

	case strings.HasPrefix(uri, "ipfs://"):
		gatewayURL := ipfsGatewayBase + strings.TrimPrefix(uri, "ipfs://")
		if err := r.http.Get(ctx, gatewayURL, &meta); err != nil {
			return nil, err
		}

	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		if err := r.http.Get(ctx, uri, &meta); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unsupported token uri scheme: %s", uri)
	}

	return &meta, nil
}
