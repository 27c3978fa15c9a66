// Package metadata produces the marketplace-facing JSON document for a
// single account token. Documents are recomputed on every read; on-chain
// values win over whatever the relational mirror holds, and the mirror is
// opportunistically refreshed as a side effect of serving a request.
package metadata

//go:generate mockgen -source=generator.go -destination=../mocks/generator.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/situs-protocol/situs-indexer/internal/domain"
	"github.com/situs-protocol/situs-indexer/internal/logger"
	"github.com/situs-protocol/situs-indexer/internal/media/compositor"
	"github.com/situs-protocol/situs-indexer/internal/providers/cloudflare"
	"github.com/situs-protocol/situs-indexer/internal/providers/ethereum"
	"github.com/situs-protocol/situs-indexer/internal/store"
	"github.com/situs-protocol/situs-indexer/internal/store/schema"
	"github.com/situs-protocol/situs-indexer/internal/tba"
)

// Generator produces metadata documents and rendered images for account tokens
type Generator interface {
	// Generate builds the metadata document for a token. It returns
	// domain.ErrTokenNotFound when tokenID exceeds the on-chain counter and
	// never fails on mirror lookups: those degrade to a placeholder document.
	Generate(ctx context.Context, contractAddress string, tokenID uint64) (*domain.MetadataDocument, error)

	// Image renders the PNG artwork for a token
	Image(ctx context.Context, contractAddress string, tokenID uint64) ([]byte, error)
}

// Config holds generator configuration
type Config struct {
	// FactoryAddress is the OG factory contract, used to discover OGs not
	// yet mirrored when a metadata request arrives for them
	FactoryAddress string
	// DefaultBaseImage is the artwork base layer URL
	DefaultBaseImage string
	// ImageWidth is the rasterization width
	ImageWidth int
}

type generator struct {
	chain      ethereum.Client
	store      store.Store
	calculator *tba.Calculator
	compositor compositor.Compositor
	blob       cloudflare.BlobProvider
	config     *Config
}

// NewGenerator creates a metadata generator
func NewGenerator(chain ethereum.Client, st store.Store, calculator *tba.Calculator, comp compositor.Compositor, blob cloudflare.BlobProvider, config *Config) Generator {
	return &generator{
		chain:      chain,
		store:      st,
		calculator: calculator,
		compositor: comp,
		blob:       blob,
		config:     config,
	}
}

// chainFacts are the on-chain values resolved for one request
type chainFacts struct {
	og          *schema.OG
	accountName string
	fullName    string
	tbaAddress  string
}

// Generate builds the metadata document for a token
func (g *generator) Generate(ctx context.Context, contractAddress string, tokenID uint64) (*domain.MetadataDocument, error) {
	facts, err := g.resolveChainFacts(ctx, contractAddress, tokenID)
	if err != nil {
		return nil, err
	}

	// Mirror lookup is best-effort; a fresh token or a broken mirror must
	// still yield a document
	doc := g.placeholderDocument(facts)
	account, err := g.store.GetAccount(ctx, facts.og.OGName, tokenID)
	if err != nil {
		if !errors.Is(err, domain.ErrTokenNotFound) {
			logger.WarnCtx(ctx, "Mirror lookup failed, serving placeholder",
				zap.String("og", facts.og.OGName),
				zap.Uint64("tokenID", tokenID),
				zap.Error(err))
		}
		account = nil
	}
	if account != nil {
		doc.Description = account.Description
	}

	// Refresh the mirror with what was just read from chain. Failure here
	// never fails the request.
	g.mirrorAccount(ctx, facts, tokenID, account)

	// Regenerate the artwork only when its inputs changed since the last
	// render at this key. Until a render has ever landed at the key the
	// document keeps the default base image: a derived URL with nothing
	// behind it would be a dead link.
	if g.refreshImage(ctx, facts, tokenID, account) {
		doc.Image = g.blob.URL(imageKey(facts.og.OGName, tokenID))
	}

	return doc, nil
}

// Image renders the PNG artwork for a token
func (g *generator) Image(ctx context.Context, contractAddress string, tokenID uint64) ([]byte, error) {
	facts, err := g.resolveChainFacts(ctx, contractAddress, tokenID)
	if err != nil {
		return nil, err
	}

	data, err := g.compositor.Render(ctx, g.config.DefaultBaseImage, facts.fullName, g.config.ImageWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to render image: %w", err)
	}

	return data, nil
}

// resolveChainFacts reads the authoritative values for a request. A token ID
// beyond the mint counter is the only not-found condition; RPC failures
// propagate as plain errors.
func (g *generator) resolveChainFacts(ctx context.Context, contractAddress string, tokenID uint64) (*chainFacts, error) {
	if !common.IsHexAddress(contractAddress) {
		return nil, domain.ErrInvalidAddress
	}
	if tokenID == 0 {
		return nil, domain.ErrInvalidTokenID
	}

	og, err := g.resolveOG(ctx, contractAddress)
	if err != nil {
		return nil, err
	}

	supply, err := g.chain.TotalSupply(ctx, og.ContractAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to read total supply: %w", err)
	}
	if tokenID > supply {
		return nil, domain.ErrTokenNotFound
	}

	accountName, err := g.chain.DomainName(ctx, og.ContractAddress, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to read domain name: %w", err)
	}

	tbaAddress, err := g.calculator.Account(og.ContractAddress, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive tba address: %w", err)
	}

	return &chainFacts{
		og:          og,
		accountName: accountName,
		fullName:    domain.FullAccountName(accountName, og.OGName),
		tbaAddress:  tbaAddress,
	}, nil
}

// resolveOG maps a contract address to its OG, falling back to a factory
// walk for contracts not yet mirrored
func (g *generator) resolveOG(ctx context.Context, contractAddress string) (*schema.OG, error) {
	og, err := g.store.GetOGByContract(ctx, contractAddress)
	if err == nil {
		return og, nil
	}
	if !errors.Is(err, domain.ErrOGNotFound) {
		return nil, err
	}

	ogNames, err := g.chain.OGNames(ctx, g.config.FactoryAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to list OGs from factory: %w", err)
	}

	for _, ogName := range ogNames {
		addr, err := g.chain.OGAddress(ctx, g.config.FactoryAddress, ogName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve og %s: %w", ogName, err)
		}
		if strings.EqualFold(addr, contractAddress) {
			return &schema.OG{OGName: ogName, ContractAddress: addr}, nil
		}
	}

	return nil, domain.ErrOGNotFound
}

// placeholderDocument builds the document skeleton from chain facts alone.
// Every field that cannot fail is filled here; degraded requests serve this
// with the default image and an empty description.
func (g *generator) placeholderDocument(facts *chainFacts) *domain.MetadataDocument {
	tbaAddress := facts.tbaAddress
	if tbaAddress == "" {
		tbaAddress = domain.EthereumZeroAddress
	}

	return &domain.MetadataDocument{
		Name:            facts.fullName,
		Description:     "",
		Image:           g.config.DefaultBaseImage,
		TBAAddress:      tbaAddress,
		OGName:          facts.og.OGName,
		FullAccountName: facts.fullName,
	}
}

// mirrorAccount upserts the account row with freshly read chain facts,
// including a live ownerOf read so transfers surface in the mirror
func (g *generator) mirrorAccount(ctx context.Context, facts *chainFacts, tokenID uint64, existing *schema.Account) {
	row := &schema.Account{
		OGName:          facts.og.OGName,
		TokenID:         tokenID,
		AccountName:     facts.accountName,
		FullAccountName: facts.fullName,
		TBAAddress:      facts.tbaAddress,
	}
	if existing != nil {
		row.Description = existing.Description
		row.OwnerAddress = existing.OwnerAddress
	}

	owner, err := g.chain.OwnerOf(ctx, facts.og.ContractAddress, tokenID)
	if err != nil {
		logger.WarnCtx(ctx, "Owner read failed, keeping mirrored owner",
			zap.String("og", facts.og.OGName),
			zap.Uint64("tokenID", tokenID),
			zap.Error(err))
	} else {
		row.OwnerAddress = owner
	}

	if _, err := g.store.UpsertAccount(ctx, row); err != nil {
		logger.WarnCtx(ctx, "Opportunistic mirror write failed",
			zap.String("og", facts.og.OGName),
			zap.Uint64("tokenID", tokenID),
			zap.Error(err))
	}
}

// refreshImage regenerates and uploads the artwork when its inputs changed.
// All failures are logged and swallowed. The return reports whether a render
// exists at the token's blob key: either a previous upload persisted its hash
// or the upload in this call succeeded.
func (g *generator) refreshImage(ctx context.Context, facts *chainFacts, tokenID uint64, account *schema.Account) bool {
	rendered := account != nil && account.ImageHash != ""

	hash, err := g.compositor.Hash(g.config.DefaultBaseImage, facts.fullName)
	if err != nil {
		logger.WarnCtx(ctx, "Image hash failed", zap.Error(err))
		return rendered
	}

	if account != nil && account.ImageHash == hash {
		logger.DebugCtx(ctx, "Image inputs unchanged, skipping regeneration",
			zap.String("og", facts.og.OGName),
			zap.Uint64("tokenID", tokenID))
		return true
	}

	data, err := g.compositor.Render(ctx, g.config.DefaultBaseImage, facts.fullName, g.config.ImageWidth)
	if err != nil {
		logger.WarnCtx(ctx, "Image render failed",
			zap.String("og", facts.og.OGName),
			zap.Uint64("tokenID", tokenID),
			zap.Error(err))
		return rendered
	}

	key := imageKey(facts.og.OGName, tokenID)
	if _, err := g.blob.Upload(ctx, key, data); err != nil {
		logger.WarnCtx(ctx, "Image upload failed",
			zap.String("key", key),
			zap.Error(err))
		return rendered
	}

	if err := g.store.UpdateAccountImageHash(ctx, facts.og.OGName, tokenID, hash); err != nil {
		logger.WarnCtx(ctx, "Image hash persist failed",
			zap.String("og", facts.og.OGName),
			zap.Uint64("tokenID", tokenID),
			zap.Error(err))
	}

	return true
}

// imageKey is the deterministic blob key for a token's generated artwork
func imageKey(ogName string, tokenID uint64) string {
	return fmt.Sprintf("%s/generated/%d.png", domain.SanitizeOGName(ogName), tokenID)
}
