package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/situs-protocol/situs-indexer/internal/domain"
	"github.com/situs-protocol/situs-indexer/internal/metadata"
	"github.com/situs-protocol/situs-indexer/internal/reconciler"
	"github.com/situs-protocol/situs-indexer/internal/store"
)

// metadataCacheControl caches public metadata/image responses for a day;
// regeneration happens server-side when inputs change, so stale reads are
// bounded and cheap
const metadataCacheControl = "public, max-age=86400"

// Handler handles REST API requests
type Handler struct {
	store      store.Store
	reconciler reconciler.Reconciler
	generator  metadata.Generator
}

// NewHandler creates a new REST handler
func NewHandler(st store.Store, rec reconciler.Reconciler, gen metadata.Generator) *Handler {
	return &Handler{
		store:      st,
		reconciler: rec,
		generator:  gen,
	}
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Cron handles GET /cron, the scheduled full sync plus ensurance sync
func (h *Handler) Cron(c *gin.Context) {
	ctx := c.Request.Context()

	syncResult, err := h.reconciler.FullSync(ctx)
	if err != nil {
		respondInternalError(c, err, "Sync failed")
		return
	}

	ensuranceResults, err := h.reconciler.SyncEnsurance(ctx)
	if err != nil {
		respondInternalError(c, err, "Ensurance sync failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sync":      syncResult,
		"ensurance": ensuranceResults,
	})
}

// AdminSync handles POST /api/v1/admin/sync
func (h *Handler) AdminSync(c *gin.Context) {
	result, err := h.reconciler.FullSync(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Sync failed")
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdminVerify handles POST /api/v1/admin/verify
func (h *Handler) AdminVerify(c *gin.Context) {
	report, err := h.reconciler.Verify(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Verify failed")
		return
	}
	c.JSON(http.StatusOK, report)
}

// AdminFix handles POST /api/v1/admin/fix
func (h *Handler) AdminFix(c *gin.Context) {
	var report domain.ValidationReport
	if err := c.ShouldBindJSON(&report); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.reconciler.Fix(c.Request.Context(), &report)
	if err != nil {
		respondInternalError(c, err, "Fix failed")
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdminEnsuranceSync handles POST /api/v1/admin/ensurance/sync
func (h *Handler) AdminEnsuranceSync(c *gin.Context) {
	results, err := h.reconciler.SyncEnsurance(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Ensurance sync failed")
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetMetadata handles GET /api/v1/metadata/:contract/:token_id
func (h *Handler) GetMetadata(c *gin.Context) {
	contract, tokenID, ok := h.parseTokenParams(c)
	if !ok {
		return
	}

	doc, err := h.generator.Generate(c.Request.Context(), contract, tokenID)
	if err != nil {
		h.respondTokenError(c, err, contract, tokenID)
		return
	}

	c.Header("Cache-Control", metadataCacheControl)
	c.JSON(http.StatusOK, doc)
}

// GetMetadataImage handles GET /api/v1/metadata/:contract/:token_id/image
func (h *Handler) GetMetadataImage(c *gin.Context) {
	contract, tokenID, ok := h.parseTokenParams(c)
	if !ok {
		return
	}

	data, err := h.generator.Image(c.Request.Context(), contract, tokenID)
	if err != nil {
		h.respondTokenError(c, err, contract, tokenID)
		return
	}

	c.Header("Cache-Control", metadataCacheControl)
	c.Data(http.StatusOK, "image/png", data)
}

// ListOGs handles GET /api/v1/ogs
func (h *Handler) ListOGs(c *gin.Context) {
	ogs, err := h.store.ListOGs(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list OGs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ogs": ogs})
}

// ListAccounts handles GET /api/v1/ogs/:og/accounts
func (h *Handler) ListAccounts(c *gin.Context) {
	ogName := c.Param("og")

	if _, err := h.store.GetOG(c.Request.Context(), ogName); err != nil {
		if errors.Is(err, domain.ErrOGNotFound) {
			respondNotFound(c, "OG not found")
			return
		}
		respondInternalError(c, err, "Failed to read OG")
		return
	}

	accounts, err := h.store.ListAccounts(c.Request.Context(), ogName)
	if err != nil {
		respondInternalError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// ListEnsuranceTokens handles GET /api/v1/ensurance/:chain
func (h *Handler) ListEnsuranceTokens(c *gin.Context) {
	chain := c.Param("chain")

	tokens, err := h.store.ListEnsuranceTokens(c.Request.Context(), chain)
	if err != nil {
		respondInternalError(c, err, "Failed to list ensurance tokens")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// parseTokenParams validates the :contract and :token_id path params
func (h *Handler) parseTokenParams(c *gin.Context) (string, uint64, bool) {
	contract := c.Param("contract")

	tokenID, err := strconv.ParseUint(c.Param("token_id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid token id", c.Param("token_id"))
		return "", 0, false
	}

	return contract, tokenID, true
}

// respondTokenError maps generator errors onto the response taxonomy
func (h *Handler) respondTokenError(c *gin.Context, err error, contract string, tokenID uint64) {
	switch {
	case errors.Is(err, domain.ErrTokenNotFound):
		respondNotFound(c, "Token does not exist")
	case errors.Is(err, domain.ErrOGNotFound):
		respondNotFound(c, "Unknown collection contract")
	case errors.Is(err, domain.ErrInvalidAddress), errors.Is(err, domain.ErrInvalidTokenID):
		respondBadRequest(c, "Invalid request", err.Error())
	default:
		respondInternalError(c, err, "Failed to generate metadata",
			zap.String("contract", contract),
			zap.Uint64("tokenID", tokenID))
	}
}
