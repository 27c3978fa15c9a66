package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/situs-protocol/situs-indexer/internal/domain"
	"github.com/situs-protocol/situs-indexer/internal/logger"
)

const WalletAddressHeader = "X-Wallet-Address"

// AuthConfig holds authentication configuration
type AuthConfig struct {
	// AdminAddresses is the wallet allow-list gating admin routes
	AdminAddresses []string
	// CronSecret is the shared bearer secret for the cron route
	CronSecret string
}

// AdminAuth gates a route on the wallet allow-list. The caller identifies
// itself with the X-Wallet-Address header; addresses compare
// case-insensitively since EVM addresses have no canonical casing on the
// wire.
func AdminAuth(cfg AuthConfig) gin.HandlerFunc {
	// Normalize once at setup
	allowed := make(map[string]bool, len(cfg.AdminAddresses))
	for _, addr := range cfg.AdminAddresses {
		addr = strings.ToLower(strings.TrimSpace(addr))
		if addr != "" {
			allowed[addr] = true
		}
	}

	return func(c *gin.Context) {
		wallet := strings.ToLower(strings.TrimSpace(c.GetHeader(WalletAddressHeader)))
		if wallet == "" || !allowed[wallet] {
			logger.WarnCtx(c.Request.Context(), "Admin auth rejected",
				zap.String("wallet", wallet),
				zap.String("path", c.Request.URL.Path))
			abortUnauthorized(c, "Wallet not authorized")
			return
		}

		c.Set("admin_wallet", wallet)
		c.Next()
	}
}

// CronAuth gates a route on the shared cron secret carried as a bearer token
func CronAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || cfg.CronSecret == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(cfg.CronSecret)) != 1 {
			abortUnauthorized(c, "Invalid cron secret")
			return
		}
		c.Next()
	}
}

// abortUnauthorized rejects the request with the standard error body. The
// code field carries the domain sentinel so API consumers and handler-level
// errors.Is checks agree on one value.
func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(domain.ErrUnauthorized)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    domain.ErrUnauthorized.Error(),
			"message": message,
		},
	})
}
