package domain

import (
	"regexp"
	"strings"
)

const (
	// EthereumZeroAddress is the canonical zero address used for placeholder documents
	EthereumZeroAddress = "0x0000000000000000000000000000000000000000"
)

// Chain identifies a supported chain for ensurance mirroring
type Chain string

const (
	ChainBase     Chain = "base"
	ChainArbitrum Chain = "arbitrum"
	ChainOptimism Chain = "optimism"
)

// Valid reports whether the chain is one of the supported ensurance chains
func (c Chain) Valid() bool {
	switch c {
	case ChainBase, ChainArbitrum, ChainOptimism:
		return true
	}
	return false
}

// MetadataDocument is the marketplace-facing metadata payload for one account token.
// It is recomputed on every read; on-chain values always take precedence over
// whatever the relational mirror holds.
type MetadataDocument struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Image           string `json:"image"`
	AnimationURL    string `json:"animation_url,omitempty"`
	TBAAddress      string `json:"tba_address"`
	OGName          string `json:"og_name"`
	FullAccountName string `json:"full_account_name"`
}

// SplitRecipient is one entry of an ensurance creator-reward split.
// Allocations are trusted from the upstream split contract and are not
// re-validated here.
type SplitRecipient struct {
	Address           string  `json:"address"`
	PercentAllocation float64 `json:"percentAllocation"`
}

var nonIdentifierChars = regexp.MustCompile(`[^a-z0-9_]`)

// SanitizeOGName derives a safe identifier suffix from an OG name.
// The leading dot is stripped and every character outside [a-z0-9_] is
// replaced with an underscore. The result always matches ^[a-z0-9_]*$.
// This is the single chokepoint between raw OG names and storage keys.
func SanitizeOGName(ogName string) string {
	s := strings.ToLower(strings.TrimPrefix(ogName, "."))
	return nonIdentifierChars.ReplaceAllString(s, "_")
}

// FullAccountName joins an account name with its OG suffix (e.g. "alice" + ".basin").
func FullAccountName(accountName, ogName string) string {
	return accountName + ogName
}
