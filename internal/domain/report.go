package domain

import "time"

// AccountRef identifies one account token within an OG.
type AccountRef struct {
	OGName          string `json:"og_name"`
	ContractAddress string `json:"contract_address"`
	TokenID         uint64 `json:"token_id"`
	AccountName     string `json:"account_name"`
}

// MissingOG is an OG namespace present on chain but absent from the mirror.
type MissingOG struct {
	OGName          string `json:"og_name"`
	ContractAddress string `json:"contract_address"`
}

// SupplyMismatch is an OG whose mirrored row count disagrees with the on-chain supply.
type SupplyMismatch struct {
	OGName          string `json:"og_name"`
	ContractAddress string `json:"contract_address"`
	StoredCount     uint64 `json:"stored_count"`
	ChainSupply     uint64 `json:"chain_supply"`
}

// InvalidAccount is a mirrored account whose stored fields diverge from
// freshly read on-chain or derived values.
type InvalidAccount struct {
	Ref     AccountRef `json:"ref"`
	Field   string     `json:"field"`
	Stored  string     `json:"stored"`
	OnChain string     `json:"on_chain"`
}

// ValidationReport enumerates every discrepancy found by a verify pass.
// Entries are structured so that fix mode consumes them directly, without
// re-parsing formatted strings.
type ValidationReport struct {
	RunID            string           `json:"run_id"`
	GeneratedAt      time.Time        `json:"generated_at"`
	MissingOGs       []MissingOG      `json:"missing_ogs"`
	SupplyMismatches []SupplyMismatch `json:"supply_mismatches"`
	MissingAccounts  []AccountRef     `json:"missing_accounts"`
	MissingTBAs      []AccountRef     `json:"missing_tbas"`
	InvalidAccounts  []InvalidAccount `json:"invalid_accounts"`
	Errors           []string         `json:"errors,omitempty"`
}

// Clean reports whether the verify pass found no discrepancies.
func (r *ValidationReport) Clean() bool {
	return len(r.MissingOGs) == 0 &&
		len(r.SupplyMismatches) == 0 &&
		len(r.MissingAccounts) == 0 &&
		len(r.MissingTBAs) == 0 &&
		len(r.InvalidAccounts) == 0
}

// SyncResult summarizes one full-sync pass.
type SyncResult struct {
	RunID           string        `json:"run_id"`
	OGsSynced       int           `json:"ogs_synced"`
	AccountsSynced  int           `json:"accounts_synced"`
	AccountsChanged int           `json:"accounts_changed"`
	Duration        time.Duration `json:"duration"`
	Errors          []string      `json:"errors,omitempty"`
}

// FixResult reports per-category row counts changed by a fix pass.
type FixResult struct {
	RunID             string   `json:"run_id"`
	OGsFixed          int      `json:"ogs_fixed"`
	AccountsCreated   int      `json:"accounts_created"`
	TBAsFilled        int      `json:"tbas_filled"`
	AccountsCorrected int      `json:"accounts_corrected"`
	Skipped           int      `json:"skipped"`
	Errors            []string `json:"errors,omitempty"`
}

// EnsuranceSyncResult summarizes one ensurance sync pass for a single chain.
type EnsuranceSyncResult struct {
	Chain         Chain    `json:"chain"`
	TokensSynced  int      `json:"tokens_synced"`
	TokensChanged int      `json:"tokens_changed"`
	Errors        []string `json:"errors,omitempty"`
}
