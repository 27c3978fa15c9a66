package reconciler

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/situs-protocol/situs-indexer/internal/domain"
	"github.com/situs-protocol/situs-indexer/internal/logger"
	"github.com/situs-protocol/situs-indexer/internal/store/schema"
)

// Field names used in InvalidAccount entries
const (
	fieldAccountName     = "account_name"
	fieldFullAccountName = "full_account_name"
	fieldTBAAddress      = "tba_address"
)

// Verify compares the mirror against live chain state and reports every
// discrepancy. It never writes. Errors reading individual OGs or tokens are
// recorded in the report and the pass continues.
func (r *reconciler) Verify(ctx context.Context) (*domain.ValidationReport, error) {
	report := &domain.ValidationReport{
		RunID:       r.newRunID(),
		GeneratedAt: r.clock.Now(),
	}

	logger.InfoCtx(ctx, "Starting verify", zap.String("runID", report.RunID))

	ogNames, err := r.chain.OGNames(ctx, r.config.FactoryAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to list OGs from factory: %w", err)
	}

	for _, ogName := range ogNames {
		if err := r.verifyOG(ctx, ogName, report); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("og %s: %v", ogName, err))
			logger.WarnCtx(ctx, "OG verify failed, continuing",
				zap.String("og", ogName), zap.Error(err))
		}
	}

	logger.InfoCtx(ctx, "Verify complete",
		zap.String("runID", report.RunID),
		zap.Bool("clean", report.Clean()),
		zap.Int("missingOGs", len(report.MissingOGs)),
		zap.Int("supplyMismatches", len(report.SupplyMismatches)),
		zap.Int("missingAccounts", len(report.MissingAccounts)),
		zap.Int("missingTBAs", len(report.MissingTBAs)),
		zap.Int("invalidAccounts", len(report.InvalidAccounts)))

	return report, nil
}

func (r *reconciler) verifyOG(ctx context.Context, ogName string, report *domain.ValidationReport) error {
	contractAddress, err := r.chain.OGAddress(ctx, r.config.FactoryAddress, ogName)
	if err != nil {
		return fmt.Errorf("failed to resolve contract: %w", err)
	}

	supply, err := r.chain.TotalSupply(ctx, contractAddress)
	if err != nil {
		return fmt.Errorf("failed to read total supply: %w", err)
	}

	if _, err := r.store.GetOG(ctx, ogName); err != nil {
		if !errors.Is(err, domain.ErrOGNotFound) {
			return fmt.Errorf("failed to read og: %w", err)
		}
		report.MissingOGs = append(report.MissingOGs, domain.MissingOG{
			OGName:          ogName,
			ContractAddress: contractAddress,
		})
		// Without a mirrored OG row every account is missing too; the fix
		// pass handles that by syncing the whole OG
		return nil
	}

	storedCount, err := r.store.CountAccounts(ctx, ogName)
	if err != nil {
		return fmt.Errorf("failed to count accounts: %w", err)
	}
	if storedCount != supply {
		report.SupplyMismatches = append(report.SupplyMismatches, domain.SupplyMismatch{
			OGName:          ogName,
			ContractAddress: contractAddress,
			StoredCount:     storedCount,
			ChainSupply:     supply,
		})
	}

	for tokenID := uint64(1); tokenID <= supply; tokenID++ {
		if err := r.verifyAccount(ctx, ogName, contractAddress, tokenID, report); err != nil {
			report.Errors = append(report.Errors,
				fmt.Sprintf("og %s token %d: %v", ogName, tokenID, err))
		}
	}

	return nil
}

func (r *reconciler) verifyAccount(ctx context.Context, ogName, contractAddress string, tokenID uint64, report *domain.ValidationReport) error {
	chainName, err := r.chain.DomainName(ctx, contractAddress, tokenID)
	if err != nil {
		return fmt.Errorf("failed to read domain name: %w", err)
	}

	ref := domain.AccountRef{
		OGName:          ogName,
		ContractAddress: contractAddress,
		TokenID:         tokenID,
		AccountName:     chainName,
	}

	account, err := r.store.GetAccount(ctx, ogName, tokenID)
	if err != nil {
		if !errors.Is(err, domain.ErrTokenNotFound) {
			return fmt.Errorf("failed to read account: %w", err)
		}
		report.MissingAccounts = append(report.MissingAccounts, ref)
		return nil
	}

	if account.TBAAddress == "" {
		report.MissingTBAs = append(report.MissingTBAs, ref)
	}

	expectedTBA, err := r.calculator.Account(contractAddress, tokenID)
	if err != nil {
		return fmt.Errorf("failed to derive tba address: %w", err)
	}

	if account.AccountName != chainName {
		report.InvalidAccounts = append(report.InvalidAccounts, domain.InvalidAccount{
			Ref:     ref,
			Field:   fieldAccountName,
			Stored:  account.AccountName,
			OnChain: chainName,
		})
	}

	expectedFull := domain.FullAccountName(chainName, ogName)
	if account.FullAccountName != expectedFull {
		report.InvalidAccounts = append(report.InvalidAccounts, domain.InvalidAccount{
			Ref:     ref,
			Field:   fieldFullAccountName,
			Stored:  account.FullAccountName,
			OnChain: expectedFull,
		})
	}

	if account.TBAAddress != "" && account.TBAAddress != expectedTBA {
		report.InvalidAccounts = append(report.InvalidAccounts, domain.InvalidAccount{
			Ref:     ref,
			Field:   fieldTBAAddress,
			Stored:  account.TBAAddress,
			OnChain: expectedTBA,
		})
	}

	return nil
}

// Fix applies additive upserts for the discrepancies in a report. A report
// can be minutes or hours old by the time an operator submits it, so every
// entry is re-verified against live chain state immediately before applying;
// entries that no longer reproduce are counted as skipped.
func (r *reconciler) Fix(ctx context.Context, report *domain.ValidationReport) (*domain.FixResult, error) {
	result := &domain.FixResult{RunID: r.newRunID()}

	logger.InfoCtx(ctx, "Starting fix",
		zap.String("runID", result.RunID),
		zap.String("reportRunID", report.RunID))

	for _, missing := range report.MissingOGs {
		if err := r.fixMissingOG(ctx, missing, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("og %s: %v", missing.OGName, err))
		}
	}

	for _, ref := range report.MissingAccounts {
		if err := r.fixMissingAccount(ctx, ref, result); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("og %s token %d: %v", ref.OGName, ref.TokenID, err))
		}
	}

	for _, ref := range report.MissingTBAs {
		if err := r.fixMissingTBA(ctx, ref, result); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("og %s token %d: %v", ref.OGName, ref.TokenID, err))
		}
	}

	for _, invalid := range report.InvalidAccounts {
		if err := r.fixInvalidAccount(ctx, invalid, result); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("og %s token %d: %v", invalid.Ref.OGName, invalid.Ref.TokenID, err))
		}
	}

	logger.InfoCtx(ctx, "Fix complete",
		zap.String("runID", result.RunID),
		zap.Int("ogsFixed", result.OGsFixed),
		zap.Int("accountsCreated", result.AccountsCreated),
		zap.Int("tbasFilled", result.TBAsFilled),
		zap.Int("accountsCorrected", result.AccountsCorrected),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}

func (r *reconciler) fixMissingOG(ctx context.Context, missing domain.MissingOG, result *domain.FixResult) error {
	// The OG may have been mirrored since the report was generated
	if _, err := r.store.GetOG(ctx, missing.OGName); err == nil {
		result.Skipped++
		return nil
	} else if !errors.Is(err, domain.ErrOGNotFound) {
		return err
	}

	syncResult := &domain.SyncResult{}
	if err := r.syncOG(ctx, missing.OGName, syncResult); err != nil {
		return err
	}

	result.OGsFixed++
	result.AccountsCreated += syncResult.AccountsChanged
	return nil
}

func (r *reconciler) fixMissingAccount(ctx context.Context, ref domain.AccountRef, result *domain.FixResult) error {
	if _, err := r.store.GetAccount(ctx, ref.OGName, ref.TokenID); err == nil {
		result.Skipped++
		return nil
	} else if !errors.Is(err, domain.ErrTokenNotFound) {
		return err
	}

	changed, err := r.syncAccount(ctx, ref.OGName, ref.ContractAddress, ref.TokenID)
	if err != nil {
		return err
	}
	if changed {
		result.AccountsCreated++
	}
	return nil
}

func (r *reconciler) fixMissingTBA(ctx context.Context, ref domain.AccountRef, result *domain.FixResult) error {
	account, err := r.store.GetAccount(ctx, ref.OGName, ref.TokenID)
	if err != nil {
		return err
	}
	if account.TBAAddress != "" {
		result.Skipped++
		return nil
	}

	tbaAddress, err := r.calculator.Account(ref.ContractAddress, ref.TokenID)
	if err != nil {
		return err
	}

	account.TBAAddress = tbaAddress
	changed, err := r.store.UpsertAccount(ctx, account)
	if err != nil {
		return err
	}
	if changed {
		result.TBAsFilled++
	}
	return nil
}

func (r *reconciler) fixInvalidAccount(ctx context.Context, invalid domain.InvalidAccount, result *domain.FixResult) error {
	account, err := r.store.GetAccount(ctx, invalid.Ref.OGName, invalid.Ref.TokenID)
	if err != nil {
		return err
	}

	// Re-read chain state: the divergence may have been fixed already, or
	// the on-chain value may have moved again since the report
	chainName, err := r.chain.DomainName(ctx, invalid.Ref.ContractAddress, invalid.Ref.TokenID)
	if err != nil {
		return err
	}
	expectedTBA, err := r.calculator.Account(invalid.Ref.ContractAddress, invalid.Ref.TokenID)
	if err != nil {
		return err
	}

	corrected := *account
	corrected.AccountName = chainName
	corrected.FullAccountName = domain.FullAccountName(chainName, invalid.Ref.OGName)
	corrected.TBAAddress = expectedTBA

	if accountFieldsEqual(account, &corrected) {
		result.Skipped++
		return nil
	}

	changed, err := r.store.UpsertAccount(ctx, &corrected)
	if err != nil {
		return err
	}
	if changed {
		result.AccountsCorrected++
	}
	return nil
}

func accountFieldsEqual(a, b *schema.Account) bool {
	return a.AccountName == b.AccountName &&
		a.FullAccountName == b.FullAccountName &&
		a.TBAAddress == b.TBAAddress
}
