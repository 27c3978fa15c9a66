package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/situs-protocol/situs-indexer/internal/domain"
)

func TestValidationReport_Clean(t *testing.T) {
	t.Run("empty report is clean", func(t *testing.T) {
		report := &domain.ValidationReport{RunID: "run-1"}
		assert.True(t, report.Clean())
	})

	t.Run("errors alone do not make a report dirty", func(t *testing.T) {
		report := &domain.ValidationReport{
			RunID:  "run-1",
			Errors: []string{"og .basin: rpc timeout"},
		}
		assert.True(t, report.Clean())
	})

	t.Run("any discrepancy category makes the report dirty", func(t *testing.T) {
		ref := domain.AccountRef{OGName: ".basin", TokenID: 1}

		reports := []*domain.ValidationReport{
			{MissingOGs: []domain.MissingOG{{OGName: ".basin"}}},
			{SupplyMismatches: []domain.SupplyMismatch{{OGName: ".basin", StoredCount: 1, ChainSupply: 2}}},
			{MissingAccounts: []domain.AccountRef{ref}},
			{MissingTBAs: []domain.AccountRef{ref}},
			{InvalidAccounts: []domain.InvalidAccount{{Ref: ref, Field: "account_name"}}},
		}

		for _, report := range reports {
			assert.False(t, report.Clean())
		}
	})
}
