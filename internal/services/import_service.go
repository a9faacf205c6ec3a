package services

import (
	"errors"
	"fmt"

	"pulserisk/internal/brokerage"
	apperrors "pulserisk/internal/errors"
	"pulserisk/internal/logger"
	"pulserisk/internal/models"
)

// importService ingests brokerage CSV exports into the ledger.
type importService struct {
	accounts AccountServicer
	ledger   LedgerServicer
}

// NewImportService creates a new ImportServicer.
func NewImportService(accounts AccountServicer, ledger LedgerServicer) ImportServicer {
	return &importService{accounts: accounts, ledger: ledger}
}

// ImportCSV normalizes the CSV text and records each activity sequentially,
// each row's reconciliation visible before the next begins. Rows the
// normalizer skipped and lenient defaults it applied are reported back.
func (s *importService) ImportCSV(accountID, csvText string) (*ImportReport, error) {
	account, err := s.accounts.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	rows := brokerage.ParseCSV(csvText)
	activities, notes := brokerage.Normalize(rows)
	if len(activities) == 0 {
		return nil, apperrors.ErrEmptyImport
	}

	report := &ImportReport{Warnings: notes}
	if report.Warnings == nil {
		report.Warnings = []brokerage.RowNote{}
	}
	// Data rows that tokenized but produced no activity were skipped by the
	// normalizer (empty action or date).
	if len(rows) > 0 {
		report.Skipped = len(rows) - 1 - len(activities)
	}

	for _, activity := range activities {
		tx := activityToTransaction(accountID, activity)
		result, err := s.ledger.RecordActivity(tx)
		if err != nil {
			// Validation failures skip the row; the rest of the file still
			// imports. Anything else aborts.
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && appErr.StatusCode < 500 {
				report.Skipped++
				report.Warnings = append(report.Warnings, brokerage.RowNote{
					Reason: fmt.Sprintf("%s %s skipped: %s", tx.Type, tx.Symbol, appErr.Message),
				})
				continue
			}
			return nil, err
		}
		if result.SellWithoutHolding {
			report.Warnings = append(report.Warnings, brokerage.RowNote{
				Reason: fmt.Sprintf("SELL %s without matching holding; position unchanged", tx.Symbol),
			})
		}
		report.Imported++
	}

	logger.Get().Infow("csv import complete",
		"account", account.Name,
		"imported", report.Imported,
		"skipped", report.Skipped,
		"warnings", len(report.Warnings),
	)
	return report, nil
}

// activityToTransaction binds a normalized activity to an account.
func activityToTransaction(accountID string, a brokerage.Activity) *models.Transaction {
	return &models.Transaction{
		AccountID:  accountID,
		Date:       a.Date,
		Type:       models.ActivityType(a.Type),
		AssetType:  models.AssetType(a.AssetType),
		Symbol:     a.Symbol,
		Qty:        a.Qty,
		Price:      a.Price,
		Fees:       a.Fees,
		Multiplier: a.Multiplier,
		Amount:     a.Amount,
		Underlying: a.Underlying,
		OptionType: models.OptionType(a.OptionType),
		Strike:     a.Strike,
		Expiry:     a.Expiry,
	}
}
