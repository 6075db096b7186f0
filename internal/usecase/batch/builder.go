// Package batch combines the creditor configuration, the roommate list and
// the requested amounts into the ordered payment batches of one run.
package batch

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/coloctools/sepacollect/internal/domain"
	"github.com/coloctools/sepacollect/internal/usecase/sequencer"
)

// Build constructs one batch per expense nature, in the fixed nature order,
// with one transaction per debtor in list order. Every debtor is charged the
// same flat amount within a nature. A run over zero debtors yields no
// batches at all rather than empty PmtInf blocks.
//
// Numbers are consumed from seq nature by nature, so the series keeps
// increasing across batches within the run.
func Build(cfg *domain.CreditorConfig, debtors []domain.Debtor, amounts domain.RequestedAmounts, seq *sequencer.State, collectionDate time.Time) []domain.PaymentBatch {
	batches := make([]domain.PaymentBatch, 0, len(domain.NatureOrder))

	for _, nature := range domain.NatureOrder {
		amount := amounts.ForNature(nature)
		label := cfg.LabelFor(nature)

		transactions := make([]domain.Transaction, 0, len(debtors))
		for _, debtor := range debtors {
			transactions = append(transactions, domain.Transaction{
				ID:                   domain.NewToken(),
				Number:               seq.Next(),
				Amount:               amount,
				ExpenseLabel:         label,
				DebtorName:           debtor.DebitorName,
				DebtorIBAN:           debtor.DebitorIBAN,
				DebtorBIC:            debtor.DebitorBIC,
				DebtorRUM:            debtor.DebitorRUM,
				MandateSignatureDate: debtor.MandateSignatureDate,
			})
		}

		if len(transactions) == 0 {
			continue
		}

		batches = append(batches, domain.PaymentBatch{
			ID:             domain.NewToken() + "-" + nature.Suffix(),
			Nature:         nature,
			Method:         domain.CollectionMethod,
			SequenceType:   domain.SequenceTypeRecurring,
			CollectionDate: collectionDate,
			ControlSum:     ControlSum(transactions),
			Transactions:   transactions,
		})
	}

	return batches
}

// ControlSum is the exact decimal sum of the transaction amounts, rounded to
// 2 decimals half up. The same rule is used for batch and document sums.
func ControlSum(transactions []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range transactions {
		sum = sum.Add(tx.Amount)
	}
	return sum.Round(2)
}

// DocumentTotals returns the transaction count and control sum across all
// batches, as declared in the group header
func DocumentTotals(batches []domain.PaymentBatch) (int, decimal.Decimal) {
	count := 0
	sum := decimal.Zero
	for _, b := range batches {
		count += len(b.Transactions)
		sum = sum.Add(b.ControlSum)
	}
	return count, sum.Round(2)
}
