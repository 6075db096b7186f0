// Package generator orchestrates a collection run: validate, sequence,
// build batches, assemble the document and record history.
package generator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coloctools/sepacollect/internal/domain"
	"github.com/coloctools/sepacollect/internal/sepa"
	"github.com/coloctools/sepacollect/internal/usecase/batch"
	"github.com/coloctools/sepacollect/internal/usecase/sequencer"
	"github.com/coloctools/sepacollect/internal/validation"
)

// DefaultHistoryBatchSize is the chunk size for history writes, matching
// the store's batch-insert limit
const DefaultHistoryBatchSize = 50

// Result is the outcome of one successful run
type Result struct {
	Document []byte
	Filename string
	Batches  []domain.PaymentBatch
}

// TransactionCount returns the number of debit instructions in the document
func (r *Result) TransactionCount() int {
	count, _ := batch.DocumentTotals(r.Batches)
	return count
}

// Service runs the collection pipeline against the configured data source
type Service struct {
	Configs          domain.ConfigRepository
	Debtors          domain.DebtorRepository
	History          domain.HistoryRepository
	HistoryBatchSize int

	// Now is injectable for tests; it is read once per run so numbering,
	// collection date and filename all share one timestamp
	Now func() time.Time
}

// NewService creates a new generator service with the default clock and
// history batch size
func NewService(configs domain.ConfigRepository, debtors domain.DebtorRepository, history domain.HistoryRepository) *Service {
	return &Service{
		Configs:          configs,
		Debtors:          debtors,
		History:          history,
		HistoryBatchSize: DefaultHistoryBatchSize,
		Now:              time.Now,
	}
}

// GenerateCollectionBatch runs one collection:
//  1. Reject non-positive amounts before any I/O
//  2. Read and validate the creditor configuration
//  3. Read and validate the roommate list
//  4. Read the month's history and derive the sequence base
//  5. Build the payment batches
//  6. Assemble and render the pain.008 document
//  7. Append one history record per transaction
//
// Validation failures abort before any history write. A history append
// failure aborts the run without retry: retrying with a fresh sequence read
// could allocate duplicate numbers.
func (s *Service) GenerateCollectionBatch(ctx context.Context, amounts domain.RequestedAmounts) (*Result, error) {
	if err := amounts.Validate(); err != nil {
		return nil, err
	}

	cfg, err := s.Configs.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error during extraction of configuration table: %w", err)
	}
	if err := validation.CheckConfig(cfg); err != nil {
		return nil, err
	}

	debtors, err := s.Debtors.ListDebtors(ctx)
	if err != nil {
		return nil, fmt.Errorf("error during extraction of roommates table: %w", err)
	}
	if err := validation.CheckDebtors(debtors); err != nil {
		return nil, err
	}

	now := s.Now()

	history, err := s.History.ListForMonth(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("error during extraction of history table: %w", err)
	}

	seq := sequencer.NewState(cfg.CreditorPrefix, now, history)
	batches := batch.Build(cfg, debtors, amounts, &seq, now)

	doc := sepa.Assemble(cfg, batches, domain.NewToken(), now)
	rendered, err := doc.Render()
	if err != nil {
		return nil, fmt.Errorf("error during generation of sepa file: %w", err)
	}

	if err := s.recordHistory(ctx, batches, now); err != nil {
		return nil, fmt.Errorf("error during history transactions saving: %w", err)
	}

	return &Result{
		Document: rendered,
		Filename: Filename(now),
		Batches:  batches,
	}, nil
}

// Filename returns the output file name for a run started at now
func Filename(now time.Time) string {
	return fmt.Sprintf("prelevements_biens_communs_%s.xml", now.Format("2006-01-02_15-04"))
}

// recordHistory persists every transaction of the run as a history record,
// in chunks written concurrently. Chunks are independent inserts with no
// ordering requirement among themselves, but any chunk failure is surfaced
// since a partial write corrupts future sequence counts.
func (s *Service) recordHistory(ctx context.Context, batches []domain.PaymentBatch, now time.Time) error {
	records := HistoryRecords(batches, now)
	if len(records) == 0 {
		return nil
	}

	size := s.HistoryBatchSize
	if size <= 0 {
		size = DefaultHistoryBatchSize
	}

	chunks := chunkRecords(records, size)
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []domain.HistoryRecord) {
			defer wg.Done()
			errs[i] = s.History.Append(ctx, chunk)
		}(i, chunk)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("error during records creation: %w", err)
		}
	}
	return nil
}

// HistoryRecords projects the batches onto history records, keeping debtor
// identity as entered rather than as emitted in the document
func HistoryRecords(batches []domain.PaymentBatch, now time.Time) []domain.HistoryRecord {
	records := make([]domain.HistoryRecord, 0)
	for _, b := range batches {
		for _, tx := range b.Transactions {
			records = append(records, domain.HistoryRecord{
				Date:          now,
				RUM:           tx.DebtorRUM,
				Number:        tx.Number,
				TransactionID: tx.ID,
				Amount:        tx.Amount,
				DebtorName:    tx.DebtorName,
				DebtorIBAN:    tx.DebtorIBAN,
				Label:         tx.ExpenseLabel,
			})
		}
	}
	return records
}

func chunkRecords(records []domain.HistoryRecord, size int) [][]domain.HistoryRecord {
	chunks := make([][]domain.HistoryRecord, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}
	return chunks
}
