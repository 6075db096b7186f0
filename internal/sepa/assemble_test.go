package sepa

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coloctools/sepacollect/internal/domain"
)

func testConfig() *domain.CreditorConfig {
	return &domain.CreditorConfig{
		CreditorName:         "SCI Biens Communs",
		ICS:                  "FR72ZZZ123456",
		CreditorIBAN:         "FR76 3000 6000 0112 3456 7890 189",
		CreditorBIC:          "AGRIFRPP",
		CreditorPrefix:       "001",
		RentLabel:            "Loyer",
		RentalExpensesLabel:  "Charges locatives",
		CurrentExpensesLabel: "Frais courants",
	}
}

func testBatches(collectionDate time.Time) []domain.PaymentBatch {
	rent := domain.Transaction{
		ID:           "64f1a2b3c4d5e6f7a8b9c0d1",
		Number:       "REG-001012600001",
		Amount:       decimal.NewFromInt(500),
		ExpenseLabel: "Loyer",
		DebtorName:   " Dupont ",
		DebtorIBAN:   "FR76 3000 6000 0112 3456 7890 189",
		DebtorBIC:    "AGRIFRPP",
		DebtorRUM:    "RUM001",
	}
	return []domain.PaymentBatch{
		{
			ID:             "64f1a2b3c4d5e6f7a8b9c0d2-RENT",
			Nature:         domain.NatureRent,
			Method:         domain.CollectionMethod,
			SequenceType:   domain.SequenceTypeRecurring,
			CollectionDate: collectionDate,
			ControlSum:     decimal.NewFromInt(500),
			Transactions:   []domain.Transaction{rent},
		},
	}
}

func TestAssemble_GroupHeader(t *testing.T) {
	createdAt := time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC)

	doc := Assemble(testConfig(), testBatches(createdAt), "64f1a2b3c4d5e6f7a8b9c0d3", createdAt)

	header := doc.CstmrDrctDbtInitn.GrpHdr
	assert.Equal(t, "64f1a2b3c4d5e6f7a8b9c0d3", header.MsgID)
	assert.Equal(t, "2026-01-15T10:30:00Z", header.CreDtTm)
	assert.Equal(t, 1, header.NbOfTxs)
	assert.Equal(t, "500.00", header.CtrlSum)
	assert.Equal(t, "SCI Biens Communs", header.InitgPty.Nm)
	assert.Equal(t, "FR72ZZZ123456", header.InitgPty.ID.OrgID.Othr.ID)
}

func TestAssemble_PaymentInfo(t *testing.T) {
	createdAt := time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC)

	doc := Assemble(testConfig(), testBatches(createdAt), "msg", createdAt)

	require.Len(t, doc.CstmrDrctDbtInitn.PmtInf, 1)
	info := doc.CstmrDrctDbtInitn.PmtInf[0]
	assert.Equal(t, "64f1a2b3c4d5e6f7a8b9c0d2-RENT", info.PmtInfID)
	assert.Equal(t, "DD", info.PmtMtd)
	assert.Equal(t, 1, info.NbOfTxs)
	assert.Equal(t, "500.00", info.CtrlSum)
	assert.Equal(t, "SEPA", info.PmtTpInf.SvcLvl.Cd)
	assert.Equal(t, "CORE", info.PmtTpInf.LclInstrm.Cd)
	assert.Equal(t, "RCUR", info.PmtTpInf.SeqTp)
	assert.Equal(t, "2026-01-15", info.ReqdColltnDt)
	// Creditor identifiers are emitted without spaces
	assert.Equal(t, "FR7630006000011234567890189", info.CdtrAcct.ID.IBAN)
	assert.Equal(t, "EUR", info.CdtrAcct.Ccy)
	assert.Equal(t, "AGRIFRPP", info.CdtrAgt.FinInstnID.BIC)
	assert.Equal(t, "FR72ZZZ123456", info.CdtrSchmeID.ID.PrvtID.Othr.ID)
	assert.Equal(t, "SEPA", info.CdtrSchmeID.ID.PrvtID.Othr.SchmeNm.Prtry)
}

func TestAssemble_TransactionInfo(t *testing.T) {
	createdAt := time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC)

	doc := Assemble(testConfig(), testBatches(createdAt), "msg", createdAt)

	require.Len(t, doc.CstmrDrctDbtInitn.PmtInf[0].DrctDbtTxInf, 1)
	tx := doc.CstmrDrctDbtInitn.PmtInf[0].DrctDbtTxInf[0]
	assert.Equal(t, "REG-001012600001", tx.PmtID.InstrID)
	assert.Equal(t, "64f1a2b3c4d5e6f7a8b9c0d1", tx.PmtID.EndToEndID)
	assert.Equal(t, "EUR", tx.InstdAmt.Ccy)
	assert.Equal(t, "500.00", tx.InstdAmt.Value)
	assert.Equal(t, "RUM001", tx.DrctDbtTx.MndtRltdInf.MndtID)
	// Name trimmed, IBAN stripped of spaces for the instruction fields
	assert.Equal(t, "Dupont", tx.Dbtr.Nm)
	assert.Equal(t, "FR7630006000011234567890189", tx.DbtrAcct.ID.IBAN)
	assert.Equal(t, "AGRIFRPP", tx.DbtrAgt.FinInstnID.BIC)
	assert.Equal(t, "Loyer", tx.RmtInf.Ustrd)
}

func TestAssemble_MandateSignatureDate(t *testing.T) {
	createdAt := time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC)
	batches := testBatches(createdAt)

	// Absent by default
	doc := Assemble(testConfig(), batches, "msg", createdAt)
	assert.Empty(t, doc.CstmrDrctDbtInitn.PmtInf[0].DrctDbtTxInf[0].DrctDbtTx.MndtRltdInf.DtOfSgntr)

	signed := time.Date(2020, time.September, 1, 0, 0, 0, 0, time.UTC)
	batches[0].Transactions[0].MandateSignatureDate = &signed
	doc = Assemble(testConfig(), batches, "msg", createdAt)
	assert.Equal(t, "2020-09-01", doc.CstmrDrctDbtInitn.PmtInf[0].DrctDbtTxInf[0].DrctDbtTx.MndtRltdInf.DtOfSgntr)

	rendered, err := doc.Render()
	require.NoError(t, err)
	assert.Contains(t, string(rendered), "<DtOfSgntr>2020-09-01</DtOfSgntr>")
}

func TestRender_DeclarationAndNamespace(t *testing.T) {
	createdAt := time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC)

	doc := Assemble(testConfig(), testBatches(createdAt), "msg", createdAt)
	rendered, err := doc.Render()
	require.NoError(t, err)

	content := string(rendered)
	assert.True(t, strings.HasPrefix(content, xml.Header))
	assert.Contains(t, content, `xmlns="urn:iso:std:iso:20022:tech:xsd:pain.008.001.02"`)
	assert.Contains(t, content, `xsi:schemaLocation="urn:iso:std:iso:20022:tech:xsd:pain.008.001.02 pain.008.001.02.xsd"`)
	assert.Contains(t, content, "<CstmrDrctDbtInitn>")
}

func TestRender_Idempotent(t *testing.T) {
	createdAt := time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC)
	cfg := testConfig()
	batches := testBatches(createdAt)

	first, err := Assemble(cfg, batches, "msg", createdAt).Render()
	require.NoError(t, err)
	second, err := Assemble(cfg, batches, "msg", createdAt).Render()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRender_RoundTripParses(t *testing.T) {
	createdAt := time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC)

	rendered, err := Assemble(testConfig(), testBatches(createdAt), "msg", createdAt).Render()
	require.NoError(t, err)

	var parsed struct {
		CstmrDrctDbtInitn struct {
			GrpHdr struct {
				NbOfTxs int    `xml:"NbOfTxs"`
				CtrlSum string `xml:"CtrlSum"`
			} `xml:"GrpHdr"`
			PmtInf []struct {
				DrctDbtTxInf []struct {
					InstdAmt string `xml:"InstdAmt"`
				} `xml:"DrctDbtTxInf"`
			} `xml:"PmtInf"`
		} `xml:"CstmrDrctDbtInitn"`
	}
	require.NoError(t, xml.Unmarshal(rendered, &parsed))
	assert.Equal(t, 1, parsed.CstmrDrctDbtInitn.GrpHdr.NbOfTxs)
	assert.Equal(t, "500.00", parsed.CstmrDrctDbtInitn.GrpHdr.CtrlSum)
	require.Len(t, parsed.CstmrDrctDbtInitn.PmtInf, 1)
	assert.Equal(t, "500.00", parsed.CstmrDrctDbtInitn.PmtInf[0].DrctDbtTxInf[0].InstdAmt)
}
