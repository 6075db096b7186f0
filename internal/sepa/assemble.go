package sepa

import (
	"strings"
	"time"

	"github.com/coloctools/sepacollect/internal/domain"
	"github.com/coloctools/sepacollect/internal/usecase/batch"
)

const (
	currency        = "EUR"
	serviceLevel    = "SEPA"
	localInstrument = "CORE"
	schemeName      = "SEPA"
)

// Assemble maps the creditor configuration and payment batches onto the
// pain.008.001.02 tree. It is a pure function of its inputs: message id and
// creation time are supplied by the caller, so identical input yields an
// identical document.
func Assemble(cfg *domain.CreditorConfig, batches []domain.PaymentBatch, msgID string, createdAt time.Time) *Document {
	count, total := batch.DocumentTotals(batches)

	doc := &Document{
		Xmlns:          Namespace,
		XmlnsXsi:       "http://www.w3.org/2001/XMLSchema-instance",
		SchemaLocation: Namespace + " pain.008.001.02.xsd",
		CstmrDrctDbtInitn: CustomerDirectDebitInitiation{
			GrpHdr: GroupHeader{
				MsgID:   msgID,
				CreDtTm: createdAt.Format(time.RFC3339),
				NbOfTxs: count,
				CtrlSum: total.StringFixed(2),
				InitgPty: InitiatingParty{
					Nm: strings.TrimSpace(cfg.CreditorName),
					ID: InitiatingPartyID{
						OrgID: OrganisationID{Othr: OtherID{ID: cfg.ICS}},
					},
				},
			},
			PmtInf: make([]PaymentInfo, 0, len(batches)),
		},
	}

	for _, b := range batches {
		doc.CstmrDrctDbtInitn.PmtInf = append(doc.CstmrDrctDbtInitn.PmtInf, assemblePaymentInfo(cfg, b))
	}

	return doc
}

func assemblePaymentInfo(cfg *domain.CreditorConfig, b domain.PaymentBatch) PaymentInfo {
	info := PaymentInfo{
		PmtInfID: b.ID,
		PmtMtd:   b.Method,
		NbOfTxs:  len(b.Transactions),
		CtrlSum:  b.ControlSum.StringFixed(2),
		PmtTpInf: PaymentTypeInfo{
			SvcLvl:    Code{Cd: serviceLevel},
			LclInstrm: Code{Cd: localInstrument},
			SeqTp:     b.SequenceType,
		},
		ReqdColltnDt: b.CollectionDate.Format("2006-01-02"),
		Cdtr:         PartyName{Nm: strings.TrimSpace(cfg.CreditorName)},
		CdtrAcct: CreditorAccount{
			ID:  AccountID{IBAN: domain.StripSpaces(cfg.CreditorIBAN)},
			Ccy: currency,
		},
		CdtrAgt: Agent{FinInstnID: FinancialInstitutionID{BIC: domain.StripSpaces(cfg.CreditorBIC)}},
		CdtrSchmeID: CreditorScheme{
			ID: CreditorSchemeID{
				PrvtID: PrivateID{
					Othr: SchemeOtherID{
						ID:      cfg.ICS,
						SchmeNm: SchemeName{Prtry: schemeName},
					},
				},
			},
		},
		DrctDbtTxInf: make([]DirectDebitTransactionInfo, 0, len(b.Transactions)),
	}

	for _, tx := range b.Transactions {
		info.DrctDbtTxInf = append(info.DrctDbtTxInf, assembleTransactionInfo(tx))
	}

	return info
}

func assembleTransactionInfo(tx domain.Transaction) DirectDebitTransactionInfo {
	mandate := MandateInfo{MndtID: tx.DebtorRUM}
	if tx.MandateSignatureDate != nil {
		mandate.DtOfSgntr = tx.MandateSignatureDate.Format("2006-01-02")
	}

	return DirectDebitTransactionInfo{
		PmtID: PaymentID{
			InstrID:    tx.Number,
			EndToEndID: tx.ID,
		},
		InstdAmt: CurrencyAmount{
			Ccy:   currency,
			Value: tx.Amount.StringFixed(2),
		},
		DrctDbtTx: DirectDebitTx{MndtRltdInf: mandate},
		DbtrAgt:   Agent{FinInstnID: FinancialInstitutionID{BIC: domain.StripSpaces(tx.DebtorBIC)}},
		Dbtr:      PartyName{Nm: strings.TrimSpace(tx.DebtorName)},
		DbtrAcct:  DebtorAccount{ID: AccountID{IBAN: domain.StripSpaces(tx.DebtorIBAN)}},
		RmtInf:    RemittanceInformation{Ustrd: tx.ExpenseLabel},
	}
}
