// Package sepa assembles pain.008.001.02 customer direct debit initiation
// documents from payment batches.
package sepa

import (
	"encoding/xml"
	"fmt"
)

// Namespace is the pain.008.001.02 message namespace
const Namespace = "urn:iso:std:iso:20022:tech:xsd:pain.008.001.02"

// Document is the root of the pain.008.001.02 message
type Document struct {
	XMLName        xml.Name `xml:"Document"`
	Xmlns          string   `xml:"xmlns,attr"`
	XmlnsXsi       string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr"`

	CstmrDrctDbtInitn CustomerDirectDebitInitiation `xml:"CstmrDrctDbtInitn"`
}

// CustomerDirectDebitInitiation holds the group header and one PmtInf block
// per non-empty batch
type CustomerDirectDebitInitiation struct {
	GrpHdr GroupHeader   `xml:"GrpHdr"`
	PmtInf []PaymentInfo `xml:"PmtInf"`
}

// GroupHeader declares the message id, creation time and document totals
type GroupHeader struct {
	MsgID    string          `xml:"MsgId"`
	CreDtTm  string          `xml:"CreDtTm"`
	NbOfTxs  int             `xml:"NbOfTxs"`
	CtrlSum  string          `xml:"CtrlSum"`
	InitgPty InitiatingParty `xml:"InitgPty"`
}

// InitiatingParty identifies the creditor by name and ICS-based
// organisation id
type InitiatingParty struct {
	Nm string            `xml:"Nm"`
	ID InitiatingPartyID `xml:"Id"`
}

type InitiatingPartyID struct {
	OrgID OrganisationID `xml:"OrgId"`
}

type OrganisationID struct {
	Othr OtherID `xml:"Othr"`
}

type OtherID struct {
	ID string `xml:"Id"`
}

// PaymentInfo is one PmtInf block: one expense nature's batch
type PaymentInfo struct {
	PmtInfID     string          `xml:"PmtInfId"`
	PmtMtd       string          `xml:"PmtMtd"`
	NbOfTxs      int             `xml:"NbOfTxs"`
	CtrlSum      string          `xml:"CtrlSum"`
	PmtTpInf     PaymentTypeInfo `xml:"PmtTpInf"`
	ReqdColltnDt string          `xml:"ReqdColltnDt"`
	Cdtr         PartyName       `xml:"Cdtr"`
	CdtrAcct     CreditorAccount `xml:"CdtrAcct"`
	CdtrAgt      Agent           `xml:"CdtrAgt"`
	CdtrSchmeID  CreditorScheme  `xml:"CdtrSchmeId"`

	DrctDbtTxInf []DirectDebitTransactionInfo `xml:"DrctDbtTxInf"`
}

type PaymentTypeInfo struct {
	SvcLvl    Code   `xml:"SvcLvl"`
	LclInstrm Code   `xml:"LclInstrm"`
	SeqTp     string `xml:"SeqTp"`
}

type Code struct {
	Cd string `xml:"Cd"`
}

type PartyName struct {
	Nm string `xml:"Nm"`
}

type CreditorAccount struct {
	ID  AccountID `xml:"Id"`
	Ccy string    `xml:"Ccy"`
}

type AccountID struct {
	IBAN string `xml:"IBAN"`
}

type Agent struct {
	FinInstnID FinancialInstitutionID `xml:"FinInstnId"`
}

type FinancialInstitutionID struct {
	BIC string `xml:"BIC"`
}

// CreditorScheme carries the ICS under the SEPA proprietary scheme name
type CreditorScheme struct {
	ID CreditorSchemeID `xml:"Id"`
}

type CreditorSchemeID struct {
	PrvtID PrivateID `xml:"PrvtId"`
}

type PrivateID struct {
	Othr SchemeOtherID `xml:"Othr"`
}

type SchemeOtherID struct {
	ID      string     `xml:"Id"`
	SchmeNm SchemeName `xml:"SchmeNm"`
}

type SchemeName struct {
	Prtry string `xml:"Prtry"`
}

// DirectDebitTransactionInfo is one debit instruction against one debtor
type DirectDebitTransactionInfo struct {
	PmtID     PaymentID             `xml:"PmtId"`
	InstdAmt  CurrencyAmount        `xml:"InstdAmt"`
	DrctDbtTx DirectDebitTx         `xml:"DrctDbtTx"`
	DbtrAgt   Agent                 `xml:"DbtrAgt"`
	Dbtr      PartyName             `xml:"Dbtr"`
	DbtrAcct  DebtorAccount         `xml:"DbtrAcct"`
	RmtInf    RemittanceInformation `xml:"RmtInf"`
}

type PaymentID struct {
	InstrID    string `xml:"InstrId"`
	EndToEndID string `xml:"EndToEndId"`
}

type CurrencyAmount struct {
	Ccy   string `xml:"Ccy,attr"`
	Value string `xml:",chardata"`
}

type DirectDebitTx struct {
	MndtRltdInf MandateInfo `xml:"MndtRltdInf"`
}

type MandateInfo struct {
	MndtID    string `xml:"MndtId"`
	DtOfSgntr string `xml:"DtOfSgntr,omitempty"`
}

type DebtorAccount struct {
	ID AccountID `xml:"Id"`
}

type RemittanceInformation struct {
	Ustrd string `xml:"Ustrd"`
}

// Render serializes the document with the UTF-8 XML declaration and
// two-space indentation. Output is byte-for-byte stable for identical input.
func (d *Document) Render() ([]byte, error) {
	body, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pain.008 document: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
