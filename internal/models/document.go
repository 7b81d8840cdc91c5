package models

import (
	"fmt"
	"strconv"
	"strings"
)

// DocumentStatus represents the payment/approval state of a document.
type DocumentStatus string

const (
	DocumentStatusPaid            DocumentStatus = "PAID"
	DocumentStatusUnpaid          DocumentStatus = "UNPAID"
	DocumentStatusOverdue         DocumentStatus = "OVERDUE"
	DocumentStatusDraft           DocumentStatus = "DRAFT"
	DocumentStatusPendingApproval DocumentStatus = "PENDING APPROVAL"
)

// Valid reports whether s is one of the known statuses.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusPaid, DocumentStatusUnpaid, DocumentStatusOverdue, DocumentStatusDraft, DocumentStatusPendingApproval:
		return true
	}
	return false
}

// IsPending is true for documents still waiting on money or approval.
func (s DocumentStatus) IsPending() bool {
	return s == DocumentStatusUnpaid || s == DocumentStatusPendingApproval
}

// DocumentType distinguishes invoices from quotations.
type DocumentType string

const (
	DocumentTypeInvoice   DocumentType = "INVOICE"
	DocumentTypeQuotation DocumentType = "QUOTATION"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	return t == DocumentTypeInvoice || t == DocumentTypeQuotation
}

// Prefix returns the number prefix used for this document type.
func (t DocumentType) Prefix() string {
	if t == DocumentTypeQuotation {
		return "QT"
	}
	return "INV"
}

// InitialStatus is the status a freshly created document of this type gets.
func (t DocumentType) InitialStatus() DocumentStatus {
	if t == DocumentTypeQuotation {
		return DocumentStatusPendingApproval
	}
	return DocumentStatusUnpaid
}

// Document is an invoice or a quotation.
// Amount always mirrors Total(Items); call Recalculate after touching Items.
type Document struct {
	ID               string         `json:"id"`
	Number           string         `json:"invoiceNumber"`
	ClientName       string         `json:"clientName"`
	ClientEmail      string         `json:"clientEmail,omitempty"`
	Date             string         `json:"date"`
	Items            []LineItem     `json:"items"`
	Amount           float64        `json:"amount"`
	Status           DocumentStatus `json:"status"`
	AssignedWorkerID string         `json:"assignedWorkerId,omitempty"`
	Type             DocumentType   `json:"docType"`
}

// Recalculate refreshes Amount from the line items.
func (d *Document) Recalculate() {
	d.Amount = Total(d.Items)
}

// IsInvoice is true for sales invoices (as opposed to quotations).
func (d *Document) IsInvoice() bool {
	return d.Type == DocumentTypeInvoice
}

// Clone returns a deep copy so callers cannot alias the stored items slice.
func (d Document) Clone() Document {
	if d.Items != nil {
		d.Items = append([]LineItem(nil), d.Items...)
	}
	return d
}

// DocumentNumber is the structured form of "{PREFIX}-{YYYY}-{NNN}".
type DocumentNumber struct {
	Prefix   string
	Year     int
	Sequence int
}

// String formats the number with a zero-padded three digit sequence.
func (n DocumentNumber) String() string {
	return fmt.Sprintf("%s-%d-%03d", n.Prefix, n.Year, n.Sequence)
}

// ParseDocumentNumber splits a number such as "QT-2024-003" into its parts.
func ParseDocumentNumber(s string) (DocumentNumber, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || parts[0] == "" {
		return DocumentNumber{}, fmt.Errorf("malformed document number %q", s)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 4 {
		return DocumentNumber{}, fmt.Errorf("malformed year in document number %q", s)
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq < 0 {
		return DocumentNumber{}, fmt.Errorf("malformed sequence in document number %q", s)
	}
	return DocumentNumber{Prefix: parts[0], Year: year, Sequence: seq}, nil
}
