package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexa-erp/backend/internal/domain/shared"
	"github.com/nexa-erp/backend/internal/domain/shared/valueobject"
)

// Aggregate type constants
const (
	AggregateTypeSale     = "Sale"
	AggregateTypePurchase = "PurchaseOrder"
	AggregateTypeDocument = "IssuedDocument"
)

// Event type constants
const (
	EventTypeSaleProcessed    = "SaleProcessed"
	EventTypePurchaseReceived = "PurchaseReceived"
	EventTypeDocumentIssued   = "DocumentIssued"
)

// SaleLine is one sold item within a processed sale
type SaleLine struct {
	ProductRef string          `json:"product_ref"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// SaleProcessedEvent is published by the checkout module after its own
// write committed. Subscribers post revenue and tax ledger lines, apply
// stock exits and refresh derived indicators independently.
type SaleProcessedEvent struct {
	shared.BaseDomainEvent
	SaleID        uuid.UUID                 `json:"sale_id"`
	SaleRef       string                    `json:"sale_ref"`
	Total         decimal.Decimal           `json:"total"`
	Subtotal      decimal.Decimal           `json:"subtotal"`
	Tax           decimal.Decimal           `json:"tax"`
	PaymentMethod valueobject.PaymentMethod `json:"payment_method"`
	Lines         []SaleLine                `json:"lines"`
}

// NewSaleProcessedEvent creates a new SaleProcessedEvent
func NewSaleProcessedEvent(tenantID, saleID uuid.UUID, saleRef string, total, subtotal, tax decimal.Decimal, method valueobject.PaymentMethod, lines []SaleLine) *SaleProcessedEvent {
	return &SaleProcessedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleProcessed, AggregateTypeSale, saleID, tenantID),
		SaleID:          saleID,
		SaleRef:         saleRef,
		Total:           total,
		Subtotal:        subtotal,
		Tax:             tax,
		PaymentMethod:   method,
		Lines:           lines,
	}
}

// EventType returns the event type name
func (e *SaleProcessedEvent) EventType() string {
	return EventTypeSaleProcessed
}

// ReceiptLine is one received item within a purchase receipt
type ReceiptLine struct {
	ProductRef string          `json:"product_ref"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// Value returns the monetary value of the received line
func (l ReceiptLine) Value() decimal.Decimal {
	return l.Quantity.Mul(l.UnitCost)
}

// PurchaseReceivedEvent is published by the receiving module after
// goods arrived and its own write committed.
type PurchaseReceivedEvent struct {
	shared.BaseDomainEvent
	PurchaseID   uuid.UUID     `json:"purchase_id"`
	PurchaseRef  string        `json:"purchase_ref"`
	SupplierName string        `json:"supplier_name"`
	Lines        []ReceiptLine `json:"lines"`
}

// NewPurchaseReceivedEvent creates a new PurchaseReceivedEvent
func NewPurchaseReceivedEvent(tenantID, purchaseID uuid.UUID, purchaseRef, supplierName string, lines []ReceiptLine) *PurchaseReceivedEvent {
	return &PurchaseReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseReceived, AggregateTypePurchase, purchaseID, tenantID),
		PurchaseID:      purchaseID,
		PurchaseRef:     purchaseRef,
		SupplierName:    supplierName,
		Lines:           lines,
	}
}

// EventType returns the event type name
func (e *PurchaseReceivedEvent) EventType() string {
	return EventTypePurchaseReceived
}

// DocumentType classifies an issued fiscal document
type DocumentType string

const (
	// DocumentTypeSalesInvoice is an invoice issued to a customer
	DocumentTypeSalesInvoice DocumentType = "SALES_INVOICE"
	// DocumentTypePurchaseInvoice is a supplier invoice registered on receipt
	DocumentTypePurchaseInvoice DocumentType = "PURCHASE_INVOICE"
	// DocumentTypePayrollSlip is a payroll settlement document
	DocumentTypePayrollSlip DocumentType = "PAYROLL_SLIP"
)

// IsValid returns true if the document type is recognized
func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentTypeSalesInvoice, DocumentTypePurchaseInvoice, DocumentTypePayrollSlip:
		return true
	}
	return false
}

// DocumentIssuedEvent is published whenever a fiscal document leaves
// the system. The tax filing accumulator counts it into the reporting
// period derived from IssuedAt.
type DocumentIssuedEvent struct {
	shared.BaseDomainEvent
	DocumentID   uuid.UUID       `json:"document_id"`
	DocumentRef  string          `json:"document_ref"`
	DocumentType DocumentType    `json:"document_type"`
	Amount       decimal.Decimal `json:"amount"`
	IssuedAt     time.Time       `json:"issued_at"`
}

// NewDocumentIssuedEvent creates a new DocumentIssuedEvent
func NewDocumentIssuedEvent(tenantID, documentID uuid.UUID, documentRef string, docType DocumentType, amount decimal.Decimal, issuedAt time.Time) *DocumentIssuedEvent {
	return &DocumentIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentIssued, AggregateTypeDocument, documentID, tenantID),
		DocumentID:      documentID,
		DocumentRef:     documentRef,
		DocumentType:    docType,
		Amount:          amount,
		IssuedAt:        issuedAt,
	}
}

// EventType returns the event type name
func (e *DocumentIssuedEvent) EventType() string {
	return EventTypeDocumentIssued
}
