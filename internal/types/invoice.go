package types

// InvoicePaymentStatus is the payment state of an invoice. Payment capture is
// handled outside this engine; invoices are created PENDING.
type InvoicePaymentStatus string

const (
	InvoicePaymentStatusPending   InvoicePaymentStatus = "PENDING"
	InvoicePaymentStatusPaid      InvoicePaymentStatus = "PAID"
	InvoicePaymentStatusCancelled InvoicePaymentStatus = "CANCELLED"
)
