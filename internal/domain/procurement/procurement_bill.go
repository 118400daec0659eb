package procurement

import (
	"time"

	"github.com/hotelops/backend/internal/domain/shared"
	"github.com/hotelops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProcurementBillLine is one received item line on an uploaded bill
type ProcurementBillLine struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	BillID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName         string          `gorm:"type:varchar(200);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit             string          `gorm:"type:varchar(20);not null"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProcurementBillLine) TableName() string {
	return "procurement_bill_lines"
}

// BaseQuantityReceived returns the received quantity converted to the line
// unit's family base. The bool reports whether the unit was recognized.
func (l ProcurementBillLine) BaseQuantityReceived() (decimal.Decimal, bool) {
	return valueobject.ToBaseUnits(l.ReceivedQuantity, l.Unit)
}

// ProcurementBill is the vendor bill recorded against an order. The stock
// ledger is credited exactly once per bill line, in the same transaction
// that persists the bill; requests and approvals never credit stock.
type ProcurementBill struct {
	shared.BaseAggregateRoot
	BillNumber       string          `gorm:"type:varchar(60);not null;index"`
	VendorBillNumber string          `gorm:"type:varchar(60)"` // vendor's own invoice reference
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	UploadedBy       uuid.UUID       `gorm:"type:uuid;not null"`
	BillDate         time.Time       `gorm:"not null"`
	UploadedAt       time.Time       `gorm:"not null"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GSTAmount        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Remark           string          `gorm:"type:varchar(500)"`

	Lines []ProcurementBillLine `gorm:"foreignKey:BillID;references:ID"`
}

// TableName returns the table name for GORM
func (ProcurementBill) TableName() string {
	return "procurement_bills"
}

// NewProcurementBill creates a bill record for an order
func NewProcurementBill(orderID, uploadedBy uuid.UUID, vendorBillNumber string, billDate time.Time) (*ProcurementBill, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewValidationError("orderId", "cannot be empty")
	}
	if uploadedBy == uuid.Nil {
		return nil, shared.NewValidationError("uploadedBy", "cannot be empty")
	}
	if billDate.IsZero() {
		return nil, shared.NewValidationError("billDate", "cannot be empty")
	}

	now := time.Now()
	bill := &ProcurementBill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillNumber:        GenerateDocumentNumber("BILL", now),
		VendorBillNumber:  vendorBillNumber,
		OrderID:           orderID,
		UploadedBy:        uploadedBy,
		BillDate:          billDate,
		UploadedAt:        now,
		TotalAmount:       decimal.Zero,
		GSTAmount:         decimal.Zero,
		Lines:             make([]ProcurementBillLine, 0),
	}

	return bill, nil
}

// AddLine appends a received item line and recalculates the bill total
func (b *ProcurementBill) AddLine(itemID uuid.UUID, itemName string, quantity decimal.Decimal, unit string, unitCost valueobject.Money) error {
	if itemID == uuid.Nil {
		return shared.NewValidationError("itemId", "cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("quantity", "must be positive")
	}
	if unitCost.Amount().IsNegative() {
		return shared.NewValidationError("unitCost", "cannot be negative")
	}
	for _, line := range b.Lines {
		if line.ItemID == itemID {
			return shared.NewDomainError("ALREADY_EXISTS", "Item already on bill")
		}
	}

	b.Lines = append(b.Lines, ProcurementBillLine{
		ID:               uuid.New(),
		BillID:           b.ID,
		ItemID:           itemID,
		ItemName:         itemName,
		ReceivedQuantity: quantity,
		Unit:             valueobject.NormalizeUnitCode(unit),
		UnitCost:         unitCost.Amount(),
		Amount:           quantity.Mul(unitCost.Amount()),
		CreatedAt:        time.Now(),
	})
	b.recalculateTotal()
	return nil
}

// SetGSTAmount records the tax portion of the bill
func (b *ProcurementBill) SetGSTAmount(amount valueobject.Money) error {
	if amount.Amount().IsNegative() {
		return shared.NewValidationError("gstAmount", "cannot be negative")
	}
	b.GSTAmount = amount.Amount()
	return nil
}

// ReceivedQuantities maps item ID to received quantity for order accounting
func (b *ProcurementBill) ReceivedQuantities() map[uuid.UUID]decimal.Decimal {
	received := make(map[uuid.UUID]decimal.Decimal, len(b.Lines))
	for _, line := range b.Lines {
		received[line.ItemID] = line.ReceivedQuantity
	}
	return received
}

func (b *ProcurementBill) recalculateTotal() {
	total := decimal.Zero
	for _, line := range b.Lines {
		total = total.Add(line.Amount)
	}
	b.TotalAmount = total
}
