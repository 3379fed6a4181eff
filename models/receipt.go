package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptFile represents an uploaded receipt PDF on disk. Validation and
// processing outcomes are recorded here so failed files stay reviewable
// instead of being deleted.
type ReceiptFile struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FileName    string `gorm:"size:255;not null;index"`
	StorePath   string `gorm:"column:store_path;size:512"`
	ContentType string `gorm:"size:128"`
	UserID      uint   `gorm:"index;not null"`
	User        User   `gorm:"foreignKey:UserID;references:ID"`
	// Nil until validation has run.
	IsValid       *bool  `gorm:"index"`
	InvalidReason string `gorm:"size:255"`
	IsProcessed   bool   `gorm:"default:false;index"`
}

// Receipt holds the fields extracted from a processed receipt file.
type Receipt struct {
	ID            uint `gorm:"primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ReceiptFileID uint        `gorm:"uniqueIndex;not null"`
	ReceiptFile   ReceiptFile `gorm:"foreignKey:ReceiptFileID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID        uint        `gorm:"index;not null"`
	MerchantName  string      `gorm:"size:255"`
	PurchasedAt   time.Time
	DateFound     bool             `gorm:"default:false"`
	TotalAmount   *decimal.Decimal `gorm:"type:numeric(12,2)"`
	TaxAmount     *decimal.Decimal `gorm:"type:numeric(12,2)"`
	PaymentMethod string           `gorm:"size:64"`
	Currency      string           `gorm:"size:8"`
	RawText       string           `gorm:"type:text"`
	Items         []ReceiptItem    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// ReceiptItem is a single line item on a receipt.
type ReceiptItem struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ReceiptID  uint            `gorm:"index;not null"`
	ItemName   string          `gorm:"size:255;not null"`
	Quantity   decimal.Decimal `gorm:"type:numeric(10,2)"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2)"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
}
