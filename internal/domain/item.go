package domain

import "time"

// Item is a catalogue entry. It optionally belongs to a Category.
type Item struct {
	ID            int64     `json:"id"                       gorm:"primaryKey"`
	Name          string    `json:"name"                     validate:"notblank,max=255"  gorm:"size:255;not null;uniqueIndex"`
	Description   string    `json:"description"              validate:"max=2000"          gorm:"size:2000"`
	Price         float64   `json:"price"                    validate:"gte=0"`
	DiscountPrice float64   `json:"discount_price"           validate:"gte=0"`
	Quantity      int       `json:"quantity"                 validate:"gte=0"`
	CategoryID    *int64    `json:"category_id,omitempty"    validate:"omitempty,gt=0"    gorm:"index"`
	Category      *Category `json:"-"                        validate:"-"                 gorm:"constraint:OnDelete:RESTRICT"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GetID implements Entity.
func (i *Item) GetID() int64 { return i.ID }

// SetID implements Entity.
func (i *Item) SetID(id int64) { i.ID = id }

// ObjectName implements ObjectNamer.
func (i *Item) ObjectName() string { return "item" }

// Validate checks rules that involve more than one field.
func (i *Item) Validate() []string {
	var violations []string
	if i.DiscountPrice > 0 && i.DiscountPrice > i.Price {
		violations = append(violations, "discount price must not exceed price")
	}
	return violations
}
