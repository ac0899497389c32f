package domain

import "time"

// Category groups items. A category referenced by an item cannot be deleted.
type Category struct {
	ID        int64     `json:"id"         gorm:"primaryKey"`
	Name      string    `json:"name"       validate:"notblank,max=100"  gorm:"size:100;not null;uniqueIndex"`
	Slug      string    `json:"slug"       validate:"required,max=100,lowercase" gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID implements Entity.
func (c *Category) GetID() int64 { return c.ID }

// SetID implements Entity.
func (c *Category) SetID(id int64) { c.ID = id }
