package entity

// Due is a bill deferred for later settlement. PaidAt stays nil while the
// amount is outstanding.
type Due struct {
	ID        string  `gorm:"primaryKey;size:64" json:"id"`
	BillID    string  `gorm:"size:64;not null;uniqueIndex" json:"bill_id"`
	Name      *string `gorm:"size:255" json:"name,omitempty"`
	Phone     *string `gorm:"size:50" json:"phone,omitempty"`
	PhotoURI  *string `gorm:"column:photo_uri;type:text" json:"photo_uri,omitempty"`
	CreatedAt int64   `gorm:"not null;index;autoCreateTime:milli" json:"created_at"`
	PaidAt    *int64  `json:"paid_at,omitempty"`
}

// TableName returns the table name for the Due model
func (Due) TableName() string {
	return "dues"
}

// Outstanding reports whether the due has not been settled yet.
func (d *Due) Outstanding() bool {
	return d.PaidAt == nil
}
