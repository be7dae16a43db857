package models

import "time"

// ServiceType is one entry in the shop's catalog of known laundry services
// ("Cuci Kering", "Setrika", ...). The order form uses the list for
// autocomplete of service names.
type ServiceType struct {
	ID      string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	OwnerID string `gorm:"type:uuid;not null;index" json:"ownerId"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for ServiceType model
func (ServiceType) TableName() string {
	return "list_laundry"
}
