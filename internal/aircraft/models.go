package aircraft

import (
	"time"

	"github.com/google/uuid"
)

// SeatTemplate describes the cabin layout of an aircraft type. Seats are not
// persisted individually; they are expanded from the template on demand.
type SeatTemplate struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name string    `gorm:"not null" json:"name"`

	// Layout configuration for the expansion engine
	RowCount     int    `gorm:"not null;default:20" json:"row_count"`
	SeatLetters  string `gorm:"not null;default:'ABC DEF'" json:"seat_letters"` // space marks the aisle
	BusinessRows string `json:"business_rows"`                                  // e.g. "1-3"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Aircraft is a physical airframe assigned to flights.
type Aircraft struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Model              string    `gorm:"not null" json:"model"`
	RegistrationNumber string    `gorm:"unique;not null" json:"registration_number"`
	Capacity           int       `gorm:"not null" json:"capacity"`
	SeatTemplateID     uuid.UUID `gorm:"type:uuid;not null" json:"seat_template_id"`
	CreatedAt          time.Time `json:"created_at"`

	// Relationships
	SeatTemplate *SeatTemplate `json:"seat_template,omitempty" gorm:"foreignKey:SeatTemplateID"`
}

// SeatClass partitions the cabin for pricing.
type SeatClass string

const (
	SeatClassBusiness SeatClass = "BUSINESS"
	SeatClassEconomy  SeatClass = "ECONOMY"
)

// TableName sets the table name for SeatTemplate
func (SeatTemplate) TableName() string {
	return "seat_templates"
}

// TableName sets the table name for Aircraft
func (Aircraft) TableName() string {
	return "aircrafts"
}
