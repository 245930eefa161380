package announcements

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Announcement is a persisted passenger-facing message. Kafka delivery is a
// side channel; the database row is the record.
type Announcement struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FlightID  *uuid.UUID `gorm:"type:uuid;index" json:"flight_id,omitempty"`
	Title     string     `gorm:"not null" json:"title"`
	Message   string     `gorm:"not null" json:"message"`
	CreatedBy string     `gorm:"not null" json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName sets the table name for Announcement
func (Announcement) TableName() string {
	return "announcements"
}

// ToJSON serializes the announcement for the Kafka payload.
func (a *Announcement) ToJSON() ([]byte, error) {
	return json.Marshal(a)
}

// PartitionKey routes all messages for one flight to the same partition so
// consumers see them in order.
func (a *Announcement) PartitionKey() string {
	if a.FlightID != nil {
		return a.FlightID.String()
	}
	return "broadcast"
}
