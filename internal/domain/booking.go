package domain

import "time"

type BookingType string

const (
	BookingTypeEvent   BookingType = "event"
	BookingTypeService BookingType = "service"
)

// BookingRecord is the normalized, flat form of an inbound booking webhook.
// Every JSON key is always emitted; optional values serialize as null.
// Pass-through strings are stored as text without a length cap.
type BookingRecord struct {
	ID int64 `json:"-" gorm:"primaryKey"`

	BookingID     string  `json:"bookingId" gorm:"type:text;not null;index" validate:"required"`
	BookingStatus *string `json:"bookingStatus" gorm:"type:text"`
	PaymentStatus *string `json:"paymentStatus" gorm:"type:text"`

	CustomerFullName *string `json:"customerFullName" gorm:"type:text"`
	CustomerEmail    string  `json:"customerEmail" gorm:"type:text;not null" validate:"required"`
	CustomerPhone    *string `json:"customerPhone" gorm:"type:text"`

	Type         BookingType `json:"type" gorm:"type:varchar(16);not null" validate:"required,oneof=event service"`
	ItemID       *string     `json:"itemId" gorm:"type:text"`
	ItemName     *string     `json:"itemName" gorm:"type:text"`
	EmployeeName *string     `json:"employeeName" gorm:"type:text"`
	LocationName *string     `json:"locationName" gorm:"type:text"`

	StartAt     *string `json:"startAt" gorm:"type:text"`
	EndAt       *string `json:"endAt" gorm:"type:text"`
	Timezone    string  `json:"timezone" gorm:"type:text;not null" validate:"required"`
	FechaBonita *string `json:"fechaBonita" gorm:"type:text"`

	TotalAmount *float64 `json:"totalAmount"`
	Currency    *string  `json:"currency" gorm:"type:text"`

	QRToken        string `json:"qrToken" gorm:"column:qr_token;type:varchar(64);not null;index" validate:"required,len=43"`
	CheckinURL     string `json:"checkinUrl" gorm:"column:checkin_url;type:text;not null" validate:"required"`
	IdempotencyKey string `json:"idempotencyKey" gorm:"type:text;not null;uniqueIndex" validate:"required,startswith=booking:"`

	CreatedAt time.Time `json:"-"`
}

func (BookingRecord) TableName() string { return "booking_records" }
