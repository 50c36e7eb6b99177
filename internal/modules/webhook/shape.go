package webhook

import (
	"bookinghook/internal/domain"
	"bookinghook/internal/pkg/payload"
)

// fields holds everything read from the payload before derivation.
type fields struct {
	Type domain.BookingType

	BookingID     string
	BookingStatus *string
	PaymentStatus *string

	CustomerFullName *string
	CustomerEmail    string
	CustomerPhone    *string

	ItemID       *string
	ItemName     *string
	EmployeeName *string
	LocationName *string
	StartAt      *string
	EndAt        *string
	Timezone     *string

	TotalAmount *float64
	Currency    *string
}

type shapePaths struct {
	itemID, itemName, employeeName, locationName string
	startAt, endAt, timezone                     string
}

var (
	eventPaths = shapePaths{
		itemID:       "event.id",
		itemName:     "event.name",
		locationName: "event.location.name",
		startAt:      "event.startAt",
		endAt:        "event.endAt",
		timezone:     "event.timezone",
	}
	servicePaths = shapePaths{
		itemID:       "appointment.service.id",
		itemName:     "appointment.service.name",
		employeeName: "appointment.employee.name",
		locationName: "appointment.location.name",
		startAt:      "appointment.startAt",
		endAt:        "appointment.endAt",
		timezone:     "appointment.timezone",
	}
)

// discriminate decides the booking shape. An event wins over an appointment.
func discriminate(data payload.Object) (domain.BookingType, error) {
	switch {
	case payload.Truthy(payload.Resolve(data, "event", nil)):
		return domain.BookingTypeEvent, nil
	case payload.Truthy(payload.Resolve(data, "appointment", nil)):
		return domain.BookingTypeService, nil
	default:
		return "", ErrUnknownShape
	}
}

func extract(body payload.Object) (*fields, error) {
	data, ok := payload.ObjectAt(body, "data")
	if !ok {
		return nil, ErrMissingData
	}

	kind, err := discriminate(data)
	if err != nil {
		return nil, err
	}

	bookingID := payload.StringOrNull(payload.Resolve(data, "booking.id", nil))
	if bookingID == nil {
		return nil, ErrMissingBookingID
	}
	email := payload.StringOrNull(payload.Resolve(data, "customer.email", nil))
	if email == nil {
		return nil, ErrMissingCustomerEmail
	}

	paths := eventPaths
	if kind == domain.BookingTypeService {
		paths = servicePaths
	}
	str := func(path string) *string {
		if path == "" {
			return nil
		}
		return payload.StringOrNull(payload.Resolve(data, path, nil))
	}

	return &fields{
		Type:             kind,
		BookingID:        *bookingID,
		BookingStatus:    str("booking.status"),
		PaymentStatus:    str("payment.status"),
		CustomerFullName: payload.FullName(payload.Resolve(data, "customer.firstName", nil), payload.Resolve(data, "customer.lastName", nil)),
		CustomerEmail:    *email,
		CustomerPhone:    str("customer.phone"),
		ItemID:           str(paths.itemID),
		ItemName:         str(paths.itemName),
		EmployeeName:     str(paths.employeeName),
		LocationName:     str(paths.locationName),
		StartAt:          str(paths.startAt),
		EndAt:            str(paths.endAt),
		Timezone:         str(paths.timezone),
		TotalAmount:      payload.Amount(payload.Resolve(data, "payment.amount", nil)),
		Currency:         str("payment.currency"),
	}, nil
}
