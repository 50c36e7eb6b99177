package webhook

import (
	"encoding/json"
	"fmt"

	"bookinghook/internal/domain"
	"bookinghook/internal/modules/checkin"
	"bookinghook/internal/pkg/fecha"
	"bookinghook/internal/pkg/validator"
)

// RequiredKeys lists every key a serialized BookingRecord must carry.
var RequiredKeys = []string{
	"bookingId", "bookingStatus", "paymentStatus",
	"customerFullName", "customerEmail", "customerPhone",
	"type", "itemId", "itemName", "employeeName", "locationName",
	"startAt", "endAt", "timezone", "fechaBonita",
	"totalAmount", "currency",
	"qrToken", "checkinUrl", "idempotencyKey",
}

type Assembler struct {
	deriver     *checkin.Deriver
	dates       *fecha.Renderer
	defaultZone string
}

func NewAssembler(deriver *checkin.Deriver, dates *fecha.Renderer, defaultZone string) *Assembler {
	return &Assembler{deriver: deriver, dates: dates, defaultZone: defaultZone}
}

func (a *Assembler) Assemble(f *fields) (*domain.BookingRecord, error) {
	zone := a.defaultZone
	if f.Timezone != nil && *f.Timezone != "" {
		zone = *f.Timezone
	}

	token := a.deriver.Token(f.BookingID, f.CustomerEmail)
	rec := &domain.BookingRecord{
		BookingID:        f.BookingID,
		BookingStatus:    f.BookingStatus,
		PaymentStatus:    f.PaymentStatus,
		CustomerFullName: f.CustomerFullName,
		CustomerEmail:    f.CustomerEmail,
		CustomerPhone:    f.CustomerPhone,
		Type:             f.Type,
		ItemID:           f.ItemID,
		ItemName:         f.ItemName,
		LocationName:     f.LocationName,
		StartAt:          f.StartAt,
		EndAt:            f.EndAt,
		Timezone:         zone,
		FechaBonita:      a.dates.Pretty(f.StartAt, zone),
		TotalAmount:      f.TotalAmount,
		Currency:         f.Currency,
		QRToken:          token,
		CheckinURL:       a.deriver.URL(token),
		IdempotencyKey:   checkin.IdempotencyKey(f.BookingID),
	}
	if f.Type == domain.BookingTypeService {
		rec.EmployeeName = f.EmployeeName
	}

	if err := CheckContract(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// CheckContract guards against the record drifting from its published shape.
func CheckContract(rec *domain.BookingRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrokenContract, err)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrBrokenContract, err)
	}
	for _, key := range RequiredKeys {
		if _, ok := obj[key]; !ok {
			return fmt.Errorf("%w: missing key %q", ErrBrokenContract, key)
		}
	}
	if problems := validator.Validate(rec); problems != nil {
		return fmt.Errorf("%w: %v", ErrBrokenContract, problems)
	}
	return nil
}
