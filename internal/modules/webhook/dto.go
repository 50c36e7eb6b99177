package webhook

import "bookinghook/internal/domain"

type IngestResult struct {
	Record    *domain.BookingRecord `json:"record"`
	Duplicate bool                  `json:"duplicate"`
}
