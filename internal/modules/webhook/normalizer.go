package webhook

import (
	"bookinghook/internal/config"
	"bookinghook/internal/domain"
	"bookinghook/internal/modules/checkin"
	"bookinghook/internal/pkg/fecha"
	"bookinghook/internal/pkg/payload"
)

// Normalizer is the pure payload -> BookingRecord pipeline. It holds no mutable
// state and is safe for concurrent use.
type Normalizer struct {
	assembler *Assembler
}

func NewNormalizer(assembler *Assembler) *Normalizer {
	return &Normalizer{assembler: assembler}
}

// Normalize converts one webhook body into a BookingRecord. Headers are accepted
// for signature checks at the transport layer and are not read here. Every
// returned error matches ErrValidation.
func (n *Normalizer) Normalize(body payload.Object, headers map[string]string) (*domain.BookingRecord, error) {
	_ = headers

	f, err := extract(body)
	if err != nil {
		return nil, invalid(err)
	}
	rec, err := n.assembler.Assemble(f)
	if err != nil {
		return nil, invalid(err)
	}
	return rec, nil
}

// NewNormalizerFromConfig builds the pipeline from process configuration.
func NewNormalizerFromConfig(cfg *config.Config) (*Normalizer, error) {
	formatter, err := fecha.NewFormatter(cfg.DisplayLocale)
	if err != nil {
		return nil, err
	}
	deriver := checkin.NewDeriver(cfg.CheckinSecret, cfg.CheckinBaseURL)
	return NewNormalizer(NewAssembler(deriver, fecha.NewRenderer(formatter), cfg.DefaultTimezone)), nil
}
