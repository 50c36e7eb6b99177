package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestBookingRecord_PassThroughColumnsAreUncapped(t *testing.T) {
	s, err := schema.Parse(&BookingRecord{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	for _, name := range []string{
		"booking_id", "booking_status", "payment_status", "customer_full_name",
		"customer_email", "customer_phone", "item_id", "item_name", "employee_name",
		"location_name", "start_at", "end_at", "timezone", "fecha_bonita", "currency",
		"checkin_url", "idempotency_key",
	} {
		f := s.LookUpField(name)
		require.NotNil(t, f, name)
		assert.Equal(t, schema.DataType("text"), f.DataType, name)
	}
}
