package handler

import (
	"errors"
	"fmt"
	"testing"

	"go-logistics-ws/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestErrStatus(t *testing.T) {
	assert.Equal(t, 404, errStatus(service.ErrOrderNotFound))
	assert.Equal(t, 404, errStatus(service.ErrInventoryNotFound))
	assert.Equal(t, 404, errStatus(service.ErrDeliveryNotFound))
	assert.Equal(t, 409, errStatus(service.ErrInsufficientInventory))
	assert.Equal(t, 409, errStatus(service.ErrCannotReleaseMoreThanReserved))
	assert.Equal(t, 409, errStatus(service.ErrSKUExists))
	assert.Equal(t, 400, errStatus(service.ErrInvalidQuantity))

	wrapped := fmt.Errorf("%w: field 'ClientID' failed on tag 'uuid_required'", service.ErrValidation)
	assert.Equal(t, 400, errStatus(wrapped))

	// Unclassified errors (driver failures etc.) are server faults.
	assert.Equal(t, 500, errStatus(errors.New("driver: bad connection")))
}
