package apperror

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad")))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("delete: %w", NotFound("gone"))))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestStoreError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Store(errors.Wrap(cause, "find products"))

	assert.Equal(t, KindStore, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store error: find products: connection refused", err.Error())
}
