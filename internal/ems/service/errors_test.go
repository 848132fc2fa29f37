package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jimyag/ems/pkg/apierror"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStorageError(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name string
		err  error
		want *apierror.Error
	}{
		{name: "not found", err: gorm.ErrRecordNotFound, want: apierror.ErrNotFound},
		{name: "wrapped not found", err: fmt.Errorf("query: %w", gorm.ErrRecordNotFound), want: apierror.ErrNotFound},
		{name: "duplicated key", err: gorm.ErrDuplicatedKey, want: apierror.ErrValidationFailure},
		{name: "api error kept", err: apierror.Validation("bad input"), want: apierror.ErrValidationFailure},
		{name: "other", err: errors.New("disk full"), want: apierror.ErrPersistenceFailure},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := storageError(tc.err, "user %s", "usr-1")
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}

	assert.NoError(t, storageError(nil, "noop"))
}
