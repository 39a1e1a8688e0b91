package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryCodeHasMessageAndStatus(t *testing.T) {
	for c := range codeMessageMap {
		_, ok := codeStatusMap[c]
		assert.True(t, ok, "code %d has a message but no status", c)
	}
	for c := range codeStatusMap {
		_, ok := codeMessageMap[c]
		assert.True(t, ok, "code %d has a status but no message", c)
	}
}

func TestLookups(t *testing.T) {
	assert.Equal(t, StatusConflict, GetStatus(ErrUtilityUsageAlreadyExist))
	assert.Equal(t, StatusNotFound, GetStatus(ErrHouseholdNotFound))
	assert.Equal(t, StatusForbidden, GetStatus(ErrForbidden))
	assert.Equal(t, StatusInternalServerError, GetStatus(-1))
	assert.Equal(t, "unknown error", GetMessage(-1))
	assert.Equal(t, "success", GetMessage(ErrSuccess))
}
