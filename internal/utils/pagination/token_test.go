package pagination_test

import (
	"testing"
	"time"

	"github.com/nbenhadj/bookkeeping_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	entryDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 3, 15, 10, 30, 45, 123456789, time.UTC)

	token := pagination.EncodeToken(entryDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, entryDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("aGVsbG8=") // decodes to "hello", no separator
	assert.Error(t, err)
}
