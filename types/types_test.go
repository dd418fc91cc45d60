package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflakeIDJSON(t *testing.T) {
	b, err := json.Marshal(SnowflakeID(1790000000000000001))
	require.NoError(t, err)
	assert.Equal(t, `"1790000000000000001"`, string(b))

	var id SnowflakeID
	require.NoError(t, json.Unmarshal([]byte(`"42"`), &id))
	assert.Equal(t, SnowflakeID(42), id)
	require.NoError(t, json.Unmarshal([]byte(`43`), &id))
	assert.Equal(t, SnowflakeID(43), id)
	require.NoError(t, json.Unmarshal([]byte(`""`), &id))
	assert.True(t, id.IsZero())
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &id))
}

func TestParseIDs(t *testing.T) {
	id, err := ParseSnowflakeID(" 7 ")
	require.NoError(t, err)
	assert.Equal(t, SnowflakeID(7), id)

	for _, raw := range []string{"", "0", "-3", "x"} {
		_, err := ParseSnowflakeID(raw)
		assert.Error(t, err, raw)
	}

	opt, err := ParseOptionalID("  ")
	require.NoError(t, err)
	assert.Nil(t, opt)
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2025-03-01T10:20:30Z")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", d.String())
	assert.True(t, d.Equal(NewDate(2025, time.March, 1)))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.Equal(t, YearMonth{2025, time.March}, d.YearMonth())

	_, err = ParseDate("03/01/2025")
	assert.Error(t, err)

	var zero Date
	v, err := zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
	b, err := json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-12-31"`), &parsed))
	assert.Equal(t, "2025-12-31", parsed.String())
	require.NoError(t, json.Unmarshal([]byte(`""`), &parsed))
	assert.True(t, parsed.IsZero())
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01-02", d.String())
	require.NoError(t, d.Scan([]byte("2025-01-03")))
	assert.Equal(t, "2025-01-03", d.String())
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
	assert.Error(t, d.Scan(12))
}

func TestYearMonth(t *testing.T) {
	ym, err := ParseYearMonth("2025-02")
	require.NoError(t, err)
	assert.Equal(t, "2025-02", ym.String())
	assert.Equal(t, -1, ym.Compare(YearMonth{2025, time.March}))
	assert.Equal(t, 1, ym.Compare(YearMonth{2024, time.December}))
	assert.Equal(t, 0, ym.Compare(MonthOf(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC))))

	opt, err := ParseOptionalYearMonth("")
	require.NoError(t, err)
	assert.Nil(t, opt)
	_, err = ParseOptionalYearMonth("2025-13")
	assert.Error(t, err)
}

func TestErrorKinds(t *testing.T) {
	nf := fmt.Errorf("loading: %w", NewNotFoundError("inquiry_status", SnowflakeID(9)))
	assert.True(t, IsNotFound(nf))
	assert.True(t, IsNotFoundOf(nf, "inquiry_status"))
	assert.False(t, IsNotFoundOf(nf, "inquiry"))
	assert.Equal(t, "inquiry_status 9 not found", errors.Unwrap(nf).Error())

	assert.True(t, IsValidation(ValidationErrors{NewValidationError("content", "is required")}))
	assert.True(t, IsValidation(NewValidationError("", "bad")))

	assert.Nil(t, NewStoreError("insert", nil))
	base := errors.New("connection refused")
	se := NewStoreError("insert", base)
	assert.True(t, IsStore(se))
	assert.Equal(t, "connection refused", se.Error())
	assert.ErrorIs(t, se, base)
	assert.Same(t, se, NewStoreError("again", se))
}
