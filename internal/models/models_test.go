package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		offset     string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", "", DefaultLimit, 0},
		{"explicit", "25", "50", 25, 50},
		{"limit above max clamps", "5000", "0", MaxLimit, 0},
		{"zero limit clamps to one", "0", "0", 1, 0},
		{"negative limit clamps to one", "-3", "0", 1, 0},
		{"negative offset clamps to zero", "10", "-7", 10, 0},
		{"garbage falls back to defaults", "abc", "xyz", DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := ParsePage(tt.limit, tt.offset)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantOffset, page.Offset)
		})
	}
}

func TestNewPaginationResult_HasMore(t *testing.T) {
	tests := []struct {
		limit, offset int
		total         int64
		want          bool
	}{
		{10, 0, 25, true},
		{10, 10, 25, true},
		{10, 20, 25, false},
		{10, 15, 25, false},
		{100, 0, 100, false},
		{100, 0, 0, false},
	}

	for _, tt := range tests {
		p := NewPaginationResult(Page{Limit: tt.limit, Offset: tt.offset}, tt.total)
		assert.Equal(t, tt.want, p.HasMore, "limit=%d offset=%d total=%d", tt.limit, tt.offset, tt.total)
		assert.Equal(t, tt.total, p.Total)
	}
}

func TestIsValidTag(t *testing.T) {
	for _, tag := range AllTags {
		assert.True(t, IsValidTag(string(tag)))
	}
	assert.False(t, IsValidTag("vip"))
	assert.False(t, IsValidTag("Langganan"))
	assert.False(t, IsValidTag(""))
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "completed", "cancelled"} {
		assert.True(t, IsValidOrderStatus(s))
	}
	assert.False(t, IsValidOrderStatus("shipped"))
}

func TestDate_JSON(t *testing.T) {
	d := Date{Time: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-09"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-09T00:00:00Z"`), &back))
	assert.True(t, back.Equal(d.Time))

	assert.Error(t, json.Unmarshal([]byte(`"2024-02-30"`), &back))
}

func TestCustomerInput_Apply(t *testing.T) {
	phone := "0812"
	c := &Customer{ID: 7, Name: "old", Tags: []Tag{TagRewel}}

	CustomerInput{Name: "Budi", Phone: &phone}.Apply(c)

	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, "Budi", c.Name)
	assert.Equal(t, &phone, c.Phone)
	assert.Empty(t, c.Tags)
	assert.NotNil(t, c.Tags)
}

func TestAppError_Unwrap(t *testing.T) {
	err := ErrNotFoundWithMsg("customer with ID 1 not found")
	assert.True(t, errors.Is(err, ErrNotFound))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, CodeNotFound, appErr.Code)

	v := ErrValidation([]FieldError{{Field: "name", Message: "Name is required"}})
	require.True(t, errors.As(v, &appErr))
	assert.Equal(t, CodeValidationFailed, appErr.Code)
	assert.Len(t, appErr.Details, 1)
}
