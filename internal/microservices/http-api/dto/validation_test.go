package dto

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidators(t *testing.T) {
	require.NoError(t, RegisterValidators())
	require.NoError(t, RegisterValidators())

	valid := CreateNovelForm{
		Title:          "Lord of Mysteries",
		Author:         "Cuttlefish",
		Publisher:      "Qidian",
		Synopsis:       "Steam, machinery and the mysteries beyond.",
		Status:         "completed",
		PublishingYear: 2018,
	}
	assert.NoError(t, binding.Validator.ValidateStruct(valid))

	badStatus := valid
	badStatus.Status = "cancelled"
	assert.Error(t, binding.Validator.ValidateStruct(badStatus))

	tooOld := valid
	tooOld.PublishingYear = 1799
	assert.Error(t, binding.Validator.ValidateStruct(tooOld))

	future := valid
	future.PublishingYear = time.Now().Year() + 2
	assert.Error(t, binding.Validator.ValidateStruct(future))

	nextYear := valid
	nextYear.PublishingYear = time.Now().Year() + 1
	assert.NoError(t, binding.Validator.ValidateStruct(nextYear))
}

func TestUpdateNovelForm_OptionalFields(t *testing.T) {
	require.NoError(t, RegisterValidators())

	assert.NoError(t, binding.Validator.ValidateStruct(UpdateNovelForm{}))

	status := "paused"
	assert.Error(t, binding.Validator.ValidateStruct(UpdateNovelForm{Status: &status}))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-03-01 12:30:00", time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)},
		{"2025-03-01T12:30:00Z", time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}

	_, err := ParseDate("01/03/2025")
	assert.Error(t, err)
}

func TestPageQuery_Normalize(t *testing.T) {
	page, size := PageQuery{}.Normalize()
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	page, size = PageQuery{Page: 3, PageSize: 500}.Normalize()
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, size)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(41, 2, 20)
	assert.Equal(t, int64(3), p.TotalPages)

	p = NewPagination(0, 1, 20)
	assert.Equal(t, int64(0), p.TotalPages)
}
