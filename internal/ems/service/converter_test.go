package service

import (
	"testing"
	"time"

	"github.com/jimyag/ems/internal/ems/repository/model"
	"github.com/jimyag/ems/pkg/weight"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestTaggableModelToEntity(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 5, 4, 3, 2, 1, 0, time.FixedZone("CEST", 2*3600))
	m := &model.Taggable{
		ID:           7,
		TagID:        3,
		TaggableType: "faq",
		TaggableID:   "faq-1",
		Weight:       weight.MustParse("9.95"),
		SortOrder:    2,
		Metadata:     datatypes.JSONMap{"k": "v"},
		CreatedAt:    created,
		UpdatedAt:    created,
	}

	e, err := taggableModelToEntity(m)
	require.NoError(t, err)
	assert.Equal(t, uint(7), e.ID)
	assert.Equal(t, uint(3), e.TagID)
	assert.Equal(t, "faq", e.TaggableType)
	assert.Equal(t, "9.95", e.Weight.String())
	assert.Equal(t, 2, e.SortOrder)
	assert.Equal(t, map[string]any{"k": "v"}, e.Metadata)
	assert.Equal(t, "2025-05-04T01:02:01Z", e.CreatedAt)

	empty, err := taggableModelToEntity(&model.Taggable{})
	require.NoError(t, err)
	assert.Nil(t, empty.Metadata)
	assert.Empty(t, empty.CreatedAt)
}

func TestEnergyContractModelToEntity(t *testing.T) {
	t.Parallel()

	end := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	m := &model.EnergyContract{
		ID:          "ctr-1",
		Supplier:    "Volt",
		PricePerKWh: decimal.RequireFromString("0.2315"),
		StartDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     &end,
	}

	e, err := energyContractModelToEntity(m, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01T00:00:00Z", e.StartDate)
	assert.Equal(t, "2025-07-01T00:00:00Z", e.EndDate)
	assert.True(t, e.Active)
	assert.InDelta(t, 0.2315, e.PricePerKWh, 1e-12)

	e, err = energyContractModelToEntity(m, end)
	require.NoError(t, err)
	assert.False(t, e.Active, "end date is exclusive")
}

func TestUserAndFaqModelToEntity(t *testing.T) {
	t.Parallel()

	u, err := userModelToEntity(&model.User{ID: "usr-1", Email: "kim@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "kim", u.DisplayName)

	f, err := faqModelToEntity(&model.Faq{ID: "faq-1", HelpfulCount: 1, NotHelpfulCount: 2})
	require.NoError(t, err)
	assert.InDelta(t, 33.3, f.HelpfulRate, 1e-9)
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	got, err := parseTime("2025-02-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), got)

	got, err = parseTime("2025-02-03T04:05:06+01:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-03T03:05:06Z", got.UTC().Format(time.RFC3339))

	_, err = parseTime("03/02/2025")
	assert.Error(t, err)
}
