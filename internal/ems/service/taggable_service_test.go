package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/registry"
	"github.com/jimyag/ems/pkg/apierror"
	"github.com/jimyag/ems/pkg/weight"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wptr(s string) *weight.Weight {
	w := weight.MustParse(s)
	return &w
}

// createTaggable 在 org 上创建一个关联
func createTaggable(t *testing.T, ts *TestServices, tagID uint, kind registry.Kind, id string, w *weight.Weight, sortOrder int) *entity.Taggable {
	t.Helper()
	resp, err := ts.TaggableService.CreateTaggable(context.Background(), &entity.CreateTaggableRequest{
		TagID:        tagID,
		TaggableType: kind.String(),
		TaggableID:   id,
		Weight:       w,
		SortOrder:    sortOrder,
	})
	require.NoError(t, err)
	return resp.Taggable
}

func TestTaggableService_CreateTaggable(t *testing.T) {
	t.Parallel()

	ts := setupTestServices(t)
	ctx := context.Background()
	org := ts.mustCreateOrganization(t, "Acme Energy")
	tag := ts.mustCreateTag(t, "Renewable")

	testcases := []struct {
		name       string
		req        *entity.CreateTaggableRequest
		wantErr    *apierror.Error
		wantWeight string
	}{
		{
			name:       "default weight",
			req:        &entity.CreateTaggableRequest{TagID: tag.ID, TaggableType: "organization", TaggableID: org.ID},
			wantWeight: "1.00",
		},
		{
			name:       "weight above range is clamped",
			req:        &entity.CreateTaggableRequest{TagID: tag.ID, TaggableType: "organization", TaggableID: org.ID, Weight: wptr("12.5")},
			wantWeight: "10.00",
		},
		{
			name:       "weight below range is clamped",
			req:        &entity.CreateTaggableRequest{TagID: tag.ID, TaggableType: "organization", TaggableID: org.ID, Weight: wptr("-3")},
			wantWeight: "0.00",
		},
		{
			name:       "explicit zero is kept",
			req:        &entity.CreateTaggableRequest{TagID: tag.ID, TaggableType: "organization", TaggableID: org.ID, Weight: wptr("0")},
			wantWeight: "0.00",
		},
		{
			name:    "unknown taggable type",
			req:     &entity.CreateTaggableRequest{TagID: tag.ID, TaggableType: "spaceship", TaggableID: "x"},
			wantErr: apierror.ErrUnknownTaggableType,
		},
		{
			name:    "missing tag",
			req:     &entity.CreateTaggableRequest{TagID: 9999, TaggableType: "organization", TaggableID: org.ID},
			wantErr: apierror.ErrNotFound,
		},
		{
			name:    "missing target entity",
			req:     &entity.CreateTaggableRequest{TagID: tag.ID, TaggableType: "organization", TaggableID: "org-404"},
			wantErr: apierror.ErrNotFound,
		},
	}

	// 共享同一个 SQLite 文件，写入的子测试串行执行
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := ts.TaggableService.CreateTaggable(ctx, tc.req)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, resp.Taggable.ID)
			assert.Equal(t, tc.wantWeight, resp.Taggable.Weight.String())

			got, err := ts.TaggableService.DescribeTaggable(ctx, resp.Taggable.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.wantWeight, got.Weight.String())
			assert.NotEmpty(t, got.CreatedAt)
		})
	}
}

func TestTaggableService_Metadata(t *testing.T) {
	t.Parallel()

	ts := setupTestServices(t)
	ctx := context.Background()
	faq := ts.mustCreateFaq(t, "How are tariffs computed?", true)
	tag := ts.mustCreateTag(t, "Billing")

	resp, err := ts.TaggableService.CreateTaggable(ctx, &entity.CreateTaggableRequest{
		TagID:        tag.ID,
		TaggableType: "faq",
		TaggableID:   faq.ID,
		Metadata:     map[string]any{"source": "import", "reviewed": true},
	})
	require.NoError(t, err)

	got, err := ts.TaggableService.DescribeTaggable(ctx, resp.Taggable.ID)
	require.NoError(t, err)
	assert.Equal(t, "import", got.Metadata["source"])
	assert.Equal(t, true, got.Metadata["reviewed"])

	updated, err := ts.TaggableService.UpdateTaggable(ctx, &entity.UpdateTaggableRequest{
		ID:       resp.Taggable.ID,
		Metadata: map[string]any{"source": "manual"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"source": "manual"}, updated.Metadata)
}

func TestTaggableService_WeightOperations(t *testing.T) {
	t.Parallel()

	ts := setupTestServices(t)
	ctx := context.Background()
	org := ts.mustCreateOrganization(t, "Grid Co")
	tag := ts.mustCreateTag(t, "Priority")

	testcases := []struct {
		name    string
		initial string
		op      func(id uint) error
		want    string
		wantErr *apierror.Error
	}{
		{
			name:    "update inside range",
			initial: "1",
			op:      func(id uint) error { return ts.TaggableService.UpdateWeight(ctx, id, weight.MustParse("7.25")) },
			want:    "7.25",
		},
		{
			name:    "update above range",
			initial: "1",
			op:      func(id uint) error { return ts.TaggableService.UpdateWeight(ctx, id, weight.MustParse("15")) },
			want:    "10.00",
		},
		{
			name:    "update below range",
			initial: "5",
			op:      func(id uint) error { return ts.TaggableService.UpdateWeight(ctx, id, weight.MustParse("-2")) },
			want:    "0.00",
		},
		{
			name:    "increase saturates at 10",
			initial: "9.95",
			op:      func(id uint) error { return ts.TaggableService.IncreaseWeight(ctx, id, weight.DefaultStep) },
			want:    "10.00",
		},
		{
			name:    "decrease saturates at 0",
			initial: "0.05",
			op:      func(id uint) error { return ts.TaggableService.DecreaseWeight(ctx, id, weight.DefaultStep) },
			want:    "0.00",
		},
		{
			name:    "increase by custom amount",
			initial: "2.5",
			op:      func(id uint) error { return ts.TaggableService.IncreaseWeight(ctx, id, weight.MustParse("1.25")) },
			want:    "3.75",
		},
		{
			name:    "decrease by default step",
			initial: "3",
			op:      func(id uint) error { return ts.TaggableService.DecreaseWeight(ctx, id, weight.DefaultStep) },
			want:    "2.90",
		},
		{
			name:    "negative increase is rejected",
			initial: "3",
			op:      func(id uint) error { return ts.TaggableService.IncreaseWeight(ctx, id, weight.MustParse("-1")) },
			want:    "3.00",
			wantErr: apierror.ErrValidationFailure,
		},
		{
			name:    "negative decrease is rejected",
			initial: "3",
			op:      func(id uint) error { return ts.TaggableService.DecreaseWeight(ctx, id, weight.MustParse("-1")) },
			want:    "3.00",
			wantErr: apierror.ErrValidationFailure,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			taggable := createTaggable(t, ts, tag.ID, registry.KindOrganization, org.ID, wptr(tc.initial), 0)

			err := tc.op(taggable.ID)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
			} else {
				require.NoError(t, err)
			}

			got, err := ts.TaggableService.DescribeTaggable(ctx, taggable.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Weight.String())
		})
	}
}

func TestTaggableService_WeightOperationsOnMissing(t *testing.T) {
	t.Parallel()

	ts := setupTestServices(t)
	ctx := context.Background()

	for name, op := range map[string]func() error{
		"update":   func() error { return ts.TaggableService.UpdateWeight(ctx, 424242, weight.Default) },
		"increase": func() error { return ts.TaggableService.IncreaseWeight(ctx, 424242, weight.DefaultStep) },
		"decrease": func() error { return ts.TaggableService.DecreaseWeight(ctx, 424242, weight.DefaultStep) },
	} {
		err := op()
		assert.True(t, errors.Is(err, apierror.ErrNotFound), "%s: got %v", name, err)
	}
}

func TestTaggableService_ClampMetrics(t *testing.T) {
	t.Parallel()

	ts := setupTestServices(t)
	ctx := context.Background()
	org := ts.mustCreateOrganization(t, "Metered")
	tag := ts.mustCreateTag(t, "Metrics")

	taggable := createTaggable(t, ts, tag.ID, registry.KindOrganization, org.ID, wptr("9.95"), 0)

	require.NoError(t, ts.TaggableService.IncreaseWeight(ctx, taggable.ID, weight.DefaultStep))
	require.NoError(t, ts.TaggableService.IncreaseWeight(ctx, taggable.ID, weight.DefaultStep))
	require.NoError(t, ts.TaggableService.DecreaseWeight(ctx, taggable.ID, weight.DefaultStep))

	assert.Equal(t, float64(2), testutil.ToFloat64(ts.Metrics.mutations.WithLabelValues(opIncrease)))
	assert.Equal(t, float64(2), testutil.ToFloat64(ts.Metrics.clamped.WithLabelValues(opIncrease)))
	assert.Equal(t, float64(1), testutil.ToFloat64(ts.Metrics.mutations.WithLabelValues(opDecrease)))
	assert.Equal(t, float64(0), testutil.ToFloat64(ts.Metrics.clamped.WithLabelValues(opDecrease)))
}

func TestTaggableService_DescribeTaggables(t *testing.T) {
	t.Parallel()

	ts := setupTestServices(t)
	ctx := context.Background()

	org1 := ts.mustCreateOrganization(t, "One")
	org2 := ts.mustCreateOrganization(t, "Two")
	user := ts.mustCreateUser(t, org1.ID, "ops@example.com")
	solar := ts.mustCreateTag(t, "Solar")
	wind := ts.mustCreateTag(t, "Wind")

	createTaggable(t, ts, solar.ID, registry.KindOrganization, org1.ID, wptr("3"), 1)
	createTaggable(t, ts, solar.ID, registry.KindOrganization, org2.ID, wptr("7"), 1)
	createTaggable(t, ts, solar.ID, registry.KindUser, user.ID, wptr("4.99"), 0)
	createTaggable(t, ts, wind.ID, registry.KindOrganization, org1.ID, wptr("0.5"), 0)

	testcases := []struct {
		name    string
		req     *entity.DescribeTaggablesRequest
		wantLen int
		check   func(t *testing.T, got []entity.Taggable)
		wantErr *apierror.Error
	}{
		{name: "all", req: &entity.DescribeTaggablesRequest{}, wantLen: 4},
		{name: "by tag", req: &entity.DescribeTaggablesRequest{TagID: solar.ID}, wantLen: 3},
		{name: "default minimum weight", req: &entity.DescribeTaggablesRequest{ByWeight: true}, wantLen: 3},
		{
			name:    "explicit minimum weight",
			req:     &entity.DescribeTaggablesRequest{MinWeight: wptr("5")},
			wantLen: 1,
			check: func(t *testing.T, got []entity.Taggable) {
				assert.Equal(t, org2.ID, got[0].TaggableID)
			},
		},
		{name: "by type", req: &entity.DescribeTaggablesRequest{TaggableType: "user"}, wantLen: 1},
		{
			name:    "by target ordered",
			req:     &entity.DescribeTaggablesRequest{TaggableType: "organization", TaggableID: org1.ID, Ordered: true},
			wantLen: 2,
			check: func(t *testing.T, got []entity.Taggable) {
				assert.Equal(t, wind.ID, got[0].TagID)
				assert.Equal(t, solar.ID, got[1].TagID)
			},
		},
		{
			name:    "ordered ties broken by weight",
			req:     &entity.DescribeTaggablesRequest{TagID: solar.ID, TaggableType: "organization", Ordered: true},
			wantLen: 2,
			check: func(t *testing.T, got []entity.Taggable) {
				assert.Equal(t, "7.00", got[0].Weight.String())
				assert.Equal(t, "3.00", got[1].Weight.String())
			},
		},
		{
			name:    "unknown type",
			req:     &entity.DescribeTaggablesRequest{TaggableType: "planet"},
			wantErr: apierror.ErrUnknownTaggableType,
		},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resp, err := ts.TaggableService.DescribeTaggables(ctx, tc.req)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Len(t, resp.Taggables, tc.wantLen)
			if tc.check != nil {
				tc.check(t, resp.Taggables)
			}
		})
	}
}

func TestTaggableService_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	ts := setupTestServices(t)
	ctx := context.Background()
	org := ts.mustCreateOrganization(t, "Mutable")
	tag := ts.mustCreateTag(t, "Edit")

	taggable := createTaggable(t, ts, tag.ID, registry.KindOrganization, org.ID, nil, 0)

	sortOrder := 4
	updated, err := ts.TaggableService.UpdateTaggable(ctx, &entity.UpdateTaggableRequest{
		ID:        taggable.ID,
		Weight:    wptr("11"),
		SortOrder: &sortOrder,
	})
	require.NoError(t, err)
	assert.Equal(t, "10.00", updated.Weight.String())
	assert.Equal(t, 4, updated.SortOrder)

	_, err = ts.TaggableService.UpdateTaggable(ctx, &entity.UpdateTaggableRequest{ID: 9999})
	assert.True(t, errors.Is(err, apierror.ErrNotFound))

	require.NoError(t, ts.TaggableService.DeleteTaggable(ctx, &entity.DeleteTaggableRequest{ID: taggable.ID}))
	_, err = ts.TaggableService.DescribeTaggable(ctx, taggable.ID)
	assert.True(t, errors.Is(err, apierror.ErrNotFound))

	err = ts.TaggableService.DeleteTaggable(ctx, &entity.DeleteTaggableRequest{ID: taggable.ID})
	assert.True(t, errors.Is(err, apierror.ErrNotFound))

	hard := createTaggable(t, ts, tag.ID, registry.KindOrganization, org.ID, nil, 0)
	require.NoError(t, ts.TaggableService.DeleteTaggable(ctx, &entity.DeleteTaggableRequest{ID: hard.ID, Hard: true}))
	_, err = ts.TaggableService.DescribeTaggable(ctx, hard.ID)
	assert.True(t, errors.Is(err, apierror.ErrNotFound))
}

func TestTaggableService_ResolveTaggable(t *testing.T) {
	t.Parallel()

	ts := setupTestServices(t)
	ctx := context.Background()
	org := ts.mustCreateOrganization(t, "Resolvable")
	user := ts.mustCreateUser(t, org.ID, "jane.doe@example.com")
	tag := ts.mustCreateTag(t, "People")

	taggable := createTaggable(t, ts, tag.ID, registry.KindUser, user.ID, nil, 0)

	got, err := ts.TaggableService.ResolveTaggable(ctx, taggable.ID)
	require.NoError(t, err)
	resolved, ok := got.(*entity.User)
	require.True(t, ok, "expected *entity.User, got %T", got)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, "jane.doe", resolved.DisplayName)

	_, err = ts.TaggableService.ResolveTaggable(ctx, 9999)
	assert.True(t, errors.Is(err, apierror.ErrNotFound))
}

func TestTaggableService_DescribeEntityTags(t *testing.T) {
	t.Parallel()

	ts := setupTestServices(t)
	ctx := context.Background()
	org := ts.mustCreateOrganization(t, "Tagged")
	high := ts.mustCreateTag(t, "High")
	low := ts.mustCreateTag(t, "Low")
	gone := ts.mustCreateTag(t, "Gone")

	createTaggable(t, ts, low.ID, registry.KindOrganization, org.ID, wptr("2"), 0)
	createTaggable(t, ts, high.ID, registry.KindOrganization, org.ID, wptr("8"), 0)
	createTaggable(t, ts, gone.ID, registry.KindOrganization, org.ID, wptr("9"), 0)
	require.NoError(t, ts.TagService.DeleteTag(ctx, &entity.DeleteTagRequest{TagID: gone.ID}))

	resp, err := ts.TaggableService.DescribeEntityTags(ctx, &entity.DescribeEntityTagsRequest{
		TaggableType: "organization",
		TaggableID:   org.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Tags, 2)
	assert.Equal(t, "high", resp.Tags[0].Tag.Slug)
	assert.Equal(t, "low", resp.Tags[1].Tag.Slug)

	resp, err = ts.TaggableService.DescribeEntityTags(ctx, &entity.DescribeEntityTagsRequest{
		TaggableType: "organization",
		TaggableID:   org.ID,
		MinWeight:    wptr("5"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, high.ID, resp.Tags[0].Tag.ID)

	_, err = ts.TaggableService.DescribeEntityTags(ctx, &entity.DescribeEntityTagsRequest{
		TaggableType: "organization",
		TaggableID:   "org-missing",
	})
	assert.True(t, errors.Is(err, apierror.ErrNotFound))
}
