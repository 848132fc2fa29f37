package entity

import (
	"errors"
	"testing"

	"github.com/jimyag/ems/internal/ems/registry"
	"github.com/jimyag/ems/pkg/apierror"
	"github.com/jimyag/ems/pkg/weight"
	"github.com/stretchr/testify/assert"
)

func TestDisplayNameOf(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name  string
		user  string
		email string
		want  string
	}{
		{name: "name wins", user: "Ada Lovelace", email: "ada@example.com", want: "Ada Lovelace"},
		{name: "blank name falls back to email", user: "  ", email: "grace@example.com", want: "grace"},
		{name: "email without at sign", email: "operator", want: "operator"},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, DisplayNameOf(tc.user, tc.email))
		})
	}
}

func TestEntityVariants(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		entity registry.Entity
		kind   registry.Kind
		id     string
	}{
		{entity: &User{ID: "usr-1"}, kind: registry.KindUser, id: "usr-1"},
		{entity: &Organization{ID: "org-1"}, kind: registry.KindOrganization, id: "org-1"},
		{entity: &CustomerProfile{ID: "cust-1"}, kind: registry.KindCustomerProfile, id: "cust-1"},
		{entity: &EnergyContract{ID: "ctr-1"}, kind: registry.KindEnergyContract, id: "ctr-1"},
		{entity: &Faq{ID: "faq-1"}, kind: registry.KindFaq, id: "faq-1"},
	}

	for _, tc := range testcases {
		assert.Equal(t, tc.kind, tc.entity.TaggableKind())
		assert.Equal(t, tc.id, tc.entity.TaggableID())
	}
}

func TestStepTaggableWeightRequest_IsValid(t *testing.T) {
	t.Parallel()

	neg := weight.MustParse("-0.1")
	pos := weight.MustParse("0.5")

	assert.NoError(t, (&StepTaggableWeightRequest{ID: 1}).IsValid())
	assert.NoError(t, (&StepTaggableWeightRequest{ID: 1, Amount: &pos}).IsValid())

	err := (&StepTaggableWeightRequest{ID: 1, Amount: &neg}).IsValid()
	assert.True(t, errors.Is(err, apierror.ErrValidationFailure))
}

func TestDescribeTaggablesRequest_IsValid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&DescribeTaggablesRequest{}).IsValid())
	assert.NoError(t, (&DescribeTaggablesRequest{TaggableType: "faq", TaggableID: "faq-1"}).IsValid())

	err := (&DescribeTaggablesRequest{TaggableID: "faq-1"}).IsValid()
	assert.True(t, errors.Is(err, apierror.ErrValidationFailure))
}

func TestFilter_FirstValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Filter{Name: "country"}.FirstValue())
	assert.Equal(t, "DE", Filter{Name: "country", Values: []string{"DE", "FR"}}.FirstValue())
}
