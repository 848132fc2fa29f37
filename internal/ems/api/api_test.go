package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/registry"
	"github.com/jimyag/ems/internal/ems/repository"
	"github.com/jimyag/ems/internal/ems/service"
	"github.com/jimyag/ems/pkg/ginx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

// newTestAPI 使用真实的服务和临时 SQLite 数据库创建 API
func newTestAPI(t *testing.T) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repository.New(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Close()
	})

	reg := registry.New()
	metrics := service.NewMetrics()
	opts := Options{
		TagService:             service.NewTagService(repo),
		TaggableService:        service.NewTaggableService(repo, reg, metrics),
		OrganizationService:    service.NewOrganizationService(repo),
		UserService:            service.NewUserService(repo),
		CustomerProfileService: service.NewCustomerProfileService(repo),
		EnergyContractService:  service.NewEnergyContractService(repo),
		FaqService:             service.NewFaqService(repo),
		CarbonCreditService:    service.NewCarbonCreditService(repo, reg),
		Gatherer:               metrics.Registry(),
		Pinger:                 repo,
	}
	require.NoError(t, service.RegisterResolvers(reg,
		opts.OrganizationService,
		opts.UserService,
		opts.CustomerProfileService,
		opts.EnergyContractService,
		opts.FaqService,
	))

	api, err := New(opts)
	require.NoError(t, err)
	return api
}

func post(t *testing.T, api *API, path, body string, out any) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api.Handler().ServeHTTP(w, req)

	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestNew(t *testing.T) {
	t.Parallel()

	api, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, ":7777", api.server.Addr)
	assert.Equal(t, "API Server", api.Name())

	routePaths := make(map[string]bool)
	for _, route := range api.engine.Routes() {
		routePaths[route.Path] = true
	}
	for _, path := range []string{
		"/api/create-tag",
		"/api/create-taggable",
		"/api/increase-taggable-weight",
		"/api/describe-entity-tags",
		"/api/create-organization",
		"/api/vote-faq",
		"/api/resolve-carbon-credit-donor",
		"/healthz",
	} {
		assert.True(t, routePaths[path], "missing route %s", path)
	}
	assert.False(t, routePaths["/metrics"], "metrics are only served with a gatherer")
}

func TestAPI_Healthz(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name         string
		pinger       Pinger
		expectStatus int
	}{
		{name: "no pinger", expectStatus: http.StatusOK},
		{name: "healthy", pinger: fakePinger{}, expectStatus: http.StatusOK},
		{name: "storage down", pinger: fakePinger{err: errors.New("database is closed")}, expectStatus: http.StatusInternalServerError},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			api, err := New(Options{Pinger: tc.pinger})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set(ginx.RequestIDHeader, "req-1")
			w := httptest.NewRecorder()
			api.Handler().ServeHTTP(w, req)

			assert.Equal(t, tc.expectStatus, w.Code)
			assert.Equal(t, "req-1", w.Header().Get(ginx.RequestIDHeader))
		})
	}
}

func TestAPI_TaggableFlow(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	var org entity.CreateOrganizationResponse
	require.Equal(t, http.StatusOK, post(t, api, "/api/create-organization", `{"name":"Acme","country":"DE"}`, &org))

	var tag entity.CreateTagResponse
	require.Equal(t, http.StatusOK, post(t, api, "/api/create-tag", `{"name":"Solar Power"}`, &tag))
	assert.Equal(t, "solar-power", tag.Tag.Slug)

	var created entity.CreateTaggableResponse
	body := `{"tagID":` + jsonNumber(tag.Tag.ID) + `,"taggableType":"organization","taggableID":"` + org.Organization.ID + `","weight":"9.95"}`
	require.Equal(t, http.StatusOK, post(t, api, "/api/create-taggable", body, &created))
	assert.Equal(t, "9.95", created.Taggable.Weight.String())
	id := jsonNumber(created.Taggable.ID)

	var mutated entity.UpdateTaggableWeightResponse
	require.Equal(t, http.StatusOK, post(t, api, "/api/increase-taggable-weight", `{"id":`+id+`}`, &mutated))
	assert.Equal(t, "10.00", mutated.Taggable.Weight.String())

	require.Equal(t, http.StatusOK, post(t, api, "/api/update-taggable-weight", `{"id":`+id+`,"weight":0.05}`, &mutated))
	require.Equal(t, http.StatusOK, post(t, api, "/api/decrease-taggable-weight", `{"id":`+id+`,"amount":"0.1"}`, &mutated))
	assert.Equal(t, "0.00", mutated.Taggable.Weight.String())

	var tags entity.DescribeEntityTagsResponse
	require.Equal(t, http.StatusOK, post(t, api, "/api/describe-entity-tags",
		`{"taggableType":"organization","taggableID":"`+org.Organization.ID+`"}`, &tags))
	require.Len(t, tags.Tags, 1)
	assert.Equal(t, "solar-power", tags.Tags[0].Tag.Slug)

	assert.Equal(t, http.StatusBadRequest, post(t, api, "/api/create-taggable",
		`{"tagID":1,"taggableType":"spaceship","taggableID":"s-1"}`, nil))
	assert.Equal(t, http.StatusNotFound, post(t, api, "/api/create-taggable",
		`{"tagID":`+jsonNumber(tag.Tag.ID)+`,"taggableType":"user","taggableID":"usr-404"}`, nil))
	assert.Equal(t, http.StatusNotFound, post(t, api, "/api/increase-taggable-weight", `{"id":999999}`, nil))

	// 截断次数在 /metrics 中可见
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	api.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `ems_taggable_weight_clamped_total{op="increase"} 1`))
	assert.True(t, strings.Contains(w.Body.String(), `ems_taggable_weight_clamped_total{op="decrease"} 1`))
}

func TestAPI_EntityFlow(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	var org entity.CreateOrganizationResponse
	require.Equal(t, http.StatusOK, post(t, api, "/api/create-organization", `{"name":"Volt","country":"FR"}`, &org))
	orgID := org.Organization.ID

	var user entity.CreateUserResponse
	require.Equal(t, http.StatusOK, post(t, api, "/api/create-user", `{"organizationID":"`+orgID+`","email":"ada@example.com"}`, &user))
	assert.Equal(t, "ada", user.User.DisplayName)
	assert.Equal(t, http.StatusBadRequest, post(t, api, "/api/create-user", `{"organizationID":"`+orgID+`","email":"not-an-email"}`, nil))
	assert.Equal(t, http.StatusBadRequest, post(t, api, "/api/create-user", `{"organizationID":"`+orgID+`","email":"Ada@Example.com"}`, nil))

	require.Equal(t, http.StatusOK, post(t, api, "/api/create-customer-profile", `{"userID":"`+user.User.ID+`","companyName":"Ada Ltd"}`, nil))

	var contract entity.CreateEnergyContractResponse
	require.Equal(t, http.StatusOK, post(t, api, "/api/create-energy-contract",
		`{"organizationID":"`+orgID+`","supplier":"GridCo","energyType":"electricity","pricePerKWh":0.254321,"startDate":"2024-01-01"}`, &contract))
	assert.True(t, contract.EnergyContract.Active)
	assert.Equal(t, 0.2543, contract.EnergyContract.PricePerKWh)
	assert.Equal(t, http.StatusBadRequest, post(t, api, "/api/create-energy-contract",
		`{"organizationID":"`+orgID+`","supplier":"GridCo","energyType":"coal","startDate":"2024-01-01"}`, nil))

	var faq entity.CreateFaqResponse
	require.Equal(t, http.StatusOK, post(t, api, "/api/create-faq", `{"question":"Q?","answer":"A.","published":true}`, &faq))
	var voted entity.VoteFaqResponse
	require.Equal(t, http.StatusOK, post(t, api, "/api/vote-faq", `{"faqID":"`+faq.Faq.ID+`","helpful":true}`, &voted))
	assert.Equal(t, int64(1), voted.Faq.HelpfulCount)
	assert.InDelta(t, 100, voted.Faq.HelpfulRate, 1e-9)

	var credit entity.CreateCarbonCreditResponse
	require.Equal(t, http.StatusOK, post(t, api, "/api/create-carbon-credit",
		`{"donorType":"organization","donorID":"`+orgID+`","amountTonnes":12.505}`, &credit))
	assert.Equal(t, entity.CarbonCreditAvailable, credit.CarbonCredit.Status)
	assert.Equal(t, 12.51, credit.CarbonCredit.AmountTonnes)

	var donor struct {
		DonorType string              `json:"donorType"`
		Donor     entity.Organization `json:"donor"`
	}
	require.Equal(t, http.StatusOK, post(t, api, "/api/resolve-carbon-credit-donor", `{"carbonCreditID":"`+credit.CarbonCredit.ID+`"}`, &donor))
	assert.Equal(t, "organization", donor.DonorType)
	assert.Equal(t, "Volt", donor.Donor.Name)

	var orgs entity.DescribeOrganizationsResponse
	require.Equal(t, http.StatusOK, post(t, api, "/api/describe-organizations",
		`{"filters":[{"name":"country","values":["FR"]}]}`, &orgs))
	assert.Len(t, orgs.Organizations, 1)
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
