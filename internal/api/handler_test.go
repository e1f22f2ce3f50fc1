package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marginlab/ccpmargin/internal/domain/dto"
	"github.com/marginlab/ccpmargin/internal/domain/models"
	"github.com/marginlab/ccpmargin/internal/ingestion"
	"github.com/marginlab/ccpmargin/internal/service"
	"github.com/marginlab/ccpmargin/internal/storage"
)

type mockSimService struct {
	snap   *models.MarginSnapshot
	err    error
	gotSc  models.Scenario
	called bool
}

func (m *mockSimService) Run(_ context.Context, _ *ingestion.Inputs, sc models.Scenario) (*models.MarginSnapshot, error) {
	m.called = true
	m.gotSc = sc
	return m.snap, m.err
}

var _ service.SimulationService = (*mockSimService)(nil)

type mockRepo struct {
	snap *models.MarginSnapshot
	list []models.MarginSnapshot
	err  error
}

func (m *mockRepo) InsertSnapshot(*models.MarginSnapshot) error { return m.err }
func (m *mockRepo) GetSnapshotByRunID(string) (*models.MarginSnapshot, error) {
	return m.snap, m.err
}
func (m *mockRepo) ListSnapshots(int) ([]models.MarginSnapshot, error) { return m.list, m.err }

var _ storage.SnapshotRepository = (*mockRepo)(nil)

const (
	tradesCSV = "trade_id,cpty,product,notional,ccy,tenor_yrs,fixed_rate,pay_fixed,ccypair,side\n" +
		"T1,CP_A,IRS,1000000,USD,5,0.03,true,,\n"
	ratesCSV = "date,rate_2y,rate_5y,rate_10y\n" +
		"2025-01-02,0.0410,0.0395,0.0388\n" +
		"2025-01-03,0.0412,0.0396,0.0390\n"
	fxCSV = "date,EURUSD\n2025-01-02,1.10\n2025-01-03,1.11\n"
)

func validRequestBody(t *testing.T, mutate func(*dto.SimulationRequest)) []byte {
	t.Helper()
	enc := base64.StdEncoding.EncodeToString
	req := dto.SimulationRequest{
		TradesCSV: enc([]byte(tradesCSV)),
		RatesCSV:  enc([]byte(ratesCSV)),
		FXCSV:     enc([]byte(fxCSV)),
	}
	if mutate != nil {
		mutate(&req)
	}
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return b
}

func sampleSnap() *models.MarginSnapshot {
	return &models.MarginSnapshot{
		RunID:       "run-1",
		CreatedAt:   time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC),
		IMBilateral: 1000,
		IMCCP:       400,
		Scenario:    models.DefaultScenario(),
	}
}

func setupRouter(svc service.SimulationService, repo storage.SnapshotRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, repo, models.DefaultScenario())
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/simulations", h.RunSimulation)
	v1.GET("/simulations", h.ListSimulations)
	v1.GET("/simulations/:run_id", h.GetSimulation)
	return r
}

func TestRunSimulation_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockSimService
		body   []byte
		status int
		assert func(t *testing.T, svc *mockSimService, body []byte)
	}{
		{
			name:   "not json",
			svc:    &mockSimService{},
			body:   []byte("not json"),
			status: http.StatusBadRequest,
		},
		{
			name:   "missing files",
			svc:    &mockSimService{},
			body:   []byte(`{"trades_csv":""}`),
			status: http.StatusBadRequest,
		},
		{
			name: "bad base64",
			svc:  &mockSimService{},
			body: func() []byte {
				return validRequestBody(t, func(r *dto.SimulationRequest) { r.TradesCSV = "%%%" })
			}(),
			status: http.StatusBadRequest,
		},
		{
			name: "invalid scenario override",
			svc:  &mockSimService{},
			body: func() []byte {
				bad := -1.0
				return validRequestBody(t, func(r *dto.SimulationRequest) { r.StressMult = &bad })
			}(),
			status: http.StatusBadRequest,
		},
		{
			name:   "service failure",
			svc:    &mockSimService{err: errors.New("pricing blew up")},
			body:   validRequestBody(t, nil),
			status: http.StatusInternalServerError,
		},
		{
			name:   "success",
			svc:    &mockSimService{snap: sampleSnap()},
			body:   validRequestBody(t, nil),
			status: http.StatusCreated,
			assert: func(t *testing.T, svc *mockSimService, body []byte) {
				var out dto.SnapshotResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.RunID != "run-1" || out.IMBilateral != 1000 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name: "scenario override reaches service",
			svc:  &mockSimService{snap: sampleSnap()},
			body: func() []byte {
				mult := 2.5
				return validRequestBody(t, func(r *dto.SimulationRequest) { r.StressMult = &mult })
			}(),
			status: http.StatusCreated,
			assert: func(t *testing.T, svc *mockSimService, _ []byte) {
				if !svc.called || svc.gotSc.StressMult != 2.5 {
					t.Fatalf("override lost: %+v", svc.gotSc)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouter(tc.svc, &mockRepo{})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/simulations", bytes.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestGetSimulation(t *testing.T) {
	cases := []struct {
		name   string
		repo   storage.SnapshotRepository
		status int
	}{
		{"found", &mockRepo{snap: sampleSnap()}, http.StatusOK},
		{"not found", &mockRepo{}, http.StatusNotFound},
		{"repo failure", &mockRepo{err: errors.New("db down")}, http.StatusInternalServerError},
		{"persistence disabled", nil, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouter(&mockSimService{}, tc.repo)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/simulations/run-1", nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}
}

func TestListSimulations(t *testing.T) {
	repo := &mockRepo{list: []models.MarginSnapshot{*sampleSnap(), *sampleSnap()}}
	r := setupRouter(&mockSimService{}, repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/simulations?limit=5", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code=%d", w.Code)
	}
	var out []dto.SnapshotResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len=%d, want 2", len(out))
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/v1/simulations?limit=banana", nil))
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("bad limit: code=%d", w2.Code)
	}
}
