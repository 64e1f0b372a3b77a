package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/newthinker/navscope/internal/analytics"
	"github.com/newthinker/navscope/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProvider struct {
	meta    map[string]core.FundMetadata
	history map[string][]core.RawPoint
	err     map[string]error
	calls   []string
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) SchemeDetails(ctx context.Context, code string) (*core.FundMetadata, error) {
	s.calls = append(s.calls, "details:"+code)
	if err := s.err[code]; err != nil {
		return nil, err
	}
	m, ok := s.meta[code]
	if !ok {
		return nil, core.WrapError(core.ErrSchemeNotFound, fmt.Errorf("scheme %s", code))
	}
	return &m, nil
}

func (s *stubProvider) SchemeHistory(ctx context.Context, code string) ([]core.RawPoint, error) {
	s.calls = append(s.calls, "history:"+code)
	return s.history[code], nil
}

type recorded struct {
	analyses map[string]int
	requests []string
}

func (r *recorded) RecordAnalysis(status string, duration float64) {
	if r.analyses == nil {
		r.analyses = make(map[string]int)
	}
	r.analyses[status]++
}

func (r *recorded) RecordProviderRequest(provider, operation string, err error, duration float64) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.requests = append(r.requests, provider+"/"+operation+"/"+status)
}

// yearly builds a provider history growing 10% a year, newest first
func yearly(from, to int) []core.RawPoint {
	var points []core.RawPoint
	v := 100.0
	var asc []core.RawPoint
	for y := from; y <= to; y++ {
		asc = append(asc, core.RawPoint{
			Date: time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC).Format("02-01-2006"),
			NAV:  fmt.Sprintf("%.6f", v),
		})
		v *= 1.10
	}
	for i := len(asc) - 1; i >= 0; i-- {
		points = append(points, asc[i])
	}
	return points
}

func newStub() *stubProvider {
	return &stubProvider{
		meta: map[string]core.FundMetadata{
			"120828": {Code: "120828", Name: "Quant Small Cap Fund", FundHouse: "Quant Mutual Fund", Category: "Equity Scheme - Small Cap Fund", Type: "Open Ended Schemes"},
			"100001": {Name: "Single Point Fund"},
			"100002": {Code: "100002"},
		},
		history: map[string][]core.RawPoint{
			"120828": yearly(2019, 2024),
			"100001": {{Date: "01-01-2024", NAV: "10.0"}},
			"100002": yearly(2022, 2024),
		},
		err: map[string]error{},
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	stub := newStub()
	rec := &recorded{}
	a := New(stub, analytics.NewCalculator(), zap.NewNop(), WithRecorder(rec))

	report, err := a.Analyze(context.Background(), " 120828 ")
	require.NoError(t, err)

	assert.Equal(t, "Quant Small Cap Fund", report.Name)
	assert.Equal(t, "Quant Mutual Fund", report.FundHouse)
	assert.Equal(t, 6, report.Observations)

	// the 5 year window starts on the first NAV after the leap-shifted target
	for years, want := range map[int]float64{1: 10.00, 3: 10.00, 5: 7.92} {
		m, ok := report.Return(years)
		require.True(t, ok)
		require.True(t, m.Available(), "%d-year return", years)
		assert.InDelta(t, want, m.Value, 0.001, "%d-year return", years)
	}

	assert.Equal(t, []string{"details:120828", "history:120828"}, stub.calls)
	assert.Equal(t, map[string]int{"ok": 1}, rec.analyses)
	assert.Equal(t, []string{"stub/details/ok", "stub/history/ok"}, rec.requests)
}

func TestAnalyzer_FillsMissingCode(t *testing.T) {
	stub := newStub()
	stub.meta["100003"] = core.FundMetadata{Name: "No Code Fund"}
	stub.history["100003"] = yearly(2023, 2024)

	report, err := New(stub, nil, nil).Analyze(context.Background(), "100003")
	require.NoError(t, err)
	assert.Equal(t, "100003", report.Code)
}

func TestAnalyzer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr *core.Error
		calls   int
	}{
		{"invalid code", "abc", core.ErrInvalidCode, 0},
		{"empty code", "  ", core.ErrInvalidCode, 0},
		{"unknown scheme", "999999", core.ErrSchemeNotFound, 1},
		{"single observation", "100001", core.ErrInsufficientData, 2},
		{"missing name", "100002", core.ErrMissingMetadata, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStub()
			rec := &recorded{}
			a := New(stub, nil, nil, WithRecorder(rec))

			report, err := a.Analyze(context.Background(), tt.code)
			assert.Nil(t, report)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, stub.calls, tt.calls)
			assert.Equal(t, 1, rec.analyses[statusFor(tt.wantErr)])
		})
	}
}

func TestAnalyzer_ProviderFailure(t *testing.T) {
	stub := newStub()
	stub.err["120828"] = core.WrapError(core.ErrProviderFailed, errors.New("connection refused"))
	rec := &recorded{}

	_, err := New(stub, nil, nil, WithRecorder(rec)).Analyze(context.Background(), "120828")
	assert.ErrorIs(t, err, core.ErrProviderFailed)
	assert.Equal(t, []string{"stub/details/error"}, rec.requests)
	assert.Equal(t, 1, rec.analyses["provider_failed"])
}

func TestAnalyzer_Compare(t *testing.T) {
	stub := newStub()
	a := New(stub, nil, nil)

	results := a.Compare(context.Background(), "120828", "999999")
	require.Len(t, results, 2)

	assert.True(t, results[0].OK())
	assert.Equal(t, "Quant Small Cap Fund", results[0].Report.Name)

	assert.False(t, results[1].OK())
	assert.Equal(t, "999999", results[1].Code)
	assert.ErrorIs(t, results[1].Err, core.ErrSchemeNotFound)
}

func TestAnalyzer_CompareCanceled(t *testing.T) {
	stub := newStub()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := New(stub, nil, nil).Compare(ctx, "120828", "100001")
	require.Len(t, results, 2)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
	assert.Empty(t, stub.calls)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, "ok", statusFor(nil))
	assert.Equal(t, "invalid_code", statusFor(fmt.Errorf("wrapped: %w", core.ErrInvalidCode)))
	assert.Equal(t, "canceled", statusFor(context.DeadlineExceeded))
	assert.Equal(t, "error", statusFor(errors.New("boom")))
}
