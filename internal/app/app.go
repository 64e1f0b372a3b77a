package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/navscope/internal/analytics"
	"github.com/newthinker/navscope/internal/core"
	"github.com/newthinker/navscope/internal/provider"
	"go.uber.org/zap"
)

// Recorder receives analysis and provider timings
type Recorder interface {
	RecordAnalysis(status string, duration float64)
	RecordProviderRequest(provider, operation string, err error, duration float64)
}

type nopRecorder struct{}

func (nopRecorder) RecordAnalysis(string, float64)                      {}
func (nopRecorder) RecordProviderRequest(string, string, error, float64) {}

// Result is the outcome of analyzing one fund in a comparison
type Result struct {
	Code   string
	Report *analytics.Report
	Err    error
}

// OK reports whether the fund produced a report
func (r Result) OK() bool {
	return r.Err == nil && r.Report != nil
}

// Analyzer fetches a scheme from a provider and runs the calculator on it
type Analyzer struct {
	provider provider.Provider
	calc     *analytics.Calculator
	logger   *zap.Logger
	recorder Recorder
	now      func() time.Time
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) Option {
	return func(a *Analyzer) {
		if r != nil {
			a.recorder = r
		}
	}
}

// New creates a new Analyzer
func New(p provider.Provider, calc *analytics.Calculator, logger *zap.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if calc == nil {
		calc = analytics.NewCalculator()
	}
	a := &Analyzer{
		provider: p,
		calc:     calc,
		logger:   logger,
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze produces the report for one scheme code
func (a *Analyzer) Analyze(ctx context.Context, code string) (*analytics.Report, error) {
	start := a.now()
	id := uuid.NewString()

	report, err := a.analyze(ctx, id, code)

	status := statusFor(err)
	a.recorder.RecordAnalysis(status, a.now().Sub(start).Seconds())
	if err != nil {
		a.logger.Warn("analysis failed",
			zap.String("analysis_id", id),
			zap.String("code", code),
			zap.String("status", status),
			zap.Error(err),
		)
		return nil, err
	}

	a.logger.Info("analysis complete",
		zap.String("analysis_id", id),
		zap.String("code", report.Code),
		zap.Int("observations", report.Observations),
		zap.Duration("elapsed", a.now().Sub(start)),
	)
	return report, nil
}

func (a *Analyzer) analyze(ctx context.Context, id, code string) (*analytics.Report, error) {
	code, err := provider.ValidateCode(code)
	if err != nil {
		return nil, err
	}

	log := a.logger.With(zap.String("analysis_id", id), zap.String("code", code))
	log.Debug("fetching scheme details", zap.String("provider", a.provider.Name()))

	var meta *core.FundMetadata
	err = a.timed(ctx, "details", func(ctx context.Context) error {
		meta, err = a.provider.SchemeDetails(ctx, code)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetching details for %s: %w", code, err)
	}
	if meta == nil {
		return nil, core.WrapError(core.ErrSchemeNotFound, fmt.Errorf("no details for %s", code))
	}

	var points []core.RawPoint
	err = a.timed(ctx, "history", func(ctx context.Context) error {
		points, err = a.provider.SchemeHistory(ctx, code)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetching history for %s: %w", code, err)
	}
	log.Debug("history fetched", zap.Int("points", len(points)))

	m := *meta
	if m.Code == "" {
		m.Code = code
	}

	report, err := a.calc.Analyze(m, points)
	if err != nil {
		return nil, err
	}

	if dropped := len(points) - report.Observations; dropped > 0 {
		log.Debug("dropped invalid or duplicate points", zap.Int("dropped", dropped))
	}
	for _, tr := range report.Returns {
		if !tr.Available() {
			log.Debug("return not available", zap.Int("years", tr.Years), zap.Error(tr.Err))
		}
	}
	if !report.Volatility.Available() {
		log.Debug("volatility not available", zap.Error(report.Volatility.Err))
	}

	return report, nil
}

func (a *Analyzer) timed(ctx context.Context, operation string, fn func(context.Context) error) error {
	start := a.now()
	err := fn(ctx)
	a.recorder.RecordProviderRequest(a.provider.Name(), operation, err, a.now().Sub(start).Seconds())
	return err
}

// Compare analyzes each code in turn. A failing fund carries its error in
// its Result and does not stop the others.
func (a *Analyzer) Compare(ctx context.Context, codes ...string) []Result {
	results := make([]Result, 0, len(codes))
	for _, code := range codes {
		if ctx.Err() != nil {
			results = append(results, Result{Code: code, Err: ctx.Err()})
			continue
		}
		report, err := a.Analyze(ctx, code)
		results = append(results, Result{
			Code:   strings.TrimSpace(code),
			Report: report,
			Err:    err,
		})
	}
	return results
}

// statusFor maps an error to a low-cardinality metrics label
func statusFor(err error) string {
	if err == nil {
		return "ok"
	}
	var coded *core.Error
	if errors.As(err, &coded) {
		return strings.ToLower(coded.Code)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "error"
}
