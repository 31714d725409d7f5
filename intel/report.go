// ABOUTME: Report facade orchestrating the pipeline intelligence calculators
// ABOUTME: Loads a snapshot, fans out independent calculators, and joins at the synthesizer
package intel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"sort"
	"time"

	"github.com/harperreed/dealscope/models"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
)

// ReportKind selects which report the facade generates.
type ReportKind string

const (
	ReportSales      ReportKind = "sales"
	ReportPipeline   ReportKind = "pipeline"
	ReportForecast   ReportKind = "forecast"
	ReportQuotation  ReportKind = "quotation"
	ReportAttendance ReportKind = "attendance"
)

// ErrUnsupportedReportKind is returned for report kinds the engine cannot
// derive from CRM data.
var ErrUnsupportedReportKind = errors.New("unsupported report kind")

// Repository interfaces, one per input collection. The db package satisfies
// all of them; tests substitute in-memory stubs.
type OpportunityRepository interface {
	ListOpportunities(ctx context.Context) ([]models.Opportunity, error)
}

type FollowUpRepository interface {
	ListFollowUps(ctx context.Context) ([]models.FollowUp, error)
}

type ActivityRepository interface {
	ListActivities(ctx context.Context) ([]models.Activity, error)
}

type ContactRepository interface {
	ListContacts(ctx context.Context) ([]models.Contact, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
}

type QuotationRepository interface {
	ListQuotations(ctx context.Context) ([]models.Quotation, error)
}

// Repositories bundles the engine's read-only collaborators.
type Repositories struct {
	Opportunities OpportunityRepository
	FollowUps     FollowUpRepository
	Activities    ActivityRepository
	Contacts      ContactRepository
	Quotations    QuotationRepository
}

// Engine is the pipeline intelligence engine. It never writes; every report
// is a pure function of the snapshot its repositories return.
type Engine struct {
	repos Repositories
	stats DealStats
	rng   Rand
	clock func() time.Time
}

// NewEngine builds an engine with the default statistics collaborator and a
// time-seeded RNG for the projection variance term.
func NewEngine(repos Repositories) *Engine {
	return &Engine{
		repos: repos,
		stats: SimpleDealStats{},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		clock: time.Now,
	}
}

// WithRand replaces the variance source. Tests pass a fixed seed here to make
// reports byte-identical across runs.
func (e *Engine) WithRand(r Rand) *Engine {
	e.rng = r
	return e
}

// WithStats replaces the deal-statistics collaborator.
func (e *Engine) WithStats(s DealStats) *Engine {
	e.stats = s
	return e
}

// WithClock replaces the time source.
func (e *Engine) WithClock(clock func() time.Time) *Engine {
	e.clock = clock
	return e
}

// Report is the JSON-serializable result handed back to the caller.
// Serialization and transport belong to the caller, not the engine.
type Report struct {
	ID                 string             `json:"id"`
	Kind               ReportKind         `json:"kind"`
	Period             Period             `json:"period"`
	GeneratedAt        time.Time          `json:"generated_at"`
	TotalOpportunities int                `json:"total_opportunities"`
	TotalValue         float64            `json:"total_value"`
	Stages             []StageMetric      `json:"stages,omitempty"`
	Bottlenecks        []Bottleneck       `json:"bottlenecks,omitempty"`
	TopPerformers      []PerformerMetric  `json:"top_performers,omitempty"`
	Velocity           *VelocityMetrics   `json:"velocity,omitempty"`
	DealVelocity       *DealVelocity      `json:"deal_velocity,omitempty"`
	Forecast           *RevenueForecast   `json:"forecast,omitempty"`
	Risk               *RiskAssessment    `json:"risk,omitempty"`
	Quotations         *QuotationStats    `json:"quotations,omitempty"`
	Recommendations    []string           `json:"recommendations,omitempty"`
}

// GenerateReport loads a snapshot, applies the period and scope filters, and
// runs the calculator graph for the requested report kind. Any repository
// failure fails the whole report; there are no partial results.
func (e *Engine) GenerateReport(ctx context.Context, kind ReportKind, period Period, scope Scope) (*Report, error) {
	report, err := e.generate(ctx, kind, period, scope)
	if err != nil {
		log.Printf("report generation failed: %v", err)
		return nil, fmt.Errorf("failed to generate %s report: %w", kind, err)
	}
	return report, nil
}

func (e *Engine) generate(ctx context.Context, kind ReportKind, period Period, scope Scope) (*Report, error) {
	switch kind {
	case ReportSales, ReportPipeline, ReportForecast, ReportQuotation:
	case ReportAttendance:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedReportKind, kind)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedReportKind, kind)
	}

	if !period.Valid() {
		return nil, fmt.Errorf("unknown period: %s", period)
	}

	snap, err := e.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	snap = snap.Filter(period, scope)

	// With a fixed clock and a seeded *rand.Rand the ULID is reproducible,
	// which keeps identical snapshots byte-identical in tests.
	entropy := io.Reader(ulid.DefaultEntropy())
	if r, ok := e.rng.(io.Reader); ok {
		entropy = r
	}

	report := &Report{
		ID:          ulid.MustNew(ulid.Timestamp(snap.Now), entropy).String(),
		Kind:        kind,
		Period:      period,
		GeneratedAt: snap.Now,
	}

	if kind == ReportQuotation {
		stats := SummarizeQuotations(snap.Quotations)
		report.Quotations = &stats
		return report, nil
	}

	report.TotalOpportunities = len(snap.Opportunities)
	for _, o := range snap.Opportunities {
		report.TotalValue += o.DealSize
	}

	// First wave: the mutually independent calculators.
	var (
		stages      []StageMetric
		bottlenecks []Bottleneck
		performers  []PerformerMetric
		dealStats   VelocityStats
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		stages = AggregateStages(snap.Opportunities, snap.Now)
		bottlenecks = ScoreBottlenecks(stages)
		return nil
	})
	g.Go(func() error {
		performers = RankPerformers(snap.Opportunities)
		return nil
	})
	g.Go(func() error {
		deals := MapPipelineDeals(snap.Opportunities, snap.Now)
		dealStats = e.stats.CalculateVelocityMetrics(deals, snap.Now)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Second wave: consumers of the stage aggregation.
	var (
		velocity VelocityMetrics
		forecast RevenueForecast
		risk     RiskAssessment
	)

	g, _ = errgroup.WithContext(ctx)
	g.Go(func() error {
		velocity = CalculateVelocity(snap.Opportunities, stages, snap.Now)
		return nil
	})
	g.Go(func() error {
		forecast = ForecastRevenue(snap.Opportunities, snap.Now, e.rng)
		return nil
	})
	g.Go(func() error {
		risk = AssessRisk(snap)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Join point: the synthesizer sees everything.
	dealVelocity := AssessDealVelocity(dealStats)
	recommendations := Recommendations(bottlenecks, forecast, dealVelocity, risk)

	report.Stages = stages
	report.Bottlenecks = bottlenecks
	report.TopPerformers = performers
	report.Velocity = &velocity
	report.DealVelocity = &dealVelocity
	report.Forecast = &forecast
	report.Risk = &risk
	report.Recommendations = recommendations

	return report, nil
}

// loadSnapshot fetches every collection concurrently. This is the only
// suspension point; once loaded, computation is synchronous.
func (e *Engine) loadSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Now: e.clock()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Opportunities, err = e.repos.Opportunities.ListOpportunities(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.FollowUps, err = e.repos.FollowUps.ListFollowUps(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Activities, err = e.repos.Activities.ListActivities(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Contacts, err = e.repos.Contacts.ListContacts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Companies, err = e.repos.Contacts.ListCompanies(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Quotations, err = e.repos.Quotations.ListQuotations(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// QuotationStats summarizes quotations by status for the quotation report.
type QuotationStats struct {
	Total          int                `json:"total"`
	TotalValue     float64            `json:"total_value"`
	AcceptedValue  float64            `json:"accepted_value"`
	AcceptanceRate float64            `json:"acceptance_rate"` // 0-100
	ByStatus       map[string]int     `json:"by_status"`
	Recent         []models.Quotation `json:"recent,omitempty"`
}

// SummarizeQuotations aggregates quotation totals and acceptance rate.
// Acceptance rate is taken over decided quotations only.
func SummarizeQuotations(quotes []models.Quotation) QuotationStats {
	stats := QuotationStats{ByStatus: make(map[string]int)}

	accepted, decided := 0, 0
	for _, q := range quotes {
		stats.Total++
		stats.TotalValue += q.Amount
		stats.ByStatus[q.Status]++

		switch q.Status {
		case models.QuotationAccepted:
			accepted++
			decided++
			stats.AcceptedValue += q.Amount
		case models.QuotationRejected, models.QuotationExpired:
			decided++
		}
	}

	if decided > 0 {
		stats.AcceptanceRate = float64(accepted) / float64(decided) * 100
	}

	recent := make([]models.Quotation, len(quotes))
	copy(recent, quotes)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.Recent = recent

	return stats
}
