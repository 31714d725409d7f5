// ABOUTME: Named thresholds for pipeline scoring formulas
// ABOUTME: Central tuning point for bottleneck, risk, velocity, and forecast heuristics
package intel

// Stage dwell-time bands (days) and their bottleneck risk weights.
const (
	dwellSevereDays   = 30.0
	dwellHighDays     = 14.0
	dwellModerateDays = 7.0

	dwellSevereWeight   = 30.0
	dwellHighWeight     = 20.0
	dwellModerateWeight = 10.0
)

// Conversion-rate bands (percent) and their bottleneck risk weights.
const (
	convCriticalPct = 20.0
	convLowPct      = 40.0

	convCriticalWeight = 40.0
	convLowWeight      = 20.0
)

// Stage-specific bottleneck add-ons.
const (
	prospectingDwellDays   = 14.0
	prospectingDwellWeight = 15.0

	negotiationConvPct    = 50.0
	negotiationConvWeight = 25.0
)

// Bottleneck reporting thresholds.
const (
	bottleneckRiskFloor  = 40.0
	impactHighThreshold  = 70.0
	impactMedThreshold   = 50.0
	velocityRiskFloor    = 50.0
	stageActionRiskFloor = 50.0
	negotiationIssueRisk = 60.0
)

// Dwell-time estimation cap when no explicit stage velocity is tracked.
const stageEstimateCapDays = 90.0

// Velocity fallbacks and warning bands.
const (
	timeToCloseFallbackDays = 30.0
	dealsPerMonthCritical   = 1.0
	dealsPerMonthLow        = 3.0
)

// Performer tier thresholds.
const (
	excellentWinRatePct  = 70.0
	excellentAvgDealSize = 100000.0
	goodWinRatePct       = 50.0
	goodAvgDealSize      = 50000.0
	poorWinRatePct       = 20.0
)

// Forecast scenario multipliers and projection parameters.
const (
	optimisticMultiplier  = 1.3
	pessimisticMultiplier = 0.7
	defaultConversionRate = 0.3
	qualifiedQuarterWeight = 0.3

	projectionVarianceBound = 0.1
	projectionMonthlyGrowth = 0.05
	projectionBaseConfidence = 0.9
	projectionConfidenceDecay = 0.1
	projectionConfidenceFloor = 0.5
	projectionMonths          = 6

	highProbabilityPct      = 70.0
	confidenceHighMinDeals  = 10
	confidenceLowMaxDeals   = 3

	anomalyChangePct     = 50.0
	anomalyHighChangePct = 75.0
)

// PipelineDeal probability clamp.
const (
	dealProbabilityFloor = 0.1
	dealProbabilityCeil  = 1.0
)

// Risk accumulator weights.
const (
	largeDealSize       = 100000.0
	largeDealRisk       = 10.0
	pastCloseDateRisk   = 15.0
	overdueFollowUpRisk = 5.0
	staleContactDays    = 90.0
	staleContactRisk    = 2.0
)

// Risk level bands.
const (
	riskCriticalScore = 70.0
	riskHighScore     = 50.0
	riskMediumScore   = 30.0
)

// High-risk entity rules.
const (
	lowProbabilityPct    = 30.0
	jumboDealSize        = 200000.0
	stalledPipelineDays  = 60.0
	highRiskSignalsNeeded = 2
	lowContactScore      = 30.0
)

// Pipeline health rule.
const (
	healthyProbabilityPct = 50.0
	healthyCloseBufferDays = 30.0
)

// Recommendation triggers.
const (
	recommendConversionPct  = 25.0
	recommendPipelineFloor = 1000000.0
)
