// internal/models/report.go
package models

// StructuredReport is the canonical report schema. Every field path is
// always present with a value of the correct shape, even when the value is
// a placeholder, so downstream consumers never branch on missing keys.
// Produced either by successful extraction or by the fallback synthesizer,
// never partially populated; call Normalize before handing one off.
type StructuredReport struct {
	Brand    string `json:"brand"`
	Category string `json:"category"`

	ExecutiveSnapshot      ExecutiveSnapshot `json:"executive_snapshot"`
	BusinessChallenge      BusinessChallenge `json:"business_challenge"`
	AudiencePersonas       []Persona         `json:"audience_personas"`
	CompetitiveSet         []Competitor      `json:"competitive_set"`
	CulturalContext        CulturalContext   `json:"cultural_context"`
	StrategicOpportunities []Opportunity     `json:"strategic_opportunities"`
	Methodology            Methodology       `json:"methodology"`
	SocialMetrics          SocialMetrics     `json:"social_metrics"`
}

type ExecutiveSnapshot struct {
	Summary       string   `json:"summary"`
	BrandPosition string   `json:"brand_position"`
	KeyFindings   []string `json:"key_findings"`
	MarketShare   Metric   `json:"market_share"`
}

type BusinessChallenge struct {
	Primary        string   `json:"primary"`
	Secondary      []string `json:"secondary"`
	MarketDynamics string   `json:"market_dynamics"`
}

type Persona struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Motivations []string `json:"motivations"`
	Channels    []string `json:"channels"`
}

type Competitor struct {
	Name         string   `json:"name"`
	Positioning  string   `json:"positioning"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	ShareOfVoice Metric   `json:"share_of_voice"`
}

type CulturalContext struct {
	Summary  string   `json:"summary"`
	Trends   []string `json:"trends"`
	Tensions []string `json:"tensions"`
	Moments  []string `json:"moments"`
}

type Opportunity struct {
	Title     string `json:"title"`
	Rationale string `json:"rationale"`
	Horizon   string `json:"horizon"`
}

type Methodology struct {
	Approach   string   `json:"approach"`
	Citations  []string `json:"citations"`
	Confidence string   `json:"confidence"`
}

// MetricStatus distinguishes measured data from estimates and gaps, so a
// bare number is never presented as authoritative when it is not.
type MetricStatus string

const (
	MetricMeasured  MetricStatus = "measured"
	MetricEstimated MetricStatus = "estimated"
	MetricMissing   MetricStatus = "missing"
)

// Metric is the confidence-tagged shape used for every numeric field.
type Metric struct {
	Value      float64      `json:"value"`
	Unit       string       `json:"unit"`
	Confidence float64      `json:"confidence"`
	Status     MetricStatus `json:"status"`
}

// SocialMetricsSource labels where an enrichment payload came from.
type SocialMetricsSource string

const (
	SocialSourceLive    SocialMetricsSource = "live"
	SocialSourceDefault SocialMetricsSource = "default"
)

// SocialMetrics is the social-listening enrichment section. It is always
// present on a report; when no live data could be fetched the section
// carries a clearly labeled default payload instead of being omitted.
type SocialMetrics struct {
	Source        SocialMetricsSource `json:"source"`
	TotalMentions Metric              `json:"total_mentions"`
	Sentiment     Metric              `json:"sentiment"`
	PositiveShare Metric              `json:"positive_share"`
	NegativeShare Metric              `json:"negative_share"`
	TopSources    []string            `json:"top_sources"`
}

// PlaceholderText is the neutral value used for string fields that no
// extraction or heuristic could populate.
const PlaceholderText = "requires further research"

// DefaultSocialMetrics returns the labeled default enrichment payload used
// whenever live social-listening data is unavailable.
func DefaultSocialMetrics() SocialMetrics {
	return SocialMetrics{
		Source:        SocialSourceDefault,
		TotalMentions: missingMetric("mentions"),
		Sentiment:     missingMetric("score"),
		PositiveShare: missingMetric("percent"),
		NegativeShare: missingMetric("percent"),
		TopSources:    []string{},
	}
}

func missingMetric(unit string) Metric {
	return Metric{Value: 0, Unit: unit, Confidence: 0, Status: MetricMissing}
}

// Normalize fills every gap in the report with typed placeholder values so
// the full-coverage invariant holds: no nil slices, no empty strings, no
// untagged zero metrics.
func (r *StructuredReport) Normalize() {
	r.Brand = orPlaceholder(r.Brand)
	r.Category = orPlaceholder(r.Category)

	r.ExecutiveSnapshot.Summary = orPlaceholder(r.ExecutiveSnapshot.Summary)
	r.ExecutiveSnapshot.BrandPosition = orPlaceholder(r.ExecutiveSnapshot.BrandPosition)
	r.ExecutiveSnapshot.KeyFindings = orEmpty(r.ExecutiveSnapshot.KeyFindings)
	normalizeMetric(&r.ExecutiveSnapshot.MarketShare, "percent")

	r.BusinessChallenge.Primary = orPlaceholder(r.BusinessChallenge.Primary)
	r.BusinessChallenge.Secondary = orEmpty(r.BusinessChallenge.Secondary)
	r.BusinessChallenge.MarketDynamics = orPlaceholder(r.BusinessChallenge.MarketDynamics)

	if r.AudiencePersonas == nil {
		r.AudiencePersonas = []Persona{}
	}
	for i := range r.AudiencePersonas {
		p := &r.AudiencePersonas[i]
		p.Name = orPlaceholder(p.Name)
		p.Description = orPlaceholder(p.Description)
		p.Motivations = orEmpty(p.Motivations)
		p.Channels = orEmpty(p.Channels)
	}

	if r.CompetitiveSet == nil {
		r.CompetitiveSet = []Competitor{}
	}
	for i := range r.CompetitiveSet {
		c := &r.CompetitiveSet[i]
		c.Name = orPlaceholder(c.Name)
		c.Positioning = orPlaceholder(c.Positioning)
		c.Strengths = orEmpty(c.Strengths)
		c.Weaknesses = orEmpty(c.Weaknesses)
		normalizeMetric(&c.ShareOfVoice, "percent")
	}

	r.CulturalContext.Summary = orPlaceholder(r.CulturalContext.Summary)
	r.CulturalContext.Trends = orEmpty(r.CulturalContext.Trends)
	r.CulturalContext.Tensions = orEmpty(r.CulturalContext.Tensions)
	r.CulturalContext.Moments = orEmpty(r.CulturalContext.Moments)

	if r.StrategicOpportunities == nil {
		r.StrategicOpportunities = []Opportunity{}
	}
	for i := range r.StrategicOpportunities {
		o := &r.StrategicOpportunities[i]
		o.Title = orPlaceholder(o.Title)
		o.Rationale = orPlaceholder(o.Rationale)
		o.Horizon = orPlaceholder(o.Horizon)
	}

	r.Methodology.Approach = orPlaceholder(r.Methodology.Approach)
	r.Methodology.Citations = orEmpty(r.Methodology.Citations)
	if r.Methodology.Confidence == "" {
		r.Methodology.Confidence = "low"
	}

	if r.SocialMetrics.Source == "" {
		r.SocialMetrics = DefaultSocialMetrics()
	} else {
		normalizeMetric(&r.SocialMetrics.TotalMentions, "mentions")
		normalizeMetric(&r.SocialMetrics.Sentiment, "score")
		normalizeMetric(&r.SocialMetrics.PositiveShare, "percent")
		normalizeMetric(&r.SocialMetrics.NegativeShare, "percent")
		r.SocialMetrics.TopSources = orEmpty(r.SocialMetrics.TopSources)
	}
}

func normalizeMetric(m *Metric, unit string) {
	if m.Status == "" {
		m.Status = MetricMissing
	}
	if m.Unit == "" {
		m.Unit = unit
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return PlaceholderText
	}
	return s
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
