package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iskolar-ocr/internal/eligibility"
)

// Metrics provides observability for eligibility checks.
type Metrics struct {
	// Validations by outcome: eligible, ineligible
	Validations *prometheus.CounterVec

	// Year sections the engine could not locate, by declared level
	YearSectionMisses *prometheus.CounterVec

	// Wrong-document detections by expected and detected type
	WrongDocuments *prometheus.CounterVec

	// Grades extracted per validation
	GradesExtracted prometheus.Histogram

	ValidateLatency prometheus.Histogram
}

// New registers the eligibility metrics with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "iskolar_validations_total",
			Help: "Total eligibility validations by outcome",
		}, []string{"outcome"}),

		YearSectionMisses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "iskolar_year_section_misses_total",
			Help: "Validations whose declared year level section was not found",
		}, []string{"year_level"}),

		WrongDocuments: f.NewCounterVec(prometheus.CounterOpts{
			Name: "iskolar_wrong_document_total",
			Help: "Uploads detected as a different document type than expected",
		}, []string{"expected", "detected"}),

		GradesExtracted: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "iskolar_grades_extracted",
			Help:    "Number of subject grades extracted per validation",
			Buckets: []float64{0, 1, 3, 5, 8, 12, 20},
		}),

		ValidateLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "iskolar_validate_duration_seconds",
			Help:    "Duration of a single eligibility validation",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// ObserveResult records the outcome of one validation.
func (m *Metrics) ObserveResult(md eligibility.DeclaredMetadata, res eligibility.Result, d time.Duration) {
	if m == nil {
		return
	}

	outcome := "ineligible"
	if res.Verdict.IsEligible {
		outcome = "eligible"
	}
	m.Validations.WithLabelValues(outcome).Inc()
	m.GradesExtracted.Observe(float64(len(res.Grades)))
	m.ValidateLatency.Observe(d.Seconds())

	if !res.YearSection.Found {
		m.YearSectionMisses.WithLabelValues(md.YearLevelName).Inc()
	}
	if cd := res.CrossDocument; cd != nil && cd.WrongDocumentDetected && cd.DetectedType != nil {
		m.WrongDocuments.WithLabelValues(cd.ExpectedType, string(*cd.DetectedType)).Inc()
	}
}
