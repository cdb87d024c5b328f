package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/iskolar-ocr/internal/eligibility"
)

func TestObserveResult(t *testing.T) {
	m := New(prometheus.NewRegistry())
	engine := eligibility.NewEngine(nil)

	md := eligibility.DeclaredMetadata{YearLevelName: "1st Year"}
	m.ObserveResult(md, engine.Validate(eligibility.Request{Text: "1st Year\nMath 1.75 3", Metadata: md}), time.Millisecond)

	missing := eligibility.DeclaredMetadata{YearLevelName: "3rd Year"}
	cert := "CERTIFICATE OF INDIGENCY\nThis is to certify that the bearer is a resident of this barangay."
	m.ObserveResult(missing, engine.Validate(eligibility.Request{
		Text:     cert,
		Metadata: missing,
		Policy:   eligibility.PolicyConfig{ExpectedDocumentType: "grades"},
	}), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("eligible")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("ineligible")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.YearSectionMisses.WithLabelValues("3rd Year")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WrongDocuments.WithLabelValues("grades", "certificate_of_indigency")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Validations))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveResult(eligibility.DeclaredMetadata{}, eligibility.Result{}, time.Second)
}
