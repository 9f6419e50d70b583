package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/pkg/metrics"
)

func TestManagerOptions(t *testing.T) {
	Convey("Given a metrics manager with custom options", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithNamespace("testns"),
			metrics.WithSubsystem("testsub"),
			metrics.WithHistogramBuckets([]float64{1, 5, 10}),
			metrics.WithPrometheusRegistry(reg),
		)

		Convey("Then the manager is constructed", func() {
			So(m, ShouldNotBeNil)
		})

		Convey("Then the metrics are registered on the custom registry", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(names, ShouldContain, "testns_testsub_valuations_computed_total")
			So(names, ShouldContain, "testns_testsub_trades_evaluated_total")
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording domain events", func() {
			So(func() {
				metrics.RecordValuation()
				metrics.RecordTradeEvaluated()
				metrics.RecordInvalidProposal()
				metrics.RecordSuggestions(3)
				metrics.RecordMissingProjection()
				metrics.RecordSnapshotLoad()
				metrics.RecordValuationDuration(12.5)
				metrics.RecordSuggestionDuration(40)
				metrics.RecordSnapshotDuration(7)
				metrics.UpdatePlayersTracked(576)
				metrics.UpdateTeamsTracked(12)
				metrics.RecordHTTPRequest("analyze", "POST", "200")
				metrics.RecordHTTPRequestDuration("analyze", "POST", "200", 3.2)
				metrics.RecordErrorByEndpoint("analyze", "POST", "client_error")
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry gathers without error", func() {
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
