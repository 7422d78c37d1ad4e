// Package metrics exposes prometheus counters for record intake.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SourceBulk   = "bulk"
	SourceSingle = "single"
	SourceBatch  = "batch"

	FileOK         = "ok"
	FileEmpty      = "empty"
	FileParseError = "parse_error"
	FileStoreError = "store_error"
)

// Recorder is safe to use as a nil pointer; calls become no-ops.
type Recorder struct {
	recordsSaved   *prometheus.CounterVec
	filesProcessed *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		recordsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dynamicform",
			Name:      "records_saved_total",
			Help:      "Records persisted, by intake source.",
		}, []string{"source"}),
		filesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dynamicform",
			Name:      "upload_files_total",
			Help:      "Uploaded spreadsheet files, by outcome.",
		}, []string{"result"}),
	}
	reg.MustRegister(r.recordsSaved, r.filesProcessed)
	return r
}

func (r *Recorder) RecordsSaved(source string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.recordsSaved.WithLabelValues(source).Add(float64(n))
}

func (r *Recorder) FileProcessed(result string) {
	if r == nil {
		return
	}
	r.filesProcessed.WithLabelValues(result).Inc()
}

// Handler serves the gatherer in the prometheus text format.
func Handler(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
