package httpsvc

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/batchcorp/benchbot/bench"
	"github.com/batchcorp/benchbot/metrics"
	"github.com/batchcorp/benchbot/types"
)

type ResultResponse struct {
	Variant     types.Variant `json:"variant"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	StatLabel   string        `json:"stat_label"`
	Statistic   int           `json:"statistic"`
	ElapsedMS   float64       `json:"elapsed_ms"`
}

type BenchmarkResponse struct {
	Variant        types.Variant     `json:"variant"`
	Results        []*ResultResponse `json:"results"`
	TotalElapsedMS float64           `json:"total_elapsed_ms"`
	Text           string            `json:"text"`
}

func (h *HTTPService) runAllBenchmarksHandler(rw http.ResponseWriter, r *http.Request) {
	h.runBenchmark(types.AllVariant, rw)
}

// runBenchmarkHandler follows the chat command semantics: an unknown variant
// runs everything rather than returning an error.
func (h *HTTPService) runBenchmarkHandler(rw http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.runBenchmark(bench.ParseVariant(ps.ByName("variant")), rw)
}

func (h *HTTPService) runBenchmark(variant types.Variant, rw http.ResponseWriter) {
	h.log.Debugf("running '%s' benchmark over HTTP", variant)

	metrics.IncCommand(string(variant), Source)

	report := h.runner.Run(variant)
	if report == nil {
		writeErrorJSON(http.StatusInternalServerError, "benchmark produced no report", rw)
		return
	}

	writeJSON(http.StatusOK, newBenchmarkResponse(report), rw)
}

func newBenchmarkResponse(report *types.Report) *BenchmarkResponse {
	results := make([]*ResultResponse, 0, len(report.Results))

	for _, r := range report.Results {
		results = append(results, &ResultResponse{
			Variant:     r.Variant,
			Title:       r.Title,
			Description: r.Description,
			StatLabel:   r.StatLabel,
			Statistic:   r.Statistic,
			ElapsedMS:   bench.Milliseconds(r.Elapsed),
		})
	}

	return &BenchmarkResponse{
		Variant:        report.Variant,
		Results:        results,
		TotalElapsedMS: bench.Milliseconds(report.TotalElapsed),
		Text:           report.Text,
	}
}
