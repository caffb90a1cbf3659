package metrics

import (
	"math"
	"strings"
	"testing"
)

func TestRenderExposesAllSeries(t *testing.T) {
	IncDocumentUploaded()
	IncDocumentApproved()
	ObserveExtractionConfidence(0.91)

	out := Render()
	for _, name := range []string{
		"documents_uploaded_total",
		"documents_approved_total",
		"documents_rejected_total",
		"documents_reprocessed_total",
		"documents_deleted_total",
	} {
		if !strings.Contains(out, "# TYPE "+name+" counter") {
			t.Fatalf("missing counter %s in output:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "# TYPE extraction_confidence histogram") {
		t.Fatalf("missing histogram in output:\n%s", out)
	}
	if !strings.Contains(out, `extraction_confidence_bucket{le="+Inf"}`) {
		t.Fatalf("missing +Inf bucket in output:\n%s", out)
	}
}

func TestHistogramObserve(t *testing.T) {
	h := newHistogram([]float64{0.5, 0.8, 1.0})
	h.Observe(0.3)
	h.Observe(0.7)
	h.Observe(0.9)
	h.Observe(0.9)

	snap := h.Snapshot()
	if snap.count != 4 {
		t.Fatalf("expected count 4, got %d", snap.count)
	}
	// Raw per-bucket counts; rendering accumulates them.
	if snap.counts[0] != 1 || snap.counts[1] != 1 || snap.counts[2] != 2 {
		t.Fatalf("unexpected bucket counts: %v", snap.counts)
	}
	if math.Abs(snap.sum-2.8) > 1e-9 {
		t.Fatalf("expected sum 2.8, got %v", snap.sum)
	}
}
