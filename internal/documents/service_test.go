package documents_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/audit"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/doctypes"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/documents"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/extraction"
)

func newTestService(t *testing.T) (*documents.Service, *audit.Service) {
	t.Helper()
	auditSvc := audit.NewService(audit.NewMemoryRepo())
	svc := documents.NewService(
		documents.NewMemoryRepo(),
		doctypes.NewMemoryRepo(doctypes.Seed()),
		extraction.NewMockExtractor(42),
		auditSvc,
	)
	return svc, auditSvc
}

func TestUploadRoundTrip(t *testing.T) {
	svc, auditSvc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user1", "Invoice-1.pdf", "application/pdf", 1024, "invoice")
	require.NoError(t, err)
	require.NotEmpty(t, doc.ID)

	got, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Invoice-1.pdf", got.FileName)
	assert.Equal(t, "invoice", got.DocumentTypeID)
	assert.Equal(t, documents.ReviewPending, got.ReviewStatus)
	assert.Equal(t, documents.StatusCompleted, got.Status)
	assert.GreaterOrEqual(t, got.Confidence, 0.0)
	assert.LessOrEqual(t, got.Confidence, 1.0)
	assert.NotEmpty(t, got.ExtractedData)
	assert.NotNil(t, got.ProcessedAt)

	entries, err := auditSvc.List(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionUpload, entries[0].Action)
}

func TestUploadUnknownTypeRejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), "user1", "mystery.pdf", "", 0, "tax-form")
	assert.ErrorIs(t, err, documents.ErrUnknownType)
}

func TestGetIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user1", "a.pdf", "", 0, "receipt")
	require.NoError(t, err)

	first, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	second, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestApproveSetsReviewFields(t *testing.T) {
	svc, auditSvc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user3", "b.pdf", "", 0, "invoice")
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, "user1", doc.ID, "looks right")
	require.NoError(t, err)
	assert.Equal(t, documents.ReviewApproved, approved.ReviewStatus)
	assert.Equal(t, documents.StatusCompleted, approved.Status)
	assert.NotNil(t, approved.ReviewedAt)
	assert.Equal(t, "user1", approved.ReviewedBy)
	assert.Equal(t, "user1", approved.ApprovedBy)
	assert.Equal(t, "looks right", approved.Comments)

	entries, err := auditSvc.List(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, audit.ActionApprove, entries[1].Action)
}

func TestRejectSetsNeedsReview(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user3", "c.pdf", "", 0, "contract")
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, "user1", doc.ID, "wrong vendor")
	require.NoError(t, err)
	assert.Equal(t, documents.ReviewRejected, rejected.ReviewStatus)
	assert.Equal(t, documents.StatusNeedsReview, rejected.Status)
	assert.Equal(t, "wrong vendor", rejected.RejectionReason)
	assert.NotNil(t, rejected.ReviewedAt)
	assert.Equal(t, "user1", rejected.ReviewedBy)
}

func TestReviewIsTerminal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user3", "d.pdf", "", 0, "invoice")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, "user1", doc.ID, "")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, "user1", doc.ID, "")
	var transition *documents.TransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, documents.ReviewApproved, transition.Current)

	_, err = svc.Reject(ctx, "user1", doc.ID, "nope")
	require.ErrorAs(t, err, &transition)
}

func TestReprocessPreservesReviewStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user1", "e.pdf", "", 0, "invoice")
	require.NoError(t, err)
	_, err = svc.Reject(ctx, "user1", doc.ID, "redo")
	require.NoError(t, err)

	reprocessed, err := svc.Reprocess(ctx, "user1", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, documents.ReviewRejected, reprocessed.ReviewStatus)
	assert.Equal(t, documents.StatusCompleted, reprocessed.Status)
	assert.Empty(t, reprocessed.ProcessingErrors)
	assert.GreaterOrEqual(t, reprocessed.Confidence, 0.70)
	assert.Less(t, reprocessed.Confidence, 1.0)
}

func TestUpdateMergesCorrections(t *testing.T) {
	svc, auditSvc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user1", "f.pdf", "", 0, "invoice")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "user1", doc.ID, map[string]any{
		"fileName": "f-renamed.pdf",
		"extractedData": map[string]any{
			"vendor": "Corrected Corp",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "f-renamed.pdf", updated.FileName)
	assert.Equal(t, "Corrected Corp", updated.ExtractedData["vendor"])
	assert.Equal(t, "Corrected Corp", updated.Corrections["vendor"])
	// untouched extracted fields survive the merge
	assert.Contains(t, updated.ExtractedData, "invoice_num")

	entries, err := auditSvc.List(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, audit.ActionEdit, entries[1].Action)
	assert.Equal(t, "Corrected Corp", entries[1].Changes["vendor"])
}

func TestUpdateCannotChangeID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user1", "g.pdf", "", 0, "receipt")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "user1", doc.ID, map[string]any{"id": "other", "comments": "hi"})
	require.NoError(t, err)
	assert.Equal(t, doc.ID, updated.ID)
	assert.Equal(t, "hi", updated.Comments)
}

func TestDeleteKeepsAuditHistory(t *testing.T) {
	svc, auditSvc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user1", "h.pdf", "", 0, "invoice")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "user2", doc.ID))

	_, err = svc.Get(ctx, doc.ID)
	assert.ErrorIs(t, err, documents.ErrNotFound)

	entries, err := auditSvc.List(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, audit.ActionDelete, entries[1].Action)
}

func TestConcurrentReadsAndCorrections(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user1", "hot.pdf", "", 0, "invoice")
	require.NoError(t, err)

	const iterations = 200
	var wg sync.WaitGroup
	wg.Add(2)

	// Readers range over the extracted data while a writer keeps merging
	// corrections into the same document. Every read must see a complete
	// record; under -race this also proves no map is shared mid-write.
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			got, err := svc.Get(ctx, doc.ID)
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			for k, v := range got.ExtractedData {
				_ = k
				_ = v
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			_, err := svc.Update(ctx, "user1", doc.ID, map[string]any{
				"extractedData": map[string]any{"vendor": fmt.Sprintf("Vendor %d", i)},
			})
			if err != nil {
				t.Errorf("Update: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	final, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Vendor %d", iterations-1), final.ExtractedData["vendor"])
}

func TestConcurrentMutationsSerialized(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "user1", "contested.pdf", "", 0, "invoice")
	require.NoError(t, err)

	// Many goroutines race to decide the review; exactly one may win.
	const racers = 16
	var wg sync.WaitGroup
	var approved, rejected, conflicts int64
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				_, err = svc.Approve(ctx, "user1", doc.ID, "")
			} else {
				_, err = svc.Reject(ctx, "user1", doc.ID, "no")
			}
			switch {
			case err == nil && i%2 == 0:
				atomic.AddInt64(&approved, 1)
			case err == nil:
				atomic.AddInt64(&rejected, 1)
			default:
				var transition *documents.TransitionError
				if errors.As(err, &transition) {
					atomic.AddInt64(&conflicts, 1)
				} else {
					t.Errorf("unexpected error: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), approved+rejected)
	assert.Equal(t, int64(racers-1), conflicts)

	final, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Contains(t, []string{documents.ReviewApproved, documents.ReviewRejected}, final.ReviewStatus)
}

func TestSearchEnvelope(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	page, err := svc.Search(ctx, "nothing-matches-this")
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
}

func TestListPagination(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"one.pdf", "two.pdf", "three.pdf"} {
		doc, err := svc.Upload(ctx, "user1", name, "", 0, "invoice")
		require.NoError(t, err)
		ids = append(ids, doc.ID)
	}

	page, err := svc.List(ctx, documents.Filter{}, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, ids[1], page.Items[0].ID)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 1, page.PageSize)
}

func TestListSearchFilter(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "user1", "INV-100.pdf", "", 0, "invoice")
	require.NoError(t, err)
	_, err = svc.Upload(ctx, "user1", "receipt-7.jpg", "", 0, "receipt")
	require.NoError(t, err)

	page, err := svc.List(ctx, documents.Filter{Search: "inv"}, 1, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "INV-100.pdf", page.Items[0].FileName)
}
