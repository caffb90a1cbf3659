package doctypes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/audit"
	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/doctypes"
)

func TestSeedRegistry(t *testing.T) {
	svc := doctypes.NewService(doctypes.NewMemoryRepo(doctypes.Seed()), audit.NewService(audit.NewMemoryRepo()))
	ctx := context.Background()

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "invoice", all[0].ID)
	assert.Equal(t, "receipt", all[1].ID)
	assert.Equal(t, "contract", all[2].ID)

	invoice, err := svc.Get(ctx, "invoice")
	require.NoError(t, err)
	assert.Equal(t, "Financial", invoice.Category)
	require.Len(t, invoice.ExtractionFields, 5)
	assert.Equal(t, "invoice_num", invoice.ExtractionFields[0].ID)

	_, err = svc.Get(ctx, "tax-form")
	assert.ErrorIs(t, err, doctypes.ErrNotFound)
}

func TestCreateDocumentType(t *testing.T) {
	auditSvc := audit.NewService(audit.NewMemoryRepo())
	svc := doctypes.NewService(doctypes.NewMemoryRepo(doctypes.Seed()), auditSvc)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user2", doctypes.DocumentType{
		Name:        "Purchase Order",
		Description: "Inbound purchase orders",
		ExtractionFields: []doctypes.TemplateField{
			{ID: "po_number", Label: "PO Number", Type: "text", Required: true},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "invoice", created.ID)
	assert.Equal(t, "General", created.Category)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Purchase Order", got.Name)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	entries, err := auditSvc.List(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionCreateDoctype, entries[0].Action)
	assert.Equal(t, "user2", entries[0].UserID)
}

func TestCreateRequiresName(t *testing.T) {
	svc := doctypes.NewService(doctypes.NewMemoryRepo(nil), audit.NewService(audit.NewMemoryRepo()))

	_, err := svc.Create(context.Background(), "user2", doctypes.DocumentType{Name: "   "})
	assert.ErrorIs(t, err, doctypes.ErrInvalidInput)
}
