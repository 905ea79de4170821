package document

import (
	"context"
	"errors"
	"testing"
	"time"

	"garbage-billing-backend/internal/docstore"
	"garbage-billing-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemoryStore()
	repo := NewUserRepository(docs)

	u := &domain.User{IDCardNumber: "1234567890123", FirstName: "สมชาย", Password: "1234", Province: "เลย"}
	require.NoError(t, repo.Create(ctx, u))
	require.NotEmpty(t, u.ID)

	t.Run("CreateStampsID", func(t *testing.T) {
		doc, err := docs.Get(ctx, docstore.CollectionUsers, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.ID, doc.Data["id"])
		assert.Nil(t, doc.Data["profileImage"])
	})

	t.Run("FindByCredentials", func(t *testing.T) {
		found, err := repo.FindByCredentials(ctx, "1234567890123", "1234")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "สมชาย", found[0].FirstName)

		found, err = repo.FindByCredentials(ctx, "1234567890123", "0000")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("UpdateProfileMerges", func(t *testing.T) {
		phone := "0812345678"
		require.NoError(t, repo.UpdateProfile(ctx, u.ID, domain.ProfilePatch{PhoneNumber: &phone}))
		got, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "0812345678", got.PhoneNumber)
		assert.Equal(t, "เลย", got.Province)
		assert.Equal(t, "1234", got.Password)
	})

	t.Run("SetPasswordAndImage", func(t *testing.T) {
		require.NoError(t, repo.SetPassword(ctx, u.ID, "4321"))
		require.NoError(t, repo.SetProfileImage(ctx, u.ID, "https://img/p.jpg"))
		found, err := repo.FindByIDCardAndFirstName(ctx, "1234567890123", "สมชาย")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "4321", found[0].Password)
		require.NotNil(t, found[0].ProfileImage)
		assert.Equal(t, "https://img/p.jpg", *found[0].ProfileImage)
	})

	t.Run("MissingUser", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestInvoiceRepository_LenientDecode(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemoryStore()
	docs.Put(docstore.CollectionInvoices, "a", map[string]any{
		"idCardNumber": "1", "month": "มกราคม", "year": int64(2567), "garbagerate": int64(100), "status": "ค้างชำระ",
	})
	docs.Put(docstore.CollectionInvoices, "b", map[string]any{
		"idCardNumber": "1", "month": "กุมภาพันธ์", "year": "2567", "garbagerate": "n/a", "status": "refunded",
		"amountPaid": 80.5,
	})
	docs.Put(docstore.CollectionInvoices, "c", map[string]any{"idCardNumber": "2", "status": "ค้างชำระ"})

	repo := NewInvoiceRepository(docs)

	invoices, err := repo.ListByIDCardNumber(ctx, "1")
	require.NoError(t, err)
	require.Len(t, invoices, 2)

	assert.Equal(t, "2567", invoices[0].Year)
	assert.Equal(t, "100", invoices[0].Rate().String())
	assert.Equal(t, domain.InvoiceStatusOutstanding, invoices[0].Status)

	assert.False(t, invoices[1].GarbageRate.Valid)
	assert.Equal(t, domain.InvoiceStatusUnknown, invoices[1].Status)
	assert.Equal(t, "80.5", invoices[1].AmountPaid.Decimal.String())

	outstanding, err := repo.ListByStatus(ctx, domain.InvoiceStatusOutstanding)
	require.NoError(t, err)
	assert.Len(t, outstanding, 2)

	inv, err := repo.GetByID(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "2", inv.IDCardNumber)
}

func TestPaymentRepository(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemoryStore()
	repo := NewPaymentRepository(docs)

	when := time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)
	p := &domain.Payment{
		UserID:       "u1",
		TransferDate: when,
		TransferTime: when,
		InvoiceID:    "inv-1",
		GarbageRate:  domain.ParseAmount(100),
		Month:        "มกราคม",
		Year:         "2567",
		Status:       domain.PaymentStatusPendingReview,
		CreatedAt:    when,
	}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotEmpty(t, p.ID)

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, p.ID, got.ID)
	assert.True(t, got.TransferDate.Equal(when))
	assert.Equal(t, "100", got.GarbageRate.Decimal.String())
	assert.Equal(t, domain.PaymentStatusPendingReview, got.Status)
	assert.Nil(t, got.File)

	list, err = repo.ListByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, list)

	t.Run("TimesStoredAsISOStrings", func(t *testing.T) {
		doc, err := docs.Get(ctx, docstore.CollectionPayments, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "2024-02-01T10:30:00Z", doc.Data["transferDate"])
		assert.Equal(t, "2024-02-01T10:30:00Z", doc.Data["transferTime"])
		assert.Equal(t, "2024-02-01T10:30:00Z", doc.Data["createdAt"])
	})

	t.Run("LocalTimesNormalisedToUTC", func(t *testing.T) {
		bangkok := time.FixedZone("ICT", 7*3600)
		local := &domain.Payment{UserID: "u3", TransferDate: when.In(bangkok), CreatedAt: when.In(bangkok)}
		require.NoError(t, repo.Create(ctx, local))
		doc, err := docs.Get(ctx, docstore.CollectionPayments, local.ID)
		require.NoError(t, err)
		assert.Equal(t, "2024-02-01T10:30:00Z", doc.Data["transferDate"])
		assert.Nil(t, doc.Data["transferTime"], "zero time is stored as null")
	})
}

// noUpdates accepts creates but rejects every merge.
type noUpdates struct {
	docstore.Store
}

func (noUpdates) Update(context.Context, string, string, map[string]any) error {
	return domain.ErrStoreUnavailable
}

func TestCreateIsSingleWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("IDStampedWithoutUpdate", func(t *testing.T) {
		mem := docstore.NewMemoryStore()
		docs := noUpdates{Store: mem}

		p := &domain.Payment{UserID: "u1", Status: domain.PaymentStatusPendingReview}
		require.NoError(t, NewPaymentRepository(docs).Create(ctx, p))
		r := &domain.Report{UserID: "u1", Status: domain.ReportStatusPendingReview}
		require.NoError(t, NewReportRepository(docs).Create(ctx, r))
		u := &domain.User{IDCardNumber: "1", FirstName: "สมชาย"}
		require.NoError(t, NewUserRepository(docs).Create(ctx, u))

		for coll, id := range map[string]string{
			docstore.CollectionPayments: p.ID,
			docstore.CollectionReports:  r.ID,
			docstore.CollectionUsers:    u.ID,
		} {
			doc, err := mem.Get(ctx, coll, id)
			require.NoError(t, err, coll)
			assert.Equal(t, id, doc.Data["id"], coll)
		}
	})

	t.Run("FailedCreateLeavesNothing", func(t *testing.T) {
		mem := docstore.NewMemoryStore()
		mem.FailWith = errors.New("deadline exceeded")

		p := &domain.Payment{UserID: "u1"}
		err := NewPaymentRepository(mem).Create(ctx, p)
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
		assert.Empty(t, p.ID)
		assert.Equal(t, 0, mem.Len(docstore.CollectionPayments))
	})
}

func TestReportRepository(t *testing.T) {
	ctx := context.Background()
	docs := docstore.NewMemoryStore()
	repo := NewReportRepository(docs)

	url := "https://img/r.jpg"
	r := &domain.Report{
		UserID:   "u1",
		Title:    domain.ReportTitleMissedCollection,
		Location: "หมู่ 4",
		Details:  "ไม่มาเก็บ 2 สัปดาห์",
		File:     &url,
		Status:   domain.ReportStatusPendingReview,
	}
	require.NoError(t, repo.Create(ctx, r))

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, r.ID, list[0].ID)
	assert.Equal(t, domain.ReportTitleMissedCollection, list[0].Title)
	require.NotNil(t, list[0].File)
	assert.Equal(t, url, *list[0].File)
}

func TestAnnouncementRepository(t *testing.T) {
	docs := docstore.NewMemoryStore()
	docs.Put(docstore.CollectionAnnouncements, "n1", map[string]any{"image": "https://img/1.jpg"})
	docs.Put(docstore.CollectionAnnouncements, "n2", map[string]any{"image": "https://img/2.jpg", "title": "งดเก็บขยะวันหยุด"})

	list, err := NewStore(docs).AnnouncementRepository.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n1", list[0].ID)
	assert.Equal(t, "งดเก็บขยะวันหยุด", list[1].Title)
}
