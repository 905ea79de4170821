package validation

import (
	"errors"
	"strings"
	"testing"

	"garbage-billing-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() domain.Registration {
	return domain.Registration{
		FirstName:       "สมชาย",
		LastName:        "ใจดี",
		IDCardNumber:    "1234567890123",
		PhoneNumber:     "0812345678",
		HouseNumber:     "12/3",
		Moo:             "4",
		Password:        "1234",
		ConfirmPassword: "1234",
		Location:        "17.48,101.72",
	}
}

func fieldErrors(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	return verr
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "1234567890123", Digits("1-2345-67890-12-3"))
	assert.Equal(t, "", Digits("abcd"))
	assert.Equal(t, "12", Digits(" 1a2 "))
}

func TestRegistration(t *testing.T) {
	v := New()

	t.Run("Valid", func(t *testing.T) {
		r := validRegistration()
		assert.NoError(t, v.Registration(&r))
		assert.Equal(t, domain.DefaultPrefix, r.Prefix)
		assert.Equal(t, domain.DefaultSubDistrict, r.SubDistrict)
		assert.Equal(t, domain.DefaultDistrict, r.District)
		assert.Equal(t, domain.DefaultProvince, r.Province)
	})

	t.Run("IDCardNumberBoundary", func(t *testing.T) {
		for _, id := range []string{"123456789012", "12345678901234"} {
			r := validRegistration()
			r.IDCardNumber = id
			verr := fieldErrors(t, v.Registration(&r))
			assert.True(t, verr.Has("idCardNumber"), id)
		}

		r := validRegistration()
		r.IDCardNumber = strings.Repeat("9", IDCardNumberLength)
		assert.NoError(t, v.Registration(&r))
	})

	t.Run("PasswordBoundary", func(t *testing.T) {
		r := validRegistration()
		r.Password, r.ConfirmPassword = "12345", "12345"
		verr := fieldErrors(t, v.Registration(&r))
		assert.True(t, verr.Has("password"))
		assert.False(t, verr.Has("confirmPassword"))

		r = validRegistration()
		r.Password, r.ConfirmPassword = "4321", "4321"
		assert.NoError(t, v.Registration(&r))
	})

	t.Run("NonDigitsAreStrippedNotRejected", func(t *testing.T) {
		r := validRegistration()
		r.IDCardNumber = "1-2345-67890-12-3"
		r.PhoneNumber = "081-234-5678"
		r.Password, r.ConfirmPassword = "12a34", "1234"
		assert.NoError(t, v.Registration(&r))
		assert.Equal(t, "1234567890123", r.IDCardNumber)
		assert.Equal(t, "0812345678", r.PhoneNumber)
		assert.Equal(t, "1234", r.Password)
	})

	t.Run("AllFieldsReportedTogether", func(t *testing.T) {
		r := domain.Registration{IDCardNumber: "1", PhoneNumber: "2", Password: "3", ConfirmPassword: "4"}
		verr := fieldErrors(t, v.Registration(&r))
		for _, f := range []string{"firstName", "lastName", "idCardNumber", "phoneNumber", "password", "confirmPassword", "location"} {
			assert.True(t, verr.Has(f), f)
		}
		assert.Len(t, verr.Fields, 7)
	})

	t.Run("PasswordMismatch", func(t *testing.T) {
		r := validRegistration()
		r.ConfirmPassword = "9999"
		verr := fieldErrors(t, v.Registration(&r))
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "confirmPassword", verr.Fields[0].Field)
		assert.Equal(t, MsgPasswordMismatch, verr.Fields[0].Message)
	})
}

func TestNewPassword(t *testing.T) {
	v := New()

	p, c := "12-34", "1234"
	assert.NoError(t, v.NewPassword(&p, &c))
	assert.Equal(t, "1234", p)

	p, c = "123", "123"
	verr := fieldErrors(t, v.NewPassword(&p, &c))
	assert.True(t, verr.Has("newPassword"))
}

func TestProfilePatch(t *testing.T) {
	v := New()
	str := func(s string) *string { return &s }

	assert.NoError(t, v.ProfilePatch(&domain.ProfilePatch{}))

	p := domain.ProfilePatch{PhoneNumber: str("081 234 5678"), FirstName: str(" สมหญิง ")}
	assert.NoError(t, v.ProfilePatch(&p))
	assert.Equal(t, "0812345678", *p.PhoneNumber)
	assert.Equal(t, "สมหญิง", *p.FirstName)

	p = domain.ProfilePatch{IDCardNumber: str("123"), FirstName: str("  ")}
	verr := fieldErrors(t, v.ProfilePatch(&p))
	assert.True(t, verr.Has("idCardNumber"))
	assert.True(t, verr.Has("firstName"))
}

func TestReportDraft(t *testing.T) {
	v := New()

	d := domain.ReportDraft{Title: string(domain.ReportTitleRudeStaff), Location: " บ้าน 1 ", Details: "..."}
	assert.NoError(t, v.ReportDraft(&d))
	assert.Equal(t, "บ้าน 1", d.Location)

	d = domain.ReportDraft{Title: "อื่นๆ"}
	verr := fieldErrors(t, v.ReportDraft(&d))
	require.Len(t, verr.Fields, 3)
	assert.Equal(t, MsgReportTitle, messageFor(verr, "reportTitle"))
	assert.Equal(t, MsgLocation, messageFor(verr, "location"))
	assert.Equal(t, MsgDetails, messageFor(verr, "details"))
}

func messageFor(v *domain.ValidationError, field string) string {
	for _, f := range v.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}
