// Package validation checks resident input before anything is written to the
// document store. Numeric fields are sanitized (non-digits stripped) rather
// than rejected; every field is checked before errors are reported.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"garbage-billing-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

const (
	IDCardNumberLength = 13
	PhoneNumberLength  = 10
	PasswordLength     = 4
)

// User-visible messages, shown next to the offending field.
const (
	MsgRequired         = "กรุณากรอกข้อมูลให้ครบทุกช่อง"
	MsgIDCardNumber     = "เลขบัตรประชาชนต้องมี 13 หลัก"
	MsgPhoneNumber      = "เบอร์โทรศัพท์ต้องมี 10 หลัก"
	MsgPassword         = "รหัสผ่านต้องมี 4 หลัก"
	MsgPasswordMismatch = "รหัสผ่านไม่ตรงกัน"
	MsgReportTitle      = "กรุณาเลือกหัวข้อรายงาน"
	MsgLocation         = "กรุณาระบุสถานที่"
	MsgDetails          = "กรุณากรอกรายละเอียด"
	MsgInvoice          = "กรุณาเลือกเดือนที่ต้องการชำระ"
	MsgTransferDate     = "กรุณาเลือกวันที่โอน"
)

var fieldMessages = map[string]string{
	"idCardNumber": MsgIDCardNumber,
	"phoneNumber":  MsgPhoneNumber,
	"password":     MsgPassword,
	"newPassword":  MsgPassword,
}

var reportMessages = map[string]string{
	"reportTitle": MsgReportTitle,
	"location":    MsgLocation,
	"details":     MsgDetails,
}

// Digits strips every character that is not an ASCII digit.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Validator wraps a configured go-playground validator.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == Digits(s)
	})
	_ = v.RegisterValidation("reporttitle", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseReportTitle(fl.Field().String())
		return ok
	})
	return &Validator{v: v}
}

type registrationRules struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	IDCardNumber    string `json:"idCardNumber" validate:"len=13,digits"`
	PhoneNumber     string `json:"phoneNumber" validate:"len=10,digits"`
	Password        string `json:"password" validate:"len=4,digits"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Location        string `json:"location" validate:"required"`
}

// Registration sanitizes r in place, fills in the address defaults and
// validates it. The returned error is a *domain.ValidationError.
func (v *Validator) Registration(r *domain.Registration) error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Location = strings.TrimSpace(r.Location)
	r.IDCardNumber = Digits(r.IDCardNumber)
	r.PhoneNumber = Digits(r.PhoneNumber)
	r.Password = Digits(r.Password)
	r.ConfirmPassword = Digits(r.ConfirmPassword)
	if r.Prefix == "" {
		r.Prefix = domain.DefaultPrefix
	}
	if r.SubDistrict == "" {
		r.SubDistrict = domain.DefaultSubDistrict
	}
	if r.District == "" {
		r.District = domain.DefaultDistrict
	}
	if r.Province == "" {
		r.Province = domain.DefaultProvince
	}

	return v.check(registrationRules{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		IDCardNumber:    r.IDCardNumber,
		PhoneNumber:     r.PhoneNumber,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		Location:        r.Location,
	}, fieldMessages)
}

type passwordRules struct {
	Password        string `json:"newPassword" validate:"len=4,digits"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// NewPassword sanitizes and checks a password/confirmation pair.
func (v *Validator) NewPassword(password, confirm *string) error {
	*password = Digits(*password)
	*confirm = Digits(*confirm)
	return v.check(passwordRules{Password: *password, ConfirmPassword: *confirm}, fieldMessages)
}

type profileRules struct {
	FirstName    *string `json:"firstName" validate:"omitnil,min=1"`
	LastName     *string `json:"lastName" validate:"omitnil,min=1"`
	IDCardNumber *string `json:"idCardNumber" validate:"omitnil,len=13,digits"`
	PhoneNumber  *string `json:"phoneNumber" validate:"omitnil,len=10,digits"`
}

// ProfilePatch sanitizes supplied numeric fields and validates the ones present.
func (v *Validator) ProfilePatch(p *domain.ProfilePatch) error {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	digits := func(s *string) {
		if s != nil {
			*s = Digits(*s)
		}
	}
	trim(p.FirstName)
	trim(p.LastName)
	digits(p.IDCardNumber)
	digits(p.PhoneNumber)
	return v.check(profileRules{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		IDCardNumber: p.IDCardNumber,
		PhoneNumber:  p.PhoneNumber,
	}, fieldMessages)
}

type reportRules struct {
	Title    string `json:"reportTitle" validate:"required,reporttitle"`
	Location string `json:"location" validate:"required"`
	Details  string `json:"details" validate:"required"`
}

// ReportDraft trims and validates a complaint form.
func (v *Validator) ReportDraft(d *domain.ReportDraft) error {
	d.Title = strings.TrimSpace(d.Title)
	d.Location = strings.TrimSpace(d.Location)
	d.Details = strings.TrimSpace(d.Details)
	return v.check(reportRules{Title: d.Title, Location: d.Location, Details: d.Details}, reportMessages)
}

// check runs the struct rules and converts failures into one message per field.
func (v *Validator) check(rules any, messages map[string]string) error {
	err := v.v.Struct(rules)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range verrs {
		if out.Has(fe.Field()) {
			continue
		}
		out.Add(fe.Field(), message(fe, messages))
	}
	return out.OrNil()
}

func message(fe validator.FieldError, messages map[string]string) string {
	if fe.Tag() == "eqfield" {
		return MsgPasswordMismatch
	}
	if msg, ok := messages[fe.Field()]; ok {
		return msg
	}
	return MsgRequired
}
