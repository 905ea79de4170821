package domain

// User is a registered resident, stored in the `item` collection.
// Password is a 4-digit PIN kept in plain text (see DESIGN.md).
type User struct {
	ID           string  `json:"id"`
	Prefix       string  `json:"prefix,omitempty"`
	IDCardNumber string  `json:"idCardNumber"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	PhoneNumber  string  `json:"phoneNumber"`
	HouseNumber  string  `json:"houseNumber"`
	Moo          string  `json:"moo"`
	SubDistrict  string  `json:"subDistrict"`
	District     string  `json:"district"`
	Province     string  `json:"province"`
	Location     string  `json:"location"`
	Password     string  `json:"-"`
	ProfileImage *string `json:"profileImage"`
}

// Signup defaults used by the municipality the app was built for.
const (
	DefaultPrefix      = "นาย"
	DefaultSubDistrict = "ศรีสองรัก"
	DefaultDistrict    = "เมือง"
	DefaultProvince    = "เลย"
)

// Registration is the raw signup form.
type Registration struct {
	Prefix          string `json:"prefix"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	IDCardNumber    string `json:"idCardNumber"`
	PhoneNumber     string `json:"phoneNumber"`
	HouseNumber     string `json:"houseNumber"`
	Moo             string `json:"moo"`
	SubDistrict     string `json:"subDistrict"`
	District        string `json:"district"`
	Province        string `json:"province"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Location        string `json:"location"`
}

// ProfilePatch carries the fields a resident may edit; nil fields are left untouched.
type ProfilePatch struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	IDCardNumber *string `json:"idCardNumber"`
	PhoneNumber  *string `json:"phoneNumber"`
	HouseNumber  *string `json:"houseNumber"`
	Moo          *string `json:"moo"`
	SubDistrict  *string `json:"subDistrict"`
	District     *string `json:"district"`
	Province     *string `json:"province"`
	Location     *string `json:"location"`
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.IDCardNumber == nil &&
		p.PhoneNumber == nil && p.HouseNumber == nil && p.Moo == nil &&
		p.SubDistrict == nil && p.District == nil && p.Province == nil && p.Location == nil
}

// Announcement is a dashboard news item.
type Announcement struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Image string `json:"image"`
}

// Attachment is an image the resident attached to a submission.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}
