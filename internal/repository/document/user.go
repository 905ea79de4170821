package document

import (
	"context"

	"garbage-billing-backend/internal/docstore"
	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/repository"
)

type userRepository struct {
	store docstore.Store
}

func NewUserRepository(store docstore.Store) repository.UserRepository {
	return &userRepository{store: store}
}

func userToMap(u *domain.User) map[string]any {
	return map[string]any{
		"prefix":       u.Prefix,
		"idCardNumber": u.IDCardNumber,
		"firstName":    u.FirstName,
		"lastName":     u.LastName,
		"phoneNumber":  u.PhoneNumber,
		"houseNumber":  u.HouseNumber,
		"moo":          u.Moo,
		"subDistrict":  u.SubDistrict,
		"district":     u.District,
		"province":     u.Province,
		"location":     u.Location,
		"password":     u.Password,
		"profileImage": optional(u.ProfileImage),
	}
}

func userFromDoc(doc docstore.Document) domain.User {
	d := doc.Data
	return domain.User{
		ID:           doc.ID,
		Prefix:       str(d, "prefix"),
		IDCardNumber: str(d, "idCardNumber"),
		FirstName:    str(d, "firstName"),
		LastName:     str(d, "lastName"),
		PhoneNumber:  str(d, "phoneNumber"),
		HouseNumber:  str(d, "houseNumber"),
		Moo:          str(d, "moo"),
		SubDistrict:  str(d, "subDistrict"),
		District:     str(d, "district"),
		Province:     str(d, "province"),
		Location:     str(d, "location"),
		Password:     str(d, "password"),
		ProfileImage: strPtr(d, "profileImage"),
	}
}

func usersFromDocs(docs []docstore.Document) []domain.User {
	out := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		out = append(out, userFromDoc(doc))
	}
	return out
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	id, err := createStamped(ctx, r.store, docstore.CollectionUsers, userToMap(u))
	if id != "" {
		u.ID = id
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionUsers, id)
	if err != nil {
		return nil, err
	}
	u := userFromDoc(doc)
	return &u, nil
}

func (r *userRepository) FindByCredentials(ctx context.Context, idCardNumber, password string) ([]domain.User, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionUsers,
		docstore.Eq("idCardNumber", idCardNumber),
		docstore.Eq("password", password),
	)
	if err != nil {
		return nil, err
	}
	return usersFromDocs(docs), nil
}

func (r *userRepository) FindByIDCardAndFirstName(ctx context.Context, idCardNumber, firstName string) ([]domain.User, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionUsers,
		docstore.Eq("idCardNumber", idCardNumber),
		docstore.Eq("firstName", firstName),
	)
	if err != nil {
		return nil, err
	}
	return usersFromDocs(docs), nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, p domain.ProfilePatch) error {
	fields := make(map[string]any)
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	set("firstName", p.FirstName)
	set("lastName", p.LastName)
	set("idCardNumber", p.IDCardNumber)
	set("phoneNumber", p.PhoneNumber)
	set("houseNumber", p.HouseNumber)
	set("moo", p.Moo)
	set("subDistrict", p.SubDistrict)
	set("district", p.District)
	set("province", p.Province)
	set("location", p.Location)
	if len(fields) == 0 {
		return nil
	}
	return r.store.Update(ctx, docstore.CollectionUsers, id, fields)
}

func (r *userRepository) SetPassword(ctx context.Context, id, password string) error {
	return r.store.Update(ctx, docstore.CollectionUsers, id, map[string]any{"password": password})
}

func (r *userRepository) SetProfileImage(ctx context.Context, id, url string) error {
	return r.store.Update(ctx, docstore.CollectionUsers, id, map[string]any{"profileImage": url})
}
