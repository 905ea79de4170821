package service

import (
	"context"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/logger"
	"garbage-billing-backend/internal/repository"
	"garbage-billing-backend/internal/validation"
)

type authService struct {
	userRepo  repository.UserRepository
	validator *validation.Validator
}

func NewAuthService(userRepo repository.UserRepository, v *validation.Validator) AuthService {
	return &authService{
		userRepo:  userRepo,
		validator: v,
	}
}

func (s *authService) Signup(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	logger.EnterMethod("authService.Signup")

	if err := s.validator.Registration(&reg); err != nil {
		logger.ExitMethodWithError("authService.Signup", err)
		return nil, err
	}

	user := &domain.User{
		Prefix:       reg.Prefix,
		IDCardNumber: reg.IDCardNumber,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		PhoneNumber:  reg.PhoneNumber,
		HouseNumber:  reg.HouseNumber,
		Moo:          reg.Moo,
		SubDistrict:  reg.SubDistrict,
		District:     reg.District,
		Province:     reg.Province,
		Location:     reg.Location,
		Password:     reg.Password,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("authService.Signup", err)
		return nil, err
	}

	logger.ExitMethod("authService.Signup", "userID", user.ID)
	return user, nil
}

func (s *authService) Login(ctx context.Context, idCardNumber, password string) (*domain.User, error) {
	logger.EnterMethod("authService.Login")

	idCardNumber = validation.Digits(idCardNumber)
	password = validation.Digits(password)
	if idCardNumber == "" || password == "" {
		verr := &domain.ValidationError{}
		if idCardNumber == "" {
			verr.Add("idCardNumber", validation.MsgRequired)
		}
		if password == "" {
			verr.Add("password", validation.MsgRequired)
		}
		logger.ExitMethodWithError("authService.Login", verr)
		return nil, verr
	}

	// One query on both fields: a wrong password and an unknown id look the same.
	users, err := s.userRepo.FindByCredentials(ctx, idCardNumber, password)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err)
		return nil, err
	}
	if len(users) == 0 {
		logger.ExitMethod("authService.Login", "found", false)
		return nil, domain.ErrNotFound
	}

	user := users[0]
	logger.ExitMethod("authService.Login", "userID", user.ID)
	return &user, nil
}

func (s *authService) findForReset(ctx context.Context, idCardNumber, firstName string) (*domain.User, error) {
	users, err := s.userRepo.FindByIDCardAndFirstName(ctx, validation.Digits(idCardNumber), firstName)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrNotFound
	}
	return &users[0], nil
}

func (s *authService) VerifyForReset(ctx context.Context, idCardNumber, firstName string) error {
	logger.EnterMethod("authService.VerifyForReset")

	if _, err := s.findForReset(ctx, idCardNumber, firstName); err != nil {
		logger.ExitMethodWithError("authService.VerifyForReset", err)
		return err
	}

	logger.ExitMethod("authService.VerifyForReset")
	return nil
}

// ResetPassword re-runs the identity match and overwrites the first matched
// user's password. There is no old-password check.
func (s *authService) ResetPassword(ctx context.Context, idCardNumber, firstName, newPassword, confirmPassword string) error {
	logger.EnterMethod("authService.ResetPassword")

	if err := s.validator.NewPassword(&newPassword, &confirmPassword); err != nil {
		logger.ExitMethodWithError("authService.ResetPassword", err)
		return err
	}

	user, err := s.findForReset(ctx, idCardNumber, firstName)
	if err != nil {
		logger.ExitMethodWithError("authService.ResetPassword", err)
		return err
	}
	if err := s.userRepo.SetPassword(ctx, user.ID, newPassword); err != nil {
		logger.ExitMethodWithError("authService.ResetPassword", err, "userID", user.ID)
		return err
	}

	logger.ExitMethod("authService.ResetPassword", "userID", user.ID)
	return nil
}
