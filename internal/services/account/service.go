package account

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"wanderfare/internal/logger"
	"wanderfare/internal/models"
)

// Service handles account registration. The three registrant kinds are a
// closed role tag on the request; construction dispatches on the tag.
type Service struct {
	store  Store
	logger *logger.Logger
}

// NewService creates a new account service
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
	}
}

// Register creates an account for the requested role. Identity fields are
// stored once on the user record; role-specific fields land in the
// profile record keyed by the same id.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest, requestID string) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, models.Conflictf("email %s is already registered", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         req.Role,
	}

	var customer *models.CustomerProfile
	var vendor *models.VendorProfile

	switch req.Role {
	case models.RoleCustomer:
		customer = &models.CustomerProfile{}
		if req.Customer != nil {
			customer.DeliveryAddress = req.Customer.DeliveryAddress
			customer.City = req.Customer.City
			customer.PostalCode = req.Customer.PostalCode
		}
	case models.RoleVendor:
		vendor = &models.VendorProfile{
			BusinessName:    req.Vendor.BusinessName,
			BusinessAddress: req.Vendor.BusinessAddress,
			City:            req.Vendor.City,
			CuisineType:     req.Vendor.CuisineType,
			DeliveryFee:     req.Vendor.DeliveryFee,
		}
	case models.RoleAdmin:
		// admins carry no profile record
	}

	if err := s.store.CreateUser(ctx, user, customer, vendor); err != nil {
		return nil, fmt.Errorf("persist user: %w", err)
	}

	s.logger.Info("user_registered", "Account registered", requestID, map[string]interface{}{
		"user_id": user.ID,
		"role":    string(user.Role),
	})

	return user, nil
}
