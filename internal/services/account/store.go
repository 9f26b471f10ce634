package account

import (
	"context"

	"wanderfare/internal/models"
)

// Store is the persistence contract for account registration. CreateUser
// writes the user and its role profile atomically.
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User, customer *models.CustomerProfile, vendor *models.VendorProfile) error
}
