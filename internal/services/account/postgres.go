package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"wanderfare/internal/database"
	"wanderfare/internal/models"
)

// Repository is the PostgreSQL implementation of Store
type Repository struct {
	db *database.DB
}

// NewRepository creates a new account repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, database.GetUserByEmailSQL, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Phone,
		&user.Role,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundf("user %s", email)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

// CreateUser writes the user and its role profile in a single transaction
func (r *Repository) CreateUser(ctx context.Context, user *models.User, customer *models.CustomerProfile, vendor *models.VendorProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertUserSQL,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Phone,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	if customer != nil {
		customer.UserID = user.ID
		_, err = tx.Exec(ctx, database.InsertCustomerProfileSQL,
			user.ID, customer.DeliveryAddress, customer.City, customer.PostalCode)
		if err != nil {
			return fmt.Errorf("insert customer profile: %w", err)
		}
	}

	if vendor != nil {
		vendor.UserID = user.ID
		_, err = tx.Exec(ctx, database.InsertVendorProfileSQL,
			user.ID, vendor.BusinessName, vendor.BusinessAddress, vendor.City, vendor.CuisineType, vendor.DeliveryFee)
		if err != nil {
			return fmt.Errorf("insert vendor profile: %w", err)
		}
	}

	return tx.Commit(ctx)
}
