package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"wanderfare/internal/logger"
	"wanderfare/internal/models"
)

// fakeStore keeps registered users in memory
type fakeStore struct {
	users     map[string]*models.User
	customers map[int64]*models.CustomerProfile
	vendors   map[int64]*models.VendorProfile
	nextID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[string]*models.User),
		customers: make(map[int64]*models.CustomerProfile),
		vendors:   make(map[int64]*models.VendorProfile),
		nextID:    1,
	}
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, models.NotFoundf("user %s", email)
	}
	return user, nil
}

func (f *fakeStore) CreateUser(_ context.Context, user *models.User, customer *models.CustomerProfile, vendor *models.VendorProfile) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.Email] = user
	if customer != nil {
		customer.UserID = user.ID
		f.customers[user.ID] = customer
	}
	if vendor != nil {
		vendor.UserID = user.ID
		f.vendors[user.ID] = vendor
	}
	return nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	return NewService(store, logger.New("account-test")), store
}

func customerRequest() *models.RegisterRequest {
	address := "123 Main St"
	return &models.RegisterRequest{
		Role:     models.RoleCustomer,
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Alice Example",
		Customer: &models.CustomerDetails{DeliveryAddress: &address},
	}
}

func TestRegisterCustomer(t *testing.T) {
	svc, store := newTestService()

	user, err := svc.Register(context.Background(), customerRequest(), "req-1")
	require.NoError(t, err)

	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotZero(t, user.ID)
	require.Contains(t, store.customers, user.ID)
	assert.NotContains(t, store.vendors, user.ID)

	// stored hash verifies against the original password
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123"))
	assert.NoError(t, err)
}

func TestRegisterVendor(t *testing.T) {
	svc, store := newTestService()

	user, err := svc.Register(context.Background(), &models.RegisterRequest{
		Role:     models.RoleVendor,
		Email:    "bob@pizzeria.com",
		Password: "secret123",
		FullName: "Bob Vendor",
		Vendor:   &models.VendorDetails{BusinessName: "Bob's Pizzeria"},
	}, "req-1")
	require.NoError(t, err)

	assert.Equal(t, models.RoleVendor, user.Role)
	require.Contains(t, store.vendors, user.ID)
	assert.Equal(t, "Bob's Pizzeria", store.vendors[user.ID].BusinessName)
	assert.NotContains(t, store.customers, user.ID)
}

func TestRegisterAdminHasNoProfile(t *testing.T) {
	svc, store := newTestService()

	user, err := svc.Register(context.Background(), &models.RegisterRequest{
		Role:     models.RoleAdmin,
		Email:    "root@example.com",
		Password: "secret123",
		FullName: "Root Admin",
	}, "req-1")
	require.NoError(t, err)

	assert.NotContains(t, store.customers, user.ID)
	assert.NotContains(t, store.vendors, user.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, customerRequest(), "req-1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, customerRequest(), "req-2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrConflict))
}

func TestRegisterValidation(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.RegisterRequest
	}{
		{"missing email", &models.RegisterRequest{Role: models.RoleCustomer, Password: "p", FullName: "N"}},
		{"missing password", &models.RegisterRequest{Role: models.RoleCustomer, Email: "a@b.c", FullName: "N"}},
		{"unknown role", &models.RegisterRequest{Role: "SUPERUSER", Email: "a@b.c", Password: "p", FullName: "N"}},
		{"vendor without business name", &models.RegisterRequest{Role: models.RoleVendor, Email: "a@b.c", Password: "p", FullName: "N"}},
		{"customer with vendor details", &models.RegisterRequest{
			Role: models.RoleCustomer, Email: "a@b.c", Password: "p", FullName: "N",
			Vendor: &models.VendorDetails{BusinessName: "Oops"},
		}},
		{"admin with profile details", &models.RegisterRequest{
			Role: models.RoleAdmin, Email: "a@b.c", Password: "p", FullName: "N",
			Customer: &models.CustomerDetails{},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req, "req-1")
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrInvalidInput), "got %v", err)
		})
	}

	assert.Empty(t, store.users)
}
