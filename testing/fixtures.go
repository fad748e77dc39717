// Package testing provides test utilities and database setup for testing the portal
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solution-fragrance/portal/models"
	"github.com/solution-fragrance/portal/utils"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestUser creates an active user with a known password ("TestPass123")
func (tf *TestFixtures) CreateTestUser() (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	suffix := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)
	user := &models.User{
		UUID:         uuid.New(),
		Email:        fmt.Sprintf("user.%s@example.com", suffix),
		FullName:     "Test User",
		PasswordHash: utils.ToPtr(string(hashedPassword)),
		IsActive:     utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}
	return user, nil
}

// CreateTestProfile creates a profile row for the user
func (tf *TestFixtures) CreateTestProfile(user *models.User, role models.Role, status models.WholesaleStatus, plan *models.WholesalePlan) (*models.Profile, error) {
	profile := &models.Profile{
		UserID:          user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		Role:            role,
		WholesaleStatus: status,
		WholesalePlan:   plan,
	}

	if err := tf.DB.DB.Create(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create test profile: %w", err)
	}
	return profile, nil
}

// CreateTestAdmin creates an admin user with both the admin profile role and
// an allow-list row.
func (tf *TestFixtures) CreateTestAdmin() (*models.User, error) {
	user, err := tf.CreateTestUser()
	if err != nil {
		return nil, err
	}
	if _, err := tf.CreateTestProfile(user, models.RoleAdmin, models.WholesaleStatusNone, nil); err != nil {
		return nil, err
	}
	admin := &models.Admin{UserID: user.ID}
	if err := tf.DB.DB.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin allow-list row: %w", err)
	}
	return user, nil
}

// CreateTestApplication creates a wholesale application in the given status
func (tf *TestFixtures) CreateTestApplication(status models.ApplicationStatus) (*models.WholesaleApplication, error) {
	suffix := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)
	application := &models.WholesaleApplication{
		UUID:     uuid.New(),
		FullName: "Test Applicant",
		Email:    fmt.Sprintf("applicant.%s@example.com", suffix),
		Phone:    utils.ToPtr("+5491100000000"),
		Answers:  models.ApplicationAnswers{"business_type": "perfumery"},
		Status:   status,
	}

	if err := tf.DB.DB.Create(application).Error; err != nil {
		return nil, fmt.Errorf("failed to create test application: %w", err)
	}
	return application, nil
}

// CreateTestProduct creates an active product with the given wholesale price
func (tf *TestFixtures) CreateTestProduct(name string, wholesalePrice string) (*models.Product, error) {
	price, err := decimal.NewFromString(wholesalePrice)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", wholesalePrice, err)
	}

	suffix := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)
	product := &models.Product{
		UUID:           uuid.New(),
		Name:           name,
		Slug:           fmt.Sprintf("%s-%s", name, suffix),
		PriceRetail:    price.Mul(decimal.NewFromFloat(1.4)).Round(0),
		PriceWholesale: price,
		IsActive:       utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create test product: %w", err)
	}
	return product, nil
}

// CreateTestActivationToken creates a pending activation token for the user
func (tf *TestFixtures) CreateTestActivationToken(user *models.User, token string, expiresAt time.Time) (*models.ActivationToken, error) {
	activation := &models.ActivationToken{
		CorrelationID: uuid.New(),
		Token:         token,
		UserID:        user.ID,
		Status:        models.ActivationStatusPending,
		ExpiresAt:     expiresAt,
	}

	if err := tf.DB.DB.Create(activation).Error; err != nil {
		return nil, fmt.Errorf("failed to create activation token: %w", err)
	}
	return activation, nil
}
