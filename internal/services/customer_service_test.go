package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/juliomeza/sales-orders-system-sub001/internal/apperrors"
	"github.com/juliomeza/sales-orders-system-sub001/internal/models"
	"github.com/juliomeza/sales-orders-system-sub001/internal/repository"
)

func newCustomerService(t *testing.T, db *gorm.DB) CustomerService {
	t.Helper()
	return NewCustomerService(
		repository.NewCustomerRepository(db),
		repository.NewUserRepository(db),
		"ChangeMe123!",
		nopLogger(),
	)
}

func TestCreateCustomerAggregate(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(t, db)

	customer, err := svc.Create(context.Background(), CreateCustomerRequest{
		LookupCode: "INITECH",
		Name:       "Initech LLC",
		City:       "Austin",
		State:      "TX",
		Projects: []ProjectInput{
			{LookupCode: "P-MAIN", Name: "Main", IsDefault: true},
			{LookupCode: "P-SIDE", Name: "Side"},
		},
		Users: []UserInput{
			{Email: "peter@initech.example", Password: "tps-reports", FirstName: "Peter", Role: "ADMIN"},
			{Email: "samir@initech.example"},
		},
	}, adminIdentity())
	require.NoError(t, err)

	assert.Equal(t, models.StatusActive, customer.Status)
	require.Len(t, customer.Projects, 2)
	require.Len(t, customer.Users, 2)

	// Role on the input is ignored; aggregate users are always clients.
	for _, u := range customer.Users {
		assert.Equal(t, models.RoleClient, u.Role)
		require.NotNil(t, u.CustomerID)
		assert.Equal(t, customer.ID, *u.CustomerID)
	}

	var stored models.User
	require.NoError(t, db.Where("email = ?", "peter@initech.example").First(&stored).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("tps-reports")))

	// No password supplied falls back to the system placeholder.
	stored = models.User{}
	require.NoError(t, db.Where("email = ?", "samir@initech.example").First(&stored).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("ChangeMe123!")))
}

func TestCreateCustomerDefaultProjectPolicy(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(t, db)

	t.Run("first claimant wins", func(t *testing.T) {
		customer, err := svc.Create(context.Background(), CreateCustomerRequest{
			LookupCode: "HOOLI",
			Name:       "Hooli",
			Projects: []ProjectInput{
				{LookupCode: "A", Name: "A"},
				{LookupCode: "B", Name: "B", IsDefault: true},
				{LookupCode: "C", Name: "C", IsDefault: true},
			},
		}, adminIdentity())
		require.NoError(t, err)

		defaults := 0
		for _, p := range customer.Projects {
			if p.IsDefault {
				defaults++
				assert.Equal(t, "B", p.LookupCode)
			}
		}
		assert.Equal(t, 1, defaults)
	})

	t.Run("first promoted when none claims", func(t *testing.T) {
		customer, err := svc.Create(context.Background(), CreateCustomerRequest{
			LookupCode: "PIED",
			Name:       "Pied Piper",
			Projects: []ProjectInput{
				{LookupCode: "X", Name: "X"},
				{LookupCode: "Y", Name: "Y"},
			},
		}, adminIdentity())
		require.NoError(t, err)

		require.Len(t, customer.Projects, 2)
		defaults := 0
		for _, p := range customer.Projects {
			if p.IsDefault {
				defaults++
				assert.Equal(t, "X", p.LookupCode)
			}
		}
		assert.Equal(t, 1, defaults)
	})
}

func TestCreateCustomerDuplicateLookupCode(t *testing.T) {
	db := openTestDB(t)
	f := seedReferenceData(t, db)
	svc := newCustomerService(t, db)

	_, err := svc.Create(context.Background(), CreateCustomerRequest{
		LookupCode: f.customerA.LookupCode,
		Name:       "Acme Impostor",
	}, adminIdentity())
	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(t, db)

	_, err := svc.Create(context.Background(), CreateCustomerRequest{
		LookupCode: "ONE",
		Name:       "One",
		Users:      []UserInput{{Email: "taken@example.com"}},
	}, adminIdentity())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateCustomerRequest{
		LookupCode: "TWO",
		Name:       "Two",
		Users:      []UserInput{{Email: "taken@example.com"}},
	}, adminIdentity())
	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, err.Error(), "taken@example.com")
}

func TestCreateCustomerMissingFields(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(t, db)

	_, err := svc.Create(context.Background(), CreateCustomerRequest{
		Users: []UserInput{{FirstName: "No", LastName: "Email"}},
	}, adminIdentity())
	var validation *apperrors.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Details, "lookup_code is required")
	assert.Contains(t, validation.Details, "name is required")
	assert.Contains(t, validation.Details, "users[0].email is required")
}

func TestUpdateCustomerReplacesProjectsWholesale(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(t, db)

	customer, err := svc.Create(context.Background(), CreateCustomerRequest{
		LookupCode: "WAYNE",
		Name:       "Wayne Enterprises",
		Projects: []ProjectInput{
			{LookupCode: "P1", Name: "One", IsDefault: true},
			{LookupCode: "P2", Name: "Two"},
		},
	}, adminIdentity())
	require.NoError(t, err)

	replacement := []ProjectInput{{LookupCode: "P3", Name: "Three"}}
	updated, err := svc.Update(context.Background(), customer.ID, UpdateCustomerRequest{Projects: &replacement}, adminIdentity())
	require.NoError(t, err)

	require.Len(t, updated.Projects, 1)
	assert.Equal(t, "P3", updated.Projects[0].LookupCode)
	assert.True(t, updated.Projects[0].IsDefault)

	// An empty slice removes every project.
	empty := []ProjectInput{}
	updated, err = svc.Update(context.Background(), customer.ID, UpdateCustomerRequest{Projects: &empty}, adminIdentity())
	require.NoError(t, err)
	assert.Empty(t, updated.Projects)

	var count int64
	require.NoError(t, db.Model(&models.Project{}).Where("customer_id = ?", customer.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUpdateCustomerReplacesUsersWholesale(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(t, db)

	customer, err := svc.Create(context.Background(), CreateCustomerRequest{
		LookupCode: "STARK",
		Name:       "Stark Industries",
		Users: []UserInput{
			{Email: "tony@stark.example"},
			{Email: "pepper@stark.example"},
		},
	}, adminIdentity())
	require.NoError(t, err)

	replacement := []UserInput{{Email: "happy@stark.example"}}
	updated, err := svc.Update(context.Background(), customer.ID, UpdateCustomerRequest{Users: &replacement}, adminIdentity())
	require.NoError(t, err)

	require.Len(t, updated.Users, 1)
	assert.Equal(t, "happy@stark.example", updated.Users[0].Email)

	// The omitted emails are freed up and can be reused elsewhere.
	_, err = svc.Create(context.Background(), CreateCustomerRequest{
		LookupCode: "AVENGERS",
		Name:       "Avengers",
		Users:      []UserInput{{Email: "tony@stark.example"}},
	}, adminIdentity())
	assert.NoError(t, err)
}

func TestUpdateCustomerOwnEmailsNotConflicting(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(t, db)

	customer, err := svc.Create(context.Background(), CreateCustomerRequest{
		LookupCode: "UMBRELLA",
		Name:       "Umbrella",
		Users:      []UserInput{{Email: "alice@umbrella.example"}},
	}, adminIdentity())
	require.NoError(t, err)

	// Resubmitting the same email for the same tenant must not 409.
	same := []UserInput{{Email: "alice@umbrella.example"}, {Email: "bob@umbrella.example"}}
	updated, err := svc.Update(context.Background(), customer.ID, UpdateCustomerRequest{Users: &same}, adminIdentity())
	require.NoError(t, err)
	assert.Len(t, updated.Users, 2)
}

func TestUpdateCustomerPartialScalars(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(t, db)

	customer, err := svc.Create(context.Background(), CreateCustomerRequest{
		LookupCode: "OSCORP",
		Name:       "Oscorp",
		City:       "New York",
		Projects:   []ProjectInput{{LookupCode: "P1", Name: "One"}},
	}, adminIdentity())
	require.NoError(t, err)

	phone := "555-0100"
	updated, err := svc.Update(context.Background(), customer.ID, UpdateCustomerRequest{Phone: &phone}, adminIdentity())
	require.NoError(t, err)

	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "New York", updated.City)
	assert.Equal(t, "Oscorp", updated.Name)
	// Children untouched when the slices are nil.
	assert.Len(t, updated.Projects, 1)
}

func TestUpdateCustomerLookupCodeConflict(t *testing.T) {
	db := openTestDB(t)
	f := seedReferenceData(t, db)
	svc := newCustomerService(t, db)

	_, err := svc.Update(context.Background(), f.customerB.ID, UpdateCustomerRequest{
		LookupCode: &f.customerA.LookupCode,
	}, adminIdentity())
	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestDeleteCustomerCascades(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(t, db)

	customer, err := svc.Create(context.Background(), CreateCustomerRequest{
		LookupCode: "CYBERDYNE",
		Name:       "Cyberdyne",
		Projects:   []ProjectInput{{LookupCode: "P1", Name: "One"}},
		Users:      []UserInput{{Email: "miles@cyberdyne.example"}},
	}, adminIdentity())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), customer.ID))

	_, err = svc.GetByID(context.Background(), customer.ID)
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)

	var count int64
	require.NoError(t, db.Model(&models.Project{}).Where("customer_id = ?", customer.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&models.User{}).Where("customer_id = ?", customer.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUpdateMissingCustomerIs404(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(t, db)

	name := "ghost"
	_, err := svc.Update(context.Background(), 424242, UpdateCustomerRequest{Name: &name}, adminIdentity())
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListCustomersByKeywordAndStatus(t *testing.T) {
	db := openTestDB(t)
	seedReferenceData(t, db)
	svc := newCustomerService(t, db)

	customers, total, err := svc.List(context.Background(), CustomerListQuery{Keyword: "acme"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, customers, 1)
	assert.Equal(t, "ACME", customers[0].LookupCode)

	active := models.StatusActive
	_, total, err = svc.List(context.Background(), CustomerListQuery{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
