package services_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/pkg/apperr"
)

func addressInput(line string) services.AddressInput {
	return services.AddressInput{
		FirstName: "Ada", LastName: "Lovelace", Phone: "0123456789", Address1: line,
		Country: "United Kingdom", CountryCode: "GB",
	}
}

func defaults(list []models.Address) int {
	n := 0
	for _, a := range list {
		if a.Default {
			n++
		}
	}
	return n
}

// userWithAddresses registers a user and adds extra addresses; the first
// address of the result is the registration default.
func userWithAddresses(t *testing.T, f *fixture, extra int) (primitive.ObjectID, []models.Address) {
	t.Helper()
	register(t, f, "ada@example.com")
	u, err := f.repos.Users.FindByEmail(f.ctx, "ada@example.com")
	require.NoError(t, err)

	list := u.Addresses
	for i := 0; i < extra; i++ {
		list, err = f.svc.Addresses.Add(f.ctx, u.ID, addressInput("line"))
		require.NoError(t, err)
	}
	return u.ID, list
}

func TestAddedAddressIsNeverDefault(t *testing.T) {
	f := newFixture(t)
	_, list := userWithAddresses(t, f, 2)

	require.Len(t, list, 3)
	assert.True(t, list[0].Default)
	assert.False(t, list[1].Default)
	assert.False(t, list[2].Default)
}

func TestSetPrimaryLeavesExactlyOneDefault(t *testing.T) {
	f := newFixture(t)
	uid, list := userWithAddresses(t, f, 2)

	list, err := f.svc.Addresses.SetPrimary(f.ctx, uid, list[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, defaults(list))
	assert.True(t, list[1].Default)

	list, err = f.svc.Addresses.SetPrimary(f.ctx, uid, list[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, defaults(list))
	assert.True(t, list[2].Default)

	stored, err := f.svc.Addresses.List(f.ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 1, defaults(stored))
}

func TestConcurrentSetPrimaryLeavesOneDefault(t *testing.T) {
	f := newFixture(t)
	uid, list := userWithAddresses(t, f, 7)
	require.Len(t, list, 8)

	errs := make([]error, len(list))
	var wg sync.WaitGroup
	for i, a := range list {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.svc.Addresses.SetPrimary(f.ctx, uid, a.ID)
		}()
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		assert.Equal(t, http.StatusConflict, apperr.Code(err))
	}
	assert.GreaterOrEqual(t, won, 1)

	final, err := f.svc.Addresses.List(f.ctx, uid)
	require.NoError(t, err)
	assert.Len(t, final, 8)
	assert.Equal(t, 1, defaults(final))
}

func TestSetPrimaryGivesUpAfterRepeatedConflicts(t *testing.T) {
	f := newFixture(t)
	uid, list := userWithAddresses(t, f, 1)
	users := &conflictingUsers{UserRepository: f.repos.Users}
	addresses := services.NewAddressService(users)

	_, err := addresses.SetPrimary(f.ctx, uid, list[1].ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.Code(err))
	assert.Equal(t, 3, users.saves)

	stored, err := f.svc.Addresses.List(f.ctx, uid)
	require.NoError(t, err)
	assert.True(t, stored[0].Default)
	assert.False(t, stored[1].Default)
}

func TestSetPrimaryUnknownAddress(t *testing.T) {
	f := newFixture(t)
	uid, _ := userWithAddresses(t, f, 0)

	_, err := f.svc.Addresses.SetPrimary(f.ctx, uid, primitive.NewObjectID())
	assert.Equal(t, http.StatusNotFound, apperr.Code(err))
}

func TestDeleteAddress(t *testing.T) {
	f := newFixture(t)
	uid, list := userWithAddresses(t, f, 1)

	_, err := f.svc.Addresses.Delete(f.ctx, uid, list[0].ID)
	assert.Equal(t, http.StatusConflict, apperr.Code(err))

	after, err := f.svc.Addresses.Delete(f.ctx, uid, list[1].ID)
	require.NoError(t, err)
	assert.Len(t, after, len(list)-1)

	_, err = f.svc.Addresses.Delete(f.ctx, uid, list[1].ID)
	assert.Equal(t, http.StatusNotFound, apperr.Code(err))
}

func TestUpdateAddressKeepsDefaultFlag(t *testing.T) {
	f := newFixture(t)
	uid, list := userWithAddresses(t, f, 0)

	updated, err := f.svc.Addresses.Update(f.ctx, uid, list[0].ID, addressInput("221B Baker Street"))
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.True(t, updated[0].Default)
	assert.Equal(t, list[0].ID, updated[0].ID)
	assert.Equal(t, "221B Baker Street", updated[0].Address1)
}
