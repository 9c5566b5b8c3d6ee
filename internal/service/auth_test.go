package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealdrop/internal/eventbus"
	"mealdrop/internal/service"
	"mealdrop/internal/storage"
)

func TestMerchantLogin(t *testing.T) {
	tests := []struct {
		name     string
		account  string
		password string
		wantErr  error
	}{
		{name: "valid email login", account: "merchant@example.com", password: "password"},
		{name: "valid phone login", account: "13800138001", password: "password"},
		{name: "wrong password", account: "merchant@example.com", password: "wrong", wantErr: service.ErrInvalidCredentials},
		{name: "unknown account", account: "nobody@example.com", password: "password", wantErr: service.ErrInvalidCredentials},
		{name: "password is case sensitive", account: "merchant@example.com", password: "Password", wantErr: service.ErrInvalidCredentials},
		{name: "empty password", account: "merchant@example.com", password: "", wantErr: service.ErrValidation},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, _, _ := newTestService()
			auth, err := svc.MerchantLogin(context.Background(), testCase.account, testCase.password)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, auth.Token)
			assert.Equal(t, "1", auth.Merchant.ID)
			assert.Empty(t, auth.Merchant.Password, "credential must be stripped")
		})
	}
}

func TestMerchantRegister(t *testing.T) {
	tests := []struct {
		name    string
		reg     service.MerchantRegistration
		wantErr error
	}{
		{
			name: "valid registration",
			reg:  service.MerchantRegistration{Name: "新店", Account: "new@example.com", Password: "secret", Contact: "13900000000"},
		},
		{
			name:    "duplicate email",
			reg:     service.MerchantRegistration{Name: "X", Account: "merchant@example.com", Password: "p", Contact: "c"},
			wantErr: service.ErrDuplicateAccount,
		},
		{
			name:    "duplicate phone",
			reg:     service.MerchantRegistration{Name: "X", Account: "13800138001", Password: "p", Contact: "c"},
			wantErr: service.ErrDuplicateAccount,
		},
		{
			name:    "missing name",
			reg:     service.MerchantRegistration{Account: "a@b.com", Password: "p", Contact: "c"},
			wantErr: service.ErrValidation,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, bus, _ := newTestService()
			registered := record(bus, eventbus.TopicMerchantRegistered)

			auth, err := svc.MerchantRegister(context.Background(), testCase.reg)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Empty(t, registered.payloads)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, auth.Merchant.ID)
			assert.Equal(t, testCase.reg.Name, auth.Merchant.Name)
			assert.Empty(t, auth.Merchant.Password)
			assert.Len(t, registered.payloads, 1)
		})
	}
}

func TestMerchantRegister_CollectionGrowsMonotonically(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	before, err := svc.AllMerchants(ctx)
	require.NoError(t, err)

	first, err := svc.MerchantRegister(ctx, service.MerchantRegistration{
		Name: "A", Account: "a@example.com", Password: "p", Contact: "1"})
	require.NoError(t, err)
	second, err := svc.MerchantRegister(ctx, service.MerchantRegistration{
		Name: "B", Account: "b@example.com", Password: "p", Contact: "2"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Merchant.ID, second.Merchant.ID)

	after, err := svc.AllMerchants(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+2)
}

func TestCheckMerchantSession(t *testing.T) {
	t.Run("round trip after register", func(t *testing.T) {
		svc, _, _ := newTestService()
		ctx := context.Background()

		auth, err := svc.MerchantRegister(ctx, service.MerchantRegistration{
			Name: "S", Account: "s@example.com", Password: "p", Contact: "1"})
		require.NoError(t, err)

		session, err := svc.CheckMerchantSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, auth.Merchant.ID, session.Merchant.ID)
		assert.Equal(t, auth.Token, session.Token)
	})

	t.Run("no session returns nil", func(t *testing.T) {
		svc, _, _ := newTestService()
		session, err := svc.CheckMerchantSession(context.Background())
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("stale token self-heals", func(t *testing.T) {
		svc, _, store := newTestService()
		ctx := context.Background()

		// A marker that points at a principal that never existed.
		store.Save(ctx, storage.KeyMerchantSession, map[string]string{
			"token":       "stale-token",
			"principalId": "gone",
		})

		session, err := svc.CheckMerchantSession(ctx)
		require.NoError(t, err)
		assert.Nil(t, session)

		// The stale marker must be gone too.
		var leftover map[string]string
		assert.False(t, store.Load(ctx, storage.KeyMerchantSession, &leftover))
	})
}

func TestMerchantLogout_Idempotent(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.MerchantLogin(ctx, "merchant@example.com", "password")
	require.NoError(t, err)

	svc.MerchantLogout(ctx)
	svc.MerchantLogout(ctx) // already logged out, still fine

	session, err := svc.CheckMerchantSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestUserAuth(t *testing.T) {
	svc, bus, _ := newTestService()
	ctx := context.Background()
	registered := record(bus, eventbus.TopicUserRegistered)

	auth, err := svc.UserLogin(ctx, "zhangsan@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, "user1", auth.User.ID)
	assert.Empty(t, auth.User.Password)

	_, err = svc.UserRegister(ctx, service.UserRegistration{
		Username: "李四", Email: "zhangsan@example.com", Password: "p"})
	assert.ErrorIs(t, err, service.ErrDuplicateAccount)

	fresh, err := svc.UserRegister(ctx, service.UserRegistration{
		Username: "李四", Email: "lisi@example.com", Password: "p"})
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.User.ID)
	assert.Len(t, registered.payloads, 1)

	session, err := svc.CheckUserSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, fresh.User.ID, session.User.ID)

	svc.UserLogout(ctx)
	session, err = svc.CheckUserSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}
