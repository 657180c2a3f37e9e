package user_test

import (
	"context"
	"testing"

	"Tenure/internal/domain/user"
	appErrors "Tenure/internal/errors"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeRepository só implementa o que o Service usa; o resto entra em pânico via interface nil.
type fakeRepository struct {
	user.Repository
	users        map[ulid.ULID]*user.User
	deviceTokens map[ulid.ULID]string
}

func newFakeRepository(users ...*user.User) *fakeRepository {
	r := &fakeRepository{users: map[ulid.ULID]*user.User{}, deviceTokens: map[ulid.ULID]string{}}
	for _, u := range users {
		r.users[u.Id] = u
	}
	return r
}

func (r *fakeRepository) Create(_ context.Context, u *user.User) error {
	r.users[u.Id] = u
	return nil
}

func (r *fakeRepository) Update(_ context.Context, u *user.User) error {
	if _, ok := r.users[u.Id]; !ok {
		return appErrors.ErrUserNotFound
	}
	r.users[u.Id] = u
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id ulid.ULID) (*user.User, error) {
	if u, ok := r.users[id]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, appErrors.ErrUserNotFound
}

func (r *fakeRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, appErrors.ErrUserNotFound
}

func (r *fakeRepository) UpdateDeviceToken(_ context.Context, id ulid.ULID, token string) error {
	if _, ok := r.users[id]; !ok {
		return appErrors.ErrUserNotFound
	}
	r.deviceTokens[id] = token
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreateHashesPasswordAndNormalizesEmail(t *testing.T) {
	repo := newFakeRepository()
	svc := user.NewService(repo)

	u := &user.User{Email: "  Ana@Tenure.TEST ", Password: "Senha@123"}
	require.NoError(t, svc.Create(context.Background(), u))

	stored := repo.users[u.Id]
	require.NotNil(t, stored)
	assert.Equal(t, "ana@tenure.test", stored.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("Senha@123")))
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestUpdateProfile(t *testing.T) {
	ana := &user.User{Id: ulid.Make(), Name: "Ana", Email: "ana@tenure.test"}
	beto := &user.User{Id: ulid.Make(), Name: "Beto", Email: "beto@tenure.test"}

	tests := []struct {
		name    string
		req     user.UpdateProfileRequest
		wantErr *appErrors.AppError
		check   func(t *testing.T, got *user.User)
	}{
		{
			name: "updates fields",
			req:  user.UpdateProfileRequest{Name: strPtr(" Ana Lima "), Location: strPtr(" Recife ")},
			check: func(t *testing.T, got *user.User) {
				assert.Equal(t, "Ana Lima", got.Name)
				assert.Equal(t, "Recife", got.Location)
			},
		},
		{
			name: "keeps own email",
			req:  user.UpdateProfileRequest{Email: strPtr("ANA@tenure.test")},
			check: func(t *testing.T, got *user.User) {
				assert.Equal(t, "ana@tenure.test", got.Email)
			},
		},
		{
			name:    "email of another user",
			req:     user.UpdateProfileRequest{Email: strPtr("beto@tenure.test")},
			wantErr: appErrors.ErrEmailAlreadyExists,
		},
		{
			name:    "blank name",
			req:     user.UpdateProfileRequest{Name: strPtr("   ")},
			wantErr: appErrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := *ana, *beto
			svc := user.NewService(newFakeRepository(&a, &b))

			got, err := svc.UpdateProfile(context.Background(), ana.Id, tt.req)
			if tt.wantErr != nil {
				appErr, ok := appErrors.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantErr.Code, appErr.Code)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestUpdatePassword(t *testing.T) {
	hash, err := user.HashPassword("Antiga@123")
	require.NoError(t, err)
	u := &user.User{Id: ulid.Make(), Email: "ana@tenure.test", Password: hash}
	repo := newFakeRepository(u)
	svc := user.NewService(repo)

	err = svc.UpdatePassword(context.Background(), u.Id, "errada", "Nova@1234")
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	err = svc.UpdatePassword(context.Background(), u.Id, "Antiga@123", "fraca")
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	require.NoError(t, svc.UpdatePassword(context.Background(), u.Id, "Antiga@123", "Nova@1234"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[u.Id].Password), []byte("Nova@1234")))
}

func TestValidatePasswordRequirements(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Curta@1", false},
		{"semmaiuscula@1", false},
		{"SemEspecial123", false},
		{"Valida@123", true},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := user.ValidatePasswordRequirements(tt.password)
			assert.Equal(t, tt.valid, err == nil)
		})
	}
}

func TestRegisterDeviceToken(t *testing.T) {
	u := &user.User{Id: ulid.Make()}
	repo := newFakeRepository(u)
	svc := user.NewService(repo)

	assert.ErrorIs(t, svc.RegisterDeviceToken(context.Background(), u.Id, "  "), appErrors.ErrValidation)

	require.NoError(t, svc.RegisterDeviceToken(context.Background(), u.Id, " ExponentPushToken[x] "))
	assert.Equal(t, "ExponentPushToken[x]", repo.deviceTokens[u.Id])
}

func TestRoles(t *testing.T) {
	company := ulid.Make()
	other := ulid.Make()
	owner := &user.User{CompanyId: &company, CompanyRole: user.RoleOwner}
	employee := &user.User{CompanyId: &company, CompanyRole: user.RoleEmployee}
	outsider := &user.User{CompanyId: &other, CompanyRole: user.RoleEmployee}
	loner := &user.User{CompanyRole: user.RoleOwner}

	assert.True(t, owner.IsOwner())
	assert.False(t, loner.IsOwner())
	assert.True(t, employee.IsEmployee())
	assert.True(t, owner.SameCompany(employee))
	assert.False(t, owner.SameCompany(outsider))
	assert.False(t, loner.SameCompany(owner))
	assert.False(t, user.CompanyRole("Admin").IsValid())
}
