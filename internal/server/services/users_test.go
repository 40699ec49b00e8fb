package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/server/auth"
	"github.com/dmitrijs2005/docflow/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	passwordCost = bcrypt.MinCost
}

func TestRegister_HashesPassword(t *testing.T) {
	e := newEnv(t)

	u, err := e.users.Register(context.Background(), " Ann ", "Ann@Example.com", "correct horse", models.RoleSigner)
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.Equal(t, models.RoleSigner, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, []byte("correct horse"), u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(u.PasswordHash, []byte("correct horse")))
}

func TestRegister_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tests := []struct {
		name, uname, email, password string
		role                         models.Role
	}{
		{name: "no name", uname: "", email: "a@b.c", password: "12345678", role: models.RoleEmployee},
		{name: "bad email", uname: "a", email: "nope", password: "12345678", role: models.RoleEmployee},
		{name: "short password", uname: "a", email: "a@b.c", password: "short", role: models.RoleEmployee},
		{name: "unknown role", uname: "a", email: "a@b.c", password: "12345678", role: "JANITOR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.users.Register(ctx, tt.uname, tt.email, tt.password, tt.role)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.users.Register(ctx, "a", "dup@example.com", "12345678", models.RoleEmployee)
	require.NoError(t, err)

	_, err = e.users.Register(ctx, "b", "dup@example.com", "12345678", models.RoleEmployee)
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u, err := e.users.Register(ctx, "Sam", "sam@example.com", "s3cret-pass", models.RoleSupervisor)
	require.NoError(t, err)

	token, got, err := e.users.Login(ctx, "SAM@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	p, err := auth.ParseToken(token, []byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.UserID)
	assert.Equal(t, models.RoleSupervisor, p.Role)

	_, _, err = e.users.Login(ctx, "sam@example.com", "wrong-pass")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, _, err = e.users.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	e.rm.u.byID[u.ID].IsActive = false
	_, _, err = e.users.Login(ctx, "sam@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.ErrorIs(t, err, common.ErrInactiveUser)
}

func TestMe(t *testing.T) {
	e := newEnv(t)
	e.rm.u.add("emp", models.RoleEmployee)
	e.rm.u.add("gone", models.RoleSigner)
	e.rm.u.byID["gone"].IsActive = false
	ctx := context.Background()

	u, err := e.users.Me(ctx, "emp")
	require.NoError(t, err)
	assert.Equal(t, "emp@example.com", u.Email)
	assert.Equal(t, models.RoleEmployee, u.Role)

	_, err = e.users.Me(ctx, "gone")
	assert.ErrorIs(t, err, common.ErrInactiveUser)

	_, err = e.users.Me(ctx, "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	e := newEnv(t)
	e.rm.u.add("adm", models.RoleAdmin)
	e.rm.u.add("sup", models.RoleSupervisor)
	e.rm.u.add("emp", models.RoleEmployee)
	ctx := context.Background()

	err := e.users.DeleteUser(ctx, "sup", "emp")
	assert.ErrorIs(t, err, common.ErrForbidden)

	e.rm.u.deleteErr = common.ErrUserHasDocuments
	err = e.users.DeleteUser(ctx, "adm", "emp")
	assert.ErrorIs(t, err, common.ErrUserHasDocuments)

	e.rm.u.deleteErr = nil
	require.NoError(t, e.users.DeleteUser(ctx, "adm", "emp"))
	assert.Equal(t, []string{"emp"}, e.rm.u.deleted)

	err = e.users.DeleteUser(ctx, "adm", "emp")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
