package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendlink/attendlink/internal/app/models"
	"github.com/attendlink/attendlink/internal/app/models/dto"
	"github.com/attendlink/attendlink/internal/pkg/apperrors"
	"github.com/attendlink/attendlink/internal/pkg/auth"
)

type authFixture struct {
	svc      *AuthService
	users    *fakeUserStore
	students *fakeStudentStore
	faculty  *fakeFacultyStore
	settings *fakeSettingsStore
	tokens   *fakeResetTokenStore
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newFakeUserStore(),
		students: &fakeStudentStore{},
		faculty:  &fakeFacultyStore{},
		settings: newFakeSettingsStore(),
		tokens:   newFakeResetTokenStore(),
	}
	f.svc = NewAuthService(fakeTxRunner{}, f.users, f.students, f.faculty,
		f.settings, f.tokens, fakeTokenIssuer{}, 30*time.Minute)
	return f
}

func registerRequest(role string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:    "jordan@college.edu",
		Password: "sup3rsecret",
		FullName: "Jordan Lee",
		Role:     role,
	}
}

func TestRegisterStudentCreatesProfileAndSettings(t *testing.T) {
	f := newAuthFixture()

	user, err := f.svc.Register(context.Background(), registerRequest("student"))
	require.NoError(t, err)

	assert.Equal(t, models.RoleStudent, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "sup3rsecret", user.PasswordHash)

	require.Len(t, f.students.students, 1)
	student := f.students.students[0]
	assert.Equal(t, user.ID, student.UserID)
	assert.Equal(t, "STU"+profileSuffix(user.ID), student.RollNumber)
	assert.Equal(t, "Not Set", student.Department)
	assert.Equal(t, 1, student.Semester)
	assert.Equal(t, time.Now().Year(), student.BatchYear)

	enabled, ok := f.settings.enabled[user.ID]
	assert.True(t, ok)
	assert.True(t, enabled)
}

func TestRegisterFacultyDerivesEmployeeID(t *testing.T) {
	f := newAuthFixture()

	user, err := f.svc.Register(context.Background(), registerRequest("faculty"))
	require.NoError(t, err)

	require.Len(t, f.faculty.faculty, 1)
	faculty := f.faculty.faculty[0]
	assert.Equal(t, "FAC"+profileSuffix(user.ID), faculty.EmployeeID)
	assert.Equal(t, "Lecturer", faculty.Designation)
	assert.Empty(t, f.students.students)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Register(context.Background(), registerRequest("student"))
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), registerRequest("faculty"))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterUnknownRole(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Register(context.Background(), registerRequest("dean"))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestProfileSuffixShape(t *testing.T) {
	f := newAuthFixture()

	user, err := f.svc.Register(context.Background(), registerRequest("student"))
	require.NoError(t, err)

	suffix := profileSuffix(user.ID)
	assert.Len(t, suffix, 8)
	assert.Equal(t, suffix, profileSuffix(user.ID), "suffix must be stable")
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), registerRequest("student"))
	require.NoError(t, err)

	resp, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jordan@college.edu",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-jordan@college.edu", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), registerRequest("student"))
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jordan@college.edu",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailMapsToInvalidCredentials(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@college.edu",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	f := newAuthFixture()
	user, err := f.svc.Register(context.Background(), registerRequest("student"))
	require.NoError(t, err)
	f.users.users[user.ID].IsActive = false

	_, err = f.svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jordan@college.edu",
		Password: "sup3rsecret",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestMeAttachesStudentProfile(t *testing.T) {
	f := newAuthFixture()
	user, err := f.svc.Register(context.Background(), registerRequest("student"))
	require.NoError(t, err)

	resp, err := f.svc.Me(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, resp.User.ID)
	require.NotNil(t, resp.Student)
	assert.Equal(t, "STU"+profileSuffix(user.ID), resp.Student.RollNumber)
	assert.Nil(t, resp.Faculty)
}

func TestForgotPasswordUnknownEmailStaysSilent(t *testing.T) {
	f := newAuthFixture()

	token, err := f.svc.ForgotPassword(context.Background(), "nobody@college.edu")
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, f.tokens.tokens)
}

func TestResetPasswordFlow(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), registerRequest("student"))
	require.NoError(t, err)

	token, err := f.svc.ForgotPassword(context.Background(), "jordan@college.edu")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, f.svc.ResetPassword(context.Background(), token, "newpassword1"))

	// Old password no longer works, new one does
	_, err = f.svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jordan@college.edu",
		Password: "sup3rsecret",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "jordan@college.edu",
		Password: "newpassword1",
	})
	assert.NoError(t, err)
}

func TestResetPasswordTokenSingleUse(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), registerRequest("student"))
	require.NoError(t, err)

	token, err := f.svc.ForgotPassword(context.Background(), "jordan@college.edu")
	require.NoError(t, err)

	require.NoError(t, f.svc.ResetPassword(context.Background(), token, "newpassword1"))

	err = f.svc.ResetPassword(context.Background(), token, "anotherpassword")
	assert.ErrorIs(t, err, apperrors.ErrResetTokenUsed)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Register(context.Background(), registerRequest("student"))
	require.NoError(t, err)

	token, err := f.svc.ForgotPassword(context.Background(), "jordan@college.edu")
	require.NoError(t, err)
	f.tokens.tokens[token].ExpiresAt = time.Now().Add(-time.Minute)

	err = f.svc.ResetPassword(context.Background(), token, "newpassword1")
	assert.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	f := newAuthFixture()

	err := f.svc.ResetPassword(context.Background(), "no-such-token", "newpassword1")
	assert.ErrorIs(t, err, apperrors.ErrResetTokenInvalid)
}

func TestRegisterHashesPasswordWithBcrypt(t *testing.T) {
	f := newAuthFixture()
	user, err := f.svc.Register(context.Background(), registerRequest("student"))
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(user.PasswordHash, "sup3rsecret"))
}
