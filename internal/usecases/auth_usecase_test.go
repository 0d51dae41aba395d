package usecases_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/internal/infrastructure/memory"
	"wardrobe.backend/internal/usecases"
	"wardrobe.backend/pkg/crypto"
	"wardrobe.backend/pkg/jwt"
	redispkg "wardrobe.backend/pkg/redis"
)

const testSessionKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

type authFixture struct {
	uc       *usecases.AuthUsecase
	store    *memory.Store
	notifier *MockNotifier
	codes    *redispkg.CodeStore
	mr       *miniredis.Miniredis
}

func newAuthUsecaseForTest(t *testing.T) *authFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := redispkg.Connect("redis://"+mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sessions, err := redispkg.NewSessionStore(client, testSessionKey)
	require.NoError(t, err)
	codes := redispkg.NewCodeStore(client, "password_reset")

	store := memory.NewStore()
	notifier := new(MockNotifier)
	uc := usecases.NewAuthUsecase(store, sessions, codes,
		jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour),
		notifier,
		usecases.AuthOptions{SessionTTL: time.Hour, ResetTTL: 30 * time.Minute},
	)
	return &authFixture{uc: uc, store: store, notifier: notifier, codes: codes, mr: mr}
}

func TestAuthUsecase_LoginAndAuthenticate(t *testing.T) {
	f := newAuthUsecaseForTest(t)
	ctx := context.Background()
	user := seedUser(t, f.store, "ann@shop.test", "Password123!")

	resp, err := f.uc.Login(ctx, &entities.LoginInput{Email: "ANN@shop.test", Password: "Password123!"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.SessionID)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.True(t, f.mr.Exists("session:"+resp.SessionID))
	assert.Equal(t, time.Hour, f.mr.TTL("session:"+resp.SessionID))

	me, err := f.uc.Authenticate(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)

	require.NoError(t, f.uc.Logout(ctx, resp.SessionID))
	_, err = f.uc.Authenticate(ctx, resp.SessionID)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	require.NoError(t, f.uc.Logout(ctx, ""))
	_, err = f.uc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthUsecase_Login_InvalidCredentialCases(t *testing.T) {
	f := newAuthUsecaseForTest(t)
	ctx := context.Background()
	seedUser(t, f.store, "ann@shop.test", "Password123!")

	_, err := f.uc.Login(ctx, &entities.LoginInput{Email: "missing@shop.test", Password: "whatever"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = f.uc.Login(ctx, &entities.LoginInput{Email: "ann@shop.test", Password: "wrong-password"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthUsecase_SuspendedUser(t *testing.T) {
	f := newAuthUsecaseForTest(t)
	ctx := context.Background()
	user := seedUser(t, f.store, "ann@shop.test", "Password123!")

	resp, err := f.uc.Login(ctx, &entities.LoginInput{Email: "ann@shop.test", Password: "Password123!"})
	require.NoError(t, err)

	suspended := true
	_, err = f.store.Users().Update(ctx, user.ID, entities.UserUpdate{IsSuspended: &suspended})
	require.NoError(t, err)

	_, err = f.uc.Authenticate(ctx, resp.SessionID)
	assert.ErrorIs(t, err, domainerrors.ErrAccountSuspended)
	assert.False(t, f.mr.Exists("session:"+resp.SessionID), "session is dropped")

	_, err = f.uc.Login(ctx, &entities.LoginInput{Email: "ann@shop.test", Password: "Password123!"})
	assert.ErrorIs(t, err, domainerrors.ErrAccountSuspended)
}

func TestAuthUsecase_Authenticate_TamperedSession(t *testing.T) {
	f := newAuthUsecaseForTest(t)
	ctx := context.Background()
	seedUser(t, f.store, "ann@shop.test", "Password123!")

	resp, err := f.uc.Login(ctx, &entities.LoginInput{Email: "ann@shop.test", Password: "Password123!"})
	require.NoError(t, err)

	// the stored payload under another id does not validate
	raw, err := f.mr.Get("session:" + resp.SessionID)
	require.NoError(t, err)
	require.NoError(t, f.mr.Set("session:copied", raw))
	_, err = f.uc.Authenticate(ctx, "copied")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

var resetCodePattern = regexp.MustCompile(`[A-Z0-9]{6}`)

func TestAuthUsecase_ForgotAndResetPassword(t *testing.T) {
	f := newAuthUsecaseForTest(t)
	ctx := context.Background()
	user := seedUser(t, f.store, "ann@shop.test", "Password123!")

	var sent entities.Notification
	f.notifier.On("Send", ctx, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(entities.Notification)
	}).Return(nil).Once()

	require.NoError(t, f.uc.ForgotPassword(ctx, "Ann@shop.test"))
	code, err := f.codes.Get(ctx, "ann@shop.test")
	require.NoError(t, err)
	assert.Regexp(t, resetCodePattern, code)
	assert.Contains(t, sent.Body, code)
	assert.Empty(t, sent.Mobile)
	assert.Equal(t, 30*time.Minute, f.mr.TTL("password_reset:ann@shop.test"))

	err = f.uc.ResetPassword(ctx, &entities.ResetPasswordInput{Email: "ann@shop.test", Token: "XXXXXX", Password: "NewPassword1!", ConfirmPassword: "NewPassword1!"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCode)

	err = f.uc.ResetPassword(ctx, &entities.ResetPasswordInput{Email: "ann@shop.test", Token: code, Password: "NewPassword1!", ConfirmPassword: "nope"})
	assert.ErrorIs(t, err, domainerrors.ErrPasswordMismatch)

	require.NoError(t, f.uc.ResetPassword(ctx, &entities.ResetPasswordInput{Email: "ann@shop.test", Token: code, Password: "NewPassword1!", ConfirmPassword: "NewPassword1!"}))

	updated, err := f.store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, crypto.CheckPassword("NewPassword1!", updated.PasswordHash))

	err = f.uc.ResetPassword(ctx, &entities.ResetPasswordInput{Email: "ann@shop.test", Token: code, Password: "Again12345", ConfirmPassword: "Again12345"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCode, "codes are single use")
}

func TestAuthUsecase_ForgotPassword_UnknownEmailAndSMS(t *testing.T) {
	f := newAuthUsecaseForTest(t)
	ctx := context.Background()

	require.NoError(t, f.uc.ForgotPassword(ctx, "ghost@shop.test"))
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	assert.ErrorIs(t, f.uc.ForgotPassword(ctx, "bad"), domainerrors.ErrInvalidInput)

	user := seedUser(t, f.store, "bob@shop.test", "Password123!")
	mobile := null.StringFrom("+15550100")
	_, err := f.store.Users().Update(ctx, user.ID, entities.UserUpdate{Mobile: &mobile})
	require.NoError(t, err)
	pref := entities.DefaultPreference(user.ID)
	pref.SMSNotifications = true
	require.NoError(t, f.store.Preferences().Upsert(ctx, pref))

	f.notifier.On("Send", ctx, mock.MatchedBy(func(n entities.Notification) bool {
		return n.Email == "bob@shop.test" && n.Mobile == "+15550100"
	})).Return(nil).Once()
	require.NoError(t, f.uc.ForgotPassword(ctx, "bob@shop.test"))
	f.notifier.AssertExpectations(t)
}

func TestAuthUsecase_ChangePassword(t *testing.T) {
	f := newAuthUsecaseForTest(t)
	ctx := context.Background()
	user := seedUser(t, f.store, "ann@shop.test", "Password123!")

	err := f.uc.ChangePassword(ctx, user.ID, &entities.ChangePasswordInput{CurrentPassword: "wrong", NewPassword: "NewPassword1!"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	require.NoError(t, f.uc.ChangePassword(ctx, user.ID, &entities.ChangePasswordInput{CurrentPassword: "Password123!", NewPassword: "NewPassword1!"}))
	_, err = f.uc.Login(ctx, &entities.LoginInput{Email: "ann@shop.test", Password: "NewPassword1!"})
	require.NoError(t, err)
}
