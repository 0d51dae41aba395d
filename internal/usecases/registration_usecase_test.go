package usecases_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/internal/infrastructure/memory"
	"wardrobe.backend/internal/usecases"
	"wardrobe.backend/pkg/crypto"
	"wardrobe.backend/pkg/metrics"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func newRegistrationForTest(t *testing.T, devFallback bool) (*usecases.RegistrationUsecase, *memory.Store, *MockNotifier, *fakeClock) {
	t.Helper()
	store := memory.NewStore()
	notifier := new(MockNotifier)
	clock := &fakeClock{now: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	uc := usecases.NewRegistrationUsecase(store, notifier, metrics.New(), 30*time.Minute, devFallback)
	uc.SetClock(clock.Now)
	return uc, store, notifier, clock
}

func pendingCode(t *testing.T, store *memory.Store, email string) string {
	t.Helper()
	pending, err := store.PendingRegistrations().GetByEmail(context.Background(), email)
	require.NoError(t, err)
	return pending.Code
}

func TestRegistration_InitThenVerify(t *testing.T) {
	uc, store, notifier, _ := newRegistrationForTest(t, false)
	ctx := context.Background()

	var sent entities.Notification
	notifier.On("Send", ctx, mock.AnythingOfType("entities.Notification")).Run(func(args mock.Arguments) {
		sent = args.Get(1).(entities.Notification)
	}).Return(nil).Once()

	require.NoError(t, uc.Init(ctx, "  Ann@Shop.test "))
	notifier.AssertExpectations(t)

	code := pendingCode(t, store, "ann@shop.test")
	assert.Regexp(t, codePattern, code)
	assert.Equal(t, "ann@shop.test", sent.Email)
	assert.Contains(t, sent.Body, code)

	ok, err := uc.Verify(ctx, "ann@shop.test", code)
	require.NoError(t, err)
	assert.True(t, ok)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	ok, err = uc.Verify(ctx, "ann@shop.test", wrong)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = uc.Verify(ctx, "nobody@shop.test", code)
	require.NoError(t, err)
	assert.False(t, ok)

	// verify never consumes the pending record
	assert.Equal(t, code, pendingCode(t, store, "ann@shop.test"))
}

func TestRegistration_VerifyExpiryBoundary(t *testing.T) {
	uc, store, notifier, clock := newRegistrationForTest(t, false)
	ctx := context.Background()
	notifier.On("Send", ctx, mock.Anything).Return(nil)

	require.NoError(t, uc.Init(ctx, "ann@shop.test"))
	code := pendingCode(t, store, "ann@shop.test")

	clock.Advance(30 * time.Minute)
	ok, err := uc.Verify(ctx, "ann@shop.test", code)
	require.NoError(t, err)
	assert.True(t, ok, "valid at exactly the expiry instant")

	clock.Advance(time.Millisecond)
	ok, err = uc.Verify(ctx, "ann@shop.test", code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegistration_InitResendOverwritesCode(t *testing.T) {
	uc, store, notifier, clock := newRegistrationForTest(t, false)
	ctx := context.Background()
	notifier.On("Send", ctx, mock.Anything).Return(nil).Twice()

	require.NoError(t, uc.Init(ctx, "ann@shop.test"))
	first, err := store.PendingRegistrations().GetByEmail(ctx, "ann@shop.test")
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)
	require.NoError(t, uc.Init(ctx, "ann@shop.test"))
	second, err := store.PendingRegistrations().GetByEmail(ctx, "ann@shop.test")
	require.NoError(t, err)

	assert.Equal(t, first.ExpiresAt.Add(10*time.Minute), second.ExpiresAt)
	notifier.AssertExpectations(t)
}

func TestRegistration_InitRejections(t *testing.T) {
	uc, store, notifier, _ := newRegistrationForTest(t, false)
	ctx := context.Background()

	assert.ErrorIs(t, uc.Init(ctx, "not-an-email"), domainerrors.ErrInvalidInput)
	assert.ErrorIs(t, uc.Init(ctx, "Ann <ann@shop.test>"), domainerrors.ErrInvalidInput)

	seedUser(t, store, "taken@shop.test", "Password123!")
	assert.ErrorIs(t, uc.Init(ctx, "TAKEN@shop.test"), domainerrors.ErrAlreadyExists)

	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestRegistration_InitDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	deliveryErr := &domainerrors.DeliveryError{Channels: []string{"email"}, Err: errors.New("smtp refused")}

	uc, store, notifier, _ := newRegistrationForTest(t, false)
	notifier.On("Send", ctx, mock.Anything).Return(deliveryErr).Once()

	err := uc.Init(ctx, "ann@shop.test")
	require.ErrorIs(t, err, domainerrors.ErrDeliveryFailed)
	// the pending record stays so a resend can replace it
	_, err = store.PendingRegistrations().GetByEmail(ctx, "ann@shop.test")
	require.NoError(t, err)

	devUC, _, devNotifier, _ := newRegistrationForTest(t, true)
	devNotifier.On("Send", ctx, mock.Anything).Return(deliveryErr).Once()
	require.NoError(t, devUC.Init(ctx, "ann@shop.test"))
}

func TestRegistration_Complete(t *testing.T) {
	uc, store, notifier, _ := newRegistrationForTest(t, false)
	ctx := context.Background()
	notifier.On("Send", ctx, mock.Anything).Return(nil)

	require.NoError(t, uc.Init(ctx, "ann@shop.test"))

	input := &entities.RegisterCompleteInput{Email: "ann@shop.test", Password: "Password123!", ConfirmPassword: "Password123!"}
	user, err := uc.Complete(ctx, input)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.False(t, user.IsAdmin)
	assert.True(t, crypto.CheckPassword("Password123!", user.PasswordHash))

	_, err = store.PendingRegistrations().GetByEmail(ctx, "ann@shop.test")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	pref, err := store.Preferences().GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "USD", pref.Currency)

	_, err = uc.Complete(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRegistration_CompleteRejections(t *testing.T) {
	uc, store, notifier, clock := newRegistrationForTest(t, false)
	ctx := context.Background()
	notifier.On("Send", ctx, mock.Anything).Return(nil)

	_, err := uc.Complete(ctx, &entities.RegisterCompleteInput{Email: "ann@shop.test", Password: "Password123!", ConfirmPassword: "Password123?"})
	assert.ErrorIs(t, err, domainerrors.ErrPasswordMismatch)

	_, err = uc.Complete(ctx, &entities.RegisterCompleteInput{Email: "ghost@shop.test", Password: "Password123!", ConfirmPassword: "Password123!"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	require.NoError(t, uc.Init(ctx, "late@shop.test"))
	clock.Advance(31 * time.Minute)
	_, err = uc.Complete(ctx, &entities.RegisterCompleteInput{Email: "late@shop.test", Password: "Password123!", ConfirmPassword: "Password123!"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = store.Users().GetByEmail(ctx, "late@shop.test")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
