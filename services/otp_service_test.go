package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/kendall-kelly/snapfix-api/models"
	"github.com/kendall-kelly/snapfix-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestOTPGenerateStoresRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	issued := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := NewUserOTPService(db, 5*time.Minute).WithClock(func() time.Time { return issued })

	record, err := svc.Generate(context.Background(), "9876543210")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01T10:05:00.000Z", record.ExpiresAt)
	assert.Equal(t, "2025-06-01T10:00:00.000Z", record.CreatedAt)
	assert.False(t, record.IsVerified)

	var stored models.OtpVerification
	require.NoError(t, db.First(&stored, record.ID).Error)
	assert.Equal(t, record.OtpCode, stored.OtpCode)
}

func TestOTPVerifySucceedsOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewUserOTPService(db, 5*time.Minute)
	ctx := context.Background()

	record, err := svc.Generate(ctx, "9876543210")
	require.NoError(t, err)

	require.NoError(t, svc.Verify(ctx, "9876543210", record.OtpCode))
	assert.ErrorIs(t, svc.Verify(ctx, "9876543210", record.OtpCode), ErrOTPNotFound)
}

func TestOTPVerifyFailures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	issued := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := NewUserOTPService(db, 5*time.Minute).WithClock(func() time.Time { return issued })

	record, err := svc.Generate(ctx, "9000000001")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Verify(ctx, "9000000002", record.OtpCode), ErrOTPNotFound)

	wrong := "000000"
	if record.OtpCode == wrong {
		wrong = "111111"
	}
	assert.ErrorIs(t, svc.Verify(ctx, "9000000001", wrong), ErrOTPMismatch)

	svc.WithClock(func() time.Time { return issued.Add(5*time.Minute + time.Millisecond) })
	assert.ErrorIs(t, svc.Verify(ctx, "9000000001", record.OtpCode), ErrOTPExpired)
}

func TestOTPVerifyAtExactExpirySucceeds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	issued := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := NewUserOTPService(db, 5*time.Minute).WithClock(func() time.Time { return issued })

	record, err := svc.Generate(ctx, "9000000001")
	require.NoError(t, err)

	svc.WithClock(func() time.Time { return issued.Add(5 * time.Minute) })
	assert.NoError(t, svc.Verify(ctx, "9000000001", record.OtpCode))
}

func TestOTPVerifyUsesNewestRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	clock := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := NewUserOTPService(db, 5*time.Minute).WithClock(func() time.Time { return clock })

	first, err := svc.Generate(ctx, "9876543210")
	require.NoError(t, err)
	clock = clock.Add(time.Second)
	second, err := svc.Generate(ctx, "9876543210")
	require.NoError(t, err)

	if first.OtpCode != second.OtpCode {
		assert.ErrorIs(t, svc.Verify(ctx, "9876543210", first.OtpCode), ErrOTPMismatch)
	}
	assert.NoError(t, svc.Verify(ctx, "9876543210", second.OtpCode))
}

func TestEmployeeOTPTableIsIndependent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	userOTP := NewUserOTPService(db, 5*time.Minute)
	employeeOTP := NewEmployeeOTPService(db, 5*time.Minute)

	record, err := employeeOTP.Generate(ctx, "9876543210")
	require.NoError(t, err)

	assert.ErrorIs(t, userOTP.Verify(ctx, "9876543210", record.OtpCode), ErrOTPNotFound)
	assert.NoError(t, employeeOTP.Verify(ctx, "9876543210", record.OtpCode))

	var count int64
	db.Model(&models.EmployeeOtpVerification{}).Count(&count)
	assert.Equal(t, int64(1), count)
	db.Model(&models.OtpVerification{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
