package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/kendall-kelly/snapfix-api/models"
	"gorm.io/gorm"
)

// OTP verification failures, each reported to the client with its own code
var (
	ErrOTPNotFound = errors.New("no valid OTP found for this phone number")
	ErrOTPMismatch = errors.New("invalid OTP code")
	ErrOTPExpired  = errors.New("OTP has expired")
)

// OTPService issues and verifies one-time codes against a single OTP table.
// Users and employees each get their own table.
type OTPService struct {
	db    *gorm.DB
	table string
	ttl   time.Duration
	now   func() time.Time
}

// NewOTPService creates an OTP service backed by the given table
func NewOTPService(db *gorm.DB, table string, ttl time.Duration) *OTPService {
	return &OTPService{
		db:    db,
		table: table,
		ttl:   ttl,
		now:   time.Now,
	}
}

// NewUserOTPService creates the OTP service for customer logins
func NewUserOTPService(db *gorm.DB, ttl time.Duration) *OTPService {
	return NewOTPService(db, models.OtpVerification{}.TableName(), ttl)
}

// NewEmployeeOTPService creates the OTP service for employee logins
func NewEmployeeOTPService(db *gorm.DB, ttl time.Duration) *OTPService {
	return NewOTPService(db, models.EmployeeOtpVerification{}.TableName(), ttl)
}

// WithClock overrides the time source (primarily for testing)
func (s *OTPService) WithClock(now func() time.Time) *OTPService {
	s.now = now
	return s
}

// GenerateOTPCode returns a uniformly random code in [100000, 999999]
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Generate stores a fresh code for phone that expires after the service TTL
func (s *OTPService) Generate(ctx context.Context, phone string) (*models.OtpVerification, error) {
	code, err := GenerateOTPCode()
	if err != nil {
		return nil, err
	}

	issuedAt := s.now()
	record := &models.OtpVerification{
		PhoneNumber: phone,
		OtpCode:     code,
		ExpiresAt:   models.Timestamp(issuedAt.Add(s.ttl)),
		IsVerified:  false,
		CreatedAt:   models.Timestamp(issuedAt),
	}

	if err := s.db.WithContext(ctx).Table(s.table).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}
	return record, nil
}

// Verify checks code against the newest unverified record for phone and marks
// that record verified on success. Older or already verified records are never
// considered.
func (s *OTPService) Verify(ctx context.Context, phone, code string) error {
	db := s.db.WithContext(ctx)

	var record models.OtpVerification
	err := db.Table(s.table).
		Where("phone_number = ? AND is_verified = ?", phone, false).
		Order("created_at DESC").
		Order("id DESC").
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up OTP: %w", err)
	}

	if record.OtpCode != code {
		return ErrOTPMismatch
	}

	expiresAt, err := models.ParseTimestamp(record.ExpiresAt)
	if err != nil {
		return fmt.Errorf("corrupt OTP expiry %q: %w", record.ExpiresAt, err)
	}
	if s.now().After(expiresAt) {
		return ErrOTPExpired
	}

	if err := db.Table(s.table).Where("id = ?", record.ID).Update("is_verified", true).Error; err != nil {
		return fmt.Errorf("failed to mark OTP verified: %w", err)
	}
	return nil
}
