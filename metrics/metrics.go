package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const prefix = "snapfix"

// OTP audiences
const (
	AudienceUser     = "user"
	AudienceEmployee = "employee"
)

// OTP verification outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeMismatch = "mismatch"
	OutcomeExpired  = "expired"
	OutcomeError    = "error"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// OTP metrics
	OTPGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_otp_generated_total",
			Help: "Total number of OTP codes issued",
		},
		[]string{"audience"},
	)

	OTPVerifiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_otp_verified_total",
			Help: "Total number of OTP verification attempts by outcome",
		},
		[]string{"audience", "outcome"},
	)

	// Booking metrics
	BookingsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_bookings_created_total",
			Help: "Total number of bookings created",
		},
		[]string{"service_type"},
	)
)

// RecordOTPGenerated increments the issued-code counter for audience
func RecordOTPGenerated(audience string) {
	OTPGeneratedTotal.WithLabelValues(audience).Inc()
}

// RecordOTPVerified increments the verification counter for audience and outcome
func RecordOTPVerified(audience, outcome string) {
	OTPVerifiedTotal.WithLabelValues(audience, outcome).Inc()
}

// RecordBookingCreated increments the booking counter for serviceType
func RecordBookingCreated(serviceType string) {
	BookingsCreatedTotal.WithLabelValues(serviceType).Inc()
}
