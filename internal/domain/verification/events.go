package verification

import (
	"github.com/cunyswap/cunyswap-backend/internal/domain/event"
)

const EventStreamName = "events_verification"

type VerificationRequested struct {
	event.Header
	event.Otel
	VerificationID ID     `json:"verification_id"`
	Email          string `json:"email"`
	Code           string `json:"code"`
}

func (e VerificationRequested) GetStreamName() string {
	return EventStreamName
}

type VerificationCodeResent struct {
	event.Header
	event.Otel
	VerificationID ID     `json:"verification_id"`
	Email          string `json:"email"`
	Code           string `json:"code"`
}

func (e VerificationCodeResent) GetStreamName() string {
	return EventStreamName
}

type EmailVerified struct {
	event.Header
	event.Otel
	VerificationID ID     `json:"verification_id"`
	Email          string `json:"email"`
}

func (e EmailVerified) GetStreamName() string {
	return EventStreamName
}
