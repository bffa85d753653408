package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"go-contact-backend/internal/domain"
	"go-contact-backend/internal/session"
	"go-contact-backend/pkg/email"
	"go-contact-backend/pkg/logger"
	"go-contact-backend/pkg/validation"
)

type contactUsecase struct {
	repo     domain.ContactRepository
	mailer   domain.Mailer
	sessions domain.SessionStore
	validate *validator.Validate
	identity email.Identity
	window   time.Duration
}

// NewContactUsecase creates the submission orchestrator. window is the
// throttle window stamped into the session store after a full success.
func NewContactUsecase(
	repo domain.ContactRepository,
	mailer domain.Mailer,
	sessions domain.SessionStore,
	validate *validator.Validate,
	identity email.Identity,
	window time.Duration,
) domain.ContactUsecase {
	return &contactUsecase{
		repo:     repo,
		mailer:   mailer,
		sessions: sessions,
		validate: validate,
		identity: identity,
		window:   window,
	}
}

// Submit runs one sanitized submission through the honeypot check,
// validation, persistence and the two notifications, in that order.
// Notifications are gated on the insert: nothing is ever emailed about a
// record that was not stored. A stored record whose notification fails
// is kept and reported as SubmitNotifyFailed; there is no retry.
func (uc *contactUsecase) Submit(ctx context.Context, sessionID string, in domain.SubmissionInput) domain.SubmitResult {
	// Honeypot: humans never see the field, bots tend to fill it
	if in.BotField != "" {
		return domain.SubmitResult{Status: domain.SubmitSpamRejected}
	}

	if err := uc.validate.Struct(&in); err != nil {
		return domain.SubmitResult{
			Status:      domain.SubmitInvalid,
			FieldErrors: domain.ValidationErrors(validation.FormatErrors(err)),
		}
	}

	rec := &domain.ContactFormRecord{
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		EnquiryType: in.EnquiryType,
		Message:     in.Message,
	}
	if err := uc.repo.Create(ctx, rec); err != nil {
		return domain.SubmitResult{Status: domain.SubmitStoreFailed, Err: err}
	}

	adminEnv, err := email.NewAdminNotification(uc.identity, rec)
	if err != nil {
		return domain.SubmitResult{Status: domain.SubmitNotifyFailed, Err: err}
	}
	if err := uc.mailer.Send(ctx, adminEnv); err != nil {
		return domain.SubmitResult{Status: domain.SubmitNotifyFailed, Err: err}
	}

	ackEnv, err := email.NewAcknowledgment(uc.identity, rec)
	if err != nil {
		return domain.SubmitResult{Status: domain.SubmitNotifyFailed, Err: err}
	}
	if err := uc.mailer.Send(ctx, ackEnv); err != nil {
		return domain.SubmitResult{Status: domain.SubmitNotifyFailed, Err: err}
	}

	// Stamp the throttle only once everything above succeeded, so a
	// failed attempt does not cost the visitor their retry.
	if sessionID != "" {
		now := strconv.FormatInt(time.Now().Unix(), 10)
		if err := uc.sessions.Set(ctx, session.LastSubmissionKey(sessionID), now, uc.window); err != nil && logger.Log != nil {
			logger.Log.Warn("failed to stamp submission throttle", "error", err)
		}
	}

	return domain.SubmitResult{Status: domain.SubmitAccepted}
}
