package usecase

import (
	"context"

	"sparknest-backend/internal/domain"
)

type healthUsecase struct {
	provider  string
	transport bool
}

// NewHealthUsecase reports the mail provider and whether notifications are
// actually sent or only logged
func NewHealthUsecase(provider string, transportReady bool) domain.HealthUsecase {
	return &healthUsecase{provider: provider, transport: transportReady}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	delivery := "email"
	if !u.transport {
		delivery = "log"
	}
	return map[string]string{
		"status":        "ok",
		"mail_provider": u.provider,
		"delivery":      delivery,
	}
}
