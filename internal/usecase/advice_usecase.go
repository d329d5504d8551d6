package usecase

import (
	"context"
	"strings"
	"time"

	"mediconnect/internal/domain/entity"
	"mediconnect/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// Canned replies shown instead of model output.
const (
	AdviceConnectionTrouble = "I'm having trouble connecting to the health knowledge base right now. Please try again later."
	AdviceEmptyReply        = "I'm sorry, I couldn't generate a response at this time."
)

// AdviceUsecase never fails: gateway problems turn into an apology text.
type AdviceUsecase interface {
	Ask(ctx context.Context, history []entity.ChatMessage, message string) string
}

type adviceUsecase struct {
	log     *logrus.Logger
	gateway repository.AdviceGateway
	timeout time.Duration
}

// NewAdviceUsecase accepts a nil gateway, in which case every question gets
// the connection apology.
func NewAdviceUsecase(log *logrus.Logger, gateway repository.AdviceGateway, timeout time.Duration) AdviceUsecase {
	return &adviceUsecase{
		log:     log,
		gateway: gateway,
		timeout: timeout,
	}
}

func (u *adviceUsecase) Ask(ctx context.Context, history []entity.ChatMessage, message string) string {
	if u.gateway == nil {
		return AdviceConnectionTrouble
	}

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	reply, err := u.gateway.GenerateAdvice(ctx, history, message)
	if err != nil {
		u.log.Warnf("Failed to get health advice: %+v", err)
		return AdviceConnectionTrouble
	}
	if strings.TrimSpace(reply) == "" {
		return AdviceEmptyReply
	}
	return reply
}
