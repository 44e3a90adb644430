package mq

import (
	"context"

	"go.uber.org/zap"

	"skillink/internal/core/ports"
)

// LogPublisher writes events to the zap logger when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

var _ ports.EventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	p.logger.Info("lifecycle event",
		zap.String("routing_key", routingKey),
		zap.Any("payload", payload),
	)
	return nil
}
