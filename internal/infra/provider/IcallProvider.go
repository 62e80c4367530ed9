package provider

import (
	"context"
	"intellialert/internal/domain/dto"
)

type ICallProvider interface {
	CreateCall(ctx context.Context, call dto.OutboundCall) (string, error)
}
