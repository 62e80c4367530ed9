package Iservices

import (
	"context"
	"intellialert/internal/domain/dto"
)

type ICallService interface {
	InitiateCall(ctx context.Context, request dto.CallRequest) dto.MakeCallResponse
	HandleCallEvent(ctx context.Context, event dto.CallEvent) string
	HandleCallStatus(ctx context.Context, event dto.CallStatusEvent) dto.StatusAck
}
