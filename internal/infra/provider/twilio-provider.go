package provider

import (
	"context"
	"errors"
	"fmt"
	"intellialert/internal/domain/dto"
	"intellialert/internal/infra/logger"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrMissingCallSid is returned when the provider accepted the request but sent back no call identifier.
var ErrMissingCallSid = errors.New("telephony provider returned no call sid")

type callCreator interface {
	CreateCall(params *twilioApi.CreateCallParams) (*twilioApi.ApiV2010Call, error)
}

type TwilioCallProvider struct {
	Logger *logger.Logger
	Calls  callCreator
}

func NewTwilioCallProvider(logger *logger.Logger, accountSID, authToken string) *TwilioCallProvider {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioCallProvider{Logger: logger, Calls: client.Api}
}

// CreateCall places an outbound call through the Twilio REST API and returns the provider's call sid.
//
// The voice document in call.Twiml is executed by Twilio once the callee answers. Status
// transitions listed in call.StatusCallbackEvents are delivered to call.StatusCallback.
func (tp *TwilioCallProvider) CreateCall(ctx context.Context, call dto.OutboundCall) (string, error) {
	_, span := tracer.Start(ctx, "create outbound call", trace.WithAttributes(
		attribute.String("call.to", call.To),
	))
	defer span.End()

	if call.To == "" || call.From == "" {
		err := fmt.Errorf("recipient (to) and sender (from) cannot be empty")
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	params := &twilioApi.CreateCallParams{}
	params.SetTo(call.To)
	params.SetFrom(call.From)
	params.SetTwiml(call.Twiml)
	if call.StatusCallback != "" {
		params.SetStatusCallback(call.StatusCallback)
		params.SetStatusCallbackMethod(call.StatusCallbackMethod)
		params.SetStatusCallbackEvent(call.StatusCallbackEvents)
	}

	resp, err := tp.Calls.CreateCall(params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		tp.Logger.Error(fmt.Sprintf("Failed to create call to %s: %v", call.To, err))
		return "", fmt.Errorf("failed to create call: %w", err)
	}

	if resp == nil || resp.Sid == nil || *resp.Sid == "" {
		span.SetStatus(codes.Error, ErrMissingCallSid.Error())
		tp.Logger.Error(fmt.Sprintf("Call to %s accepted without a call sid", call.To))
		return "", ErrMissingCallSid
	}

	span.SetAttributes(attribute.String("call.sid", *resp.Sid))
	tp.Logger.Info("Outbound call created", logrus.Fields{"callSid": *resp.Sid, "to": call.To})
	return *resp.Sid, nil
}
