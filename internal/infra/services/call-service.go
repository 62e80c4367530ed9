package services

import (
	"context"
	"fmt"
	"net/http"

	"intellialert/internal/domain/dto"
	Iservices "intellialert/internal/domain/interfaces/services"
	"intellialert/internal/infra/logger"
	"intellialert/internal/infra/provider"

	"github.com/sirupsen/logrus"
)

const (
	// SpeechFallback is spoken when the speech-gather webhook arrives without recognized text.
	SpeechFallback = "I'm sorry, I couldn't understand that."

	CallEventsPath = "/call-events"
	CallStatusPath = "/call-status"
)

// CallSettings are the fixed numbers and the public address used for callbacks.
type CallSettings struct {
	From    string
	To      string
	BaseURL string
}

func (s CallSettings) callbackURL(path string) string {
	return s.BaseURL + path
}

// CallService drives an outbound call from provider webhooks. It holds no per-call state; every
// webhook is answered from its own payload.
type CallService struct {
	Logger            *logger.Logger
	Settings          CallSettings
	CallProvider      provider.ICallProvider
	CompletionService Iservices.ICompletionService
	Broadcaster       Iservices.IBroadcaster
}

func NewCallService(logger *logger.Logger, settings CallSettings, callProvider provider.ICallProvider, completionService Iservices.ICompletionService, broadcaster Iservices.IBroadcaster) *CallService {
	return &CallService{
		Logger:            logger,
		Settings:          settings,
		CallProvider:      callProvider,
		CompletionService: completionService,
		Broadcaster:       broadcaster,
	}
}

// InitiateCall places an outbound call and, once the provider accepts it, announces the call SID
// to the dashboard in the background.
//
// Parameters:
//   - ctx (context.Context): Carries the request trace into the provider call.
//   - request (dto.CallRequest): Destination and greeting. An empty To falls back to the configured
//     destination and an empty InitialMessage to provider.DefaultGreeting.
//
// Returns:
//   - dto.MakeCallResponse: Success with the call SID, or Success=false with the provider or
//     greeting error. Failures are never broadcast.
func (cs *CallService) InitiateCall(ctx context.Context, request dto.CallRequest) dto.MakeCallResponse {
	to := request.To
	if to == "" {
		to = cs.Settings.To
	}

	greeting, err := provider.BuildGreeting(request.InitialMessage, cs.Settings.callbackURL(CallEventsPath))
	if err != nil {
		cs.Logger.Error(fmt.Sprintf("Error building greeting document: %v", err))
		return dto.MakeCallResponse{Success: false, Error: err.Error()}
	}

	callSid, err := cs.CallProvider.CreateCall(ctx, dto.OutboundCall{
		To:                   to,
		From:                 cs.Settings.From,
		Twiml:                greeting,
		StatusCallback:       cs.Settings.callbackURL(CallStatusPath),
		StatusCallbackMethod: http.MethodPost,
		StatusCallbackEvents: dto.StatusCallbackEvents,
	})
	if err != nil {
		cs.Logger.Error(fmt.Sprintf("Error making call: %v", err))
		return dto.MakeCallResponse{Success: false, Error: err.Error()}
	}

	cs.broadcastAsync(dto.NewCallInitiatedMessage(callSid))

	return dto.MakeCallResponse{Success: true, CallSid: callSid}
}

// HandleCallEvent answers a speech-gather webhook with the next voice document. The event is
// broadcast whether or not speech was recognized.
func (cs *CallService) HandleCallEvent(ctx context.Context, event dto.CallEvent) string {
	cs.Logger.Info(fmt.Sprintf("Call %s status: %s, speech: %q", event.CallSid, event.CallStatus, event.Speech()))

	cs.broadcastAsync(dto.NewCallEventMessage(event))

	reply := SpeechFallback
	if speech := event.Speech(); speech != "" {
		reply = cs.CompletionService.Complete(ctx, speech)
	}

	document, err := provider.BuildReply(reply, cs.Settings.callbackURL(CallEventsPath))
	if err != nil {
		cs.Logger.Error(fmt.Sprintf("Error building reply document for call %s: %v", event.CallSid, err))
		return provider.PlainReply(reply)
	}

	return document
}

// HandleCallStatus broadcasts a lifecycle transition and acknowledges it.
func (cs *CallService) HandleCallStatus(_ context.Context, event dto.CallStatusEvent) dto.StatusAck {
	cs.Logger.Info(fmt.Sprintf("Call %s status update: %s", event.CallSid, event.CallStatus))

	cs.broadcastAsync(dto.NewStatusUpdateMessage(event))

	return dto.StatusAck{Received: true}
}

// broadcastAsync is best-effort and not awaited by the triggering request.
func (cs *CallService) broadcastAsync(message dto.BroadcastMessage) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				cs.Logger.Error(fmt.Sprintf("Recovered from panic while broadcasting: %v", r),
					logrus.Fields{"type": message.MessageType()})
			}
		}()

		cs.Broadcaster.Broadcast(message)
	}()
}
