package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"intellialert/internal/domain/dto"
	Iservices "intellialert/internal/domain/interfaces/services"
	"intellialert/internal/infra/logger"
)

type CallHandlers struct {
	Logger      *logger.Logger
	CallService Iservices.ICallService
}

func NewCallHandlers(logger *logger.Logger, callService Iservices.ICallService) *CallHandlers {
	return &CallHandlers{Logger: logger, CallService: callService}
}

// MakeCall places an outbound call to the configured destination.
//
// Response: 200 with {"success": true, "callSid": ...} or {"success": false, "error": ...}.
func (th *CallHandlers) MakeCall(w http.ResponseWriter, r *http.Request) {
	resp := th.CallService.InitiateCall(r.Context(), dto.CallRequest{})
	writeJSON(w, http.StatusOK, resp)
}

// CreateCall places an outbound call described by a JSON CallRequest body.
func (th *CallHandlers) CreateCall(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	request := dto.CallRequest{InitialMessage: dto.DefaultInitialMessage}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		th.Logger.Warn(fmt.Sprintf("Invalid call request payload: %v", err))
		writeJSON(w, http.StatusBadRequest, dto.MakeCallResponse{Success: false, Error: "invalid request body"})
		return
	}

	if request.To == "" {
		writeJSON(w, http.StatusBadRequest, dto.MakeCallResponse{Success: false, Error: "field 'to' is required"})
		return
	}

	writeJSON(w, http.StatusOK, th.CallService.InitiateCall(r.Context(), request))
}

// CallEvents is the speech-gather webhook. It always answers with a voice document so the call
// keeps going; unreadable form bodies are treated as carrying no fields.
func (th *CallHandlers) CallEvents(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		th.Logger.Warn(fmt.Sprintf("Could not parse call event form: %v", err))
	}

	event := dto.CallEvent{
		CallSid:    r.PostForm.Get("CallSid"),
		CallStatus: r.PostForm.Get("CallStatus"),
	}
	if values, ok := r.PostForm["SpeechResult"]; ok && len(values) > 0 {
		speech := values[0]
		event.SpeechResult = &speech
	}

	document := th.CallService.HandleCallEvent(r.Context(), event)

	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(document))
}

// CallStatus is the lifecycle webhook. Errors are acknowledged with received=false rather than
// a transport-level failure.
func (th *CallHandlers) CallStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		th.Logger.Error(fmt.Sprintf("Error processing call status: %v", err))
		writeJSON(w, http.StatusOK, dto.StatusAck{Received: false, Error: err.Error()})
		return
	}

	ack := th.CallService.HandleCallStatus(r.Context(), dto.CallStatusEvent{
		CallSid:    r.PostForm.Get("CallSid"),
		CallStatus: r.PostForm.Get("CallStatus"),
	})

	writeJSON(w, http.StatusOK, ack)
}
