package dto

// Call statuses reported by the telephony provider.
const (
	CallStatusQueued     = "queued"
	CallStatusInitiated  = "initiated"
	CallStatusRinging    = "ringing"
	CallStatusInProgress = "in-progress"
	CallStatusAnswered   = "answered"
	CallStatusCompleted  = "completed"
	CallStatusBusy       = "busy"
	CallStatusFailed     = "failed"
	CallStatusNoAnswer   = "no-answer"
	CallStatusCanceled   = "canceled"
)

// StatusCallbackEvents are the lifecycle transitions the provider reports on the status webhook.
var StatusCallbackEvents = []string{CallStatusInitiated, CallStatusRinging, CallStatusAnswered, CallStatusCompleted}

// DefaultInitialMessage is spoken on POST /calls when the request carries no initialMessage.
const DefaultInitialMessage = "Hello, this is an automated call."

// CallRequest asks for an outbound call to an arbitrary number.
type CallRequest struct {
	To             string `json:"to"`
	InitialMessage string `json:"initialMessage,omitempty"`
}

type MakeCallResponse struct {
	Success bool   `json:"success"`
	CallSid string `json:"callSid,omitempty"`
	Error   string `json:"error,omitempty"`
}

// StatusAck answers the status webhook.
type StatusAck struct {
	Received bool   `json:"received"`
	Error    string `json:"error,omitempty"`
}

// OutboundCall is what the telephony provider needs to place a call.
type OutboundCall struct {
	To                   string
	From                 string
	Twiml                string
	StatusCallback       string
	StatusCallbackMethod string
	StatusCallbackEvents []string
}

// CallEvent is the speech-gather webhook payload (form fields CallSid, CallStatus, SpeechResult).
type CallEvent struct {
	CallSid      string
	CallStatus   string
	SpeechResult *string
}

// Speech returns the recognized text, empty when none was sent.
func (e CallEvent) Speech() string {
	if e.SpeechResult == nil {
		return ""
	}
	return *e.SpeechResult
}

// CallStatusEvent is the status webhook payload (form fields CallSid, CallStatus).
type CallStatusEvent struct {
	CallSid    string
	CallStatus string
}
