package dto

const (
	MessageTypeCallInitiated = "callInitiated"
	MessageTypeCallEvent     = "callEvent"
	MessageTypeStatusUpdate  = "statusUpdate"
)

// BroadcastMessage is anything pushed to the connected dashboards. The JSON body carries its type tag.
type BroadcastMessage interface {
	MessageType() string
}

type CallInitiatedMessage struct {
	Type    string `json:"type"`
	CallSid string `json:"callSid"`
}

func NewCallInitiatedMessage(callSid string) CallInitiatedMessage {
	return CallInitiatedMessage{Type: MessageTypeCallInitiated, CallSid: callSid}
}

func (m CallInitiatedMessage) MessageType() string { return m.Type }

// CallEventMessage mirrors a speech-gather webhook. SpeechResult is null when the provider sent none.
type CallEventMessage struct {
	Type         string  `json:"type"`
	CallSid      string  `json:"callSid"`
	CallStatus   string  `json:"callStatus"`
	SpeechResult *string `json:"speechResult"`
}

func NewCallEventMessage(event CallEvent) CallEventMessage {
	return CallEventMessage{
		Type:         MessageTypeCallEvent,
		CallSid:      event.CallSid,
		CallStatus:   event.CallStatus,
		SpeechResult: event.SpeechResult,
	}
}

func (m CallEventMessage) MessageType() string { return m.Type }

type StatusUpdateMessage struct {
	Type       string `json:"type"`
	CallSid    string `json:"callSid"`
	CallStatus string `json:"callStatus"`
}

func NewStatusUpdateMessage(event CallStatusEvent) StatusUpdateMessage {
	return StatusUpdateMessage{Type: MessageTypeStatusUpdate, CallSid: event.CallSid, CallStatus: event.CallStatus}
}

func (m StatusUpdateMessage) MessageType() string { return m.Type }
