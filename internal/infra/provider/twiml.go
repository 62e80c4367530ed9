package provider

import (
	"bytes"
	"encoding/xml"

	"github.com/twilio/twilio-go/twiml"
)

const (
	DefaultGreeting = "This is an automated call."
	GreetingPrompt  = "How can I help you today?"
	FollowUpPrompt  = "Is there anything else you'd like to know?"

	// Seconds of silence after which the provider stops listening.
	GatherTimeoutSeconds = "3"
	speechTimeoutAuto    = "auto"
	gatherInputSpeech    = "speech"
)

func speechGather(actionURL, prompt string) *twiml.VoiceGather {
	return &twiml.VoiceGather{
		Input:         gatherInputSpeech,
		Action:        actionURL,
		Method:        "POST",
		Timeout:       GatherTimeoutSeconds,
		SpeechTimeout: speechTimeoutAuto,
		InnerElements: []twiml.Element{&twiml.VoiceSay{Message: prompt}},
	}
}

// BuildGreeting renders the document played when an outbound call is answered: the greeting,
// then a speech gather asking how we can help.
func BuildGreeting(greeting, actionURL string) (string, error) {
	if greeting == "" {
		greeting = DefaultGreeting
	}
	return twiml.Voice([]twiml.Element{
		&twiml.VoiceSay{Message: greeting},
		speechGather(actionURL, GreetingPrompt),
	})
}

// BuildReply renders the next turn: speak reply, then listen again.
func BuildReply(reply, actionURL string) (string, error) {
	return twiml.Voice([]twiml.Element{
		&twiml.VoiceSay{Message: reply},
		speechGather(actionURL, FollowUpPrompt),
	})
}

// PlainReply renders a Say-only document without the TwiML library. It is the last resort when
// BuildReply fails, so the provider still receives well-formed XML.
func PlainReply(reply string) string {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<Response><Say>")
	_ = xml.EscapeText(&buf, []byte(reply))
	buf.WriteString("</Say></Response>")
	return buf.String()
}
