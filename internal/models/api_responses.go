package models

import (
	"medchat/internal/responder"
)

// OTPResponse is returned after a code has been issued.
type OTPResponse struct {
	Phone     string `json:"phone"`
	ExpiresIn int    `json:"expires_in"`
	// Code is only set when the server exposes simulated codes.
	Code string `json:"code,omitempty"`
}

// ChatReply contains the messages appended by one send.
type ChatReply struct {
	Messages []Message           `json:"messages"`
	Response *responder.Response `json:"response,omitempty"`
}

// KeywordsResponse lists responder triggers in match order.
type KeywordsResponse struct {
	Keywords         []string `json:"keywords"`
	EmergencyPhrases []string `json:"emergency_phrases"`
}
