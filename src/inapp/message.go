package inapp

import (
	"fmt"
	"time"

	"github.com/itblio/itbl/src/common"
	"github.com/itblio/itbl/src/constants"
)

// Trigger types.
const (
	TriggerImmediate = "immediate"
	TriggerEvent     = "event"
	TriggerNever     = "never"
)

// DefaultPriority is the priority level of messages that do not set one.
// Lower levels are shown first.
const DefaultPriority = 300.5

// InboxMetadata is what an inbox listing shows for a message.
type InboxMetadata struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Icon     string `json:"icon"`
}

// Message is an in-app message as returned by the API. Content is kept in its
// raw form and parsed on demand.
type Message struct {
	ID            string                 `json:"messageId"`
	CampaignID    int64                  `json:"campaignId"`
	Trigger       string                 `json:"trigger"`
	ExpiresAt     int64                  `json:"expiresAt,omitempty"`
	SaveToInbox   bool                   `json:"saveToInbox"`
	Read          bool                   `json:"read"`
	Priority      float64                `json:"priorityLevel"`
	Content       map[string]interface{} `json:"content"`
	CustomPayload map[string]interface{} `json:"customPayload,omitempty"`
	InboxMetadata *InboxMetadata         `json:"inboxMetadata,omitempty"`

	// Seq records arrival order. It is assigned by the store.
	Seq uint64 `json:"seq"`
}

// NewMessageFromMap builds a Message from one item of the inAppMessages
// array. It fails when the id is missing or the content does not parse.
func NewMessageFromMap(m map[string]interface{}) (*Message, error) {
	id, ok := common.StringValue(m, constants.InAppMessageID)
	if !ok || id == "" {
		return nil, &ParseError{Reason: "no messageId"}
	}

	content, ok := common.MapValue(m, constants.InAppContent)
	if !ok {
		return nil, &ParseError{Reason: fmt.Sprintf("no content for message %s", id)}
	}

	if _, err := Parse(content); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("message %s: %s", id, err)}
	}

	msg := &Message{
		ID:          id,
		Trigger:     TriggerImmediate,
		SaveToInbox: common.BoolValue(m, constants.InAppSaveToInbox),
		Read:        common.BoolValue(m, constants.InAppRead),
		Priority:    DefaultPriority,
		Content:     content,
	}

	if n, ok := common.ToInt64(m[constants.InAppCampaignID]); ok {
		msg.CampaignID = n
	}

	if n, ok := common.ToInt64(m[constants.InAppExpiresAt]); ok {
		msg.ExpiresAt = n
	}

	if f, ok := common.ToFloat(m[constants.InAppPriority]); ok {
		msg.Priority = f
	}

	if trigger, ok := common.MapValue(m, constants.InAppTrigger); ok {
		if t, ok := common.StringValue(trigger, constants.InAppTriggerType); ok && t != "" {
			msg.Trigger = t
		}
	}

	if payload, ok := common.MapValue(m, constants.InAppCustomPayload); ok {
		msg.CustomPayload = payload
	}

	if meta, ok := common.MapValue(m, constants.InAppInboxMetadata); ok {
		title, _ := common.StringValue(meta, "title")
		subtitle, _ := common.StringValue(meta, "subtitle")
		icon, _ := common.StringValue(meta, "icon")
		msg.InboxMetadata = &InboxMetadata{Title: title, Subtitle: subtitle, Icon: icon}
	}

	return msg, nil
}

// MessagesFromResponse reads the inAppMessages array of a getMessages
// response. Items that cannot be read are skipped, and the reason is
// returned alongside the valid messages.
func MessagesFromResponse(resp map[string]interface{}) ([]*Message, []error) {
	items, _ := resp[constants.InAppMessages].([]interface{})

	messages := make([]*Message, 0, len(items))
	var errs []error

	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			errs = append(errs, &ParseError{Reason: fmt.Sprintf("item %d is not an object", i)})
			continue
		}

		msg, err := NewMessageFromMap(m)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		messages = append(messages, msg)
	}

	return messages, errs
}

// Parsed returns the parsed content of the message.
func (m *Message) Parsed() (Content, error) {
	return Parse(m.Content)
}

// Expired reports whether the message expired before now. Messages without
// an expiry never expire.
func (m *Message) Expired(now time.Time) bool {
	if m.ExpiresAt == 0 {
		return false
	}
	return now.UnixNano()/int64(time.Millisecond) >= m.ExpiresAt
}

// IsInbox ...
func (m *Message) IsInbox() bool {
	return m.SaveToInbox
}

// Marshal encodes the message with the SDK codec.
func (m *Message) Marshal() ([]byte, error) {
	return common.EncodeJSON(m)
}

// Unmarshal ...
func (m *Message) Unmarshal(data []byte) error {
	return common.DecodeJSON(data, m)
}
