package mobile

import (
	"context"
	"fmt"

	"github.com/itblio/itbl/src/api"
	"github.com/itblio/itbl/src/callback"
	"github.com/itblio/itbl/src/common"
	"github.com/itblio/itbl/src/inapp"
	"github.com/itblio/itbl/src/itbl"
	"github.com/sirupsen/logrus"
)

// Client is the SDK instance exposed to mobile applications. Every method
// blocks until the request completes, so applications should call them off
// the main thread.
type Client struct {
	sdk              *itbl.SDK
	exceptionHandler ExceptionHandler
	logger           *logrus.Entry
}

// New initializes a Client. A nil config selects DefaultMobileConfig. It
// returns nil, after notifying exceptionHandler, when the SDK cannot be
// initialized.
func New(apiKey string,
	email string,
	userID string,
	actionHandler ActionHandler,
	urlHandler URLHandler,
	exceptionHandler ExceptionHandler,
	config *MobileConfig) *Client {

	if config == nil {
		config = DefaultMobileConfig()
	}

	conf := config.toConfig()
	conf.APIKey = apiKey
	conf.Email = email
	conf.UserID = userID
	conf.ActionHandler = actionCallback(actionHandler)
	conf.URLHandler = urlCallback(urlHandler)

	conf.Logger().WithFields(logrus.Fields{
		"email":  email,
		"userID": userID,
		"config": fmt.Sprintf("%v", config),
	}).Debug("New Mobile Client")

	sdk := itbl.NewSDK(conf)

	if err := sdk.Init(); err != nil {
		if exceptionHandler != nil {
			exceptionHandler.OnException(fmt.Sprintf("Cannot initialize SDK: %s", err))
		}
		return nil
	}

	return &Client{
		sdk:              sdk,
		exceptionHandler: exceptionHandler,
		logger:           sdk.Logger().WithField("component", "mobile"),
	}
}

// SetEmail ...
func (c *Client) SetEmail(email string) {
	c.sdk.SetEmail(email)
}

// SetUserID ...
func (c *Client) SetUserID(userID string) {
	c.sdk.SetUserID(userID)
}

// Track records a custom event. dataJSON is a JSON object of data fields, or
// an empty string.
func (c *Client) Track(event string, dataJSON string, s SuccessHandler, f FailureHandler) {
	fields, ok := c.decodeFields(dataJSON, f)
	if !ok {
		return
	}

	c.sdk.Track(context.Background(), event, fields, successCallback(s, c.logger), c.failure(f))
}

// UpdateUser sets profile fields of the current user from the JSON object
// dataJSON.
func (c *Client) UpdateUser(dataJSON string, mergeNested bool, s SuccessHandler, f FailureHandler) {
	fields, ok := c.decodeFields(dataJSON, f)
	if !ok {
		return
	}

	c.sdk.UpdateUser(context.Background(), fields, mergeNested, successCallback(s, c.logger), c.failure(f))
}

// SyncInApp refreshes the stored in-app messages.
func (c *Client) SyncInApp(s SuccessHandler, f FailureHandler) {
	c.sdk.SyncInApp(context.Background(), successCallback(s, c.logger), c.failure(f))
}

// MessagesJSON returns the stored in-app messages as a JSON array.
func (c *Client) MessagesJSON() string {
	return c.encodeMessages(c.sdk.Messages())
}

// InboxJSON returns the stored inbox messages as a JSON array.
func (c *Client) InboxJSON() string {
	return c.encodeMessages(c.sdk.InboxMessages())
}

// MarkRead ...
func (c *Client) MarkRead(messageID string) {
	if err := c.sdk.MarkRead(messageID); err != nil {
		c.exception(fmt.Sprintf("Cannot mark message read: %s", err))
	}
}

// HandleClick processes a URL clicked in an in-app message. Clicks that
// cannot be processed are reported to the ExceptionHandler.
func (c *Client) HandleClick(messageID string, clickedURL string, s SuccessHandler, f FailureHandler) {
	_, err := c.sdk.HandleClick(context.Background(), messageID, clickedURL, successCallback(s, c.logger), c.failure(f))
	if err != nil {
		c.exception(fmt.Sprintf("Cannot handle click: %s", err))
	}
}

// Shutdown ...
func (c *Client) Shutdown() {
	if err := c.sdk.Shutdown(); err != nil {
		c.exception(fmt.Sprintf("Shutdown: %s", err))
	}
}

// failure wraps f, or reports to the ExceptionHandler when f is nil.
func (c *Client) failure(f FailureHandler) callback.OnFailureHandler {
	if f != nil {
		return failureCallback(f)
	}
	return func(reason *string, data []byte) {
		c.exception(callback.Value(reason))
	}
}

func (c *Client) exception(msg string) {
	if c.exceptionHandler == nil {
		c.logger.WithField("exception", msg).Error("No ExceptionHandler")
		return
	}
	c.exceptionHandler.OnException(msg)
}

func (c *Client) decodeFields(dataJSON string, f FailureHandler) (map[string]interface{}, bool) {
	if dataJSON == "" {
		return nil, true
	}

	fields, err := common.DecodeJSONMap([]byte(dataJSON))
	if err != nil {
		c.failure(f).Fail(api.ReasonParseJSON+err.Error(), []byte(dataJSON))
		return nil, false
	}

	return fields, true
}

func (c *Client) encodeMessages(messages []*inapp.Message) string {
	b, err := common.EncodeJSON(messages)
	if err != nil {
		c.logger.WithError(err).Error("Encoding messages")
		return "[]"
	}
	return string(b)
}
