package itbl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/itblio/itbl/src/action"
	"github.com/itblio/itbl/src/api"
	"github.com/itblio/itbl/src/callback"
	"github.com/itblio/itbl/src/common"
	"github.com/itblio/itbl/src/constants"
	"github.com/itblio/itbl/src/inapp"
	"github.com/itblio/itbl/src/version"
	"github.com/sirupsen/logrus"
)

// SyncInApp fetches the user's in-app messages and makes the store mirror
// them: new messages are added, known ones updated, and stored messages the
// server no longer returns are removed, as are expired ones. Messages marked
// read locally stay read. onSuccess receives the raw response.
func (s *SDK) SyncInApp(ctx context.Context, onSuccess callback.OnSuccessHandler, onFailure callback.OnFailureHandler) {
	logger := s.logger.WithField("path", constants.PathGetMessages)

	key, value, ok := s.identity()
	if !ok {
		logger.Warn(noIdentityReason)
		onFailure.Fail(noIdentityReason, nil)
		return
	}

	query := url.Values{}
	query.Set(key, value)
	query.Set(constants.InAppCount, strconv.Itoa(s.Config.InAppCount))
	query.Set(constants.Platform, s.Config.Platform)
	query.Set(constants.SDKVersion, version.Version)

	data, err := s.Client.Do(ctx, &api.Request{
		Method: http.MethodGet,
		Path:   constants.PathGetMessages,
		Query:  query,
	})
	if err != nil {
		api.Deliver(nil, err, nil, s.logFailure(logger, onFailure))
		return
	}

	if err := s.mergeMessages(data, logger); err != nil {
		logger.WithError(err).Error("Storing in-app messages")
		onFailure.Fail(err.Error(), nil)
		return
	}

	onSuccess.Call(data)
}

func (s *SDK) mergeMessages(data map[string]interface{}, logger *logrus.Entry) error {
	messages, errs := inapp.MessagesFromResponse(data)
	for _, err := range errs {
		logger.WithError(err).Warn("Skipping in-app message")
	}

	now := s.now()
	received := make(map[string]bool, len(messages))

	for _, msg := range messages {
		if msg.Expired(now) {
			continue
		}
		received[msg.ID] = true

		if old, err := s.Store.Get(msg.ID); err == nil && old.Read {
			msg.Read = true
		}

		if err := s.Store.Set(msg); err != nil {
			return err
		}
	}

	for _, msg := range s.Store.All() {
		if received[msg.ID] {
			continue
		}
		if err := s.Store.Delete(msg.ID); err != nil && !common.IsStore(err, common.KeyNotFound) {
			return err
		}
	}

	logger.WithFields(logrus.Fields{
		"received": len(messages),
		"stored":   s.Store.Len(),
		"skipped":  len(errs),
	}).Debug("Synced in-app messages")

	return nil
}

// Messages returns the stored messages that have not expired, in display
// order.
func (s *SDK) Messages() []*inapp.Message {
	now := s.now()
	res := []*inapp.Message{}
	for _, msg := range s.Store.All() {
		if !msg.Expired(now) {
			res = append(res, msg)
		}
	}
	return res
}

// InboxMessages is Messages restricted to those saved to the inbox.
func (s *SDK) InboxMessages() []*inapp.Message {
	res := []*inapp.Message{}
	for _, msg := range s.Messages() {
		if msg.IsInbox() {
			res = append(res, msg)
		}
	}
	return res
}

// Message returns a stored message by id.
func (s *SDK) Message(id string) (*inapp.Message, error) {
	return s.Store.Get(id)
}

// MarkRead flags a stored message as read.
func (s *SDK) MarkRead(id string) error {
	msg, err := s.Store.Get(id)
	if err != nil {
		return err
	}
	if msg.Read {
		return nil
	}

	updated := *msg
	updated.Read = true
	return s.Store.Set(&updated)
}

// HandleClick processes a URL clicked in message messageID. The click is
// tracked and its outcome delivered to the callbacks. Custom actions and
// regular URLs are then routed to the configured ActionHandler and
// URLHandler; itbl://delete consumes the message and itbl://dismiss marks it
// read.
func (s *SDK) HandleClick(ctx context.Context, messageID, clickedURL string, onSuccess callback.OnSuccessHandler, onFailure callback.OnFailureHandler) (action.Click, error) {
	click, err := action.ParseClick(clickedURL)
	if err != nil {
		return action.Click{}, fmt.Errorf("parsing clicked url: %w", err)
	}

	if _, err := s.Store.Get(messageID); err != nil {
		return click, err
	}

	logger := s.logger.WithFields(logrus.Fields{
		"message_id": messageID,
		"kind":       click.Kind,
		"name":       click.Name,
	})
	logger.Debug("In-app click")

	s.post(ctx, constants.PathTrackInAppClick, map[string]interface{}{
		constants.InAppMessageID:  messageID,
		constants.InAppClickedURL: clickedURL,
	}, onSuccess, onFailure)

	if click.Kind != action.Internal {
		if !s.Router.Route(click) {
			logger.Debug("No handler for click")
		}
		return click, nil
	}

	switch click.Name {
	case action.Delete:
		return click, s.consume(ctx, messageID, logger)
	case action.Dismiss:
		return click, s.MarkRead(messageID)
	default:
		logger.Warn("Unknown internal action")
	}

	return click, nil
}

// consume removes the message locally and tells the server it was used.
func (s *SDK) consume(ctx context.Context, messageID string, logger *logrus.Entry) error {
	if err := s.Store.Delete(messageID); err != nil {
		return err
	}

	s.post(ctx, constants.PathInAppConsume, map[string]interface{}{
		constants.InAppMessageID: messageID,
	}, nil, nil)

	logger.Debug("Consumed in-app message")

	return nil
}
