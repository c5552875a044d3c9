package itbl

import (
	"context"

	"github.com/itblio/itbl/src/callback"
	"github.com/itblio/itbl/src/constants"
	"github.com/sirupsen/logrus"
)

// Track records a custom event for the current user.
func (s *SDK) Track(ctx context.Context, event string, dataFields map[string]interface{}, onSuccess callback.OnSuccessHandler, onFailure callback.OnFailureHandler) {
	body := map[string]interface{}{
		constants.EventName: event,
	}
	if dataFields != nil {
		body[constants.DataFields] = dataFields
	}

	s.post(ctx, constants.PathTrack, body, onSuccess, onFailure)
}

// UpdateUser sets profile fields of the current user. When mergeNested is
// true, nested objects are merged with the existing ones instead of replacing
// them.
func (s *SDK) UpdateUser(ctx context.Context, dataFields map[string]interface{}, mergeNested bool, onSuccess callback.OnSuccessHandler, onFailure callback.OnFailureHandler) {
	if dataFields == nil {
		dataFields = map[string]interface{}{}
	}

	body := map[string]interface{}{
		constants.DataFields:  dataFields,
		constants.MergeNested: mergeNested,
	}

	s.post(ctx, constants.PathUpdateUser, body, onSuccess, onFailure)
}

func (s *SDK) post(ctx context.Context, path string, body map[string]interface{}, onSuccess callback.OnSuccessHandler, onFailure callback.OnFailureHandler) {
	logger := s.logger.WithField("path", path)

	body, ok := s.identifiedBody(body)
	if !ok {
		logger.Warn(noIdentityReason)
		onFailure.Fail(noIdentityReason, nil)
		return
	}

	s.Client.Post(ctx, path, body, s.logSuccess(logger, onSuccess), s.logFailure(logger, onFailure))
}

func (s *SDK) logSuccess(logger *logrus.Entry, next callback.OnSuccessHandler) callback.OnSuccessHandler {
	return func(data map[string]interface{}) {
		logger.Debug("Request succeeded")
		next.Call(data)
	}
}

func (s *SDK) logFailure(logger *logrus.Entry, next callback.OnFailureHandler) callback.OnFailureHandler {
	return func(reason *string, data []byte) {
		logger.WithField("reason", callback.Value(reason)).Error("Request failed")
		next.Call(reason, data)
	}
}
