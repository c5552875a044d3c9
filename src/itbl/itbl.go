package itbl

import (
	"fmt"
	"sync"
	"time"

	"github.com/itblio/itbl/src/action"
	"github.com/itblio/itbl/src/api"
	"github.com/itblio/itbl/src/config"
	"github.com/itblio/itbl/src/inapp"
	"github.com/itblio/itbl/src/service"
	"github.com/itblio/itbl/src/version"
	"github.com/sirupsen/logrus"
)

// SDK ties together the API client, the in-app message store, the click
// router and the optional inspection service.
type SDK struct {
	Config  *config.Config
	Client  *api.Client
	Store   inapp.Store
	Router  *action.Router
	Service *service.Service

	logger *logrus.Entry

	identityLock sync.RWMutex
	email        string
	userID       string

	now func() time.Time
}

// NewSDK ...
func NewSDK(conf *config.Config) *SDK {
	sdk := &SDK{
		Config: conf,
		email:  conf.Email,
		userID: conf.UserID,
		now:    time.Now,
	}

	return sdk
}

func (s *SDK) initClient() error {
	if s.Config.APIKey == "" {
		return fmt.Errorf("no API key configured")
	}

	client, err := api.NewClient(api.ClientConfig{
		APIKey:     s.Config.APIKey,
		Endpoint:   s.Config.Endpoint,
		Platform:   s.Config.Platform,
		SDKVersion: version.Version,
		Timeout:    s.Config.Timeout,
	}, s.logger.WithField("component", "api"))

	if err != nil {
		return err
	}

	s.Client = client

	return nil
}

func (s *SDK) initStore() error {
	if !s.Config.Store {
		s.Store = inapp.NewInmemStore()

		s.logger.Debug("created new in-mem store")
	} else {
		s.logger.WithField("path", s.Config.DatabaseDir).Debug("Attempting to load or create database")

		store, err := inapp.LoadOrCreateBadgerStore(s.Config.DatabaseDir, s.logger)
		if err != nil {
			return err
		}

		if store.NeedBootstrap() {
			s.logger.Debug("loaded badger store from existing database")
		} else {
			s.logger.Debug("created new badger store from fresh database")
		}

		s.Store = store
	}

	return nil
}

func (s *SDK) initRouter() error {
	s.Router = &action.Router{
		Action: s.Config.ActionHandler,
		URL:    s.Config.URLHandler,
	}
	return nil
}

func (s *SDK) initService() error {
	if !s.Config.NoService {
		s.Service = service.NewService(s.Config.ServiceAddr, s.Store, s.logger)
	}
	return nil
}

// Init builds every component from the config. It must be called before any
// other method.
func (s *SDK) Init() error {
	s.logger = s.Config.Logger()

	if err := s.initClient(); err != nil {
		return err
	}

	if err := s.initStore(); err != nil {
		return err
	}

	if err := s.initRouter(); err != nil {
		return err
	}

	if err := s.initService(); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"endpoint": s.Config.Endpoint,
		"store":    s.Config.Store,
		"service":  !s.Config.NoService,
		"version":  version.Version,
	}).Debug("SDK initialized")

	return nil
}

// Shutdown closes the message store.
func (s *SDK) Shutdown() error {
	if s.Store == nil {
		return nil
	}
	s.logger.Debug("Shutdown")
	return s.Store.Close()
}

// Logger ...
func (s *SDK) Logger() *logrus.Entry {
	return s.logger
}
