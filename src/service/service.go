package service

import (
	"encoding/json"
	"net/http"
	"sync"

	cm "github.com/itblio/itbl/src/common"
	"github.com/itblio/itbl/src/inapp"
	"github.com/sirupsen/logrus"
)

// Service exposes the in-app message store over HTTP, for inspecting what the
// SDK has synced.
type Service struct {
	sync.Mutex

	bindAddress string
	store       inapp.Store
	mux         *http.ServeMux
	logger      *logrus.Entry
}

// Stats ...
type Stats struct {
	Messages      int    `json:"messages"`
	InboxMessages int    `json:"inbox_messages"`
	Unread        int    `json:"unread"`
	StorePath     string `json:"store_path"`
}

// NewService ...
func NewService(bindAddress string, store inapp.Store, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		store:       store,
		mux:         http.NewServeMux(),
		logger:      logger,
	}

	service.registerHandlers()

	return &service
}

func (s *Service) registerHandlers() {
	s.logger.Debug("Registering API handlers")
	s.mux.HandleFunc("/stats", s.makeHandler(s.GetStats))
	s.mux.HandleFunc("/messages", s.makeHandler(s.GetMessages))
	s.mux.HandleFunc("/message/", s.makeHandler(s.GetMessage))
}

func (s *Service) makeHandler(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Lock()
		defer s.Unlock()

		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		fn(w, r)
	}
}

// Handler returns the service's handlers, for mounting on another server.
func (s *Service) Handler() http.Handler {
	return s.mux
}

// Serve calls ListenAndServe. This is a blocking call.
func (s *Service) Serve() error {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving API")

	err := http.ListenAndServe(s.bindAddress, s.mux)
	if err != nil {
		s.logger.Error(err)
	}
	return err
}

// GetStats ...
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := Stats{StorePath: s.store.StorePath()}
	for _, msg := range s.store.All() {
		stats.Messages++
		if msg.IsInbox() {
			stats.InboxMessages++
		}
		if !msg.Read {
			stats.Unread++
		}
	}

	writeJSON(w, stats)
}

// GetMessages ...
func (s *Service) GetMessages(w http.ResponseWriter, r *http.Request) {
	messages := s.store.All()

	if r.URL.Query().Get("inbox") == "true" {
		inbox := []*inapp.Message{}
		for _, msg := range messages {
			if msg.IsInbox() {
				inbox = append(inbox, msg)
			}
		}
		messages = inbox
	}

	writeJSON(w, messages)
}

// GetMessage ...
func (s *Service) GetMessage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Path[len("/message/"):]

	msg, err := s.store.Get(id)
	if err != nil {
		s.logger.WithError(err).Errorf("Retrieving message %s", id)

		status := http.StatusInternalServerError
		if cm.IsStore(err, cm.KeyNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)

		return
	}

	writeJSON(w, msg)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(v)
}
