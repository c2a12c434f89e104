package currencyagent

import (
	"context"
	"net/http"
	"sync"
	"time"
)

type Server struct {
	mu         sync.Mutex
	httpServer *http.Server
}

// Run блокируется до остановки сервера. WriteTimeout покрывает два похода в LLM и запрос курса.
func (s *Server) Run(port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:           "0.0.0.0:" + port,
		Handler:        handler,
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   5 * time.Minute,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	return srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
