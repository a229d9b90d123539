package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/grovert/maintassist/internal/intelligence"
	"github.com/grovert/maintassist/internal/repository"
	"github.com/grovert/maintassist/internal/service"
	"github.com/grovert/maintassist/internal/zabbix"
)

// MaintenanceAPI is the maintenance service surface the handlers use.
type MaintenanceAPI interface {
	Create(ctx context.Context, req service.CreateRequest) (*service.CreateResult, error)
	List(ctx context.Context) ([]service.MaintenanceInfo, error)
	History(ctx context.Context, limit int) ([]repository.AuditRecord, error)
	DryRun(req service.DryRunRequest) (*service.DryRunResult, error)
	PreviewTargets(ctx context.Context, hosts, groups []string, tags []zabbix.Tag) (*service.TargetPreview, error)
}

// Directory is the Zabbix lookup surface the handlers use.
type Directory interface {
	SearchHosts(ctx context.Context, term string) ([]zabbix.Host, error)
	SearchHostGroups(ctx context.Context, term string) ([]zabbix.HostGroup, error)
	ValidateUser(ctx context.Context, userID string) (bool, error)
	TestConnection(ctx context.Context) error
}

// Info identifies the running build in the health endpoint.
type Info struct {
	Version  string
	Provider string
}

// Server is the HTTP API of the maintenance assistant.
type Server struct {
	chat      intelligence.ChatService
	maint     MaintenanceAPI
	directory Directory
	info      Info
	log       *zap.Logger
	handler   http.Handler
}

func New(chat intelligence.ChatService, maint MaintenanceAPI, directory Directory, info Info, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{chat: chat, maint: maint, directory: directory, info: info, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /parse", s.handleChat)
	mux.HandleFunc("POST /create_maintenance", s.handleCreate)
	mux.HandleFunc("POST /search_hosts", s.handleSearchHosts)
	mux.HandleFunc("POST /search_groups", s.handleSearchGroups)
	mux.HandleFunc("GET /maintenance/list", s.handleList)
	mux.HandleFunc("GET /maintenance/history", s.handleHistory)
	mux.HandleFunc("GET /maintenance/templates", s.handleTemplates)
	mux.HandleFunc("GET /examples", s.handleExamples)
	mux.HandleFunc("POST /test/routine", s.handleDryRun)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.handler = withRequestID(withAccessLog(log, withCORS(mux)))
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe runs the server until ctx is canceled, then shuts it
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
