package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/grovert/maintassist/internal/intelligence"
	"github.com/grovert/maintassist/internal/recurrence"
	"github.com/grovert/maintassist/internal/service"
	"github.com/grovert/maintassist/internal/zabbix"
)

type errorReply struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warn("writing response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorReply{Type: "error", Message: message})
}

// writeServiceError maps service errors onto HTTP statuses. Recurrence
// validation failures carry their reason code so the frontend can react
// per field.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var verr *recurrence.ValidationError
	if errors.As(err, &verr) {
		s.writeJSON(w, http.StatusBadRequest, errorReply{
			Type:    "error",
			Message: verr.Message,
			Code:    string(verr.Code),
		})
		return
	}
	var cerr *recurrence.ConfigurationError
	if errors.As(err, &cerr) {
		s.writeError(w, http.StatusBadRequest, cerr.Message)
		return
	}
	s.writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// requireUser enforces that a supplied Zabbix user ID actually exists.
// Requests without a user ID pass through; the frontend always sends one.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request, userID string) bool {
	if userID == "" {
		return true
	}
	ok, err := s.directory.ValidateUser(r.Context(), userID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "validating user: "+err.Error())
		return false
	}
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unknown Zabbix user")
		return false
	}
	return true
}

type chatRequest struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Message == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if !s.requireUser(w, r, req.UserID) {
		return
	}
	reply, err := s.chat.Respond(r.Context(), req.Message)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "language model unavailable: "+err.Error())
		return
	}
	if reply.Type == intelligence.ReplyMaintenanceRequest {
		reply = s.adjustMaintenanceReply(r.Context(), reply)
	}
	s.writeJSON(w, http.StatusOK, reply)
}

// adjustMaintenanceReply resolves the mentioned resources before the reply
// reaches the confirmation step. Nothing found downgrades the reply to an
// error; partial matches get a note and the missing names.
func (s *Server) adjustMaintenanceReply(ctx context.Context, reply *intelligence.ChatReply) *intelligence.ChatReply {
	tags := make([]zabbix.Tag, 0, len(reply.TriggerTags))
	for _, t := range reply.TriggerTags {
		tags = append(tags, zabbix.Tag{Tag: t.Tag, Value: t.Value})
	}
	preview, err := s.maint.PreviewTargets(ctx, reply.Hosts, reply.Groups, tags)
	if err != nil {
		s.log.Warn("target preview failed", zap.Error(err))
		return reply
	}
	if len(preview.Hosts) == 0 && len(preview.Groups) == 0 {
		return &intelligence.ChatReply{
			Type:    intelligence.ReplyError,
			Message: "None of the mentioned hosts or groups were found in Zabbix. Check the names and try again.",
		}
	}

	missing := append(append([]string{}, preview.MissingHosts...), preview.MissingGroups...)
	if len(missing) > 0 {
		reply.MissingInfo = append(reply.MissingInfo, missing...)
		reply.Message += " Note: " + strings.Join(missing, ", ") + " could not be found and will be skipped."
	}
	if reply.DetectedInfo == nil {
		reply.DetectedInfo = map[string]interface{}{}
	}
	reply.DetectedInfo["resolved_hosts"] = preview.Hosts
	reply.DetectedInfo["resolved_groups"] = preview.Groups
	return reply
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req service.CreateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !s.requireUser(w, r, req.UserID) {
		return
	}
	result, err := s.maint.Create(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type searchRequest struct {
	Search string `json:"search"`
}

func (s *Server) handleSearchHosts(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Search == "" {
		s.writeError(w, http.StatusBadRequest, "search is required")
		return
	}
	hosts, err := s.directory.SearchHosts(r.Context(), "*"+req.Search+"*")
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "searching hosts: "+err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"hosts": hosts})
}

func (s *Server) handleSearchGroups(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Search == "" {
		s.writeError(w, http.StatusBadRequest, "search is required")
		return
	}
	groups, err := s.directory.SearchHostGroups(r.Context(), "*"+req.Search+"*")
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "searching groups: "+err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	infos, err := s.maint.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"maintenances": infos})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	records, err := s.maint.History(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"history": records})
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"templates": maintenanceTemplates})
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"examples": usageExamples})
}

func (s *Server) handleDryRun(w http.ResponseWriter, r *http.Request) {
	var req service.DryRunRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.maint.DryRun(req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

var featureList = []string{
	"chat",
	"recurring_maintenance",
	"host_search",
	"group_search",
	"templates",
	"audit_history",
	"routine_dry_run",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	zabbixStatus := "ok"
	if err := s.directory.TestConnection(r.Context()); err != nil {
		zabbixStatus = "unreachable"
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"version":  s.info.Version,
		"provider": s.info.Provider,
		"zabbix":   zabbixStatus,
		"features": featureList,
	})
}
