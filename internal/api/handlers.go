package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
)

// DriverInfo describes a registered driver.
type DriverInfo struct {
	Type          string   `json:"type"`
	Name          string   `json:"name"`
	Aliases       []string `json:"aliases"`
	SQLDriver     string   `json:"sql_driver"`
	DefaultSchema string   `json:"default_schema,omitempty"`
}

// TypeInfo is the canonical mapping of a native type.
type TypeInfo struct {
	Native    string          `json:"native"`
	Canonical core.ColumnType `json:"canonical"`
	Flink     string          `json:"flink,omitempty"`
}

type schemaRequest struct {
	Schema string `json:"schema"`
}

func driverInfo(d driver.Driver) DriverInfo {
	return DriverInfo{
		Type:          d.Type(),
		Name:          d.Name(),
		Aliases:       d.Aliases(),
		SQLDriver:     d.Catalog().DriverName(),
		DefaultSchema: d.Catalog().DefaultSchema(),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDrivers(w http.ResponseWriter, _ *http.Request) {
	drivers := s.registry.Drivers()
	out := make([]DriverInfo, len(drivers))
	for i, d := range drivers {
		out[i] = driverInfo(d)
	}
	writeJSON(w, http.StatusOK, out)
}

// lookup resolves the {type} URL parameter, writing the error response on
// a miss.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (driver.Driver, bool) {
	d, err := s.registry.Get(chi.URLParam(r, "type"))
	if err != nil {
		writeDriverError(w, err)
		return nil, false
	}
	return d, true
}

func (s *Server) handleDriver(w http.ResponseWriter, r *http.Request) {
	d, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, driverInfo(d))
}

func (s *Server) handleTypeConvert(w http.ResponseWriter, r *http.Request) {
	d, ok := s.lookup(w, r)
	if !ok {
		return
	}
	native := chi.URLParam(r, "native")
	ct := d.TypeConvert(native)
	writeJSON(w, http.StatusOK, TypeInfo{Native: native, Canonical: ct, Flink: ct.FlinkType()})
}

func (s *Server) handleCreateSchema(w http.ResponseWriter, r *http.Request) {
	d, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req schemaRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Schema) == "" {
		writeError(w, http.StatusBadRequest, core.ErrEmptySchemaName)
		return
	}

	stmt, err := d.CreateSchemaSQL(req.Schema)
	if err != nil {
		writeDriverError(w, err)
		return
	}
	writeSQL(w, stmt)
}

// decodeTable reads and validates a table from the request body.
func decodeTable(w http.ResponseWriter, r *http.Request) (*core.Table, bool) {
	var t core.Table
	if err := decodeBody(w, r, &t); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return nil, false
	}
	if err := t.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return &t, true
}

func (s *Server) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	d, ok := s.lookup(w, r)
	if !ok {
		return
	}
	t, ok := decodeTable(w, r)
	if !ok {
		return
	}
	writeSQL(w, d.SelectAllSQL(t))
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	d, ok := s.lookup(w, r)
	if !ok {
		return
	}
	t, ok := decodeTable(w, r)
	if !ok {
		return
	}
	writeSQL(w, d.CreateTableSQL(t))
}

func (s *Server) handleQueryData(w http.ResponseWriter, r *http.Request) {
	d, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var q core.QueryData
	if err := decodeBody(w, r, &q); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(q.TableName) == "" {
		writeError(w, http.StatusBadRequest, core.ErrEmptyTableName)
		return
	}
	if strings.TrimSpace(q.SchemaName) == "" {
		q.SchemaName = d.Catalog().DefaultSchema()
	}
	if q.SchemaName == "" {
		writeError(w, http.StatusBadRequest, core.ErrEmptySchemaName)
		return
	}
	if err := q.Option.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeSQL(w, d.QueryDataSQL(q))
}

func (s *Server) handleTables(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Tables())
}

func (s *Server) tableParam(w http.ResponseWriter, r *http.Request) (*core.Table, bool) {
	ref := chi.URLParam(r, "ref")
	t, ok := s.table(ref)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("table %q not found", ref))
		return nil, false
	}
	return t, true
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	t, ok := s.tableParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// queryDriver resolves the ?driver= parameter for table endpoints.
func (s *Server) queryDriver(w http.ResponseWriter, r *http.Request) (driver.Driver, bool) {
	code := r.URL.Query().Get("driver")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:     "driver query parameter is required",
			Available: s.registry.List(),
		})
		return nil, false
	}
	d, err := s.registry.Get(code)
	if err != nil {
		writeDriverError(w, err)
		return nil, false
	}
	return d, true
}

func (s *Server) handleTableDDL(w http.ResponseWriter, r *http.Request) {
	t, ok := s.tableParam(w, r)
	if !ok {
		return
	}
	d, ok := s.queryDriver(w, r)
	if !ok {
		return
	}
	writeSQL(w, d.CreateTableSQL(t))
}

func (s *Server) handleTableSelect(w http.ResponseWriter, r *http.Request) {
	t, ok := s.tableParam(w, r)
	if !ok {
		return
	}
	d, ok := s.queryDriver(w, r)
	if !ok {
		return
	}
	writeSQL(w, d.SelectAllSQL(t))
}

// handleEvents streams reload events as server-sent events. The current
// table count is sent on connect.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	ch := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func(name string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if err := send("hello", map[string]int{"tables": len(s.Tables())}); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-ch:
			if !open {
				return
			}
			if err := send("reload", ev); err != nil {
				return
			}
		}
	}
}
