package plotclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"fieldplot/entities"
	"fieldplot/pkg/geo"
	"fieldplot/pkg/logger"
	"fieldplot/pkg/metrics"
)

const (
	plotsPath       = "/api/field-plots"
	eventsPath      = "/api/fertigation-events"
	defaultTimeout  = 15 * time.Second
	maxErrorBodyLen = 64 << 10
)

type Options struct {
	BaseURL string
	Session Session

	// optional
	Timeout    time.Duration
	HTTPClient *http.Client
	Metrics    *metrics.RepositoryMetrics
	Logger     *zap.Logger
}

// HTTPRepository implements Repository against the REST plot API.
type HTTPRepository struct {
	base    string
	session Session
	hc      *http.Client
	metrics *metrics.RepositoryMetrics
	log     *zap.Logger
}

var _ Repository = (*HTTPRepository)(nil)

func NewHTTPRepository(o Options) (*HTTPRepository, error) {
	if o.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.Parse(o.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if o.Session == nil {
		return nil, errors.New("session is required")
	}
	hc := o.HTTPClient
	if hc == nil {
		timeout := o.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &HTTPRepository{
		base:    strings.TrimRight(o.BaseURL, "/"),
		session: o.Session,
		hc:      hc,
		metrics: o.Metrics,
		log:     logger.OrNop(o.Logger),
	}, nil
}

func (r *HTTPRepository) ListPlots(ctx context.Context) ([]entities.FieldPlot, error) {
	var out []entities.FieldPlot
	if err := r.do(ctx, "list_plots", http.MethodGet, plotsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPRepository) CreatePlot(ctx context.Context, name string, vertices []geo.LngLat, cropType *string) (*entities.FieldPlot, error) {
	body := entities.FieldPlotCreate{Name: name, Coordinates: vertices, CropType: cropType}
	var out entities.FieldPlot
	if err := r.do(ctx, "create_plot", http.MethodPost, plotsPath, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPRepository) UpdatePlot(ctx context.Context, id string, patch PlotPatch) (*entities.FieldPlot, error) {
	var out entities.FieldPlot
	if err := r.do(ctx, "update_plot", http.MethodPut, plotsPath+"/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPRepository) DeletePlot(ctx context.Context, id string) error {
	return r.do(ctx, "delete_plot", http.MethodDelete, plotsPath+"/"+url.PathEscape(id), nil, nil)
}

func (r *HTTPRepository) ListFertigationEvents(ctx context.Context, plotID string) ([]entities.FertigationEvent, error) {
	var out []entities.FertigationEvent
	if err := r.do(ctx, "list_fertigation", http.MethodGet, plotEventsPath(plotID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPRepository) CreateFertigationEvent(ctx context.Context, plotID string, in entities.FertigationInput) (*entities.FertigationEvent, error) {
	var out entities.FertigationEvent
	if err := r.do(ctx, "create_fertigation", http.MethodPost, plotEventsPath(plotID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPRepository) UpdateFertigationEvent(ctx context.Context, eventID string, in entities.FertigationInput) (*entities.FertigationEvent, error) {
	var out entities.FertigationEvent
	if err := r.do(ctx, "update_fertigation", http.MethodPut, eventsPath+"/"+url.PathEscape(eventID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPRepository) DeleteFertigationEvent(ctx context.Context, eventID string) error {
	return r.do(ctx, "delete_fertigation", http.MethodDelete, eventsPath+"/"+url.PathEscape(eventID), nil, nil)
}

func plotEventsPath(plotID string) string {
	return plotsPath + "/" + url.PathEscape(plotID) + "/fertigation-events"
}

// do runs one request and decodes its outcome into out or a RepositoryError.
func (r *HTTPRepository) do(ctx context.Context, op, method, path string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe(op, Kind(err), time.Since(start))
		if err != nil {
			r.log.Debug("plot api call failed", zap.String("op", op), zap.String("kind", Kind(err)), zap.Error(err))
		}
	}()

	token, ok := r.session.Token()
	if !ok {
		return &AuthError{Msg: "not signed in"}
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &NetworkError{Msg: "encode request", Err: err}
		}
		payload = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.base+path, payload)
	if err != nil {
		return &NetworkError{Msg: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.hc.Do(req)
	if err != nil {
		return &NetworkError{Msg: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Status: resp.StatusCode, Msg: "decode response", Err: err}
	}
	return nil
}

// decodeError maps a non-2xx response onto the RepositoryError set.
func decodeError(status int, body []byte) RepositoryError {
	msg := errorMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{Msg: msg}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{Msg: msg}
	case http.StatusNotFound:
		return &NotFoundError{Msg: msg}
	}
	return &NetworkError{Status: status, Msg: msg}
}

// errorMessage pulls a message out of the shapes the API and its proxies answer with:
// {"error": "..."}, {"detail": "..."}, {"detail": [{"msg": "..."}]} and {"message": "..."}.
func errorMessage(body []byte) string {
	var v struct {
		Error   json.RawMessage `json:"error"`
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return strings.TrimSpace(string(body))
	}
	if s := rawString(v.Error); s != "" {
		return s
	}
	if s := rawString(v.Detail); s != "" {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(v.Detail, &items) == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return v.Message
}

func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
