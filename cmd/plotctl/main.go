// Command plotctl drives the plot workflow without a UI: it signs in, loads the
// user's plots, draws a polygon from the given points and commits it.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"fieldplot/config"
	"fieldplot/entities"
	"fieldplot/pkg/coordinator"
	"fieldplot/pkg/geo"
	"fieldplot/pkg/logger"
	"fieldplot/pkg/metrics"
	"fieldplot/pkg/plotclient"
)

func main() {
	cfg := config.Load()

	var (
		baseURL  = flag.String("base", cfg.APIBaseURL, "plot API base URL")
		token    = flag.String("token", cfg.APIToken, "bearer token")
		devUID   = flag.String("dev-uid", "", "obtain a token from the server's dev login for this uid")
		offline  = flag.Bool("offline", false, "use an in-memory repository instead of the API")
		name     = flag.String("name", "", "name of the plot to create")
		points   = flag.String("points", "", `vertices as "lng,lat;lng,lat;..."`)
		crop     = flag.String("crop", "", "crop type to set on the new plot")
		fertName = flag.String("fert", "", "fertilizer name to log on the new plot")
		fertQty  = flag.Float64("qty", 0, "fertilizer quantity")
		fertUnit = flag.String("unit", string(entities.UnitKgPerHa), "fertilizer unit (kg/ha, L/ha, kg, L)")
	)
	flag.Parse()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.APITimeout)
	defer cancel()

	if err := run(ctx, log, runArgs{
		baseURL: *baseURL, token: *token, devUID: *devUID, offline: *offline, timeout: cfg.APITimeout,
		name: *name, points: *points, crop: *crop,
		fertName: *fertName, fertQty: *fertQty, fertUnit: *fertUnit,
	}); err != nil {
		log.Error("plotctl failed", zap.Error(err))
		os.Exit(1)
	}
}

type runArgs struct {
	baseURL, token, devUID string
	offline                bool
	timeout                time.Duration

	name, points, crop string

	fertName string
	fertQty  float64
	fertUnit string
}

func run(ctx context.Context, log *zap.Logger, a runArgs) error {
	vertices, err := parsePoints(a.points)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	var repo plotclient.Repository
	session := plotclient.StaticToken(a.token)
	if a.offline {
		repo = plotclient.NewMemoryRepository()
		session = "offline"
	} else {
		if a.devUID != "" {
			tok, err := devLogin(ctx, a.baseURL, a.devUID)
			if err != nil {
				return fmt.Errorf("dev login: %w", err)
			}
			session = plotclient.StaticToken(tok)
		}
		repo, err = plotclient.NewHTTPRepository(plotclient.Options{
			BaseURL: a.baseURL,
			Session: session,
			Timeout: a.timeout,
			Metrics: metrics.NewRepositoryMetrics(reg),
			Logger:  log,
		})
		if err != nil {
			return err
		}
	}

	m := &logMap{log: log.Named("map")}
	c, err := coordinator.New(coordinator.Options{
		Repository:  repo,
		Session:     session,
		Renderer:    m,
		Logger:      log,
		OnAuthError: func(err error) { log.Warn("session rejected; sign in again", zap.Error(err)) },
	})
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.SessionEstablished(ctx); err != nil {
		return err
	}
	for _, p := range c.Store().Snapshot().Plots {
		log.Info("plot", zap.String("id", p.ID), zap.String("name", p.Name), zap.Stringp("crop_type", p.CropType))
	}
	if a.name == "" {
		return nil
	}

	c.StartDrawing()
	c.SetDraftName(a.name)
	for _, v := range vertices {
		m.click(v)
	}
	plot, err := c.Commit(ctx)
	if err != nil {
		if msg := c.Drawing().LastError; msg != "" && msg != err.Error() {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return err
	}
	log.Info("plot created", zap.String("id", plot.ID), zap.String("name", plot.Name))

	if a.crop != "" {
		if _, err := c.SetCropType(ctx, a.crop); err != nil {
			return fmt.Errorf("set crop type: %w", err)
		}
	}
	if a.fertName != "" {
		in := entities.FertigationInput{
			Date:           c.ObservationDate(),
			FertilizerName: a.fertName,
			Quantity:       a.fertQty,
			Unit:           entities.FertigationUnit(a.fertUnit),
		}
		if _, err := c.LogFertigation(ctx, in); err != nil {
			return fmt.Errorf("log fertigation: %w", err)
		}
	}
	c.Wait()
	if s := c.Summary(); s.Latest != nil {
		log.Info("latest fertigation", zap.String("fertilizer", s.Latest.FertilizerName),
			zap.Float64("quantity", s.Latest.Quantity), zap.String("unit", string(s.Latest.Unit)))
	}
	logRepositoryCalls(log, reg)
	return nil
}

// parsePoints reads "lng,lat;lng,lat;...".
func parsePoints(s string) ([]geo.LngLat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []geo.LngLat
	for i, pair := range strings.Split(s, ";") {
		parts := strings.Split(strings.TrimSpace(pair), ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("point %d: want lng,lat, got %q", i, pair)
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("point %d lng: %w", i, err)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("point %d lat: %w", i, err)
		}
		out = append(out, geo.Pt(lng, lat))
	}
	return out, nil
}

func devLogin(ctx context.Context, base, uid string) (string, error) {
	u := strings.TrimRight(base, "/") + "/auth/dev-login?uid=" + url.QueryEscape(uid)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("empty token")
	}
	return out.AccessToken, nil
}

func logRepositoryCalls(log *zap.Logger, g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		return
	}
	for _, f := range families {
		if f.GetName() != metrics.Namespace+"_repository_calls_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			fields := []zap.Field{zap.Float64("count", m.GetCounter().GetValue())}
			for _, l := range m.GetLabel() {
				fields = append(fields, zap.String(l.GetName(), l.GetValue()))
			}
			log.Debug("repository calls", fields...)
		}
	}
}
