package main

import (
	"sync"

	"go.uber.org/zap"

	"fieldplot/pkg/coordinator"
	"fieldplot/pkg/geo"
)

// logMap stands in for the interactive map: it logs the layers it is given and
// replays command-line points as clicks while a handler is registered.
type logMap struct {
	log *zap.Logger

	mu      sync.Mutex
	handler coordinator.ClickHandler
}

func (m *logMap) RenderLayers(l coordinator.Layers) {
	fields := []zap.Field{
		zap.Int("secondary", len(l.Secondary)),
		zap.Int("markers", len(l.Markers)),
	}
	if l.Primary != nil {
		fields = append(fields, zap.String("primary", l.Primary.Name))
	}
	if l.FitBounds != nil {
		fields = append(fields, zap.Any("fit", l.FitBounds))
	}
	m.log.Debug("render", fields...)
}

func (m *logMap) OnClick(h coordinator.ClickHandler) {
	m.mu.Lock()
	m.handler = h
	m.mu.Unlock()
}

func (m *logMap) RemoveClickHandler() {
	m.mu.Lock()
	m.handler = nil
	m.mu.Unlock()
}

func (m *logMap) click(p geo.LngLat) {
	m.mu.Lock()
	h := m.handler
	m.mu.Unlock()
	if h != nil {
		h(p)
	}
}
