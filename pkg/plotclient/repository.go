// Package plotclient is the typed client for the remote plot API.
package plotclient

import (
	"context"

	"fieldplot/entities"
	"fieldplot/pkg/geo"
)

// PlotPatch is a partial plot update; nil fields are not sent.
type PlotPatch = entities.FieldPlotUpdate

// Repository is the remote plot store. Every error it returns is a RepositoryError.
type Repository interface {
	// ListPlots returns the session user's plots in no particular order.
	ListPlots(ctx context.Context) ([]entities.FieldPlot, error)
	// CreatePlot sends vertices as an open ring; the server closes it.
	CreatePlot(ctx context.Context, name string, vertices []geo.LngLat, cropType *string) (*entities.FieldPlot, error)
	UpdatePlot(ctx context.Context, id string, patch PlotPatch) (*entities.FieldPlot, error)
	DeletePlot(ctx context.Context, id string) error

	// ListFertigationEvents is newest first; callers rely on element 0 being the latest.
	ListFertigationEvents(ctx context.Context, plotID string) ([]entities.FertigationEvent, error)
	CreateFertigationEvent(ctx context.Context, plotID string, in entities.FertigationInput) (*entities.FertigationEvent, error)
	UpdateFertigationEvent(ctx context.Context, eventID string, in entities.FertigationInput) (*entities.FertigationEvent, error)
	DeleteFertigationEvent(ctx context.Context, eventID string) error
}

// Session is the current authenticated session as seen by the client.
type Session interface {
	// Token returns the bearer token and whether the session is valid.
	Token() (string, bool)
}

// StaticToken is a Session backed by a fixed token; empty means signed out.
type StaticToken string

func (t StaticToken) Token() (string, bool) { return string(t), t != "" }
