// Package coordinator ties the drawing session, the plot store and the repository
// into the dashboard's plot workflow.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"fieldplot/entities"
	"fieldplot/pkg/drawing"
	"fieldplot/pkg/geo"
	"fieldplot/pkg/logger"
	"fieldplot/pkg/plotclient"
	"fieldplot/pkg/plotstore"
)

type Options struct {
	Repository plotclient.Repository
	Session    plotclient.Session

	// optional
	Store       *plotstore.Store
	Drawing     *drawing.Session
	Renderer    MapRenderer
	Logger      *zap.Logger
	OnAuthError func(error)
	Now         func() time.Time
}

// Summary is the newest fertigation event of the plot it was fetched for.
type Summary struct {
	PlotID  string
	Latest  *entities.FertigationEvent
	Loading bool
}

type Coordinator struct {
	repo        plotclient.Repository
	session     plotclient.Session
	store       *plotstore.Store
	draw        *drawing.Session
	renderer    MapRenderer
	log         *zap.Logger
	onAuthError func(error)
	now         func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	loaded      bool
	committing  bool
	listening   bool
	closed      bool
	summary     Summary
	fetchSeq    uint64
	observation time.Time
}

func New(o Options) (*Coordinator, error) {
	if o.Repository == nil {
		return nil, errors.New("repository is required")
	}
	if o.Session == nil {
		return nil, errors.New("session is required")
	}
	log := logger.OrNop(o.Logger)
	c := &Coordinator{
		repo:        o.Repository,
		session:     o.Session,
		store:       o.Store,
		draw:        o.Drawing,
		renderer:    o.Renderer,
		log:         log.Named("coordinator"),
		onAuthError: o.OnAuthError,
		now:         o.Now,
	}
	if c.store == nil {
		c.store = plotstore.New(o.Repository, log)
	}
	if c.draw == nil {
		c.draw = drawing.New()
	}
	if c.renderer == nil {
		c.renderer = nopRenderer{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.observation = day(c.now())
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.store.Subscribe(c.storeChanged)
	return c, nil
}

func (c *Coordinator) Store() *plotstore.Store { return c.store }

func (c *Coordinator) Drawing() drawing.State { return c.draw.State() }

// SessionEstablished loads the user's plots once per session. An empty collection
// puts the user straight into drawing mode.
func (c *Coordinator) SessionEstablished(ctx context.Context) error {
	if _, ok := c.session.Token(); !ok {
		return ErrNoSession
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.loaded {
		c.mu.Unlock()
		return ErrAlreadyLoaded
	}
	c.loaded = true
	c.mu.Unlock()

	if err := c.store.Load(ctx); err != nil {
		c.mu.Lock()
		c.loaded = false
		c.mu.Unlock()
		c.authFailure(err)
		return err
	}
	if !c.store.Snapshot().HasPlots() {
		c.log.Info("no plots yet; starting drawing")
		c.enterDrawing()
	}
	c.Render()
	return nil
}

// SignOut drops everything tied to the session so the next SessionEstablished loads again.
func (c *Coordinator) SignOut() {
	c.draw.Finish()
	c.detachClicks()
	c.store.Reset()
	c.mu.Lock()
	c.loaded = false
	c.observation = day(c.now())
	c.mu.Unlock()
	c.Render()
}

func (c *Coordinator) StartDrawing() {
	c.enterDrawing()
	c.Render()
}

// CancelDrawing leaves drawing mode unless the user has no plots yet.
func (c *Coordinator) CancelDrawing() bool {
	if !c.draw.Cancel(c.store.Snapshot().HasPlots()) {
		return false
	}
	c.detachClicks()
	c.Render()
	return true
}

func (c *Coordinator) ClearDrawing() {
	if !c.draw.Active() {
		return
	}
	c.draw.Clear()
	c.Render()
}

func (c *Coordinator) SetDraftName(name string) {
	c.draw.SetDraftName(name)
}

func (c *Coordinator) RemoveVertex(i int) error {
	if err := c.draw.RemoveVertex(i); err != nil {
		return err
	}
	c.Render()
	return nil
}

// HandleMapClick adds a vertex while drawing and ignores the click otherwise.
func (c *Coordinator) HandleMapClick(p geo.LngLat) bool {
	if !c.draw.AddVertex(p) {
		return false
	}
	c.Render()
	return true
}

// Commit validates the draft locally and creates the plot. Local failures are
// *ValidationError and never reach the repository.
func (c *Coordinator) Commit(ctx context.Context) (entities.FieldPlot, error) {
	c.mu.Lock()
	if c.committing {
		c.mu.Unlock()
		return entities.FieldPlot{}, ErrCommitInFlight
	}
	c.committing = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.committing = false
		c.mu.Unlock()
	}()

	st := c.draw.State()
	if !st.Active {
		return entities.FieldPlot{}, ErrNotDrawing
	}
	if verr := c.validateDraft(st); verr != nil {
		c.draw.SetError(verr.Error())
		c.Render()
		return entities.FieldPlot{}, verr
	}

	name := strings.TrimSpace(st.DraftName)
	plot, err := c.store.Create(ctx, name, st.Vertices, nil)
	if err != nil {
		c.draw.SetError(createFailure(err))
		c.authFailure(err)
		c.Render()
		return entities.FieldPlot{}, err
	}
	c.draw.Finish()
	c.detachClicks()
	c.Render()
	return plot, nil
}

// validateDraft runs the local checks in order and stops at the first failure.
func (c *Coordinator) validateDraft(st drawing.State) *ValidationError {
	name := strings.TrimSpace(st.DraftName)
	if name == "" {
		return &ValidationError{Reason: ReasonEmptyName}
	}
	if p, ok := c.store.Snapshot().PlotByName(name); ok {
		return &ValidationError{Reason: ReasonDuplicateName, Conflict: p.Name}
	}
	if len(st.Vertices) < geo.MinVertices {
		return &ValidationError{Reason: ReasonTooFewVertices, Count: len(st.Vertices), Min: geo.MinVertices}
	}
	return nil
}

// createFailure picks the message shown in the drawing form.
func createFailure(err error) string {
	re, ok := plotclient.AsRepositoryError(err)
	if !ok {
		return createFailedMessage
	}
	switch re.(type) {
	case *plotclient.ValidationError, *plotclient.AuthError:
		if d := strings.TrimSpace(re.Detail()); d != "" {
			return d
		}
	}
	return createFailedMessage
}

func (c *Coordinator) SelectPlot(id string) error {
	return c.store.Select(id)
}

func (c *Coordinator) ClearSelection() {
	c.store.ClearSelection()
}

// DeletePlot removes a plot; deleting the last one sends the user back to drawing.
func (c *Coordinator) DeletePlot(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		c.authFailure(err)
		return err
	}
	if !c.store.Snapshot().HasPlots() {
		c.enterDrawing()
		c.Render()
	}
	return nil
}

// SetCropType labels the selected plot; geometry is left untouched.
func (c *Coordinator) SetCropType(ctx context.Context, cropType string) (entities.FieldPlot, error) {
	crop := strings.TrimSpace(cropType)
	if crop == "" {
		return entities.FieldPlot{}, &ValidationError{Reason: ReasonEmptyCropType}
	}
	sel, ok := c.store.Snapshot().SelectedPlot()
	if !ok {
		return entities.FieldPlot{}, ErrNoSelection
	}
	plot, _, err := c.store.Update(ctx, sel.ID, plotclient.PlotPatch{CropType: &crop})
	if err != nil {
		c.authFailure(err)
		return entities.FieldPlot{}, err
	}
	return plot, nil
}

// FertigationHistory lists the selected plot's events, newest first.
func (c *Coordinator) FertigationHistory(ctx context.Context) ([]entities.FertigationEvent, error) {
	sel, ok := c.store.Snapshot().SelectedPlot()
	if !ok {
		return nil, ErrNoSelection
	}
	events, err := c.repo.ListFertigationEvents(ctx, sel.ID)
	if err != nil {
		c.authFailure(err)
		return nil, fmt.Errorf("list fertigation events: %w", err)
	}
	return events, nil
}

func (c *Coordinator) LogFertigation(ctx context.Context, in entities.FertigationInput) (*entities.FertigationEvent, error) {
	sel, ok := c.store.Snapshot().SelectedPlot()
	if !ok {
		return nil, ErrNoSelection
	}
	if err := in.Validate(); err != nil {
		return nil, &ValidationError{Reason: ReasonInvalidFertigation, Msg: err.Error()}
	}
	e, err := c.repo.CreateFertigationEvent(ctx, sel.ID, in)
	if err != nil {
		c.authFailure(err)
		return nil, fmt.Errorf("log fertigation: %w", err)
	}
	c.refreshSummary(sel.ID)
	return e, nil
}

func (c *Coordinator) EditFertigation(ctx context.Context, eventID string, in entities.FertigationInput) (*entities.FertigationEvent, error) {
	sel, ok := c.store.Snapshot().SelectedPlot()
	if !ok {
		return nil, ErrNoSelection
	}
	if err := in.Validate(); err != nil {
		return nil, &ValidationError{Reason: ReasonInvalidFertigation, Msg: err.Error()}
	}
	e, err := c.repo.UpdateFertigationEvent(ctx, eventID, in)
	if err != nil {
		c.authFailure(err)
		return nil, fmt.Errorf("edit fertigation: %w", err)
	}
	c.refreshSummary(sel.ID)
	return e, nil
}

func (c *Coordinator) DeleteFertigation(ctx context.Context, eventID string) error {
	sel, ok := c.store.Snapshot().SelectedPlot()
	if !ok {
		return ErrNoSelection
	}
	if err := c.repo.DeleteFertigationEvent(ctx, eventID); err != nil && !plotclient.IsNotFound(err) {
		c.authFailure(err)
		return fmt.Errorf("delete fertigation: %w", err)
	}
	c.refreshSummary(sel.ID)
	return nil
}

// SetObservationDate moves the dashboard to t's calendar day. Future days are rejected.
func (c *Coordinator) SetObservationDate(t time.Time) error {
	if _, ok := c.store.Snapshot().SelectedPlot(); !ok {
		return ErrNoSelection
	}
	d := day(t)
	if d.After(day(c.now())) {
		return ErrFutureDate
	}
	c.mu.Lock()
	c.observation = d
	c.mu.Unlock()
	return nil
}

func (c *Coordinator) ObservationDate() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.observation
}

func (c *Coordinator) Features() Features {
	return FeaturesOf(c.store.Snapshot())
}

// Summary returns the fertigation summary of the selected plot, if it has arrived.
func (c *Coordinator) Summary() Summary {
	sel, ok := c.store.Snapshot().SelectedPlot()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !ok || c.summary.PlotID != sel.ID {
		return Summary{}
	}
	return c.summary
}

// Wait blocks until in-flight summary fetches have settled.
func (c *Coordinator) Wait() { c.wg.Wait() }

// Close cancels in-flight fetches and waits for them.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	c.detachClicks()
	c.wg.Wait()
}

// Render pushes the current layers to the map.
func (c *Coordinator) Render() {
	st := c.draw.State()
	c.renderer.RenderLayers(BuildLayers(c.store.Snapshot(), st.Vertices, c.draw.Preview()))
}

func (c *Coordinator) enterDrawing() {
	c.draw.Begin()
	c.mu.Lock()
	attach := !c.listening && !c.closed
	if attach {
		c.listening = true
	}
	c.mu.Unlock()
	if attach {
		c.renderer.OnClick(func(p geo.LngLat) { c.HandleMapClick(p) })
	}
}

func (c *Coordinator) detachClicks() {
	c.mu.Lock()
	detach := c.listening
	c.listening = false
	c.mu.Unlock()
	if detach {
		c.renderer.RemoveClickHandler()
	}
}

func (c *Coordinator) storeChanged(prev, next plotstore.Snapshot) {
	if selectedID(prev) != selectedID(next) {
		c.refreshSummary(selectedID(next))
	}
	c.Render()
}

// refreshSummary fetches the newest event for plotID. Only the latest request may
// write the summary, so a slow response for an earlier selection is dropped.
// A plotID that is no longer selected is ignored; the selection change that
// replaced it has already started its own fetch.
func (c *Coordinator) refreshSummary(plotID string) {
	c.mu.Lock()
	if plotID != selectedID(c.store.Snapshot()) {
		c.mu.Unlock()
		c.log.Debug("summary refresh skipped; plot no longer selected", zap.String("plot_id", plotID))
		return
	}
	c.fetchSeq++
	seq := c.fetchSeq
	c.summary = Summary{PlotID: plotID, Loading: plotID != ""}
	if plotID == "" || c.closed {
		c.summary.Loading = false
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		events, err := c.repo.ListFertigationEvents(c.ctx, plotID)

		c.mu.Lock()
		if seq != c.fetchSeq {
			c.mu.Unlock()
			c.log.Debug("stale fertigation summary dropped", zap.String("plot_id", plotID))
			return
		}
		c.summary = Summary{PlotID: plotID}
		if err == nil && len(events) > 0 {
			latest := events[0]
			c.summary.Latest = &latest
		}
		c.mu.Unlock()

		if err != nil {
			c.log.Warn("fertigation summary fetch failed", zap.String("plot_id", plotID), zap.Error(err))
			c.authFailure(err)
		}
	}()
}

func (c *Coordinator) authFailure(err error) {
	if plotclient.IsAuth(err) && c.onAuthError != nil {
		c.onAuthError(err)
	}
}

func selectedID(s plotstore.Snapshot) string {
	if p, ok := s.SelectedPlot(); ok {
		return p.ID
	}
	return ""
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
