// Package form coordinates the interest form lifecycle: field edits,
// validation, caching of in-progress input, submission, and the error
// state shown back to the user.
package form

import (
	"context"
	"sync"

	"github.com/courselaunch/waitlist-server/internal/analytics"
	"github.com/courselaunch/waitlist-server/internal/domain"
	"github.com/courselaunch/waitlist-server/internal/errors"
	"github.com/courselaunch/waitlist-server/internal/formcache"
	"github.com/courselaunch/waitlist-server/internal/validation"
)

// FormID identifies the interest form in the cache and analytics labels.
const FormID = "interest-form"

// User-facing messages for submission outcomes.
const (
	msgDuplicateEmail = "This email is already registered"
	msgNetworkError   = "Network error. Please check your connection and try again."
	msgGeneralError   = "Something went wrong. Please try again."
)

// Status is the coordinator's lifecycle state.
type Status string

// Lifecycle states. Submitted is terminal until Reset.
const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusSubmitting Status = "submitting"
	StatusSubmitted  Status = "submitted"
)

// Backend accepts validated submissions. The HTTP client implements it.
type Backend interface {
	SubmitInterest(ctx context.Context, sub domain.Submission) (*domain.Submission, error)
}

// State is a snapshot of the coordinator for rendering.
type State struct {
	Data         domain.Submission
	FieldErrors  validation.FieldErrors
	GeneralError string
	Status       Status
}

// Coordinator drives a single interest form. All methods are safe for
// concurrent use; the backend call happens outside the lock so edits and
// reads are never blocked on the network.
type Coordinator struct {
	backend   Backend
	validator *validation.Validator
	cache     *formcache.Cache[domain.Submission]
	classify  *errors.Classifier
	sink      analytics.Sink

	mu           sync.Mutex
	data         domain.Submission
	fieldErrors  validation.FieldErrors
	generalError string
	status       Status
	started      bool
	stopAutoSave func()
}

// NewCoordinator wires a coordinator from its collaborators. A nil sink
// disables analytics.
func NewCoordinator(backend Backend, validator *validation.Validator, cache *formcache.Cache[domain.Submission], classify *errors.Classifier, sink analytics.Sink) *Coordinator {
	if sink == nil {
		sink = analytics.NoopSink{}
	}
	return &Coordinator{
		backend:     backend,
		validator:   validator,
		cache:       cache,
		classify:    classify,
		sink:        sink,
		fieldErrors: validation.FieldErrors{},
		status:      StatusIdle,
	}
}

// State returns a snapshot of the current form state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Data:         c.data,
		FieldErrors:  c.copyFieldErrors(),
		GeneralError: c.generalError,
		Status:       c.status,
	}
}

// SetName updates the name field and clears its error.
func (c *Coordinator) SetName(name string) {
	c.updateField("name", func() { c.data.Name = name })
}

// SetEmail updates the email field and clears its error.
func (c *Coordinator) SetEmail(email string) {
	c.updateField("email", func() { c.data.Email = email })
}

// SetSubscriptions updates the opt-in checkboxes.
func (c *Coordinator) SetSubscriptions(newsletter, updates, releases bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.SubscribeNewsletter = newsletter
	c.data.SubscribeUpdates = updates
	c.data.SubscribeReleases = releases
	c.markStarted()
}

// FieldFocus records that the user focused a field.
func (c *Coordinator) FieldFocus(field string) {
	c.sink.Emit(analytics.NewEvent(analytics.EventFormFieldFocus, analytics.CategoryFormInteraction, field, 0))
}

// Restore loads previously cached input back into the form. Reports whether
// anything was recovered.
func (c *Coordinator) Restore() bool {
	data, ok := c.cache.Recover(FormID)
	if !ok {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
	return true
}

// StartAutoSave begins periodic snapshots of the form into the cache.
func (c *Coordinator) StartAutoSave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopAutoSave != nil {
		return
	}
	c.stopAutoSave = c.cache.AutoSave(FormID, func() domain.Submission {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.data
	})
}

// StopAutoSave stops periodic snapshots, taking a final one first.
func (c *Coordinator) StopAutoSave() {
	c.mu.Lock()
	stop := c.stopAutoSave
	c.stopAutoSave = nil
	c.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Submit validates the form and, only when validation passes, sends it to
// the backend. Invalid input never reaches the backend. Input is cached
// before the attempt and kept on every failure so it can be recovered; it
// is cleared only on success.
func (c *Coordinator) Submit(ctx context.Context) State {
	c.mu.Lock()
	if c.status == StatusSubmitting || c.status == StatusSubmitted {
		defer c.mu.Unlock()
		return State{
			Data:         c.data,
			FieldErrors:  c.copyFieldErrors(),
			GeneralError: c.generalError,
			Status:       c.status,
		}
	}

	c.status = StatusValidating
	c.generalError = ""
	data := c.data

	if fieldErrors := c.validator.ValidateSubmission(data); len(fieldErrors) > 0 {
		c.fieldErrors = fieldErrors
		c.status = StatusIdle
		c.mu.Unlock()
		c.sink.Emit(analytics.NewEvent(analytics.EventFormError, analytics.CategoryFormInteraction, FormID, len(fieldErrors)))
		return c.State()
	}

	c.fieldErrors = validation.FieldErrors{}
	c.status = StatusSubmitting
	c.mu.Unlock()

	// Snapshot before the attempt so a failure mid-flight loses nothing.
	c.cache.Put(FormID, data)
	c.sink.Emit(analytics.NewEvent(analytics.EventFormSubmit, analytics.CategoryFormInteraction, FormID, 0))

	_, err := c.backend.SubmitInterest(ctx, data)

	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case err == nil:
		c.cache.Clear(FormID)
		c.data = domain.Submission{}
		c.status = StatusSubmitted
		c.sink.Emit(analytics.NewEvent(analytics.EventConversion, analytics.CategoryEngagement, FormID, 0))
	case errors.Is(err, errors.ErrAlreadyExists):
		c.fieldErrors = validation.FieldErrors{"email": msgDuplicateEmail}
		c.status = StatusIdle
	default:
		appErr := c.classify.Classify(err)
		if appErr.Kind == errors.KindNetwork {
			c.generalError = msgNetworkError
		} else {
			c.generalError = msgGeneralError
		}
		c.status = StatusIdle
	}

	return State{
		Data:         c.data,
		FieldErrors:  c.copyFieldErrors(),
		GeneralError: c.generalError,
		Status:       c.status,
	}
}

// Reset returns the form to a blank idle state so another submission can be
// made.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = domain.Submission{}
	c.fieldErrors = validation.FieldErrors{}
	c.generalError = ""
	c.status = StatusIdle
	c.started = false
}

func (c *Coordinator) updateField(field string, apply func()) {
	c.mu.Lock()
	apply()
	delete(c.fieldErrors, field)
	c.markStarted()
	c.mu.Unlock()
}

// markStarted emits form_start on the first edit. Caller holds the lock.
func (c *Coordinator) markStarted() {
	if c.started {
		return
	}
	c.started = true
	c.sink.Emit(analytics.NewEvent(analytics.EventFormStart, analytics.CategoryFormInteraction, FormID, 0))
}

func (c *Coordinator) copyFieldErrors() validation.FieldErrors {
	out := make(validation.FieldErrors, len(c.fieldErrors))
	for k, v := range c.fieldErrors {
		out[k] = v
	}
	return out
}
