// Package crud implements the list, dialog and confirm-delete cycle shared by
// every console entity page.
package crud

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/console/client"
	"github.com/noah-isme/sma-room-console/internal/console/store"
)

// Mode is the dialog mode.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Messages holds the user facing texts of a resource. Empty values are
// derived from the resource name.
type Messages struct {
	FetchFailed   string
	SaveFailed    string
	DeleteFailed  string
	Created       string
	Updated       string
	Deleted       string
	ConfirmDelete string
	CreateTitle   string
	EditTitle     string
	CreateSubmit  string
	EditSubmit    string
}

// Resource describes one entity kind: where it lives in the API, how its
// form maps to payloads, and how it is rendered.
type Resource[T any, F any] struct {
	Kind  store.Kind
	Scope string
	// Name and Plural are lower case, e.g. "room" and "rooms".
	Name   string
	Plural string
	Title  string

	// CollectionPath receives POST; ListPath defaults to it.
	CollectionPath string
	ListPath       string
	ItemPath       func(id int64) string
	// BasePath is the console route of the page.
	BasePath string

	// StaleOnError keeps the previous rows when a list fetch fails.
	StaleOnError bool
	// Invalidates lists other kinds a write makes stale.
	Invalidates []store.Kind

	ID         func(T) int64
	Blank      func() F
	FormOf     func(T) F
	Decode     func(url.Values) (F, error)
	Check      func(F, Mode) map[string]string
	CreateBody func(F) interface{}
	UpdateBody func(F) interface{}

	Columns     []string
	Row         func(T) []Cell
	Links       func(T) []Link
	Fields      func(F, Mode) []Field
	CreateLabel string
	Messages    Messages
}

func (r *Resource[T, F]) defaults() {
	title := strings.ToUpper(r.Name[:1]) + r.Name[1:]
	m := &r.Messages
	set := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	set(&m.FetchFailed, "Failed to fetch "+r.Plural)
	set(&m.SaveFailed, "Failed to save "+r.Name)
	set(&m.DeleteFailed, "Failed to delete "+r.Name)
	set(&m.Created, title+" created successfully!")
	set(&m.Updated, title+" updated successfully!")
	set(&m.Deleted, title+" deleted successfully!")
	set(&m.ConfirmDelete, "Are you sure to delete this "+r.Name+"?")
	set(&m.CreateTitle, "Add "+title)
	set(&m.EditTitle, "Edit "+title)
	set(&m.CreateSubmit, "Create")
	set(&m.EditSubmit, "Update")
	if r.CreateLabel == "" {
		r.CreateLabel = m.CreateTitle
	}
	if r.ListPath == "" {
		r.ListPath = r.CollectionPath
	}
	if r.ItemPath == nil {
		base := r.CollectionPath
		r.ItemPath = func(id int64) string { return fmt.Sprintf("%s/%d", base, id) }
	}
	if r.Decode == nil {
		r.Decode = func(values url.Values) (F, error) {
			var f F
			err := binding.MapFormWithTag(&f, values, "form")
			return f, err
		}
	}
}

// Controller holds the UI state of one page for one session. It is not safe
// for concurrent use; the session lock serializes access.
type Controller[T any, F any] struct {
	res      Resource[T, F]
	api      client.API
	store    *store.Store
	validate *validator.Validate
	logger   *zap.Logger

	items         []T
	dialogOpen    bool
	mode          Mode
	editingID     int64
	form          F
	fieldErrors   map[string]string
	pendingDelete int64
	notices       []Notice
}

func NewController[T any, F any](res Resource[T, F], api client.API, st *store.Store, logger *zap.Logger) *Controller[T, F] {
	res.defaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	if st == nil {
		st = store.New(0)
	}
	return &Controller[T, F]{
		res:      res,
		api:      api,
		store:    st,
		validate: NewValidator(),
		logger:   logger.With(zap.String("resource", res.Plural)),
		form:     res.Blank(),
	}
}

// NewValidator reports field errors under their form names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (c *Controller[T, F]) key() store.Key {
	return store.Key{Kind: c.res.Kind, Scope: c.res.Scope}
}

// Load fills the list from the store, fetching on a miss. A failure queues
// the fetch notice and returns the error so the caller can react to 401.
func (c *Controller[T, F]) Load(ctx context.Context) error {
	items, err := store.Fetch(ctx, c.store, c.key(), func(ctx context.Context) ([]T, error) {
		var out []T
		if err := c.api.List(ctx, c.res.ListPath, &out); err != nil {
			return nil, err
		}
		if out == nil {
			out = []T{}
		}
		return out, nil
	})
	if err != nil {
		c.logger.Warn("list fetch failed", zap.Error(err))
		c.Notify(LevelError, c.res.Messages.FetchFailed)
		if !c.res.StaleOnError {
			c.items = nil
		}
		return err
	}
	c.items = items
	return nil
}

// Refresh forces one fetch.
func (c *Controller[T, F]) Refresh(ctx context.Context) error {
	c.store.Drop(c.key())
	return c.Load(ctx)
}

func (c *Controller[T, F]) OpenCreate() {
	c.mode = ModeCreate
	c.editingID = 0
	c.form = c.res.Blank()
	c.fieldErrors = nil
	c.dialogOpen = true
}

// OpenEdit pre-fills the form from the listed row with id. It reports false
// when the row is not in the current list.
func (c *Controller[T, F]) OpenEdit(id int64) bool {
	for _, item := range c.items {
		if c.res.ID(item) == id {
			c.OpenEditItem(item)
			return true
		}
	}
	return false
}

func (c *Controller[T, F]) OpenEditItem(item T) {
	c.mode = ModeEdit
	c.editingID = c.res.ID(item)
	c.form = c.res.FormOf(item)
	c.fieldErrors = nil
	c.dialogOpen = true
}

// CloseDialog discards the dialog without a request.
func (c *Controller[T, F]) CloseDialog() {
	c.dialogOpen = false
	c.mode = ModeCreate
	c.editingID = 0
	c.form = c.res.Blank()
	c.fieldErrors = nil
}

// SubmitValues decodes posted form values and submits them.
func (c *Controller[T, F]) SubmitValues(ctx context.Context, values url.Values) error {
	form, err := c.res.Decode(values)
	if err != nil {
		c.logger.Info("form decode failed", zap.Error(err))
		c.Fail(form, c.res.Messages.SaveFailed)
		return nil
	}
	return c.Submit(ctx, form)
}

// Submit creates or updates depending on the dialog mode. Invalid forms stay
// open without a request. On success the dialog closes and the list is
// fetched once.
func (c *Controller[T, F]) Submit(ctx context.Context, form F) error {
	c.form = form
	c.dialogOpen = true
	if errs := c.check(form); len(errs) > 0 {
		c.fieldErrors = errs
		return nil
	}
	c.fieldErrors = nil

	var err error
	if c.mode == ModeEdit {
		err = c.api.Patch(ctx, c.res.ItemPath(c.editingID), c.res.UpdateBody(form), nil)
	} else {
		err = c.api.Post(ctx, c.res.CollectionPath, c.res.CreateBody(form), nil)
	}
	if err != nil {
		c.logger.Warn("save failed", zap.Int64("id", c.editingID), zap.Error(err))
		c.Notify(LevelError, c.res.Messages.SaveFailed)
		return err
	}

	if c.mode == ModeEdit {
		c.Notify(LevelSuccess, c.res.Messages.Updated)
	} else {
		c.Notify(LevelSuccess, c.res.Messages.Created)
	}
	c.CloseDialog()
	c.invalidate()
	return c.Load(ctx)
}

// Fail keeps the dialog open with form and queues text as an error.
func (c *Controller[T, F]) Fail(form F, text string) {
	c.form = form
	c.dialogOpen = true
	c.Notify(LevelError, text)
}

func (c *Controller[T, F]) check(form F) map[string]string {
	errs := map[string]string{}
	if err := c.validate.Struct(form); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				if fe.Tag() == "required" {
					errs[fe.Field()] = fe.Field() + " is required"
				} else {
					errs[fe.Field()] = fe.Field() + " is invalid"
				}
			}
		}
	}
	if c.res.Check != nil {
		for k, v := range c.res.Check(form, c.mode) {
			errs[k] = v
		}
	}
	return errs
}

// AskDelete arms the confirmation for id. Nothing is sent yet.
func (c *Controller[T, F]) AskDelete(id int64) { c.pendingDelete = id }

func (c *Controller[T, F]) CancelDelete() { c.pendingDelete = 0 }

// ConfirmDelete deletes the armed row. A failure leaves the list untouched.
func (c *Controller[T, F]) ConfirmDelete(ctx context.Context) error {
	id := c.pendingDelete
	if id == 0 {
		return nil
	}
	c.pendingDelete = 0

	if err := c.api.Delete(ctx, c.res.ItemPath(id)); err != nil {
		c.logger.Warn("delete failed", zap.Int64("id", id), zap.Error(err))
		c.Notify(LevelError, c.res.Messages.DeleteFailed)
		return err
	}
	c.Notify(LevelSuccess, c.res.Messages.Deleted)
	if c.editingID == id {
		c.CloseDialog()
	}
	c.invalidate()
	return c.Load(ctx)
}

func (c *Controller[T, F]) invalidate() {
	c.store.Invalidate(append([]store.Kind{c.res.Kind}, c.res.Invalidates...)...)
}

// Notify queues a notice for the next render.
func (c *Controller[T, F]) Notify(level, text string) {
	c.notices = append(c.notices, Notice{Level: level, Text: text})
}

// Notices returns and clears the queued notices.
func (c *Controller[T, F]) Notices() []Notice {
	out := c.notices
	c.notices = nil
	return out
}

func (c *Controller[T, F]) Items() []T                     { return c.items }
func (c *Controller[T, F]) DialogOpen() bool               { return c.dialogOpen }
func (c *Controller[T, F]) Mode() Mode                     { return c.mode }
func (c *Controller[T, F]) EditingID() int64               { return c.editingID }
func (c *Controller[T, F]) Form() F                        { return c.form }
func (c *Controller[T, F]) FieldErrors() map[string]string { return c.fieldErrors }
func (c *Controller[T, F]) PendingDelete() int64           { return c.pendingDelete }

// Table renders the current state.
func (c *Controller[T, F]) Table() Table {
	t := Table{
		Title:       c.res.Title,
		BasePath:    c.res.BasePath,
		CreateLabel: c.res.CreateLabel,
		Columns:     append(append([]string{}, c.res.Columns...), "Actions"),
		Rows:        make([]Row, 0, len(c.items)),
	}
	for _, item := range c.items {
		id := c.res.ID(item)
		links := []Link{{Label: "Edit", Href: fmt.Sprintf("%s/edit/%d", c.res.BasePath, id)}}
		if c.res.Links != nil {
			links = append(links, c.res.Links(item)...)
		}
		links = append(links, Link{Label: "Delete", Href: fmt.Sprintf("%s/delete/%d", c.res.BasePath, id), Post: true})
		t.Rows = append(t.Rows, Row{ID: id, Cells: c.res.Row(item), Links: links})
	}

	if c.dialogOpen {
		d := &Dialog{
			Title:       c.res.Messages.CreateTitle,
			SubmitLabel: c.res.Messages.CreateSubmit,
			Action:      c.res.BasePath,
			CloseAction: c.res.BasePath + "/close",
		}
		if c.mode == ModeEdit {
			d.Title, d.SubmitLabel = c.res.Messages.EditTitle, c.res.Messages.EditSubmit
		}
		d.Fields = c.res.Fields(c.form, c.mode)
		for i := range d.Fields {
			d.Fields[i].Error = c.fieldErrors[d.Fields[i].Name]
		}
		t.Dialog = d
	}
	if c.pendingDelete != 0 {
		t.Confirm = &Confirm{
			Message:       c.res.Messages.ConfirmDelete,
			ConfirmAction: c.res.BasePath + "/delete-confirm",
			CancelAction:  c.res.BasePath + "/delete-cancel",
		}
	}
	return t
}
