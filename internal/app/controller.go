/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package app holds the controller shared by the desktop window and the
// terminal front-end. It owns the submission state machine, routes results
// to a View and to the history store, and gates destructive history actions
// behind a confirmation.
//
// A Controller is driven from a single goroutine (the UI thread). Requests
// run on worker goroutines and their results are handed back through a
// Poster, so View methods are only ever called from the driving goroutine.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"aichef/internal/backend"
	"aichef/internal/domain"
	"aichef/internal/history"
	applog "aichef/internal/log"
)

// State is the submission state.
type State int

const (
	Idle State = iota
	Pending
	DisplayingRecipe
	ShowingError
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case DisplayingRecipe:
		return "displaying"
	case ShowingError:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Generator produces a recipe from free-text ingredients.
type Generator interface {
	Generate(ctx context.Context, ingredients string) (domain.Recipe, error)
}

// View is what the controller drives. All calls happen on the UI goroutine.
type View interface {
	SetLoading(bool)
	SetSubmitEnabled(bool)
	ShowRecipe(domain.Recipe)
	HideRecipe()
	ShowError(msg string)
	HideError()
	RenderHistory([]domain.Recipe)
	SetSidebarVisible(bool)
}

// Confirmer asks the user a yes/no question and reports the answer to fn,
// possibly later and always on the UI goroutine.
type Confirmer interface {
	Confirm(title, message string, fn func(bool))
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(title, message string, fn func(bool))

func (f ConfirmFunc) Confirm(title, message string, fn func(bool)) { f(title, message, fn) }

// AlwaysConfirm answers yes without asking.
var AlwaysConfirm = ConfirmFunc(func(_, _ string, fn func(bool)) { fn(true) })

// Poster runs fn on the UI goroutine.
type Poster func(fn func())

// Events receives anonymous usage events.
type Events interface {
	RecipeGenerated(ingredients, steps int)
	RecipeFailed(kind string)
	HistoryCleared(entries int)
}

// Deps wires a Controller.
type Deps struct {
	Generator Generator
	History   *history.Store
	View      View
	Confirm   Confirmer
	Post      Poster
	Events    Events // optional
	Context   context.Context
}

// Controller implements the submission state machine and history actions.
type Controller struct {
	gen     Generator
	hist    *history.Store
	view    View
	confirm Confirmer
	post    Poster
	events  Events
	ctx     context.Context
	log     *slog.Logger

	state   State
	seq     uint64
	sidebar bool
	current *domain.Recipe

	wg sync.WaitGroup
}

// New creates a controller, subscribes the view to history changes and
// renders the initial list.
func New(d Deps) *Controller {
	c := &Controller{
		gen:     d.Generator,
		hist:    d.History,
		view:    d.View,
		confirm: d.Confirm,
		post:    d.Post,
		events:  d.Events,
		ctx:     d.Context,
		log:     applog.WithComponent("app"),
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	if c.confirm == nil {
		c.confirm = AlwaysConfirm
	}
	if c.post == nil {
		c.post = func(fn func()) { fn() }
	}
	c.hist.Subscribe(c.view.RenderHistory)
	c.view.SetLoading(false)
	c.view.HideRecipe()
	c.view.HideError()
	c.view.SetSubmitEnabled(true)
	c.view.SetSidebarVisible(false)
	c.view.RenderHistory(c.hist.Items())
	return c
}

// State returns the current submission state.
func (c *Controller) State() State { return c.state }

// Current returns the recipe on display, if any.
func (c *Controller) Current() (domain.Recipe, bool) {
	if c.current == nil {
		return domain.Recipe{}, false
	}
	return *c.current, true
}

// SidebarVisible reports the sidebar flag.
func (c *Controller) SidebarVisible() bool { return c.sidebar }

// Submit starts a generation for text. It returns false when the submission
// was not sent: the input was blank (an error is shown instead) or a request
// is already pending.
func (c *Controller) Submit(text string) bool {
	if c.state == Pending {
		c.log.Debug("submit ignored while pending")
		return false
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		c.fail(&backend.ValidationError{Msg: backend.EmptyInputMessage})
		return false
	}

	c.seq++
	id := c.seq
	c.state = Pending
	c.view.SetLoading(true)
	c.view.HideRecipe()
	c.view.HideError()
	c.view.SetSubmitEnabled(false)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		r, err := c.gen.Generate(c.ctx, trimmed)
		c.post(func() { c.complete(id, r, err) })
	}()
	return true
}

// HandleKey submits text when key is Enter without Shift. It reports whether
// the key was consumed; callers insert a newline otherwise.
func (c *Controller) HandleKey(key string, shift bool, text string) bool {
	if !KeySubmits(key, shift) {
		return false
	}
	c.Submit(text)
	return true
}

// Wait blocks until every started request has posted its result. Posted
// callbacks still have to be run by the UI goroutine.
func (c *Controller) Wait() { c.wg.Wait() }

func (c *Controller) complete(id uint64, r domain.Recipe, err error) {
	if id != c.seq {
		c.log.Debug("dropping stale response", slog.Uint64("seq", id), slog.Uint64("latest", c.seq))
		return
	}
	c.view.SetLoading(false)
	c.view.SetSubmitEnabled(true)
	if err != nil {
		c.fail(err)
		return
	}
	c.display(r)
	if _, herr := c.hist.Add(r); herr != nil {
		c.log.Error("history not saved", slog.Any("err", herr))
	}
	if c.events != nil {
		c.events.RecipeGenerated(len(r.Ingredients), len(r.Instructions))
	}
}

func (c *Controller) fail(err error) {
	c.state = ShowingError
	c.view.ShowError(backend.Message(err))
	if c.events != nil {
		c.events.RecipeFailed(backend.Kind(err))
	}
}

func (c *Controller) display(r domain.Recipe) {
	r = r.Normalized()
	c.current = &r
	c.state = DisplayingRecipe
	c.view.HideError()
	c.view.ShowRecipe(r)
}

// ToggleSidebar flips the sidebar and returns the new visibility.
func (c *Controller) ToggleSidebar() bool {
	c.sidebar = !c.sidebar
	c.view.SetSidebarVisible(c.sidebar)
	return c.sidebar
}

// SelectHistory shows the stored recipe named name without a request.
func (c *Controller) SelectHistory(name string) bool {
	r, ok := c.hist.Find(name)
	if !ok {
		return false
	}
	if c.state == Pending {
		// the pending result will replace it; show it anyway
		r = r.Normalized()
		c.current = &r
		c.view.ShowRecipe(r)
		return true
	}
	c.display(r)
	return true
}

// ClearHistory asks for confirmation and then empties the history.
func (c *Controller) ClearHistory() {
	c.confirm.Confirm("Clear history", "Are you sure you want to delete all your recipe history?", func(ok bool) {
		if !ok {
			return
		}
		n := c.hist.Len()
		if err := c.hist.Clear(); err != nil {
			c.log.Error("clear history failed", slog.Any("err", err))
		}
		if c.events != nil {
			c.events.HistoryCleared(n)
		}
	})
}

// DeleteHistory asks for confirmation and then removes the entry named name.
func (c *Controller) DeleteHistory(name string) {
	c.confirm.Confirm("Delete recipe", fmt.Sprintf("Delete %q from history?", name), func(ok bool) {
		if !ok {
			return
		}
		if _, err := c.hist.RemoveByName(name); err != nil {
			c.log.Error("delete history entry failed", slog.String("name", name), slog.Any("err", err))
		}
	})
}
