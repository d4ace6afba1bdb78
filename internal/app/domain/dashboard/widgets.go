package dashboard

import (
	"context"
	"errors"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/backend"
)

// widget is one independently loaded dashboard section.
type widget struct {
	id    string
	title string
	body  templ.Component
	err   error
}

// loader fetches widgets in parallel. A failed widget keeps its error and the
// rest of the page still renders; only a rejected token stops the page.
type loader struct {
	g       *errgroup.Group
	ctx     context.Context
	widgets []*widget
}

func newLoader(ctx context.Context) *loader {
	g, gctx := errgroup.WithContext(ctx)
	return &loader{g: g, ctx: gctx}
}

func (l *loader) add(id, title string, load func(ctx context.Context) (templ.Component, error)) {
	w := &widget{id: id, title: title}
	l.widgets = append(l.widgets, w)
	l.g.Go(func() error {
		body, err := load(l.ctx)
		if errors.Is(err, backend.ErrUnauthorized) {
			return err
		}
		w.body, w.err = body, err
		return nil
	})
}

// static adds a widget that needs no fetch.
func (l *loader) static(id, title string, body templ.Component) {
	l.widgets = append(l.widgets, &widget{id: id, title: title, body: body})
}

func (l *loader) wait() ([]*widget, error) {
	if err := l.g.Wait(); err != nil {
		return nil, err
	}
	return l.widgets, nil
}
