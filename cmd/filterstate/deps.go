package main

import (
	"context"
	"sync"

	"github.com/ocp-advisor/filterstate/internal/app"
	"github.com/ocp-advisor/filterstate/internal/filters"
	"github.com/ocp-advisor/filterstate/internal/logging"
	"github.com/ocp-advisor/filterstate/internal/storage"
	"github.com/ocp-advisor/filterstate/internal/version"
)

// serviceClient opens storage on first use, after the root command has
// loaded the configuration.
type serviceClient struct {
	once    sync.Once
	svc     *app.FiltersService
	storage storage.Storage
	err     error
}

var client = &serviceClient{}

func (c *serviceClient) service(ctx context.Context) (*app.FiltersService, error) {
	c.once.Do(func() {
		st, err := storage.NewFromConfig(ctx)
		if err != nil {
			c.err = err
			return
		}
		svc, err := app.NewFiltersService(ctx, filters.NewStore(), st, logging.GetGlobal())
		if err != nil {
			_ = st.Close()
			c.err = err
			return
		}
		c.storage = st
		c.svc = svc
	})
	return c.svc, c.err
}

// Close releases the storage backend if it was opened.
func (c *serviceClient) Close() error {
	if c.storage == nil {
		return nil
	}
	return c.storage.Close()
}

func (c *serviceClient) Summaries() ([]app.ViewSummary, error) {
	svc, err := c.service(context.Background())
	if err != nil {
		return nil, err
	}
	return svc.Summaries()
}

func (c *serviceClient) Show(view string) (filters.State, error) {
	svc, err := c.service(context.Background())
	if err != nil {
		return filters.State{}, err
	}
	return svc.Show(view)
}

// Default needs no storage.
func (c *serviceClient) Default(view string) (filters.State, error) {
	v, err := filters.ParseView(view)
	if err != nil {
		return filters.State{}, err
	}
	return filters.Default(v)
}

func (c *serviceClient) Replace(ctx context.Context, view string, next filters.State) (filters.State, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return filters.State{}, err
	}
	return svc.Replace(ctx, view, next)
}

func (c *serviceClient) Reset(ctx context.Context, view string, current *filters.State) (filters.State, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return filters.State{}, err
	}
	return svc.Reset(ctx, view, current)
}

func (c *serviceClient) ResetAll(ctx context.Context) error {
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}
	return svc.ResetAll(ctx)
}

func (c *serviceClient) Purge(ctx context.Context) error {
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}
	return svc.Purge(ctx)
}

func (c *serviceClient) Version() string {
	return version.String()
}
