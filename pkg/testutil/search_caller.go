package testutil

import (
	"context"
	"errors"

	"github.com/ujdhesa/unisubs/internal/domain/search"
)

type MockSearchCaller struct {
	IndexTeamFunc   func(ctx context.Context, id string, data search.TeamData) error
	IndexVideoFunc  func(ctx context.Context, id string, data search.VideoData) error
	DeleteTeamFunc  func(ctx context.Context, id string) error
	DeleteVideoFunc func(ctx context.Context, id string) error
	SearchTeamFunc  func(ctx context.Context, query string, offset, limit int) ([]string, error)
	SearchVideoFunc func(ctx context.Context, query string, offset, limit int) ([]string, error)
}

func (c *MockSearchCaller) IndexTeam(ctx context.Context, id string, data search.TeamData) error {
	if c.IndexTeamFunc != nil {
		return c.IndexTeamFunc(ctx, id, data)
	}

	return nil
}

func (c *MockSearchCaller) IndexVideo(ctx context.Context, id string, data search.VideoData) error {
	if c.IndexVideoFunc != nil {
		return c.IndexVideoFunc(ctx, id, data)
	}

	return nil
}

func (c *MockSearchCaller) DeleteTeam(ctx context.Context, id string) error {
	if c.DeleteTeamFunc != nil {
		return c.DeleteTeamFunc(ctx, id)
	}

	return nil
}

func (c *MockSearchCaller) DeleteVideo(ctx context.Context, id string) error {
	if c.DeleteVideoFunc != nil {
		return c.DeleteVideoFunc(ctx, id)
	}

	return nil
}

func (c *MockSearchCaller) SearchTeam(ctx context.Context, query string, offset, limit int) ([]string, error) {
	if c.SearchTeamFunc != nil {
		return c.SearchTeamFunc(ctx, query, offset, limit)
	}

	return nil, errors.New("not implemented")
}

func (c *MockSearchCaller) SearchVideo(ctx context.Context, query string, offset, limit int) ([]string, error) {
	if c.SearchVideoFunc != nil {
		return c.SearchVideoFunc(ctx, query, offset, limit)
	}

	return nil, errors.New("not implemented")
}

func (c *MockSearchCaller) Close() {}
