package client

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/ujdhesa/unisubs/internal/domain/search"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type SearchCaller interface {
	IndexTeam(ctx context.Context, id string, data search.TeamData) error
	IndexVideo(ctx context.Context, id string, data search.VideoData) error
	DeleteTeam(ctx context.Context, id string) error
	DeleteVideo(ctx context.Context, id string) error
	SearchTeam(ctx context.Context, query string, offset, limit int) ([]string, error)
	SearchVideo(ctx context.Context, query string, offset, limit int) ([]string, error)
	Close()
}

type searchCaller struct {
	client *rpc.Client
}

func NewSearchCaller(client *rpc.Client) *searchCaller {
	return &searchCaller{client: client}
}

func (c *searchCaller) IndexTeam(ctx context.Context, id string, data search.TeamData) error {
	return c.client.CallContext(ctx, nil, c.fname(ctx, "index"), search.TeamDoc, id, data)
}

func (c *searchCaller) IndexVideo(ctx context.Context, id string, data search.VideoData) error {
	return c.client.CallContext(ctx, nil, c.fname(ctx, "index"), search.VideoDoc, id, data)
}

func (c *searchCaller) DeleteTeam(ctx context.Context, id string) error {
	return c.client.CallContext(ctx, nil, c.fname(ctx, "delete"), search.TeamDoc, id)
}

func (c *searchCaller) DeleteVideo(ctx context.Context, id string) error {
	return c.client.CallContext(ctx, nil, c.fname(ctx, "delete"), search.VideoDoc, id)
}

func (c *searchCaller) SearchTeam(ctx context.Context, query string, offset, limit int) ([]string, error) {
	var result []string
	err := c.client.
		CallContext(ctx, &result, c.fname(ctx, "search"), search.TeamDoc, query, offset, limit)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *searchCaller) SearchVideo(ctx context.Context, query string, offset, limit int) ([]string, error) {
	var result []string
	err := c.client.
		CallContext(ctx, &result, c.fname(ctx, "search"), search.VideoDoc, query, offset, limit)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *searchCaller) Close() {
	c.client.Close()
}

func (c *searchCaller) fname(ctx context.Context, funcName string) string {
	return fmt.Sprintf("%s_%s", xcontext.Configs(ctx).SearchServer.RPCName, funcName)
}
