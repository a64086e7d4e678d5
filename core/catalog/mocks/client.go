package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quote-manager/core/catalog"
)

// Client is a mock implementation of catalog.Client
type Client struct {
	mock.Mock
}

func (m *Client) LookupConfigurations(ctx context.Context, ids []string) (map[string]catalog.Definition, error) {
	args := m.Called(ctx, ids)
	if defs, ok := args.Get(0).(map[string]catalog.Definition); ok {
		return defs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) LookupProductLinks(ctx context.Context, ids []string) (map[string]string, error) {
	args := m.Called(ctx, ids)
	if links, ok := args.Get(0).(map[string]string); ok {
		return links, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) LookupParents(ctx context.Context, ids []string) (map[string]string, error) {
	args := m.Called(ctx, ids)
	if parents, ok := args.Get(0).(map[string]string); ok {
		return parents, args.Error(1)
	}
	return nil, args.Error(1)
}
