package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerFavoritesResource(srv, svc)
	registerScheduleResource(srv, svc)
}

func registerFavoritesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"lineup://favorites",
		"Favorites",
		mcp.WithResourceDescription("Favorited performances and whether each is on the current page."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		favs, err := svc.ListFavorites(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"favorites": favs,
			"count":     len(favs),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerScheduleResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"lineup://schedule",
		"Schedule",
		mcp.WithResourceDescription("The conflict-annotated personal schedule at the current timeout."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		sched, err := svc.BuildSchedule(ctx, ScheduleOptions{})
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, sched)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
