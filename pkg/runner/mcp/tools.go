package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListEventsTool(srv, svc)
	registerListStagesTool(srv, svc)
	registerListFavoritesTool(srv, svc)
	registerToggleFavoriteTool(srv, svc)
	registerBuildScheduleTool(srv, svc)
	registerPrintScheduleTool(srv, svc)
	registerRescanPageTool(srv, svc)
}

func registerListEventsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_events",
		mcp.WithDescription("List the performances on the festival schedule page."),
		mcp.WithBoolean("favorites_only",
			mcp.Description("Only list favorited performances."),
		),
		mcp.WithString("stage",
			mcp.Description("Only list performances on this stage."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			FavoritesOnly bool   `json:"favorites_only"`
			Stage         string `json:"stage"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		events, err := svc.ListEvents(ctx, args.FavoritesOnly, args.Stage)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"count":  len(events),
			"events": events,
		})
	})
}

func registerListStagesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_stages",
		mcp.WithDescription("List the stages on the festival schedule page."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stages, err := svc.ListStages(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"stages": stages})
	})
}

func registerListFavoritesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_favorites",
		mcp.WithDescription("List favorited performances, including ones not on the current page."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		favs, err := svc.ListFavorites(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"count":     len(favs),
			"favorites": favs,
		})
	})
}

func registerToggleFavoriteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_favorite",
		mcp.WithDescription("Add a performance to favorites, or remove it if it already is one."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Performance identifier as returned by list_events."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		res, err := svc.ToggleFavorite(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerBuildScheduleTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"build_schedule",
		mcp.WithDescription("Group the favorites on the page into conflicts by start time."),
		mcp.WithNumber("timeout",
			mcp.Description("Conflict timeout in minutes: 5, 10, 15, 20, 25 or 30."),
		),
		mcp.WithString("mode",
			mcp.Description("Window anchoring: start (every member within timeout of the first) or chain."),
			mcp.Enum("start", "chain"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Timeout int    `json:"timeout"`
			Mode    string `json:"mode"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		sched, err := svc.BuildSchedule(ctx, ScheduleOptions{Timeout: args.Timeout, Mode: args.Mode})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sched)
	})
}

func registerPrintScheduleTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"print_schedule",
		mcp.WithDescription("Return the printable personal schedule with numbered conflict blocks."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := svc.PrintSchedule(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(doc)
	})
}

func registerRescanPageTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"rescan_page",
		mcp.WithDescription("Fetch the festival schedule page again."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap, err := svc.Rescan(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"day":    snap.Day,
			"stages": snap.Stages,
			"events": len(snap.Events),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
