// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Skillet recipe tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/marnhus/skillet/internal/apperr"
	"github.com/marnhus/skillet/internal/recipeservice"
)

// Server wraps the MCP server with Skillet tools.
type Server struct {
	mcp *server.MCPServer
	svc *recipeservice.Service
}

// New creates a new MCP server with all recipe tools registered.
func New(svc *recipeservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Skillet",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("list_recipes",
		mcp.WithDescription("List every recipe, newest first."),
	), s.listRecipes)

	s.mcp.AddTool(mcp.NewTool("list_favorites",
		mcp.WithDescription("List favorite recipes, most recently touched first."),
	), s.listFavorites)

	s.mcp.AddTool(mcp.NewTool("get_recipe",
		mcp.WithDescription("Read a recipe with its ingredients and instructions."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Recipe id")),
	), s.getRecipe)

	s.mcp.AddTool(mcp.NewTool("create_recipe",
		mcp.WithDescription("Create a new recipe with the given title."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Recipe title (must be non-empty)")),
	), s.createRecipe)

	s.mcp.AddTool(mcp.NewTool("add_ingredient",
		mcp.WithDescription("Attach an ingredient (name, quantity, unit) to a recipe."),
		mcp.WithNumber("recipe_id", mcp.Required(), mcp.Description("Owning recipe id")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Ingredient name")),
		mcp.WithNumber("quantity", mcp.Required(), mcp.Description("Numeric quantity")),
		mcp.WithString("unit", mcp.Required(), mcp.Description("Unit of measure, e.g. g or cups")),
	), s.addIngredient)

	s.mcp.AddTool(mcp.NewTool("add_instruction",
		mcp.WithDescription("Append a step to a recipe; the step number is assigned automatically."),
		mcp.WithNumber("recipe_id", mcp.Required(), mcp.Description("Owning recipe id")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Step text")),
	), s.addInstruction)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out))
}

func (s *Server) listRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipes, err := s.svc.ListRecipes(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(recipes), nil
}

func (s *Server) listFavorites(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipes, err := s.svc.ListFavorites(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(recipes), nil
}

func (s *Server) getRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.svc.GetRecipe(ctx, int64(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("recipe not found: %d", id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	ingredients, err := s.svc.ListIngredients(ctx, rec.ID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	instructions, err := s.svc.ListInstructions(ctx, rec.ID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"recipe":       rec,
		"ingredients":  ingredients,
		"instructions": instructions,
	}), nil
}

func (s *Server) createRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}
	rec, err := s.svc.CreateRecipe(ctx, title)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created recipe %d: %s", rec.ID, rec.Title)), nil
}

func (s *Server) addIngredient(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipeID, err := req.RequireInt("recipe_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	quantity, err := req.RequireFloat("quantity")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	unit, err := req.RequireString("unit")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ing, err := s.svc.CreateIngredient(ctx, int64(recipeID), name, quantity, unit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(ing), nil
}

func (s *Server) addInstruction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipeID, err := req.RequireInt("recipe_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ins, err := s.svc.CreateInstruction(ctx, int64(recipeID), text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(ins), nil
}
