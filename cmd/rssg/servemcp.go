package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/agentic-research/rssg/internal/builder"
	"github.com/agentic-research/rssg/internal/graph"
	"github.com/agentic-research/rssg/internal/langs"
	"github.com/agentic-research/rssg/internal/reposfs"
	"github.com/agentic-research/rssg/internal/retriever"
)

// serveMCPCmd exposes the Context Retriever's line-scoped queries
// (spec.md §4.I) as MCP tools over stdio, so an agent harness can ask
// "what does line L of file F depend on" without shelling out to `rssg
// build` and parsing the edge list itself. This is additional surface
// beyond spec.md's CLI description, not a replacement for it.
var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Build the graph once, then serve cross-file context queries as MCP tools over stdio",
	RunE:  runServeMCP,
}

func init() {
	serveMCPCmd.Flags().StringVar(&repoFlag, "repo", "", "path to the repository to analyse")
	serveMCPCmd.Flags().StringVar(&langFlag, "lang", "", "language to analyse, e.g. python, java, go")
	rootCmd.AddCommand(serveMCPCmd)
}

func runServeMCP(cmd *cobra.Command, _ []string) error {
	if repoFlag == "" {
		return invalidArgs("--repo is required")
	}
	lang, ok := parseLanguage(langFlag)
	if !ok {
		return invalidArgs("unsupported --lang %q", langFlag)
	}

	repo := reposfs.Open(repoFlag)
	g, err := builder.Build(cmd.Context(), builder.Options{
		Repo:      repo,
		Languages: []langs.Language{lang},
	})
	if err != nil {
		return err
	}
	r := retriever.New(g)

	s := server.NewMCPServer("rssg", "0.1.0")
	registerRetrieverTools(s, r)

	log.Printf("servemcp: serving %d nodes over stdio", g.NodeCount())
	return server.ServeStdio(s)
}

func registerRetrieverTools(s *server.MCPServer, r *retriever.Retriever) {
	s.AddTool(mcp.NewTool("cross_file_context",
		mcp.WithDescription("List every cross-file edge whose target lies in the given file (spec's deep cache key for the two line-scoped queries below)."),
		mcp.WithString("file", mcp.Required(), mcp.Description("Repository-relative or absolute file path")),
	), handleCrossFileContext(r))

	s.AddTool(mcp.NewTool("cross_file_definition_by_line",
		mcp.WithDescription("List the cross-file definitions that line L of file depends on (calls, instantiations and imports reaching out of the file)."),
		mcp.WithString("file", mcp.Required(), mcp.Description("Repository-relative or absolute file path")),
		mcp.WithNumber("line", mcp.Required(), mcp.Description("1-based line number")),
	), handleCrossFileDefinitionByLine(r))

	s.AddTool(mcp.NewTool("cross_file_reference_by_line",
		mcp.WithDescription("List the cross-file references to symbols defined near line L of file."),
		mcp.WithString("file", mcp.Required(), mcp.Description("Repository-relative or absolute file path")),
		mcp.WithNumber("line", mcp.Required(), mcp.Description("1-based line number")),
	), handleCrossFileReferenceByLine(r))
}

func handleCrossFileContext(r *retriever.Retriever) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file, ok := stringArg(req, "file")
		if !ok {
			return mcp.NewToolResultError("missing required argument: file"), nil
		}
		return edgesResult(r.CrossFileContext(file))
	}
}

func handleCrossFileDefinitionByLine(r *retriever.Retriever) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file, ok := stringArg(req, "file")
		if !ok {
			return mcp.NewToolResultError("missing required argument: file"), nil
		}
		line, ok := intArg(req, "line")
		if !ok {
			return mcp.NewToolResultError("missing required argument: line"), nil
		}
		return edgesResult(r.CrossFileDefinitionByLine(file, line))
	}
}

func handleCrossFileReferenceByLine(r *retriever.Retriever) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file, ok := stringArg(req, "file")
		if !ok {
			return mcp.NewToolResultError("missing required argument: file"), nil
		}
		line, ok := intArg(req, "line")
		if !ok {
			return mcp.NewToolResultError("missing required argument: line"), nil
		}
		return edgesResult(r.CrossFileReferenceByLine(file, line))
	}
}

// toolRow is the wire shape one (u, v, edge) triple is rendered as for an
// MCP tool result — flatter than the on-disk edge list (internal/graph's
// ToJSON), since a tool caller wants names and locations inline rather
// than a [node, node, edge] triple it has to cross-reference.
type toolRow struct {
	FromName   string `json:"from_name"`
	FromKind   string `json:"from_kind"`
	FromFile   string `json:"from_file"`
	FromLine   int    `json:"from_line,omitempty"`
	Relation   string `json:"relation"`
	ToName     string `json:"to_name"`
	ToKind     string `json:"to_kind"`
	ToFile     string `json:"to_file"`
	ToLine     int    `json:"to_line,omitempty"`
	AnchorFile string `json:"anchor_file,omitempty"`
	AnchorLine int    `json:"anchor_line,omitempty"`
}

func edgesResult(edges []graph.EdgeTriple) (*mcp.CallToolResult, error) {
	rows := make([]toolRow, 0, len(edges))
	for _, e := range edges {
		row := toolRow{
			FromName: e.U.Name,
			FromKind: string(e.U.Kind),
			FromFile: e.U.Loc.FilePath,
			FromLine: e.U.Loc.StartLine,
			Relation: e.Edge.Relation.String(),
			ToName:   e.V.Name,
			ToKind:   string(e.V.Kind),
			ToFile:   e.V.Loc.FilePath,
			ToLine:   e.V.Loc.StartLine,
		}
		if e.Edge.Anchor != nil {
			row.AnchorFile = e.Edge.Anchor.FilePath
			row.AnchorLine = e.Edge.Anchor.StartLine
		}
		rows = append(rows, row)
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// stringArg and intArg extract tool arguments independent of the exact
// Go type mcp-go decodes CallToolRequest.Params.Arguments into across
// versions (map[string]any or a raw JSON message): round-tripping
// through encoding/json normalises either shape.
func toolArgs(req mcp.CallToolRequest) map[string]any {
	raw, err := json.Marshal(req.Params.Arguments)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func stringArg(req mcp.CallToolRequest, key string) (string, bool) {
	v, ok := toolArgs(req)[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func intArg(req mcp.CallToolRequest, key string) (int, bool) {
	v, ok := toolArgs(req)[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}
