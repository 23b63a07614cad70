package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-research/rssg/internal/builder"
	"github.com/agentic-research/rssg/internal/langs"
	"github.com/agentic-research/rssg/internal/reposfs"
)

var (
	repoFlag         string
	langFlag         string
	generatorFlag    string
	outputFormatFlag string
	outputFileFlag   string
	cacheFlag        string
)

// buildCmd implements exactly the surface spec.md §6 describes: --repo,
// --lang, --generator, --output-format, --output-file. Only
// --generator=tree_sitter and --output-format=edgelist are implemented;
// the others (jedi, pyvis, ipysigma) name out-of-scope collaborators
// (spec.md §1) and are rejected as invalid arguments rather than silently
// ignored.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the semantic graph for a repository and print it as a JSON edge list",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&repoFlag, "repo", "", "path to the repository to analyse")
	buildCmd.Flags().StringVar(&langFlag, "lang", "", "language to analyse, e.g. python, java, go")
	buildCmd.Flags().StringVar(&generatorFlag, "generator", "tree_sitter", "graph generator (only tree_sitter is implemented)")
	buildCmd.Flags().StringVar(&outputFormatFlag, "output-format", "edgelist", "output format (only edgelist is implemented)")
	buildCmd.Flags().StringVar(&outputFileFlag, "output-file", "", "write the edge list here instead of stdout")
	buildCmd.Flags().StringVar(&cacheFlag, "cache", "", "path to a sqlite incremental build cache (spec.md §8); unset disables caching")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if repoFlag == "" {
		return invalidArgs("--repo is required")
	}
	if generatorFlag != "tree_sitter" {
		return invalidArgs("unsupported --generator %q: only tree_sitter is implemented, jedi is a separate out-of-scope collaborator", generatorFlag)
	}
	if outputFormatFlag != "edgelist" {
		return invalidArgs("unsupported --output-format %q: only edgelist is implemented", outputFormatFlag)
	}
	lang, ok := parseLanguage(langFlag)
	if !ok {
		return invalidArgs("unsupported --lang %q", langFlag)
	}

	info, err := os.Stat(repoFlag)
	if err != nil {
		return invalidRepo("--repo %q does not exist: %v", repoFlag, err)
	}
	if !info.IsDir() {
		return invalidRepo("--repo %q is a file, not a directory", repoFlag)
	}

	opts := builder.Options{
		Repo:      reposfs.Open(repoFlag),
		Languages: []langs.Language{lang},
	}
	if cacheFlag != "" {
		cache, err := builder.OpenCache(cacheFlag)
		if err != nil {
			return fmt.Errorf("opening --cache %q: %w", cacheFlag, err)
		}
		defer cache.Close()
		opts.Cache = cache
	}

	g, err := builder.Build(cmd.Context(), opts)
	if err != nil {
		return err
	}

	data, err := g.ToJSON()
	if err != nil {
		return err
	}

	if outputFileFlag == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outputFileFlag, data, 0o644)
}

func parseLanguage(name string) (langs.Language, bool) {
	for _, l := range langs.All {
		if string(l) == name {
			return l, true
		}
	}
	return "", false
}
