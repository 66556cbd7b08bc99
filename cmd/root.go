// Package cmd implements the bzldoc command line.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/bzldoc/internal/aggregate"
	"github.com/agentic-research/bzldoc/internal/archive"
	"github.com/agentic-research/bzldoc/internal/ctxlog"
	"github.com/agentic-research/bzldoc/internal/extract"
	"github.com/agentic-research/bzldoc/internal/manifest"
	"github.com/agentic-research/bzldoc/internal/pipeline"
	"github.com/agentic-research/bzldoc/internal/render"
)

const defaultOutputFile = "bzldoc.zip"

var (
	formatName   string
	outputFile   string
	outputDir    string
	renamesPath  string
	manifestPath string
	target       string
	jsonPath     string
	workers      int
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "bzldoc [files...]",
	Short: "Generate documentation archives from Starlark build definitions",
	Long: `bzldoc statically extracts rule, aspect and macro documentation from
.bzl source files and renders one Markdown or HTML page per file into a
zip archive.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&formatName, "format", "markdown", "Output format: markdown or html")
	flags.StringVarP(&outputFile, "output", "o", "", "Output zip archive path (default "+defaultOutputFile+")")
	flags.StringVar(&outputDir, "dir", "", "Write pages into a directory instead of a zip archive")
	flags.StringVar(&renamesPath, "renames", "", "Path to a tab-separated source-to-output rename file")
	flags.StringVar(&manifestPath, "manifest", "", "Path to an HCL library manifest")
	flags.StringVar(&target, "target", "", "Library to document when using --manifest")
	flags.StringVar(&jsonPath, "json", "", "Write the extracted model as JSON to the given path ('-' for stdout)")
	flags.IntVar(&workers, "workers", 0, "Extraction parallelism (0 = one per CPU)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	if outputFile != "" && outputDir != "" {
		return errors.New("only one of --output or --dir can be set")
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	ctx := ctxlog.WithLogger(cmd.Context(), logger)

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	if len(root.Srcs) == 0 && len(root.Deps) == 0 {
		return errors.New("no input files: pass .bzl files or --manifest with --target")
	}

	docs, err := pipeline.Run(ctx, pipeline.Options{
		Root:      root,
		Env:       extract.DefaultEnvironment(),
		OutputExt: format.Ext(),
		Workers:   workers,
	})
	if err != nil {
		return err
	}

	if jsonPath != "" {
		if err := writeJSON(jsonPath, docs); err != nil {
			return err
		}
	}

	pages, err := render.Render(format, docs)
	if err != nil {
		return err
	}
	if outputDir != "" {
		return archive.WriteDir(outputDir, pages)
	}
	out := outputFile
	if out == "" {
		out = defaultOutputFile
	}
	return archive.WriteZip(out, pages)
}

// resolveRoot builds the aggregation root from either the manifest or
// the plain file arguments. CLI rename directives always win over
// manifest-declared ones.
func resolveRoot(args []string) (*aggregate.Node, error) {
	var root *aggregate.Node
	if manifestPath != "" {
		nodes, err := manifest.Load(manifestPath)
		if err != nil {
			return nil, err
		}
		switch {
		case target != "":
			root = nodes[target]
			if root == nil {
				return nil, fmt.Errorf("library %q not declared in %s", target, manifestPath)
			}
		case len(nodes) == 1:
			for _, n := range nodes {
				root = n
			}
		default:
			return nil, fmt.Errorf("%s declares %d libraries, select one with --target", manifestPath, len(nodes))
		}
		root.Srcs = append(root.Srcs, args...)
	} else {
		root = &aggregate.Node{Name: "command-line", Srcs: args}
	}

	if renamesPath != "" {
		f, err := os.Open(renamesPath)
		if err != nil {
			return nil, fmt.Errorf("open renames: %w", err)
		}
		defer f.Close()
		renames, err := aggregate.ReadRenames(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", renamesPath, err)
		}
		if root.Renames == nil {
			root.Renames = map[string]string{}
		}
		for src, dest := range renames {
			root.Renames[src] = dest
		}
	}
	return root, nil
}

func writeJSON(path string, v any) error {
	data, err := oj.Marshal(v, 2)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if path == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
