package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/tidytex/internal/logging"
	"github.com/jonathan/tidytex/internal/observability"
	"github.com/jonathan/tidytex/internal/parsing"
	"github.com/jonathan/tidytex/internal/rendering"
	"github.com/jonathan/tidytex/internal/typeset"
)

var buildCmd = &cobra.Command{
	Use:   "build [resume.ini...]",
	Short: "Render an INI resume to LaTeX and typeset it as PDF",
	Long: "Renders each input resume to <out>.tex and runs the LaTeX engine once on it. " +
		"The default output path is the input path with .ini replaced by .pdf. " +
		"Several inputs are built concurrently.",
	RunE: runBuild,
}

var (
	buildIniFile        string
	buildStyle          string
	buildOutFile        string
	buildFontSize       string
	buildEngine         string
	buildNoCompile      bool
	buildForce          bool
	buildKeepByproducts bool
	buildMaxPages       int
	buildStrictGroups   bool
	buildTimeout        time.Duration
	buildJobs           int
)

func init() {
	buildCmd.Flags().StringVarP(&buildIniFile, "ini", "i", "", "Path to the resume INI file")
	buildCmd.Flags().StringVarP(&buildStyle, "sty", "s", rendering.DefaultStyle, "LaTeX style resource")
	buildCmd.Flags().StringVarP(&buildOutFile, "out", "o", "", "Path to the output PDF (default: input with .ini replaced by .pdf)")
	buildCmd.Flags().StringVar(&buildFontSize, "font-size", rendering.DefaultFontSize, "Document font size: 10pt, 11pt or 12pt")
	buildCmd.Flags().StringVar(&buildEngine, "engine", typeset.DefaultEngine, "LaTeX engine: pdflatex, xelatex or lualatex")
	buildCmd.Flags().BoolVar(&buildNoCompile, "no-compile", false, "Write the .tex file only")
	buildCmd.Flags().BoolVar(&buildForce, "force", false, "Run the engine even when the PDF is up to date")
	buildCmd.Flags().BoolVar(&buildKeepByproducts, "keep-byproducts", false, "Keep .aux, .log and .out files")
	buildCmd.Flags().IntVar(&buildMaxPages, "max-pages", 0, "Warn when the PDF has more pages (0 disables the check)")
	buildCmd.Flags().BoolVar(&buildStrictGroups, "strict-groups", false, "Fail on continuation sections that do not follow their group")
	buildCmd.Flags().DurationVar(&buildTimeout, "timeout", typeset.DefaultTimeout, "Maximum time for one engine run")
	buildCmd.Flags().IntVarP(&buildJobs, "jobs", "j", 0, "Concurrent builds (default: GOMAXPROCS)")

	rootCmd.AddCommand(buildCmd)
}

// buildOptions configures the build of one input file.
type buildOptions struct {
	Input          string
	Output         string
	Style          string
	FontSize       string
	Engine         string
	Timeout        time.Duration
	StrictGroups   bool
	NoCompile      bool
	Force          bool
	KeepByproducts bool
	MaxPages       int
	// EngineOutput receives the engine console output; nil discards it.
	EngineOutput io.Writer
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputs := args
	if buildIniFile != "" {
		inputs = append([]string{buildIniFile}, args...)
	}
	if len(inputs) == 0 {
		return &UsageError{Message: "an input file is required: use --ini or pass it as an argument"}
	}
	if buildOutFile != "" && len(inputs) > 1 {
		return &UsageError{Message: "--out cannot be used with more than one input"}
	}

	s := current
	var engineOutput io.Writer
	if s.printer != nil {
		engineOutput = cmd.ErrOrStderr()
	}

	g, gCtx := errgroup.WithContext(cmd.Context())
	g.SetLimit(resolveJobs(buildJobs, len(inputs)))
	for _, input := range inputs {
		opts := buildOptions{
			Input:          input,
			Output:         buildOutFile,
			Style:          s.cfg.Style,
			FontSize:       s.cfg.FontSize,
			Engine:         s.cfg.Engine,
			Timeout:        s.cfg.Timeout(),
			StrictGroups:   s.cfg.StrictGroups,
			NoCompile:      buildNoCompile,
			Force:          buildForce,
			KeepByproducts: s.cfg.KeepByproducts,
			MaxPages:       s.cfg.MaxPages,
			EngineOutput:   engineOutput,
		}
		g.Go(func() error {
			ctx := logging.WithBuildID(gCtx, uuid.New().String())
			result, err := buildFile(ctx, s, opts)
			if err != nil {
				return fmt.Errorf("build %s: %w", input, err)
			}
			if s.printer != nil {
				s.printer.PrintBuildResult(*result)
			}
			return nil
		})
	}
	return g.Wait()
}

// resolveJobs bounds concurrency by GOMAXPROCS unless set explicitly.
func resolveJobs(flagJobs, inputs int) int {
	n := flagJobs
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return max(1, min(n, inputs))
}

// buildFile parses, renders, and typesets one resume.
func buildFile(ctx context.Context, s *settings, opts buildOptions) (*observability.BuildResult, error) {
	logger := logging.FromContext(ctx, s.logger).With("input", opts.Input)
	logger.Info("build started")

	doc, err := parsing.ParseFile(opts.Input)
	if err != nil {
		return nil, err
	}

	if s.printer != nil {
		if plans, err := rendering.Plan(doc, false, nil); err == nil {
			s.printer.PrintDocument(opts.Input, plans)
		}
	}

	markup, err := rendering.RenderDocument(doc, rendering.Options{
		FontSize:     opts.FontSize,
		Style:        opts.Style,
		StrictGroups: opts.StrictGroups,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}

	pdfPath := opts.Output
	if pdfPath == "" {
		pdfPath = typeset.ReplaceExt(opts.Input, "ini", "pdf")
	}
	pdfPath = typeset.ReplaceExt(pdfPath, "pdf", "pdf")
	texPath := typeset.TexPath(pdfPath)

	result := &observability.BuildResult{
		Input:       opts.Input,
		TexPath:     texPath,
		Fingerprint: typeset.Fingerprint(markup),
	}

	if !opts.NoCompile && !opts.Force && typeset.UpToDate(pdfPath, markup) {
		logger.Info("output is up to date; engine not run", "pdf", pdfPath)
		result.PDFPath = pdfPath
		result.UpToDate = true
		return result, nil
	}

	if err := typeset.RemoveStale(pdfPath); err != nil {
		return nil, err
	}
	if err := typeset.WriteMarkup(texPath, markup); err != nil {
		return nil, err
	}
	logger.Info("wrote markup", "tex", texPath, "blake3", result.Fingerprint)

	if opts.NoCompile {
		return result, nil
	}

	compiled, compileErr := typeset.Compile(ctx, texPath, typeset.Options{
		Engine:  opts.Engine,
		Timeout: opts.Timeout,
		Output:  opts.EngineOutput,
	})
	if !opts.KeepByproducts {
		if err := typeset.CleanupByproducts(pdfPath); err != nil {
			logger.Warn("could not remove byproducts", "error", err)
		}
	}
	if compileErr != nil {
		var compErr *typeset.CompilationError
		if errors.As(compileErr, &compErr) && s.printer != nil && compErr.LogOutput != "" {
			s.printer.PrintCompileFailure(compErr.ExitCode, compErr.LogOutput)
		}
		return nil, compileErr
	}
	result.PDFPath = compiled
	logger.Info("typeset PDF", "pdf", compiled)

	if opts.MaxPages > 0 {
		pages, err := typeset.CountPages(compiled)
		if err != nil {
			logger.Warn("could not count pages", "error", err)
		} else {
			result.Pages = pages
			if pages > opts.MaxPages {
				logger.Warn("PDF exceeds page limit", "pages", pages, "max_pages", opts.MaxPages)
			}
		}
	}
	return result, nil
}
