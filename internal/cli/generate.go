package cli

import (
	"fmt"

	"github.com/kolah/swaggen/internal/codegen"
	"github.com/kolah/swaggen/internal/config"
	"github.com/kolah/swaggen/internal/loader"
	"github.com/kolah/swaggen/internal/writer"
	"github.com/spf13/cobra"
)

func GenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate client stubs from a Swagger 2.0 document",
		Long:  "Generate client stubs for the target set in the config file (default: typescript).",
		RunE:  runGenerate(""),
	}

	config.BindCommonFlags(cmd)
	cmd.Flags().String("module", "", "Go import path of the output directory (go target)")
	cmd.AddCommand(newTypeScriptCmd(), newGoCmd())

	return cmd
}

func newTypeScriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "typescript",
		Short: "Generate TypeScript request classes and model declarations",
		RunE:  runGenerate(config.TargetTypeScript),
	}
}

func newGoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "go",
		Short: "Generate Go request descriptors and model types",
		RunE:  runGenerate(config.TargetGo),
	}
	cmd.Flags().StringP("module", "m", "", "Go import path of the output directory")
	return cmd
}

func runGenerate(target string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd, target)
		if err != nil {
			return &usageError{err: err}
		}

		result, err := loader.LoadFile(cfg.Spec)
		if err != nil {
			return fmt.Errorf("loading spec: %w", err)
		}

		spec, err := loader.Transform(result)
		if err != nil {
			return fmt.Errorf("transforming spec: %w", err)
		}

		for _, w := range spec.Warnings {
			cmd.PrintErrf("Warning: %s\n", w)
		}

		cmd.PrintErrf("Loaded Swagger %s: %s v%s\n", result.Version, spec.Info.Title, spec.Info.Version)
		cmd.PrintErrf("  Definitions: %d\n", len(spec.Definitions))
		cmd.PrintErrf("  Operations: %d\n", len(spec.Operations))

		gen, err := codegen.New(cfg)
		if err != nil {
			return fmt.Errorf("creating generator: %w", err)
		}

		plan, err := gen.Generate(spec)
		if err != nil {
			return fmt.Errorf("generating code: %w", err)
		}

		for _, w := range plan.Warnings {
			cmd.PrintErrf("Warning: %s\n", w)
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if dryRun {
			for _, out := range plan.Outputs {
				cmd.Printf("// %s\n%s\n", out.Filename, out.Content)
			}
			return nil
		}

		results, err := writer.Write(cfg.Output.Dir, plan.Outputs)
		for _, r := range results {
			if r.Status == writer.StatusWritten {
				cmd.PrintErrf("Written: %s\n", r.Path)
			} else {
				cmd.PrintErrf("Unchanged: %s\n", r.Path)
			}
		}
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		return nil
	}
}
