// Command funnelctl manages the pipeline/stage registry from the command
// line. Pipelines are seeded from a YAML file so every environment starts
// with the same funnel layout.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"imobcrm_backend/internal/funnel/repository"
	"imobcrm_backend/platform/apperr"
	"imobcrm_backend/platform/config"
	"imobcrm_backend/platform/db"
)

type seedFile struct {
	Pipelines []seedPipeline `yaml:"pipelines"`
}

type seedPipeline struct {
	Name   string   `yaml:"name"`
	Stages []string `yaml:"stages"`
}

func main() {
	root := &cobra.Command{
		Use:           "funnelctl",
		Short:         "Manage the sales funnel registry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSeedCmd(), newListCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "funnelctl: %v\n", err)
		os.Exit(1)
	}
}

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create pipelines and stages from a YAML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, cleanup, err := openRepository(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			return seed(cmd.Context(), repo, file, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "funnels.yaml", "seed file with pipelines and stages")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print pipelines and their stages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, cleanup, err := openRepository(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			pipelines, err := repo.ListPipelines(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range pipelines {
				fmt.Fprintf(out, "%s (%s)\n", p.Name, p.ID)
				stages, err := repo.ListStages(cmd.Context(), p.ID)
				if err != nil {
					return err
				}
				for _, s := range stages {
					fmt.Fprintf(out, "  %d. %s\n", s.Position, s.Name)
				}
			}
			return nil
		},
	}
}

func openRepository(ctx context.Context) (*repository.Repo, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return repository.New(pool), pool.Close, nil
}

// seed creates missing pipelines and stages. Existing ones are left alone,
// so the command is safe to re-run.
func seed(ctx context.Context, repo repository.Repository, file string, out interface{ Write([]byte) (int, error) }) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seeds seedFile
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for _, sp := range seeds.Pipelines {
		if sp.Name == "" {
			return errors.New("pipeline with empty name in seed file")
		}

		pipeline, err := repo.GetPipelineByName(ctx, sp.Name)
		switch {
		case err == nil:
			fmt.Fprintf(out, "pipeline %q exists\n", sp.Name)
		case apperr.Is(err, apperr.KindNotFound):
			pipeline, err = repo.CreatePipeline(ctx, sp.Name)
			if err != nil {
				return fmt.Errorf("create pipeline %q: %w", sp.Name, err)
			}
			fmt.Fprintf(out, "pipeline %q created\n", sp.Name)
		default:
			return err
		}

		existing, err := repo.ListStages(ctx, pipeline.ID)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(existing))
		nextPosition := 1
		for _, s := range existing {
			known[s.Name] = true
			if s.Position >= nextPosition {
				nextPosition = s.Position + 1
			}
		}

		for _, stageName := range sp.Stages {
			if known[stageName] {
				continue
			}
			if _, err := repo.CreateStage(ctx, repository.CreateStageParams{
				PipelineID: pipeline.ID,
				Name:       stageName,
				Position:   nextPosition,
			}); err != nil {
				return fmt.Errorf("create stage %q: %w", stageName, err)
			}
			fmt.Fprintf(out, "  stage %q added at position %d\n", stageName, nextPosition)
			nextPosition++
		}
	}
	return nil
}
