package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"urban/internal/project"
)

var (
	initDir   string
	initForce bool
)

// initCmd scaffolds a new research project
var initCmd = &cobra.Command{
	Use:   "init NAME",
	Short: "Initialize a new research project",
	Long: `Creates a research project directory with the standard layout:

  data/     raw and processed datasets
  outputs/  generated artifacts
  logs/     chat transcripts and run logs
  notes/    free-form notes

A project.json metadata file records the project identity.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initDir, "dir", "", "Directory to create the project in (default: current)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Proceed even if the project directory exists")
}

func runInit(cmd *cobra.Command, args []string) error {
	name := args[0]

	base := initDir
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve working directory: %w", err)
		}
		base = cwd
	}

	pm := project.NewManager(base)
	root, err := pm.Create(name, initForce)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	logger.Debug("project created", zap.String("name", name), zap.String("root", root))

	fmt.Fprintf(cmd.OutOrStdout(), "Created project at: %s\n", root)
	fmt.Fprintln(cmd.OutOrStdout(), "Standard layout: data/, outputs/, logs/, notes/")
	return nil
}
