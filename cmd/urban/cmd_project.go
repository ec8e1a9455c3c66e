package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"urban/internal/project"
)

var projectStatusDir string

// projectCmd groups project utilities
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project utilities",
}

var projectStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the health of a project directory",
	RunE:  runProjectStatus,
}

func init() {
	projectStatusCmd.Flags().StringVar(&projectStatusDir, "dir", "", "Project root (default: current directory)")
	projectCmd.AddCommand(projectStatusCmd)
}

func runProjectStatus(cmd *cobra.Command, args []string) error {
	root := projectStatusDir
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve working directory: %w", err)
		}
		root = cwd
	}

	st := project.NewManager(root).Inspect(root)
	if st.Meta == nil {
		return fmt.Errorf("project.json not found; run this from a project root")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Project: %s (%s)\n", st.Meta.Name, st.Meta.ID)
	fmt.Fprintf(out, "Root:    %s\n", st.Root)
	for _, d := range project.StandardDirs {
		mark := "OK"
		if !st.Dirs[d] {
			mark = "MISSING"
		}
		fmt.Fprintf(out, " - %-8s: %s\n", d, mark)
	}

	if len(st.Missing) > 0 {
		return fmt.Errorf("missing directories: %s", strings.Join(st.Missing, ", "))
	}
	return nil
}
