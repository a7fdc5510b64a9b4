// Package cli wires the cobra command tree: flag parsing, collaborator
// construction, and the setup orchestration live here; all semantics live
// under engine/.
package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd builds the forumkit command tree.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "forumkit",
		Short:         "Scaffold and deploy a forum site",
		Long:          "forumkit deploys a ready-to-configure forum site into a target directory.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		SetupCmd(),
	)

	return root
}
