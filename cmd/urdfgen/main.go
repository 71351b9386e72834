// Command urdfgen computes rigid-body inertial properties of triangulated
// meshes and prints a URDF-style link fragment per input.
//
// Arguments are classified in order, not by position: a positive number
// sets the target total mass, a .txt file supplies joint translation
// offsets, anything else is imported as a mesh (.stl, .obj, .3mf) or
// scripted solid (.zy). Link order is argument order.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"urdfgen/pkg/app"
)

var rootCmd = &cobra.Command{
	Use:   "urdfgen [mass] [joints.txt] mesh...",
	Short: "Compute mesh inertial properties and emit URDF link fragments",
	Long: `urdfgen measures the volume, center of mass, and inertia tensor of one
or more closed triangle meshes, distributes a target total mass across
the links in proportion to volume, chains joint translation offsets,
and prints a URDF <inertial>/<visual> fragment for each link.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(args, cmd.OutOrStdout())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
