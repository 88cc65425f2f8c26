package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the kube-explorer application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kube-explorer",
	Short: "Browse the resources of a Kubernetes cluster",
	Long: `kube-explorer loads a catalog of the resources in a Kubernetes cluster and
lets you browse it by category, search it by text and follow label based
relationships between resources.

The catalog is served through a dashboard HTTP API and as
Model Context Protocol (MCP) tools. The select and relate commands query a
catalog once and print the result.

When run without subcommands, it starts the server (equivalent to 'kube-explorer serve').`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "kube-explorer version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSelectCmd())
	rootCmd.AddCommand(newRelateCmd())
}
