package main

import (
	"context"
	"fmt"
	"os"

	_ "sparknest-backend/docs" // Important for Swagger

	"github.com/spf13/cobra"
)

// @title           SparkNest Studio API
// @version         1.0
// @description     Contact and project request forms for the SparkNest Studio website.
// @host            localhost:8080
// @BasePath        /api
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sparknest",
		Short: "SparkNest Studio form backend",
		Long: `SparkNest Studio form backend validates contact and project requests
from the website and emails them to the studio.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newPreviewCmd())
	return root
}
