package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/toastkit/cmd/toastkit/internal/config"
)

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [dir]",
		Short: "Print the resolved configuration",
		Long: `Print the configuration toastkit would use in dir (default: the
working directory), with defaults filled in, as YAML.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return printConfig(cmd, dir)
		},
	}
}

func printConfig(cmd *cobra.Command, dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return err
	}
	r, err := config.Resolve(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	source := r.File
	if source == "" {
		source = "(defaults)"
	}
	fmt.Fprintf(out, "# source: %s\n", source)
	if r.ModulePath != "" {
		fmt.Fprintf(out, "# module: %s\n", r.ModulePath)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(config.Config{
		App:    config.AppConfig{Name: r.AppName},
		Toasts: r.Toasts,
	})
}
