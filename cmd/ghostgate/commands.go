package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/citizenadam/GhostGate/internal/prune"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the diagnostic snapshot for a fresh session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := newEngine()
			catalog := e.Catalog()
			cmd.Print(e.Session().RenderStatus(len(catalog), e.RegistryPath()))
			return nil
		},
	}
}

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show the session counters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Print(newEngine().ReportMetrics())
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration after layer merging",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := yaml.Marshal(newEngine().Config())
			if err != nil {
				return fmt.Errorf("render config: %w", err)
			}
			cmd.Print(string(out))
			return nil
		},
	}
}

func newRegistryCmd() *cobra.Command {
	registryCmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the tool-definition catalog",
	}
	registryCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every definition in the registry directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := newEngine()
			catalog := e.Catalog()
			if len(catalog) == 0 {
				cmd.Printf("registry %s is empty\n", e.RegistryPath())
				return nil
			}

			names := make([]string, 0, len(catalog))
			for name := range catalog {
				names = append(names, name)
			}
			sort.Strings(names)

			cmd.Printf("registry %s (%d definitions):\n", e.RegistryPath(), len(catalog))
			for _, name := range names {
				def := catalog[name]
				cmd.Printf("  %-24s ~%4d tokens  %s\n", def.Name, def.SchemaTokens(), def.Description)
			}
			return nil
		},
	})
	return registryCmd
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog by name and description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			for _, extra := range args[1:] {
				query += " " + extra
			}
			cmd.Println(newEngine().SearchCatalog(query))
			return nil
		},
	}
}

func newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune <file>",
		Short: "Run the pruning engine over a file and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			cfg := newEngine().Config().Pruning
			res := prune.Prune(string(data), prune.Config{
				MaxTokens: cfg.MaxTokens,
				MinTokens: cfg.MinTokens,
			})

			cmd.Print(res.Text)
			fmt.Fprintf(os.Stderr, "pruned %d -> %d bytes, ~%d tokens saved\n",
				len(data), len(res.Text), res.TokensSaved)
			return nil
		},
	}
}
