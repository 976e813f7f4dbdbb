package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flatpak-cargo/pkg/buildinfo"
	"github.com/matzehuels/flatpak-cargo/pkg/cargo"
	"github.com/matzehuels/flatpak-cargo/pkg/flatpak"
	"github.com/matzehuels/flatpak-cargo/pkg/generator"
	"github.com/matzehuels/flatpak-cargo/pkg/vcs"
)

// generateOpts holds the flags of the root command.
type generateOpts struct {
	output string
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var opts generateOpts

	root := &cobra.Command{
		Use:   "flatpak-cargo-generator <Cargo.lock>",
		Short: "Generate flatpak-builder sources from a Cargo.lock",
		Long: `Generate the flatpak-builder sources needed to build a Rust project offline.

Every crates.io package becomes a .crate download and every git package a
pinned clone. The generated list ends with a cargo config that redirects all
sources to the vendored tree, so cargo never touches the network.

Output ending in .yaml or .yml is written as YAML, anything else as JSON.`,
		Example: `  # Write generated-sources.json next to the manifest
  flatpak-cargo-generator Cargo.lock

  # Choose the output file
  flatpak-cargo-generator Cargo.lock -o cargo-sources.json`,
		Args:         cobra.ExactArgs(1),
		Version:      buildinfo.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.Flags().StringVarP(&opts.output, "output", "o", defaultOutput, "output file")

	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// runGenerate reads lockPath and writes the generated sources to opts.output.
func (c *CLI) runGenerate(ctx context.Context, lockPath string, opts generateOpts) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lock, err := cargo.LoadLockfile(lockPath)
	if err != nil {
		return err
	}
	c.Logger.Debug("Loaded lockfile", "path", lockPath, "version", lock.Version, "packages", len(lock.Packages))

	git, err := vcs.New(cfg.GitBackend)
	if err != nil {
		return err
	}
	repos := vcs.NewCache(cfg.CacheDir, git, c.Logger)

	prog := newProgress(c.Logger)
	res, err := generator.New(repos, c.Logger).Generate(ctx, lock)
	if err != nil {
		return err
	}

	if err := flatpak.WriteFile(opts.output, res.Sources); err != nil {
		return err
	}
	prog.done("Sources generated")

	printSuccess("Generated %s", opts.output)
	printStats(len(lock.Packages), len(res.Sources), len(res.Skipped))
	for _, pkg := range res.Skipped {
		printWarning("Skipped %s", pkg)
	}
	printFile(opts.output)
	return nil
}
