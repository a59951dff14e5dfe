// Package cli — provision.go implements the "ipybible provision" command.
//
// The provision command prepares conda environments for the notebooks:
// for each named environment it enables the voila server extension,
// installs the lab extensions, builds Jupyter Lab once and registers an
// ipykernel named after the environment. With no environment arguments it
// does nothing, so wrapper scripts can pass "$@" unconditionally.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ricky-lim/ipybible/internal/provision"
)

// provisionFlags holds the flag values for the provision command.
type provisionFlags struct {
	// manifest is an optional JSONC manifest path overriding the built-in
	// extension set.
	manifest string

	// legacy selects the extension set without ipyfetch.
	legacy bool

	// prefix overrides the kernel install prefix.
	prefix string

	// dryRun prints the planned commands without executing them.
	dryRun bool
}

// NewProvisionCommand creates the "provision" cobra command.
func NewProvisionCommand() *cobra.Command {
	flags := &provisionFlags{}

	cmd := &cobra.Command{
		Use:   "provision [env]...",
		Short: "Provision Jupyter Lab in conda environments",
		Long: `Provision each named conda environment for the notebooks: enable the
voila server extension, install the lab extensions without building,
build Jupyter Lab once and register an ipykernel named after the
environment.

The first failing step aborts the whole run. Zero environment names is
a no-op.

Examples:
  ipybible provision base
  ipybible provision dev staging --legacy
  ipybible provision base --manifest provision.jsonc --dry-run`,

		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvision(cmd.Context(), args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.manifest, "manifest", "", "JSONC manifest overriding the built-in extension set")
	cmd.Flags().BoolVar(&flags.legacy, "legacy", false, "Use the extension set without ipyfetch")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", "Kernel install prefix (default: $CONDA_PREFIX or /opt/conda)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the planned commands without running them")
	cmd.MarkFlagsMutuallyExclusive("manifest", "legacy")

	return cmd
}

// runProvision resolves the manifest and provisions each environment.
func runProvision(ctx context.Context, envs []string, flags *provisionFlags) error {
	manifest, err := resolveManifest(flags)
	if err != nil {
		return err
	}
	if flags.prefix != "" {
		manifest.KernelPrefix = flags.prefix
	}

	runner := provision.NewRunner(manifest)

	if flags.dryRun {
		printProvisionPlan(runner, envs)
		return nil
	}

	return runner.ProvisionAll(ctx, envs)
}

// resolveManifest picks the manifest source: explicit file, legacy
// built-in, or the default built-in.
func resolveManifest(flags *provisionFlags) (*provision.Manifest, error) {
	switch {
	case flags.manifest != "":
		return provision.LoadManifest(flags.manifest)
	case flags.legacy:
		return provision.LegacyManifest(), nil
	default:
		return provision.DefaultManifest(), nil
	}
}

// printProvisionPlan shows the command sequence per environment without
// executing anything.
func printProvisionPlan(runner *provision.Runner, envs []string) {
	if IsJSONOutput() {
		type planJSON struct {
			Env   string   `json:"env"`
			Steps []string `json:"steps"`
		}
		type resultJSON struct {
			Prefix string     `json:"prefix"`
			Plans  []planJSON `json:"plans"`
		}

		result := resultJSON{
			Prefix: runner.CondaPrefix(),
			Plans:  make([]planJSON, 0, len(envs)),
		}
		for _, env := range envs {
			plan := planJSON{Env: env, Steps: []string{}}
			for _, step := range runner.Plan(env) {
				plan.Steps = append(plan.Steps, step.String())
			}
			result.Plans = append(result.Plans, plan)
		}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	if len(envs) == 0 {
		fmt.Println("No environments named; nothing to do.")
		return
	}

	for _, env := range envs {
		fmt.Printf("Plan for %s (kernel prefix %s):\n", env, runner.CondaPrefix())
		for _, step := range runner.Plan(env) {
			fmt.Printf("  %s\n", step)
		}
	}
}
