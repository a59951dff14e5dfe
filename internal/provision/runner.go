package provision

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ricky-lim/ipybible/internal/logging"
	"github.com/ricky-lim/ipybible/internal/model"
)

// defaultCondaPrefix is the kernel install prefix used when neither the
// manifest nor the CONDA_PREFIX environment variable names one. It is
// the install location of the official conda Docker images.
const defaultCondaPrefix = "/opt/conda"

// Step is one provisioning command: the full argv to execute and a
// human-readable description for logs and dry-run output.
type Step struct {
	// Description says what the step does, e.g. "install lab extension bqplot".
	Description string

	// Argv is the complete command line, argv[0] being the binary.
	Argv []string
}

// String renders the step as a shell-like command line.
func (s Step) String() string {
	return strings.Join(s.Argv, " ")
}

// commandRunner executes one command and returns combined stderr output
// for diagnostics. Injectable so tests can record the plan instead of
// invoking conda.
type commandRunner func(ctx context.Context, argv []string) (stderr string, err error)

// Runner provisions Jupyter Lab environments according to a Manifest.
type Runner struct {
	manifest    *Manifest
	condaPrefix string
	run         commandRunner
	log         zerolog.Logger
}

// NewRunner creates a Runner. The kernel install prefix is resolved in
// priority order: manifest KernelPrefix, CONDA_PREFIX environment
// variable, /opt/conda.
func NewRunner(manifest *Manifest) *Runner {
	prefix := manifest.KernelPrefix
	if prefix == "" {
		prefix = os.Getenv("CONDA_PREFIX")
	}
	if prefix == "" {
		prefix = defaultCondaPrefix
	}

	return &Runner{
		manifest:    manifest,
		condaPrefix: prefix,
		run:         runCommand,
		log:         logging.GetLogger("provision"),
	}
}

// CondaPrefix returns the resolved kernel install prefix.
func (r *Runner) CondaPrefix() string {
	return r.condaPrefix
}

// Plan returns the ordered command sequence for one environment:
// enable server extension, install each lab extension without building,
// build the lab, register the kernel.
func (r *Runner) Plan(env string) []Step {
	inEnv := func(args ...string) []string {
		return append([]string{"conda", "run", "-n", env}, args...)
	}

	steps := []Step{{
		Description: fmt.Sprintf("enable server extension %s", r.manifest.ServerExtension),
		Argv:        inEnv("jupyter", "serverextension", "enable", r.manifest.ServerExtension, "--sys-prefix"),
	}}

	for _, ext := range r.manifest.LabExtensions {
		steps = append(steps, Step{
			Description: fmt.Sprintf("install lab extension %s", ext),
			Argv:        inEnv("jupyter", "labextension", "install", ext, "--no-build"),
		})
	}

	steps = append(steps,
		Step{
			Description: "build jupyter lab",
			Argv:        inEnv("jupyter", "lab", "build"),
		},
		Step{
			Description: fmt.Sprintf("register kernel %s", env),
			Argv:        inEnv("python", "-m", "ipykernel", "install", "--prefix", r.condaPrefix, "--name", env),
		},
	)

	return steps
}

// ProvisionAll provisions each named environment in order. Zero names
// means zero work. The first failing step aborts the whole run,
// mirroring a shell script under `set -e`.
func (r *Runner) ProvisionAll(ctx context.Context, envs []string) error {
	for _, env := range envs {
		if err := r.Provision(ctx, env); err != nil {
			return err
		}
	}
	return nil
}

// Provision runs the full step sequence for one environment.
func (r *Runner) Provision(ctx context.Context, env string) error {
	if err := model.ValidateEnvName(env); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid environment name", err)
	}

	r.log.Info().Str("env", env).Str("prefix", r.condaPrefix).Msg("provisioning environment")

	for _, step := range r.Plan(env) {
		r.log.Info().Str("env", env).Str("step", step.Description).Msg("running step")
		r.log.Debug().Str("cmd", step.String()).Msg("exec")

		stderr, err := r.run(ctx, step.Argv)
		if err != nil {
			message := fmt.Sprintf("provisioning %s failed at step %q", env, step.Description)
			if stderr != "" {
				message = fmt.Sprintf("%s: %s", message, stderr)
			}
			return model.WrapCLIError(model.ExitProvisionFailed, message, err)
		}
	}

	r.log.Info().Str("env", env).Msg("environment provisioned")
	return nil
}

// runCommand is the production commandRunner: it executes the argv with
// the inherited environment, captures stderr for diagnostics, and streams
// nothing to stdout (the tools' own progress output is noise here).
func runCommand(ctx context.Context, argv []string) (string, error) {
	// #nosec G204 — argv is assembled from the validated manifest and
	// environment name, not raw user input.
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return strings.TrimSpace(stderr.String()), err
	}
	return "", nil
}
