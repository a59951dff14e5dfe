// Package provision sets up Jupyter Lab environments for interactive use
// of the ipybible notebooks.
//
// For each named conda environment it sequences, via `conda run`:
//
//  1. enable the notebook server extension (voila)
//  2. install the lab extensions without rebuilding
//  3. build Jupyter Lab once
//  4. register an ipykernel named after the environment under the
//     conda install prefix
//
// The extension set comes from a JSONC manifest (provision.jsonc); the
// built-in default reproduces the project's standard setup, and the
// legacy variant drops the ipyfetch extension for environments still on
// the old kernel stack. A run aborts on the first failing step, and
// re-running against the same environments registers the same kernel
// names, so provisioning is idempotent.
package provision
