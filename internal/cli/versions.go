// Package cli — versions.go implements the "ipybible versions" command.
//
// The versions command lists the supported Bible translations grouped by
// language, marking each version that is present in the local cache.
package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ricky-lim/ipybible/internal/model"
)

// NewVersionsCommand creates the "versions" cobra command.
func NewVersionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List supported Bible versions",
		Long: `List the supported Bible versions per language and whether each one
is already in the local cache.

Examples:
  ipybible versions
  ipybible versions --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersions()
		},
	}

	return cmd
}

// versionInfo is one row of the versions listing.
type versionInfo struct {
	Version  string `json:"version"`
	Language string `json:"language"`
	Default  bool   `json:"default"`
	Cached   bool   `json:"cached"`
}

// runVersions builds the version table from the registry and the cache.
func runVersions() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, st, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	langs := make([]model.Language, 0, len(model.LanguageVersions))
	for lang := range model.LanguageVersions {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })

	var rows []versionInfo
	for _, lang := range langs {
		for i, version := range model.LanguageVersions[lang] {
			cached, err := st.HasVersion(version)
			if err != nil {
				return model.WrapCLIError(model.ExitCacheError, "failed to check local cache", err)
			}
			rows = append(rows, versionInfo{
				Version:  version,
				Language: lang.String(),
				Default:  i == 0,
				Cached:   cached,
			})
		}
	}

	printVersions(rows)
	return nil
}

// printVersions renders the version table in text or JSON format.
func printVersions(rows []versionInfo) {
	if IsJSONOutput() {
		type resultJSON struct {
			Versions []versionInfo `json:"versions"`
		}
		data, _ := json.MarshalIndent(resultJSON{Versions: rows}, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("%-20s %-10s %-10s %s\n", "VERSION", "LANGUAGE", "DEFAULT", "CACHED")
	for _, row := range rows {
		fmt.Printf("%-20s %-10s %-10s %s\n",
			row.Version, row.Language, yesNo(row.Default), yesNo(row.Cached))
	}
}

// yesNo renders a boolean as a table cell.
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
