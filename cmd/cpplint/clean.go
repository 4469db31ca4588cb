package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"cpplint/internal/driver"
)

func (a *app) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the result cache",
		Long:  "Remove the directory given by --cache, or the default cache directory when --cache is not set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := a.newLogger(cmd)
			if err != nil {
				return err
			}
			dir, _ := cmd.Flags().GetString("cache")
			if dir == "" {
				if dir, err = driver.DefaultCacheDir("cpplint"); err != nil {
					return fmt.Errorf("failed to locate cache directory: %w", err)
				}
			}
			if exists, _ := afero.DirExists(a.fs, dir); !exists {
				fmt.Fprintf(cmd.OutOrStdout(), "cache directory not found\n")
				return nil
			}
			cache, err := driver.OpenDiskCache(a.fs, dir, log)
			if err != nil {
				return err
			}
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to remove %q: %w", dir, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", dir)
			return nil
		},
	}
}
