// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sockprim/sockettest"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Config holds the parsed CLI configuration.
type Config struct {
	Family  *familyFlag
	Run     string
	List    bool
	Verbose bool

	match *regexp.Regexp
}

// NewRootCmd creates and returns the root cobra command.
func NewRootCmd() *cobra.Command {
	cfg := Config{Family: newFamilyFlag("all", true)}

	cmd := &cobra.Command{
		Use:   "sockcheck",
		Short: "Check the socket layer against this host",
		Long: `sockcheck runs the behavioral checks every socket backend must pass
on sockets bound to the loopback interface, and reports the outcome of
each check per address family.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Run == "" {
				return nil
			}
			re, err := regexp.Compile(cfg.Run)
			if err != nil {
				return fmt.Errorf("invalid --run pattern: %w", err)
			}
			cfg.match = re
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.List {
				return listChecks(cmd.OutOrStdout(), &cfg)
			}
			return runChecks(cmd, &cfg)
		},
	}

	cmd.Flags().Var(cfg.Family, "family", "Address family: inet|inet6|all")
	cmd.Flags().StringVar(&cfg.Run, "run", "", "Run only checks matching the regular expression")
	cmd.Flags().BoolVar(&cfg.List, "list", false, "List the checks and exit")
	cmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")

	cmd.AddCommand(newInspectCmd())

	return cmd
}

func (cfg *Config) matches(name string) bool {
	return cfg.match == nil || cfg.match.MatchString(name)
}

func listChecks(w io.Writer, cfg *Config) error {
	for _, c := range sockettest.Checks() {
		if cfg.matches(c.Name) {
			fmt.Fprintln(w, c.Name)
		}
	}
	return nil
}

// runChecks runs the suite for every selected family concurrently and
// logs the results in family order.
func runChecks(cmd *cobra.Command, cfg *Config) error {
	log := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	results := make([][]sockettest.Result, len(cfg.Family.families))
	var g errgroup.Group
	for i, f := range cfg.Family.families {
		i, f := i, f
		g.Go(func() error {
			log.WithField("family", f).Debug("running checks")
			results[i] = sockettest.Run(f, cfg.matches)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var total, failed, skipped int
	for _, rs := range results {
		for _, r := range rs {
			total++
			entry := log.WithFields(logrus.Fields{
				"check":   r.Check,
				"family":  r.Family,
				"elapsed": r.Elapsed,
			})
			switch {
			case r.Failed():
				failed++
				entry.WithError(r.Err).Error("fail")
			case r.Skipped():
				skipped++
				entry.WithField("reason", r.Err).Info("skip")
			default:
				entry.Debug("ok")
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d checks, %d failed, %d skipped\n", total, failed, skipped)
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, total)
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	color := isTerminal(w)
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:   color,
		DisableColors: !color,
		FullTimestamp: true,
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
