package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/ohitsming/guapital-sub001/internal/api"
	"github.com/ohitsming/guapital-sub001/internal/cache"
	"github.com/ohitsming/guapital-sub001/internal/config"
	"github.com/ohitsming/guapital-sub001/internal/jobs"
	"github.com/ohitsming/guapital-sub001/internal/output"
	"github.com/ohitsming/guapital-sub001/internal/store"
	"github.com/spf13/cobra"
)

func (a *app) openStore() (*store.Store, error) {
	st, err := store.Open(a.settings.Database.Driver, a.settings.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", a.settings.Database.Driver, err)
	}
	return st, nil
}

func (a *app) snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save and list daily trajectory snapshots",
	}
	cmd.AddCommand(a.snapshotSaveCmd(), a.snapshotListCmd())
	return cmd
}

func (a *app) snapshotSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <snapshot.yaml>",
		Short: "Evaluate a snapshot and store it for its as-of day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.evaluate(cmd, args[0])
			if err != nil {
				return err
			}
			day := report.AsOf
			if day.IsZero() {
				day = time.Now()
			}
			rec, err := store.RecordFromReport(report, day)
			if err != nil {
				return fmt.Errorf("%w: %v", config.ErrInvalidInput, err)
			}

			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			saved, err := st.UpsertSnapshot(cmd.Context(), rec)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot %s for %s on %s (net worth %s)\n",
				saved.ID, saved.UserID, saved.SnapshotDate.Format(store.DateLayout), output.FormatCurrency(saved.NetWorth))
			return nil
		},
	}
}

func (a *app) snapshotListCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "list <user-id>",
		Short: "List stored snapshots for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDay, err := parseDay(from)
			if err != nil {
				return err
			}
			toDay, err := parseDay(to)
			if err != nil {
				return err
			}

			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			records, err := st.ListSnapshots(cmd.Context(), args[0], fromDay, toDay)
			if err != nil {
				return err
			}
			for i := range records {
				records[i].Payload = nil
			}
			if records == nil {
				records = []store.Record{}
			}
			return a.print(cmd.OutOrStdout(), records, func(w io.Writer) {
				if len(records) == 0 {
					fmt.Fprintf(w, "No snapshots for %s\n", args[0])
					return
				}
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "DATE\tNET WORTH\tASSETS\tLIABILITIES\tFIRE NUMBER\tYEARS TO FIRE")
				for _, r := range records {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.SnapshotDate.Format(store.DateLayout),
						output.FormatCurrency(r.NetWorth), output.FormatCurrency(r.TotalAssets),
						output.FormatCurrency(r.TotalLiabilities), output.FormatCurrency(r.FireNumber),
						output.FormatYears(r.YearsToFire))
				}
				_ = tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day to include (YYYY-MM-DD)")
	return cmd
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(store.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", config.ErrInvalidInput, s)
	}
	return t, nil
}

func (a *app) jobCmd() *cobra.Command {
	var (
		dir      string
		schedule string
		once     bool
	)
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Snapshot every file in a directory, once or on a cron schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = a.settings.Jobs.SnapshotDir
			}
			if schedule == "" {
				schedule = a.settings.Jobs.Schedule
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			job := jobs.NewSnapshotJob(dir, engine, st, a.logger)
			if once {
				result, err := job.Run(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d snapshots, %d failed\n", len(result.Saved), len(result.Failed))
				if len(result.Failed) > 0 {
					return fmt.Errorf("%d snapshot files failed", len(result.Failed))
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if _, err := job.Schedule(ctx, schedule); err != nil {
				return err
			}
			a.logger.WithField("schedule", schedule).Infof("snapshot job scheduled for %s", dir)
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Snapshot directory (default jobs.snapshot_dir)")
	cmd.Flags().StringVar(&schedule, "schedule", "", "Cron spec (default jobs.schedule)")
	cmd.Flags().BoolVar(&once, "once", false, "Run a single pass and exit")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var (
		addr    string
		noStore bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the trajectory HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.settings.Server.Addr
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}

			opts := api.Options{
				Engine:    engine,
				Cache:     a.newCache(cmd.Context()),
				Logger:    a.logger,
				RateLimit: a.settings.Server.RateLimit,
			}
			if !noStore {
				st, err := a.openStore()
				if err != nil {
					return err
				}
				defer st.Close()
				opts.Store = st
			}

			server := api.NewServer(opts)
			defer server.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, addr, a.settings.Server.ShutdownTimeout)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default server.addr)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Run without snapshot persistence")
	return cmd
}

// newCache picks Redis when configured and reachable, otherwise an in-memory cache
func (a *app) newCache(ctx context.Context) cache.Cache {
	ttl := a.settings.Cache.TTL
	if a.settings.Cache.RedisAddr == "" {
		return cache.NewMemoryCache(ttl)
	}
	rc := cache.NewRedisCache(a.settings.Cache.RedisAddr, ttl)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		a.logger.Warnf("redis %s unavailable, using in-memory cache: %v", a.settings.Cache.RedisAddr, err)
		_ = rc.Close()
		return cache.NewMemoryCache(ttl)
	}
	return rc
}
