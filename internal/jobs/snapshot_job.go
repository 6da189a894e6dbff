// Package jobs runs scheduled trajectory snapshots.
package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ohitsming/guapital-sub001/internal/calculation"
	"github.com/ohitsming/guapital-sub001/internal/config"
	"github.com/ohitsming/guapital-sub001/internal/store"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Upserter persists one snapshot record
type Upserter interface {
	UpsertSnapshot(ctx context.Context, rec store.Record) (store.Record, error)
}

// RunResult summarizes one pass over the snapshot directory
type RunResult struct {
	Saved  []string
	Failed map[string]error
}

// SnapshotJob evaluates every snapshot file in Dir and stores the result for today
type SnapshotJob struct {
	Dir    string
	Engine *calculation.CalculationEngine
	Store  Upserter
	Logger logrus.FieldLogger

	parser *config.InputParser
	now    func() time.Time
}

// NewSnapshotJob creates a job over dir
func NewSnapshotJob(dir string, engine *calculation.CalculationEngine, st Upserter, logger logrus.FieldLogger) *SnapshotJob {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SnapshotJob{
		Dir:    dir,
		Engine: engine,
		Store:  st,
		Logger: logger,
		parser: config.NewInputParser(),
		now:    time.Now,
	}
}

// Files lists the snapshot documents in the job directory in name order
func (j *SnapshotJob) Files() ([]string, error) {
	entries, err := os.ReadDir(j.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot dir %s: %w", j.Dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			files = append(files, filepath.Join(j.Dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run processes every snapshot once. A failing file is logged and recorded in
// the result without stopping the others; only a cancelled context or an
// unreadable directory returns an error.
func (j *SnapshotJob) Run(ctx context.Context) (RunResult, error) {
	result := RunResult{Failed: map[string]error{}}
	files, err := j.Files()
	if err != nil {
		return result, err
	}
	today := j.now()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("snapshot job cancelled: %w", err)
		}
		userID, err := j.processFile(ctx, file, today)
		if err != nil {
			j.Logger.WithFields(logrus.Fields{"file": file}).Errorf("snapshot failed: %v", err)
			result.Failed[file] = err
			continue
		}
		result.Saved = append(result.Saved, userID)
	}

	j.Logger.WithFields(logrus.Fields{
		"saved":  len(result.Saved),
		"failed": len(result.Failed),
	}).Info("snapshot job finished")
	return result, nil
}

func (j *SnapshotJob) processFile(ctx context.Context, file string, today time.Time) (string, error) {
	snap, err := j.parser.LoadFromFile(file)
	if err != nil {
		return "", err
	}
	if snap.UserID == "" {
		snap.UserID = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	// the stored snapshot reflects the day the job ran
	snap.AsOf = today

	report, err := j.Engine.Evaluate(ctx, snap)
	if err != nil {
		return "", err
	}
	rec, err := store.RecordFromReport(report, today)
	if err != nil {
		return "", err
	}
	if _, err := j.Store.UpsertSnapshot(ctx, rec); err != nil {
		return "", fmt.Errorf("saving snapshot for %s: %w", snap.UserID, err)
	}
	return snap.UserID, nil
}

// Schedule registers the job on a cron scheduler with the given spec
// (standard five-field or descriptors such as "@daily") and starts it.
// The scheduler stops when ctx is cancelled.
func (j *SnapshotJob) Schedule(ctx context.Context, spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if _, err := j.Run(ctx); err != nil {
			j.Logger.Errorf("snapshot job: %v", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return c, nil
}
