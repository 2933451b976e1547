// Package experiment sequences the four lifecycle phases of a container
// based network-emulation experiment: build, start, stop, clean. Each phase
// is independently invocable; the lock artifact is the only coordination
// between invocations.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"nemo/internal/builder"
	"nemo/internal/common"
	"nemo/internal/compose"
	"nemo/internal/hostexec"
	"nemo/internal/lock"
	"nemo/internal/nodeinit"
	"nemo/internal/starttime"
	"nemo/store"
	"nemo/types"
	"nemo/util"
)

// Build delegates configuration generation to the external config builder
// and persists the resolved node set to the manifest. It returns the number
// of resolved nodes.
func Build(ctx context.Context, opts ...Option) (int, error) {
	o := newOptions(opts...)

	guard := lock.Guard{Path: o.lockFile}

	if err := guard.Check(o.force); err != nil {
		return 0, lockRemedy(err)
	}

	files := o.configFiles
	if len(files) == 0 {
		files = []string{"experiment.cfg"}
	}

	req := builder.BuildRequest{
		ConfigFiles:    files,
		IncludeFilters: o.include,
		ExcludeFilters: o.exclude,
		Manifest:       o.manifest,
	}

	nodes, err := builder.Build(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("building experiment configuration: %w", err)
	}

	m := builder.Manifest{Nodes: nodes}

	if err := m.Write(o.manifest); err != nil {
		return 0, fmt.Errorf("persisting node manifest: %w", err)
	}

	record(ctx, o, nodes, nil)

	return len(nodes), nil
}

// Start brings the experiment up: per-node workspaces, container group,
// lock artifact, synchronized start instant, host environment, and finally
// the per-node initializer fan-out. A container or host failure aborts the
// phase immediately and deliberately leaves completed side effects in place
// (recovery is `stop --force`); fan-out failures never abort the phase.
func Start(ctx context.Context, opts ...Option) error {
	o := newOptions(opts...)

	if o.delay < 0 {
		return fmt.Errorf("scenario delay cannot be negative (got %d)", o.delay)
	}

	guard := lock.Guard{Path: o.lockFile}

	if err := guard.Check(o.force); err != nil {
		return lockRemedy(err)
	}

	m, err := builder.ReadManifest(o.manifest)
	if err != nil {
		return fmt.Errorf("reading node manifest (has `nemo build` been run?): %w", err)
	}

	if err := createWorkspaces(m.Nodes); err != nil {
		return err
	}

	if err := compose.Up(ctx, o.composeFile); err != nil {
		// No lock is recorded: nothing the operator needs to stop exists yet.
		return fmt.Errorf("bringing container group up: %w", err)
	}

	// The group is live from here on, so record the lock before anything
	// else can fail.
	if err := guard.Record(); err != nil {
		return fmt.Errorf("recording lock file: %w", err)
	}

	instant, err := starttime.Compute(o.delay)
	if err != nil {
		return fmt.Errorf("computing start instant: %w", err)
	}

	if err := hostexec.Prepare(ctx, o.workDir, o.envFile, instant); err != nil {
		// Containers stay up and the lock stays held; the operator recovers
		// with `stop --force`.
		return fmt.Errorf("preparing host environment: %w", err)
	}

	for _, l := range nodeinit.FanOut(ctx, m.Nodes, instant) {
		if l.Err != nil {
			util.AddWarning(ctx, l.Err)
		}
	}

	record(ctx, o, m.Nodes, &types.ExperimentStatus{StartTime: instant, Nodes: m.Nodes})

	return nil
}

// Stop tears the experiment down. With force set, a container teardown
// failure is reduced to a warning so the operator can always reach a clean
// state; the host release and scheduling-budget restoration still run.
func Stop(ctx context.Context, opts ...Option) error {
	o := newOptions(opts...)

	guard := lock.Guard{Path: o.lockFile}

	if err := compose.Down(ctx, o.composeFile); err != nil {
		if !o.force {
			return fmt.Errorf("tearing container group down: %w", err)
		}

		util.AddWarning(ctx, fmt.Errorf("tearing container group down (forced past): %w", err))
	}

	if err := guard.Release(); err != nil {
		return err
	}

	releaseErr := hostexec.Release(ctx, o.workDir, o.envFile)

	// The scheduling budget goes back to the kernel default regardless of
	// how the release step fared.
	if err := hostexec.RestoreRTSched(ctx); err != nil {
		util.AddWarning(ctx, fmt.Errorf("restoring real-time scheduling budget: %w", err))
	}

	clearStatus(ctx, o)

	if releaseErr != nil {
		return fmt.Errorf("releasing host environment: %w", releaseErr)
	}

	return nil
}

// Clean removes persisted node workspaces and delegates configuration
// artifact cleanup to the external config builder. Without exclusion
// filters the whole persist tree goes; with them, only the included nodes'
// workspaces are removed and the excluded set is recorded back into the
// manifest for future partial operations.
func Clean(ctx context.Context, opts ...Option) error {
	o := newOptions(opts...)

	guard := lock.Guard{Path: o.lockFile}

	if err := guard.Check(o.force); err != nil {
		return lockRemedy(err)
	}

	var included, excluded []string

	m, err := builder.ReadManifest(o.manifest)

	switch {
	case err == nil:
		included, excluded = m.Resolve(o.include, o.exclude)
	case errors.Is(err, os.ErrNotExist):
		// Nothing built yet; still wipe the persist tree and let the
		// builder clean whatever artifacts it knows about.
	default:
		return err
	}

	if len(excluded) == 0 {
		if err := os.RemoveAll(common.PersistBase); err != nil {
			return fmt.Errorf("removing persisted node workspaces: %w", err)
		}
	} else {
		for _, node := range included {
			if err := os.RemoveAll(common.NodeDir(node)); err != nil {
				return fmt.Errorf("removing workspace for node %s: %w", node, err)
			}
		}

		remaining := builder.Manifest{Nodes: excluded}

		if err := remaining.Write(o.manifest); err != nil {
			return fmt.Errorf("recording excluded nodes to manifest: %w", err)
		}
	}

	req := builder.CleanRequest{Nodes: included, Manifest: o.manifest}

	if err := builder.Clean(ctx, req); err != nil {
		return fmt.Errorf("cleaning experiment configuration: %w", err)
	}

	if len(excluded) == 0 {
		c := types.NewConfig(filepath.Base(o.workDir))
		store.Delete(c)
	}

	return nil
}

// Status returns the stored record for the experiment rooted at the working
// directory.
func Status(opts ...Option) (*types.Experiment, error) {
	o := newOptions(opts...)

	c := types.NewConfig(filepath.Base(o.workDir))

	if err := store.Get(c); err != nil {
		return nil, fmt.Errorf("getting experiment from store: %w", err)
	}

	return types.DecodeExperiment(c)
}

// Locked reports whether the lock artifact currently exists.
func Locked(opts ...Option) bool {
	o := newOptions(opts...)

	return lock.Guard{Path: o.lockFile}.Held()
}

func createWorkspaces(nodes []string) error {
	for _, node := range nodes {
		for _, sub := range []string{"run", "log", "tmp"} {
			dir := filepath.Join(common.NodeDir(node), "var", sub)

			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating workspace for node %s: %w", node, err)
			}
		}
	}

	return nil
}

func lockRemedy(err error) error {
	return fmt.Errorf("%w (run `nemo stop` first, or pass --force)", err)
}

// record persists the experiment's spec/status document. Failures here are
// warnings: the phase's side effects are already in place and must not be
// reported as failed over bookkeeping.
func record(ctx context.Context, o options, nodes []string, status *types.ExperimentStatus) {
	name := filepath.Base(o.workDir)

	exp := types.Experiment{
		Metadata: types.ConfigMetadata{Name: name},
		Spec: &types.ExperimentSpec{
			ExperimentName: name,
			WorkDir:        o.workDir,
			ComposeFile:    o.composeFile,
			EnvFile:        o.envFile,
			ScenarioDelay:  o.delay,
			Nodes:          nodes,
		},
		Status: status,
	}

	c := types.NewConfig(name)

	if err := store.Get(c); err != nil {
		exp.WriteToConfig(c)

		if err := store.Create(c); err != nil {
			util.AddWarning(ctx, fmt.Errorf("recording experiment: %w", err))
		}

		return
	}

	exp.Metadata = c.Metadata
	exp.WriteToConfig(c)

	if err := store.Update(c); err != nil {
		util.AddWarning(ctx, fmt.Errorf("recording experiment: %w", err))
	}
}

func clearStatus(ctx context.Context, o options) {
	c := types.NewConfig(filepath.Base(o.workDir))

	if err := store.Get(c); err != nil {
		return
	}

	c.Status = nil

	if err := store.Update(c); err != nil {
		util.AddWarning(ctx, fmt.Errorf("clearing experiment status: %w", err))
	}
}
