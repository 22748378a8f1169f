// internal/app/system/workers/cascaderepair.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/pmhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// LiveTasks is the task side of the repair.
type LiveTasks interface {
	LiveProjectIDs(ctx context.Context) ([]primitive.ObjectID, error)
	DeactivateLiveByProjects(ctx context.Context, projectIDs []primitive.ObjectID) (int64, error)
}

// ActiveProjects reports which of the given projects are still live.
type ActiveProjects interface {
	ActiveIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]bool, error)
}

// RepairRecorder is told about passes that changed something.
type RepairRecorder interface {
	CascadeRepaired(ctx context.Context, projects int, tasks int64)
}

// RepairResult summarizes one reconciliation pass.
type RepairResult struct {
	Projects int   `json:"projects"`
	Tasks    int64 `json:"tasks"`
}

// CascadeRepair finds live tasks whose project is inactive or missing and
// deactivates them. Such tasks are left behind when a project delete runs
// without a transaction and the task cascade fails after the project write.
type CascadeRepair struct {
	tasks    LiveTasks
	projects ActiveProjects
	recorder RepairRecorder
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewCascadeRepair creates the worker. recorder may be nil.
//
// Parameters:
//   - tasks, projects: the stores to reconcile
//   - logger: zap logger for logging
//   - interval: how often to run a pass (e.g., 5 minutes)
func NewCascadeRepair(tasks LiveTasks, projects ActiveProjects, recorder RepairRecorder, logger *zap.Logger, interval time.Duration) *CascadeRepair {
	return &CascadeRepair{
		tasks:    tasks,
		projects: projects,
		recorder: recorder,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background repair loop.
func (w *CascadeRepair) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("cascade repair worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *CascadeRepair) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("cascade repair worker stopped")
}

func (w *CascadeRepair) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := timeouts.WithTimeout(context.Background(), timeouts.Repair(), w.log, "cascade repair")
			if _, err := w.RunOnce(ctx); err != nil {
				w.log.Error("cascade repair failed", zap.Error(err))
			}
			cancel()
		}
	}
}

// RunOnce performs a single reconciliation pass. It is also the on-demand
// repair hook behind the admin endpoint.
func (w *CascadeRepair) RunOnce(ctx context.Context) (RepairResult, error) {
	referenced, err := w.tasks.LiveProjectIDs(ctx)
	if err != nil {
		return RepairResult{}, err
	}
	if len(referenced) == 0 {
		return RepairResult{}, nil
	}

	active, err := w.projects.ActiveIDs(ctx, referenced)
	if err != nil {
		return RepairResult{}, err
	}

	var orphaned []primitive.ObjectID
	for _, id := range referenced {
		if !active[id] {
			orphaned = append(orphaned, id)
		}
	}
	if len(orphaned) == 0 {
		return RepairResult{}, nil
	}

	n, err := w.tasks.DeactivateLiveByProjects(ctx, orphaned)
	if err != nil {
		return RepairResult{}, err
	}

	res := RepairResult{Projects: len(orphaned), Tasks: n}
	w.log.Info("deactivated orphaned tasks",
		zap.Int("projects", res.Projects),
		zap.Int64("tasks", res.Tasks))
	if w.recorder != nil {
		w.recorder.CascadeRepaired(ctx, res.Projects, res.Tasks)
	}
	return res, nil
}
