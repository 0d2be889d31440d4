package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"cliphunt/shared/monitoring"

	"github.com/robfig/cron/v3"
)

// Metrics defines the common interface for run metrics
type Metrics interface {
	// GetSummary returns a human-readable summary of the run
	GetSummary() string
}

// AgentEvents provides callbacks for monitoring agent execution
type AgentEvents struct {
	OnSuccess  func(metrics Metrics, duration time.Duration)
	OnDegraded func(metrics Metrics, duration time.Duration)
	OnFailure  func(err error, duration time.Duration)
}

// Agent defines the interface scheduled workloads must implement
type Agent interface {
	Name() string
	RunOnce(ctx context.Context, events *AgentEvents) error
	Initialize() error
}

// Scheduler manages the execution of an agent on a cron schedule
type Scheduler struct {
	schedule string
	monitor  *monitoring.Monitor
	agent    Agent
	cron     *cron.Cron
}

func New(schedule string, monitor *monitoring.Monitor, agent Agent) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		monitor:  monitor,
		agent:    agent,
		// Prevent overlapping runs
		cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.agent.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize agent: %w", err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.RunOnce(ctx); err != nil {
			log.Printf("Error running scheduled job for %s: %v", s.agent.Name(), err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	log.Printf("Scheduler started for %s with schedule: %s", s.agent.Name(), s.schedule)
	s.cron.Start()

	// Keep the scheduler running indefinitely until context is cancelled
	<-ctx.Done()
	log.Printf("Scheduler stopped for %s", s.agent.Name())
	s.cron.Stop()
	return ctx.Err()
}

func (s *Scheduler) RunOnce(ctx context.Context) error {
	startTime := time.Now()
	agentName := s.agent.Name()

	log.Printf("Starting %s run...", agentName)

	events := &AgentEvents{
		OnSuccess: func(metrics Metrics, duration time.Duration) {
			s.monitor.RecordSuccess(metrics.GetSummary(), duration)
		},
		OnDegraded: func(metrics Metrics, duration time.Duration) {
			s.monitor.RecordDegraded(metrics.GetSummary(), duration)
		},
		OnFailure: func(err error, duration time.Duration) {
			s.monitor.RecordFailure(fmt.Errorf("%s failure: %w", agentName, err), duration)
		},
	}

	if err := s.agent.RunOnce(ctx, events); err != nil {
		duration := time.Since(startTime)
		s.monitor.RecordFailure(fmt.Errorf("%s failed: %w", agentName, err), duration)
		return fmt.Errorf("%s run failed: %w", agentName, err)
	}

	return nil
}
