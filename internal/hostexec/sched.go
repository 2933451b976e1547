package hostexec

import "context"

// The kernel's default real-time budget throttles RT tasks to 950ms per
// second, which starves emulation workloads. Relax lifts the budget
// entirely; Restore puts the kernel default back.
const (
	schedRTKey       = "kernel.sched_rt_runtime_us"
	schedRTUnbounded = "-1"
	schedRTDefault   = "950000"
)

type RTSched interface {
	Relax(context.Context) error
	Restore(context.Context) error
}

var DefaultRTSched RTSched = new(sysctlRTSched)

func RelaxRTSched(ctx context.Context) error {
	return DefaultRTSched.Relax(ctx)
}

func RestoreRTSched(ctx context.Context) error {
	return DefaultRTSched.Restore(ctx)
}

type sysctlRTSched struct{}

func (this sysctlRTSched) Relax(ctx context.Context) error {
	return sudo(ctx, "rt-sched relax", "sysctl", schedRTKey+"="+schedRTUnbounded)
}

func (this sysctlRTSched) Restore(ctx context.Context) error {
	return sudo(ctx, "rt-sched restore", "sysctl", schedRTKey+"="+schedRTDefault)
}
