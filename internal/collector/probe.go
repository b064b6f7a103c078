// Package collector reads host metrics through gopsutil. Each probe backs one
// menu action.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// Reading is a single probe result.
type Reading struct {
	Probe  string    `json:"probe"`
	Value  float64   `json:"value"`
	Unit   string    `json:"unit,omitempty"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

func (r Reading) String() string {
	s := fmt.Sprintf("%s: %.1f%s", r.Probe, r.Value, r.Unit)
	if r.Detail != "" {
		s += " (" + r.Detail + ")"
	}
	return s
}

// Probe defines the interface for all metric probes.
type Probe interface {
	Name() string
	Read(ctx context.Context) (Reading, error)
}

// ProbeFunc adapts a function to the Probe interface.
type ProbeFunc struct {
	ProbeName string
	Fn        func(ctx context.Context) (Reading, error)
}

func (p ProbeFunc) Name() string { return p.ProbeName }

func (p ProbeFunc) Read(ctx context.Context) (Reading, error) {
	r, err := p.Fn(ctx)
	if err != nil {
		return Reading{}, err
	}
	r.Probe = p.ProbeName
	if r.At.IsZero() {
		r.At = time.Now()
	}
	return r, nil
}

// CPUProbe reports total CPU utilisation.
func CPUProbe() Probe {
	return ProbeFunc{ProbeName: "cpu", Fn: func(ctx context.Context) (Reading, error) {
		total, err := cpu.PercentWithContext(ctx, 0, false)
		if err != nil {
			return Reading{}, fmt.Errorf("failed to get total cpu percent: %w", err)
		}
		cores, _ := cpu.CountsWithContext(ctx, true)
		return cpuReading(total, cores)
	}}
}

func cpuReading(total []float64, cores int) (Reading, error) {
	if len(total) == 0 {
		return Reading{}, errors.New("cpu percent returned no values")
	}
	return Reading{Value: total[0], Unit: "%", Detail: fmt.Sprintf("%d cores", cores)}, nil
}

// MemoryProbe reports used virtual memory.
func MemoryProbe() Probe {
	return ProbeFunc{ProbeName: "memory", Fn: func(ctx context.Context) (Reading, error) {
		v, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			return Reading{}, fmt.Errorf("failed to get virtual memory: %w", err)
		}
		return Reading{
			Value:  v.UsedPercent,
			Unit:   "%",
			Detail: fmt.Sprintf("%s of %s", formatBytes(v.Used), formatBytes(v.Total)),
		}, nil
	}}
}

// DiskProbe reports usage of the filesystem mounted at path.
func DiskProbe(path string) Probe {
	return ProbeFunc{ProbeName: "disk", Fn: func(ctx context.Context) (Reading, error) {
		u, err := disk.UsageWithContext(ctx, path)
		if err != nil {
			return Reading{}, fmt.Errorf("failed to get disk usage for %s: %w", path, err)
		}
		return Reading{
			Value:  u.UsedPercent,
			Unit:   "%",
			Detail: fmt.Sprintf("%s free on %s", formatBytes(u.Free), u.Path),
		}, nil
	}}
}

// LoadProbe reports the one-minute load average.
func LoadProbe() Probe {
	return ProbeFunc{ProbeName: "load", Fn: func(ctx context.Context) (Reading, error) {
		avg, err := load.AvgWithContext(ctx)
		if err != nil {
			return Reading{}, fmt.Errorf("failed to get load average: %w", err)
		}
		return Reading{
			Value:  avg.Load1,
			Detail: fmt.Sprintf("5m %.2f, 15m %.2f", avg.Load5, avg.Load15),
		}, nil
	}}
}

// UptimeProbe reports host uptime in hours.
func UptimeProbe() Probe {
	return ProbeFunc{ProbeName: "uptime", Fn: func(ctx context.Context) (Reading, error) {
		info, err := host.InfoWithContext(ctx)
		if err != nil {
			return Reading{}, fmt.Errorf("failed to get host info: %w", err)
		}
		return Reading{
			Value:  float64(info.Uptime) / 3600,
			Unit:   "h",
			Detail: fmt.Sprintf("%s, %s %s", info.Hostname, info.Platform, info.PlatformVersion),
		}, nil
	}}
}

// NetProbe reports total traffic across all interfaces since boot, in MiB.
func NetProbe() Probe {
	return ProbeFunc{ProbeName: "net", Fn: func(ctx context.Context) (Reading, error) {
		counters, err := net.IOCountersWithContext(ctx, false)
		if err != nil || len(counters) == 0 {
			return Reading{}, fmt.Errorf("failed to get net io counters: %w", err)
		}
		c := counters[0]
		return Reading{
			Value:  float64(c.BytesSent+c.BytesRecv) / (1 << 20),
			Unit:   " MiB",
			Detail: fmt.Sprintf("%s sent, %s received", formatBytes(c.BytesSent), formatBytes(c.BytesRecv)),
		}, nil
	}}
}

// ProcessProbe reports the number of processes and the busiest of the first
// few it samples.
func ProcessProbe() Probe {
	return ProbeFunc{ProbeName: "processes", Fn: func(ctx context.Context) (Reading, error) {
		pids, err := process.PidsWithContext(ctx)
		if err != nil {
			return Reading{}, fmt.Errorf("failed to list pids: %w", err)
		}

		limit := 50 // safety limit to avoid long runs
		busiest, top := "", -1.0
		for i, pid := range pids {
			if i >= limit {
				break
			}
			p, err := process.NewProcessWithContext(ctx, pid)
			if err != nil {
				continue
			}
			pct, err := p.CPUPercentWithContext(ctx)
			if err != nil || pct <= top {
				continue
			}
			name, _ := p.NameWithContext(ctx)
			busiest, top = fmt.Sprintf("%s (%d)", name, pid), pct
		}

		r := Reading{Value: float64(len(pids))}
		if busiest != "" {
			r.Detail = fmt.Sprintf("busiest sampled: %s at %.1f%%", busiest, top)
		}
		return r, nil
	}}
}

// Registry maps action names to probes.
type Registry struct {
	probes  map[string]Probe
	timeout time.Duration
}

// NewRegistry builds a registry from the given probes, keyed by Name().
func NewRegistry(timeout time.Duration, probes ...Probe) *Registry {
	r := &Registry{probes: make(map[string]Probe, len(probes)), timeout: timeout}
	for _, p := range probes {
		r.probes[p.Name()] = p
	}
	return r
}

// DefaultRegistry returns a registry with every built-in probe.
func DefaultRegistry(timeout time.Duration) *Registry {
	return NewRegistry(timeout,
		CPUProbe(),
		MemoryProbe(),
		DiskProbe("/"),
		LoadProbe(),
		UptimeProbe(),
		NetProbe(),
		ProcessProbe(),
	)
}

// Lookup returns the probe registered under name.
func (r *Registry) Lookup(name string) (Probe, bool) {
	p, ok := r.probes[name]
	return p, ok
}

// Names returns the registered probe names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.probes))
	for n := range r.probes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Read runs the named probe under the registry timeout.
func (r *Registry) Read(ctx context.Context, name string) (Reading, error) {
	p, ok := r.probes[name]
	if !ok {
		return Reading{}, fmt.Errorf("unknown probe %q", name)
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return p.Read(ctx)
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
