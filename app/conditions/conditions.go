// Package conditions checks system resources before heavy local work, like fetching downloaded files
package conditions

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

const defaultMaxConcurrent = 10

// Config defines resource conditions, nil thresholds are not checked
type Config struct {
	CPUBelow      *int     // cpu usage percent must be below
	MemoryBelow   *int     // memory usage percent must be below
	LoadAvgBelow  *float64 // 1 minute load average must be below
	DiskFreeAbove *int     // free disk percent on DiskFreePath must be above
	DiskFreePath  string   // "/" by default
	Custom        string   // shell command, must exit with 0
}

// IsEmpty returns true if no conditions set
func (c Config) IsEmpty() bool {
	return c.CPUBelow == nil && c.MemoryBelow == nil && c.LoadAvgBelow == nil && c.DiskFreeAbove == nil && c.Custom == ""
}

// Checker verifies conditions, limiting the number of concurrent checks
type Checker struct {
	maxConcurrent int
	semaphore     chan struct{}
}

// NewChecker makes a Checker, non-positive limit means default of 10
func NewChecker(maxConcurrent int) *Checker {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	return &Checker{maxConcurrent: maxConcurrent, semaphore: make(chan struct{}, maxConcurrent)}
}

// Check verifies if all conditions are met.
// Returns true if conditions are satisfied, false with reason otherwise.
func (c *Checker) Check(conditions Config) (bool, string) {
	select {
	case c.semaphore <- struct{}{}:
		defer func() { <-c.semaphore }()
	default:
		return false, "condition check limit reached, try increasing --fetch.max-checks or wait for running checks to complete"
	}

	if conditions.CPUBelow != nil {
		if ok, reason := c.checkCPU(*conditions.CPUBelow); !ok {
			return false, reason
		}
	}

	if conditions.MemoryBelow != nil {
		if ok, reason := c.checkMemory(*conditions.MemoryBelow); !ok {
			return false, reason
		}
	}

	if conditions.LoadAvgBelow != nil {
		if ok, reason := c.checkLoadAvg(*conditions.LoadAvgBelow); !ok {
			return false, reason
		}
	}

	if conditions.DiskFreeAbove != nil {
		path := conditions.DiskFreePath
		if path == "" {
			path = "/"
		}
		if ok, reason := c.checkDiskFree(*conditions.DiskFreeAbove, path); !ok {
			return false, reason
		}
	}

	if conditions.Custom != "" {
		if ok, reason := c.checkCustom(conditions.Custom); !ok {
			return false, reason
		}
	}

	return true, ""
}

func (c *Checker) checkCPU(threshold int) (bool, string) {
	cpuPercent, err := cpu.Percent(time.Second, false)
	if err != nil {
		return false, fmt.Sprintf("failed to get CPU: %v", err)
	}
	if len(cpuPercent) == 0 {
		return false, "no CPU data available"
	}
	current := int(cpuPercent[0])
	if current >= threshold {
		return false, fmt.Sprintf("CPU at %d%%, threshold %d%%", current, threshold)
	}
	return true, ""
}

func (c *Checker) checkMemory(threshold int) (bool, string) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return false, fmt.Sprintf("failed to get memory: %v", err)
	}
	current := int(v.UsedPercent)
	if current >= threshold {
		return false, fmt.Sprintf("memory at %d%%, threshold %d%%", current, threshold)
	}
	return true, ""
}

func (c *Checker) checkLoadAvg(threshold float64) (bool, string) {
	loads, err := load.Avg()
	if err != nil {
		return false, fmt.Sprintf("failed to get load average: %v", err)
	}
	if loads.Load1 >= threshold {
		return false, fmt.Sprintf("load at %.2f, threshold %.2f", loads.Load1, threshold)
	}
	return true, ""
}

func (c *Checker) checkDiskFree(minFreePercent int, path string) (bool, string) {
	usage, err := disk.Usage(path)
	if err != nil {
		return false, fmt.Sprintf("failed to get disk usage for %s: %v", path, err)
	}
	freePercent := 100 - int(usage.UsedPercent)
	if freePercent < minFreePercent {
		return false, fmt.Sprintf("disk free at %d%%, need %d%% on %s", freePercent, minFreePercent, path)
	}
	return true, ""
}

func (c *Checker) checkCustom(script string) (bool, string) {
	cmd := exec.Command("sh", "-c", script) //nolint:gosec // command from trusted options
	if err := cmd.Run(); err != nil {
		return false, fmt.Sprintf("custom check failed: %v", err)
	}
	return true, ""
}
