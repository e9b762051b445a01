package build

import "runtime"

// jobMemory is the memory budget assumed for one parallel compile.
const jobMemory = 2 << 30

// jobCount sizes executor parallelism: one job per CPU, capped so that every
// job gets jobMemory of the available memory. freeBytes of 0 means unknown
// and leaves the CPU count uncapped.
func jobCount(cpus int, freeBytes uint64) int {
	n := cpus
	if freeBytes > 0 {
		if byMem := int(freeBytes / jobMemory); byMem < n {
			n = byMem
		}
	}
	return max(n, 1)
}

func hostJobs() int {
	return jobCount(runtime.NumCPU(), availableMemory())
}
