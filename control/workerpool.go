package control

import (
	"runtime"
	"sync"

	"github.com/gekko3d/beamline/field"
	"github.com/gekko3d/beamline/integrate"
	"github.com/gekko3d/beamline/particle"
)

// maxWorkers caps the worker-pool size: beyond this, per-goroutine
// dispatch overhead dominates a single integrator step.
const maxWorkers = 8

// stepChunk advances every particle in the slice by one sub-step. It is
// the unit of work handed to each worker goroutine.
func stepChunk(integrator integrate.Integrator, chunk []*particle.Particle, fields *field.Manager, t, dt float64) {
	for _, p := range chunk {
		integrator.Step(p, fields, t, dt)
	}
}

// stepParallel steps every active particle across a bounded worker
// pool, splitting the slice into contiguous chunks (stepping is
// embarrassingly parallel within a sub-step since the field manager is
// read-only for its duration). Reduction order across workers is
// unspecified; it need not reproduce the sequential path bitwise.
func stepParallel(integrator integrate.Integrator, active []*particle.Particle, fields *field.Manager, t, dt float64) {
	if len(active) == 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if workers > len(active) {
		workers = len(active)
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (len(active) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		if start >= len(active) {
			break
		}
		end := start + chunkSize
		if end > len(active) {
			end = len(active)
		}
		wg.Add(1)
		go func(chunk []*particle.Particle) {
			defer wg.Done()
			stepChunk(integrator, chunk, fields, t, dt)
		}(active[start:end])
	}
	wg.Wait()
}
