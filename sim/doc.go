// Package sim provides the time-stepped simulation engine for a base station
// that slices a fixed pool of physical resource blocks (PRBs) across traffic
// class queues.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - flow.go: Flow lifecycle (waiting → active → completed) and acknowledgment
//   - queue.go: bounded FIFO packet buffer with drop-and-retry admission
//   - station.go: the per-step generate → allocate → drain sequence and histories
//   - simulator.go: the clock state machine and termination conditions
//
// # Architecture
//
// The sim package owns the engine; collaborators live in sub-packages:
//   - sim/workload/: flow setup (explicit or drawn from ranges) and traffic YAML
//   - sim/trace/: per-step decision records and their summary
//   - sim/report/: CSV tables of PRB usage, grants and flow completions
//   - sim/replicate/: independent replications run in parallel
//
// Flows live in an arena owned by BaseStation and are addressed by FlowID;
// queues store FlowIDs, one per buffered packet.
//
// # Key Interfaces
//
// The extension points are single-method interfaces:
//   - Allocator: split the PRB budget across queues from their backlog
//   - GenerationPolicy: decide how many packets a flow offers in a step
//   - RandSource: the randomness consumed by generation and setup
package sim
