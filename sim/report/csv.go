// Package report writes a run's per-step history and flow outcomes as flat CSV tables.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/prb-sim/prb-sim/sim"
)

// WriteUsageCSV writes one row per step with the PRBs each queue actually consumed.
func WriteUsageCSV(w io.Writer, records []sim.StepRecord, numQueues int) error {
	return writeStepTable(w, records, numQueues, func(r sim.StepRecord) []int { return r.Usage })
}

// WriteAllocationCSV writes one row per step with the PRBs granted to each queue.
func WriteAllocationCSV(w io.Writer, records []sim.StepRecord, numQueues int) error {
	return writeStepTable(w, records, numQueues, func(r sim.StepRecord) []int { return r.Grants })
}

func writeStepTable(w io.Writer, records []sim.StepRecord, numQueues int, column func(sim.StepRecord) []int) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, numQueues+1)
	header = append(header, "Time Step")
	for i := 0; i < numQueues; i++ {
		header = append(header, fmt.Sprintf("Queue %d PRBs", i))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range records {
		values := column(r)
		if len(values) != numQueues {
			return fmt.Errorf("step %d has %d queues, want %d", r.Step, len(values), numQueues)
		}
		row := make([]string, 0, numQueues+1)
		row = append(row, strconv.FormatInt(r.Step, 10))
		for _, v := range values {
			row = append(row, strconv.Itoa(v))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing step %d: %w", r.Step, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCompletionsCSV writes one row per flow. The completion column is empty
// for flows still pending when the run ended.
func WriteCompletionsCSV(w io.Writer, outcomes []sim.CompletionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"flow_id", "start_time", "completion_time"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, o := range outcomes {
		completion := ""
		if o.Completed {
			completion = strconv.FormatInt(o.CompletionTime, 10)
		}
		row := []string{strconv.Itoa(int(o.FlowID)), strconv.FormatInt(o.StartTime, 10), completion}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing flow %d: %w", o.FlowID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile creates path and hands it to write, closing it afterwards.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return write(f)
}
