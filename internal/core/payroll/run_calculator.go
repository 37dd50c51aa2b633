package payroll

import (
	"context"
	"sort"
	"sync"

	"github.com/SscSPs/payroll_engine/internal/apperrors"
	"golang.org/x/sync/errgroup"
)

// RunCalculator fans line computation out over a bounded set of workers.
type RunCalculator struct {
	lines   PayrollLineCalculator
	workers int
}

// NewRunCalculator returns a calculator that runs at most workers lines at a time.
// A non positive value means one worker.
func NewRunCalculator(lines PayrollLineCalculator, workers int) RunCalculator {
	if workers < 1 {
		workers = 1
	}
	return RunCalculator{lines: lines, workers: workers}
}

// Compute evaluates every input against book. Lines of one employee are processed by a
// single worker in line ID order so that installments on a shared credit are reserved
// the same way regardless of the worker count. Results come back in input order.
//
// Every failing line is reported; the returned error is apperrors.LineErrors in that
// case and no results are returned.
func (rc RunCalculator) Compute(ctx context.Context, inputs []LineInput, book *InstallmentBook) ([]LineResult, error) {
	groups := make(map[string][]int)
	var employees []string
	for i, in := range inputs {
		id := in.Line.EmployeeID
		if _, ok := groups[id]; !ok {
			employees = append(employees, id)
		}
		groups[id] = append(groups[id], i)
	}
	sort.Strings(employees)

	results := make([]LineResult, len(inputs))
	var (
		mu     sync.Mutex
		failed apperrors.LineErrors
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rc.workers)

	for _, employeeID := range employees {
		idx := groups[employeeID]
		sort.SliceStable(idx, func(a, b int) bool {
			return inputs[idx[a]].Line.LineID < inputs[idx[b]].Line.LineID
		})

		g.Go(func() error {
			for _, i := range idx {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := rc.lines.Compute(inputs[i], book)
				if err != nil {
					mu.Lock()
					failed = append(failed, asLineError(inputs[i].Line.LineID, err))
					mu.Unlock()
					continue
				}
				results[i] = res
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		sort.Slice(failed, func(a, b int) bool { return failed[a].LineID < failed[b].LineID })
		return nil, failed
	}
	return results, nil
}

func asLineError(lineID string, err error) *apperrors.LineError {
	if many, ok := apperrors.AsLineErrors(err); ok && len(many) == 1 {
		return many[0]
	}
	return apperrors.NewLineError(lineID, "", err)
}
