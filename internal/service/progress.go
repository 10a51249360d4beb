package service

import (
	"math"

	"github.com/summitapp/summit/internal/model"
)

// ComputeProgress derives a goal's completion percentage from its todos:
// 0 for an empty set, otherwise round(100 * completed / total) with ties
// rounding up. It is invoked on every todo mutation that changes the set's
// population or completion state, and its result persisted before the
// mutation is considered done.
func ComputeProgress(todos []*model.Todo) int {
	if len(todos) == 0 {
		return 0
	}

	completed := 0
	for _, todo := range todos {
		if todo.Completed {
			completed++
		}
	}

	return int(math.Round(100 * float64(completed) / float64(len(todos))))
}
