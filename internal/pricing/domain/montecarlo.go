package domain

import (
	"math"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/montanaflynn/stats"
)

// MCResult 蒙特卡洛估值结果
type MCResult struct {
	Price  float64 `json:"price"`
	StdErr float64 `json:"std_err"`
}

// pathFn 生成单条路径的到期收益(未折现)
type pathFn func(rng *rand.Rand) float64

// runPaths 并行生成路径收益并折现汇总。
// 第 i 条路径使用独立子流 PCG(seed, i),同一种子下结果与并行度无关。
func runPaths(paths int, seed int64, discount float64, fn pathFn) (MCResult, error) {
	payoffs := make([]float64, paths)
	workers := runtime.GOMAXPROCS(0)
	if workers > paths {
		workers = paths
	}
	chunk := (paths + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > paths {
			hi = paths
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				rng := rand.New(rand.NewPCG(uint64(seed), uint64(i)))
				payoffs[i] = fn(rng)
			}
		}(lo, hi)
	}
	wg.Wait()

	mean, err := stats.Mean(payoffs)
	if err != nil {
		return MCResult{}, err
	}
	out := MCResult{Price: discount * mean}
	if paths > 1 {
		sd, err := stats.StandardDeviationSample(payoffs)
		if err != nil {
			return MCResult{}, err
		}
		out.StdErr = discount * sd / math.Sqrt(float64(paths))
	}
	return out, nil
}
