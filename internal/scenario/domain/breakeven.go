package domain

// PnLFunc 给定现价返回盈亏。求根细化阶段对括号区间反复求值。
type PnLFunc func(spot float64) (float64, error)

const (
	breakevenDedupeTol = 1e-6
	bisectIterations   = 80
)

// bisect 在符号相反的区间 [a,b] 内二分求零点。
func bisect(f PnLFunc, a, b, fa float64) (float64, error) {
	lo, hi := a, b
	flo := fa
	for i := 0; i < bisectIterations; i++ {
		mid := 0.5 * (lo + hi)
		fm, err := f(mid)
		if err != nil {
			return 0, err
		}
		if fm == 0 {
			return mid, nil
		}
		if (flo < 0) == (fm < 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
		if hi-lo < 1e-9 {
			break
		}
	}
	return 0.5 * (lo + hi), nil
}

// Breakevens 在采样曲线上找全部零点并按升序返回。采样点恰为零直接采纳,
// 变号区间用 f 二分细化; 相邻重复零点 (1e-6 内) 去重, 无零点返回空表。
func Breakevens(spots, values []float64, f PnLFunc) ([]float64, error) {
	var roots []float64
	appendRoot := func(x float64) {
		if len(roots) == 0 || abs(roots[len(roots)-1]-x) > breakevenDedupeTol {
			roots = append(roots, x)
		}
	}

	for i := 1; i < len(values); i++ {
		a, b := values[i-1], values[i]
		switch {
		case a == 0:
			appendRoot(spots[i-1])
		case b == 0:
			appendRoot(spots[i])
		case (a < 0 && b > 0) || (a > 0 && b < 0):
			root, err := bisect(f, spots[i-1], spots[i], a)
			if err != nil {
				return nil, err
			}
			appendRoot(root)
		}
	}
	return roots, nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
