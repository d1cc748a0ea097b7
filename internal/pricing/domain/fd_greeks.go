package domain

import "math"

// FDScheme 有限差分格式
type FDScheme string

const (
	FDCentral FDScheme = "central" // 中心差分
	FDForward FDScheme = "forward" // 前向差分,适合蒙特卡洛类带噪声的估值
)

// PriceFn 市场环境与剩余期限到价格的映射
type PriceFn func(m MarketInputs, expiry float64) (float64, error)

// FDGreeks 以扰动重估方式计算希腊字母,返回基准价格与敏感度。
// Gamma 在两种格式下都取二阶中心差分;Theta 统一取 (V(T-dT)-V(T))/dT。
func FDGreeks(m MarketInputs, expiry float64, scheme FDScheme, fn PriceFn) (float64, Greeks, error) {
	if m.Spot <= 0 {
		return 0, Greeks{}, ErrInvalidSpot
	}
	if m.Vol <= 0 {
		return 0, Greeks{}, ErrInvalidVol
	}
	base, err := fn(m, expiry)
	if err != nil {
		return 0, Greeks{}, err
	}
	if expiry <= 0 {
		return base, Greeks{}, nil
	}

	dS := math.Max(m.Spot*1e-4, 1e-8)
	dV := 1e-4
	dR := 1e-4
	dT := math.Min(1e-4, 0.5*expiry)

	var g Greeks

	spotUp, err := fn(m.WithSpot(m.Spot+dS), expiry)
	if err != nil {
		return 0, Greeks{}, err
	}
	spotDn, err := fn(m.WithSpot(math.Max(m.Spot-dS, 1e-12)), expiry)
	if err != nil {
		return 0, Greeks{}, err
	}
	if scheme == FDForward {
		g.Delta = (spotUp - base) / dS
	} else {
		g.Delta = (spotUp - spotDn) / (2 * dS)
	}
	g.Gamma = (spotUp - 2*base + spotDn) / (dS * dS)

	volUp, err := fn(m.WithVol(m.Vol+dV), expiry)
	if err != nil {
		return 0, Greeks{}, err
	}
	if scheme == FDForward {
		g.Vega = (volUp - base) / dV
	} else {
		volDn, err := fn(m.WithVol(math.Max(m.Vol-dV, 1e-8)), expiry)
		if err != nil {
			return 0, Greeks{}, err
		}
		g.Vega = (volUp - volDn) / (2 * dV)
	}

	rateUp, err := fn(m.WithRate(m.Rate+dR), expiry)
	if err != nil {
		return 0, Greeks{}, err
	}
	if scheme == FDForward {
		g.Rho = (rateUp - base) / dR
	} else {
		rateDn, err := fn(m.WithRate(m.Rate-dR), expiry)
		if err != nil {
			return 0, Greeks{}, err
		}
		g.Rho = (rateUp - rateDn) / (2 * dR)
	}

	shorter, err := fn(m, expiry-dT)
	if err != nil {
		return 0, Greeks{}, err
	}
	g.Theta = (shorter - base) / dT

	return base, g, nil
}
