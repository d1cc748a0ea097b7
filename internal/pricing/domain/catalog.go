package domain

import "fmt"

// ParamSpec 参数元数据,接口层原样返回给前端表单
type ParamSpec struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Type    string   `json:"type"` // enum / float / int
	Default any      `json:"default,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Step    *float64 `json:"step,omitempty"`
	Options []string `json:"options,omitempty"`
}

// MethodInfo 单个估值方法的展示信息
type MethodInfo struct {
	Method PricingMethod `json:"method"`
	Note   string        `json:"note"`
	Params []ParamSpec   `json:"params,omitempty"`
}

// KindInfo 单个合约种类的展示信息
type KindInfo struct {
	Kind    InstrumentKind `json:"kind"`
	Label   string         `json:"label"`
	Params  []ParamSpec    `json:"params"`
	Methods []MethodInfo   `json:"methods"`
}

// MarketDefaults 市场参数的表单缺省值
type MarketDefaults struct {
	Spot     float64 `json:"spot"`
	Rate     float64 `json:"rate"`
	DivYield float64 `json:"div_yield"`
	Vol      float64 `json:"vol"`
}

// methodEntry 一个 (kind, method) 组合的估值入口
type methodEntry struct {
	method PricingMethod
	note   string
	scheme FDScheme
	// price 计算给定市场环境与剩余期限下的单位价格,期限单独传入以便扰动
	price func(m MarketInputs, expiry float64, s InstrumentSpec) (float64, error)
	// analytic 非空时给出解析价格与希腊字母,否则走有限差分
	analytic func(m MarketInputs, s InstrumentSpec) (Quote, error)
	extras   []ParamSpec
}

// Catalog 估值方法目录:按 (kind, method) 分发到具体模型,
// 每个种类的首个方法为缺省方法。
type Catalog struct {
	kinds   []InstrumentKind
	labels  map[InstrumentKind]string
	params  map[InstrumentKind][]ParamSpec
	entries map[InstrumentKind][]methodEntry
}

func fp(v float64) *float64 { return &v }

// NewCatalog 构建完整的方法目录。
func NewCatalog() *Catalog {
	c := &Catalog{
		labels:  make(map[InstrumentKind]string),
		params:  make(map[InstrumentKind][]ParamSpec),
		entries: make(map[InstrumentKind][]methodEntry),
	}

	optionType := func(def OptionType) ParamSpec {
		return ParamSpec{Key: "option_type", Label: "Option type", Type: "enum", Default: string(def), Options: []string{string(OptionCall), string(OptionPut)}}
	}
	strike := ParamSpec{Key: "strike", Label: "Strike", Type: "float", Default: 100.0, Min: fp(1e-6)}
	expiry := ParamSpec{Key: "expiry", Label: "Expiry (years)", Type: "float", Default: 1.0, Min: fp(1e-6), Step: fp(0.05)}
	treeSteps := func(def int) ParamSpec {
		return ParamSpec{Key: "steps", Label: "Tree steps", Type: "int", Default: def, Min: fp(10)}
	}
	mcSeed := func(def int) ParamSpec {
		return ParamSpec{Key: "seed", Label: "Random seed", Type: "int", Default: def, Min: fp(0)}
	}

	c.register(KindVanilla, "European vanilla option",
		[]ParamSpec{optionType(OptionCall), strike, expiry},
		methodEntry{
			method: MethodBlackScholes,
			note:   "Analytical price and Greeks under lognormal diffusion with constant r, q, sigma.",
			scheme: FDCentral,
			price: func(m MarketInputs, t float64, s InstrumentSpec) (float64, error) {
				q, err := BlackScholes(m, s.OptionType, s.Strike, t)
				return q.Price, err
			},
			analytic: func(m MarketInputs, s InstrumentSpec) (Quote, error) {
				return BlackScholes(m, s.OptionType, s.Strike, s.Expiry)
			},
		},
		methodEntry{
			method: MethodBinomialCRR,
			note:   "Recombining Cox-Ross-Rubinstein lattice with risk-neutral backward induction. Greeks via bumps.",
			scheme: FDCentral,
			price: func(m MarketInputs, t float64, s InstrumentSpec) (float64, error) {
				return BinomialCRR(m, s.OptionType, s.Strike, t, s.Steps, false)
			},
			extras: []ParamSpec{treeSteps(DefaultVanillaTreeSteps)},
		},
	)

	c.register(KindAmerican, "American option",
		[]ParamSpec{optionType(OptionPut), strike, expiry},
		methodEntry{
			method: MethodBinomialCRR,
			note:   "CRR lattice with early exercise: value = max(intrinsic, continuation) at each node.",
			scheme: FDCentral,
			price: func(m MarketInputs, t float64, s InstrumentSpec) (float64, error) {
				return BinomialCRR(m, s.OptionType, s.Strike, t, s.Steps, true)
			},
			extras: []ParamSpec{treeSteps(DefaultAmericanTreeSteps)},
		},
	)

	c.register(KindDigital, "Digital (cash-or-nothing)",
		[]ParamSpec{
			optionType(OptionCall), strike, expiry,
			{Key: "payout", Label: "Cash payout", Type: "float", Default: 10.0, Min: fp(1e-6)},
		},
		methodEntry{
			method: MethodBlackScholes,
			note:   "Analytical discounted payout times N(+/-d2). Greeks via finite-difference bumps.",
			scheme: FDCentral,
			price: func(m MarketInputs, t float64, s InstrumentSpec) (float64, error) {
				return DigitalPrice(m, s.OptionType, s.Strike, t, s.Payout)
			},
		},
	)

	c.register(KindBarrier, "Barrier (knock-out)",
		[]ParamSpec{
			optionType(OptionCall), strike, expiry,
			{Key: "direction", Label: "Knock-out direction", Type: "enum", Default: string(BarrierUp), Options: []string{string(BarrierUp), string(BarrierDown)}},
			{Key: "level", Label: "Barrier level", Type: "float", Default: 120.0, Min: fp(1e-6)},
		},
		methodEntry{
			method: MethodMCDiscrete,
			note:   "Simulates GBM paths with discrete barrier checks; fast but can miss intra-step hits.",
			scheme: FDForward,
			price: func(m MarketInputs, t float64, s InstrumentSpec) (float64, error) {
				r, err := BarrierMC(m, s.OptionType, s.Strike, t, s.Direction, s.Level, s.Paths, s.Steps, s.Seed, false)
				return r.Price, err
			},
			extras: []ParamSpec{
				{Key: "paths", Label: "MC paths", Type: "int", Default: DefaultBarrierPaths, Min: fp(1000), Step: fp(500)},
				{Key: "steps", Label: "Time steps", Type: "int", Default: DefaultBarrierSteps, Min: fp(1)},
				mcSeed(DefaultBarrierSeed),
			},
		},
		methodEntry{
			method: MethodMCBridge,
			note:   "Adds a Brownian-bridge correction to reduce discrete barrier miss bias.",
			scheme: FDForward,
			price: func(m MarketInputs, t float64, s InstrumentSpec) (float64, error) {
				r, err := BarrierMC(m, s.OptionType, s.Strike, t, s.Direction, s.Level, s.Paths, s.Steps, s.Seed, true)
				return r.Price, err
			},
			extras: []ParamSpec{
				{Key: "paths", Label: "MC paths", Type: "int", Default: DefaultBarrierPaths, Min: fp(1000), Step: fp(500)},
				{Key: "steps", Label: "Time steps", Type: "int", Default: DefaultBarrierSteps, Min: fp(1)},
				mcSeed(DefaultBarrierSeed),
			},
		},
		methodEntry{
			method: MethodBinomialCRR,
			note:   "Knock-out CRR lattice: breached nodes are zeroed during backward induction. Greeks via bumps.",
			scheme: FDCentral,
			price: func(m MarketInputs, t float64, s InstrumentSpec) (float64, error) {
				return BinomialCRRBarrier(m, s.OptionType, s.Strike, t, s.Direction, s.Level, s.Steps)
			},
			extras: []ParamSpec{treeSteps(DefaultBarrierTreeSteps)},
		},
	)

	c.register(KindAsian, "Asian (average price)",
		[]ParamSpec{optionType(OptionCall), strike, expiry},
		methodEntry{
			method: MethodGeometricClosed,
			note:   "Closed form for the continuous geometric-average price under GBM (lognormal).",
			scheme: FDCentral,
			price: func(m MarketInputs, t float64, s InstrumentSpec) (float64, error) {
				return GeometricAsianPrice(m, s.OptionType, s.Strike, t)
			},
		},
		methodEntry{
			method: MethodArithmeticMC,
			note:   "Simulates GBM paths with an arithmetic average over N fixings; Greeks via bump-and-reprice.",
			scheme: FDForward,
			price: func(m MarketInputs, t float64, s InstrumentSpec) (float64, error) {
				r, err := AsianArithmeticMC(m, s.OptionType, s.Strike, t, s.Fixings, s.Paths, s.Seed)
				return r.Price, err
			},
			extras: []ParamSpec{
				{Key: "fixings", Label: "Fixings", Type: "int", Default: DefaultAsianFixings, Min: fp(4)},
				{Key: "paths", Label: "MC paths", Type: "int", Default: DefaultAsianPaths, Min: fp(1000), Step: fp(500)},
				mcSeed(DefaultAsianSeed),
			},
		},
	)

	c.register(KindForward, "Forward",
		[]ParamSpec{
			{Key: "strike", Label: "Delivery price", Type: "float", Default: 100.0, Min: fp(1e-6)},
			expiry,
		},
		methodEntry{
			method: MethodDiscountedForward,
			note:   "PV = S*exp(-qT) - K*exp(-rT). Vol is ignored; Greeks via bumps.",
			scheme: FDCentral,
			price: func(m MarketInputs, t float64, s InstrumentSpec) (float64, error) {
				return ForwardValue(m, s.Strike, t)
			},
		},
	)

	return c
}

func (c *Catalog) register(kind InstrumentKind, label string, params []ParamSpec, entries ...methodEntry) {
	c.kinds = append(c.kinds, kind)
	c.labels[kind] = label
	c.params[kind] = params
	c.entries[kind] = entries
}

// Kinds 返回支持的合约种类,按注册顺序。
func (c *Catalog) Kinds() []InstrumentKind {
	out := make([]InstrumentKind, len(c.kinds))
	copy(out, c.kinds)
	return out
}

// Methods 返回某种类支持的估值方法。
func (c *Catalog) Methods(kind InstrumentKind) []PricingMethod {
	entries := c.entries[kind]
	out := make([]PricingMethod, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.method)
	}
	return out
}

// DefaultMethod 返回某种类的缺省估值方法。
func (c *Catalog) DefaultMethod(kind InstrumentKind) (PricingMethod, error) {
	entries := c.entries[kind]
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return entries[0].method, nil
}

// Supports 判断 (kind, method) 组合是否可用。
func (c *Catalog) Supports(kind InstrumentKind, method PricingMethod) bool {
	_, err := c.lookup(kind, method)
	return err == nil
}

func (c *Catalog) lookup(kind InstrumentKind, method PricingMethod) (methodEntry, error) {
	entries, ok := c.entries[kind]
	if !ok {
		return methodEntry{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if method == "" {
		return entries[0], nil
	}
	for _, e := range entries {
		if e.method == method {
			return e, nil
		}
	}
	return methodEntry{}, fmt.Errorf("%w: %s/%s", ErrUnsupportedMethod, kind, method)
}

// MethodNote 返回方法说明文字,未知组合返回空串。
func (c *Catalog) MethodNote(kind InstrumentKind, method PricingMethod) string {
	e, err := c.lookup(kind, method)
	if err != nil {
		return ""
	}
	return e.note
}

// Price 计算单位合约价格。method 为空时使用种类缺省方法。
func (c *Catalog) Price(m MarketInputs, kind InstrumentKind, method PricingMethod, spec InstrumentSpec) (float64, error) {
	e, err := c.lookup(kind, method)
	if err != nil {
		return 0, err
	}
	if err := spec.validateShape(kind); err != nil {
		return 0, err
	}
	spec = spec.withDefaults(kind, e.method)
	return e.price(m, spec.Expiry, spec)
}

// Quote 计算单位合约价格与希腊字母。有解析解的方法直接求解,
// 其余方法按目录登记的差分格式做扰动重估。
func (c *Catalog) Quote(m MarketInputs, kind InstrumentKind, method PricingMethod, spec InstrumentSpec) (Quote, error) {
	e, err := c.lookup(kind, method)
	if err != nil {
		return Quote{}, err
	}
	if err := spec.validateShape(kind); err != nil {
		return Quote{}, err
	}
	spec = spec.withDefaults(kind, e.method)
	if e.analytic != nil {
		return e.analytic(m, spec)
	}
	price, greeks, err := FDGreeks(m, spec.Expiry, e.scheme, func(mm MarketInputs, t float64) (float64, error) {
		return e.price(mm, t, spec)
	})
	if err != nil {
		return Quote{}, err
	}
	return Quote{Price: price, Greeks: greeks}, nil
}

// MarketFormDefaults 市场参数的表单缺省值。
func (c *Catalog) MarketFormDefaults() MarketDefaults {
	return MarketDefaults{Spot: 100, Rate: 0.05, DivYield: 0, Vol: 0.2}
}

// Describe 返回完整目录,用于前端渲染合约与方法选择表单。
func (c *Catalog) Describe() []KindInfo {
	out := make([]KindInfo, 0, len(c.kinds))
	for _, kind := range c.kinds {
		info := KindInfo{Kind: kind, Label: c.labels[kind], Params: c.params[kind]}
		for _, e := range c.entries[kind] {
			info.Methods = append(info.Methods, MethodInfo{Method: e.method, Note: e.note, Params: e.extras})
		}
		out = append(out, info)
	}
	return out
}
