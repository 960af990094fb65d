package urbanwater

const (
	nearzero  = 1e-8 // acceptable closure error [m³]
	fatalzero = 1e-3 // wbal errors greater than this always halt the step
	mmToM     = .001
)
