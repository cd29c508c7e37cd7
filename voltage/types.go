package voltage

import "github.com/NREL-Distribution-Suites/shift/geo"

// TransformerVoltageConfig names one transformer edge's per-winding
// line-to-ground voltages, in winding order. A two-winding transformer
// supplies exactly two; a center-tapped secondary or multi-winding unit
// may supply more.
type TransformerVoltageConfig struct {
	Name     string
	Voltages []geo.Voltage
}

func maxVoltage(vs []geo.Voltage) geo.Voltage {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}

	return m
}

func minVoltage(vs []geo.Voltage) geo.Voltage {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}

	return m
}
