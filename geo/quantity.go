package geo

// Distance stores a length as meters. Construct via Meters or Kilometers.
type Distance float64

// Meters constructs a Distance from a value already in meters.
func Meters(v float64) Distance { return Distance(v) }

// Kilometers constructs a Distance from a value in kilometers.
func Kilometers(v float64) Distance { return Distance(v * 1000) }

// Meters returns the canonical magnitude in meters.
func (d Distance) Meters() float64 { return float64(d) }

// Voltage stores a line-to-ground (or otherwise specified) voltage as
// volts. Construct via Volts or KiloVolts.
type Voltage float64

// Volts constructs a Voltage from a value already in volts.
func Volts(v float64) Voltage { return Voltage(v) }

// KiloVolts constructs a Voltage from a value in kilovolts.
func KiloVolts(v float64) Voltage { return Voltage(v * 1000) }

// Volts returns the canonical magnitude in volts.
func (v Voltage) Volts() float64 { return float64(v) }

// KiloVolts returns the magnitude in kilovolts.
func (v Voltage) KiloVolts() float64 { return float64(v) / 1000 }

// Current stores a current as amperes.
type Current float64

// Amps constructs a Current from a value in amperes.
func Amps(v float64) Current { return Current(v) }

// Amps returns the canonical magnitude in amperes.
func (c Current) Amps() float64 { return float64(c) }

// ApparentPower stores apparent power as volt-amperes. Construct via VA or
// KVA.
type ApparentPower float64

// VA constructs an ApparentPower from a value in volt-amperes.
func VA(v float64) ApparentPower { return ApparentPower(v) }

// KVA constructs an ApparentPower from a value in kilovolt-amperes.
func KVA(v float64) ApparentPower { return ApparentPower(v * 1000) }

// VA returns the canonical magnitude in volt-amperes.
func (a ApparentPower) VA() float64 { return float64(a) }

// KVA returns the magnitude in kilovolt-amperes.
func (a ApparentPower) KVA() float64 { return float64(a) / 1000 }

// ActivePower stores real power as watts.
type ActivePower float64

// Watts constructs an ActivePower from a value in watts.
func Watts(v float64) ActivePower { return ActivePower(v) }

// Watts returns the canonical magnitude in watts.
func (a ActivePower) Watts() float64 { return float64(a) }

// ReactivePower stores reactive power as volt-amperes reactive.
type ReactivePower float64

// VAR constructs a ReactivePower from a value in VAR.
func VAR(v float64) ReactivePower { return ReactivePower(v) }

// VAR returns the canonical magnitude in VAR.
func (r ReactivePower) VAR() float64 { return float64(r) }

// Angle stores a phase or geometric angle in radians. Construct via
// Radians or Degrees.
type Angle float64

const degToRad = 3.141592653589793 / 180

// Radians constructs an Angle from a value already in radians.
func Radians(v float64) Angle { return Angle(v) }

// Degrees constructs an Angle from a value in degrees.
func Degrees(v float64) Angle { return Angle(v * degToRad) }

// Radians returns the canonical magnitude in radians.
func (a Angle) Radians() float64 { return float64(a) }

// Degrees returns the magnitude in degrees.
func (a Angle) Degrees() float64 { return float64(a) / degToRad }
