package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dimension holds the exponents of the SI base dimensions in the order
// length, mass, time, current, temperature, amount, luminous intensity.
type Dimension [7]int8

// Unit is a parsed unit expression.
type Unit struct {
	// Symbol is the expression as written.
	Symbol string

	// Scale converts a magnitude in this unit to SI base units.
	Scale float64

	// Offset is added after scaling. Only temperature units carry one.
	Offset float64

	// Dim is the dimension of the unit.
	Dim Dimension
}

// Dimensionless reports whether the unit has no dimension.
func (u Unit) Dimensionless() bool {
	return u.Dim == Dimension{}
}

// Compatible reports whether magnitudes can be converted between u and o.
func (u Unit) Compatible(o Unit) bool {
	return u.Dim == o.Dim
}

type unitDef struct {
	scale      float64
	offset     float64
	dim        Dimension
	prefixable bool
}

var (
	dimLength      = Dimension{1, 0, 0, 0, 0, 0, 0}
	dimMass        = Dimension{0, 1, 0, 0, 0, 0, 0}
	dimTime        = Dimension{0, 0, 1, 0, 0, 0, 0}
	dimCurrent     = Dimension{0, 0, 0, 1, 0, 0, 0}
	dimTemperature = Dimension{0, 0, 0, 0, 1, 0, 0}
	dimAmount      = Dimension{0, 0, 0, 0, 0, 1, 0}
	dimLuminous    = Dimension{0, 0, 0, 0, 0, 0, 1}
	dimFrequency   = Dimension{0, 0, -1, 0, 0, 0, 0}
	dimForce       = Dimension{1, 1, -2, 0, 0, 0, 0}
	dimPressure    = Dimension{-1, 1, -2, 0, 0, 0, 0}
	dimEnergy      = Dimension{2, 1, -2, 0, 0, 0, 0}
	dimPower       = Dimension{2, 1, -3, 0, 0, 0, 0}
	dimCharge      = Dimension{0, 0, 1, 1, 0, 0, 0}
	dimVoltage     = Dimension{2, 1, -3, -1, 0, 0, 0}
	dimResistance  = Dimension{2, 1, -3, -2, 0, 0, 0}
	dimVolume      = Dimension{3, 0, 0, 0, 0, 0, 0}
)

const (
	elementaryCharge = 1.602176634e-19
	zeroCelsius      = 273.15
)

var unitTable = map[string]unitDef{
	"m":   {scale: 1, dim: dimLength, prefixable: true},
	"g":   {scale: 1e-3, dim: dimMass, prefixable: true},
	"s":   {scale: 1, dim: dimTime, prefixable: true},
	"A":   {scale: 1, dim: dimCurrent, prefixable: true},
	"K":   {scale: 1, dim: dimTemperature, prefixable: true},
	"mol": {scale: 1, dim: dimAmount, prefixable: true},
	"cd":  {scale: 1, dim: dimLuminous},
	"Hz":  {scale: 1, dim: dimFrequency, prefixable: true},
	"N":   {scale: 1, dim: dimForce, prefixable: true},
	"Pa":  {scale: 1, dim: dimPressure, prefixable: true},
	"J":   {scale: 1, dim: dimEnergy, prefixable: true},
	"W":   {scale: 1, dim: dimPower, prefixable: true},
	"C":   {scale: 1, dim: dimCharge, prefixable: true},
	"V":   {scale: 1, dim: dimVoltage, prefixable: true},
	"ohm": {scale: 1, dim: dimResistance, prefixable: true},
	"Ω":   {scale: 1, dim: dimResistance, prefixable: true},
	"L":   {scale: 1e-3, dim: dimVolume, prefixable: true},
	"l":   {scale: 1e-3, dim: dimVolume, prefixable: true},
	"eV":  {scale: elementaryCharge, dim: dimEnergy, prefixable: true},
	"bar": {scale: 1e5, dim: dimPressure, prefixable: true},
	"atm": {scale: 101325, dim: dimPressure},
	"min": {scale: 60, dim: dimTime},
	"h":   {scale: 3600, dim: dimTime},
	"d":   {scale: 86400, dim: dimTime},
	"rpm": {scale: 1.0 / 60.0, dim: dimFrequency},
	"%":   {scale: 0.01},
	"rad": {scale: 1},
	"deg": {scale: math.Pi / 180},
	"°":   {scale: math.Pi / 180},

	"Torr": {scale: 101325.0 / 760.0, dim: dimPressure, prefixable: true},
	"degC": {scale: 1, offset: zeroCelsius, dim: dimTemperature},
	"°C":   {scale: 1, offset: zeroCelsius, dim: dimTemperature},
	"degF": {scale: 5.0 / 9.0, offset: zeroCelsius - 32*5.0/9.0, dim: dimTemperature},
	"°F":   {scale: 5.0 / 9.0, offset: zeroCelsius - 32*5.0/9.0, dim: dimTemperature},
}

var unitAliases = map[string]string{
	"meter":          "m",
	"metre":          "m",
	"gram":           "g",
	"kilogram":       "kg",
	"second":         "s",
	"sec":            "s",
	"ampere":         "A",
	"kelvin":         "K",
	"mole":           "mol",
	"hertz":          "Hz",
	"newton":         "N",
	"pascal":         "Pa",
	"joule":          "J",
	"watt":           "W",
	"coulomb":        "C",
	"volt":           "V",
	"liter":          "L",
	"litre":          "L",
	"minute":         "min",
	"hour":           "h",
	"day":            "d",
	"percent":        "%",
	"radian":         "rad",
	"degree":         "deg",
	"celsius":        "degC",
	"degree_Celsius": "degC",
	"fahrenheit":     "degF",
	"torr":           "Torr",
	"dimensionless":  "",
}

var unitPrefixes = []struct {
	symbol string
	factor float64
}{
	// Two-letter prefix first so "da" wins over "d".
	{"da", 1e1},
	{"Y", 1e24}, {"Z", 1e21}, {"E", 1e18}, {"P", 1e15}, {"T", 1e12},
	{"G", 1e9}, {"M", 1e6}, {"k", 1e3}, {"h", 1e2},
	{"d", 1e-1}, {"c", 1e-2}, {"m", 1e-3}, {"u", 1e-6}, {"µ", 1e-6}, {"μ", 1e-6},
	{"n", 1e-9}, {"p", 1e-12}, {"f", 1e-15}, {"a", 1e-18},
}

// ParseUnit parses a unit expression such as "m", "kPa", "mol/L", "m*s^-2"
// or "degC". The empty string is the dimensionless unit.
func ParseUnit(expr string) (Unit, error) {
	symbol := strings.TrimSpace(expr)
	u := Unit{Symbol: symbol, Scale: 1}
	if symbol == "" {
		return u, nil
	}

	// "**" is the power operator, not two multiplications.
	parts := strings.Split(strings.ReplaceAll(symbol, "**", "^"), "/")
	for i, part := range parts {
		sign := int8(1)
		if i > 0 {
			sign = -1
		}
		factors := strings.FieldsFunc(part, func(r rune) bool {
			return r == '*' || r == '·' || r == ' '
		})
		if len(factors) == 0 {
			return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, expr)
		}
		for _, factor := range factors {
			def, exp, err := parseFactor(factor)
			if err != nil {
				return Unit{}, fmt.Errorf("%w: %q", err, expr)
			}
			if def.offset != 0 {
				if len(parts) > 1 || len(factors) > 1 || exp != 1 {
					return Unit{}, fmt.Errorf("%w: offset unit in compound %q", ErrUnknownUnit, expr)
				}
				u.Offset = def.offset
			}
			exp *= sign
			u.Scale *= math.Pow(def.scale, float64(exp))
			for d := range u.Dim {
				u.Dim[d] += def.dim[d] * exp
			}
		}
	}
	return u, nil
}

// parseFactor parses one "sym" or "sym^n" factor.
func parseFactor(factor string) (unitDef, int8, error) {
	sym, exp := factor, int8(1)
	if i := strings.Index(factor, "^"); i >= 0 {
		sym = factor[:i]
		n, err := strconv.ParseInt(factor[i+1:], 10, 8)
		if err != nil {
			return unitDef{}, 0, ErrUnknownUnit
		}
		exp = int8(n)
	}

	def, ok := lookupUnit(sym)
	if !ok {
		return unitDef{}, 0, ErrUnknownUnit
	}
	return def, exp, nil
}

func lookupUnit(sym string) (unitDef, bool) {
	if alias, ok := unitAliases[sym]; ok {
		if alias == "" {
			return unitDef{scale: 1}, true
		}
		sym = alias
	}
	if def, ok := unitTable[sym]; ok {
		return def, true
	}
	for _, p := range unitPrefixes {
		base, found := strings.CutPrefix(sym, p.symbol)
		if !found || base == "" {
			continue
		}
		def, ok := unitTable[base]
		if ok && def.prefixable {
			def.scale *= p.factor
			return def, true
		}
	}
	return unitDef{}, false
}

// Quantity is a numeric magnitude paired with a unit expression.
type Quantity struct {
	Magnitude float64
	Unit      string
}

// NewQuantity validates the unit and returns the quantity.
func NewQuantity(magnitude float64, unit string) (Quantity, error) {
	if _, err := ParseUnit(unit); err != nil {
		return Quantity{}, err
	}
	return Quantity{Magnitude: magnitude, Unit: strings.TrimSpace(unit)}, nil
}

// String formats the quantity as "12.5 m".
func (q Quantity) String() string {
	mag := strconv.FormatFloat(q.Magnitude, 'g', -1, 64)
	if q.Unit == "" {
		return mag
	}
	return mag + " " + q.Unit
}

// To converts the quantity to the target unit.
func (q Quantity) To(target string) (Quantity, error) {
	from, err := ParseUnit(q.Unit)
	if err != nil {
		return Quantity{}, err
	}
	to, err := ParseUnit(target)
	if err != nil {
		return Quantity{}, err
	}
	if !from.Compatible(to) {
		return Quantity{}, fmt.Errorf("%w: cannot convert %q to %q", ErrIncompatibleUnit, q.Unit, target)
	}
	si := q.Magnitude*from.Scale + from.Offset
	return Quantity{Magnitude: (si - to.Offset) / to.Scale, Unit: to.Symbol}, nil
}
