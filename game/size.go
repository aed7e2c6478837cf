package game

import (
	"fmt"
	"strconv"
	"strings"
)

// NanometresPerUnit calibrates the starting radius to 100 nm.
const NanometresPerUnit = 100.0 / PlayerStartRadius

type sizeUnit struct {
	name   string
	factor float64
}

var sizeUnits = []sizeUnit{
	{"nm", 1},
	{"µm", 1e3},
	{"mm", 1e6},
	{"cm", 1e7},
	{"m", 1e9},
	{"km", 1e12},
	{"Mm", 1e15},
	{"Gm", 1e18},
	{"AU", 1.496e20},
	{"pc", 3.086e25},
	{"kpc", 3.086e28},
	{"Mpc", 3.086e31},
	{"Gpc", 3.086e34},
}

// FormatSize renders a radius as a physical length in the largest unit
// that keeps the value at or above one.
func FormatSize(radius float64) string {
	nm := radius * NanometresPerUnit
	val, unit := nm, "nm"
	for i := len(sizeUnits) - 1; i >= 0; i-- {
		if nm >= sizeUnits[i].factor {
			val, unit = nm/sizeUnits[i].factor, sizeUnits[i].name
			break
		}
	}
	if val < 0.01 && unit == "nm" && nm > 0 {
		return shortExp(nm) + " nm"
	}
	return fmt.Sprintf("%.2f %s", val, unit)
}

// shortExp writes one-decimal scientific notation without exponent
// padding, 5.0e-3 rather than 5.0e-03.
func shortExp(v float64) string {
	s := strconv.FormatFloat(v, 'e', 1, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	n, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%se%+d", mant, n)
}
