package review

import (
	"regexp"
	"strconv"
)

var digitRunRe = regexp.MustCompile(`\d+`)

// Inferrer applies the fixed value-typing policy to raw spec table cells.
// Keys listed in rawKeys are exempt: their values are kept verbatim.
type Inferrer struct {
	rawKeys map[string]struct{}
}

func NewInferrer(rawKeys []string) *Inferrer {
	set := make(map[string]struct{}, len(rawKeys))
	for _, k := range rawKeys {
		set[k] = struct{}{}
	}
	return &Inferrer{rawKeys: set}
}

// Infer types a raw cell value. The rules run in strict order: exemption,
// Yes/No, all-digits integer, float, then the digit-run fallback (no runs
// is zero, one run is a preserved token, several runs stay a list).
func (in *Inferrer) Infer(specName, raw string) SpecValue {
	if _, exempt := in.rawKeys[specName]; exempt {
		return RawValue(raw)
	}
	switch raw {
	case "No":
		return BoolValue(false)
	case "Yes":
		return BoolValue(true)
	}
	if isDigits(raw) {
		n, err := strconv.Atoi(raw)
		if err == nil {
			return IntValue(n)
		}
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return FloatValue(f)
	}
	runs := digitRunRe.FindAllString(raw, -1)
	switch len(runs) {
	case 0:
		return ZeroValue()
	case 1:
		return TokenValue(runs[0])
	default:
		return TokenListValue(runs)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
