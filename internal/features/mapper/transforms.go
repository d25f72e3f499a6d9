package mapper

import "strconv"

// The legacy LMS persists booleans as "yes"/"no" strings, counts as
// strings, and uses empty string (historically also "0") for the
// unlimited sentinel. These transforms are the single place that
// vocabulary is known.

func toBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "yes" || t == "true" || t == "1"
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return false
	}
}

func toInt(v interface{}) int {
	switch t := v.(type) {
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// YesNoForward encodes a canonical boolean as the legacy "yes"/"no" pair.
func YesNoForward(v interface{}) interface{} {
	if toBool(v) {
		return "yes"
	}
	return "no"
}

// YesNoReverse decodes the legacy pair: only the literal "yes" means
// true, every other value (including absence artifacts) means false.
func YesNoReverse(v interface{}) interface{} {
	s, ok := v.(string)
	return ok && s == "yes"
}

// IntForward stores a count as a plain number in the legacy shape.
func IntForward(v interface{}) interface{} {
	return toInt(v)
}

// IntReverse coerces whatever numeric shape legacy writers left behind.
func IntReverse(v interface{}) interface{} {
	return toInt(v)
}

// UnlimitedForward maps the canonical nil ("no limit") onto the legacy
// empty-string sentinel; a concrete limit becomes a numeric string.
func UnlimitedForward(v interface{}) interface{} {
	if v == nil {
		return ""
	}
	return strconv.Itoa(toInt(v))
}

// UnlimitedReverse folds every historical unlimited spelling ("", "0",
// numeric zero, absent) back to nil.
func UnlimitedReverse(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" || t == "0" {
			return nil
		}
		return toInt(t)
	case float64:
		if t == 0 {
			return nil
		}
		return int(t)
	case int:
		if t == 0 {
			return nil
		}
		return t
	default:
		return nil
	}
}

// PriceForward renders a canonical numeric price as the legacy decimal
// string.
func PriceForward(v interface{}) interface{} {
	return strconv.FormatFloat(toFloat(v), 'f', 2, 64)
}

// PriceReverse parses the legacy price string; malformed values read as
// zero rather than failing the sync.
func PriceReverse(v interface{}) interface{} {
	return toFloat(v)
}

// PauseOpenForward encodes the enrollment pause flag as the legacy
// status word.
func PauseOpenForward(v interface{}) interface{} {
	if toBool(v) {
		return "pause"
	}
	return "open"
}

// PauseOpenReverse decodes the legacy status word back to the flag.
func PauseOpenReverse(v interface{}) interface{} {
	s, ok := v.(string)
	return ok && s == "pause"
}
