package mapper

import (
	"reflect"
	"testing"
)

func TestYesNoRoundTrip(t *testing.T) {
	cases := []struct {
		in      interface{}
		forward interface{}
		reverse interface{}
	}{
		{true, "yes", true},
		{false, "no", false},
		{"yes", "yes", true},
		{"no", "no", false},
		{nil, "no", false},
		{float64(1), "yes", true},
	}

	for _, tc := range cases {
		got := YesNoForward(tc.in)
		if got != tc.forward {
			t.Errorf("YesNoForward(%v) = %v, want %v", tc.in, got, tc.forward)
		}
		if back := YesNoReverse(got); back != tc.reverse {
			t.Errorf("YesNoReverse(%v) = %v, want %v", got, back, tc.reverse)
		}
	}
}

func TestYesNoReverseOnlyLiteralYes(t *testing.T) {
	for _, v := range []interface{}{"Yes", "YES", "true", "1", "", nil, 1, true} {
		if YesNoReverse(v) != false {
			t.Errorf("YesNoReverse(%v) should be false", v)
		}
	}
}

func TestUnlimitedForward(t *testing.T) {
	if got := UnlimitedForward(nil); got != "" {
		t.Errorf("nil should encode as empty string, got %v", got)
	}
	if got := UnlimitedForward(50); got != "50" {
		t.Errorf("50 should encode as \"50\", got %v", got)
	}
	if got := UnlimitedForward(float64(25)); got != "25" {
		t.Errorf("json float should encode as \"25\", got %v", got)
	}
}

func TestUnlimitedReverseSentinels(t *testing.T) {
	for _, v := range []interface{}{nil, "", "0", 0, float64(0)} {
		if got := UnlimitedReverse(v); got != nil {
			t.Errorf("UnlimitedReverse(%v) = %v, want nil", v, got)
		}
	}
	if got := UnlimitedReverse("50"); got != 50 {
		t.Errorf("UnlimitedReverse(\"50\") = %v, want 50", got)
	}
	if got := UnlimitedReverse(float64(30)); got != 30 {
		t.Errorf("UnlimitedReverse(30.0) = %v, want 30", got)
	}
}

func TestPriceTransforms(t *testing.T) {
	if got := PriceForward(float64(19.9)); got != "19.90" {
		t.Errorf("PriceForward(19.9) = %v, want \"19.90\"", got)
	}
	if got := PriceReverse("19.90"); got != 19.9 {
		t.Errorf("PriceReverse(\"19.90\") = %v, want 19.9", got)
	}
	if got := PriceReverse("not a price"); got != float64(0) {
		t.Errorf("malformed price should read as zero, got %v", got)
	}
}

func TestPauseOpenTransforms(t *testing.T) {
	if got := PauseOpenForward(true); got != "pause" {
		t.Errorf("PauseOpenForward(true) = %v", got)
	}
	if got := PauseOpenForward(false); got != "open" {
		t.Errorf("PauseOpenForward(false) = %v", got)
	}
	if PauseOpenReverse("pause") != true || PauseOpenReverse("open") != false {
		t.Error("PauseOpenReverse mismatch")
	}
}

func TestScriptTransform(t *testing.T) {
	double := ScriptTransform(`result := value * 2`)
	if got := double(int64(21)); got != int64(42) {
		t.Errorf("script transform = %v, want 42", got)
	}

	// A script that never sets result passes the value through.
	noop := ScriptTransform(`x := value`)
	if got := noop("unchanged"); got != "unchanged" {
		t.Errorf("no-result script should passthrough, got %v", got)
	}
}

func TestValidateScript(t *testing.T) {
	if err := ValidateScript(`result := value`); err != nil {
		t.Errorf("valid script rejected: %v", err)
	}
	if err := ValidateScript(`result :=`); err == nil {
		t.Error("broken script should be rejected")
	}
}

func TestScriptTransformPreservesInput(t *testing.T) {
	upper := ScriptTransform(`result := value + "!"`)
	got := upper("go")
	if !reflect.DeepEqual(got, "go!") {
		t.Errorf("got %v", got)
	}
}
