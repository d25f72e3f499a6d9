package mapper

import "github.com/d5/tengo/v2"

// ScriptTransform wraps a tengo source snippet as a transform. The
// snippet receives the input as `value` and reports through `result`;
// a script that errors or leaves `result` unset passes the value
// through unchanged so a broken custom mapping cannot corrupt a sync.
func ScriptTransform(src string) TransformFunc {
	return func(v interface{}) interface{} {
		script := tengo.NewScript([]byte(src))
		if err := script.Add("value", v); err != nil {
			return v
		}
		compiled, err := script.Run()
		if err != nil {
			return v
		}
		out := compiled.Get("result")
		if out == nil || out.IsUndefined() {
			return v
		}
		return out.Value()
	}
}

// ValidateScript compiles a snippet so bad custom-mapping scripts are
// rejected at save time instead of silently no-oping on every sync.
func ValidateScript(src string) error {
	script := tengo.NewScript([]byte(src))
	if err := script.Add("value", nil); err != nil {
		return err
	}
	_, err := script.Compile()
	return err
}
