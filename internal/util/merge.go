// ABOUTME: Deep merge for nested string-keyed maps
// ABOUTME: Used to lay partially decoded oracle output over typed defaults
package util

// DeepMerge returns a new map combining base and overlay. Nested maps are
// merged key-wise; any other overlay value replaces the base value. Keys only
// present in base are preserved. Neither input is mutated.
func DeepMerge(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		ov, vIsMap := v.(map[string]any)
		bv, bIsMap := out[k].(map[string]any)
		if vIsMap && bIsMap {
			out[k] = DeepMerge(bv, ov)
			continue
		}
		out[k] = v
	}
	return out
}
