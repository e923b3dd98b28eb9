// SPDX-License-Identifier: MIT

package samples

// MergeRecursive merges two sorted slices the naive way, one element per
// call frame. Call depth grows linearly with the total input length, so
// large inputs exhaust the stack; kept as the known resource boundary the
// engine should be able to expose.
func MergeRecursive(a, b []int) []int {
	if len(a) == 0 {
		return append([]int(nil), b...)
	}
	if len(b) == 0 {
		return append([]int(nil), a...)
	}
	if a[0] <= b[0] {
		return append([]int{a[0]}, MergeRecursive(a[1:], b)...)
	}
	return append([]int{b[0]}, MergeRecursive(a, b[1:])...)
}

// MergeIterative merges two sorted slices with an explicit accumulator and
// terminates at any input size.
func MergeIterative(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
