// SPDX-License-Identifier: MIT

package matrix

// Test bridge (white-box): exposes unexported kernels to package matrix_test only.
// Compiled exclusively by `go test`; invisible in production builds.

// CoMatUpper_TestOnly runs the blocked kernel without any post-processing, so
// tests can observe that only the row >= column triangle is written.
func CoMatUpper_TestOnly(m, n int, x, out []float64, centered bool, opts ...Option) error {
	o := gatherOptions(opts...)

	return coMatUpper(m, n, x, out, centered, &o)
}

// Panic message exports to avoid "magic strings" in tests.
const (
	PanicThresholdInvalid_TestOnly    = panicThresholdInvalid
	PanicWorkersInvalid_TestOnly      = panicWorkersInvalid
	PanicPoolNil_TestOnly             = panicPoolNil
	PanicScratchNil_TestOnly          = panicScratchNil
	PanicScratchLimitInvalid_TestOnly = panicScratchLimitInvalid
)
