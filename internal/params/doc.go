// Package params maps raw UI slider values onto the numeric ranges the
// terrain shaders accept.
//
// These helpers clamp or substitute defaults; they never fail. The ranges
// and fallbacks are matched bit-for-bit by the host UI, so every bound is
// a named constant here and all slider math is float32.
package params
