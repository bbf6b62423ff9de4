package helpers

// ScriptedRand replays fixed values for code that draws randomness.
// Once a script is exhausted it keeps returning zero.
type ScriptedRand struct {
	Floats []float64
	Ints   []int
}

func (r *ScriptedRand) Float64() float64 {
	if len(r.Floats) == 0 {
		return 0
	}
	v := r.Floats[0]
	r.Floats = r.Floats[1:]
	return v
}

func (r *ScriptedRand) Intn(n int) int {
	if len(r.Ints) == 0 || n <= 0 {
		return 0
	}
	v := r.Ints[0]
	r.Ints = r.Ints[1:]
	return v % n
}
