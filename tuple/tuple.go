// Package tuple defines positional value groups serialized as objects with Item1..ItemN members.
// Groups longer than seven items nest the remainder in Rest.
package tuple

type (
	Tuple1[A any] struct {
		Item1 A
	}

	Tuple2[A, B any] struct {
		Item1 A
		Item2 B
	}

	Tuple3[A, B, C any] struct {
		Item1 A
		Item2 B
		Item3 C
	}

	Tuple4[A, B, C, D any] struct {
		Item1 A
		Item2 B
		Item3 C
		Item4 D
	}

	Tuple5[A, B, C, D, E any] struct {
		Item1 A
		Item2 B
		Item3 C
		Item4 D
		Item5 E
	}

	Tuple6[A, B, C, D, E, F any] struct {
		Item1 A
		Item2 B
		Item3 C
		Item4 D
		Item5 E
		Item6 F
	}

	Tuple7[A, B, C, D, E, F, G any] struct {
		Item1 A
		Item2 B
		Item3 C
		Item4 D
		Item5 E
		Item6 F
		Item7 G
	}

	//Tuple8 holds seven items and a nested remainder tuple
	Tuple8[A, B, C, D, E, F, G, R any] struct {
		Item1 A
		Item2 B
		Item3 C
		Item4 D
		Item5 E
		Item6 F
		Item7 G
		Rest  R
	}
)

func New1[A any](a A) Tuple1[A] {
	return Tuple1[A]{Item1: a}
}

func New2[A, B any](a A, b B) Tuple2[A, B] {
	return Tuple2[A, B]{Item1: a, Item2: b}
}

func New3[A, B, C any](a A, b B, c C) Tuple3[A, B, C] {
	return Tuple3[A, B, C]{Item1: a, Item2: b, Item3: c}
}

func New4[A, B, C, D any](a A, b B, c C, d D) Tuple4[A, B, C, D] {
	return Tuple4[A, B, C, D]{Item1: a, Item2: b, Item3: c, Item4: d}
}

func New5[A, B, C, D, E any](a A, b B, c C, d D, e E) Tuple5[A, B, C, D, E] {
	return Tuple5[A, B, C, D, E]{Item1: a, Item2: b, Item3: c, Item4: d, Item5: e}
}

func New6[A, B, C, D, E, F any](a A, b B, c C, d D, e E, f F) Tuple6[A, B, C, D, E, F] {
	return Tuple6[A, B, C, D, E, F]{Item1: a, Item2: b, Item3: c, Item4: d, Item5: e, Item6: f}
}

func New7[A, B, C, D, E, F, G any](a A, b B, c C, d D, e E, f F, g G) Tuple7[A, B, C, D, E, F, G] {
	return Tuple7[A, B, C, D, E, F, G]{Item1: a, Item2: b, Item3: c, Item4: d, Item5: e, Item6: f, Item7: g}
}

// New8 creates a tuple whose eighth position holds rest
func New8[A, B, C, D, E, F, G, R any](a A, b B, c C, d D, e E, f F, g G, rest R) Tuple8[A, B, C, D, E, F, G, R] {
	return Tuple8[A, B, C, D, E, F, G, R]{Item1: a, Item2: b, Item3: c, Item4: d, Item5: e, Item6: f, Item7: g, Rest: rest}
}
