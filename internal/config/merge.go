package config

// pair copies one optional file field onto its merged counterpart
type pair[B, O any] func(b *B, o *O)

// field builds a pair from accessors for the merged and the optional value
func field[B, O, T any](dst func(*B) *T, src func(*O) *T) pair[B, O] {
	return func(b *B, o *O) {
		if v := src(o); v != nil {
			*dst(b) = *v
		}
	}
}

// mergeGroup applies every present field of over onto a copy of base. An
// absent group leaves base untouched.
func mergeGroup[B, O any](base B, over *O, pairs []pair[B, O]) B {
	if over == nil {
		return base
	}
	for _, p := range pairs {
		p(&base, over)
	}
	return base
}
