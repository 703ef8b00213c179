package mask

// Generator is a restartable, lazy sequence of Masks with a sticky error
// flag (spec C6/C7's MaskGenerator contract).
type Generator interface {
	// Next returns the next Mask, or ok=false when the generator is
	// exhausted or has failed. Once it has failed, every subsequent call
	// also returns ok=false.
	Next() (*Mask, bool)
	// Reset rewinds the generator back to its first mask. It does not
	// clear a sticky error.
	Reset()
	// Good reports false if the generator encountered an error; once
	// false it never reports true again.
	Good() bool
	// Err returns the error that made Good false, or nil.
	Err() error
}
