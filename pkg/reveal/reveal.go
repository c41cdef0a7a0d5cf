// Package reveal maps the 0-100 reveal dial to per-sentence display
// decisions. It is pure: the same inputs always produce the same outputs.
package reveal

const (
	// DefaultValue is the reveal value used for a document the reader has
	// never adjusted: fully revealed.
	DefaultValue = 100

	// PageTurnValue is what the dial resets to on a page turn when the
	// maintain-level preference is off, so each new page starts untranslated.
	PageTurnValue = 0

	// Step is how far the keyboard controls move the dial per press.
	Step = 5

	MinValue = 0
	MaxValue = 100
)

// Clamp forces value into [MinValue, MaxValue].
func Clamp(value int) int {
	if value < MinValue {
		return MinValue
	}
	if value > MaxValue {
		return MaxValue
	}
	return value
}

// Increase moves the dial up one step, clamped at the top.
func Increase(value int) int {
	return Clamp(value + Step)
}

// Decrease moves the dial down one step, clamped at the bottom.
func Decrease(value int) int {
	return Clamp(value - Step)
}

// ShowNative reports whether sentence index (0-based) on a page of
// sentenceCount sentences shows its native-language text at the given reveal
// value. Revealed sentences always form a prefix of the page: the threshold
// is (value/100)*sentenceCount and a sentence is revealed iff its index is
// strictly below it. An empty page reveals nothing at any value.
func ShowNative(value, sentenceCount, index int) bool {
	if sentenceCount <= 0 || index < 0 || index >= sentenceCount {
		return false
	}
	threshold := float64(Clamp(value)) / 100 * float64(sentenceCount)
	return float64(index) < threshold
}

// RevealedCount returns how many sentences on a page of sentenceCount show
// native text at the given reveal value.
func RevealedCount(value, sentenceCount int) int {
	count := 0
	for i := 0; i < sentenceCount; i++ {
		if ShowNative(value, sentenceCount, i) {
			count++
		}
	}
	return count
}
