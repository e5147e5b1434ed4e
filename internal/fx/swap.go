package fx

// Swap hands each side's value to the other side's setter. It does not check
// whether from and to are already equal.
func Swap(from, to string, setFrom, setTo func(string)) {
	setFrom(to)
	setTo(from)
}
