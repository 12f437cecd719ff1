package mem

// Units of capacity.
const (
	KB uint64 = 1 << (10 * (iota + 1))
	MB
	GB
	TB
)
