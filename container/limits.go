package container

// Limits bounds the resources a single package may consume.
// Zero fields take their default value.
type Limits struct {
	MaxParts     int
	MaxPartSize  uint64 // uncompressed bytes per part
	MaxTotalSize uint64 // uncompressed bytes across all parts
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxParts:     10_000,
		MaxPartSize:  256 << 20, // 256 MiB
		MaxTotalSize: 1 << 30,   // 1 GiB
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxParts == 0 {
		l.MaxParts = d.MaxParts
	}
	if l.MaxPartSize == 0 {
		l.MaxPartSize = d.MaxPartSize
	}
	if l.MaxTotalSize == 0 {
		l.MaxTotalSize = d.MaxTotalSize
	}
	return l
}
