package layout

// Target describes the data layout of the verification target: pointer
// properties and the largest object the backend can address.
type Target struct {
	Triple   string // e.g. "x86_64-linux-gnu"
	PtrSize  int    // bytes
	PtrAlign int    // bytes
	// MaxObjectSize bounds the byte size of any single value; anything
	// larger is a size-overflow failure, not a defect.
	MaxObjectSize int64
}

func X8664LinuxGNU() Target {
	return Target{
		Triple:        "x86_64-linux-gnu",
		PtrSize:       8,
		PtrAlign:      8,
		MaxObjectSize: int64(1) << 47,
	}
}
