package dejson

// Hash computes the DJB32 hash used to dispatch record and field names at
// runtime. The schema compiler (internal/codegen) calls this same function
// at compile time for the hashes it emits, so the generated metadata and
// the runtime's key hashes always agree.
func Hash(name string) uint32 {
	return HashBytes([]byte(name))
}

// HashBytes is Hash over a byte slice, avoiding an allocation when the
// caller already holds the name as bytes (e.g. a JSON object key).
func HashBytes(name []byte) uint32 {
	var h uint32 = 5381
	for _, b := range name {
		h = h*33 + uint32(b)
	}
	return h
}
