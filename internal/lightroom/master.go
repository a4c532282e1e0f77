package lightroom

import "fmt"

// ByteRange frames a chunk of a master upload. Single-shot uploads cover
// the whole payload; repeating PutMaster with successive ranges is the
// extension point for chunked uploads.
type ByteRange struct {
	Start int64
	End   int64
	Total int64
}

// FullRange covers a payload of size bytes in one shot.
func FullRange(size int) ByteRange {
	return ByteRange{Start: 0, End: int64(size) - 1, Total: int64(size)}
}

// ContentRange renders the range in Content-Range header form.
func (r ByteRange) ContentRange() string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, r.Total)
}
