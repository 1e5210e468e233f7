// Package keyenc produces canonical byte encodings of index labels and
// label tuples, so that tuples can key hash maps during lookup, grouping and
// joining. Encodings are prefix-safe: a tuple's encoding is the
// concatenation of its components' encodings, each length-delimited, so
// distinct tuples never collide byte-wise.
package keyenc

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
)

const (
	tagInt = iota + 1
	tagFloat
	tagString
	tagBool
	tagTime
	tagNA
)

// AppendLabel appends the canonical encoding of a single label scalar to buf
func AppendLabel(buf []byte, v interface{}) []byte {
	switch x := v.(type) {
	case int64:
		buf = append(buf, tagInt)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(x))
	case float64:
		buf = append(buf, tagFloat)
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(x))
	case string:
		buf = append(buf, tagString)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(x)))
		buf = append(buf, x...)
	case bool:
		buf = append(buf, tagBool)
		if x {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case time.Time:
		buf = append(buf, tagTime)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(x.UnixNano()))
	case nil:
		buf = append(buf, tagNA)
	default:
		// labels are canonicalized before they reach keyenc; anything else
		// is a bug in the caller
		panic(fmt.Sprintf("keyenc: unsupported label type %T", v))
	}
	return buf
}

// AppendTuple appends the canonical encoding of a label tuple to buf
func AppendTuple(buf []byte, tuple []interface{}) []byte {
	for _, v := range tuple {
		buf = AppendLabel(buf, v)
	}
	return buf
}

// HashLabel returns the xxhash of a single label's canonical encoding
func HashLabel(v interface{}) uint64 {
	return xxhash.Sum64(AppendLabel(nil, v))
}

// HashTuple returns the xxhash of a label tuple's canonical encoding
func HashTuple(tuple []interface{}) uint64 {
	return xxhash.Sum64(AppendTuple(nil, tuple))
}
