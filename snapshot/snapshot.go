// Package snapshot persists Tables as lz4-compressed binary streams and
// loads them back. Reads revalidate every value against its column type, so
// a snapshot cannot smuggle ill-typed data past the loader contract.
package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/pierrec/lz4"
	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/column"
	"github.com/zenframe/zenframe/columntype"
	"github.com/zenframe/zenframe/errors"
	"github.com/zenframe/zenframe/index"
	"github.com/zenframe/zenframe/internal/bitmap"
	"github.com/zenframe/zenframe/logging"
	"github.com/zenframe/zenframe/table"
)

var magic = [4]byte{'Z', 'F', 'S', '1'}

const (
	kindFlat         = byte(0)
	kindHierarchical = byte(1)
)

const (
	tagInt    = byte(1)
	tagFloat  = byte(2)
	tagString = byte(3)
	tagBool   = byte(4)
	tagTime   = byte(5)
	// tagTuple carries a flattened hierarchical label: an arity followed by
	// that many scalar values
	tagTuple = byte(6)
)

const (
	// typeNone marks an index level with no scalar type, e.g. an empty or
	// tuple-labelled flat index
	typeNone        = byte(0)
	typeBool        = byte(1)
	typeInt         = byte(2)
	typeFloat       = byte(3)
	typeString      = byte(4)
	typeTime        = byte(5)
	typeCategorical = byte(6)
)

// Write serializes t to w: a magic header followed by an lz4-compressed body
// carrying the table id, the row index, and every column with its validity
// bitmap and present values.
func Write(w io.Writer, t zenframe.Table) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	zw := lz4.NewWriter(w)
	enc := &encoder{w: zw}
	enc.writeString(t.ID())
	enc.writeIndex(t.RowIndex())
	labels := t.ColumnLabels()
	enc.writeUint(uint64(len(labels)))
	for i, label := range labels {
		enc.writeString(label)
		enc.writeColumn(t.ColumnAt(i))
	}
	if enc.err != nil {
		return enc.err
	}
	return zw.Close()
}

// Read deserializes a Table written by Write. The snapshot's table id is
// logged for traceability; the loaded Table receives a fresh id.
func Read(r io.Reader) (zenframe.Table, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, errors.MalformedInputError{Cause: fmt.Errorf("unable to read snapshot header: %w", err)}
	}
	if header != magic {
		return nil, errors.MalformedInputError{Cause: fmt.Errorf("stream is not a table snapshot")}
	}
	dec := &decoder{r: lz4.NewReader(r)}
	id := dec.readString()
	rowIndex := dec.readIndex()
	numCols := int(dec.readUint())
	if dec.err != nil {
		return nil, errors.MalformedInputError{Cause: dec.err}
	}
	order := make([]string, 0, numCols)
	cols := make(map[string]zenframe.Column, numCols)
	for i := 0; i < numCols; i++ {
		label := dec.readString()
		col := dec.readColumn()
		if dec.err != nil {
			return nil, errors.MalformedInputError{Cause: fmt.Errorf("column %d: %w", i, dec.err)}
		}
		order = append(order, label)
		cols[label] = col
	}
	if dec.err != nil {
		return nil, errors.MalformedInputError{Cause: dec.err}
	}
	logging.L().Debug("loaded table snapshot", "snapshotID", id, "rows", rowIndex.Len(), "columns", numCols)
	return table.FromParts(rowIndex, cols, order)
}

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) writeByte(b byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write([]byte{b})
}

func (e *encoder) writeUint(v uint64) {
	if e.err != nil {
		return
	}
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	_, e.err = e.w.Write(buf[:n])
}

func (e *encoder) writeBytes(b []byte) {
	e.writeUint(uint64(len(b)))
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) writeString(s string) {
	e.writeBytes([]byte(s))
}

func (e *encoder) writeType(t zenframe.ColumnType) {
	if t == nil {
		e.writeByte(typeNone)
		return
	}
	switch x := t.(type) {
	case *columntype.BoolColumnType:
		e.writeByte(typeBool)
	case *columntype.IntColumnType:
		e.writeByte(typeInt)
	case *columntype.FloatColumnType:
		e.writeByte(typeFloat)
	case *columntype.StringColumnType:
		e.writeByte(typeString)
	case *columntype.TimeColumnType:
		e.writeByte(typeTime)
		e.writeString(x.Format)
	case *columntype.CategoricalColumnType:
		e.writeByte(typeCategorical)
		e.writeUint(uint64(len(x.Categories)))
		for _, c := range x.Categories {
			e.writeString(c)
		}
	default:
		if e.err == nil {
			e.err = fmt.Errorf("column type %s is not snapshottable", t.Name())
		}
	}
}

func (e *encoder) writeValue(v interface{}) {
	switch x := v.(type) {
	case int64:
		e.writeByte(tagInt)
		e.writeUint(uint64(x))
	case float64:
		e.writeByte(tagFloat)
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
		if e.err == nil {
			_, e.err = e.w.Write(buf[:])
		}
	case string:
		e.writeByte(tagString)
		e.writeString(x)
	case bool:
		e.writeByte(tagBool)
		if x {
			e.writeByte(1)
		} else {
			e.writeByte(0)
		}
	case time.Time:
		e.writeByte(tagTime)
		b, err := x.MarshalBinary()
		if err != nil && e.err == nil {
			e.err = err
			return
		}
		e.writeBytes(b)
	case zenframe.Tuple:
		e.writeByte(tagTuple)
		e.writeUint(uint64(len(x)))
		for _, component := range x {
			e.writeValue(component)
		}
	default:
		if e.err == nil {
			e.err = fmt.Errorf("value of type %T is not snapshottable", v)
		}
	}
}

func (e *encoder) writeIndex(idx zenframe.Index) {
	levels := idx.Levels()
	if len(levels) == 1 {
		e.writeByte(kindFlat)
	} else {
		e.writeByte(kindHierarchical)
	}
	e.writeUint(uint64(len(levels)))
	for _, level := range levels {
		e.writeString(level.Name)
		e.writeType(level.Type)
	}
	e.writeUint(uint64(idx.Len()))
	for i := 0; i < idx.Len(); i++ {
		label := idx.Label(i)
		if len(levels) > 1 {
			// hierarchical labels are tuples of known arity; write the
			// components directly
			for _, component := range label.(zenframe.Tuple) {
				e.writeValue(component)
			}
			continue
		}
		e.writeValue(label)
	}
}

func (e *encoder) writeColumn(col zenframe.Column) {
	e.writeType(col.Type())
	e.writeUint(uint64(col.Len()))
	valid := bitmap.New(col.Len())
	for i := 0; i < col.Len(); i++ {
		if !col.IsNA(i) {
			valid.Set(i)
		}
	}
	e.writeBytes(valid.Bytes())
	for i := 0; i < col.Len(); i++ {
		if col.IsNA(i) {
			continue
		}
		v, err := col.Get(i)
		if err != nil && e.err == nil {
			e.err = err
			return
		}
		e.writeValue(v)
	}
}

type decoder struct {
	r   io.Reader
	err error
}

func (d *decoder) readByte() byte {
	if d.err != nil {
		return 0
	}
	var buf [1]byte
	_, d.err = io.ReadFull(d.r, buf[:])
	return buf[0]
}

func (d *decoder) readUint() uint64 {
	if d.err != nil {
		return 0
	}
	v, err := binary.ReadUvarint(decoderByteReader{d})
	if d.err == nil {
		d.err = err
	}
	return v
}

func (d *decoder) readBytes() []byte {
	n := d.readUint()
	if d.err != nil {
		return nil
	}
	if n > 1<<30 {
		d.err = fmt.Errorf("implausible snapshot block length %d", n)
		return nil
	}
	buf := make([]byte, n)
	_, d.err = io.ReadFull(d.r, buf)
	return buf
}

func (d *decoder) readString() string {
	return string(d.readBytes())
}

func (d *decoder) readType() zenframe.ColumnType {
	switch tag := d.readByte(); tag {
	case typeNone:
		return nil
	case typeBool:
		return &columntype.BoolColumnType{}
	case typeInt:
		return &columntype.IntColumnType{}
	case typeFloat:
		return &columntype.FloatColumnType{}
	case typeString:
		return &columntype.StringColumnType{}
	case typeTime:
		return &columntype.TimeColumnType{Format: d.readString()}
	case typeCategorical:
		n := int(d.readUint())
		if d.err != nil {
			return nil
		}
		categories := make([]string, n)
		for i := range categories {
			categories[i] = d.readString()
		}
		return &columntype.CategoricalColumnType{Categories: categories}
	default:
		if d.err == nil {
			d.err = fmt.Errorf("unknown column type tag %d", tag)
		}
		return nil
	}
}

func (d *decoder) readValue() interface{} {
	switch tag := d.readByte(); tag {
	case tagInt:
		return int64(d.readUint())
	case tagFloat:
		var buf [8]byte
		if d.err == nil {
			_, d.err = io.ReadFull(d.r, buf[:])
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(buf[:]))
	case tagString:
		return d.readString()
	case tagBool:
		return d.readByte() == 1
	case tagTime:
		var t time.Time
		b := d.readBytes()
		if d.err == nil {
			d.err = t.UnmarshalBinary(b)
		}
		return t
	case tagTuple:
		n := int(d.readUint())
		if d.err != nil || n > 1<<20 {
			return nil
		}
		tuple := make(zenframe.Tuple, n)
		for i := range tuple {
			tuple[i] = d.readValue()
		}
		return tuple
	default:
		if d.err == nil {
			d.err = fmt.Errorf("unknown value tag %d", tag)
		}
		return nil
	}
}

func (d *decoder) readIndex() zenframe.Index {
	kind := d.readByte()
	numLevels := int(d.readUint())
	if d.err != nil {
		return nil
	}
	if numLevels > 1<<16 {
		d.err = fmt.Errorf("implausible snapshot index level count %d", numLevels)
		return nil
	}
	levels := make([]zenframe.Level, numLevels)
	for i := range levels {
		levels[i].Name = d.readString()
		levels[i].Type = d.readType()
	}
	n := int(d.readUint())
	if d.err != nil {
		return nil
	}
	if n > 1<<30 {
		d.err = fmt.Errorf("implausible snapshot index length %d", n)
		return nil
	}
	switch kind {
	case kindFlat:
		if numLevels != 1 {
			d.err = fmt.Errorf("flat index snapshot carries %d levels", numLevels)
			return nil
		}
		labels := make([]interface{}, n)
		for i := range labels {
			labels[i] = d.readValue()
		}
		if d.err != nil {
			return nil
		}
		idx, err := index.NewNamedFlat(levels[0].Name, labels)
		d.err = err
		return idx
	case kindHierarchical:
		tuples := make([]zenframe.Tuple, n)
		for i := range tuples {
			tuple := make(zenframe.Tuple, numLevels)
			for j := range tuple {
				tuple[j] = d.readValue()
			}
			tuples[i] = tuple
		}
		if d.err != nil {
			return nil
		}
		idx, err := index.NewHierarchical(levels, tuples)
		d.err = err
		return idx
	default:
		d.err = fmt.Errorf("unknown index kind %d", kind)
		return nil
	}
}

func (d *decoder) readColumn() zenframe.Column {
	typ := d.readType()
	if typ == nil && d.err == nil {
		d.err = fmt.Errorf("column snapshot carries no element type")
	}
	n := int(d.readUint())
	validBytes := d.readBytes()
	if d.err != nil {
		return nil
	}
	if n > 1<<30 {
		d.err = fmt.Errorf("implausible snapshot column length %d", n)
		return nil
	}
	if want := 8 * ((n + 63) / 64); len(validBytes) < want {
		d.err = fmt.Errorf("validity block is %d bytes, want %d for %d slots", len(validBytes), want, n)
		return nil
	}
	valid := bitmap.FromBytes(validBytes, n)
	values := make([]interface{}, n)
	for i := 0; i < n; i++ {
		if !valid.Get(i) {
			continue
		}
		values[i] = d.readValue()
	}
	if d.err != nil {
		return nil
	}
	col, err := column.FromParts(typ, values, valid)
	d.err = err
	return col
}

type decoderByteReader struct {
	d *decoder
}

func (br decoderByteReader) ReadByte() (byte, error) {
	b := br.d.readByte()
	return b, br.d.err
}
