package qcache

import "reflect"

// Batch is one chunk of a query's result set, as produced incrementally by
// the executor this cache sits behind. Row serialization and the pipeline
// that produces batches are out of this package's scope; Batch only needs
// to know its own approximate weight for the store's byte budget.
type Batch struct {
	Columns []string
	Rows    [][]interface{}
}

// SizeBytes estimates the batch's in-memory footprint. This is an
// approximation, not exact accounting — the spec explicitly excludes exact
// cost accounting from scope. Column names are charged by length. Every
// cell is charged a fixed base cost, plus its length for strings and byte
// slices, or a reflect-based size guess for types other than the builtin
// numeric and bool kinds.
func (b Batch) SizeBytes() int64 {
	var total int64
	for _, col := range b.Columns {
		total += int64(len(col))
	}
	for _, row := range b.Rows {
		for _, cell := range row {
			total += cellSizeBytes(cell)
		}
	}
	return total
}

const cellBaseCost = 16

func cellSizeBytes(v interface{}) int64 {
	switch t := v.(type) {
	case nil:
		return cellBaseCost
	case string:
		return int64(len(t)) + cellBaseCost
	case []byte:
		return int64(len(t)) + cellBaseCost
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
		return cellBaseCost
	default:
		// Unknown cell type: fall back to a reflect-based guess rather than
		// undercounting it as a fixed cost.
		return reflectSizeBytes(v) + cellBaseCost
	}
}

func reflectSizeBytes(v interface{}) int64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return int64(rv.Len()) * cellBaseCost
	case reflect.Map:
		return int64(rv.Len()) * cellBaseCost * 2
	default:
		return int64(rv.Type().Size())
	}
}

// ConcatBatches combines a sequence of batches into one logical batch,
// preserving row order. It assumes every batch shares the same columns,
// which holds for any sequence of batches pushed into a single entry — they
// all come from one query execution.
func ConcatBatches(batches []Batch) Batch {
	if len(batches) == 0 {
		return Batch{}
	}
	out := Batch{Columns: batches[0].Columns}
	n := 0
	for _, b := range batches {
		n += len(b.Rows)
	}
	out.Rows = make([][]interface{}, 0, n)
	for _, b := range batches {
		out.Rows = append(out.Rows, b.Rows...)
	}
	return out
}
