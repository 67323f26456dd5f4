package feature

// Matrix is a sparse document-term matrix in compressed sparse row
// form. Row i occupies Indices[Indptr[i]:Indptr[i+1]] (column indices,
// strictly increasing) and the matching Data range (values).
type Matrix struct {
	Rows int
	Cols int

	Indptr  []int
	Indices []int
	Data    []float64
}

// NewMatrix creates an empty matrix with the given column count.
// Rows are added with AppendRow.
func NewMatrix(cols int) *Matrix {
	return &Matrix{
		Cols:   cols,
		Indptr: []int{0},
	}
}

// AppendRow adds one row. indices must be strictly increasing and
// aligned with values; both may be empty for an all-zero row.
func (m *Matrix) AppendRow(indices []int, values []float64) {
	m.Indices = append(m.Indices, indices...)
	m.Data = append(m.Data, values...)
	m.Indptr = append(m.Indptr, len(m.Indices))
	m.Rows++
}

// Row returns the column indices and values of row i. The slices alias
// the matrix storage and must not be modified by readers.
func (m *Matrix) Row(i int) (indices []int, values []float64) {
	start, end := m.Indptr[i], m.Indptr[i+1]
	return m.Indices[start:end], m.Data[start:end]
}

// NNZ returns the number of stored (non-zero) entries.
func (m *Matrix) NNZ() int {
	return len(m.Indices)
}

// ColEntry is one stored entry of a column, used by columnwise
// training access.
type ColEntry struct {
	Row   int
	Value float64
}

// ColumnEntries regroups the matrix by column. Entries within a column
// are ordered by row. Rows absent from a column hold an implicit zero.
func (m *Matrix) ColumnEntries() [][]ColEntry {
	counts := make([]int, m.Cols)
	for _, j := range m.Indices {
		counts[j]++
	}
	cols := make([][]ColEntry, m.Cols)
	for j, c := range counts {
		if c > 0 {
			cols[j] = make([]ColEntry, 0, c)
		}
	}
	for i := 0; i < m.Rows; i++ {
		indices, values := m.Row(i)
		for k, j := range indices {
			cols[j] = append(cols[j], ColEntry{Row: i, Value: values[k]})
		}
	}
	return cols
}
