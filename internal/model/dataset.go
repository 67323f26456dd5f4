package model

// Dataset is the training corpus loaded from the message store.
// Messages and Labels are aligned by index: Labels[i] holds the binary
// category flags for Messages[i], in the same order as Categories.
type Dataset struct {
	Messages   []string
	Labels     [][]int
	Categories []string
}

// Subset returns the rows of the dataset selected by idx, in idx order.
func (d *Dataset) Subset(idx []int) *Dataset {
	sub := &Dataset{
		Messages:   make([]string, len(idx)),
		Labels:     make([][]int, len(idx)),
		Categories: d.Categories,
	}
	for i, row := range idx {
		sub.Messages[i] = d.Messages[row]
		sub.Labels[i] = d.Labels[row]
	}
	return sub
}
