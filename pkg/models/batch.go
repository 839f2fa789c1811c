package models

// BatchItemResult reports one element of a bulk operation. Failures stay
// per-item; a failed element never aborts its siblings.
type BatchItemResult struct {
	ID      int    `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type BatchResult struct {
	Results   []BatchItemResult `json:"results"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

func (b *BatchResult) Append(id int, err error) {
	item := BatchItemResult{ID: id, Success: err == nil}
	if err != nil {
		item.Error = err.Error()
		b.Failed++
	} else {
		b.Succeeded++
	}
	b.Results = append(b.Results, item)
}
