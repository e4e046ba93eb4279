package dto

// TableView is the generic read-only projection of one persisted table,
// encoded exactly as stored.
type TableView struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}
