package indexer

// Stats counts indexed entities of one novel.
type Stats struct {
	Chapters int `json:"chapters"`
	Ideas    int `json:"ideas"`
}
