package models

type Todo struct {
	ID      int64
	Title   string
	Content string
	Done    bool
}
