package model

import "time"

// TodoItem is a single task entry. It only exists inside a TodoList.
type TodoItem struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}
