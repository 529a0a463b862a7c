package entity

// Category agrupación simple de productos para filtrado.
type Category struct {
	ID   string
	Name string
}
