package cubetrainer

// Category groups algorithms by difficulty.
type Category string

const (
	CategoryBasic    Category = "basic"
	CategoryAdvanced Category = "advanced"
	CategoryPro      Category = "pro"
	CategoryCustom   Category = "custom"
)

// Categories lists the categories in display order.
var Categories = []Category{CategoryBasic, CategoryAdvanced, CategoryPro, CategoryCustom}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryBasic, CategoryAdvanced, CategoryPro, CategoryCustom:
		return true
	}
	return false
}

// Algorithm is a named move sequence.
type Algorithm struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Moves       []Move
}

// Notation returns the moves as canonical notation.
func (a Algorithm) Notation() string {
	return FormatMoves(a.Moves)
}

// Scramble returns the state that a.Moves solves.
func (a Algorithm) Scramble() (State, error) {
	return Scramble(a.Moves)
}
