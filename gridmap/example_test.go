package gridmap_test

import (
	"fmt"

	"github.com/katalvlaran/movegrid/gridmap"
)

// ExampleFromRows imports a dense tile grid, dropping walls (-1).
func ExampleFromRows() {
	m, err := gridmap.FromRows([][]int{
		{1, 1, 3},
		{1, -1, 1},
	}, gridmap.DefaultRowOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(m.Len(), m.Walkable(gridmap.C(1, 1)), m.MinCost())
	fmt.Println(m.Coordinates())
	// Output:
	// 5 false 1
	// [0,0 1,0 2,0 0,1 2,1]
}

// ExampleMap_With shows a copy-on-write edit: the original map is untouched.
func ExampleMap_With() {
	base := gridmap.MustNew(map[gridmap.Coordinate]int{gridmap.C(0, 0): 1})
	next, _ := base.With(gridmap.C(1, 0), 2)
	fmt.Println(base.Len(), next.Len())
	// Output:
	// 1 2
}
