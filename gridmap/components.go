package gridmap

// Components finds all contiguous regions of walkable cells under
// 4-connectivity. Each component is sorted by Y, then X, and components are
// ordered by their first (smallest) coordinate, so the result is
// deterministic.
//
// A reachable set computed with an unlimited budget covers exactly the
// component that holds its origin.
//
// Time:   O(N log N) including the sort, N = walkable cells.
// Memory: O(N) for the seen set and output.
func (m *Map) Components() [][]Coordinate {
	seen := make(map[Coordinate]bool, len(m.cells))
	var comps [][]Coordinate
	for _, c0 := range m.Coordinates() {
		if seen[c0] {
			continue
		}
		comps = append(comps, m.flood(c0, seen))
	}
	return comps
}

// ComponentOf returns the sorted component containing c, or nil if c is
// not walkable.
// Time: O(K log K), K = component size.
func (m *Map) ComponentOf(c Coordinate) []Coordinate {
	if !m.Walkable(c) {
		return nil
	}
	return m.flood(c, make(map[Coordinate]bool))
}

// flood collects every cell 4-connected to c0, marking them in seen.
func (m *Map) flood(c0 Coordinate, seen map[Coordinate]bool) []Coordinate {
	queue := []Coordinate{c0}
	seen[c0] = true
	for qi := 0; qi < len(queue); qi++ {
		for _, v := range Neighbors4(queue[qi]) {
			if !m.Walkable(v) || seen[v] {
				continue
			}
			seen[v] = true
			queue = append(queue, v)
		}
	}
	sortCoordinates(queue)
	return queue
}
