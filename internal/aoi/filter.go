package aoi

// Filter extracts the altitude and auxiliary scalar of every point inside the
// polygon. positions is the (lon, lat, alt) triple buffer; aux is a parallel
// per-point scalar (typically decoded backscatter) and may be nil, in which
// case the auxiliary output is nil too.
//
// The scan is a plain O(n·m) pass, n points by m edges, no spatial index. An
// invalid polygon (fewer than 3 vertices) yields empty results without error.
func Filter(positions []float32, aux []float64, polygon Polygon) (altitudes []float32, filteredAux []float64) {
	altitudes = make([]float32, 0)
	if aux != nil {
		filteredAux = make([]float64, 0)
	}
	if !polygon.Valid() {
		return altitudes, filteredAux
	}

	count := len(positions) / 3
	for i := 0; i < count; i++ {
		lon := float64(positions[3*i])
		lat := float64(positions[3*i+1])
		if !polygon.Contains(lon, lat) {
			continue
		}
		altitudes = append(altitudes, positions[3*i+2])
		if aux != nil {
			filteredAux = append(filteredAux, aux[i])
		}
	}

	return altitudes, filteredAux
}
