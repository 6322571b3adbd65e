package geo

// Catalog indexes points by id.
type Catalog struct {
	points []GeoPoint
	byID   map[string]int
}

// NewCatalog returns a catalog of points. When several points share an id,
// the first one wins.
func NewCatalog(points []GeoPoint) *Catalog {
	c := &Catalog{
		points: points,
		byID:   make(map[string]int, len(points)),
	}
	for i, p := range points {
		if _, ok := c.byID[p.ID]; !ok {
			c.byID[p.ID] = i
		}
	}
	return c
}

// Points returns the catalog's points in the order they were given.
func (c *Catalog) Points() []GeoPoint {
	return c.points
}

// Len returns the number of points, duplicates included.
func (c *Catalog) Len() int {
	return len(c.points)
}

// Lookup returns the point with the given id.
func (c *Catalog) Lookup(id string) (GeoPoint, bool) {
	i, ok := c.byID[id]
	if !ok {
		return GeoPoint{}, false
	}
	return c.points[i], true
}

// Route resolves the connection at index i of a connection list. It reports
// false if either endpoint is unknown. A connection without its own colour
// takes palette.At(i).
func (c *Catalog) Route(i int, conn Connection, palette Palette) (Route, bool) {
	from, ok := c.Lookup(conn.From)
	if !ok {
		return Route{}, false
	}
	to, ok := c.Lookup(conn.To)
	if !ok {
		return Route{}, false
	}
	color := conn.Color
	if color == "" {
		color = palette.At(i)
	}
	return Route{Index: i, From: from, To: to, Color: color}, true
}

// Resolve looks up the endpoints of every connection. Connections with an
// unknown endpoint are left out, and their number is returned as skipped.
// Colours are picked by the connection's index in conns, so they don't shift
// when an earlier connection is skipped.
func (c *Catalog) Resolve(conns []Connection, palette Palette) (routes []Route, skipped int) {
	routes = make([]Route, 0, len(conns))
	for i, conn := range conns {
		r, ok := c.Route(i, conn, palette)
		if !ok {
			skipped++
			continue
		}
		routes = append(routes, r)
	}
	return routes, skipped
}
