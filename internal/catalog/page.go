package catalog

type Thumbnail struct {
	Image
	Href     string
	Selected bool
}

type ColorChoice struct {
	ColorOption
	Href     string
	Selected bool
}

// Page is the product-details view model. Every control is a link that
// carries the next View in its query string.
type Page struct {
	Product  Product
	View     View
	Active   Image
	Color    ColorOption
	Subtotal Money

	PrevImageHref string
	NextImageHref string
	Thumbnails    []Thumbnail
	Colors        []ColorChoice

	DecQuantityHref string
	IncQuantityHref string

	ScrollLeftHref  string
	ScrollRightHref string
}

func BuildPage(path string, p Product, v View) Page {
	href := func(next View) string {
		return path + "?" + next.Query().Encode()
	}

	page := Page{
		Product:  p,
		View:     v,
		Subtotal: v.Subtotal(p),
	}
	if len(p.Images) > 0 {
		page.Active = p.Images[v.Gallery.Index]
	}
	if v.Color >= 0 && v.Color < len(p.Colors) {
		page.Color = p.Colors[v.Color]
	}

	prev, next := v, v
	prev.Gallery = v.Gallery.Step(-1)
	next.Gallery = v.Gallery.Step(1)
	page.PrevImageHref = href(prev)
	page.NextImageHref = href(next)

	// The first image is only reachable through the arrows.
	for i := 1; i < len(p.Images); i++ {
		sel := v
		sel.Gallery = v.Gallery.Select(i)
		page.Thumbnails = append(page.Thumbnails, Thumbnail{
			Image:    p.Images[i],
			Href:     href(sel),
			Selected: v.Gallery.Index == i,
		})
	}

	for i, c := range p.Colors {
		page.Colors = append(page.Colors, ColorChoice{
			ColorOption: c,
			Href:        href(v.SelectColor(p, i)),
			Selected:    v.Color == i,
		})
	}

	dec, inc := v, v
	dec.Quantity = v.Quantity.Dec()
	inc.Quantity = v.Quantity.Inc()
	page.DecQuantityHref = href(dec)
	page.IncQuantityHref = href(inc)

	left, right := v, v
	left.Carousel = v.Carousel.ScrollBy(-1)
	right.Carousel = v.Carousel.ScrollBy(1)
	page.ScrollLeftHref = href(left)
	page.ScrollRightHref = href(right)

	return page
}
