package catalog

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	MinQuantity = 1
	MaxQuantity = 99

	// ScrollStep is how far one carousel button press moves, in pixels.
	ScrollStep = 320

	cardWidth     = 288
	cardGap       = 16
	viewportWidth = 1208
)

// Gallery is a cursor over a fixed list of images that wraps at both ends.
type Gallery struct {
	Size  int
	Index int
}

func (g Gallery) Step(step int) Gallery {
	if g.Size == 0 {
		return g
	}
	next := g.Index + step
	switch {
	case next < 0:
		next = g.Size - 1
	case next >= g.Size:
		next = 0
	}
	g.Index = next
	return g
}

func (g Gallery) Select(i int) Gallery {
	if i >= 0 && i < g.Size {
		g.Index = i
	}
	return g
}

// Quantity is always within [MinQuantity, MaxQuantity].
type Quantity int

func ClampQuantity(n int) Quantity {
	switch {
	case n < MinQuantity:
		return MinQuantity
	case n > MaxQuantity:
		return MaxQuantity
	}
	return Quantity(n)
}

func (q Quantity) Inc() Quantity { return ClampQuantity(int(q) + 1) }
func (q Quantity) Dec() Quantity { return ClampQuantity(int(q) - 1) }

func (q Quantity) String() string {
	return fmt.Sprintf("%02d", int(q))
}

func Subtotal(q Quantity, unit Money) Money {
	return Money(q) * unit
}

// Carousel is the horizontal scroll position of the similar-items strip.
type Carousel struct {
	Offset int
	Max    int
}

func NewCarousel(items int) Carousel {
	content := items*cardWidth + (items-1)*cardGap
	limit := content - viewportWidth
	if limit < 0 {
		limit = 0
	}
	return Carousel{Max: limit}
}

// ScrollBy moves by direction*ScrollStep and stops at either edge.
func (c Carousel) ScrollBy(direction int) Carousel {
	c.Offset = clamp(c.Offset+direction*ScrollStep, 0, c.Max)
	return c
}

// View is everything a visitor can change on the page.
type View struct {
	Gallery  Gallery
	Color    int
	Quantity Quantity
	Carousel Carousel
}

func DefaultView(p Product) View {
	return View{
		Gallery:  Gallery{Size: len(p.Images)},
		Color:    p.DefaultColor,
		Quantity: MinQuantity,
		Carousel: NewCarousel(len(p.Similar)),
	}
}

// SelectColor picks a colour directly; out-of-range indexes are ignored.
func (v View) SelectColor(p Product, i int) View {
	if i >= 0 && i < len(p.Colors) {
		v.Color = i
	}
	return v
}

func (v View) Subtotal(p Product) Money {
	return Subtotal(v.Quantity, p.UnitPrice)
}

// ParseView restores a View from the query string. Missing or malformed
// values keep their defaults; out-of-range values are normalised.
func ParseView(p Product, q url.Values) View {
	v := DefaultView(p)
	if i, ok := intParam(q, "image"); ok {
		v.Gallery = v.Gallery.Select(i)
	}
	if i, ok := intParam(q, "color"); ok {
		v = v.SelectColor(p, i)
	}
	if n, ok := intParam(q, "qty"); ok {
		v.Quantity = ClampQuantity(n)
	}
	if n, ok := intParam(q, "offset"); ok {
		v.Carousel.Offset = clamp(n, 0, v.Carousel.Max)
	}
	return v
}

func (v View) Query() url.Values {
	q := url.Values{}
	q.Set("image", strconv.Itoa(v.Gallery.Index))
	q.Set("color", strconv.Itoa(v.Color))
	q.Set("qty", strconv.Itoa(int(v.Quantity)))
	q.Set("offset", strconv.Itoa(v.Carousel.Offset))
	return q
}

func intParam(q url.Values, key string) (int, bool) {
	raw := q.Get(key)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
