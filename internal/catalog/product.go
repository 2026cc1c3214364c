// Package catalog holds the product-details page: its static content and the
// small amount of local state (gallery, colour, quantity, carousel) a
// visitor can change.
package catalog

import "fmt"

// Money is an amount in cents.
type Money int64

func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s$%d.%02d", sign, m/100, m%100)
}

type Image struct {
	Key        string
	Alt        string
	ExtraCount int
}

type ColorOption struct {
	Label string
	Value string
}

type RatingRow struct {
	Stars   int
	Percent int
}

type Review struct {
	Name      string
	DateLabel string
	Rating    int
	Comment   string
}

type SimilarItem struct {
	ID           string
	ImageKey     string
	Category     string
	Title        string
	Price        string
	OldPrice     string
	Rating       string
	ActionActive bool
}

type Product struct {
	Title        string
	ShortTitle   string
	Category     string
	Description  string
	UnitPrice    Money
	AverageScore string
	ReviewCount  int
	Images       []Image
	Colors       []ColorOption
	DefaultColor int
	Ratings      []RatingRow
	Reviews      []Review
	Similar      []SimilarItem
}

const reviewText = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed diam nonummy lorem ipsum dolor sit amet, consectetur adipiscing elit, sed diam nonummy dolor sit lorem ipsum dolor sit amet, consectetur adipiscing elit, sed."

// Featured is the product shown on the product-details page.
func Featured() Product {
	similar := make([]SimilarItem, 0, 5)
	for i, key := range []string{
		"61rjMSPiDvL._AC_SY879_-removebg-preview 1.png",
		"410555708_236d2355-ef94-45ae-b51b-8d4cfb1cdbf5-removebg-preview 1.png",
		"128675430_50654237-removebg-preview.png",
		"360_F_649571437_eo442p0EwFcdkUOoeocbdi7VKl4VWqRP-removebg-preview.png",
		"61rjMSPiDvL._AC_SY879_-removebg-preview 1.png",
	} {
		similar = append(similar, SimilarItem{
			ID:           fmt.Sprint(i + 1),
			ImageKey:     key,
			Category:     "Dresses",
			Title:        "J.VER Women's Dress Shirts Solid Long Sleeve Stretch Wrinkle-Free",
			Price:        "AED 900",
			OldPrice:     "AED1300",
			Rating:       "4.5 (2910)",
			ActionActive: i == 2,
		})
	}

	reviews := make([]Review, 4)
	for i := range reviews {
		reviews[i] = Review{Name: "Alex Daewn", DateLabel: "4 months ago", Rating: 4, Comment: reviewText}
	}

	return Product{
		Title:        "J.VER Man Shirts Solid Long Sleeve Stretch Wrinkle-Free With Blue",
		ShortTitle:   "T-shirt",
		Category:     "T-Shirt",
		Description:  "Lorem ipsum dolor sit, consectetur adipiscing elit, sed diam nonummy Lorem ipsum dolor sit amet, diam nonummy",
		UnitPrice:    30000,
		AverageScore: "4.5",
		ReviewCount:  3000,
		Images: []Image{
			{Key: "young-adult-man-wearing-hoodie-beanie 1.png", Alt: "Man wearing blue hoodie"},
			{Key: "61GoUmCw1PL._AC_SX679_-removebg-preview.png", Alt: "White hoodie"},
			{Key: "61K-51V+wsL._AC_SX679_-removebg-preview.png", Alt: "Red hoodie"},
			{Key: "61GoUmCw1PL._AC_SX679_-removebg-preview (1).png", Alt: "Black hoodie", ExtraCount: 2},
		},
		Colors: []ColorOption{
			{Label: "Red", Value: "#e50914"},
			{Label: "Blue", Value: "#A9C8DE"},
			{Label: "Olive", Value: "#A99B64"},
			{Label: "Sky", Value: "#78A5D8"},
			{Label: "Gray", Value: "#7A7A7A"},
		},
		DefaultColor: 1,
		Ratings: []RatingRow{
			{Stars: 5, Percent: 67},
			{Stars: 4, Percent: 15},
			{Stars: 3, Percent: 6},
			{Stars: 2, Percent: 3},
			{Stars: 1, Percent: 9},
		},
		Reviews: reviews,
		Similar: similar,
	}
}
