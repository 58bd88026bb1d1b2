package catalog

import "github.com/shopspring/decimal"

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func optPrice(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func rating(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

// FixtureProducts returns the demo catalog used by the in-memory source and
// by the seed migration.
func FixtureProducts() []Product {
	return []Product{
		{
			ID: 1, Name: "Motichoor Ladoo", Category: "Indian Sweets",
			PricePerKg: price(550), OriginalPricePerKg: optPrice(650),
			Description: "Tiny, soft, and colorful ladoos made from boondi soaked in sugar syrup.",
			Stock:       40, Featured: true, Rating: rating("4.7"), Reviews: 134,
			Ingredients: []string{"Boondi", "Sugar", "Cardamom", "Saffron"}, Weight: "400g",
		},
		{
			ID: 2, Name: "Besan Barfi", Category: "Indian Sweets",
			PricePerKg: price(750), OriginalPricePerKg: optPrice(850),
			Description: "Rich and dense fudge made from gram flour, ghee, and sugar.",
			Stock:       28, Rating: rating("4.5"), Reviews: 97,
			Ingredients: []string{"Besan", "Sugar", "Ghee", "Almonds"}, Weight: "500g",
		},
		{
			ID: 3, Name: "Sandesh", Category: "Indian Sweets",
			PricePerKg: price(800), OriginalPricePerKg: optPrice(950),
			Description: "Bengali delicacy made with fresh paneer and flavored with cardamom.",
			Stock:       20, Rating: rating("4.6"), Reviews: 88,
			Ingredients: []string{"Paneer", "Sugar", "Cardamom"}, Weight: "350g",
		},
		{
			ID: 4, Name: "Hazelnut Pralines", Category: "Chocolates",
			PricePerKg: price(2750), OriginalPricePerKg: optPrice(3250),
			Description: "Luxury pralines with a creamy hazelnut filling and crisp chocolate shell.",
			Stock:       50, Featured: true, Rating: rating("4.9"), Reviews: 201,
			Ingredients: []string{"Dark chocolate", "Hazelnuts", "Sugar", "Butter"}, Weight: "250g",
		},
		{
			ID: 5, Name: "White Chocolate Bark", Category: "Chocolates",
			PricePerKg: price(2250), OriginalPricePerKg: optPrice(2750),
			Description: "Crunchy white chocolate bark with pistachios and dried cranberries.",
			Stock:       36, Rating: rating("4.6"), Reviews: 133,
			Ingredients: []string{"White chocolate", "Pistachios", "Cranberries"}, Weight: "300g",
		},
		{
			ID: 6, Name: "Red Velvet Cupcake", Category: "Cupcakes",
			PricePerKg: price(1250), OriginalPricePerKg: optPrice(1500),
			Description: "Classic red velvet sponge topped with cream cheese frosting.",
			Stock:       25, Featured: true, Rating: rating("4.8"), Reviews: 152,
			Ingredients: []string{"Flour", "Cocoa powder", "Butter", "Cream cheese"}, Weight: "120g",
		},
		{
			ID: 7, Name: "Oreo Cupcake", Category: "Cupcakes",
			PricePerKg: price(1400), OriginalPricePerKg: optPrice(1650),
			Description: "Chocolate cupcake with Oreo crumbs and cookies & cream frosting.",
			Stock:       32, Rating: rating("4.7"), Reviews: 119,
			Ingredients: []string{"Flour", "Sugar", "Oreo cookies", "Butter"}, Weight: "110g",
		},
		{
			ID: 8, Name: "Sour Worms", Category: "Gummies",
			PricePerKg: price(750), OriginalPricePerKg: optPrice(900),
			Description: "Tangy, chewy gummy worms dusted with sour sugar.",
			Stock:       100, Rating: rating("4.5"), Reviews: 99,
			Ingredients: []string{"Gelatin", "Sugar", "Citric acid", "Flavors"}, Weight: "250g",
		},
		{
			ID: 9, Name: "Fruit Rings", Category: "Gummies",
			PricePerKg: price(900), OriginalPricePerKg: optPrice(1100),
			Description: "Colorful gummy rings bursting with fruity flavor.",
			Stock:       80, Featured: true, Rating: rating("4.6"), Reviews: 87,
			Ingredients: []string{"Gelatin", "Sugar", "Fruit flavors", "Colors"}, Weight: "300g",
		},
		{
			ID: 10, Name: "Butterscotch Candy", Category: "Candies",
			PricePerKg: price(500), OriginalPricePerKg: optPrice(600),
			Description: "Classic golden butterscotch hard candies with a rich caramel taste.",
			Stock:       70, Rating: rating("4.4"), Reviews: 102,
			Ingredients: []string{"Sugar", "Butter", "Corn syrup"}, Weight: "200g",
		},
		{
			ID: 11, Name: "Mint Toffees", Category: "Candies",
			PricePerKg: price(600), OriginalPricePerKg: optPrice(700),
			Description: "Chewy mint-flavored toffees for a refreshing bite.",
			Stock:       95, Rating: rating("4.3"), Reviews: 84,
			Ingredients: []string{"Sugar", "Mint flavor", "Butter"}, Weight: "220g",
		},
	}
}

// FixtureCategories lists the demo categories without counts.
func FixtureCategories() []Category {
	return []Category{
		{ID: "indian", Name: "Indian Sweets"},
		{ID: "chocolates", Name: "Chocolates"},
		{ID: "cupcakes", Name: "Cupcakes"},
		{ID: "gummies", Name: "Gummies"},
		{ID: "candies", Name: "Candies"},
	}
}
