package store

// SeedCatalog is the shop's stock catalog, provisioned by both backends on
// first start: one entry per category with its sub-categories and items.
// Prices are minor units; Qty is seed stock and never changes.
var SeedCatalog = []SeedCategory{
	{Title: "Food Items", Subs: []SeedSubcategory{
		{Title: "Froozen", Items: []SeedItem{
			{Title: "Chicken", PriceCents: 15000, Qty: 40},
			{Title: "Fish", PriceCents: 35000, Qty: 200},
			{Title: "Meat", PriceCents: 50000, Qty: 10},
			{Title: "Beaf", PriceCents: 45000, Qty: 20},
		}},
		{Title: "Fruit", Items: []SeedItem{
			{Title: "Apple", PriceCents: 15000, Qty: 20},
			{Title: "Mango", PriceCents: 10000, Qty: 400},
			{Title: "Grapes", PriceCents: 25000, Qty: 40},
		}},
		{Title: "Vagetable", Items: []SeedItem{
			{Title: "Onion", PriceCents: 1000, Qty: 500},
			{Title: "Potato", PriceCents: 500, Qty: 400},
			{Title: "Lady Finger", PriceCents: 2500, Qty: 25},
		}},
	}},
	{Title: "Home Accessories", Subs: []SeedSubcategory{
		{Title: "Dacoration", Items: []SeedItem{
			{Title: "Indoor Plants", PriceCents: 1500, Qty: 400},
			{Title: "Fairy Lights", PriceCents: 1500, Qty: 40},
		}},
		{Title: "Wall Papers", Items: []SeedItem{
			{Title: "2D Wall Papers", PriceCents: 15000, Qty: 40},
			{Title: "3D Wall Papers", PriceCents: 10000, Qty: 30},
		}},
		{Title: "Kitchen Products", Items: []SeedItem{
			{Title: "Plates", PriceCents: 5000, Qty: 40},
			{Title: "Glass Fancy", PriceCents: 25000, Qty: 50},
		}},
	}},
	{Title: "Beauty Products", Subs: []SeedSubcategory{
		{Title: "Lip Sticks", Items: []SeedItem{
			{Title: "Matte", PriceCents: 7500, Qty: 10},
			{Title: "Gloss", PriceCents: 15000, Qty: 65},
		}},
		{Title: "Nail Paint", Items: []SeedItem{
			{Title: "Glass", PriceCents: 10000, Qty: 40},
			{Title: "Plain", PriceCents: 15000, Qty: 45},
		}},
	}},
	{Title: "Electronics", Subs: []SeedSubcategory{
		{Title: "Mobiles", Items: []SeedItem{
			{Title: "Samsung", PriceCents: 4500000, Qty: 4},
			{Title: "IPhone Promax", PriceCents: 15000000, Qty: 10},
		}},
		{Title: "Computers", Items: []SeedItem{
			{Title: "Laptops", PriceCents: 1500000, Qty: 40},
			{Title: "Lenovo Think Pad", PriceCents: 1550000, Qty: 40},
			{Title: "HP Matbook", PriceCents: 1590000, Qty: 40},
		}},
		{Title: "Air Conditionars", Items: []SeedItem{
			{Title: "Kanwood", PriceCents: 15000000, Qty: 10},
			{Title: "Dawlance", PriceCents: 7500000, Qty: 40},
			{Title: "Pell", PriceCents: 15000, Qty: 40},
			{Title: "Gree", PriceCents: 15000, Qty: 40},
		}},
	}},
}

type SeedCategory struct {
	Title string
	Subs  []SeedSubcategory
}

type SeedSubcategory struct {
	Title string
	Items []SeedItem
}

type SeedItem struct {
	Title      string
	PriceCents int64
	Qty        int
}
