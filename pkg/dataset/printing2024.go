// Package dataset holds the fixed tabular data the mock analytics assistant
// answers questions about. There is exactly one dataset, keyed "printing2024".
package dataset

// KeyPrinting2024 identifies the only dataset shipped with the service.
const KeyPrinting2024 = "printing2024"

// Row is a single sales record. Date is in YYYY-MM format.
type Row struct {
	Date    string `json:"date"`
	Product string `json:"product"`
	Units   int    `json:"units"`
	Revenue int    `json:"revenue"`
	Country string `json:"country"`
	Channel string `json:"channel"`
}

// Product and channel values used across the dataset.
const (
	ProductClassic = "T-Shirt Classic"
	ProductPremium = "T-Shirt Premium"

	ChannelOnline    = "Online"
	ChannelWholesale = "Wholesale"
)

// Printing2024 is the full January through September 2024 dataset.
var Printing2024 = []Row{
	// January 2024
	{Date: "2024-01", Product: ProductClassic, Units: 450, Revenue: 4500, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-01", Product: ProductPremium, Units: 200, Revenue: 3000, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-01", Product: ProductClassic, Units: 300, Revenue: 3000, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-01", Product: ProductPremium, Units: 150, Revenue: 2250, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-01", Product: ProductClassic, Units: 250, Revenue: 2500, Country: "UK", Channel: ChannelOnline},

	// February 2024
	{Date: "2024-02", Product: ProductClassic, Units: 520, Revenue: 5200, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-02", Product: ProductPremium, Units: 230, Revenue: 3450, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-02", Product: ProductClassic, Units: 280, Revenue: 2800, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-02", Product: ProductPremium, Units: 180, Revenue: 2700, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-02", Product: ProductClassic, Units: 320, Revenue: 3200, Country: "UK", Channel: ChannelOnline},
	{Date: "2024-02", Product: ProductPremium, Units: 90, Revenue: 1350, Country: "Germany", Channel: ChannelOnline},

	// March 2024
	{Date: "2024-03", Product: ProductClassic, Units: 600, Revenue: 6000, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-03", Product: ProductPremium, Units: 280, Revenue: 4200, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-03", Product: ProductClassic, Units: 350, Revenue: 3500, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-03", Product: ProductPremium, Units: 200, Revenue: 3000, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-03", Product: ProductClassic, Units: 380, Revenue: 3800, Country: "UK", Channel: ChannelOnline},
	{Date: "2024-03", Product: ProductPremium, Units: 120, Revenue: 1800, Country: "Germany", Channel: ChannelOnline},

	// April 2024
	{Date: "2024-04", Product: ProductClassic, Units: 480, Revenue: 4800, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-04", Product: ProductPremium, Units: 220, Revenue: 3300, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-04", Product: ProductClassic, Units: 320, Revenue: 3200, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-04", Product: ProductPremium, Units: 160, Revenue: 2400, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-04", Product: ProductClassic, Units: 290, Revenue: 2900, Country: "UK", Channel: ChannelOnline},
	{Date: "2024-04", Product: ProductPremium, Units: 110, Revenue: 1650, Country: "Germany", Channel: ChannelOnline},
	{Date: "2024-04", Product: ProductClassic, Units: 180, Revenue: 1800, Country: "France", Channel: ChannelWholesale},

	// May 2024
	{Date: "2024-05", Product: ProductClassic, Units: 550, Revenue: 5500, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-05", Product: ProductPremium, Units: 260, Revenue: 3900, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-05", Product: ProductClassic, Units: 340, Revenue: 3400, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-05", Product: ProductPremium, Units: 190, Revenue: 2850, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-05", Product: ProductClassic, Units: 310, Revenue: 3100, Country: "UK", Channel: ChannelOnline},
	{Date: "2024-05", Product: ProductPremium, Units: 130, Revenue: 1950, Country: "Germany", Channel: ChannelOnline},
	{Date: "2024-05", Product: ProductClassic, Units: 220, Revenue: 2200, Country: "France", Channel: ChannelWholesale},

	// June 2024
	{Date: "2024-06", Product: ProductClassic, Units: 620, Revenue: 6200, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-06", Product: ProductPremium, Units: 300, Revenue: 4500, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-06", Product: ProductClassic, Units: 400, Revenue: 4000, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-06", Product: ProductPremium, Units: 210, Revenue: 3150, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-06", Product: ProductClassic, Units: 350, Revenue: 3500, Country: "UK", Channel: ChannelOnline},
	{Date: "2024-06", Product: ProductPremium, Units: 140, Revenue: 2100, Country: "Germany", Channel: ChannelOnline},
	{Date: "2024-06", Product: ProductClassic, Units: 250, Revenue: 2500, Country: "France", Channel: ChannelWholesale},
	{Date: "2024-06", Product: ProductPremium, Units: 80, Revenue: 1200, Country: "France", Channel: ChannelOnline},

	// July 2024
	{Date: "2024-07", Product: ProductClassic, Units: 580, Revenue: 5800, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-07", Product: ProductPremium, Units: 270, Revenue: 4050, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-07", Product: ProductClassic, Units: 380, Revenue: 3800, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-07", Product: ProductPremium, Units: 200, Revenue: 3000, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-07", Product: ProductClassic, Units: 330, Revenue: 3300, Country: "UK", Channel: ChannelOnline},
	{Date: "2024-07", Product: ProductPremium, Units: 150, Revenue: 2250, Country: "Germany", Channel: ChannelOnline},
	{Date: "2024-07", Product: ProductClassic, Units: 280, Revenue: 2800, Country: "France", Channel: ChannelWholesale},

	// August 2024
	{Date: "2024-08", Product: ProductClassic, Units: 650, Revenue: 6500, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-08", Product: ProductPremium, Units: 320, Revenue: 4800, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-08", Product: ProductClassic, Units: 420, Revenue: 4200, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-08", Product: ProductPremium, Units: 230, Revenue: 3450, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-08", Product: ProductClassic, Units: 370, Revenue: 3700, Country: "UK", Channel: ChannelOnline},
	{Date: "2024-08", Product: ProductPremium, Units: 160, Revenue: 2400, Country: "Germany", Channel: ChannelOnline},
	{Date: "2024-08", Product: ProductClassic, Units: 300, Revenue: 3000, Country: "France", Channel: ChannelWholesale},
	{Date: "2024-08", Product: ProductPremium, Units: 95, Revenue: 1425, Country: "France", Channel: ChannelOnline},

	// September 2024
	{Date: "2024-09", Product: ProductClassic, Units: 590, Revenue: 5900, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-09", Product: ProductPremium, Units: 290, Revenue: 4350, Country: "USA", Channel: ChannelOnline},
	{Date: "2024-09", Product: ProductClassic, Units: 360, Revenue: 3600, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-09", Product: ProductPremium, Units: 180, Revenue: 2700, Country: "Canada", Channel: ChannelWholesale},
	{Date: "2024-09", Product: ProductClassic, Units: 340, Revenue: 3400, Country: "UK", Channel: ChannelOnline},
	{Date: "2024-09", Product: ProductPremium, Units: 140, Revenue: 2100, Country: "Germany", Channel: ChannelOnline},
	{Date: "2024-09", Product: ProductClassic, Units: 270, Revenue: 2700, Country: "France", Channel: ChannelWholesale},
}

// Summary describes the dataset for display purposes.
type Summary struct {
	TotalRows int      `json:"totalRows"`
	DateRange string   `json:"dateRange"`
	Countries []string `json:"countries"`
	Products  []string `json:"products"`
	Channels  []string `json:"channels"`
}

// Summarize returns the dataset summary.
func Summarize() Summary {
	return Summary{
		TotalRows: len(Printing2024),
		DateRange: "2024-01 to 2024-09",
		Countries: []string{"USA", "Canada", "UK", "Germany", "France"},
		Products:  []string{ProductClassic, ProductPremium},
		Channels:  []string{ChannelOnline, ChannelWholesale},
	}
}
