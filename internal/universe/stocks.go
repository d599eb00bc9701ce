package universe

// defaultStocks is the served universe: large US listings with display name and sector.
var defaultStocks = []Stock{
	{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Sector: "Technology"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Sector: "Technology"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Sector: "Consumer Cyclical"},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Sector: "Technology"},
	{Symbol: "META", Name: "Meta Platforms Inc.", Sector: "Technology"},
	{Symbol: "TSLA", Name: "Tesla Inc.", Sector: "Automotive"},
	{Symbol: "BRK.B", Name: "Berkshire Hathaway Inc.", Sector: "Financial"},
	{Symbol: "V", Name: "Visa Inc.", Sector: "Financial"},
	{Symbol: "JNJ", Name: "Johnson & Johnson", Sector: "Healthcare"},
	{Symbol: "WMT", Name: "Walmart Inc.", Sector: "Consumer Defensive"},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Sector: "Financial"},
	{Symbol: "MA", Name: "Mastercard Inc.", Sector: "Financial"},
	{Symbol: "PG", Name: "Procter & Gamble Co.", Sector: "Consumer Defensive"},
	{Symbol: "UNH", Name: "UnitedHealth Group Inc.", Sector: "Healthcare"},
	{Symbol: "HD", Name: "Home Depot Inc.", Sector: "Consumer Cyclical"},
	{Symbol: "DIS", Name: "Walt Disney Co.", Sector: "Communication"},
	{Symbol: "BAC", Name: "Bank of America Corp.", Sector: "Financial"},
	{Symbol: "ADBE", Name: "Adobe Inc.", Sector: "Technology"},
	{Symbol: "CRM", Name: "Salesforce Inc.", Sector: "Technology"},
	{Symbol: "NFLX", Name: "Netflix Inc.", Sector: "Communication"},
	{Symbol: "XOM", Name: "Exxon Mobil Corp.", Sector: "Energy"},
	{Symbol: "COST", Name: "Costco Wholesale Corp.", Sector: "Consumer Defensive"},
	{Symbol: "PFE", Name: "Pfizer Inc.", Sector: "Healthcare"},
	{Symbol: "CSCO", Name: "Cisco Systems Inc.", Sector: "Technology"},
	{Symbol: "TMO", Name: "Thermo Fisher Scientific", Sector: "Healthcare"},
	{Symbol: "ABT", Name: "Abbott Laboratories", Sector: "Healthcare"},
	{Symbol: "AVGO", Name: "Broadcom Inc.", Sector: "Technology"},
	{Symbol: "CVX", Name: "Chevron Corp.", Sector: "Energy"},
	{Symbol: "MRK", Name: "Merck & Co. Inc.", Sector: "Healthcare"},
	{Symbol: "ORCL", Name: "Oracle Corporation", Sector: "Technology"},
	{Symbol: "KO", Name: "Coca-Cola Co.", Sector: "Consumer Defensive"},
	{Symbol: "PEP", Name: "PepsiCo Inc.", Sector: "Consumer Defensive"},
	{Symbol: "INTC", Name: "Intel Corporation", Sector: "Technology"},
	{Symbol: "AMD", Name: "Advanced Micro Devices", Sector: "Technology"},
	{Symbol: "NKE", Name: "Nike Inc.", Sector: "Consumer Cyclical"},
	{Symbol: "T", Name: "AT&T Inc.", Sector: "Communication"},
	{Symbol: "VZ", Name: "Verizon Communications", Sector: "Communication"},
	{Symbol: "CMCSA", Name: "Comcast Corporation", Sector: "Communication"},
	{Symbol: "MCD", Name: "McDonald's Corp.", Sector: "Consumer Cyclical"},
	{Symbol: "IBM", Name: "IBM Corp.", Sector: "Technology"},
	{Symbol: "GE", Name: "General Electric Co.", Sector: "Industrial"},
	{Symbol: "BA", Name: "Boeing Co.", Sector: "Industrial"},
	{Symbol: "CAT", Name: "Caterpillar Inc.", Sector: "Industrial"},
	{Symbol: "GS", Name: "Goldman Sachs Group", Sector: "Financial"},
	{Symbol: "AXP", Name: "American Express Co.", Sector: "Financial"},
	{Symbol: "SBUX", Name: "Starbucks Corporation", Sector: "Consumer Cyclical"},
	{Symbol: "PYPL", Name: "PayPal Holdings Inc.", Sector: "Financial"},
	{Symbol: "QCOM", Name: "QUALCOMM Inc.", Sector: "Technology"},
	{Symbol: "TXN", Name: "Texas Instruments Inc.", Sector: "Technology"},
}
