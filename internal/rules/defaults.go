package rules

import "github.com/tally-home/tally/internal/model"

// Order matters: the first rule with a matching keyword wins, so merchant
// names that overlap a broader category sit in the earlier rule.
func defaultExpenseRules() []Rule {
	return []Rule{
		{Category: string(model.ExpenseGroceries), Keywords: []string{
			"costco", "walmart", "loblaws", "metro", "sobeys", "no frills",
			"real canadian superstore", "superstore", "food basics", "freshco",
			"farm boy", "t&t", "whole foods", "safeway", "save-on", "independent",
			"grocery", "groceries", "longos", "fortinos", "zehrs",
		}},
		{Category: string(model.ExpenseEatingOut), Keywords: []string{
			"uber eats", "ubereats", "doordash", "skip the dishes", "skipthedishes",
			"mcdonald", "mcdonalds", "tim hortons", "tim horton", "starbucks",
			"restaurant", "cafe", "coffee", "pizza", "burger", "sushi", "thai",
			"chinese food", "indian food", "subway", "wendy", "popeyes", "kfc",
			"harvey", "a&w", "dairy queen", "taco bell", "chipotle", "panera",
			"swiss chalet", "boston pizza", "east side mario", "kelsey", "montana",
			"the keg", "milestones", "jack astor", "cactus club", "earls",
			"joey", "moxies", "bier markt",
		}},
		{Category: string(model.ExpenseTransportation), Keywords: []string{
			"shell", "petro-canada", "petro canada", "petrocan", "esso", "gas",
			"pioneer", "ultramar", "mobil", "husky", "chevron", "sunoco",
			"uber trip", "lyft", "presto", "transit", "ttc", "go transit",
			"parking", "impark", "green p", "car wash", "autoroute", "407 etr",
			"canadian tire gas", "costco gas",
		}},
		{Category: string(model.ExpenseUtilities), Keywords: []string{
			"hydro", "enbridge", "toronto hydro", "hydro one", "electricity",
			"natural gas", "water bill", "internet", "rogers", "bell", "telus",
			"fido", "koodo", "virgin mobile", "freedom mobile", "chatr",
		}},
		{Category: string(model.ExpenseSubscription), Keywords: []string{
			"netflix", "spotify", "disney", "disney+", "amazon prime", "apple tv",
			"crave", "paramount", "hbo", "youtube premium", "apple music",
			"subscription", "membership", "monthly fee",
		}},
		{Category: string(model.ExpenseEntertainment), Keywords: []string{
			"cinema", "cineplex", "movie", "theatre", "theater", "concert",
			"ticketmaster", "stubhub", "xbox", "playstation", "steam", "nintendo",
			"gaming", "twitch", "arcade", "bowling", "golf", "rec room",
		}},
		{Category: string(model.ExpenseInsurance), Keywords: []string{
			"insurance", "manulife", "sun life", "great west", "canada life",
			"desjardins", "intact", "aviva", "td insurance", "rbc insurance",
			"belair", "allstate", "state farm",
		}},
		{Category: string(model.ExpenseHousing), Keywords: []string{
			"rent", "mortgage", "property tax", "condo fee", "maintenance fee",
			"landlord", "lease",
		}},
		{Category: string(model.ExpenseHealthcare), Keywords: []string{
			"shoppers drug", "shoppers drug mart", "pharmacy", "pharma", "rexall",
			"medical", "dental", "doctor", "clinic", "hospital", "dentist",
			"optometrist", "vision", "glasses", "contacts", "physiotherapy",
			"physio", "chiro", "massage therapy", "prescription",
		}},
		{Category: string(model.ExpensePersonalCare), Keywords: []string{
			"salon", "haircut", "barber", "spa", "nail", "beauty", "cosmetic",
			"sephora", "bath & body", "lush", "the body shop",
		}},
		{Category: string(model.ExpenseShopping), Keywords: []string{
			"amazon", "best buy", "home depot", "canadian tire", "walmart.com",
			"ikea", "the brick", "leon", "structube", "wayfair", "ebay",
			"staples", "dollarama", "winners", "homesense", "marshalls",
			"hudson bay", "hbc", "indigo", "chapters", "apple store", "apple.com",
		}},
		{Category: string(model.ExpenseClothing), Keywords: []string{
			"h&m", "zara", "gap", "old navy", "uniqlo", "nordstrom", "aritzia",
			"lululemon", "nike", "adidas", "foot locker", "sportchek", "sport chek",
			"marks work", "marks ", "simons", "holt renfrew", "banana republic",
			"j.crew", "club monaco", "roots",
		}},
		{Category: string(model.ExpenseEducation), Keywords: []string{
			"tuition", "university", "college", "school", "course", "udemy",
			"coursera", "skillshare", "masterclass", "linkedin learning",
			"textbook", "education",
		}},
		{Category: string(model.ExpenseTravel), Keywords: []string{
			"airline", "air canada", "westjet", "porter", "united", "delta",
			"american airlines", "hotel", "marriott", "hilton", "airbnb",
			"booking.com", "expedia", "trivago", "hostel", "resort", "flight",
			"vacation", "travel",
		}},
		{Category: string(model.ExpenseGifts), Keywords: []string{
			"gift", "present", "flowers", "hallmark", "card shop", "charity",
			"donation", "gofundme",
		}},
		{Category: string(model.ExpenseDebt), Keywords: []string{
			"credit card payment", "loan payment", "line of credit", "loc payment",
		}},
		{Category: string(model.ExpenseHarrison), Keywords: []string{
			"harrison", "daycare", "childcare", "baby", "diaper", "formula",
			"toys r us", "buy buy baby",
		}},
	}
}

func defaultIncomeRules() []Rule {
	return []Rule{
		{Category: string(model.IncomeSalary), Keywords: []string{
			"payroll", "salary", "wage", "direct deposit", "employer",
			"paycheque", "paycheck", "bi-weekly pay", "monthly pay",
		}},
		{Category: string(model.IncomeFreelance), Keywords: []string{
			"freelance", "contract", "consulting", "invoice", "client payment",
			"side gig", "self-employed",
		}},
		{Category: string(model.IncomeInvestment), Keywords: []string{
			"dividend", "interest", "capital gain", "investment", "stock",
			"etf", "mutual fund", "reit", "tfsa", "rrsp", "fhsa",
		}},
		{Category: string(model.IncomeRefund), Keywords: []string{
			"refund", "return", "rebate", "cashback", "reimbursement",
			"credit", "adjustment",
		}},
		{Category: string(model.IncomeGift), Keywords: []string{
			"gift", "present", "birthday", "christmas", "holiday",
		}},
		{Category: string(model.IncomeTransfer), Keywords: []string{
			"transfer", "e-transfer", "etransfer", "interac", "sent money",
		}},
	}
}
