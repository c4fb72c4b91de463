package model

// Kind distinguishes money out (expense) from money in (income).
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// ExpenseCategory classifies transactions and bills.
type ExpenseCategory string

const (
	ExpenseGroceries      ExpenseCategory = "groceries"
	ExpenseEatingOut      ExpenseCategory = "eating-out"
	ExpenseEntertainment  ExpenseCategory = "entertainment"
	ExpenseClothing       ExpenseCategory = "clothing"
	ExpenseTransportation ExpenseCategory = "transportation"
	ExpenseHealthcare     ExpenseCategory = "healthcare"
	ExpensePersonalCare   ExpenseCategory = "personal-care"
	ExpenseGifts          ExpenseCategory = "gifts"
	ExpenseEducation      ExpenseCategory = "education"
	ExpenseTravel         ExpenseCategory = "travel"
	ExpenseShopping       ExpenseCategory = "shopping"
	ExpenseUtilities      ExpenseCategory = "utilities"
	ExpenseSubscription   ExpenseCategory = "subscription"
	ExpenseInsurance      ExpenseCategory = "insurance"
	ExpenseHousing        ExpenseCategory = "housing"
	ExpenseHarrison       ExpenseCategory = "harrison"
	ExpenseDebt           ExpenseCategory = "debt"
	ExpenseOther          ExpenseCategory = "other"
)

var expenseLabels = map[ExpenseCategory]string{
	ExpenseGroceries:      "Groceries",
	ExpenseEatingOut:      "Eating Out",
	ExpenseEntertainment:  "Entertainment",
	ExpenseClothing:       "Clothing",
	ExpenseTransportation: "Transportation",
	ExpenseHealthcare:     "Healthcare",
	ExpensePersonalCare:   "Personal Care",
	ExpenseGifts:          "Gifts",
	ExpenseEducation:      "Education",
	ExpenseTravel:         "Travel",
	ExpenseShopping:       "Shopping",
	ExpenseUtilities:      "Utilities",
	ExpenseSubscription:   "Subscription",
	ExpenseInsurance:      "Insurance",
	ExpenseHousing:        "Housing",
	ExpenseHarrison:       "Harrison",
	ExpenseDebt:           "Debt",
	ExpenseOther:          "Other",
}

// ExpenseCategories returns every expense category in display order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseGroceries,
		ExpenseEatingOut,
		ExpenseEntertainment,
		ExpenseClothing,
		ExpenseTransportation,
		ExpenseHealthcare,
		ExpensePersonalCare,
		ExpenseGifts,
		ExpenseEducation,
		ExpenseTravel,
		ExpenseShopping,
		ExpenseUtilities,
		ExpenseSubscription,
		ExpenseInsurance,
		ExpenseHousing,
		ExpenseHarrison,
		ExpenseDebt,
		ExpenseOther,
	}
}

// Valid reports whether c is a known expense category.
func (c ExpenseCategory) Valid() bool {
	_, ok := expenseLabels[c]
	return ok
}

// Label returns the display name, or the raw value for unknown categories.
func (c ExpenseCategory) Label() string {
	if l, ok := expenseLabels[c]; ok {
		return l
	}
	return string(c)
}

// IncomeCategory classifies income entries.
type IncomeCategory string

const (
	IncomeSalary     IncomeCategory = "salary"
	IncomeFreelance  IncomeCategory = "freelance"
	IncomeInvestment IncomeCategory = "investment"
	IncomeRefund     IncomeCategory = "refund"
	IncomeGift       IncomeCategory = "gift"
	IncomeTransfer   IncomeCategory = "transfer"
	IncomeOther      IncomeCategory = "other"
)

var incomeLabels = map[IncomeCategory]string{
	IncomeSalary:     "Salary",
	IncomeFreelance:  "Freelance",
	IncomeInvestment: "Investment",
	IncomeRefund:     "Refund",
	IncomeGift:       "Gift",
	IncomeTransfer:   "Transfer",
	IncomeOther:      "Other",
}

// IncomeCategories returns every income category in display order.
func IncomeCategories() []IncomeCategory {
	return []IncomeCategory{
		IncomeSalary,
		IncomeFreelance,
		IncomeInvestment,
		IncomeRefund,
		IncomeGift,
		IncomeTransfer,
		IncomeOther,
	}
}

// Valid reports whether c is a known income category.
func (c IncomeCategory) Valid() bool {
	_, ok := incomeLabels[c]
	return ok
}

// Label returns the display name, or the raw value for unknown categories.
func (c IncomeCategory) Label() string {
	if l, ok := incomeLabels[c]; ok {
		return l
	}
	return string(c)
}

// ValidCategory reports whether category belongs to the enumeration for kind.
func ValidCategory(kind Kind, category string) bool {
	switch kind {
	case KindExpense:
		return ExpenseCategory(category).Valid()
	case KindIncome:
		return IncomeCategory(category).Valid()
	default:
		return false
	}
}
