package bills

// ExtractedFields is the structured payload the model returns for one bill.
// Every field is independently nullable: the model is instructed to emit null
// for anything it cannot determine, and fields it omits entirely must still
// round-trip as null. Pointer fields give exactly that behavior with
// encoding/json.
type ExtractedFields struct {
	UtilityType   *string       `json:"utilityType" dynamodbav:"utilityType"`
	Supplier      *string       `json:"supplier" dynamodbav:"supplier"`
	BillDate      *string       `json:"billDate" dynamodbav:"billDate"`
	BillingPeriod BillingPeriod `json:"billingPeriod" dynamodbav:"billingPeriod"`
	Units         Units         `json:"units" dynamodbav:"units"`
	Costs         Costs         `json:"costs" dynamodbav:"costs"`
	Tariff        *string       `json:"tariff" dynamodbav:"tariff"`
	MeterReading  MeterReading  `json:"meterReading" dynamodbav:"meterReading"`
	AccountNumber *string       `json:"accountNumber" dynamodbav:"accountNumber"`
	Address       *string       `json:"address" dynamodbav:"address"`
}

// BillingPeriod is the date range a bill covers.
type BillingPeriod struct {
	From *string `json:"from" dynamodbav:"from"`
	To   *string `json:"to" dynamodbav:"to"`
}

// Units is the consumption reading on a bill.
type Units struct {
	Consumed *float64 `json:"consumed" dynamodbav:"consumed"`
	Unit     *string  `json:"unit" dynamodbav:"unit"`
}

// Costs holds the monetary breakdown of a bill.
type Costs struct {
	TotalAmount    *float64 `json:"totalAmount" dynamodbav:"totalAmount"`
	StandingCharge *float64 `json:"standingCharge" dynamodbav:"standingCharge"`
	UnitRate       *float64 `json:"unitRate" dynamodbav:"unitRate"`
	VATAmount      *float64 `json:"vatAmount" dynamodbav:"vatAmount"`
}

// MeterReading is the previous/current meter pair on metered utilities.
type MeterReading struct {
	Previous *float64 `json:"previous" dynamodbav:"previous"`
	Current  *float64 `json:"current" dynamodbav:"current"`
}
