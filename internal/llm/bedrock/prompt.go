package bedrock

// promptTemplate instructs the model to answer with one JSON document and
// nothing else, using null for undeterminable fields. The bill text is
// appended after the final blank line.
const promptTemplate = `Please analyze this utility bill text and extract the following information in JSON format:
{
  "utilityType": "electricity|gas|water|internet|phone",
  "supplier": "supplier name",
  "billDate": "YYYY-MM-DD",
  "billingPeriod": {
    "from": "YYYY-MM-DD",
    "to": "YYYY-MM-DD"
  },
  "units": {
    "consumed": "number",
    "unit": "kWh|m3|gallons|GB|minutes"
  },
  "costs": {
    "totalAmount": "number",
    "standingCharge": "number",
    "unitRate": "number",
    "vatAmount": "number"
  },
  "tariff": "tariff name or plan",
  "meterReading": {
    "previous": "number",
    "current": "number"
  },
  "accountNumber": "account number",
  "address": "billing address"
}

If any field cannot be determined, use null. Here is the bill text:

`

// BuildPrompt renders the extraction prompt for one bill's text.
func BuildPrompt(text string) string {
	return promptTemplate + text
}
