package llm

// receiptPrompt is the fixed instruction sent with every receipt image.
// The output shape and the category label set are a contract with API
// callers; changing this text changes the output distribution and must
// be treated as an interface change.
const receiptPrompt = `Analyze this receipt image and extract the following information as a JSON object:
{
  "merchant": "store or business name",
  "date": "purchase date in YYYY-MM-DD format",
  "total": total amount as a number,
  "currency": "three-letter currency code, e.g. USD",
  "items": [{"name": "item name", "quantity": number, "price": number}],
  "category": "one of: Food & Drink, Travel, Accommodation, Office Supplies, Utilities, Entertainment, Other"
}
Use null for any field that cannot be determined from the image.
Return only the JSON object, with no additional commentary.`
