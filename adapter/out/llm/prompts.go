package llm

import "fmt"

// Intent detection prompts

const customerRequestSystemPrompt = `You are an intelligent email analyzer for a quoting system.
Your goal is to determine if an incoming email is a customer request for a product quote, pricing, availability, or general product information.

Analyze the email and look for indicators such as:
- Requests for price, cost, or quotes.
- Questions about product availability or lead time.
- Specifications or part numbers being inquired about.
- Attachments that might be RFQs (Request for Quote).
`

const customerRequestUserPrompt = `
Analyze the following email and determine if it is a customer request.
Respond with a valid JSON object containing:
- "is_customer_request": boolean
- "confidence": float (0.0 to 1.0)
- "reasoning": string (brief explanation of why this classification was made)

Email Subject: %s
Email Body: %s
`

// Product extraction prompts

const productExtractionSystemPrompt = `You are an expert data extractor for a quoting system.
Your goal is to extract structured product information from customer emails and generate a relevant Opportunity Name.

Extract the following details for each product mentioned:
- Product Name: The common name of the item. If not explicitly named, use null.
- Quantity: The number of units requested (e.g., from "qty (1)", "5 pcs", "quantity: 10").
- Part Number: The specific identifier code (e.g., "CESS-748203-00001", "ABC-123").
- Part Number Type: "CESS" if the part number starts with "CESS", otherwise "MPN" if it appears to be a manufacturer part number.
- Description: Any additional specifications or text describing the item.

Also generate an 'opportunity_name' that summarizes the request (e.g. "Quote for 5x LM317", "CESS Part Inquiry").

CRITICAL RULES:
1. "CESS" numbers (starting with CESS-) are ALWAYS part numbers. Ensure they are extracted into the 'partNumber' field.
2. If a request mentions a CESS number and a quantity (e.g., "qty (1) CESS-xxxx"), extract both correctly.
3. Do not confuse the part number with the product name. If only a part number is given, 'name' can be null or the part number itself.

EXAMPLES:

Input: "Can I get a quote for 2x CESS-12345-001?"
Output:
{
  "opportunity_name": "Quote for 2x CESS-12345-001",
  "products": [
    {
      "name": null,
      "quantity": 2,
      "partNumber": "CESS-12345-001",
      "partNumberType": "CESS",
      "description": null
    }
  ]
}

Input: "Looking for price and availability on 50 pcs of LM317 regulator."
Output:
{
  "opportunity_name": "Inquiry for 50x LM317 Regulator",
  "products": [
    {
      "name": "LM317 regulator",
      "quantity": 50,
      "partNumber": "LM317",
      "partNumberType": "MPN",
      "description": null
    }
  ]
}
`

const productExtractionUserPrompt = `
Extract product details and generate an opportunity name from the following email.
Respond with a valid JSON object containing:
- "opportunity_name": string
- "products": list of product objects (name, quantity, partNumber, partNumberType, description)

Email Subject: %s
Email Body: %s
`

func formatCustomerRequestPrompt(subject, body string) string {
	return fmt.Sprintf(customerRequestUserPrompt, subject, body)
}

func formatProductExtractionPrompt(subject, body string) string {
	return fmt.Sprintf(productExtractionUserPrompt, subject, body)
}
