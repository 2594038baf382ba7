package understanding

// The guards repeat the output contract because models still wrap JSON in
// Markdown fences often enough that asking once is not enough.
const jsonObjectGuard = "Return ONLY valid raw JSON.\n" +
	"Do NOT wrap the response in code fences.\n" +
	"Do NOT use ```json or any Markdown.\n" +
	"Output must begin with \"{\" and end with \"}\".\n"

const jsonArrayGuard = "Return ONLY valid raw JSON.\n" +
	"Do NOT wrap the response in code fences.\n" +
	"Do NOT use ```json or any Markdown.\n" +
	"Output must begin with \"[\" and end with \"]\".\n"

const bankInfoCheckPrompt = `You are checking the first page of a document that is supposed to be a bank statement.

Decide whether the page shows information about the bank that issued the document.
Look for:
- the bank's name or logo text
- bank contact details, branch or head office address
- identifiers such as a routing number, sort code, SWIFT/BIC, or IBAN

Respond with a JSON object:
{"is_bank_statement": true, "reason": "short explanation"}

Set "is_bank_statement" to false when no issuing bank can be identified.

` + jsonObjectGuard

const statementPeriodCheckPrompt = `You are checking the first page of a document that is supposed to be a bank statement.

Decide whether the page shows statement period information.
Look for:
- a statement period or date range (for example "1 Jan 2024 - 31 Jan 2024")
- a statement or issue date
- opening and closing balance dates

Respond with a JSON object:
{"is_bank_statement": true, "reason": "short explanation"}

Set "is_bank_statement" to false when no period information is present.

` + jsonObjectGuard

const customerInfoCheckPrompt = `You are checking the first page of a document that is supposed to be a bank statement.

Decide whether the page shows information about the customer who holds the account.
Look for:
- the account holder's name
- the account holder's mailing address
- an account number, even partially masked

Respond with a JSON object:
{"is_bank_statement": true, "reason": "short explanation"}

Set "is_bank_statement" to false when no customer can be identified.

` + jsonObjectGuard

const bankStatementCheckPrompt = `You are looking at the first page of a document.

Decide whether this is a genuine bank statement: a document issued by a bank
that reports an account's activity and balances over a period. Marketing
material, invoices, letters, contracts, and account opening forms are not
bank statements.

Respond with a JSON object:
{"is_bank_statement": true, "reason": "short explanation"}

` + jsonObjectGuard

const pageIntegrityPrompt = `You are an expert in document forensics. Analyze the text of one bank
statement page for signs of tampering, forgery, or fabrication.

Look for:
- text that appears modified or overwritten
- indications of hidden or overlaid content
- template placeholders or dummy data
- inconsistencies in formatting or figures
- unusual patterns that suggest the page was generated rather than issued

Respond with a JSON object:
{
  "is_valid": true,
  "confidence": 0,
  "issues_detected": ["specific issue", "another issue"],
  "explanation": "brief explanation of the determination"
}

Set "is_valid" to false only when issues are detected; "confidence" is a
number from 0 to 100; "issues_detected" is an empty array when the page
looks legitimate.

` + jsonObjectGuard

const businessInfoPrompt = `Extract the name and address of the business that holds the account on this
bank statement page.

Rules:
- The name and address must belong to the account holder, NOT to the bank
  that issued the statement.
- Use an empty string for anything the page does not show.

Respond with a JSON object:
{
  "name": "business name",
  "address": {
    "street": "street and number",
    "city": "city",
    "state": "state or region",
    "zip": "postal code",
    "country": "country"
  }
}

` + jsonObjectGuard

const balancesPrompt = `Extract the balances this bank statement page reports.

Rules:
- "amount" is a plain number with no currency symbols or thousands separators.
- "currency" is the ISO code, for example "USD" or "GBP".
- Dates use ISO format "YYYY-MM-DD".
- Report the balances the statement itself states; do not compute anything.

Respond with a JSON object:
{
  "opening_balance": {"amount": 0.0, "currency": "USD"},
  "opening_date": "YYYY-MM-DD",
  "closing_balance": {"amount": 0.0, "currency": "USD"},
  "closing_date": "YYYY-MM-DD"
}

` + jsonObjectGuard

const transactionsPrompt = `Parse ALL transactions on this bank statement page.

Each transaction object must have these fields:
- "date": string, ISO format "YYYY-MM-DD"
- "description": string
- "amount": number (positive for money IN, negative for money OUT)
- "currency": string (e.g. "USD")
- "reference": string, or "" when the statement shows none

Sign rules:
- Withdrawals, payments, debits, charges, and fees are negative.
- Deposits, credits, refunds, and interest earned are positive.
- If the statement has separate "paid out" / "paid in" columns, convert to a
  single signed "amount".
- Do not include currency symbols or thousands separators in "amount".
- Skip summary rows such as "balance brought forward"; they are not
  transactions.

Output a JSON array of objects. Return an empty array [] when the page shows
no transactions.

` + jsonArrayGuard

const pagesPrompt = `Extract the complete text of the attached PDF document.

Rules:
- Produce one element per page, in page order.
- Preserve the reading order of the text on each page.
- Render tables as plain text rows.
- Do not summarize, translate, or omit anything.

Output a JSON array of strings, one string per page.

` + jsonArrayGuard
