package extract

import (
	"fmt"
	"strings"
)

// OCRFailed is returned as the text of a unit whose OCR did not succeed.
// It never enters the corpus.
const OCRFailed = "OCR failed"

const ocrPrompt = `Perform OCR to extract all text from this scanned Public Notice in a Maharashtra Newspaper.
Remove unnecessary whitespace before and after the text, and return the text.`

// Glossary holds fixed renderings the translator must use.
var Glossary = []struct {
	Source string
	Target string
}{
	{"गृहनिर्माण संस्था मर्यादित लिमिटेडच्या", "Housing Society Limited"},
}

func translationPrompt(text string) string {
	var b strings.Builder
	b.WriteString(`I have performed OCR to extract all text from a scanned Public Notice in a
Maharashtra Newspaper, it is attached below. It is in Hindi or Marathi, and
may use Legalese. Translate it to english maintaining 100% of the meaning.
Do not editorialize. Translate exactly as written and return the text.

Rules:
`)
	for i, g := range Glossary {
		fmt.Fprintf(&b, "%d. %q translates to %q.\n", i+1, g.Source, g.Target)
	}
	b.WriteString("\n")
	b.WriteString(text)
	return b.String()
}

const extractionSystem = `Acting as an experienced regional real estate lawyer, you extract structured data from Maharashtra public notices. You strictly adhere to the JSON response schema.`

const extractionRules = `A. GOAL:

I have used OCR to extract text from a Public Notice in a Maharashtra Newspaper, it is in the section "FINAL_EXTRACTED_TEXT" below.
Extract and parse structured data from the text. You must strictly adhere to the specified JSON response schema.

B. RULES:

1. Since public notices may contain multiple addresses, here are rules about how to store each address:
    (1-a) The main property address, where the title investigation is occurring, goes in "property_details.address" as an Address object.
          If any address components are not clearly and explicitly mentioned, leave them as "n/a" instead of using components of other addresses.
    (1-b) The seller's (person) address, if they live elsewhere, goes in "seller_details.person_address" as a single string.
    (1-c) The seller's (company) registered office address goes in "seller_details.company_address" as a single string.
    (1-d) The advocate (person or law firm) address goes in "advocate_details.advocate_or_firm_address" as a single string.
    (1-e) Any other address is not to be stored or extracted.
    (1-f) Be extremely careful not to confuse any of the addresses you see in the text.
2. If a Public Notice includes multiple units (flats, shops, offices, etc.), capture data for all units without fail.
   Some fields apply to each unit individually, while others are common. For example, if flats #101 and #201 are listed,
   "property_details.address.flat_or_apartment_numbers" should be "Flat No. 101, Flat No. 201". If both are in the same building
   "Pitale Prasad", "property_details.address.building_name" should be "Pitale Prasad".
3. Local governance bodies must be excluded from your parsing, for example Pune Municipal Corporation, BMC, Gram Panchayats,
   Nagar Parishad, Nagar Palika, Municipality, Zilla Parishad.
4. If a pin code IS NOT explicitly mentioned for the main property but IS mentioned for other addresses (advocate or seller),
   leave "property_details.address.pin_code" as "n/a".
5. If you see a pattern like "Plot bearing S. No. 240, H. No. 3,4,5,6,7,8":
    (5-a) "H. No." refers to a Hissa number, not a House number, and belongs in "property_details.address.survey_or_cs_or_cts_number",
          not in "property_details.address.bungalow_or_house_number".
    (5-b) "Plot bearing S. No. 240" refers to a plot number and belongs in "property_details.address.plot_number".
6. Use "n/a" for any text field that is not present in the notice.

C. FIELD DESCRIPTIONS:

Each property in the response schema carries a description with examples. Follow them.
`

func extractionPrompt(text string) string {
	return extractionRules + "\nD. FINAL_EXTRACTED_TEXT:\n\n" + text + "\n"
}
