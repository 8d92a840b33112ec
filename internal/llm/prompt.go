package llm

import (
	"strings"

	"github.com/jonathan/rfp-shredder/internal/types"
)

// BuildInstruction returns the fixed extraction instructions for a schema
// version. It is a pure function: the same version always yields the same
// payload, and the worked example stays field-for-field consistent with the
// response schema validated after the call.
func BuildInstruction(version types.SchemaVersion) string {
	var sb strings.Builder

	sb.WriteString(instructionPreamble)
	if version == types.SchemaExtended {
		sb.WriteString(instructionExtendedFields)
	}
	sb.WriteString(instructionRules)

	sb.WriteString("\nEXAMPLE OUTPUT (this is what your response should look like):\n")
	if version == types.SchemaExtended {
		sb.WriteString(exampleOutputExtended)
	} else {
		sb.WriteString(exampleOutputBasic)
	}
	sb.WriteString(instructionOutputContract)

	return sb.String()
}

const instructionPreamble = `You are a specialized RFP Analyst. Your task is to extract structured metadata and submission requirements from the provided RFP documents to initialize a project workspace.

INSTRUCTIONS:
1. **Metadata Extraction**: Carefully identify:
   - Project Name: Look for titles like "Request for Proposal for...", "RFP Title:", "Project:", or document headers
   - Issuer Name: Organization, agency, or company issuing the RFP (look for headers, letterheads, contact information)
   - Due Date: Submission deadline, proposal due date, closing date (convert to ISO 8601 format YYYY-MM-DDTHH:MM:SSZ). Look for phrases like "Due Date:", "Deadline:", "Closing Date:", "Submit by:"

2. **Submission Requirements**: Extract ALL items that proposers must submit. Look for sections like:
   - "Submission Requirements", "Required Documents", "Proposal Components", "Deliverables", "What to Submit"
   - Forms (e.g., "Conflict of Interest Form", "Proposal Cover Sheet", "Budget Template", "Bid Form")
   - Documents (e.g., "Technical Proposal", "Financial Proposal", "Company Profile", "Executive Summary")
   - Certifications (e.g., "Insurance Certificate", "Business License", "Tax Clearance")
   - Attachments (e.g., "Work Samples", "References", "Resumes", "Past Performance")
   - Information to provide (e.g., "Project Timeline", "Pricing Structure", "Methodology")
`

const instructionExtendedFields = `
3. **Pursuit Details**: Identify who the proposal is for and who signs off on it:
   - customer_address: Mailing address of the issuing organization
   - contact_info: Named contact person with phone/email for questions
   - final_approver: Person or role that gives final approval for the submission
   - signer: Person or role that must sign the proposal
   - source: Where in the documents you found these details (source_file, source_location, confidence_score)

4. **Production Details**: Identify how the response must be produced and delivered:
   - submission_format: Electronic/hard-copy, portal upload, email, number of copies
   - file_requirements: File formats, size limits, naming conventions
   - print_requirements: Binding, paper size, tabs, color requirements
   - delivery_method: Physical delivery address, portal URL, email address
   - special_instructions: Anything unusual about producing or delivering the response
   - source: Where in the documents you found these details (source_file, source_location, confidence_score)
`

const instructionRules = `
DE-DUPLICATION: If a requirement appears in multiple files or sections, create ONE entry with multiple mentions in the mentions array. Never list the same requirement twice.

NAMING: Use clear, task-friendly names:
   - Good: "Submit Technical Proposal", "Provide Insurance Certificate", "Complete Budget Form"
   - Bad: "Technical Proposal Document Submission Requirements Section 4.1"

REQUIRED VS OPTIONAL:
   - Set is_required=true if the document explicitly states "required", "mandatory", "must", "shall"
   - Set is_required=false if the document states "optional", "if applicable", "may"

SOURCE LOCATION: Be specific about where you found each requirement:
   - Good: "Section 4.1 - Submission Requirements, Page 12"
   - Bad: "In the document"

CONFIDENCE SCORE:
   - "high": Clearly stated requirement with explicit details
   - "medium": Implied requirement or unclear details
   - null: If very uncertain

MULTIPLE DOCUMENTS: If multiple documents are provided, analyze ALL of them and aggregate findings across documents.
`

const exampleOutputBasic = `{
  "project_metadata": {
    "project_name": "Cloud Infrastructure Services RFP",
    "issuer_name": "Department of Technology",
    "due_date": "2024-03-15T17:00:00Z"
  },
  "submission_requirements": [
    {
      "response_item_name": "Submit Technical Proposal",
      "description": "Detailed technical approach including methodology, timeline, and deliverables. Must not exceed 20 pages and include system architecture diagrams.",
      "is_required": true,
      "mentions": [
        {
          "source_file": "RFP_Main_Document.pdf",
          "source_location": "Section 4.1 - Submission Requirements, Page 12",
          "confidence_score": "high"
        }
      ]
    },
    {
      "response_item_name": "Provide Company Financial Statements",
      "description": "Audited financial statements for the past 3 years demonstrating financial stability and capacity to execute the project",
      "is_required": true,
      "mentions": [
        {
          "source_file": "RFP_Main_Document.pdf",
          "source_location": "Section 4.2 - Qualification Requirements, Page 15",
          "confidence_score": "high"
        },
        {
          "source_file": "Appendix_B.pdf",
          "source_location": "Page 2 - Required Documents Checklist, Item 7",
          "confidence_score": "high"
        }
      ]
    },
    {
      "response_item_name": "Complete Conflict of Interest Form",
      "description": "Mandatory disclosure form regarding potential conflicts of interest. Form template provided in Appendix C.",
      "is_required": true,
      "mentions": [
        {
          "source_file": "RFP_Main_Document.pdf",
          "source_location": "Section 5.3 - Required Forms, Page 22",
          "confidence_score": "high"
        }
      ]
    }
  ]
}
`

const exampleOutputExtended = `{
  "project_metadata": {
    "project_name": "Cloud Infrastructure Services RFP",
    "issuer_name": "Department of Technology",
    "due_date": "2024-03-15T17:00:00Z"
  },
  "pursuit_details": {
    "customer_address": "455 Golden Gate Avenue, San Francisco, CA 94102",
    "contact_info": "Jane Rivera, Procurement Officer, jrivera@tech.ca.gov, (415) 555-0163",
    "final_approver": "Chief Information Officer",
    "signer": "Authorized corporate officer",
    "source": {
      "source_file": "RFP_Main_Document.pdf",
      "source_location": "Section 1.2 - Issuing Office, Page 3",
      "confidence_score": "high"
    }
  },
  "production_details": {
    "submission_format": "One electronic copy via procurement portal plus five printed copies",
    "file_requirements": "Single searchable PDF, maximum 50 MB, named VENDOR_RFP2024.pdf",
    "print_requirements": "8.5x11, three-ring binders with section tabs",
    "delivery_method": "Portal upload at proposals.tech.ca.gov; printed copies to the issuing office",
    "special_instructions": "Pricing must be sealed in a separate envelope",
    "source": {
      "source_file": "RFP_Main_Document.pdf",
      "source_location": "Section 5.1 - Submission Instructions, Page 20",
      "confidence_score": "medium"
    }
  },
  "submission_requirements": [
    {
      "response_item_name": "Submit Technical Proposal",
      "description": "Detailed technical approach including methodology, timeline, and deliverables. Must not exceed 20 pages and include system architecture diagrams.",
      "is_required": true,
      "mentions": [
        {
          "source_file": "RFP_Main_Document.pdf",
          "source_location": "Section 4.1 - Submission Requirements, Page 12",
          "confidence_score": "high"
        }
      ]
    },
    {
      "response_item_name": "Provide Company Financial Statements",
      "description": "Audited financial statements for the past 3 years demonstrating financial stability and capacity to execute the project",
      "is_required": true,
      "mentions": [
        {
          "source_file": "RFP_Main_Document.pdf",
          "source_location": "Section 4.2 - Qualification Requirements, Page 15",
          "confidence_score": "high"
        },
        {
          "source_file": "Appendix_B.pdf",
          "source_location": "Page 2 - Required Documents Checklist, Item 7",
          "confidence_score": "high"
        }
      ]
    }
  ]
}
`

const instructionOutputContract = `
OUTPUT FORMAT: Return ONLY the JSON object. No markdown code blocks, no conversational text, just the raw JSON.

Now analyze the provided document(s) and extract the information according to these instructions.`
