// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/rfp-shredder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// orNotFound renders an optional field value for display.
func orNotFound(v *string) string {
	if v == nil || *v == "" {
		return "(not found)"
	}
	return *v
}

// PrintProjectMetadata outputs a human-readable summary of the project metadata.
func (p *Printer) PrintProjectMetadata(meta *types.ProjectMetadata) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Project:  %s\n", orNotFound(meta.ProjectName)))
	sb.WriteString(fmt.Sprintf("Issuer:   %s\n", orNotFound(meta.IssuerName)))
	sb.WriteString(fmt.Sprintf("Due date: %s", orNotFound(meta.DueDate)))

	p.printBox("PROJECT METADATA", sb.String())
}

// PrintSubmissionRequirements outputs the top extracted requirements with
// their mention counts.
func (p *Printer) PrintSubmissionRequirements(reqs []types.SubmissionRequirement) {
	if len(reqs) == 0 {
		p.printBox("SUBMISSION REQUIREMENTS", "No submission requirements found.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total requirements: %d\n\n", len(reqs)))

	count := min(len(reqs), maxItemsToShow)
	for i := 0; i < count; i++ {
		req := reqs[i]
		name := req.ResponseItemName
		if len(name) > 45 {
			name = name[:42] + "..."
		}
		marker := "optional"
		if req.IsRequired {
			marker = "required"
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, name))
		sb.WriteString(fmt.Sprintf("    %s, %d mention(s)", marker, len(req.Mentions)))
		if len(req.Mentions) > 0 {
			loc := req.Mentions[0].SourceLocation
			if len(loc) > 30 {
				loc = loc[:27] + "..."
			}
			sb.WriteString(fmt.Sprintf(", first at %s", loc))
		}
		sb.WriteString("\n")
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(reqs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more requirements", len(reqs)-maxItemsToShow))
	}

	p.printBox("SUBMISSION REQUIREMENTS", sb.String())
}

// PrintPursuitDetails outputs the pursuit evaluation fields from an extended
// extraction.
func (p *Printer) PrintPursuitDetails(details *types.PursuitDetails) {
	if details == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Customer address: %s\n", orNotFound(details.CustomerAddress)))
	sb.WriteString(fmt.Sprintf("Contact info:     %s\n", orNotFound(details.ContactInfo)))
	sb.WriteString(fmt.Sprintf("Final approver:   %s\n", orNotFound(details.FinalApprover)))
	sb.WriteString(fmt.Sprintf("Signer:           %s", orNotFound(details.Signer)))

	p.printBox("PURSUIT DETAILS", sb.String())
}

// PrintProductionDetails outputs the proposal production fields from an
// extended extraction.
func (p *Printer) PrintProductionDetails(details *types.ProductionDetails) {
	if details == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Format:        %s\n", orNotFound(details.SubmissionFormat)))
	sb.WriteString(fmt.Sprintf("Files:         %s\n", orNotFound(details.FileRequirements)))
	sb.WriteString(fmt.Sprintf("Print:         %s\n", orNotFound(details.PrintRequirements)))
	sb.WriteString(fmt.Sprintf("Delivery:      %s\n", orNotFound(details.DeliveryMethod)))
	sb.WriteString(fmt.Sprintf("Special notes: %s", orNotFound(details.SpecialInstructions)))

	p.printBox("PRODUCTION DETAILS", sb.String())
}

// PrintExtractionResult outputs the full result, section by section.
func (p *Printer) PrintExtractionResult(result *types.ExtractionResult) {
	if result == nil {
		return
	}

	p.PrintProjectMetadata(&result.ProjectMetadata)
	p.PrintPursuitDetails(result.PursuitDetails)
	p.PrintProductionDetails(result.ProductionDetails)
	p.PrintSubmissionRequirements(result.SubmissionRequirements)
}
