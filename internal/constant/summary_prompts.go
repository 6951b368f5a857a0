package constant

import "fmt"

// Summary style keys. In styles mode all three are generated per run;
// in SOAP mode only the structured note is produced.
const (
	StyleSimple    = "simple"
	StyleDetailed  = "detailed"
	StyleTechnical = "technical"
)

// SummaryStyles lists the styles generated concurrently in styles mode.
var SummaryStyles = []string{StyleSimple, StyleDetailed, StyleTechnical}

const StyleSystemPrompt = "You are a medical assistant that writes summaries of doctor-patient consultations in English. Stay literal: never add findings that are not in the transcript."

var styleInstructions = map[string]string{
	StyleSimple:    "Write a short, plain-language summary of this consultation that the patient can understand. Avoid medical jargon; explain any necessary terms.",
	StyleDetailed:  "Write a detailed summary of this consultation covering the complaints, the examination, the assessment and the agreed plan, in that order. Plain language, but complete.",
	StyleTechnical: "Write a concise clinical summary of this consultation for the treating physician. Use standard medical terminology and abbreviations where appropriate.",
}

// BuildStylePrompt returns the user prompt for one summary style.
// Unknown styles fall back to the simple instruction.
func BuildStylePrompt(style, transcript string) string {
	instruction, ok := styleInstructions[style]
	if !ok {
		instruction = styleInstructions[StyleSimple]
	}
	return fmt.Sprintf("%s\n\nTranscript:\n%s", instruction, transcript)
}

const SoapSystemPrompt = "You are a medical assistant that helps structure consultations according to the SOAP format in English. You also add relevant SNOMED-CT codes for diagnoses, procedures, and medication."

const soapTemplate = `Create a structured summary of this consultation conversation in SOAP format (Subjective, Objective, Assessment, Plan).

Use this structure and add relevant SNOMED-CT codes:

S (Subjective):
- Complaints and symptoms as described by the patient
- Medical history

O (Objective):
- Physical examination
- Measurements (blood pressure, temperature, etc.)
- Observations

A (Assessment):
- Diagnosis or differential diagnosis
- Interpretation of findings
- SNOMED-CT codes for diagnoses

P (Plan):
- Treatment
- Medication (with SNOMED-CT codes if applicable)
- Follow-up appointments
- Advice

SNOMED-CT Codes:
List all relevant SNOMED-CT codes for:
- Diagnoses
- Procedures
- Findings
- Medication

Transcript:
%s`

func BuildSoapPrompt(transcript string) string {
	return fmt.Sprintf(soapTemplate, transcript)
}

// SoapSectionMarkers are the four section headers a structured note is
// expected to contain. Tests assert on these instead of exact output.
var SoapSectionMarkers = []string{
	"S (Subjective)",
	"O (Objective)",
	"A (Assessment)",
	"P (Plan)",
}
