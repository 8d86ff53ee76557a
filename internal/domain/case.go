package domain

// Case is the domain model for an exam case study. The nested note groups
// are always stored fully shaped: a case created without them gets the
// all-empty-string structure, never a partial object.
type Case struct {
	CaseID         string       `json:"caseId" dynamodbav:"caseId"`
	CategoryID     string       `json:"categoryId" dynamodbav:"categoryId"`
	Tier           int          `json:"tier" dynamodbav:"tier"`
	Title          string       `json:"title" dynamodbav:"title"`
	AnonymousTitle string       `json:"anonymousTitle" dynamodbav:"anonymousTitle"`
	Doctor         DoctorNotes  `json:"doctor" dynamodbav:"doctor"`
	Patient        PatientNotes `json:"patient" dynamodbav:"patient"`
	Marking        Marking      `json:"marking" dynamodbav:"marking"`
	Management     Management   `json:"management" dynamodbav:"management"`
	CreatedAt      string       `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt      string       `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
}

// DoctorNotes holds the clinician-facing brief for a case.
type DoctorNotes struct {
	Image             string `json:"image" dynamodbav:"image"`
	Name              string `json:"name" dynamodbav:"name"`
	Age               string `json:"age" dynamodbav:"age"`
	PMHX              string `json:"PMHX" dynamodbav:"PMHX"`
	MedicationHistory string `json:"medicationHistory" dynamodbav:"medicationHistory"`
	MedicalNotes      string `json:"medicalNotes" dynamodbav:"medicalNotes"`
	Results           string `json:"results" dynamodbav:"results"`
	CaseDetails       string `json:"caseDetails" dynamodbav:"caseDetails"`
}

// PatientNotes holds the role-player brief for a case.
type PatientNotes struct {
	Background          string `json:"background" dynamodbav:"background"`
	Name                string `json:"name" dynamodbav:"name"`
	Age                 string `json:"age" dynamodbav:"age"`
	CaseBackground      string `json:"caseBackground" dynamodbav:"caseBackground"`
	PresentingComplaint string `json:"presentingComplaint" dynamodbav:"presentingComplaint"`
	OpenHistory         string `json:"openHistory" dynamodbav:"openHistory"`
	PositiveSX          string `json:"positiveSX" dynamodbav:"positiveSX"`
	NegativeSX          string `json:"negativeSX" dynamodbav:"negativeSX"`
	Ideas               string `json:"ideas" dynamodbav:"ideas"`
	Concerns            string `json:"concerns" dynamodbav:"concerns"`
	Expectations        string `json:"expectations" dynamodbav:"expectations"`
	PastMedicalHistory  string `json:"pastMedicalHistory" dynamodbav:"pastMedicalHistory"`
	Medications         string `json:"medications" dynamodbav:"medications"`
	SocialHistory       string `json:"socialHistory" dynamodbav:"socialHistory"`
	FamilyHistory       string `json:"familyHistory" dynamodbav:"familyHistory"`
	Behaviour           string `json:"behaviour" dynamodbav:"behaviour"`
}

// Marking is the rubric of positive/negative indicators per consultation domain.
type Marking struct {
	PositiveIndicatorsGathering  string `json:"positiveIndicatorsGathering" dynamodbav:"positiveIndicatorsGathering"`
	NegativeIndicatorsGathering  string `json:"negativeIndicatorsGathering" dynamodbav:"negativeIndicatorsGathering"`
	PositiveIndicatorsManagement string `json:"positiveIndicatorsManagement" dynamodbav:"positiveIndicatorsManagement"`
	NegativeIndicatorsManagement string `json:"negativeIndicatorsManagement" dynamodbav:"negativeIndicatorsManagement"`
	PositiveIndicatorsRelating   string `json:"positiveIndicatorsRelating" dynamodbav:"positiveIndicatorsRelating"`
	NegativeIndicatorsRelating   string `json:"negativeIndicatorsRelating" dynamodbav:"negativeIndicatorsRelating"`
}

// Management holds the post-case guidance shown after completion.
type Management struct {
	ManagementOfCase    string `json:"managementOfCase" dynamodbav:"managementOfCase"`
	ManagementOfDisease string `json:"managementOfDisease" dynamodbav:"managementOfDisease"`
	Relation            string `json:"relation" dynamodbav:"relation"`
	AdviceToPatients    string `json:"adviceToPatients" dynamodbav:"adviceToPatients"`
	SafetyNet           string `json:"safetyNet" dynamodbav:"safetyNet"`
	FurtherReading      string `json:"furtherReading" dynamodbav:"furtherReading"`
}

// CaseSummary is the projection returned by list queries.
type CaseSummary struct {
	CaseID         string `json:"caseId" dynamodbav:"caseId"`
	Title          string `json:"title" dynamodbav:"title"`
	AnonymousTitle string `json:"anonymousTitle" dynamodbav:"anonymousTitle"`
	CategoryID     string `json:"categoryId" dynamodbav:"categoryId"`
}
